// Package models defines the persistent documents and the API error taxonomy.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultStatus is assigned to newly registered users.
const DefaultStatus = "I am new!"

// User is a document in the users collection. Password holds the bcrypt hash
// and is never serialized to clients; responses use PublicUser.
type User struct {
	ID       primitive.ObjectID   `bson:"_id,omitempty"`
	Email    string               `bson:"email"`
	Name     string               `bson:"name"`
	Password string               `bson:"password"`
	Status   string               `bson:"status"`
	Posts    []primitive.ObjectID `bson:"posts"`
}

// PublicUser is the client-visible projection of a User. Fields are copied by
// an explicit allow-list so secret fields can never leak through serialization.
type PublicUser struct {
	ID     string   `json:"_id"`
	Email  string   `json:"email"`
	Name   string   `json:"name"`
	Status string   `json:"status"`
	Posts  []string `json:"posts"`
}

// Public returns the client-visible projection of the user.
func (u *User) Public() *PublicUser {
	posts := make([]string, 0, len(u.Posts))
	for _, id := range u.Posts {
		posts = append(posts, id.Hex())
	}
	return &PublicUser{
		ID:     u.ID.Hex(),
		Email:  u.Email,
		Name:   u.Name,
		Status: u.Status,
		Posts:  posts,
	}
}
