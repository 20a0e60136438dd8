package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is a document in the posts collection. Creator references the owning
// user; the populated record is attached at read time and never persisted.
type Post struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Content   string             `bson:"content"`
	ImageURL  string             `bson:"imageUrl"`
	Creator   primitive.ObjectID `bson:"creator"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`

	// CreatorUser is populated by the repository on reads that join the owner.
	CreatorUser *User `bson:"-"`
}

// PostPage is one page of the global post listing.
type PostPage struct {
	Posts      []*Post
	TotalPosts int64
}
