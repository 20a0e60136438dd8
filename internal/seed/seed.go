// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"waypost/internal/database"
	"waypost/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// DefaultPassword is the plaintext password assigned to every seeded user.
const DefaultPassword = "password123"

// Seeder populates the users and posts collections with generated data.
type Seeder struct {
	db   *mongo.Database
	rand *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided database.
func NewSeeder(db *mongo.Database) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll drops the seeded collections.
func (s *Seeder) ClearAll(ctx context.Context) error {
	for _, name := range []string{database.UsersCollection, database.PostsCollection} {
		if err := s.db.Collection(name).Drop(ctx); err != nil {
			return fmt.Errorf("dropping %s: %w", name, err)
		}
	}
	log.Println("Cleared users and posts collections")
	return nil
}

// SeedUsers inserts n users with generated names and emails. Every user gets
// the same known password so seeded accounts are usable for manual testing.
func (s *Seeder) SeedUsers(ctx context.Context, n int) ([]*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), 12)
	if err != nil {
		return nil, fmt.Errorf("hashing seed password: %w", err)
	}

	users := make([]*models.User, 0, n)
	docs := make([]interface{}, 0, n)
	for i := 0; i < n; i++ {
		user := &models.User{
			ID:       primitive.NewObjectID(),
			Email:    fmt.Sprintf("%d.%s", i, gofakeit.Email()),
			Name:     gofakeit.Name(),
			Password: string(hash),
			Status:   gofakeit.Phrase(),
			Posts:    []primitive.ObjectID{},
		}
		users = append(users, user)
		docs = append(docs, user)
	}

	if _, err := s.db.Collection(database.UsersCollection).InsertMany(ctx, docs); err != nil {
		return nil, fmt.Errorf("inserting users: %w", err)
	}
	log.Printf("Seeded %d users", n)
	return users, nil
}

// SeedPosts inserts n posts attributed to random seeded users, with creation
// times spread over the past 90 days.
func (s *Seeder) SeedPosts(ctx context.Context, users []*models.User, n int) error {
	if len(users) == 0 {
		return fmt.Errorf("no users to attribute posts to")
	}

	docs := make([]interface{}, 0, n)
	byCreator := make(map[primitive.ObjectID][]primitive.ObjectID)
	for i := 0; i < n; i++ {
		creator := users[s.rand.Intn(len(users))]
		createdAt := time.Now().UTC().Add(-time.Duration(s.rand.Intn(90*24)) * time.Hour)
		post := &models.Post{
			ID:        primitive.NewObjectID(),
			Title:     gofakeit.Sentence(5),
			Content:   gofakeit.Paragraph(1, 3, 5, "\n"),
			ImageURL:  fmt.Sprintf("images/%s.png", gofakeit.UUID()),
			Creator:   creator.ID,
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		}
		docs = append(docs, post)
		byCreator[creator.ID] = append(byCreator[creator.ID], post.ID)
	}

	if _, err := s.db.Collection(database.PostsCollection).InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("inserting posts: %w", err)
	}

	usersColl := s.db.Collection(database.UsersCollection)
	for creatorID, postIDs := range byCreator {
		_, err := usersColl.UpdateOne(ctx,
			bson.M{"_id": creatorID},
			bson.M{"$push": bson.M{"posts": bson.M{"$each": postIDs}}},
		)
		if err != nil {
			return fmt.Errorf("attaching posts to user %s: %w", creatorID.Hex(), err)
		}
	}

	log.Printf("Seeded %d posts across %d users", n, len(byCreator))
	return nil
}
