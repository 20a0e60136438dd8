package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPublic_CopiesAllowListedFieldsOnly(t *testing.T) {
	t.Parallel()

	postID := primitive.NewObjectID()
	user := &User{
		ID:       primitive.NewObjectID(),
		Email:    "ada@example.com",
		Name:     "Ada",
		Password: "$2a$12$definitely-a-bcrypt-hash",
		Status:   DefaultStatus,
		Posts:    []primitive.ObjectID{postID},
	}

	pub := user.Public()
	assert.Equal(t, user.ID.Hex(), pub.ID)
	assert.Equal(t, "ada@example.com", pub.Email)
	assert.Equal(t, "Ada", pub.Name)
	assert.Equal(t, DefaultStatus, pub.Status)
	assert.Equal(t, []string{postID.Hex()}, pub.Posts)

	// the serialized projection must never mention the password
	raw, err := json.Marshal(pub)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")
	assert.NotContains(t, string(raw), user.Password)
}

func TestPublic_NilPostsSerializesAsEmptyList(t *testing.T) {
	t.Parallel()

	pub := (&User{ID: primitive.NewObjectID()}).Public()
	require.NotNil(t, pub.Posts)
	assert.Empty(t, pub.Posts)
}
