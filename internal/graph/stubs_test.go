package graph

import (
	"context"
	"sort"
	"sync"

	"waypost/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memUserRepo is an in-memory repository.UserRepository.
type memUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[primitive.ObjectID]*models.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.Posts == nil {
		user.Posts = []primitive.ObjectID{}
	}
	r.users[user.ID] = user
	return nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[id], nil
}

func (r *memUserRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		u.Status = status
	}
	return nil
}

func (r *memUserRepo) AttachPost(_ context.Context, userID, postID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[userID]; ok {
		u.Posts = append(u.Posts, postID)
	}
	return nil
}

func (r *memUserRepo) DetachPost(_ context.Context, userID, postID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return nil
	}
	kept := u.Posts[:0]
	for _, id := range u.Posts {
		if id != postID {
			kept = append(kept, id)
		}
	}
	u.Posts = kept
	return nil
}

// memPostRepo is an in-memory repository.PostRepository. Listing follows the
// real repository's ordering: newest first.
type memPostRepo struct {
	mu    sync.Mutex
	users *memUserRepo
	posts map[primitive.ObjectID]*models.Post
	order []primitive.ObjectID
}

func newMemPostRepo(users *memUserRepo) *memPostRepo {
	return &memPostRepo{users: users, posts: make(map[primitive.ObjectID]*models.Post)}
}

func (r *memPostRepo) Create(_ context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	r.posts[post.ID] = post
	r.order = append(r.order, post.ID)
	return nil
}

func (r *memPostRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	if post.CreatorUser == nil {
		post.CreatorUser = r.users.users[post.Creator]
	}
	return post, nil
}

func (r *memPostRepo) sortedLocked() []*models.Post {
	out := make([]*models.Post, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.posts[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (r *memPostRepo) List(_ context.Context, page, perPage int) ([]*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.sortedLocked()
	start := (page - 1) * perPage
	if start >= len(all) {
		return []*models.Post{}, nil
	}
	end := start + perPage
	if end > len(all) {
		end = len(all)
	}
	out := all[start:end]
	for _, p := range out {
		if p.CreatorUser == nil {
			p.CreatorUser = r.users.users[p.Creator]
		}
	}
	return out, nil
}

func (r *memPostRepo) ListByCreator(_ context.Context, creatorID primitive.ObjectID) ([]*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Post
	for _, p := range r.sortedLocked() {
		if p.Creator == creatorID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memPostRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.posts)), nil
}

func (r *memPostRepo) Update(_ context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.posts[post.ID] = post
	return nil
}

func (r *memPostRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.posts, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// recordingCleaner records enqueued paths for assertions.
type recordingCleaner struct {
	mu       sync.Mutex
	enqueued []string
}

func (c *recordingCleaner) Enqueue(relPath string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enqueued = append(c.enqueued, relPath)
}
