package service

import (
	"context"

	"waypost/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn       func(context.Context, *models.User) error
	getByEmailFn   func(context.Context, string) (*models.User, error)
	getByIDFn      func(context.Context, primitive.ObjectID) (*models.User, error)
	updateStatusFn func(context.Context, primitive.ObjectID, string) error
	attachPostFn   func(context.Context, primitive.ObjectID, primitive.ObjectID) error
	detachPostFn   func(context.Context, primitive.ObjectID, primitive.ObjectID) error
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	return s.updateStatusFn(ctx, id, status)
}
func (s *userRepoStub) AttachPost(ctx context.Context, userID, postID primitive.ObjectID) error {
	return s.attachPostFn(ctx, userID, postID)
}
func (s *userRepoStub) DetachPost(ctx context.Context, userID, postID primitive.ObjectID) error {
	return s.detachPostFn(ctx, userID, postID)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:     func(context.Context, *models.User) error { return nil },
		getByEmailFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		getByIDFn: func(context.Context, primitive.ObjectID) (*models.User, error) {
			return nil, nil
		},
		updateStatusFn: func(context.Context, primitive.ObjectID, string) error { return nil },
		attachPostFn: func(context.Context, primitive.ObjectID, primitive.ObjectID) error {
			return nil
		},
		detachPostFn: func(context.Context, primitive.ObjectID, primitive.ObjectID) error {
			return nil
		},
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn        func(context.Context, *models.Post) error
	getByIDFn       func(context.Context, primitive.ObjectID) (*models.Post, error)
	listFn          func(context.Context, int, int) ([]*models.Post, error)
	listByCreatorFn func(context.Context, primitive.ObjectID) ([]*models.Post, error)
	countFn         func(context.Context) (int64, error)
	updateFn        func(context.Context, *models.Post) error
	deleteFn        func(context.Context, primitive.ObjectID) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context, page, perPage int) ([]*models.Post, error) {
	return s.listFn(ctx, page, perPage)
}
func (s *postRepoStub) ListByCreator(ctx context.Context, creatorID primitive.ObjectID) ([]*models.Post, error) {
	return s.listByCreatorFn(ctx, creatorID)
}
func (s *postRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.deleteFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(context.Context, *models.Post) error { return nil },
		getByIDFn: func(context.Context, primitive.ObjectID) (*models.Post, error) {
			return nil, nil
		},
		listFn: func(context.Context, int, int) ([]*models.Post, error) { return nil, nil },
		listByCreatorFn: func(context.Context, primitive.ObjectID) ([]*models.Post, error) {
			return nil, nil
		},
		countFn:  func(context.Context) (int64, error) { return 0, nil },
		updateFn: func(context.Context, *models.Post) error { return nil },
		deleteFn: func(context.Context, primitive.ObjectID) error { return nil },
	}
}

// cleanerStub records enqueued paths for assertions.
type cleanerStub struct {
	enqueued []string
}

func (s *cleanerStub) Enqueue(relPath string) {
	s.enqueued = append(s.enqueued, relPath)
}
