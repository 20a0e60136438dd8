package service

import (
	"context"

	"waypost/internal/models"
	"waypost/internal/repository"
	"waypost/internal/validation"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PerPage is the fixed page size of the post listing.
const PerPage = 2

// ImageCleaner schedules best-effort deletion of a stored image file.
type ImageCleaner interface {
	Enqueue(relPath string)
}

// CreatePostInput is the payload for post creation.
type CreatePostInput struct {
	Title    string
	Content  string
	ImageURL string
}

// UpdatePostInput is the payload for post update. A nil ImageURL keeps the
// existing image.
type UpdatePostInput struct {
	Title    string
	Content  string
	ImageURL *string
}

// PostService implements the post operations. Callers pass the authenticated
// user's identifier; operation-level authentication is checked at the resolver.
type PostService struct {
	posts   repository.PostRepository
	users   repository.UserRepository
	cleaner ImageCleaner
}

// NewPostService returns a PostService over the given repositories.
func NewPostService(posts repository.PostRepository, users repository.UserRepository, cleaner ImageCleaner) *PostService {
	return &PostService{posts: posts, users: users, cleaner: cleaner}
}

// Create validates the input, persists the post, and appends it to the
// creator's post collection.
func (s *PostService) Create(ctx context.Context, userID string, in CreatePostInput) (*models.Post, error) {
	if fields := validation.PostInput(in.Title, in.Content); len(fields) > 0 {
		return nil, models.NewInvalidInputError(fields)
	}

	creatorID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, models.NewUnauthenticatedError()
	}
	creator, err := s.users.GetByID(ctx, creatorID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if creator == nil {
		return nil, models.NewUnauthenticatedError()
	}

	post := &models.Post{
		Title:    in.Title,
		Content:  in.Content,
		ImageURL: in.ImageURL,
		Creator:  creatorID,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := s.users.AttachPost(ctx, creatorID, post.ID); err != nil {
		return nil, models.NewInternalError(err)
	}

	post.CreatorUser = creator
	return post, nil
}

// List returns the requested page of posts, newest first, with the unfiltered
// total count. A page below 1 defaults to the first page.
func (s *PostService) List(ctx context.Context, page int) (*models.PostPage, error) {
	if page < 1 {
		page = 1
	}

	total, err := s.posts.Count(ctx)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	posts, err := s.posts.List(ctx, page, PerPage)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &models.PostPage{Posts: posts, TotalPosts: total}, nil
}

// ByCreator returns every post owned by the given user, newest first.
func (s *PostService) ByCreator(ctx context.Context, userID string) ([]*models.Post, error) {
	creatorID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, models.NewNotFoundError("user")
	}
	posts, err := s.posts.ListByCreator(ctx, creatorID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// Get returns a single post with its creator populated.
func (s *PostService) Get(ctx context.Context, id string) (*models.Post, error) {
	postID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.NewNotFoundError("post")
	}
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if post == nil {
		return nil, models.NewNotFoundError("post")
	}
	return post, nil
}

// Update replaces title and content of the caller's own post. The image is
// replaced only when the input supplies a new value.
func (s *PostService) Update(ctx context.Context, userID, id string, in UpdatePostInput) (*models.Post, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.Creator.Hex() != userID {
		return nil, models.NewForbiddenError()
	}

	if fields := validation.PostInput(in.Title, in.Content); len(fields) > 0 {
		return nil, models.NewInvalidInputError(fields)
	}

	post.Title = in.Title
	post.Content = in.Content
	if in.ImageURL != nil && *in.ImageURL != "" {
		post.ImageURL = *in.ImageURL
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}
	return post, nil
}

// Delete removes the caller's own post, detaches it from the owner's post
// collection, and schedules deletion of the stored image exactly once.
func (s *PostService) Delete(ctx context.Context, userID, id string) error {
	post, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if post.Creator.Hex() != userID {
		return models.NewForbiddenError()
	}

	if err := s.posts.Delete(ctx, post.ID); err != nil {
		return models.NewInternalError(err)
	}
	if err := s.users.DetachPost(ctx, post.Creator, post.ID); err != nil {
		return models.NewInternalError(err)
	}
	if s.cleaner != nil && post.ImageURL != "" {
		s.cleaner.Enqueue(post.ImageURL)
	}
	return nil
}
