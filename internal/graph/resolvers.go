// Package graph defines the GraphQL schema, resolvers, and HTTP endpoint.
package graph

import (
	"time"

	"waypost/internal/auth"
	"waypost/internal/models"
	"waypost/internal/observability"
	"waypost/internal/service"

	"github.com/graphql-go/graphql"
)

// Resolver implements every query and mutation field over the service layer.
type Resolver struct {
	authSvc *service.AuthService
	postSvc *service.PostService
	userSvc *service.UserService
}

// NewResolver returns a Resolver over the given services.
func NewResolver(authSvc *service.AuthService, postSvc *service.PostService, userSvc *service.UserService) *Resolver {
	return &Resolver{authSvc: authSvc, postSvc: postSvc, userSvc: userSvc}
}

// requireAuth returns the caller's user ID, or an Unauthenticated error when
// the request carries no verified identity. Absent and invalid credentials
// fail identically here; the distinction was already recorded by the
// middleware.
func requireAuth(p graphql.ResolveParams) (string, error) {
	ra := auth.FromContext(p.Context)
	if !ra.IsAuthenticated() {
		return "", models.NewUnauthenticatedError()
	}
	return ra.UserID, nil
}

// instrument wraps a resolver with an operation counter.
func instrument(name string, fn graphql.FieldResolveFn) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		out, err := fn(p)
		result := "ok"
		if err != nil {
			result = "error"
			observability.RecordErrorInContext(p.Context, err)
		}
		observability.GraphQLOperations.WithLabelValues(name, result).Inc()
		return out, err
	}
}

func (r *Resolver) createUser(p graphql.ResolveParams) (interface{}, error) {
	input, _ := p.Args["userInput"].(map[string]interface{})
	in := service.RegisterInput{
		Email:    stringArg(input, "email"),
		Name:     stringArg(input, "name"),
		Password: stringArg(input, "password"),
	}
	user, err := r.authSvc.Register(p.Context, in)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}

func (r *Resolver) login(p graphql.ResolveParams) (interface{}, error) {
	email, _ := p.Args["email"].(string)
	password, _ := p.Args["password"].(string)
	return r.authSvc.Login(p.Context, email, password)
}

func (r *Resolver) createPost(p graphql.ResolveParams) (interface{}, error) {
	userID, err := requireAuth(p)
	if err != nil {
		return nil, err
	}
	input, _ := p.Args["postInput"].(map[string]interface{})
	in := service.CreatePostInput{
		Title:    stringArg(input, "title"),
		Content:  stringArg(input, "content"),
		ImageURL: stringArg(input, "imageUrl"),
	}
	return r.postSvc.Create(p.Context, userID, in)
}

func (r *Resolver) posts(p graphql.ResolveParams) (interface{}, error) {
	if _, err := requireAuth(p); err != nil {
		return nil, err
	}
	page := 1
	if v, ok := p.Args["page"].(int); ok && v > 0 {
		page = v
	}
	return r.postSvc.List(p.Context, page)
}

func (r *Resolver) post(p graphql.ResolveParams) (interface{}, error) {
	if _, err := requireAuth(p); err != nil {
		return nil, err
	}
	id, _ := p.Args["id"].(string)
	return r.postSvc.Get(p.Context, id)
}

func (r *Resolver) updatePost(p graphql.ResolveParams) (interface{}, error) {
	userID, err := requireAuth(p)
	if err != nil {
		return nil, err
	}
	id, _ := p.Args["id"].(string)
	input, _ := p.Args["postInput"].(map[string]interface{})
	in := service.UpdatePostInput{
		Title:   stringArg(input, "title"),
		Content: stringArg(input, "content"),
	}
	if raw, ok := input["imageUrl"].(string); ok {
		in.ImageURL = &raw
	}
	return r.postSvc.Update(p.Context, userID, id, in)
}

func (r *Resolver) deletePost(p graphql.ResolveParams) (interface{}, error) {
	userID, err := requireAuth(p)
	if err != nil {
		return nil, err
	}
	id, _ := p.Args["id"].(string)
	if err := r.postSvc.Delete(p.Context, userID, id); err != nil {
		return nil, err
	}
	return true, nil
}

func (r *Resolver) user(p graphql.ResolveParams) (interface{}, error) {
	userID, err := requireAuth(p)
	if err != nil {
		return nil, err
	}
	user, err := r.userSvc.Current(p.Context, userID)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}

func (r *Resolver) updateStatus(p graphql.ResolveParams) (interface{}, error) {
	userID, err := requireAuth(p)
	if err != nil {
		return nil, err
	}
	status, _ := p.Args["status"].(string)
	user, err := r.userSvc.UpdateStatus(p.Context, userID, status)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}

// userPosts resolves the posts field of a user projection.
func (r *Resolver) userPosts(p graphql.ResolveParams) (interface{}, error) {
	pub, ok := p.Source.(*models.PublicUser)
	if !ok {
		return []*models.Post{}, nil
	}
	return r.postSvc.ByCreator(p.Context, pub.ID)
}

// postCreator resolves the creator field of a post, using the record
// populated at read time when available.
func (r *Resolver) postCreator(p graphql.ResolveParams) (interface{}, error) {
	post, ok := p.Source.(*models.Post)
	if !ok {
		return nil, nil
	}
	if post.CreatorUser != nil {
		return post.CreatorUser.Public(), nil
	}
	user, err := r.userSvc.Current(p.Context, post.Creator.Hex())
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func stringArg(m map[string]interface{}, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}
