package api

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophsocial/internal/client/graphql"
)

// Executor is the subset of *graphql.Client used here.
type Executor interface {
	Query(ctx context.Context, doc graphql.Document, vars map[string]any, out any, opts ...graphql.QueryOption) error
	Mutate(ctx context.Context, doc graphql.Document, vars map[string]any, out any, opts ...graphql.MutateOption) error
}

// Service exposes the typed GraphQL operations.
//
// Contract:
//   - Queries are cache-first; pass graphql.NetworkOnly() to force a fetch.
//   - Mutations always go to the network and keep the cache consistent
//     with their result before returning.
//   - Errors are *graphql.NetworkError or *graphql.GraphQLError, wrapped.
type Service interface {
	Login(ctx context.Context, email, password string) (*AuthPayload, error)
	AddUser(ctx context.Context, username, email, password string) (*AuthPayload, error)
	Me(ctx context.Context, opts ...graphql.QueryOption) (*Profile, error)
	Posts(ctx context.Context, opts ...graphql.QueryOption) ([]Post, error)
	UpdateProfile(ctx context.Context, in ProfileInput) (*Profile, error)
	AddPost(ctx context.Context, text, image string) (*Post, error)
	RemovePost(ctx context.Context, postID string) (string, error)
	AddComment(ctx context.Context, postID, text string) (*Post, error)
	RemoveComment(ctx context.Context, postID, commentID string) (*Post, error)
	AddLike(ctx context.Context, postID string, likeCount int) (*Post, error)
	RemoveLike(ctx context.Context, postID, likeID string) (*Post, error)
	RemoveApplication(ctx context.Context, applicationID string) ([]Application, error)
}

type service struct {
	gql Executor
}

func NewService(gql Executor) Service {
	return &service{gql: gql}
}

func (s *service) Login(ctx context.Context, email, password string) (*AuthPayload, error) {
	var out struct {
		Login AuthPayload `json:"login"`
	}
	vars := map[string]any{"email": email, "password": password}
	if err := s.gql.Mutate(ctx, LoginDoc, vars, &out); err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}
	return &out.Login, nil
}

func (s *service) AddUser(ctx context.Context, username, email, password string) (*AuthPayload, error) {
	var out struct {
		AddUser AuthPayload `json:"addUser"`
	}
	vars := map[string]any{"username": username, "email": email, "password": password}
	if err := s.gql.Mutate(ctx, AddUserDoc, vars, &out); err != nil {
		return nil, fmt.Errorf("add user error: %w", err)
	}
	return &out.AddUser, nil
}

func (s *service) Me(ctx context.Context, opts ...graphql.QueryOption) (*Profile, error) {
	var out struct {
		Me *Profile `json:"me"`
	}
	if err := s.gql.Query(ctx, MeDoc, nil, &out, opts...); err != nil {
		return nil, fmt.Errorf("me error: %w", err)
	}
	if out.Me == nil {
		return nil, ErrNotFound
	}
	return out.Me, nil
}

func (s *service) Posts(ctx context.Context, opts ...graphql.QueryOption) ([]Post, error) {
	var out struct {
		Posts []Post `json:"posts"`
	}
	if err := s.gql.Query(ctx, PostsDoc, nil, &out, opts...); err != nil {
		return nil, fmt.Errorf("posts error: %w", err)
	}
	return out.Posts, nil
}

// UpdateProfile sends in as is; callers decide whether application data is
// included.
func (s *service) UpdateProfile(ctx context.Context, in ProfileInput) (*Profile, error) {
	var out struct {
		UpdateProfile Profile `json:"updateProfile"`
	}
	err := s.gql.Mutate(ctx, UpdateProfileDoc, in.Variables(), &out, graphql.WithRefetch(MeDoc))
	if err != nil {
		return nil, fmt.Errorf("update profile error: %w", err)
	}
	return &out.UpdateProfile, nil
}

func (s *service) AddPost(ctx context.Context, text, image string) (*Post, error) {
	var out struct {
		AddPost Post `json:"addPost"`
	}
	vars := map[string]any{"postText": text}
	if image != "" {
		vars["image"] = image
	}
	if err := s.gql.Mutate(ctx, AddPostDoc, vars, &out, graphql.WithRefetch(PostsDoc, MeDoc)); err != nil {
		return nil, fmt.Errorf("add post error: %w", err)
	}
	return &out.AddPost, nil
}

// RemovePost returns the removed post's id. The result carries nothing to
// reconcile, so posts and me are re-fetched.
func (s *service) RemovePost(ctx context.Context, postID string) (string, error) {
	var out struct {
		RemovePost struct {
			ID ID `json:"_id"`
		} `json:"removePost"`
	}
	vars := map[string]any{"postId": postID}
	if err := s.gql.Mutate(ctx, RemovePostDoc, vars, &out, graphql.WithRefetch(PostsDoc, MeDoc)); err != nil {
		return "", fmt.Errorf("remove post error: %w", err)
	}
	return string(out.RemovePost.ID), nil
}

func (s *service) AddComment(ctx context.Context, postID, text string) (*Post, error) {
	vars := map[string]any{"postId": postID, "commentText": text}
	post, err := s.mutatePost(ctx, AddCommentDoc, vars)
	if err != nil {
		return nil, fmt.Errorf("add comment error: %w", err)
	}
	return post, nil
}

func (s *service) RemoveComment(ctx context.Context, postID, commentID string) (*Post, error) {
	vars := map[string]any{"postId": postID, "commentId": commentID}
	post, err := s.mutatePost(ctx, RemoveCommentDoc, vars)
	if err != nil {
		return nil, fmt.Errorf("remove comment error: %w", err)
	}
	return post, nil
}

func (s *service) AddLike(ctx context.Context, postID string, likeCount int) (*Post, error) {
	vars := map[string]any{"postId": postID, "likeCount": likeCount}
	post, err := s.mutatePost(ctx, AddLikeDoc, vars)
	if err != nil {
		return nil, fmt.Errorf("add like error: %w", err)
	}
	return post, nil
}

func (s *service) RemoveLike(ctx context.Context, postID, likeID string) (*Post, error) {
	vars := map[string]any{"postId": postID, "likeId": likeID}
	post, err := s.mutatePost(ctx, RemoveLikeDoc, vars)
	if err != nil {
		return nil, fmt.Errorf("remove like error: %w", err)
	}
	return post, nil
}

// mutatePost runs a mutation whose result field (named after the document)
// is the updated parent post, and reconciles it.
func (s *service) mutatePost(ctx context.Context, doc graphql.Document, vars map[string]any) (*Post, error) {
	var out map[string]Post
	if err := s.gql.Mutate(ctx, doc, vars, &out, graphql.WithReconcile(doc.Name)); err != nil {
		return nil, err
	}
	post, ok := out[doc.Name]
	if !ok {
		return nil, ErrNotFound
	}
	return &post, nil
}

func (s *service) RemoveApplication(ctx context.Context, applicationID string) ([]Application, error) {
	var out struct {
		RemoveApplication struct {
			Applications []Application `json:"applications"`
		} `json:"removeApplication"`
	}
	vars := map[string]any{"applicationId": applicationID}
	if err := s.gql.Mutate(ctx, RemoveApplicationDoc, vars, &out, graphql.WithRefetch(MeDoc)); err != nil {
		return nil, fmt.Errorf("remove application error: %w", err)
	}
	return out.RemoveApplication.Applications, nil
}
