package cli

import (
	"context"
	"fmt"
)

func (a *App) promptID(prompt string) (string, error) {
	id, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", errEmptyInput
	}
	return id, nil
}

func (a *App) ListPosts(ctx context.Context) error {
	posts, err := a.api.Posts(ctx)
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		fmt.Fprintln(a.out, "No posts yet.")
		return nil
	}
	for _, p := range posts {
		renderPost(a.out, p)
	}
	return nil
}

func (a *App) AddPost(ctx context.Context) error {
	text, err := getMultiline(a.reader, "Enter post text", a.out)
	if err != nil {
		return err
	}
	if text == "" {
		return errEmptyInput
	}
	image, err := getSimpleText(a.reader, "Image URL (optional)", a.out)
	if err != nil {
		return err
	}

	post, err := a.api.AddPost(ctx, text, image)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Post %s published.\n", post.ID)
	return nil
}

func (a *App) RemovePost(ctx context.Context) error {
	id, err := a.promptID("Enter post id to remove")
	if err != nil {
		return err
	}
	removed, err := a.api.RemovePost(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Post %s removed.\n", removed)
	return nil
}

func (a *App) AddComment(ctx context.Context) error {
	postID, err := a.promptID("Enter post id")
	if err != nil {
		return err
	}
	text, err := getSimpleText(a.reader, "Enter comment", a.out)
	if err != nil {
		return err
	}
	if text == "" {
		return errEmptyInput
	}

	post, err := a.api.AddComment(ctx, postID, text)
	if err != nil {
		return err
	}
	renderPost(a.out, *post)
	return nil
}

func (a *App) RemoveComment(ctx context.Context) error {
	postID, err := a.promptID("Enter post id")
	if err != nil {
		return err
	}
	commentID, err := a.promptID("Enter comment id")
	if err != nil {
		return err
	}

	post, err := a.api.RemoveComment(ctx, postID, commentID)
	if err != nil {
		return err
	}
	renderPost(a.out, *post)
	return nil
}

func (a *App) AddLike(ctx context.Context) error {
	postID, err := a.promptID("Enter post id")
	if err != nil {
		return err
	}

	post, err := a.api.AddLike(ctx, postID, 1)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Post %s now has %d like(s).\n", post.ID, len(post.Likes))
	return nil
}

func (a *App) RemoveLike(ctx context.Context) error {
	postID, err := a.promptID("Enter post id")
	if err != nil {
		return err
	}
	likeID, err := a.promptID("Enter like id")
	if err != nil {
		return err
	}

	post, err := a.api.RemoveLike(ctx, postID, likeID)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Post %s now has %d like(s).\n", post.ID, len(post.Likes))
	return nil
}
