package github

import (
	"context"
	"fmt"
	"net/http"

	"codeguard/internal/model"
)

// ListComments lists the issue comments on a pull request.
func (c *Client) ListComments(ctx context.Context, ref model.PullRequestRef) ([]Comment, error) {
	u := fmt.Sprintf("%s/repos/%s/%s/issues/%d/comments?per_page=100", c.baseURL, ref.Owner, ref.Repo, ref.Number)

	var comments []Comment
	if err := c.do(ctx, http.MethodGet, u, acceptJSON, nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// CreateComment posts a new issue comment on a pull request.
func (c *Client) CreateComment(ctx context.Context, ref model.PullRequestRef, body string) (*Comment, error) {
	u := fmt.Sprintf("%s/repos/%s/%s/issues/%d/comments", c.baseURL, ref.Owner, ref.Repo, ref.Number)

	var created Comment
	if err := c.do(ctx, http.MethodPost, u, acceptJSON, createCommentRequest{Body: body}, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateComment replaces the body of an existing issue comment.
func (c *Client) UpdateComment(ctx context.Context, ref model.PullRequestRef, commentID int64, body string) (*Comment, error) {
	u := fmt.Sprintf("%s/repos/%s/%s/issues/comments/%d", c.baseURL, ref.Owner, ref.Repo, commentID)

	var updated Comment
	if err := c.do(ctx, http.MethodPatch, u, acceptJSON, createCommentRequest{Body: body}, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
