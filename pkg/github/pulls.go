package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"codeguard/internal/model"
)

const (
	acceptJSON = "application/vnd.github+json"
	acceptRaw  = "application/vnd.github.raw+json"
)

// GetPullRequest fetches the current state of a pull request.
func (c *Client) GetPullRequest(ctx context.Context, ref model.PullRequestRef) (*PullRequest, error) {
	u := fmt.Sprintf("%s/repos/%s/%s/pulls/%d", c.baseURL, ref.Owner, ref.Repo, ref.Number)

	var resp pullRequestResponse
	if err := c.do(ctx, http.MethodGet, u, acceptJSON, nil, &resp); err != nil {
		return nil, err
	}

	return &PullRequest{
		Number:  resp.Number,
		State:   resp.State,
		Title:   resp.Title,
		HeadSHA: resp.Head.SHA,
		Author:  resp.User.Login,
	}, nil
}

// PullRequest is the client-facing view of a pull request.
type PullRequest struct {
	Number  int
	State   string
	Title   string
	HeadSHA string
	Author  string
}

// ListChangedFiles lists the files changed in a pull request, in the order
// the API reports them.
func (c *Client) ListChangedFiles(ctx context.Context, ref model.PullRequestRef) ([]model.ChangedFile, error) {
	u := fmt.Sprintf("%s/repos/%s/%s/pulls/%d/files?per_page=100", c.baseURL, ref.Owner, ref.Repo, ref.Number)

	var resp []changedFileResponse
	if err := c.do(ctx, http.MethodGet, u, acceptJSON, nil, &resp); err != nil {
		return nil, err
	}

	files := make([]model.ChangedFile, 0, len(resp))
	for _, f := range resp {
		files = append(files, model.ChangedFile{
			Path:      f.Filename,
			Status:    model.FileStatus(f.Status),
			Additions: f.Additions,
			Deletions: f.Deletions,
			Patch:     f.Patch,
		})
	}
	return files, nil
}

// GetFileContent fetches a file's content at the given commit using the raw
// media type, so no base64 round trip is needed.
func (c *Client) GetFileContent(ctx context.Context, ref model.PullRequestRef, path, commitSHA string) (string, error) {
	u := fmt.Sprintf("%s/repos/%s/%s/contents/%s?ref=%s",
		c.baseURL, ref.Owner, ref.Repo, escapePath(path), url.QueryEscape(commitSHA))

	var content string
	if err := c.do(ctx, http.MethodGet, u, acceptRaw, nil, &content); err != nil {
		return "", err
	}
	return content, nil
}

// escapePath escapes each path segment while keeping separators.
func escapePath(path string) string {
	return (&url.URL{Path: path}).EscapedPath()
}
