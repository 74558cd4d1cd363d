package githubapi

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"
)

const (
	missingRepositoryMessageConstant  = "repository must be provided as owner/name"
	repositorySeparatorConstant       = "/"
	expectedRepositorySegmentsMinimum = 2
)

// ErrInvalidRepository indicates a repository identifier missing its owner or
// name segment.
var ErrInvalidRepository = errors.New(missingRepositoryMessageConstant)

// Repository names a repository by owner and name.
type Repository struct {
	Owner string
	Name  string
}

// ParseRepository splits an "owner/name" identifier.
func ParseRepository(repositoryIdentifier string) (Repository, error) {
	segments := strings.SplitN(strings.TrimSpace(repositoryIdentifier), repositorySeparatorConstant, expectedRepositorySegmentsMinimum)
	if len(segments) < expectedRepositorySegmentsMinimum || len(segments[0]) == 0 || len(segments[1]) == 0 {
		return Repository{}, ErrInvalidRepository
	}
	return Repository{Owner: segments[0], Name: segments[1]}, nil
}

// ClientOption customizes a Client during construction.
type ClientOption func(*Client)

// WithBaseURL points the client at an alternate API endpoint.
func WithBaseURL(baseURL *url.URL) ClientOption {
	return func(client *Client) {
		client.restClient.BaseURL = baseURL
	}
}

// Client issues authenticated GitHub REST requests.
type Client struct {
	restClient *github.Client
}

// NewClient builds a client. An empty token yields an unauthenticated client
// limited to public resources.
func NewClient(executionContext context.Context, token string, options ...ClientOption) *Client {
	var restClient *github.Client
	if len(token) > 0 {
		tokenSource := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		restClient = github.NewClient(oauth2.NewClient(executionContext, tokenSource))
	} else {
		restClient = github.NewClient(nil)
	}

	client := &Client{restClient: restClient}
	for _, option := range options {
		option(client)
	}
	return client
}
