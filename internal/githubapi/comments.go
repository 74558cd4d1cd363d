package githubapi

import (
	"context"
	"fmt"

	"github.com/google/go-github/v62/github"
)

const (
	createCommentFailedTemplateConstant = "failed to create comment on issue %d: %w"
	listCommentsFailedTemplateConstant  = "failed to list comments on issue %d: %w"
	deleteCommentFailedTemplateConstant = "failed to delete comment %d: %w"
)

// Comment is the reduced comment view the client returns.
type Comment struct {
	Identifier int64
	Body       string
	Author     string
}

func summarizeComment(comment *github.IssueComment) Comment {
	summary := Comment{
		Identifier: comment.GetID(),
		Body:       comment.GetBody(),
	}
	if comment.User != nil {
		summary.Author = comment.User.GetLogin()
	}
	return summary
}

// CreateComment posts a comment on an issue or pull request.
func (client *Client) CreateComment(executionContext context.Context, repository Repository, issueNumber int, commentBody string) (Comment, error) {
	newComment := &github.IssueComment{Body: github.String(commentBody)}
	createdComment, _, creationError := client.restClient.Issues.CreateComment(executionContext, repository.Owner, repository.Name, issueNumber, newComment)
	if creationError != nil {
		return Comment{}, fmt.Errorf(createCommentFailedTemplateConstant, issueNumber, creationError)
	}
	return summarizeComment(createdComment), nil
}

// ListComments lists the comments on an issue or pull request.
func (client *Client) ListComments(executionContext context.Context, repository Repository, issueNumber int) ([]Comment, error) {
	issueComments, _, listError := client.restClient.Issues.ListComments(executionContext, repository.Owner, repository.Name, issueNumber, nil)
	if listError != nil {
		return nil, fmt.Errorf(listCommentsFailedTemplateConstant, issueNumber, listError)
	}

	comments := make([]Comment, 0, len(issueComments))
	for _, issueComment := range issueComments {
		comments = append(comments, summarizeComment(issueComment))
	}
	return comments, nil
}

// DeleteComment removes a comment by identifier.
func (client *Client) DeleteComment(executionContext context.Context, repository Repository, commentIdentifier int64) error {
	_, deleteError := client.restClient.Issues.DeleteComment(executionContext, repository.Owner, repository.Name, commentIdentifier)
	if deleteError != nil {
		return fmt.Errorf(deleteCommentFailedTemplateConstant, commentIdentifier, deleteError)
	}
	return nil
}
