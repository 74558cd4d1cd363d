package githubapi

import (
	"context"
	"fmt"

	"github.com/google/go-github/v62/github"
)

const (
	createPullRequestFailedTemplateConstant = "failed to create pull request: %w"
	getPullRequestFailedTemplateConstant    = "failed to get pull request %d: %w"
	listPullRequestsFailedTemplateConstant  = "failed to list pull requests: %w"
	updatePullRequestFailedTemplateConstant = "failed to update pull request %d: %w"
	mergePullRequestFailedTemplateConstant  = "failed to merge pull request %d: %w"
	closePullRequestFailedTemplateConstant  = "failed to close pull request %d: %w"
	pullRequestStateOpenConstant            = "open"
	pullRequestStateClosedConstant          = "closed"
	pullRequestStateAllConstant             = "all"
)

// PullRequestState filters pull request listings.
type PullRequestState string

// Pull request listing states.
const (
	PullRequestStateOpen   PullRequestState = pullRequestStateOpenConstant
	PullRequestStateClosed PullRequestState = pullRequestStateClosedConstant
	PullRequestStateAll    PullRequestState = pullRequestStateAllConstant
)

// PullRequestSummary is the reduced pull request view the client returns.
type PullRequestSummary struct {
	Number     int
	Title      string
	Body       string
	State      string
	HTMLURL    string
	BaseBranch string
	HeadBranch string
}

// CreatePullRequestOptions configure pull request creation.
type CreatePullRequestOptions struct {
	Title      string
	Body       string
	HeadBranch string
	BaseBranch string
	Draft      bool
}

// UpdatePullRequestOptions update pull request fields. Nil fields keep their
// current value.
type UpdatePullRequestOptions struct {
	Title      *string
	Body       *string
	BaseBranch *string
}

func summarizePullRequest(pullRequest *github.PullRequest) PullRequestSummary {
	summary := PullRequestSummary{
		Number:  pullRequest.GetNumber(),
		Title:   pullRequest.GetTitle(),
		Body:    pullRequest.GetBody(),
		State:   pullRequest.GetState(),
		HTMLURL: pullRequest.GetHTMLURL(),
	}
	if pullRequest.Base != nil {
		summary.BaseBranch = pullRequest.Base.GetRef()
	}
	if pullRequest.Head != nil {
		summary.HeadBranch = pullRequest.Head.GetRef()
	}
	return summary
}

// CreatePullRequest opens a pull request.
func (client *Client) CreatePullRequest(executionContext context.Context, repository Repository, options CreatePullRequestOptions) (PullRequestSummary, error) {
	newPullRequest := &github.NewPullRequest{
		Title: github.String(options.Title),
		Head:  github.String(options.HeadBranch),
		Base:  github.String(options.BaseBranch),
		Draft: github.Bool(options.Draft),
	}
	if len(options.Body) > 0 {
		newPullRequest.Body = github.String(options.Body)
	}

	createdPullRequest, _, creationError := client.restClient.PullRequests.Create(executionContext, repository.Owner, repository.Name, newPullRequest)
	if creationError != nil {
		return PullRequestSummary{}, fmt.Errorf(createPullRequestFailedTemplateConstant, creationError)
	}
	return summarizePullRequest(createdPullRequest), nil
}

// GetPullRequest fetches one pull request by number.
func (client *Client) GetPullRequest(executionContext context.Context, repository Repository, pullRequestNumber int) (PullRequestSummary, error) {
	pullRequest, _, getError := client.restClient.PullRequests.Get(executionContext, repository.Owner, repository.Name, pullRequestNumber)
	if getError != nil {
		return PullRequestSummary{}, fmt.Errorf(getPullRequestFailedTemplateConstant, pullRequestNumber, getError)
	}
	return summarizePullRequest(pullRequest), nil
}

// ListPullRequests lists pull requests in the provided state.
func (client *Client) ListPullRequests(executionContext context.Context, repository Repository, state PullRequestState) ([]PullRequestSummary, error) {
	listOptions := &github.PullRequestListOptions{State: string(state)}
	pullRequests, _, listError := client.restClient.PullRequests.List(executionContext, repository.Owner, repository.Name, listOptions)
	if listError != nil {
		return nil, fmt.Errorf(listPullRequestsFailedTemplateConstant, listError)
	}

	summaries := make([]PullRequestSummary, 0, len(pullRequests))
	for _, pullRequest := range pullRequests {
		summaries = append(summaries, summarizePullRequest(pullRequest))
	}
	return summaries, nil
}

// UpdatePullRequest edits the provided pull request fields.
func (client *Client) UpdatePullRequest(executionContext context.Context, repository Repository, pullRequestNumber int, options UpdatePullRequestOptions) (PullRequestSummary, error) {
	pullRequestUpdate := &github.PullRequest{
		Title: options.Title,
		Body:  options.Body,
	}
	if options.BaseBranch != nil {
		pullRequestUpdate.Base = &github.PullRequestBranch{Ref: options.BaseBranch}
	}

	updatedPullRequest, _, updateError := client.restClient.PullRequests.Edit(executionContext, repository.Owner, repository.Name, pullRequestNumber, pullRequestUpdate)
	if updateError != nil {
		return PullRequestSummary{}, fmt.Errorf(updatePullRequestFailedTemplateConstant, pullRequestNumber, updateError)
	}
	return summarizePullRequest(updatedPullRequest), nil
}

// MergePullRequest merges a pull request with the provided commit message.
func (client *Client) MergePullRequest(executionContext context.Context, repository Repository, pullRequestNumber int, commitMessage string) error {
	_, _, mergeError := client.restClient.PullRequests.Merge(executionContext, repository.Owner, repository.Name, pullRequestNumber, commitMessage, nil)
	if mergeError != nil {
		return fmt.Errorf(mergePullRequestFailedTemplateConstant, pullRequestNumber, mergeError)
	}
	return nil
}

// ClosePullRequest closes a pull request without merging it.
func (client *Client) ClosePullRequest(executionContext context.Context, repository Repository, pullRequestNumber int) error {
	closedState := pullRequestStateClosedConstant
	pullRequestUpdate := &github.PullRequest{State: github.String(closedState)}
	_, _, closeError := client.restClient.PullRequests.Edit(executionContext, repository.Owner, repository.Name, pullRequestNumber, pullRequestUpdate)
	if closeError != nil {
		return fmt.Errorf(closePullRequestFailedTemplateConstant, pullRequestNumber, closeError)
	}
	return nil
}
