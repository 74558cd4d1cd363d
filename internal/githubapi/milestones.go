package githubapi

import (
	"context"
	"fmt"

	"github.com/google/go-github/v62/github"
)

const (
	createMilestoneFailedTemplateConstant = "failed to create milestone %q: %w"
	listMilestonesFailedTemplateConstant  = "failed to list milestones: %w"
	closeMilestoneFailedTemplateConstant  = "failed to close milestone %d: %w"
	assignMilestoneFailedTemplateConstant = "failed to assign milestone %d to issue %d: %w"
	milestoneStateClosedConstant          = "closed"
)

// Milestone is the reduced milestone view the client returns.
type Milestone struct {
	Number int
	Title  string
	State  string
}

func summarizeMilestone(milestone *github.Milestone) Milestone {
	return Milestone{
		Number: milestone.GetNumber(),
		Title:  milestone.GetTitle(),
		State:  milestone.GetState(),
	}
}

// CreateMilestone creates a milestone with the provided title.
func (client *Client) CreateMilestone(executionContext context.Context, repository Repository, milestoneTitle string) (Milestone, error) {
	newMilestone := &github.Milestone{Title: github.String(milestoneTitle)}
	createdMilestone, _, creationError := client.restClient.Issues.CreateMilestone(executionContext, repository.Owner, repository.Name, newMilestone)
	if creationError != nil {
		return Milestone{}, fmt.Errorf(createMilestoneFailedTemplateConstant, milestoneTitle, creationError)
	}
	return summarizeMilestone(createdMilestone), nil
}

// ListMilestones lists the milestones defined on the repository.
func (client *Client) ListMilestones(executionContext context.Context, repository Repository) ([]Milestone, error) {
	repositoryMilestones, _, listError := client.restClient.Issues.ListMilestones(executionContext, repository.Owner, repository.Name, nil)
	if listError != nil {
		return nil, fmt.Errorf(listMilestonesFailedTemplateConstant, listError)
	}

	milestones := make([]Milestone, 0, len(repositoryMilestones))
	for _, repositoryMilestone := range repositoryMilestones {
		milestones = append(milestones, summarizeMilestone(repositoryMilestone))
	}
	return milestones, nil
}

// CloseMilestone marks a milestone as closed.
func (client *Client) CloseMilestone(executionContext context.Context, repository Repository, milestoneNumber int) error {
	closedState := milestoneStateClosedConstant
	milestoneUpdate := &github.Milestone{State: github.String(closedState)}
	_, _, closeError := client.restClient.Issues.EditMilestone(executionContext, repository.Owner, repository.Name, milestoneNumber, milestoneUpdate)
	if closeError != nil {
		return fmt.Errorf(closeMilestoneFailedTemplateConstant, milestoneNumber, closeError)
	}
	return nil
}

// SetPullRequestMilestone assigns a milestone to an issue or pull request.
func (client *Client) SetPullRequestMilestone(executionContext context.Context, repository Repository, issueNumber int, milestoneNumber int) error {
	issueUpdate := &github.IssueRequest{Milestone: github.Int(milestoneNumber)}
	_, _, assignError := client.restClient.Issues.Edit(executionContext, repository.Owner, repository.Name, issueNumber, issueUpdate)
	if assignError != nil {
		return fmt.Errorf(assignMilestoneFailedTemplateConstant, milestoneNumber, issueNumber, assignError)
	}
	return nil
}
