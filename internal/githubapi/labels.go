package githubapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-github/v62/github"
)

const (
	createLabelFailedTemplateConstant  = "failed to create label %q: %w"
	addLabelsFailedTemplateConstant    = "failed to add labels to issue %d: %w"
	removeLabelFailedTemplateConstant  = "failed to remove label %q from issue %d: %w"
	listLabelsFailedTemplateConstant   = "failed to list labels: %w"
	inspectLabelFailedTemplateConstant = "failed to inspect label %q: %w"
)

// Label is the reduced label view the client returns.
type Label struct {
	Name        string
	Color       string
	Description string
}

func summarizeLabel(label *github.Label) Label {
	return Label{
		Name:        label.GetName(),
		Color:       label.GetColor(),
		Description: label.GetDescription(),
	}
}

// EnsureLabel creates the label when the repository does not already define
// it. An existing label keeps its current color and description.
func (client *Client) EnsureLabel(executionContext context.Context, repository Repository, label Label) error {
	_, labelResponse, getError := client.restClient.Issues.GetLabel(executionContext, repository.Owner, repository.Name, label.Name)
	if getError == nil {
		return nil
	}
	if labelResponse == nil || labelResponse.StatusCode != http.StatusNotFound {
		return fmt.Errorf(inspectLabelFailedTemplateConstant, label.Name, getError)
	}

	newLabel := &github.Label{
		Name:        github.String(label.Name),
		Color:       github.String(label.Color),
		Description: github.String(label.Description),
	}
	_, _, creationError := client.restClient.Issues.CreateLabel(executionContext, repository.Owner, repository.Name, newLabel)
	if creationError != nil {
		return fmt.Errorf(createLabelFailedTemplateConstant, label.Name, creationError)
	}
	return nil
}

// AddLabels attaches labels to an issue or pull request.
func (client *Client) AddLabels(executionContext context.Context, repository Repository, issueNumber int, labelNames []string) error {
	_, _, addError := client.restClient.Issues.AddLabelsToIssue(executionContext, repository.Owner, repository.Name, issueNumber, labelNames)
	if addError != nil {
		return fmt.Errorf(addLabelsFailedTemplateConstant, issueNumber, addError)
	}
	return nil
}

// RemoveLabel detaches a label from an issue or pull request.
func (client *Client) RemoveLabel(executionContext context.Context, repository Repository, issueNumber int, labelName string) error {
	_, removeError := client.restClient.Issues.RemoveLabelForIssue(executionContext, repository.Owner, repository.Name, issueNumber, labelName)
	if removeError != nil {
		return fmt.Errorf(removeLabelFailedTemplateConstant, labelName, issueNumber, removeError)
	}
	return nil
}

// ListLabels lists the labels defined on the repository.
func (client *Client) ListLabels(executionContext context.Context, repository Repository) ([]Label, error) {
	repositoryLabels, _, listError := client.restClient.Issues.ListLabels(executionContext, repository.Owner, repository.Name, nil)
	if listError != nil {
		return nil, fmt.Errorf(listLabelsFailedTemplateConstant, listError)
	}

	labels := make([]Label, 0, len(repositoryLabels))
	for _, repositoryLabel := range repositoryLabels {
		labels = append(labels, summarizeLabel(repositoryLabel))
	}
	return labels, nil
}
