package githubapi

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	listCommandUseConstant                = "pr-list"
	listCommandShortDescriptionConstant   = "List pull requests for a repository"
	listCommandLongDescriptionConstant    = "pr-list prints the pull requests of a repository, filtered by state."
	repositoryFlagNameConstant            = "repository"
	repositoryFlagDescriptionConstant     = "Repository to list pull requests for, as owner/name"
	stateFlagNameConstant                 = "state"
	stateFlagDescriptionConstant          = "Pull request state filter: open, closed, or all"
	clientProviderMissingMessageConstant  = "github client provider not configured"
	missingRepositoryFlagMessageConstant  = "repository is required; supply --repository owner/name"
	pullRequestListLineTemplateConstant   = "#%d %s (%s)\n"
	pullRequestListEmptyMessageConstant   = "no pull requests"
	unsupportedStateMessageTemplateValue  = "unsupported state %q; use open, closed, or all"
	defaultPullRequestStateFlagValueConst = pullRequestStateOpenConstant
)

// ErrClientProviderNotConfigured indicates a command builder was assembled
// without a way to obtain a Client.
var ErrClientProviderNotConfigured = errors.New(clientProviderMissingMessageConstant)

// ClientProvider yields a REST client for command execution.
type ClientProvider func(executionContext context.Context) (*Client, error)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the pull request listing command.
type CommandBuilder struct {
	LoggerProvider LoggerProvider
	ClientProvider ClientProvider
}

// Build constructs the pr-list command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	if builder.ClientProvider == nil {
		return nil, ErrClientProviderNotConfigured
	}

	command := &cobra.Command{
		Use:   listCommandUseConstant,
		Short: listCommandShortDescriptionConstant,
		Long:  listCommandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}
	command.Flags().String(repositoryFlagNameConstant, "", repositoryFlagDescriptionConstant)
	command.Flags().String(stateFlagNameConstant, string(defaultPullRequestStateFlagValueConst), stateFlagDescriptionConstant)
	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	repositoryIdentifier, repositoryFlagError := command.Flags().GetString(repositoryFlagNameConstant)
	if repositoryFlagError != nil {
		return repositoryFlagError
	}
	if len(strings.TrimSpace(repositoryIdentifier)) == 0 {
		return errors.New(missingRepositoryFlagMessageConstant)
	}
	repository, repositoryError := ParseRepository(repositoryIdentifier)
	if repositoryError != nil {
		return repositoryError
	}

	stateValue, stateFlagError := command.Flags().GetString(stateFlagNameConstant)
	if stateFlagError != nil {
		return stateFlagError
	}
	listState, stateError := parseListState(stateValue)
	if stateError != nil {
		return stateError
	}

	client, clientError := builder.ClientProvider(command.Context())
	if clientError != nil {
		return clientError
	}

	pullRequests, listError := client.ListPullRequests(command.Context(), repository, listState)
	if listError != nil {
		return listError
	}

	if len(pullRequests) == 0 {
		fmt.Fprintln(command.OutOrStdout(), pullRequestListEmptyMessageConstant)
		return nil
	}
	for _, pullRequest := range pullRequests {
		fmt.Fprintf(command.OutOrStdout(), pullRequestListLineTemplateConstant, pullRequest.Number, pullRequest.Title, pullRequest.State)
	}
	return nil
}

func parseListState(stateValue string) (PullRequestState, error) {
	switch PullRequestState(strings.TrimSpace(stateValue)) {
	case PullRequestStateOpen:
		return PullRequestStateOpen, nil
	case PullRequestStateClosed:
		return PullRequestStateClosed, nil
	case PullRequestStateAll:
		return PullRequestStateAll, nil
	default:
		return "", fmt.Errorf(unsupportedStateMessageTemplateValue, stateValue)
	}
}
