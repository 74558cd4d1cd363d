package gitcmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	statusCommandUseConstant              = "repo-status"
	statusCommandShortDescriptionConstant = "Report the working-tree state of a repository"
	statusCommandLongDescriptionConstant  = "repo-status prints the current branch, the tracked remote branch, and any uncommitted changes for a repository."
	branchesCommandUseConstant            = "branch-list"
	branchesCommandShortDescription       = "List local branches"
	branchesCommandLongDescription        = "branch-list prints the local branches of a repository, marking the currently checked out branch."
	pushCommandUseConstant                = "push-current"
	pushCommandShortDescriptionConstant   = "Push the current branch"
	pushCommandLongDescriptionConstant    = "push-current pushes the current branch to its remote, optionally configuring the upstream tracking reference."
	directoryFlagNameConstant             = "directory"
	directoryFlagDescriptionConstant      = "Repository directory the command runs in"
	setUpstreamFlagNameConstant           = "set-upstream"
	setUpstreamFlagDescriptionConstant    = "Configure the upstream tracking reference while pushing"
	upstreamRemoteFlagNameConstant        = "remote"
	upstreamRemoteFlagDescription         = "Remote the upstream tracking reference points at"
	forcePushFlagNameConstant             = "force"
	forcePushFlagDescriptionConstant      = "Force the push"
	clientProviderMissingMessageConstant  = "git client provider not configured"
	branchStatusTemplateConstant          = "On branch %s\n"
	remoteStatusTemplateConstant          = "Tracking %s\n"
	cleanTreeMessageConstant              = "working tree clean"
	modifiedFileTemplateConstant          = "modified: %s\n"
	currentBranchListTemplateConstant     = "* %s\n"
	otherBranchListTemplateConstant       = "  %s\n"
	pushFailedTemplateConstant            = "push exited with code %d"
)

// ErrClientProviderNotConfigured indicates a command builder was assembled
// without a way to obtain a GitClient.
var ErrClientProviderNotConfigured = errors.New(clientProviderMissingMessageConstant)

// GitClientProvider yields a client scoped to the provided directory.
type GitClientProvider func(executionDirectory string) (*GitClient, error)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the repository inspection and push commands.
type CommandBuilder struct {
	LoggerProvider    LoggerProvider
	GitClientProvider GitClientProvider
}

// BuildStatusCommand constructs the repo-status command.
func (builder *CommandBuilder) BuildStatusCommand() (*cobra.Command, error) {
	if builder.GitClientProvider == nil {
		return nil, ErrClientProviderNotConfigured
	}

	command := &cobra.Command{
		Use:   statusCommandUseConstant,
		Short: statusCommandShortDescriptionConstant,
		Long:  statusCommandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.runStatus,
	}
	command.Flags().String(directoryFlagNameConstant, "", directoryFlagDescriptionConstant)
	return command, nil
}

// BuildBranchListCommand constructs the branch-list command.
func (builder *CommandBuilder) BuildBranchListCommand() (*cobra.Command, error) {
	if builder.GitClientProvider == nil {
		return nil, ErrClientProviderNotConfigured
	}

	command := &cobra.Command{
		Use:   branchesCommandUseConstant,
		Short: branchesCommandShortDescription,
		Long:  branchesCommandLongDescription,
		Args:  cobra.NoArgs,
		RunE:  builder.runBranchList,
	}
	command.Flags().String(directoryFlagNameConstant, "", directoryFlagDescriptionConstant)
	return command, nil
}

// BuildPushCommand constructs the push-current command.
func (builder *CommandBuilder) BuildPushCommand() (*cobra.Command, error) {
	if builder.GitClientProvider == nil {
		return nil, ErrClientProviderNotConfigured
	}

	command := &cobra.Command{
		Use:   pushCommandUseConstant,
		Short: pushCommandShortDescriptionConstant,
		Long:  pushCommandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.runPush,
	}
	command.Flags().String(directoryFlagNameConstant, "", directoryFlagDescriptionConstant)
	command.Flags().Bool(setUpstreamFlagNameConstant, false, setUpstreamFlagDescriptionConstant)
	command.Flags().String(upstreamRemoteFlagNameConstant, "", upstreamRemoteFlagDescription)
	command.Flags().Bool(forcePushFlagNameConstant, false, forcePushFlagDescriptionConstant)
	return command, nil
}

func (builder *CommandBuilder) runStatus(command *cobra.Command, arguments []string) error {
	client, clientError := builder.resolveClient(command)
	if clientError != nil {
		return clientError
	}

	statusResult := client.Status(command.Context())
	if statusResult.ExecutionError != nil {
		return statusResult.ExecutionError
	}

	fmt.Fprintf(command.OutOrStdout(), branchStatusTemplateConstant, statusResult.LocalBranch)
	if len(statusResult.RemoteBranch) > 0 {
		fmt.Fprintf(command.OutOrStdout(), remoteStatusTemplateConstant, statusResult.RemoteBranch)
	}
	if !statusResult.HasUncommittedChanges {
		fmt.Fprintln(command.OutOrStdout(), cleanTreeMessageConstant)
		return nil
	}
	for _, modifiedFile := range statusResult.ModifiedFiles {
		fmt.Fprintf(command.OutOrStdout(), modifiedFileTemplateConstant, modifiedFile)
	}
	return nil
}

func (builder *CommandBuilder) runBranchList(command *cobra.Command, arguments []string) error {
	client, clientError := builder.resolveClient(command)
	if clientError != nil {
		return clientError
	}

	branchesResult := client.LocalBranches(command.Context())
	if branchesResult.ExecutionError != nil {
		return branchesResult.ExecutionError
	}

	for _, branchName := range branchesResult.LocalBranches {
		if branchName == branchesResult.CurrentBranch {
			fmt.Fprintf(command.OutOrStdout(), currentBranchListTemplateConstant, branchName)
			continue
		}
		fmt.Fprintf(command.OutOrStdout(), otherBranchListTemplateConstant, branchName)
	}
	return nil
}

func (builder *CommandBuilder) runPush(command *cobra.Command, arguments []string) error {
	client, clientError := builder.resolveClient(command)
	if clientError != nil {
		return clientError
	}

	setUpstream, setUpstreamFlagError := command.Flags().GetBool(setUpstreamFlagNameConstant)
	if setUpstreamFlagError != nil {
		return setUpstreamFlagError
	}
	upstreamRemote, upstreamRemoteFlagError := command.Flags().GetString(upstreamRemoteFlagNameConstant)
	if upstreamRemoteFlagError != nil {
		return upstreamRemoteFlagError
	}
	forcePush, forcePushFlagError := command.Flags().GetBool(forcePushFlagNameConstant)
	if forcePushFlagError != nil {
		return forcePushFlagError
	}

	pushResult := client.Push(command.Context(), PushOptions{
		SetUpstream:       setUpstream,
		SetUpstreamRemote: strings.TrimSpace(upstreamRemote),
		Force:             forcePush,
	})
	if pushResult.ExecutionError != nil {
		return pushResult.ExecutionError
	}
	if pushResult.ExitCode != 0 {
		return fmt.Errorf(pushFailedTemplateConstant, pushResult.ExitCode)
	}
	return nil
}

func (builder *CommandBuilder) resolveClient(command *cobra.Command) (*GitClient, error) {
	executionDirectory, directoryFlagError := command.Flags().GetString(directoryFlagNameConstant)
	if directoryFlagError != nil {
		return nil, directoryFlagError
	}
	return builder.GitClientProvider(strings.TrimSpace(executionDirectory))
}
