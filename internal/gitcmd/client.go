package gitcmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/NullMDR/azure-js-dev-tools/internal/execshell"
)

const (
	clientLoggerMissingMessageConstant    = "logger not configured"
	clientRunnerMissingMessageConstant    = "command runner not configured"
	commandLineTemplateConstant           = "%s: %s"
	exitCodeTemplateConstant              = "Exit Code: %d"
	errorLabelConstant                    = "Error:"
	outputLabelConstant                   = "Output:"
	commandLabelSeparatorConstant         = " "
	currentBranchUnresolvedMessageContent = "current branch could not be resolved"
)

// ErrClientLoggerNotConfigured indicates a GitClient was constructed without a logger.
var ErrClientLoggerNotConfigured = errors.New(clientLoggerMissingMessageConstant)

// ErrClientRunnerNotConfigured indicates a GitClient was constructed without a runner.
var ErrClientRunnerNotConfigured = errors.New(clientRunnerMissingMessageConstant)

// ErrCurrentBranchNotResolved indicates the branch query preceding a push
// could not determine the branch to configure upstream for.
var ErrCurrentBranchNotResolved = errors.New(currentBranchUnresolvedMessageContent)

// CommandLogSink receives redacted command lines and execution summaries.
type CommandLogSink interface {
	Log(message string)
}

type zapCommandLogSink struct {
	logger *zap.Logger
}

// NewZapCommandLogSink adapts a zap logger into a CommandLogSink.
func NewZapCommandLogSink(logger *zap.Logger) CommandLogSink {
	return zapCommandLogSink{logger: logger}
}

// Log writes the message at info level.
func (sink zapCommandLogSink) Log(message string) {
	sink.logger.Info(message)
}

// RunOptions configure execution, authentication, and logging for git
// invocations. The zero value executes in the process working directory with
// no credentials and no logging.
type RunOptions struct {
	ExecutionDirectory string
	Authentication     Authentication
	LogSink            CommandLogSink
	ShowCommand        bool
	ShowResult         bool
	CaptureOutput      bool
	CaptureError       bool
}

// ScopeOptions override a subset of RunOptions for a derived client. Nil
// pointer fields keep the parent's value.
type ScopeOptions struct {
	ExecutionDirectory string
	Authentication     *Authentication
	LogSink            CommandLogSink
	ShowCommand        *bool
	ShowResult         *bool
	CaptureOutput      *bool
	CaptureError       *bool
}

// Dependencies enumerates the collaborators a GitClient requires.
type Dependencies struct {
	Logger *zap.Logger
	Runner execshell.CommandRunner
}

// GitClient issues git invocations with immutable default options.
//
// The client never mutates its configuration after construction; Scope
// produces a new client overlaying the supplied overrides. Distinct
// invocations therefore never interfere and the client is safe for use from
// concurrent goroutines.
type GitClient struct {
	dependencies Dependencies
	executor     *execshell.ShellExecutor
	defaults     RunOptions
	redactor     CredentialRedactor
}

// RunResult carries the raw outcome of one git invocation. Callers may always
// fall back to the raw fields regardless of what was parsed from them.
//
// ExecutionError is populated only when the process could not be spawned; the
// text and exit fields are meaningless in that case. A completed process with
// a non-zero exit code is a normal result, not an error.
type RunResult struct {
	ExitCode          int
	StandardOutput    string
	StandardError     string
	ProcessIdentifier int
	ExecutionError    error
}

// Succeeded reports whether the process ran and exited with code zero.
func (result RunResult) Succeeded() bool {
	return result.ExecutionError == nil && result.ExitCode == 0
}

// StatusResult combines raw execution output with the parsed status snapshot.
type StatusResult struct {
	RunResult
	StatusSnapshot
}

// DiffResult combines raw execution output with the parsed changed files.
type DiffResult struct {
	RunResult
	FilesChanged []string
}

// LocalBranchesResult combines raw execution output with the parsed listing.
type LocalBranchesResult struct {
	RunResult
	LocalBranchListing
}

// RemoteBranchesResult combines raw execution output with the parsed listing.
type RemoteBranchesResult struct {
	RunResult
	RemoteBranches []RemoteBranchReference
}

// ConfigurationValueResult carries an optional configuration value.
type ConfigurationValueResult struct {
	RunResult
	Value        string
	ValuePresent bool
}

// RemoteListingResult maps remote names to URLs.
type RemoteListingResult struct {
	RunResult
	Remotes map[string]string
}

// CurrentCommitResult carries the resolved commit identifier.
type CurrentCommitResult struct {
	RunResult
	CommitSha string
}

// NewGitClient validates dependencies and constructs a client with the
// provided default options.
func NewGitClient(dependencies Dependencies, defaults RunOptions) (*GitClient, error) {
	if dependencies.Logger == nil {
		return nil, ErrClientLoggerNotConfigured
	}
	if dependencies.Runner == nil {
		return nil, ErrClientRunnerNotConfigured
	}

	redactor := NewCredentialRedactor(defaults.Authentication)

	executor, executorError := execshell.NewShellExecutor(dependencies.Logger, dependencies.Runner)
	if executorError != nil {
		return nil, executorError
	}
	executor.SetCommandSanitizer(redactor.Redact)

	return &GitClient{
		dependencies: dependencies,
		executor:     executor,
		defaults:     defaults,
		redactor:     redactor,
	}, nil
}

// Scope derives a client whose defaults overlay the supplied overrides. The
// receiver is never modified.
func (client *GitClient) Scope(overrides ScopeOptions) (*GitClient, error) {
	mergedOptions := client.defaults
	if len(overrides.ExecutionDirectory) > 0 {
		mergedOptions.ExecutionDirectory = overrides.ExecutionDirectory
	}
	if overrides.Authentication != nil {
		mergedOptions.Authentication = *overrides.Authentication
	}
	if overrides.LogSink != nil {
		mergedOptions.LogSink = overrides.LogSink
	}
	if overrides.ShowCommand != nil {
		mergedOptions.ShowCommand = *overrides.ShowCommand
	}
	if overrides.ShowResult != nil {
		mergedOptions.ShowResult = *overrides.ShowResult
	}
	if overrides.CaptureOutput != nil {
		mergedOptions.CaptureOutput = *overrides.CaptureOutput
	}
	if overrides.CaptureError != nil {
		mergedOptions.CaptureError = *overrides.CaptureError
	}
	return NewGitClient(client.dependencies, mergedOptions)
}

// ExecutionDirectory exposes the directory invocations run in.
func (client *GitClient) ExecutionDirectory() string {
	return client.defaults.ExecutionDirectory
}

// Run executes git with the provided argument vector.
func (client *GitClient) Run(executionContext context.Context, arguments ...string) RunResult {
	return client.run(executionContext, arguments)
}

// Fetch downloads objects and refs from the configured remotes.
func (client *GitClient) Fetch(executionContext context.Context, options FetchOptions) RunResult {
	return client.run(executionContext, FetchArguments(options))
}

// Merge joins the provided references into the current branch.
func (client *GitClient) Merge(executionContext context.Context, options MergeOptions, references ...string) RunResult {
	return client.run(executionContext, MergeArguments(options, references...))
}

// Rebase replays commits on top of another base.
func (client *GitClient) Rebase(executionContext context.Context, options RebaseOptions) RunResult {
	return client.run(executionContext, RebaseArguments(options))
}

// Clone copies a repository, injecting a resolved credential into the URL.
func (client *GitClient) Clone(executionContext context.Context, repositoryURL string, options CloneOptions) RunResult {
	return client.run(executionContext, CloneArguments(client.authenticateURL(repositoryURL), options))
}

// Checkout switches the working tree to the provided reference.
func (client *GitClient) Checkout(executionContext context.Context, refIdentifier string, options CheckoutOptions) RunResult {
	return client.run(executionContext, CheckoutArguments(refIdentifier, options))
}

// Push uploads the current branch to its remote.
//
// When upstream configuration is requested and no branch name was supplied,
// the current branch is resolved first with a single synchronous branch query
// that fully completes before the push executes.
func (client *GitClient) Push(executionContext context.Context, options PushOptions) RunResult {
	resolvedOptions := options
	if resolvedOptions.upstreamRequested() && len(resolvedOptions.BranchName) == 0 {
		branchesResult := client.LocalBranches(executionContext)
		if len(branchesResult.CurrentBranch) == 0 {
			failedResult := branchesResult.RunResult
			if failedResult.ExecutionError == nil {
				failedResult.ExecutionError = ErrCurrentBranchNotResolved
			}
			return failedResult
		}
		resolvedOptions.BranchName = branchesResult.CurrentBranch
	}
	return client.run(executionContext, PushArguments(resolvedOptions))
}

// Pull fetches and integrates changes from the tracked remote branch.
func (client *GitClient) Pull(executionContext context.Context) RunResult {
	return client.run(executionContext, []string{pullSubcommandConstant})
}

// Add stages the provided paths.
func (client *GitClient) Add(executionContext context.Context, paths ...string) RunResult {
	return client.run(executionContext, append([]string{addSubcommandConstant}, paths...))
}

// Commit records staged changes with the provided messages.
func (client *GitClient) Commit(executionContext context.Context, messages ...string) RunResult {
	return client.run(executionContext, CommitArguments(messages))
}

// CreateLocalBranch creates the named branch and switches to it.
func (client *GitClient) CreateLocalBranch(executionContext context.Context, branchName string) RunResult {
	return client.run(executionContext, []string{checkoutSubcommandConstant, createBranchFlagConstant, branchName})
}

// DeleteLocalBranch force-removes the named local branch.
func (client *GitClient) DeleteLocalBranch(executionContext context.Context, branchName string) RunResult {
	return client.run(executionContext, []string{branchSubcommandConstant, forceDeleteBranchFlagConstant, branchName})
}

// DeleteRemoteBranch removes the named branch from the provided remote.
func (client *GitClient) DeleteRemoteBranch(executionContext context.Context, remoteName string, branchName string) RunResult {
	return client.run(executionContext, []string{pushSubcommandConstant, remoteName, remoteBranchDeletionPrefix + branchName})
}

// Diff reports the files changed between commits or against the index.
func (client *GitClient) Diff(executionContext context.Context, options DiffOptions) DiffResult {
	runResult := client.run(executionContext, DiffArguments(options))
	return DiffResult{
		RunResult:    runResult,
		FilesChanged: ParseDiffFiles(runResult.StandardOutput, options.NameOnly, client.defaults.ExecutionDirectory),
	}
}

// Status reports the parsed working-tree state.
func (client *GitClient) Status(executionContext context.Context) StatusResult {
	runResult := client.run(executionContext, []string{statusSubcommandConstant})
	return StatusResult{
		RunResult:      runResult,
		StatusSnapshot: ParseStatus(runResult.StandardOutput, client.defaults.ExecutionDirectory),
	}
}

// LocalBranches lists local branches and the current branch.
func (client *GitClient) LocalBranches(executionContext context.Context) LocalBranchesResult {
	runResult := client.run(executionContext, []string{branchSubcommandConstant})
	return LocalBranchesResult{
		RunResult:          runResult,
		LocalBranchListing: ParseLocalBranches(runResult.StandardOutput),
	}
}

// RemoteBranches lists branch references on the configured remotes.
func (client *GitClient) RemoteBranches(executionContext context.Context) RemoteBranchesResult {
	runResult := client.run(executionContext, []string{branchSubcommandConstant, remotesFlagConstant})
	return RemoteBranchesResult{
		RunResult:      runResult,
		RemoteBranches: ParseRemoteBranches(runResult.StandardOutput),
	}
}

// CurrentCommitSha resolves the commit identifier the working tree is on.
func (client *GitClient) CurrentCommitSha(executionContext context.Context) CurrentCommitResult {
	runResult := client.run(executionContext, []string{revParseSubcommandConstant, headReferenceConstant})
	return CurrentCommitResult{
		RunResult: runResult,
		CommitSha: strings.TrimSpace(runResult.StandardOutput),
	}
}

// GetConfigurationValue reads a single configuration value.
func (client *GitClient) GetConfigurationValue(executionContext context.Context, configurationKey string) ConfigurationValueResult {
	runResult := client.run(executionContext, []string{configSubcommandConstant, getFlagConstant, configurationKey})
	configurationValue, valuePresent := ParseConfigurationValue(runResult.StandardOutput, runResult.ExitCode)
	return ConfigurationValueResult{
		RunResult:    runResult,
		Value:        configurationValue,
		ValuePresent: valuePresent,
	}
}

// AddRemote registers a remote, injecting a resolved credential into the URL.
func (client *GitClient) AddRemote(executionContext context.Context, remoteName string, remoteURL string) RunResult {
	return client.run(executionContext, []string{remoteSubcommandConstant, remoteAddSubcommandConstant, remoteName, client.authenticateURL(remoteURL)})
}

// SetRemoteURL points an existing remote at a new URL, injecting a resolved
// credential into the URL.
func (client *GitClient) SetRemoteURL(executionContext context.Context, remoteName string, remoteURL string) RunResult {
	return client.run(executionContext, []string{remoteSubcommandConstant, remoteSetURLSubcommandConstant, remoteName, client.authenticateURL(remoteURL)})
}

// ListRemotes maps configured remote names to their URLs.
func (client *GitClient) ListRemotes(executionContext context.Context) RemoteListingResult {
	runResult := client.run(executionContext, []string{remoteSubcommandConstant, verboseFlagConstant})
	return RemoteListingResult{
		RunResult: runResult,
		Remotes:   ParseRemoteListing(runResult.StandardOutput),
	}
}

func (client *GitClient) authenticateURL(remoteURL string) string {
	resolvedToken, tokenResolved := ResolveToken(remoteURL, client.defaults.Authentication)
	if !tokenResolved {
		return remoteURL
	}
	return InjectCredential(remoteURL, resolvedToken)
}

func (client *GitClient) run(executionContext context.Context, arguments []string) RunResult {
	commandDetails := execshell.CommandDetails{
		Arguments:        arguments,
		WorkingDirectory: client.defaults.ExecutionDirectory,
	}

	client.logCommand(arguments)

	executionResult, executionError := client.executor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		commandFailure := execshell.CommandFailedError{}
		if !errors.As(executionError, &commandFailure) {
			spawnFailure := execshell.CommandExecutionError{}
			if errors.As(executionError, &spawnFailure) {
				return RunResult{ExecutionError: spawnFailure.Cause}
			}
			return RunResult{ExecutionError: executionError}
		}
	}

	runResult := RunResult{
		ExitCode:          executionResult.ExitCode,
		StandardOutput:    executionResult.StandardOutput,
		StandardError:     executionResult.StandardError,
		ProcessIdentifier: executionResult.ProcessIdentifier,
	}

	client.logResult(runResult)

	return runResult
}

func (client *GitClient) logCommand(arguments []string) {
	if !client.defaults.ShowCommand || client.defaults.LogSink == nil {
		return
	}
	commandLabel := string(execshell.CommandGit) + commandLabelSeparatorConstant + strings.Join(arguments, commandLabelSeparatorConstant)
	redactedCommand := client.redactor.Redact(commandLabel)
	if len(client.defaults.ExecutionDirectory) > 0 {
		client.defaults.LogSink.Log(fmt.Sprintf(commandLineTemplateConstant, client.defaults.ExecutionDirectory, redactedCommand))
		return
	}
	client.defaults.LogSink.Log(redactedCommand)
}

func (client *GitClient) logResult(runResult RunResult) {
	if !client.defaults.ShowResult || client.defaults.LogSink == nil {
		return
	}
	client.defaults.LogSink.Log(fmt.Sprintf(exitCodeTemplateConstant, runResult.ExitCode))
	if client.defaults.CaptureError && len(runResult.StandardError) > 0 {
		client.defaults.LogSink.Log(errorLabelConstant)
		client.defaults.LogSink.Log(client.redactor.Redact(runResult.StandardError))
	}
	if client.defaults.CaptureOutput && len(runResult.StandardOutput) > 0 {
		client.defaults.LogSink.Log(outputLabelConstant)
		client.defaults.LogSink.Log(client.redactor.Redact(runResult.StandardOutput))
	}
}
