package execshell

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	gitExecutableNameConstant                 = "git"
	loggerNotConfiguredMessageConstant        = "logger not configured"
	commandRunnerNotConfiguredMessageConstant = "command runner not configured"
	commandFailedTemplateConstant             = "%s exited with code %d%s"
	commandExecutionFailedTemplateConstant    = "%s could not be executed: %s"
	standardErrorSuffixTemplateConstant       = ": %s"
	commandStartedMessageConstant             = "executing command"
	commandCompletedMessageConstant           = "command completed"
	commandExecutionFailedMessageConstant     = "command execution failed"
	logFieldCommandConstant                   = "command"
	logFieldWorkingDirectoryConstant          = "working_directory"
	logFieldExitCodeConstant                  = "exit_code"
	logFieldProcessIdentifierConstant         = "process_id"
	commandLabelSeparatorConstant             = " "
)

// ErrLoggerNotConfigured indicates a ShellExecutor was constructed without a logger.
var ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)

// ErrCommandRunnerNotConfigured indicates a ShellExecutor was constructed without a runner.
var ErrCommandRunnerNotConfigured = errors.New(commandRunnerNotConfiguredMessageConstant)

// CommandName identifies a supported executable.
type CommandName string

// CommandGit names the git executable wrapped by this toolkit.
const CommandGit CommandName = CommandName(gitExecutableNameConstant)

// CommandDetails describes a single invocation of an external tool.
type CommandDetails struct {
	Arguments            []string
	WorkingDirectory     string
	EnvironmentVariables map[string]string
	StandardInput        []byte
}

// ShellCommand pairs a CommandName with invocation details.
type ShellCommand struct {
	Name    CommandName
	Details CommandDetails
}

// ExecutionResult captures the observable outcome of a completed process.
type ExecutionResult struct {
	StandardOutput    string
	StandardError     string
	ExitCode          int
	ProcessIdentifier int
}

// CommandRunner represents the ability to execute shell commands.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

// CommandSanitizer rewrites a command label before it reaches any log sink.
type CommandSanitizer func(commandLabel string) string

// CommandFailedError reports a process that completed with a non-zero exit code.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

// Error describes the failed command including trimmed standard error output.
func (failure CommandFailedError) Error() string {
	standardErrorSuffix := ""
	trimmedStandardError := strings.TrimSpace(failure.Result.StandardError)
	if len(trimmedStandardError) > 0 {
		standardErrorSuffix = fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
	}
	return fmt.Sprintf(commandFailedTemplateConstant, formatCommandLabel(failure.Command), failure.Result.ExitCode, standardErrorSuffix)
}

// CommandExecutionError reports a process that could not be started at all.
type CommandExecutionError struct {
	Command ShellCommand
	Cause   error
}

// Error describes the execution failure.
func (failure CommandExecutionError) Error() string {
	return fmt.Sprintf(commandExecutionFailedTemplateConstant, formatCommandLabel(failure.Command), failure.Cause)
}

// Unwrap exposes the underlying cause for errors.Is and errors.As inspection.
func (failure CommandExecutionError) Unwrap() error {
	return failure.Cause
}

// ShellExecutor coordinates command execution with structured lifecycle logging.
type ShellExecutor struct {
	logger           *zap.Logger
	commandRunner    CommandRunner
	commandSanitizer CommandSanitizer
}

// NewShellExecutor validates dependencies and constructs a ShellExecutor.
func NewShellExecutor(logger *zap.Logger, commandRunner CommandRunner) (*ShellExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if commandRunner == nil {
		return nil, ErrCommandRunnerNotConfigured
	}
	return &ShellExecutor{logger: logger, commandRunner: commandRunner}, nil
}

// SetCommandSanitizer installs a sanitizer applied to command labels before logging.
func (executor *ShellExecutor) SetCommandSanitizer(sanitizer CommandSanitizer) {
	executor.commandSanitizer = sanitizer
}

// Execute runs the supplied command and logs its lifecycle.
func (executor *ShellExecutor) Execute(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	sanitizedLabel := executor.sanitizeCommandLabel(command)

	executor.logger.Debug(
		commandStartedMessageConstant,
		zap.String(logFieldCommandConstant, sanitizedLabel),
		zap.String(logFieldWorkingDirectoryConstant, command.Details.WorkingDirectory),
	)

	executionResult, executionError := executor.commandRunner.Run(executionContext, command)
	if executionError != nil {
		executor.logger.Debug(
			commandExecutionFailedMessageConstant,
			zap.String(logFieldCommandConstant, sanitizedLabel),
			zap.Error(executionError),
		)
		return ExecutionResult{}, CommandExecutionError{Command: command, Cause: executionError}
	}

	executor.logger.Debug(
		commandCompletedMessageConstant,
		zap.String(logFieldCommandConstant, sanitizedLabel),
		zap.Int(logFieldExitCodeConstant, executionResult.ExitCode),
		zap.Int(logFieldProcessIdentifierConstant, executionResult.ProcessIdentifier),
	)

	if executionResult.ExitCode != 0 {
		return executionResult, CommandFailedError{Command: command, Result: executionResult}
	}

	return executionResult, nil
}

// ExecuteGit runs the git executable with the provided details.
func (executor *ShellExecutor) ExecuteGit(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.Execute(executionContext, ShellCommand{Name: CommandGit, Details: details})
}

func (executor *ShellExecutor) sanitizeCommandLabel(command ShellCommand) string {
	commandLabel := formatCommandLabel(command)
	if executor.commandSanitizer != nil {
		return executor.commandSanitizer(commandLabel)
	}
	return commandLabel
}

func formatCommandLabel(command ShellCommand) string {
	if len(command.Details.Arguments) == 0 {
		return string(command.Name)
	}
	return string(command.Name) + commandLabelSeparatorConstant + strings.Join(command.Details.Arguments, commandLabelSeparatorConstant)
}
