package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/NullMDR/azure-js-dev-tools/internal/execshell"
	"github.com/NullMDR/azure-js-dev-tools/internal/gitcmd"
	"github.com/NullMDR/azure-js-dev-tools/internal/githubapi"
	"github.com/NullMDR/azure-js-dev-tools/internal/utils"
)

const (
	applicationNameConstant                  = "azdevtools"
	applicationShortDescriptionConstant      = "Command-line interface for repository automation utilities"
	applicationLongDescriptionConstant       = "azdevtools wraps git and the GitHub REST API with structured, credential-safe automation commands."
	configFileFlagNameConstant               = "config"
	configFileFlagUsageConstant              = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                 = "log-level"
	logLevelFlagUsageConstant                = "Override the configured log level."
	logFormatFlagNameConstant                = "log-format"
	logFormatFlagUsageConstant               = "Override the configured log format (json or console)."
	environmentPrefixConstant                = "AZDEVTOOLS"
	configurationNameConstant                = "config"
	configurationTypeConstant                = "yaml"
	configurationLoadErrorTemplateConstant   = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant      = "unable to create logger: %w"
	commandRegistrationErrorTemplateConstant = "unable to register commands: %w"
	defaultConfigurationSearchPathConstant   = "."
	flagNameSeparatorOldConstant             = "_"
	flagNameSeparatorNewConstant             = "-"
)

// ApplicationConfiguration describes the persisted configuration for the CLI
// entrypoint.
type ApplicationConfiguration struct {
	Common ApplicationCommonConfiguration `mapstructure:"common"`
	Git    GitConfiguration               `mapstructure:"git"`
	GitHub GitHubConfiguration            `mapstructure:"github"`
}

// ApplicationCommonConfiguration stores logging configuration shared across
// commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// GitConfiguration stores default execution and logging options for the git
// engine.
type GitConfiguration struct {
	ExecutionDirectory string            `mapstructure:"execution_directory"`
	ShowCommand        bool              `mapstructure:"show_command"`
	ShowResult         bool              `mapstructure:"show_result"`
	CaptureOutput      bool              `mapstructure:"capture_output"`
	CaptureError       bool              `mapstructure:"capture_error"`
	Token              string            `mapstructure:"token"`
	TokenScopes        map[string]string `mapstructure:"token_scopes"`
}

// GitHubConfiguration stores the REST client token. A blank token falls back
// to the environment.
type GitHubConfiguration struct {
	Token string `mapstructure:"token"`
}

// Application wires the Cobra root command, configuration loader, and
// structured logger.
type Application struct {
	rootCommand           *cobra.Command
	configurationLoader   *utils.ConfigurationLoader
	loggerFactory         *utils.LoggerFactory
	logger                *zap.Logger
	configuration         ApplicationConfiguration
	configurationFilePath string
	logLevelFlagValue     string
	logFormatFlagValue    string
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() (*Application, error) {
	configurationLoader := utils.NewConfigurationLoader(utils.LoaderOptions{
		ConfigurationName:     configurationNameConstant,
		ConfigurationType:     configurationTypeConstant,
		EnvironmentPrefix:     environmentPrefixConstant,
		SearchPaths:           []string{defaultConfigurationSearchPathConstant},
		EmbeddedConfiguration: EmbeddedDefaultConfiguration(),
	})

	application := &Application{
		configurationLoader: configurationLoader,
		loggerFactory:       utils.NewLoggerFactory(),
		logger:              zap.NewNop(),
	}

	rootCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration()
		},
	}
	rootCommand.SetContext(context.Background())
	rootCommand.PersistentFlags().SetNormalizeFunc(normalizeFlagName)
	rootCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	rootCommand.PersistentFlags().StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", logLevelFlagUsageConstant)
	rootCommand.PersistentFlags().StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", logFormatFlagUsageConstant)

	application.rootCommand = rootCommand
	if registrationError := application.registerCommands(); registrationError != nil {
		return nil, fmt.Errorf(commandRegistrationErrorTemplateConstant, registrationError)
	}
	return application, nil
}

func (application *Application) registerCommands() error {
	gitBuilder := &gitcmd.CommandBuilder{
		LoggerProvider:    application.resolveLogger,
		GitClientProvider: application.buildGitClient,
	}
	for _, buildCommand := range []func() (*cobra.Command, error){
		gitBuilder.BuildStatusCommand,
		gitBuilder.BuildBranchListCommand,
		gitBuilder.BuildPushCommand,
	} {
		builtCommand, buildError := buildCommand()
		if buildError != nil {
			return buildError
		}
		application.rootCommand.AddCommand(builtCommand)
	}

	githubBuilder := &githubapi.CommandBuilder{
		LoggerProvider: application.resolveLogger,
		ClientProvider: application.buildGitHubClient,
	}
	listCommand, buildError := githubBuilder.Build()
	if buildError != nil {
		return buildError
	}
	application.rootCommand.AddCommand(listCommand)
	return nil
}

func (application *Application) initializeConfiguration() error {
	configuration := ApplicationConfiguration{}
	_, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, &configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}
	application.configuration = configuration

	levelName := configuration.Common.LogLevel
	if len(application.logLevelFlagValue) > 0 {
		levelName = application.logLevelFlagValue
	}
	logLevel, levelError := utils.ParseLogLevel(levelName)
	if levelError != nil {
		return levelError
	}

	formatName := configuration.Common.LogFormat
	if len(application.logFormatFlagValue) > 0 {
		formatName = application.logFormatFlagValue
	}
	logFormat, formatError := utils.ParseLogFormat(formatName)
	if formatError != nil {
		return formatError
	}

	logger, loggerError := application.loggerFactory.CreateLogger(utils.LoggerSettings{Level: logLevel, Format: logFormat})
	if loggerError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerError)
	}
	application.logger = logger
	return nil
}

// Flag names spelled with underscores normalize to their dashed forms.
func normalizeFlagName(flagSet *pflag.FlagSet, flagName string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(flagName, flagNameSeparatorOldConstant, flagNameSeparatorNewConstant))
}

func (application *Application) resolveLogger() *zap.Logger {
	return application.logger
}

func (application *Application) buildGitClient(executionDirectory string) (*gitcmd.GitClient, error) {
	resolvedDirectory := executionDirectory
	if len(resolvedDirectory) == 0 {
		resolvedDirectory = application.configuration.Git.ExecutionDirectory
	}

	return gitcmd.NewGitClient(
		gitcmd.Dependencies{
			Logger: application.resolveLogger(),
			Runner: execshell.NewOSCommandRunner(),
		},
		gitcmd.RunOptions{
			ExecutionDirectory: resolvedDirectory,
			Authentication: gitcmd.Authentication{
				Token:  application.configuration.Git.Token,
				Scopes: application.configuration.Git.TokenScopes,
			},
			LogSink:       gitcmd.NewZapCommandLogSink(application.resolveLogger()),
			ShowCommand:   application.configuration.Git.ShowCommand,
			ShowResult:    application.configuration.Git.ShowResult,
			CaptureOutput: application.configuration.Git.CaptureOutput,
			CaptureError:  application.configuration.Git.CaptureError,
		},
	)
}

func (application *Application) buildGitHubClient(executionContext context.Context) (*githubapi.Client, error) {
	token := application.configuration.GitHub.Token
	if len(token) == 0 {
		if environmentToken, tokenFound := githubapi.ResolveEnvironmentToken(nil); tokenFound {
			token = environmentToken
		}
	}
	return githubapi.NewClient(executionContext, token), nil
}

// RootCommand exposes the assembled root command.
func (application *Application) RootCommand() *cobra.Command {
	return application.rootCommand
}

// Execute runs the root command and reports failures on standard error.
func Execute() {
	application, applicationError := NewApplication()
	if applicationError != nil {
		fmt.Fprintln(os.Stderr, applicationError)
		os.Exit(1)
	}
	if executionError := application.rootCommand.Execute(); executionError != nil {
		fmt.Fprintln(os.Stderr, executionError)
		os.Exit(1)
	}
}
