package cli_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/NullMDR/azure-js-dev-tools/cmd/cli"
)

const (
	statusCommandNameConstant     = "repo-status"
	branchListCommandNameConstant = "branch-list"
	pushCommandNameConstant       = "push-current"
	pullRequestCommandNameConst   = "pr-list"
)

type embeddedConfigurationDocument struct {
	Common struct {
		LogLevel  string `yaml:"log_level"`
		LogFormat string `yaml:"log_format"`
	} `yaml:"common"`
	Git struct {
		ShowCommand bool `yaml:"show_command"`
	} `yaml:"git"`
	GitHub struct {
		Token string `yaml:"token"`
	} `yaml:"github"`
}

func TestEmbeddedDefaultConfigurationParses(testInstance *testing.T) {
	document := embeddedConfigurationDocument{}
	require.NoError(testInstance, yaml.Unmarshal(cli.EmbeddedDefaultConfiguration(), &document))
	require.Equal(testInstance, "info", document.Common.LogLevel)
	require.Equal(testInstance, "console", document.Common.LogFormat)
	require.False(testInstance, document.Git.ShowCommand)
	require.Empty(testInstance, document.GitHub.Token)
}

func TestEmbeddedDefaultConfigurationReturnsCopy(testInstance *testing.T) {
	firstCopy := cli.EmbeddedDefaultConfiguration()
	firstCopy[0] = '#'
	secondCopy := cli.EmbeddedDefaultConfiguration()
	require.NotEqual(testInstance, firstCopy[0], secondCopy[0])
}

func TestApplicationRegistersSubcommands(testInstance *testing.T) {
	application, applicationError := cli.NewApplication()
	require.NoError(testInstance, applicationError)
	rootCommand := application.RootCommand()

	registeredNames := map[string]bool{}
	for _, registeredCommand := range rootCommand.Commands() {
		registeredNames[registeredCommand.Name()] = true
	}

	for _, expectedName := range []string{
		statusCommandNameConstant,
		branchListCommandNameConstant,
		pushCommandNameConstant,
		pullRequestCommandNameConst,
	} {
		require.True(testInstance, registeredNames[expectedName], expectedName)
	}
}

func TestApplicationPersistentFlags(testInstance *testing.T) {
	application, applicationError := cli.NewApplication()
	require.NoError(testInstance, applicationError)
	persistentFlags := application.RootCommand().PersistentFlags()

	require.NotNil(testInstance, persistentFlags.Lookup("config"))
	require.NotNil(testInstance, persistentFlags.Lookup("log-level"))
	require.NotNil(testInstance, persistentFlags.Lookup("log-format"))
}
