package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NullMDR/azure-js-dev-tools/internal/utils"
)

const (
	testEnvironmentPrefixConstant = "AZDEVTOOLS"
	testConfigurationNameConstant = "config"
)

type toolConfiguration struct {
	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`
	Git struct {
		ExecutionDirectory string `mapstructure:"execution_directory"`
	} `mapstructure:"git"`
}

func TestLoadConfigurationFromEmbeddedDefaults(testInstance *testing.T) {
	embeddedConfiguration := []byte("log:\n  level: info\n  format: console\n")
	loader := utils.NewConfigurationLoader(utils.LoaderOptions{
		ConfigurationName:     testConfigurationNameConstant,
		EnvironmentPrefix:     testEnvironmentPrefixConstant,
		EmbeddedConfiguration: embeddedConfiguration,
	})

	configuration := toolConfiguration{}
	loadedConfiguration, loadError := loader.LoadConfiguration("", &configuration)
	require.NoError(testInstance, loadError)
	require.Empty(testInstance, loadedConfiguration.ConfigFileUsed)
	require.Equal(testInstance, "info", configuration.Log.Level)
	require.Equal(testInstance, "console", configuration.Log.Format)
}

func TestLoadConfigurationFileOverridesEmbeddedDefaults(testInstance *testing.T) {
	configurationDirectory := testInstance.TempDir()
	configurationFilePath := filepath.Join(configurationDirectory, "config.yaml")
	require.NoError(testInstance, os.WriteFile(configurationFilePath,
		[]byte("log:\n  level: debug\ngit:\n  execution_directory: /repos/azure-js-dev-tools\n"), 0o644))

	loader := utils.NewConfigurationLoader(utils.LoaderOptions{
		ConfigurationName:     testConfigurationNameConstant,
		EnvironmentPrefix:     testEnvironmentPrefixConstant,
		EmbeddedConfiguration: []byte("log:\n  level: info\n  format: console\n"),
	})

	configuration := toolConfiguration{}
	loadedConfiguration, loadError := loader.LoadConfiguration(configurationFilePath, &configuration)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, configurationFilePath, loadedConfiguration.ConfigFileUsed)
	require.Equal(testInstance, "debug", configuration.Log.Level)
	require.Equal(testInstance, "console", configuration.Log.Format)
	require.Equal(testInstance, "/repos/azure-js-dev-tools", configuration.Git.ExecutionDirectory)
}

func TestLoadConfigurationRejectsMalformedFile(testInstance *testing.T) {
	configurationDirectory := testInstance.TempDir()
	configurationFilePath := filepath.Join(configurationDirectory, "config.yaml")
	require.NoError(testInstance, os.WriteFile(configurationFilePath, []byte("log: [unclosed"), 0o644))

	loader := utils.NewConfigurationLoader(utils.LoaderOptions{
		ConfigurationName: testConfigurationNameConstant,
		EnvironmentPrefix: testEnvironmentPrefixConstant,
	})

	configuration := toolConfiguration{}
	_, loadError := loader.LoadConfiguration(configurationFilePath, &configuration)
	require.Error(testInstance, loadError)
}
