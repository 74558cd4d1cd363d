package utils_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NullMDR/azure-js-dev-tools/internal/utils"
)

const (
	debugLevelCaseNameConstant      = "debug"
	mixedCaseLevelCaseNameConstant  = "mixed_case"
	blankLevelCaseNameConstant      = "blank_defaults_to_info"
	unknownLevelCaseNameConstant    = "unknown_level"
	jsonFormatCaseNameConstant      = "json"
	blankFormatCaseNameConstant     = "blank_defaults_to_console"
	unknownFormatCaseNameConstant   = "unknown_format"
	createJSONLoggerCaseNameConst   = "json_logger"
	createConsoleLoggerCaseName     = "console_logger"
	createUnknownLevelCaseNameConst = "unknown_level_rejected"
)

func TestParseLogLevel(testInstance *testing.T) {
	testCases := []struct {
		name          string
		levelName     string
		expectedLevel utils.LogLevel
		expectError   bool
	}{
		{name: debugLevelCaseNameConstant, levelName: "debug", expectedLevel: utils.LogLevelDebug},
		{name: mixedCaseLevelCaseNameConstant, levelName: " WARN ", expectedLevel: utils.LogLevelWarn},
		{name: blankLevelCaseNameConstant, levelName: "", expectedLevel: utils.LogLevelInfo},
		{name: unknownLevelCaseNameConstant, levelName: "loud", expectError: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtestInstance *testing.T) {
			parsedLevel, parseError := utils.ParseLogLevel(testCase.levelName)
			if testCase.expectError {
				require.Error(subtestInstance, parseError)
				return
			}
			require.NoError(subtestInstance, parseError)
			require.Equal(subtestInstance, testCase.expectedLevel, parsedLevel)
		})
	}
}

func TestParseLogFormat(testInstance *testing.T) {
	testCases := []struct {
		name           string
		formatName     string
		expectedFormat utils.LogFormat
		expectError    bool
	}{
		{name: jsonFormatCaseNameConstant, formatName: "JSON", expectedFormat: utils.LogFormatJSON},
		{name: blankFormatCaseNameConstant, formatName: "", expectedFormat: utils.LogFormatConsole},
		{name: unknownFormatCaseNameConstant, formatName: "xml", expectError: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtestInstance *testing.T) {
			parsedFormat, parseError := utils.ParseLogFormat(testCase.formatName)
			if testCase.expectError {
				require.Error(subtestInstance, parseError)
				return
			}
			require.NoError(subtestInstance, parseError)
			require.Equal(subtestInstance, testCase.expectedFormat, parsedFormat)
		})
	}
}

func TestCreateLogger(testInstance *testing.T) {
	factory := utils.NewLoggerFactory()

	testCases := []struct {
		name        string
		settings    utils.LoggerSettings
		expectError bool
	}{
		{
			name:     createJSONLoggerCaseNameConst,
			settings: utils.LoggerSettings{Level: utils.LogLevelInfo, Format: utils.LogFormatJSON},
		},
		{
			name:     createConsoleLoggerCaseName,
			settings: utils.LoggerSettings{Level: utils.LogLevelDebug, Format: utils.LogFormatConsole},
		},
		{
			name:        createUnknownLevelCaseNameConst,
			settings:    utils.LoggerSettings{Level: utils.LogLevel("loud"), Format: utils.LogFormatJSON},
			expectError: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtestInstance *testing.T) {
			logger, creationError := factory.CreateLogger(testCase.settings)
			if testCase.expectError {
				require.Error(subtestInstance, creationError)
				require.Nil(subtestInstance, logger)
				return
			}
			require.NoError(subtestInstance, creationError)
			require.NotNil(subtestInstance, logger)
		})
	}
}
