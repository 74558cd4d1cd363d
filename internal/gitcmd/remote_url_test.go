package gitcmd_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NullMDR/azure-js-dev-tools/internal/gitcmd"
)

const (
	httpsRemoteURLCaseNameConstant        = "https_url"
	httpsGitSuffixRemoteURLCaseName       = "https_url_with_git_suffix"
	httpsUserInfoRemoteURLCaseNameConst   = "https_url_with_user_info"
	sshSchemeRemoteURLCaseNameConstant    = "ssh_scheme_url"
	scpStyleRemoteURLCaseNameConstant     = "scp_style_url"
	invalidRemoteURLCaseNameConstant      = "invalid_url"
	missingSegmentsRemoteURLCaseNameConst = "missing_repository_segment"
)

func TestParseRemoteURL(testInstance *testing.T) {
	testCases := []struct {
		name        string
		remoteURL   string
		expected    gitcmd.RemoteURL
		expectError bool
	}{
		{
			name:      httpsRemoteURLCaseNameConstant,
			remoteURL: "https://github.com/exampleowner/exampletool",
			expected: gitcmd.RemoteURL{
				Scheme:     "https",
				Host:       "github.com",
				Owner:      "exampleowner",
				Repository: "exampletool",
			},
		},
		{
			name:      httpsGitSuffixRemoteURLCaseName,
			remoteURL: "https://github.com/exampleowner/exampletool.git",
			expected: gitcmd.RemoteURL{
				Scheme:     "https",
				Host:       "github.com",
				Owner:      "exampleowner",
				Repository: "exampletool",
			},
		},
		{
			name:      httpsUserInfoRemoteURLCaseNameConst,
			remoteURL: "https://sometoken@github.com/exampleowner/exampletool",
			expected: gitcmd.RemoteURL{
				Scheme:     "https",
				Host:       "github.com",
				Owner:      "exampleowner",
				Repository: "exampletool",
			},
		},
		{
			name:      sshSchemeRemoteURLCaseNameConstant,
			remoteURL: "ssh://git@github.com/exampleowner/exampletool.git",
			expected: gitcmd.RemoteURL{
				Scheme:     "ssh",
				Host:       "github.com",
				Owner:      "exampleowner",
				Repository: "exampletool",
			},
		},
		{
			name:      scpStyleRemoteURLCaseNameConstant,
			remoteURL: "git@github.com:exampleowner/exampletool.git",
			expected: gitcmd.RemoteURL{
				Scheme:     "ssh",
				Host:       "github.com",
				Owner:      "exampleowner",
				Repository: "exampletool",
			},
		},
		{
			name:        invalidRemoteURLCaseNameConstant,
			remoteURL:   "not a url",
			expectError: true,
		},
		{
			name:        missingSegmentsRemoteURLCaseNameConst,
			remoteURL:   "https://github.com/exampleowner",
			expectError: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtestInstance *testing.T) {
			parsedRemote, parseError := gitcmd.ParseRemoteURL(testCase.remoteURL)
			if testCase.expectError {
				require.Error(subtestInstance, parseError)
				return
			}
			require.NoError(subtestInstance, parseError)
			require.Equal(subtestInstance, testCase.expected, parsedRemote)
			require.Equal(subtestInstance,
				testCase.expected.Owner+"/"+testCase.expected.Repository,
				parsedRemote.OwnerRepository())
		})
	}
}
