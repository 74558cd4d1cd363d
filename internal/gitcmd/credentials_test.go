package gitcmd_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NullMDR/azure-js-dev-tools/internal/gitcmd"
)

const (
	globalTokenCaseNameConstant          = "global_token_wins"
	repositoryScopeCaseNameConstant      = "repository_scope_beats_owner_scope"
	ownerScopeCaseNameConstant           = "owner_scope_matches"
	noScopeCaseNameConstant              = "no_matching_scope"
	unparsableURLCaseNameConstant        = "unparsable_url_without_global_token"
	caseSensitiveScopeCaseNameConstant   = "scope_keys_are_case_sensitive"
	httpsInjectionCaseNameConstant       = "https_url"
	existingUserInfoCaseNameConstant     = "existing_user_info_replaced"
	repositoryTokenValueConstant         = "repository-token-value"
	ownerTokenValueConstant              = "owner-token-value"
	globalTokenValueConstant             = "global-token-value"
	exampleRemoteURLConstant             = "https://github.com/exampleowner/exampletool"
	redactedTokenPlaceholderTestConstant = "<redacted>"
)

func TestResolveToken(testInstance *testing.T) {
	scopedAuthentication := gitcmd.Authentication{
		Scopes: map[string]string{
			"exampleowner":             ownerTokenValueConstant,
			"exampleowner/exampletool": repositoryTokenValueConstant,
		},
	}

	testCases := []struct {
		name           string
		remoteURL      string
		authentication gitcmd.Authentication
		expectedToken  string
		expectedFound  bool
	}{
		{
			name:      globalTokenCaseNameConstant,
			remoteURL: exampleRemoteURLConstant,
			authentication: gitcmd.Authentication{
				Token:  globalTokenValueConstant,
				Scopes: scopedAuthentication.Scopes,
			},
			expectedToken: globalTokenValueConstant,
			expectedFound: true,
		},
		{
			name:           repositoryScopeCaseNameConstant,
			remoteURL:      exampleRemoteURLConstant,
			authentication: scopedAuthentication,
			expectedToken:  repositoryTokenValueConstant,
			expectedFound:  true,
		},
		{
			name:           ownerScopeCaseNameConstant,
			remoteURL:      "https://github.com/exampleowner/othertool",
			authentication: scopedAuthentication,
			expectedToken:  ownerTokenValueConstant,
			expectedFound:  true,
		},
		{
			name:           noScopeCaseNameConstant,
			remoteURL:      "https://github.com/otherowner/othertool",
			authentication: scopedAuthentication,
			expectedFound:  false,
		},
		{
			name:           unparsableURLCaseNameConstant,
			remoteURL:      "not a url",
			authentication: scopedAuthentication,
			expectedFound:  false,
		},
		{
			name:           caseSensitiveScopeCaseNameConstant,
			remoteURL:      "https://github.com/ExampleOwner/exampletool",
			authentication: scopedAuthentication,
			expectedFound:  false,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtestInstance *testing.T) {
			resolvedToken, tokenFound := gitcmd.ResolveToken(testCase.remoteURL, testCase.authentication)
			require.Equal(subtestInstance, testCase.expectedFound, tokenFound)
			require.Equal(subtestInstance, testCase.expectedToken, resolvedToken)
		})
	}
}

func TestInjectCredential(testInstance *testing.T) {
	testCases := []struct {
		name        string
		remoteURL   string
		token       string
		expectedURL string
	}{
		{
			name:        httpsInjectionCaseNameConstant,
			remoteURL:   exampleRemoteURLConstant,
			token:       repositoryTokenValueConstant,
			expectedURL: "https://" + repositoryTokenValueConstant + "@github.com/exampleowner/exampletool",
		},
		{
			name:        existingUserInfoCaseNameConstant,
			remoteURL:   "https://olduser@github.com/exampleowner/exampletool",
			token:       repositoryTokenValueConstant,
			expectedURL: "https://" + repositoryTokenValueConstant + "@github.com/exampleowner/exampletool",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtestInstance *testing.T) {
			require.Equal(subtestInstance, testCase.expectedURL, gitcmd.InjectCredential(testCase.remoteURL, testCase.token))
		})
	}
}

func TestCredentialRedactorMasksEveryConfiguredToken(testInstance *testing.T) {
	authentication := gitcmd.Authentication{
		Token: globalTokenValueConstant,
		Scopes: map[string]string{
			"exampleowner": ownerTokenValueConstant,
		},
	}
	redactor := gitcmd.NewCredentialRedactor(authentication)

	injectedURL := gitcmd.InjectCredential(exampleRemoteURLConstant, globalTokenValueConstant)
	redactedText := redactor.Redact("git clone " + injectedURL + " with " + ownerTokenValueConstant)

	require.NotContains(testInstance, redactedText, globalTokenValueConstant)
	require.NotContains(testInstance, redactedText, ownerTokenValueConstant)
	require.Equal(testInstance, 2, strings.Count(redactedText, redactedTokenPlaceholderTestConstant))
}

func TestCredentialRedactorWithoutSecretsReturnsInput(testInstance *testing.T) {
	redactor := gitcmd.NewCredentialRedactor(gitcmd.Authentication{})
	originalText := "git push origin main"
	require.Equal(testInstance, originalText, redactor.Redact(originalText))
}
