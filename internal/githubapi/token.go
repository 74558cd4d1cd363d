package githubapi

import (
	"os"
	"strings"
)

// Environment variable names consulted for a GitHub authentication token.
const (
	EnvGitHubCLIToken = "GH_TOKEN"
	EnvGitHubToken    = "GITHUB_TOKEN"
	EnvGitHubAPIToken = "GITHUB_API_TOKEN"
)

var tokenEnvironmentPreference = []string{
	EnvGitHubCLIToken,
	EnvGitHubToken,
	EnvGitHubAPIToken,
}

// ResolveEnvironmentToken returns the first non-empty token found in the
// provided environment map, falling back to the process environment. Keys are
// consulted in the fixed preference order above.
func ResolveEnvironmentToken(environment map[string]string) (string, bool) {
	for _, environmentKey := range tokenEnvironmentPreference {
		if tokenValue, tokenExists := lookupEnvironmentValue(environment, environmentKey); tokenExists {
			return tokenValue, true
		}
	}
	for _, environmentKey := range tokenEnvironmentPreference {
		if rawValue, valueExists := os.LookupEnv(environmentKey); valueExists {
			trimmedValue := strings.TrimSpace(rawValue)
			if len(trimmedValue) > 0 {
				return trimmedValue, true
			}
		}
	}
	return "", false
}

func lookupEnvironmentValue(environment map[string]string, environmentKey string) (string, bool) {
	if environment == nil {
		return "", false
	}
	rawValue, valueExists := environment[environmentKey]
	if !valueExists {
		return "", false
	}
	trimmedValue := strings.TrimSpace(rawValue)
	if len(trimmedValue) == 0 {
		return "", false
	}
	return trimmedValue, true
}
