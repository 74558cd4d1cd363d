package gitcmd

import (
	"strings"
)

const (
	redactedTokenPlaceholderConstant = "<redacted>"
	userInfoDelimiterConstant        = "@"
	schemeDelimiterConstant          = "://"
)

// Authentication carries the tokens applied to remote URLs.
//
// A non-empty Token applies to every remote URL. Otherwise Scopes maps an
// owner name, or an "owner/repository" full name, to the token used for
// matching URLs. Both key forms are matched exactly (case-sensitive); the
// full-name form takes precedence over the owner-only form.
type Authentication struct {
	Token  string
	Scopes map[string]string
}

// HasCredentials reports whether any token is configured.
func (authentication Authentication) HasCredentials() bool {
	return len(authentication.Token) > 0 || len(authentication.Scopes) > 0
}

// ResolveToken returns the token applicable to the provided remote URL.
//
// A global token wins unconditionally. Scoped lookup parses the URL's owner
// and repository segments and tries the "owner/repository" key before the
// "owner" key. A URL that cannot be parsed, or that matches no scope key,
// yields no token; the caller proceeds with the unmodified URL.
func ResolveToken(remoteURL string, authentication Authentication) (string, bool) {
	if len(authentication.Token) > 0 {
		return authentication.Token, true
	}
	if len(authentication.Scopes) == 0 {
		return "", false
	}

	parsedRemote, parseError := ParseRemoteURL(remoteURL)
	if parseError != nil {
		return "", false
	}

	if scopedToken, scopeExists := authentication.Scopes[parsedRemote.OwnerRepository()]; scopeExists && len(scopedToken) > 0 {
		return scopedToken, true
	}
	if scopedToken, scopeExists := authentication.Scopes[parsedRemote.Owner]; scopeExists && len(scopedToken) > 0 {
		return scopedToken, true
	}
	return "", false
}

// InjectCredential rewrites the URL to carry the token as its user-info
// segment, overwriting any user-info already present. URLs without a scheme
// separator are returned unchanged.
func InjectCredential(remoteURL string, token string) string {
	schemeSplitIndex := strings.Index(remoteURL, schemeDelimiterConstant)
	if schemeSplitIndex == -1 || len(token) == 0 {
		return remoteURL
	}

	scheme := remoteURL[:schemeSplitIndex]
	remainder := remoteURL[schemeSplitIndex+len(schemeDelimiterConstant):]

	hostAndPath := remainder
	pathStartIndex := strings.Index(remainder, pathSeparatorConstant)
	authority := remainder
	if pathStartIndex != -1 {
		authority = remainder[:pathStartIndex]
	}
	if userSplitIndex := strings.LastIndex(authority, userInfoDelimiterConstant); userSplitIndex != -1 {
		hostAndPath = remainder[userSplitIndex+1:]
	}

	return scheme + schemeDelimiterConstant + token + userInfoDelimiterConstant + hostAndPath
}

// CredentialRedactor replaces known secret tokens with a fixed placeholder.
type CredentialRedactor struct {
	secrets []string
}

// NewCredentialRedactor collects every token carried by the authentication
// configuration so that each literal occurrence can be replaced before any
// text reaches a log sink.
func NewCredentialRedactor(authentication Authentication) CredentialRedactor {
	secrets := make([]string, 0, len(authentication.Scopes)+1)
	if len(authentication.Token) > 0 {
		secrets = append(secrets, authentication.Token)
	}
	for _, scopedToken := range authentication.Scopes {
		if len(scopedToken) > 0 {
			secrets = append(secrets, scopedToken)
		}
	}
	return CredentialRedactor{secrets: secrets}
}

// Redact replaces every literal occurrence of a known token in the text.
func (redactor CredentialRedactor) Redact(text string) string {
	redactedText := text
	for _, secret := range redactor.secrets {
		redactedText = strings.ReplaceAll(redactedText, secret, redactedTokenPlaceholderConstant)
	}
	return redactedText
}
