// Package githubapi wraps the GitHub REST API for pull request, label,
// comment, and milestone operations.
package githubapi
