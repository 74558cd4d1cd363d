// Package gitcmd implements a structured wrapper around the git command-line
// tool.
//
// Typed option structs are translated into exact argument vectors, executed
// through an injectable runner, and the tool's human-oriented text output is
// parsed back into typed results. Authentication tokens resolved for remote
// URLs are injected into the URL user-info segment and redacted from every
// logged command line and captured output.
package gitcmd
