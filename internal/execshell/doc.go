// Package execshell provides structured helpers for invoking external tools.
//
// It wraps os/exec with lifecycle logging via ShellExecutor, exposes
// OSCommandRunner for default process execution, and defines the CommandRunner
// abstraction used throughout the toolkit to run git in a testable manner.
package execshell
