// Package utils provides the logger factory and configuration loader shared
// by the command line application.
package utils
