// Package cli assembles the azdevtools command line application.
package cli
