// Package fastsecret provides the command-line interface for the fastsecret
// scanner. It configures subcommands (scan, rules, test-rules, config, ci),
// parses flags, and executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/fastsecret/fastsecret/cmd/fastsecret"
//	func main() { fastsecret.Execute() }
package fastsecret
