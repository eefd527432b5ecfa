// Package core provides a small, stable facade over fastsecret's internal
// engine for programs that embed the scanner. It re-exports a narrow API
// surface so callers can depend on a stable import path without importing
// internal packages.
//
// Example:
//
//	rs := core.LoadBuiltinRules()
//	findings, err := core.Scan(".", rs, []string{"Cloudflare API Token"}, false)
//	if err != nil { /* handle */ }
//	_ = core.MarshalFindings(os.Stdout, findings)
package core
