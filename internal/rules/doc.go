// Package rules defines fastsecret's detection rules: the built-in catalog of
// common secret formats and the loader for user-supplied YAML rule files.
// Rules are plain data; the engine compiles and evaluates them.
package rules
