// Package engine contains the core scanning logic for fastsecret. It walks a
// file or directory, filters out noise directories and binary files,
// evaluates every active rule against every line, and returns structured
// findings. External consumers should use the facade in pkg/core.
package engine
