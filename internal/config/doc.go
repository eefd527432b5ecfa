// Package config loads fastsecret configuration from local and global YAML
// files. Local files win over the global file and flags win over both; the
// CLI does the flag merge.
package config
