// Package project reads the optional per-project settings file (.ailink.yaml)
// from the project root. The file is validated against an embedded JSON schema
// and may pin a semver range the running binary must satisfy.
package project
