// Package platform wraps the filesystem primitives used to manage links:
// creating, reading, resolving and removing symbolic links, and computing the
// relative target that keeps a link valid when the project tree moves.
// It relies on native symlinks only; there is no copy fallback.
package platform
