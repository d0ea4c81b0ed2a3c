// Package reconcile turns each selected candidate into a relative symlink to
// the canonical document. Candidates are processed independently: a failure
// is recorded in the Report and the remaining candidates still run. Nothing is
// rolled back.
package reconcile
