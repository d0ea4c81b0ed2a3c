// Package targets lists the assistant configuration files that can be linked
// to the canonical document, keyed by the tool that reads them.
package targets
