// Package cli defines the Cobra command tree for the ailink CLI. The root
// command runs the link setup; each other file builds one subcommand
// (status, unlink, doctor, config, version) for it. Commands delegate to internal
// packages for the work and only handle flags, output, and prompting.
//
// Commands are built by newXxxCmd constructors rather than package-level
// variables registered in init, so every test gets a fresh tree with its own
// flag state and in/out streams.
package cli
