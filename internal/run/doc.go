// Package run owns subprocess execution for the release pipeline.
//
// Ownership boundary:
// - spawning toolchain commands with merged output
//
// - line-ordered streaming to a labelled sink
//
// - tolerated-error triage and final outcome derivation
//
// One command runs at a time; the read loop blocks until the child's
// merged stream closes.
package run
