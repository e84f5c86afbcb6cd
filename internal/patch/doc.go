// Package patch wraps the method slots of a client facade with logging and
// timing advice at runtime, and tracks the resulting undo handles so a
// scenario can revert every wrap at teardown.
//
// A "method slot" is an exported function-valued field on a struct. Slots
// are the facade's only sanctioned extension point: replacing the field
// value wraps every subsequent call without touching the implementation,
// and restoring the captured original reverts it. Application is always
// best-effort — the remote library's client shape is not contractually
// stable across versions, so an ineligible slot is skipped with a log
// entry, never an error.
package patch
