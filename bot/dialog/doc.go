// Package dialog implements the guided greeting conversation: a per-user
// finite-state machine expressed as a pure transition function plus a
// controller that executes the resulting effects against injected
// collaborators (user directory, message ledger, messenger transport).
// The package has no dependency on the Telegram transport, so the whole
// conversation flow is unit-testable with fakes.
package dialog
