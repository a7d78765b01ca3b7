// Package state provides a lightweight in-memory session store for Telegram
// bot conversations. It is intentionally domain-agnostic so it can be reused
// across bots: the session payload is a type parameter, and per-user event
// ordering is enforced separately via Locker.
package state
