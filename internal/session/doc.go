// Package session owns the authoritative table of live notifications: it
// assigns identity, computes on-screen stacking order, drives per-notification
// expiry timers and guarantees exactly one closed-or-action event per record.
package session
