// Package daemon provides supporting services for nachod: config hot
// reload and internal self-notifications.
package daemon
