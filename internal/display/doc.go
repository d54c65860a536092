// Package display renders notification popups as GTK4 layer-shell surfaces.
// All widget work happens on the GTK main loop via glib.IdleAdd; the exported
// surface methods are safe to call from any goroutine.
package display
