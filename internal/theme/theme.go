// Package theme styles the notification popups. A built-in stylesheet is
// always applied; a user stylesheet at ~/.config/nacho/theme.css is layered
// on top and hot-reloaded on change.
package theme

import (
	"os"
	"path/filepath"
)

// defaultCSS is the built-in popup stylesheet. Urgency and color-scheme
// classes are set per popup by the display package.
const defaultCSS = `
.notification-popup {
	border-radius: 12px;
	background-color: @window_bg_color;
}
.notification-title {
	font-weight: bold;
}
.notification-subtitle {
	opacity: 0.8;
	font-size: 0.9em;
}
.notification-body {
	font-size: 0.95em;
}
.urgency-critical {
	border-left: 3px solid @error_color;
}
.urgency-low {
	opacity: 0.9;
}
`

// Path returns the path of the user stylesheet.
func Path() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "nacho", "theme.css"), nil
}
