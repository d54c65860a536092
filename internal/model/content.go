// Package model defines the notification content structures shared by the
// session core and its collaborators.
package model

import "strings"

// Urgency levels matching the freedesktop spec.
const (
	UrgencyLow      = 0
	UrgencyNormal   = 1
	UrgencyCritical = 2
)

// UrgencyNames maps urgency levels to human-readable names.
var UrgencyNames = map[int]string{
	UrgencyLow:      "low",
	UrgencyNormal:   "normal",
	UrgencyCritical: "critical",
}

// Action represents a notification action with key and label.
type Action struct {
	Key   string
	Label string
}

// Content is the displayable text of a notification after client-specific
// quirks have been normalized away.
type Content struct {
	Title    string
	Subtitle string
	Body     string
}

// elecwhatMarker is the left-to-right mark elecwhat inserts between the
// sender and the message text.
const elecwhatMarker = "\u200e"

// ParseContent normalizes the summary/body pair of an incoming request.
//
// Several clients prefix the summary with "<app name> - "; the prefix is
// stripped. The elecwhat WhatsApp client additionally packs the sender name
// into the body, separated by a left-to-right mark; it is split out into the
// subtitle so the router can derive a chat name from it.
func ParseContent(appName, summary, body string) Content {
	c := Content{Title: summary, Body: body}

	if appName == "elecwhat" {
		c.Title = stripAppPrefix(c.Title, appName)
		if strings.Contains(body, elecwhatMarker) {
			c.Subtitle, _, _ = strings.Cut(body, ": ")
			if _, after, ok := strings.Cut(body, elecwhatMarker+":"); ok {
				c.Body = after
			}
		}
		return c
	}

	if appName != "" && strings.Contains(c.Title, appName) {
		c.Title = stripAppPrefix(c.Title, appName)
	}
	return c
}

// stripAppPrefix removes a leading "<app> - " style prefix from the title.
// The original daemons emit a three-character separator after the app name.
func stripAppPrefix(title, appName string) string {
	if len(title) > len(appName)+3 && strings.HasPrefix(title, appName) {
		return title[len(appName)+3:]
	}
	return title
}

// ChatName derives the chat or channel name referenced by the notification:
// the subtitle when present, otherwise the portion of the title before a
// colon.
func (c Content) ChatName() string {
	if c.Subtitle != "" {
		return strings.TrimSpace(c.Subtitle)
	}
	if name, _, ok := strings.Cut(c.Title, ":"); ok {
		return strings.TrimSpace(name)
	}
	return ""
}
