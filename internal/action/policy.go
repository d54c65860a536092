// Package action turns invoked notification actions into window-manager side
// effects: focusing the originating application and, for some categories,
// injecting a key combination or opening a file in the editor.
package action

import (
	"regexp"
	"strings"

	"github.com/ndev51/nacho/internal/session"
)

// Category classifies an application for action routing.
type Category int

const (
	// CategoryGeneric applies to any unrecognized application.
	CategoryGeneric Category = iota
	// CategoryChat covers messaging clients.
	CategoryChat
	// CategoryEmail covers mail clients.
	CategoryEmail
	// CategoryEditor covers code editors.
	CategoryEditor
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryChat:
		return "chat"
	case CategoryEmail:
		return "email"
	case CategoryEditor:
		return "editor"
	default:
		return "generic"
	}
}

var categories = map[string]Category{
	"discord":  CategoryChat,
	"element":  CategoryChat,
	"telegram": CategoryChat,
	"whatsapp": CategoryChat,
	"signal":   CategoryChat,

	"thunderbird": CategoryEmail,
	"evolution":   CategoryEmail,
	"geary":       CategoryEmail,

	"code":               CategoryEditor,
	"visual studio code": CategoryEditor,
	"vscode":             CategoryEditor,
}

// CategoryOf resolves the routing category for an application name.
func CategoryOf(appName string) Category {
	return categories[strings.ToLower(appName)]
}

// Effect is the resolved outcome of an action: which window to focus, which
// key combination to inject afterwards, and an optional external command.
// Zero-valued fields mean "nothing to do".
type Effect struct {
	FocusApp   string
	Keys       []string
	LaunchArgs []string

	// ChatName is the derived chat or channel the action refers to. It is
	// informational; the key injection opens the client's switcher and the
	// user completes the jump.
	ChatName string
}

// policy resolves an action for one application category.
type policy interface {
	resolve(rec *session.Record, actionKey string) Effect
}

var policies = map[Category]policy{
	CategoryChat:    chatPolicy{},
	CategoryEmail:   emailPolicy{},
	CategoryEditor:  editorPolicy{},
	CategoryGeneric: genericPolicy{},
}

// Resolve computes the effect for an invoked action. It is pure: no external
// calls are made here.
func Resolve(rec *session.Record, actionKey string) Effect {
	return policies[CategoryOf(rec.AppName)].resolve(rec, actionKey)
}

// chatPolicy always focuses the client; for actions that open a conversation
// it additionally injects the client's quick-switcher shortcut.
type chatPolicy struct{}

func (chatPolicy) resolve(rec *session.Record, actionKey string) Effect {
	app := strings.ToLower(rec.AppName)
	effect := Effect{FocusApp: app}

	switch actionKey {
	case "reply", "open", "show":
	default:
		return effect
	}

	effect.ChatName = rec.Content.ChatName()
	switch app {
	case "discord":
		// Discord's quick switcher.
		effect.Keys = []string{"CTRL", "K"}
	case "telegram", "whatsapp":
		// Chat search.
		effect.Keys = []string{"CTRL", "F"}
	}
	return effect
}

// emailPolicy focuses the mail client and nothing else.
type emailPolicy struct{}

func (emailPolicy) resolve(rec *session.Record, _ string) Effect {
	return Effect{FocusApp: strings.ToLower(rec.AppName)}
}

// pathPattern matches the first file-path-like token in a notification body.
var pathPattern = regexp.MustCompile(`([/\w.-]+\.\w+)`)

// editorPolicy focuses the editor; for "open" actions on error notifications
// it extracts a file path from the body and opens the editor at it. A body
// without a path-like token is silently ignored.
type editorPolicy struct{}

func (editorPolicy) resolve(rec *session.Record, actionKey string) Effect {
	effect := Effect{FocusApp: "code"}

	if actionKey != "open" {
		return effect
	}
	if !strings.Contains(strings.ToLower(rec.Content.Body), "error") {
		return effect
	}
	if path := pathPattern.FindString(rec.Content.Body); path != "" {
		effect.LaunchArgs = []string{"code", "--goto", path}
	}
	return effect
}

// genericPolicy focuses by application name.
type genericPolicy struct{}

func (genericPolicy) resolve(rec *session.Record, _ string) Effect {
	return Effect{FocusApp: strings.ToLower(rec.AppName)}
}
