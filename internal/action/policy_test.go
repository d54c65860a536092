package action

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ndev51/nacho/internal/model"
	"github.com/ndev51/nacho/internal/session"
)

func record(appName string, content model.Content) *session.Record {
	return &session.Record{
		ID:      1,
		AppName: appName,
		Content: content,
	}
}

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		appName  string
		expected Category
	}{
		{"discord", CategoryChat},
		{"Discord", CategoryChat},
		{"telegram", CategoryChat},
		{"whatsapp", CategoryChat},
		{"element", CategoryChat},
		{"signal", CategoryChat},
		{"thunderbird", CategoryEmail},
		{"evolution", CategoryEmail},
		{"geary", CategoryEmail},
		{"code", CategoryEditor},
		{"Visual Studio Code", CategoryEditor},
		{"vscode", CategoryEditor},
		{"spotify", CategoryGeneric},
		{"", CategoryGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.appName, func(t *testing.T) {
			assert.Equal(t, tt.expected, CategoryOf(tt.appName))
		})
	}
}

func TestChatPolicyDiscordReply(t *testing.T) {
	rec := record("discord", model.Content{Title: "friend: hey there"})

	effect := Resolve(rec, "reply")

	assert.Equal(t, "discord", effect.FocusApp)
	assert.Equal(t, []string{"CTRL", "K"}, effect.Keys)
	assert.Equal(t, "friend", effect.ChatName)
	assert.Empty(t, effect.LaunchArgs)
}

func TestChatPolicySearchShortcuts(t *testing.T) {
	tests := []struct {
		appName string
		keys    []string
	}{
		{"discord", []string{"CTRL", "K"}},
		{"telegram", []string{"CTRL", "F"}},
		{"whatsapp", []string{"CTRL", "F"}},
		{"element", nil},
		{"signal", nil},
	}

	for _, tt := range tests {
		t.Run(tt.appName, func(t *testing.T) {
			rec := record(tt.appName, model.Content{Title: "someone: hi"})
			effect := Resolve(rec, "open")
			assert.Equal(t, tt.appName, effect.FocusApp)
			assert.Equal(t, tt.keys, effect.Keys)
		})
	}
}

func TestChatPolicyNonConversationAction(t *testing.T) {
	rec := record("discord", model.Content{Title: "friend: hey"})

	effect := Resolve(rec, "mark-read")

	assert.Equal(t, "discord", effect.FocusApp)
	assert.Empty(t, effect.Keys)
	assert.Empty(t, effect.ChatName)
}

func TestChatPolicyUsesSubtitleForChatName(t *testing.T) {
	rec := record("whatsapp", model.Content{
		Title:    "New message",
		Subtitle: "Family Group",
	})

	effect := Resolve(rec, "show")
	assert.Equal(t, "Family Group", effect.ChatName)
}

func TestEmailPolicyFocusOnly(t *testing.T) {
	rec := record("thunderbird", model.Content{Title: "New mail"})

	for _, key := range []string{"default", "open", "reply"} {
		effect := Resolve(rec, key)
		assert.Equal(t, "thunderbird", effect.FocusApp)
		assert.Empty(t, effect.Keys)
		assert.Empty(t, effect.LaunchArgs)
	}
}

func TestEditorPolicyOpensErrorLocation(t *testing.T) {
	rec := record("code", model.Content{
		Title: "Build failed",
		Body:  "Error in /home/user/project/main.go on line 42",
	})

	effect := Resolve(rec, "open")

	assert.Equal(t, "code", effect.FocusApp)
	assert.Equal(t, []string{"code", "--goto", "/home/user/project/main.go"}, effect.LaunchArgs)
}

func TestEditorPolicyNoErrorNoLaunch(t *testing.T) {
	rec := record("code", model.Content{
		Title: "Task finished",
		Body:  "Build of /home/user/project completed",
	})

	effect := Resolve(rec, "open")
	assert.Equal(t, "code", effect.FocusApp)
	assert.Empty(t, effect.LaunchArgs)
}

func TestEditorPolicyErrorWithoutPath(t *testing.T) {
	rec := record("code", model.Content{
		Title: "Build failed",
		Body:  "error: something went wrong",
	})

	effect := Resolve(rec, "open")
	assert.Empty(t, effect.LaunchArgs)
}

func TestEditorPolicyNonOpenAction(t *testing.T) {
	rec := record("code", model.Content{
		Title: "Build failed",
		Body:  "Error in /tmp/x.go",
	})

	effect := Resolve(rec, "dismiss")
	assert.Equal(t, "code", effect.FocusApp)
	assert.Empty(t, effect.LaunchArgs)
}

func TestGenericPolicyFocusByAppName(t *testing.T) {
	rec := record("Spotify", model.Content{Title: "Now playing"})

	effect := Resolve(rec, "default")
	assert.Equal(t, "spotify", effect.FocusApp)
	assert.Empty(t, effect.Keys)
}
