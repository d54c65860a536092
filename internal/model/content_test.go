package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseContent(t *testing.T) {
	tests := []struct {
		name     string
		appName  string
		summary  string
		body     string
		expected Content
	}{
		{
			name:     "plain notification",
			appName:  "spotify",
			summary:  "Now playing",
			body:     "Artist - Song",
			expected: Content{Title: "Now playing", Body: "Artist - Song"},
		},
		{
			name:     "app name prefix stripped",
			appName:  "discord",
			summary:  "discord - friend: hey",
			body:     "hey there",
			expected: Content{Title: "friend: hey", Body: "hey there"},
		},
		{
			name:     "summary without app name untouched",
			appName:  "discord",
			summary:  "friend: hey",
			body:     "hey there",
			expected: Content{Title: "friend: hey", Body: "hey there"},
		},
		{
			name:    "elecwhat sender split into subtitle",
			appName: "elecwhat",
			summary: "elecwhat - New message",
			body:    "Family Group: \u200e: dinner at 8?",
			expected: Content{
				Title:    "New message",
				Subtitle: "Family Group",
				Body:     " dinner at 8?",
			},
		},
		{
			name:     "elecwhat body without marker kept",
			appName:  "elecwhat",
			summary:  "elecwhat - New message",
			body:     "plain text",
			expected: Content{Title: "New message", Body: "plain text"},
		},
		{
			name:     "empty app name",
			appName:  "",
			summary:  "hello",
			body:     "world",
			expected: Content{Title: "hello", Body: "world"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseContent(tt.appName, tt.summary, tt.body))
		})
	}
}

func TestChatName(t *testing.T) {
	tests := []struct {
		name     string
		content  Content
		expected string
	}{
		{
			name:     "subtitle wins",
			content:  Content{Title: "other: x", Subtitle: "Family Group"},
			expected: "Family Group",
		},
		{
			name:     "title before colon",
			content:  Content{Title: "friend: hey there"},
			expected: "friend",
		},
		{
			name:     "title without colon",
			content:  Content{Title: "no sender here"},
			expected: "",
		},
		{
			name:     "subtitle is trimmed",
			content:  Content{Subtitle: "  Family Group "},
			expected: "Family Group",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.content.ChatName())
		})
	}
}
