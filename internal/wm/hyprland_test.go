package wm

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedCall struct {
	name string
	args []string
}

// fakeRunner captures invoked commands and returns scripted output.
type fakeRunner struct {
	mu     sync.Mutex
	calls  []recordedCall
	output []byte
	err    error
}

func (r *fakeRunner) run(ctx context.Context, name string, args ...string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, recordedCall{name: name, args: args})
	return r.output, r.err
}

func (r *fakeRunner) lastCall(t *testing.T) recordedCall {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.calls)
	return r.calls[len(r.calls)-1]
}

func testClient(runner *fakeRunner) *Hyprctl {
	h := NewHyprctl(time.Second, nil)
	h.run = runner.run
	return h
}

func TestListWindows(t *testing.T) {
	runner := &fakeRunner{
		output: []byte(`[
			{"class": "discord", "title": "general - Discord", "address": "0x5603"},
			{"class": "firefox", "title": "Mozilla Firefox", "address": "0x5604"}
		]`),
	}
	h := testClient(runner)

	windows, err := h.ListWindows(context.Background())
	require.NoError(t, err)
	require.Len(t, windows, 2)

	assert.Equal(t, "discord", windows[0].Class)
	assert.Equal(t, "general - Discord", windows[0].Title)
	assert.Equal(t, "0x5603", windows[0].Address)

	call := runner.lastCall(t)
	assert.Equal(t, "hyprctl", call.name)
	assert.Equal(t, []string{"clients", "-j"}, call.args)
}

func TestListWindowsCommandError(t *testing.T) {
	runner := &fakeRunner{err: errors.New("exit status 1")}
	h := testClient(runner)

	_, err := h.ListWindows(context.Background())
	assert.Error(t, err)
}

func TestListWindowsBadJSON(t *testing.T) {
	runner := &fakeRunner{output: []byte("not json")}
	h := testClient(runner)

	_, err := h.ListWindows(context.Background())
	assert.ErrorContains(t, err, "decode")
}

func TestFocusAddress(t *testing.T) {
	runner := &fakeRunner{}
	h := testClient(runner)

	require.NoError(t, h.FocusAddress(context.Background(), "0x5603"))

	call := runner.lastCall(t)
	assert.Equal(t, []string{"dispatch", "focuswindow", "address:0x5603"}, call.args)
}

func TestFocusClass(t *testing.T) {
	runner := &fakeRunner{}
	h := testClient(runner)

	require.NoError(t, h.FocusClass(context.Background(), "discord"))

	call := runner.lastCall(t)
	assert.Equal(t, []string{"dispatch", "focuswindow", "class:^discord$"}, call.args)
}

func TestSendKeys(t *testing.T) {
	runner := &fakeRunner{}
	h := testClient(runner)

	require.NoError(t, h.SendKeys(context.Background(), []string{"CTRL", "K"}))

	call := runner.lastCall(t)
	assert.Equal(t, []string{"dispatch", "sendshortcut", "CTRL K", "class:^.*$"}, call.args)
}

func TestLaunchDetaches(t *testing.T) {
	var started recordedCall
	h := NewHyprctl(time.Second, nil)
	h.start = func(name string, args ...string) error {
		started = recordedCall{name: name, args: args}
		return nil
	}

	require.NoError(t, h.Launch(context.Background(), "code", "--goto", "/tmp/x.go"))
	assert.Equal(t, "code", started.name)
	assert.Equal(t, []string{"--goto", "/tmp/x.go"}, started.args)
}

func TestLaunchError(t *testing.T) {
	h := NewHyprctl(time.Second, nil)
	h.start = func(name string, args ...string) error {
		return errors.New("no such file")
	}

	err := h.Launch(context.Background(), "missing-app")
	assert.ErrorContains(t, err, "missing-app")
}
