package ipc

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skihide/internal/wm"
)

type fakeHandler struct {
	toggles atomic.Int32
	shows   atomic.Int32
	quits   atomic.Int32
	hidden  map[wm.Handle]string
	showErr error
}

func (f *fakeHandler) Toggle() error {
	f.toggles.Add(1)
	return nil
}

func (f *fakeHandler) Show() error {
	f.shows.Add(1)
	return f.showErr
}

func (f *fakeHandler) Hidden() map[wm.Handle]string { return f.hidden }

func (f *fakeHandler) Quit() error {
	f.quits.Add(1)
	return nil
}

// socketPath stays short: sun_path is limited to ~104 bytes on some systems.
func socketPath(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "skh")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	return filepath.Join(dir, socketName)
}

func startServer(t *testing.T, h Handler) string {
	t.Helper()
	path := socketPath(t)
	srv := NewServer(path, h, nil)
	require.NoError(t, srv.Listen())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()
	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
	})
	return path
}

func TestCommands(t *testing.T) {
	h := &fakeHandler{hidden: map[wm.Handle]string{0x20: "B", 0x10: "A"}}
	client := NewClient(startServer(t, h), nil)

	resp, err := client.SendCommand(CommandToggle)
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, resp.Status)
	assert.EqualValues(t, 1, h.toggles.Load())

	resp, err = client.SendCommand(CommandStatus)
	require.NoError(t, err)
	assert.Equal(t, []wm.Window{{Handle: 0x10, Title: "A"}, {Handle: 0x20, Title: "B"}}, resp.Hidden)

	_, err = client.SendCommand(CommandQuit)
	require.NoError(t, err)
	assert.EqualValues(t, 1, h.quits.Load())
}

func TestUnknownCommand(t *testing.T) {
	client := NewClient(startServer(t, &fakeHandler{}), nil)

	resp, err := client.SendCommand("hideout")
	assert.Error(t, err)
	assert.Equal(t, StatusError, resp.Status)
}

func TestRunning(t *testing.T) {
	h := &fakeHandler{}
	assert.True(t, NewClient(startServer(t, h), nil).Running())
	assert.EqualValues(t, 1, h.shows.Load())

	broken := &fakeHandler{showErr: errors.New("window gone")}
	assert.False(t, NewClient(startServer(t, broken), nil).Running())
}

func TestRunningWithoutServer(t *testing.T) {
	assert.False(t, NewClient(socketPath(t), nil).Running())
}

func TestListenReplacesStaleSocket(t *testing.T) {
	path := socketPath(t)
	require.NoError(t, os.WriteFile(path, nil, 0644))

	srv := NewServer(path, &fakeHandler{}, nil)
	require.NoError(t, srv.Listen())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, srv.Serve(ctx))
}

func TestServeWithoutListen(t *testing.T) {
	assert.Error(t, NewServer(socketPath(t), &fakeHandler{}, nil).Serve(context.Background()))
}
