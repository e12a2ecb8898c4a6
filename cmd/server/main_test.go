package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"
)

// stuckServer never finishes draining.
type stuckServer struct{}

func (stuckServer) Shutdown(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestShutdown(t *testing.T) {
	var logs bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	if err := shutdown(&http.Server{}, time.Second); err != nil {
		t.Fatalf("idle server: %v", err)
	}
	if logs.Len() != 0 {
		t.Errorf("clean shutdown logged %q", logs.String())
	}

	err := shutdown(stuckServer{}, 10*time.Millisecond)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want deadline exceeded", err)
	}
	if !strings.Contains(logs.String(), "server shutdown error") {
		t.Errorf("failure not logged: %q", logs.String())
	}
}
