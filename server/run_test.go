package server

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"testing"
	"time"
)

func TestRunFailsFastWhenPortTaken(t *testing.T) {
	busy, err := net.Listen("tcp", ":0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer busy.Close()
	port := busy.Addr().(*net.TCPAddr).Port

	srv := New(Options{Port: port}, nil)

	done := make(chan error, 1)
	go func() { done <- srv.Run(context.Background()) }()

	select {
	case err := <-done:
		var opErr *net.OpError
		if !errors.As(err, &opErr) {
			t.Fatalf("expected a net.OpError, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not fail fast on a taken port")
	}
}

func TestRunRejectsInvalidPort(t *testing.T) {
	for _, port := range []int{0, -1, 70000} {
		if err := New(Options{Port: port}, nil).Run(context.Background()); err == nil {
			t.Fatalf("port %d: expected error", port)
		}
	}
}

func TestServeAndShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	srv := New(Options{ShutdownTimeout: 2 * time.Second}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	url := "http://" + net.JoinHostPort("127.0.0.1", strconv.Itoa(ln.Addr().(*net.TCPAddr).Port)) + "/"
	resp, err := http.Get(url)
	if err != nil {
		cancel()
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || string(body) != Greeting {
		cancel()
		t.Fatalf("unexpected response %d %q", resp.StatusCode, body)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not stop")
	}

	if _, err := http.Get(url); err == nil {
		t.Fatalf("expected connection failure after shutdown")
	}
}
