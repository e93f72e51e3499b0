package main

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestServeReturnsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()}

	done := make(chan error, 1)
	go func() { done <- serve(ctx, srv, logrus.New()) }()

	// Let the listener bind before cancelling.
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after context cancellation")
	}
}

func TestServeReturnsListenerError(t *testing.T) {
	srv := &http.Server{Addr: "127.0.0.1:-1", Handler: http.NewServeMux()}

	err := serve(context.Background(), srv, logrus.New())
	require.Error(t, err)
}
