package net_test

import (
	"context"
	"testing"

	pnet "demovault/internal/platform/net"
)

func TestWithRequest_And_Getters(t *testing.T) {
	base := context.Background()

	t.Run("sets both ids", func(t *testing.T) {
		ctx := pnet.WithRequest(base, "req-123", "acct-abc")

		if got := pnet.RequestID(ctx); got != "req-123" {
			t.Fatalf("RequestID got %q want %q", got, "req-123")
		}
		if got := pnet.AccountID(ctx); got != "acct-abc" {
			t.Fatalf("AccountID got %q want %q", got, "acct-abc")
		}
	})

	t.Run("sets only request id", func(t *testing.T) {
		ctx := pnet.WithRequest(base, "r-only", "")

		if got := pnet.RequestID(ctx); got != "r-only" {
			t.Fatalf("RequestID got %q want %q", got, "r-only")
		}
		if got := pnet.AccountID(ctx); got != "" {
			t.Fatalf("AccountID got %q want empty", got)
		}
	})

	t.Run("sets only account id", func(t *testing.T) {
		ctx := pnet.WithRequest(base, "", "a-only")

		if got := pnet.RequestID(ctx); got != "" {
			t.Fatalf("RequestID got %q want empty", got)
		}
		if got := pnet.AccountID(ctx); got != "a-only" {
			t.Fatalf("AccountID got %q want %q", got, "a-only")
		}
	})

	t.Run("no ids returns same ctx and empty getters", func(t *testing.T) {
		ctx := pnet.WithRequest(base, "", "")

		// should be the same reference since nothing was set
		if ctx != base {
			t.Fatalf("expected ctx to be unchanged when both ids empty")
		}
		if got := pnet.RequestID(ctx); got != "" {
			t.Fatalf("RequestID got %q want empty", got)
		}
		if got := pnet.AccountID(ctx); got != "" {
			t.Fatalf("AccountID got %q want empty", got)
		}
	})
}

func TestWithAccount(t *testing.T) {
	base := context.Background()

	if ctx := pnet.WithAccount(base, ""); ctx != base {
		t.Fatalf("expected ctx unchanged for empty account id")
	}
	if got := pnet.AccountID(pnet.WithAccount(base, "acct-1")); got != "acct-1" {
		t.Fatalf("AccountID got %q want %q", got, "acct-1")
	}
}
