package httpkit

import (
	"context"
	"net/http"
	"testing"
)

// req helper
func newReq() *http.Request {
	req, _ := http.NewRequest(http.MethodGet, "http://x.test/y", nil)
	return req
}

// anyValCtx returns a context that always yields a given value for any key
type anyValCtx struct {
	context.Context
	val any
}

func (c anyValCtx) Value(key any) any {
	return c.val
}

func TestAccount_SuccessAndError(t *testing.T) {
	// success: force any ctx.Value(...) to return a non-empty account id
	{
		ctx := anyValCtx{Context: context.Background(), val: "a-123"}
		got, err := Account(newReq().WithContext(ctx))
		if err != nil {
			t.Fatalf("Account unexpected error: %v", err)
		}
		if got != "a-123" {
			t.Fatalf("Account got %q want %q", got, "a-123")
		}
	}

	// error: empty/default context
	{
		_, err := Account(newReq())
		if err == nil {
			t.Fatal("Account expected error, got nil")
		}
		if got := err.Error(); got != "missing api key" {
			t.Fatalf("Account error = %q want %q", got, "missing api key")
		}
	}
}

func TestMustAccount_SuccessAndPanic(t *testing.T) {
	// success
	{
		ctx := anyValCtx{Context: context.Background(), val: "ok-acct"}
		if got := MustAccount(newReq().WithContext(ctx)); got != "ok-acct" {
			t.Fatalf("MustAccount got %q want %q", got, "ok-acct")
		}
	}
	// panic
	{
		defer func() {
			if r := recover(); r == nil {
				t.Fatal("MustAccount expected panic, got none")
			}
		}()
		_ = MustAccount(newReq())
	}
}

func TestAPIKey_SuccessVariants(t *testing.T) {
	cases := []struct {
		name string
		h    string
		want string
	}{
		{"plain", "abc123", "abc123"},
		{"leading-spaces", "   xyz", "xyz"},
		{"trailing-spaces", "token   ", "token"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := newReq()
			req.Header.Set("X-API-Key", tc.h)
			got, err := APIKey(req)
			if err != nil {
				t.Fatalf("APIKey unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("APIKey got %q want %q", got, tc.want)
			}
		})
	}
}

func TestAPIKey_ErrorPaths(t *testing.T) {
	assertUnauthorized := func(t *testing.T, err error) {
		t.Helper()
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if err.Error() != "missing api key" {
			t.Fatalf("error = %q want %q", err.Error(), "missing api key")
		}
	}

	// missing header
	{
		req := newReq()
		_, err := APIKey(req)
		assertUnauthorized(t, err)
	}

	// spaces only (still raw == "")
	{
		req := newReq()
		req.Header.Set("X-API-Key", "     ")
		_, err := APIKey(req)
		assertUnauthorized(t, err)
	}
}

func TestMustAPIKey_SuccessAndPanic(t *testing.T) {
	// success
	{
		req := newReq()
		req.Header.Set("X-API-Key", "ok")
		if got := MustAPIKey(req); got != "ok" {
			t.Fatalf("MustAPIKey got %q want %q", got, "ok")
		}
	}
	// panic
	{
		defer func() {
			if r := recover(); r == nil {
				t.Fatal("expected panic, got none")
			}
		}()
		_ = MustAPIKey(newReq())
	}
}
