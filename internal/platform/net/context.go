// Package net provides utilities for working with request contexts
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ctxKey is an unexported key type for context values
type ctxKey string

const (
	keyAccountID ctxKey = "account_id"
)

// WithRequest annotates context with common request scoped ids
func WithRequest(ctx context.Context, reqID, accountID string) context.Context {
	if reqID != "" {
		// set chi RequestID so chimw.GetReqID can retrieve it
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	if accountID != "" {
		ctx = context.WithValue(ctx, keyAccountID, accountID)
	}
	return ctx
}

// WithAccount annotates context with the authenticated account id
func WithAccount(ctx context.Context, accountID string) context.Context {
	if accountID != "" {
		ctx = context.WithValue(ctx, keyAccountID, accountID)
	}
	return ctx
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	if v := chimw.GetReqID(ctx); v != "" {
		return v
	}
	return ""
}

// AccountID returns the account id on the context if present
func AccountID(ctx context.Context) string {
	if v, ok := ctx.Value(keyAccountID).(string); ok {
		return v
	}
	return ""
}
