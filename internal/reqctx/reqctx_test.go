package reqctx_test

import (
	"context"
	"testing"

	"github.com/ErlanBelekov/todo-api/internal/reqctx"
)

func TestRequestID_RoundTrip(t *testing.T) {
	ctx := reqctx.WithRequestID(context.Background(), "req-1")
	if got := reqctx.RequestID(ctx); got != "req-1" {
		t.Errorf("RequestID = %q, want req-1", got)
	}
	if got := reqctx.UserID(ctx); got != "" {
		t.Errorf("UserID = %q, want empty", got)
	}
}

func TestUserID_RoundTrip(t *testing.T) {
	ctx := reqctx.WithUserID(context.Background(), "user-1")
	if got := reqctx.UserID(ctx); got != "user-1" {
		t.Errorf("UserID = %q, want user-1", got)
	}
}

func TestNewRequestID_Unique(t *testing.T) {
	if reqctx.NewRequestID() == reqctx.NewRequestID() {
		t.Fatal("request ids must differ")
	}
}
