package ctxutil

import (
	"context"
	"testing"
)

func TestNewRequestContext(t *testing.T) {
	ctx := NewRequestContext(context.Background(), "", "10.0.0.1", "curl")

	if GetRequestID(ctx) == "" {
		t.Fatal("request id should be generated when absent")
	}
	if got := GetClientIP(ctx); got != "10.0.0.1" {
		t.Errorf("client ip = %q", got)
	}
	if got := GetUserAgent(ctx); got != "curl" {
		t.Errorf("user agent = %q", got)
	}
	if GetStartTime(ctx).IsZero() {
		t.Error("start time should be set")
	}

	ctx = NewRequestContext(context.Background(), "fixed", "", "")
	if got := GetRequestID(ctx); got != "fixed" {
		t.Errorf("request id = %q, want fixed", got)
	}
}

func TestGettersOnEmptyContext(t *testing.T) {
	ctx := context.Background()
	if GetUserKey(ctx) != "" || GetLocale(ctx) != "" || GetModule(ctx) != "" || GetFunction(ctx) != "" {
		t.Error("empty context should yield empty values")
	}
	if GetDuration(ctx) != 0 {
		t.Error("duration without start time should be zero")
	}
}

func TestWithOperation(t *testing.T) {
	ctx := WithOperation(WithUserKey(context.Background(), "u1"), "events", "Create")
	if GetModule(ctx) != "events" || GetFunction(ctx) != "Create" || GetUserKey(ctx) != "u1" {
		t.Error("operation values not stored")
	}
}
