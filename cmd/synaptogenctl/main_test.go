package main

import (
	"context"
	"strings"
	"testing"
)

func TestRunRejectsMissingCommand(t *testing.T) {
	err := run(context.Background(), nil)
	if err == nil || !strings.Contains(err.Error(), "missing command") {
		t.Fatalf("got %v, want missing-command usage error", err)
	}
}

func TestRunRejectsUnknownCommand(t *testing.T) {
	err := run(context.Background(), []string{"bogus"})
	if err == nil || !strings.Contains(err.Error(), "unknown command: bogus") {
		t.Fatalf("got %v, want unknown-command usage error", err)
	}
}

func TestConnectivityRequiresRunID(t *testing.T) {
	err := run(context.Background(), []string{"connectivity", "--store", "memory"})
	if err == nil || !strings.Contains(err.Error(), "--run-id") {
		t.Fatalf("got %v, want run-id usage error", err)
	}
}

func TestExportRequiresRunID(t *testing.T) {
	err := run(context.Background(), []string{"export", "--store", "memory"})
	if err == nil || !strings.Contains(err.Error(), "--run-id") {
		t.Fatalf("got %v, want run-id usage error", err)
	}
}

func TestInitMemoryStore(t *testing.T) {
	if err := run(context.Background(), []string{"init", "--store", "memory"}); err != nil {
		t.Fatalf("init: %v", err)
	}
}
