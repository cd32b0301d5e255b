package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/desertthunder/cioprune/internal/shared"
	th "github.com/desertthunder/cioprune/internal/testing"
)

func TestNewRunner_Defaults(t *testing.T) {
	runner := NewRunner(RunnerOpts{})

	if runner.config == nil {
		t.Error("config is nil, want defaults")
	}
	if runner.logger == nil {
		t.Error("logger is nil, want default logger")
	}
	if runner.output == nil {
		t.Error("output is nil, want stdout")
	}
	if runner.input == nil {
		t.Error("input is nil, want stdin")
	}
	if runner.engine == nil {
		t.Error("engine is nil")
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name    string
		literal string
		input   string
		want    bool
	}{
		{name: "exact yes", literal: "yes", input: "yes\n", want: true},
		{name: "uppercase yes accepted", literal: "yes", input: "YES\n", want: true},
		{name: "surrounding whitespace trimmed", literal: "yes", input: "  yes  \n", want: true},
		{name: "no declines", literal: "yes", input: "no\n", want: false},
		{name: "empty line declines", literal: "yes", input: "\n", want: false},
		{name: "closed stdin declines", literal: "yes", input: "", want: false},
		{name: "exact DELETE", literal: "DELETE", input: "DELETE\n", want: true},
		{name: "lowercase delete rejected", literal: "DELETE", input: "delete\n", want: false},
		{name: "yes is not DELETE", literal: "DELETE", input: "yes\n", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			runner := NewRunner(RunnerOpts{
				Output: &out,
				Input:  strings.NewReader(tt.input),
			})

			if got := runner.confirm("Proceed? ", tt.literal); got != tt.want {
				t.Errorf("confirm(%q) with input %q = %v, want %v", tt.literal, tt.input, got, tt.want)
			}
			if !strings.Contains(out.String(), "Proceed?") {
				t.Errorf("prompt not written, output = %q", out.String())
			}
		})
	}
}

func TestWritePlain(t *testing.T) {
	var out bytes.Buffer
	runner := NewRunner(RunnerOpts{Output: &out})

	if err := runner.writePlain("deleted %d of %d\n", 3, 10); err != nil {
		t.Fatalf("writePlain() error = %v", err)
	}
	if out.String() != "deleted 3 of 10\n" {
		t.Errorf("output = %q", out.String())
	}
}

func TestWritePlain_WriterFailure(t *testing.T) {
	runner := NewRunner(RunnerOpts{Output: &th.FWriter{}})

	if err := runner.writePlain("anything"); err == nil {
		t.Error("writePlain() error = nil, want write failure")
	}
}

func TestEnsureDeleter_InjectedDeleterWins(t *testing.T) {
	deleter := &th.MockDeleter{}
	runner := NewRunner(RunnerOpts{Deleter: deleter})

	// No credentials in the environment; an injected deleter must short-circuit.
	t.Setenv(shared.EnvSiteID, "")
	t.Setenv(shared.EnvAPIKey, "")

	if err := runner.ensureDeleter("us"); err != nil {
		t.Fatalf("ensureDeleter() error = %v", err)
	}
	if runner.deleter != deleter {
		t.Error("injected deleter was replaced")
	}
}

func TestEnsureDeleter_MissingCredentials(t *testing.T) {
	runner := NewRunner(RunnerOpts{})

	t.Setenv(shared.EnvSiteID, "")
	t.Setenv(shared.EnvAPIKey, "")

	if err := runner.ensureDeleter("us"); err == nil {
		t.Error("ensureDeleter() error = nil, want missing credentials")
	}
}

func TestEnsureDeleter_BuildsClient(t *testing.T) {
	runner := NewRunner(RunnerOpts{})

	t.Setenv(shared.EnvSiteID, "site-123")
	t.Setenv(shared.EnvAPIKey, "key-456")

	if err := runner.ensureDeleter("eu"); err != nil {
		t.Fatalf("ensureDeleter() error = %v", err)
	}
	if runner.deleter == nil {
		t.Error("deleter is nil after ensureDeleter")
	}
}
