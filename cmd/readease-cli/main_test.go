package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"readease/internal/service/llm"
	"readease/internal/service/llm/llmtest"
	"readease/internal/utils"
)

func newTestCLI(stub *llmtest.StubCompleter) (*CLI, *bytes.Buffer) {
	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &CLI{
		ctx:       context.Background(),
		assistant: llm.NewGateway(stub, nil, llm.GatewayConfig{}, logger),
		stripper:  utils.DefaultTraceStripper(),
		out:       &out,
	}, &out
}

func TestRunOnce(t *testing.T) {
	tests := []struct {
		op   string
		want string
	}{
		{"summarize", "<think>x</think>\n\nDone"},
		{"simplify", "Done"},
		{"grammar", "Done"},
		{"chat", "Done"},
		{"translate", "Done"},
		{"ping", "Done"},
	}
	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			cli, out := newTestCLI(llmtest.NewStub(tt.want))
			if err := cli.runOnce(tt.op, "input", "auto", "fr"); err != nil {
				t.Fatalf("runOnce: %v", err)
			}
			if got := strings.TrimSpace(out.String()); got != "Done" {
				t.Errorf("output = %q, want Done", got)
			}
		})
	}
}

func TestRunOnce_SuggestPrintsLines(t *testing.T) {
	cli, out := newTestCLI(llmtest.NewStub(`["Yes","No"]`))
	if err := cli.runOnce("suggest", "Are you coming?", "", ""); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "Yes\nNo\n" {
		t.Errorf("output = %q", got)
	}
}

func TestRunOnce_Errors(t *testing.T) {
	cli, _ := newTestCLI(llmtest.NewFailingStub(errors.New("offline")))
	if err := cli.runOnce("summarize", "x", "", ""); err == nil || !strings.Contains(err.Error(), "offline") {
		t.Errorf("err = %v", err)
	}
	if err := cli.runOnce("bogus", "x", "", ""); err == nil {
		t.Error("expected unknown operation error")
	}
}
