package cli

import (
	"io"
	"strings"
	"testing"
)

func TestStdinConfirm(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"  YES  \n", true},
		{"n\n", false},
		{"no\n", false},
		{"\n", false},
		{"maybe\n", false},
	}
	for i, tc := range cases {
		confirm := StdinConfirm(strings.NewReader(tc.input), io.Discard)
		got, err := confirm([]int64{1, 2})
		if err != nil {
			t.Fatalf("case %d: %v", i, err)
		}
		if got != tc.want {
			t.Fatalf("case %d (%q): got %v, want %v", i, tc.input, got, tc.want)
		}
	}
}

func TestStdinConfirmPromptsBatchSize(t *testing.T) {
	var out strings.Builder
	confirm := StdinConfirm(strings.NewReader("n\n"), &out)

	if _, err := confirm([]int64{1, 2, 3}); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if !strings.Contains(out.String(), "3") {
		t.Errorf("prompt should mention the batch size: %q", out.String())
	}
}

func TestStdinConfirmClosedInputDeclines(t *testing.T) {
	confirm := StdinConfirm(strings.NewReader(""), io.Discard)

	approved, err := confirm([]int64{1})
	if approved {
		t.Error("EOF must not approve a commit")
	}
	if err == nil {
		t.Error("expected an error for unreadable input")
	}
}

func TestStdinConfirmYesWithoutNewline(t *testing.T) {
	// A final answer without trailing newline still counts.
	confirm := StdinConfirm(strings.NewReader("y"), io.Discard)

	approved, err := confirm([]int64{1})
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if !approved {
		t.Error("bare trailing \"y\" should approve")
	}
}
