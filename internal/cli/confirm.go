package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ConfirmFunc decides whether a proposed commit batch may be persisted.
// Modeling the gate as a function keeps the commit trigger independent of
// any particular input mechanism.
type ConfirmFunc func(toBill []int64) (bool, error)

// StdinConfirm returns a gate that prompts on out and reads a yes/no
// answer from in. Anything but an explicit "y"/"yes" declines; a declined
// or unreadable answer performs zero writes.
func StdinConfirm(in io.Reader, out io.Writer) ConfirmFunc {
	reader := bufio.NewReader(in)
	return func(toBill []int64) (bool, error) {
		if _, err := fmt.Fprintf(out, "Mark %d entries as billed? [y/N] ", len(toBill)); err != nil {
			return false, err
		}
		answer, err := reader.ReadString('\n')
		if err != nil && answer == "" {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true, nil
		default:
			return false, nil
		}
	}
}
