package adapters

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"sourcemod-installer/internal/ports"
	"sourcemod-installer/internal/shared"
	"sourcemod-installer/internal/types"
)

// ConfirmAdapter asks a yes/no question on the terminal. Outside an
// interactive session the answer is indeterminate, never an implicit
// yes. Default, when set, is assumed on an empty line and shapes the
// prompt hint.
type ConfirmAdapter struct {
	In      io.Reader
	Out     io.Writer
	Default *bool
	// AssumeInteractive skips the terminal check, for callers that
	// already know the session is interactive and for tests.
	AssumeInteractive bool
}

func NewConfirmAdapter() ConfirmAdapter {
	return ConfirmAdapter{In: os.Stdin, Out: os.Stdout}
}

func (a ConfirmAdapter) Confirm(prompt string) types.Consent {
	in := a.In
	if in == nil {
		in = os.Stdin
	}
	out := a.Out
	if out == nil {
		out = os.Stdout
	}
	if !a.interactive(in, out) {
		return types.ConsentIndeterminate
	}

	hint := "[y/N]"
	if a.Default != nil && *a.Default {
		hint = "[Y/n]"
	}
	fmt.Fprintf(out, "%s %s ", prompt, hint)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return types.ConsentIndeterminate
	}
	answer := strings.TrimSpace(line)
	if answer == "" && a.Default != nil {
		if *a.Default {
			return types.ConsentGranted
		}
		return types.ConsentDeclined
	}
	value, ok := shared.ParseBool(answer)
	if !ok {
		return types.ConsentIndeterminate
	}
	if value {
		return types.ConsentGranted
	}
	return types.ConsentDeclined
}

func (a ConfirmAdapter) interactive(in io.Reader, out io.Writer) bool {
	if a.AssumeInteractive {
		return true
	}
	fin, ok := in.(*os.File)
	if !ok {
		return false
	}
	fout, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isTerminalFile(fin) && isTerminalFile(fout)
}

var _ ports.ConfirmPort = ConfirmAdapter{}
