package adapters

import (
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"

	"sourcemod-installer/internal/ports"
)

// PagerAdapter shows long text through the operator's pager when
// stdout is an interactive terminal, and writes it straight through
// otherwise. A pager that fails to start degrades to plain output
// rather than blocking the install.
type PagerAdapter struct {
	Out io.Writer
}

func NewPagerAdapter() PagerAdapter {
	return PagerAdapter{Out: os.Stdout}
}

func (a PagerAdapter) Page(text string) error {
	out := a.Out
	if out == nil {
		out = os.Stdout
	}
	if file, ok := out.(*os.File); ok && isTerminalFile(file) {
		for _, command := range pagerCommands() {
			err := runPager(command, text, file)
			if err == nil {
				return nil
			}
			log.Debug().Err(err).Str("pager", command[0]).Msg("pager unavailable")
		}
	}
	if _, err := io.WriteString(out, text); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write license text").
			WithCause(err)
	}
	if !strings.HasSuffix(text, "\n") {
		_, _ = io.WriteString(out, "\n")
	}
	return nil
}

// pagerCommands honors PAGER, including arguments such as "less -R",
// before the usual suspects.
func pagerCommands() [][]string {
	var commands [][]string
	if pager := strings.TrimSpace(os.Getenv("PAGER")); pager != "" {
		commands = append(commands, strings.Fields(pager))
	}
	return append(commands, []string{"less"}, []string{"more"})
}

func runPager(command []string, text string, out *os.File) error {
	cmd := exec.Command(command[0], command[1:]...)
	cmd.Stdin = strings.NewReader(text)
	cmd.Stdout = out
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func isTerminalFile(file *os.File) bool {
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

var _ ports.PagerPort = PagerAdapter{}
