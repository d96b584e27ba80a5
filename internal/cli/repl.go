package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sz10101/vym"
	"github.com/sz10101/vym/internal/presentation/tui"
	"github.com/sz10101/vym/pkg/script"
	"mvdan.cc/sh/v3/interp"
)

const replPrompt = "vym> "

const replHelp = `Commands:
  :help            list script operations
  :engine lua|sh   switch the statement language
  :maps            list open maps
  :quit            leave
`

// RunREPL reads one statement per line and runs it against s until in is
// exhausted, ":quit" is entered or ctx ends.
func RunREPL(ctx context.Context, s *vym.Session, engine string, in io.Reader, out, errOut io.Writer) error {
	if engine == "" {
		engine = vym.EngineShell
	}
	engine, err := parseEngine(engine)
	if err != nil {
		return err
	}
	render := tui.NewRenderer()
	scanner := bufio.NewScanner(in)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(out, replPrompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line, err := sanitizeStatement(scanner.Text())
		if err != nil {
			fmt.Fprintln(errOut, err)
			continue
		}
		line = strings.TrimSpace(line)

		switch {
		case line == "":
			continue
		case line == ":quit" || line == ":q" || line == "exit":
			return nil
		case line == ":help":
			fmt.Fprint(out, replHelp)
			text, err := render(script.Reference())
			if err != nil {
				return err
			}
			fmt.Fprint(out, text)
			continue
		case line == ":maps":
			printMaps(out, s)
			continue
		case strings.HasPrefix(line, ":engine"):
			next, err := parseEngine(strings.TrimSpace(strings.TrimPrefix(line, ":engine")))
			if err != nil {
				fmt.Fprintln(errOut, err)
				continue
			}
			engine = next
			printSystemMessage(out, "engine is %s", engine)
			continue
		case strings.HasPrefix(line, ":"):
			fmt.Fprintf(errOut, "unknown command %s, try :help\n", line)
			continue
		}

		if err := runStatement(ctx, s, engine, line, out, errOut); err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			reportStatementError(errOut, err)
		}
	}
}

func runStatement(ctx context.Context, s *vym.Session, engine, line string, out, errOut io.Writer) error {
	if engine == vym.EngineLua {
		return s.RunLua(ctx, "repl", line, out)
	}
	return s.RunShell(ctx, "repl", line, strings.NewReader(""), out, errOut)
}

// reportStatementError prints err unless the shell already reported it and
// only a status remains.
func reportStatementError(w io.Writer, err error) {
	var status interp.ExitStatus
	if errors.As(err, &status) {
		return
	}
	fmt.Fprintln(w, err)
}

func parseEngine(name string) (string, error) {
	switch strings.ToLower(name) {
	case "lua":
		return vym.EngineLua, nil
	case "sh", "shell":
		return vym.EngineShell, nil
	default:
		return "", fmt.Errorf("unknown engine %q", name)
	}
}

func printMaps(w io.Writer, s *vym.Session) {
	current := s.Host().Current()
	for i, m := range s.Host().Models() {
		mark := " "
		if current != nil && m == current {
			mark = "*"
		}
		name := m.FileName()
		if name == "" {
			name = "(unsaved)"
		}
		fmt.Fprintf(w, "%s %d %s %s\n", mark, i, name, m.Title())
	}
}
