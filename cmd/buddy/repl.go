package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"studybuddy/cmd/buddy/ui"
	"studybuddy/internal/config"
	"studybuddy/internal/dialogue"
	"studybuddy/internal/logging"
	"studybuddy/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// =============================================================================
// CHAT LOOP
// =============================================================================

// runChat wires memory, engine, and styles from the loaded config and runs the
// loop on the command's stdin/stdout until goodbye, EOF, or an interrupt.
func runChat(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mem := store.Open(store.NewFileStore(cfg.Memory.Path),
		store.WithLogger(logging.For(logger, logging.CategoryMemory)))

	// An explicit --theme is remembered; otherwise the remembered one applies.
	if cmd.Flags().Changed("theme") {
		mem.SetPreference("theme", cfg.UI.Theme)
	} else if v, ok := mem.Preference("theme"); ok {
		if name, ok := v.(string); ok && (name == config.ThemeLight || name == config.ThemeDark) {
			cfg.UI.Theme = name
		}
	}

	out := cmd.OutOrStdout()
	engine := dialogue.New(mem,
		dialogue.WithExportPath(cfg.Export.Path),
		dialogue.WithSessionID(sessionID),
		dialogue.WithLogger(logger))
	s := newSession(engine, ui.NewStyles(ui.ThemeFor(cfg.UI.Theme), cfg.UI.Color, out), out,
		logging.For(logger, logging.CategorySession))
	return s.Run(ctx, cmd.InOrStdin())
}

// goodbyeInput is what EOF and interrupts are processed as.
const goodbyeInput = "bye"

type session struct {
	engine *dialogue.Engine
	styles ui.Styles
	out    io.Writer
	logger *zap.Logger
}

func newSession(engine *dialogue.Engine, styles ui.Styles, out io.Writer, logger *zap.Logger) *session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &session{engine: engine, styles: styles, out: out, logger: logger}
}

// Run prints the banner and greeting, then handles one line per turn. Blank
// lines are skipped. EOF and ctx cancellation are handled as the user saying
// goodbye, after which Run returns even if a task swallowed the line.
func (s *session) Run(ctx context.Context, in io.Reader) error {
	fmt.Fprintln(s.out, s.styles.Banner())
	s.say(s.engine.Greet())

	lines := make(chan string)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	go readLines(in, lines, readErr, done)

	turns := 0
	for {
		fmt.Fprint(s.out, s.styles.Prompt.Render("You:")+" ")

		var line string
		select {
		case <-ctx.Done():
			s.logger.Info("interrupted", zap.Int("turns", turns))
			fmt.Fprintln(s.out)
			s.say(s.engine.Handle(goodbyeInput))
			return nil
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintln(s.out)
				s.say(s.engine.Handle(goodbyeInput))
				return s.inputErr(readErr, turns)
			}
			line = l
		}

		if strings.TrimSpace(line) == "" {
			continue
		}
		turns++
		r := s.engine.Handle(line)
		s.say(r)
		if r.End {
			s.logger.Info("session ended", zap.Int("turns", turns))
			return nil
		}
	}
}

// readLines forwards lines from in until EOF or done is closed. Lines of any
// length are accepted and a trailing "\r" is dropped. A read error other than
// EOF is sent on errc before lines is closed.
func readLines(in io.Reader, lines chan<- string, errc chan<- error, done <-chan struct{}) {
	defer close(lines)
	r := bufio.NewReader(in)
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
			select {
			case lines <- line:
			case <-done:
				return
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				errc <- err
			}
			return
		}
	}
}

func (s *session) inputErr(readErr <-chan error, turns int) error {
	var err error
	select {
	case err = <-readErr:
	default:
	}
	if err != nil {
		s.logger.Error("input failed", zap.Error(err))
		return fmt.Errorf("failed to read input: %w", err)
	}
	s.logger.Info("input closed", zap.Int("turns", turns))
	return nil
}

// say renders each line separately so multi-line replies are not padded to a block.
// Failed replies use the error style.
func (s *session) say(r dialogue.Reply) {
	style := s.styles.Reply
	if r.Failed {
		style = s.styles.Error
	}
	for _, line := range strings.Split(r.Text, "\n") {
		fmt.Fprintln(s.out, style.Render(line))
	}
}
