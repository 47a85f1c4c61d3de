package tuitest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/creack/pty"
)

const (
	defaultWidth   = 80
	defaultHeight  = 40
	defaultTimeout = 5 * time.Second
)

// defaultEnv keeps the calculator on the main screen, where frames are
// separated by clear sequences, and off the log file.
var defaultEnv = []string{
	"TERM=xterm-256color",
	"SCICALC_ALT_SCREEN=false",
	"SCICALC_LOG_FILE=",
}

// Step is one scripted key press. A zero Delay writes Input immediately.
type Step struct {
	Delay time.Duration
	Input []byte
}

// Config configures how the harness spawns and drives the calculator.
type Config struct {
	Command          []string
	Dir              string
	Env              []string
	Width            int
	Height           int
	Steps            []Step
	Timeout          time.Duration
	AllowedExitCodes []int
	AllowInterrupt   bool
}

// Recording contains the raw terminal stream plus parsed frames.
type Recording struct {
	Raw      []byte
	Frames   []Frame
	Duration time.Duration
	// Replies counts the terminal queries the harness answered.
	Replies int
}

// capture drains the PTY into a buffer while answering terminal queries.
// The buffer is read only after done closes.
type capture struct {
	output bytes.Buffer
	reply  *responder
	done   chan struct{}
}

func startCapture(ptmx *os.File) *capture {
	c := &capture{reply: newResponder(ptmx), done: make(chan struct{})}
	go func() {
		defer close(c.done)
		buf := make([]byte, 4096)
		for {
			n, err := ptmx.Read(buf)
			if n > 0 {
				c.reply.Observe(buf[:n])
				_, _ = c.output.Write(buf[:n])
			}
			if err != nil {
				return
			}
		}
	}()
	return c
}

func (c *capture) recording(start time.Time) *Recording {
	<-c.done
	raw := append([]byte(nil), c.output.Bytes()...)
	return &Recording{
		Raw:      raw,
		Frames:   parseFrames(raw),
		Duration: time.Since(start),
		Replies:  c.reply.answered,
	}
}

// Run starts the calculator binary inside a PTY, replays the scripted key
// presses, and captures every byte written to the terminal.
func Run(ctx context.Context, cfg Config) (*Recording, error) {
	if len(cfg.Command) == 0 {
		return nil, errors.New("tuitest: command is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, orDefault(cfg.Timeout, defaultTimeout))
	defer cancel()

	cmd := exec.CommandContext(ctx, cfg.Command[0], cfg.Command[1:]...)
	cmd.Dir = cfg.Dir
	cmd.Env = buildEnv(cfg.Env)

	winsize := &pty.Winsize{
		Rows: uint16(orDefault(cfg.Height, defaultHeight)),
		Cols: uint16(orDefault(cfg.Width, defaultWidth)),
	}
	ptmx, err := pty.StartWithSize(cmd, winsize)
	if err != nil {
		return nil, fmt.Errorf("tuitest: start program: %w", err)
	}
	defer func() { _ = ptmx.Close() }()

	start := time.Now()
	output := startCapture(ptmx)
	if err := replay(ctx, ptmx, cfg.Steps); err != nil {
		return nil, err
	}
	if err := waitExit(ctx, cmd, cfg); err != nil {
		return nil, err
	}

	// Closing the PTY lets the reader goroutine finish draining.
	_ = ptmx.Close()
	return output.recording(start), nil
}

func replay(ctx context.Context, ptmx *os.File, steps []Step) error {
	for _, step := range steps {
		if step.Delay > 0 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("tuitest: context cancelled before script finished: %w", ctx.Err())
			case <-time.After(step.Delay):
			}
		}
		if len(step.Input) == 0 {
			continue
		}
		if _, err := ptmx.Write(step.Input); err != nil {
			return fmt.Errorf("tuitest: write input: %w", err)
		}
	}
	return nil
}

func waitExit(ctx context.Context, cmd *exec.Cmd, cfg Config) error {
	waitErr := make(chan error, 1)
	go func() {
		waitErr <- cmd.Wait()
	}()

	select {
	case err := <-waitErr:
		if err == nil || exitAllowed(err, cfg) {
			return nil
		}
		return fmt.Errorf("tuitest: program exited with error: %w", err)
	case <-ctx.Done():
		return fmt.Errorf("tuitest: timeout waiting for program exit: %w", ctx.Err())
	}
}

func exitAllowed(err error, cfg Config) bool {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		for _, code := range cfg.AllowedExitCodes {
			if exitErr.ExitCode() == code {
				return true
			}
		}
	}
	return cfg.AllowInterrupt && strings.Contains(err.Error(), "signal: interrupt")
}

// buildEnv layers defaultEnv under extra, so a caller's setting of the same
// variable wins.
func buildEnv(extra []string) []string {
	env := os.Environ()
	for _, def := range defaultEnv {
		name := def[:strings.IndexByte(def, '=')+1]
		if !hasVar(env, name) && !hasVar(extra, name) {
			env = append(env, def)
		}
	}
	return append(env, extra...)
}

func hasVar(env []string, prefix string) bool {
	for _, entry := range env {
		if strings.HasPrefix(entry, prefix) {
			return true
		}
	}
	return false
}

func orDefault[T ~int | ~int64](v, def T) T {
	if v <= 0 {
		return def
	}
	return v
}

var (
	// KeyEnter presses the focused keypad button.
	KeyEnter = []byte{'\r'}
	// KeyCtrlC requests the program to terminate.
	KeyCtrlC = []byte{3}
	// KeyEsc clears the expression or cancels function entry.
	KeyEsc = []byte{27}
	// KeyBackspace removes the last character of the expression.
	KeyBackspace = []byte{127}
	// KeyDelete clears the expression.
	KeyDelete = []byte("\x1b[3~")
	// KeyUp, KeyDown, KeyLeft and KeyRight move keypad focus.
	KeyUp    = []byte("\x1b[A")
	KeyDown  = []byte("\x1b[B")
	KeyRight = []byte("\x1b[C")
	KeyLeft  = []byte("\x1b[D")
)

// Type returns one step per rune of text so each key press reaches the
// program as its own message instead of a single pasted chunk.
func Type(text string, delay time.Duration) []Step {
	steps := make([]Step, 0, len(text))
	for _, r := range text {
		steps = append(steps, Step{Delay: delay, Input: []byte(string(r))})
	}
	return steps
}
