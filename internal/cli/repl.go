package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/aretw0/pips/internal/compiler"
	"github.com/aretw0/pips/internal/presentation/tui"
	"github.com/aretw0/pips/pkg/dist"
	"github.com/aretw0/pips/pkg/domain"
	"github.com/aretw0/pips/pkg/session"
)

// REPL is the interactive expression shell. Definitions and history are
// persisted through the session manager between runs.
type REPL struct {
	manager   *session.Manager
	parser    *compiler.Parser
	sessionID string
	source    dist.Source
	logger    *slog.Logger

	in  io.Reader
	out io.Writer
}

// REPLOption configures the REPL.
type REPLOption func(*REPL)

// WithIO overrides the input and output streams, mainly for tests.
func WithIO(in io.Reader, out io.Writer) REPLOption {
	return func(r *REPL) {
		r.in = in
		r.out = out
	}
}

// WithSource injects the randomness source used by the roll command.
func WithSource(source dist.Source) REPLOption {
	return func(r *REPL) {
		r.source = source
	}
}

// WithREPLLogger sets the structured logger.
func WithREPLLogger(logger *slog.Logger) REPLOption {
	return func(r *REPL) {
		r.logger = logger
	}
}

// NewREPL creates the shell bound to a session.
func NewREPL(manager *session.Manager, sessionID string, opts ...REPLOption) *REPL {
	r := &REPL{
		manager:   manager,
		parser:    compiler.NewParser(),
		sessionID: sessionID,
		source:    dist.NewRandomSource(),
		logger:    createLogger(false),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run reads commands until EOF, "quit", or context cancellation.
func (r *REPL) Run(ctx context.Context) error {
	state, err := r.manager.LoadOrStart(ctx, r.sessionID)
	if err != nil {
		return fmt.Errorf("failed to open session: %w", err)
	}
	if len(state.History) > 0 {
		fmt.Fprintf(r.out, ">>> Session %q resumed (%d lines of history).\n", r.sessionID, len(state.History))
	} else {
		fmt.Fprintf(r.out, ">>> Session %q active.\n", r.sessionID)
	}

	scanner := bufio.NewScanner(r.in)
	for {
		fmt.Fprint(r.out, "pips> ")
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		done, err := r.dispatch(ctx, state, line)
		if err != nil {
			fmt.Fprintf(r.out, "error: %v\n", err)
			continue
		}
		if done {
			return nil
		}
	}
}

func (r *REPL) dispatch(ctx context.Context, state *domain.State, line string) (bool, error) {
	switch {
	case line == "quit" || line == "exit":
		return true, nil

	case line == "help":
		r.printHelp()
		return false, nil

	case line == "list":
		r.printDefs(state)
		return false, nil

	case line == "history":
		for _, entry := range state.History {
			fmt.Fprintln(r.out, entry)
		}
		return false, nil

	case strings.HasPrefix(line, "let "):
		return false, r.handleDefine(ctx, state, line)

	case strings.HasPrefix(line, "roll "):
		return false, r.handleRoll(ctx, state, strings.TrimSpace(strings.TrimPrefix(line, "roll ")))

	case strings.HasPrefix(line, "chart "):
		return false, r.handleChart(ctx, state, strings.TrimSpace(strings.TrimPrefix(line, "chart ")))

	default:
		return false, r.handleEval(ctx, state, line)
	}
}

func (r *REPL) handleDefine(ctx context.Context, state *domain.State, line string) error {
	rest := strings.TrimPrefix(line, "let ")
	name, expression, found := strings.Cut(rest, "=")
	if !found {
		return fmt.Errorf("expected: let <name> = <expression>")
	}
	name = strings.TrimSpace(name)
	expression = strings.TrimSpace(expression)

	if !namePattern.MatchString(name) || literalTerm.MatchString(name) {
		return fmt.Errorf("invalid definition name %q", name)
	}

	// Validate before persisting, with the new binding visible so
	// self-references fail on the cycle check rather than silently.
	probe := cloneDefs(state.Defs)
	probe[name] = expression
	resolved, err := ResolveExpression(probe, expression)
	if err != nil {
		return err
	}
	if _, err := r.parser.Parse(resolved); err != nil {
		return err
	}

	if err := r.manager.Define(ctx, r.sessionID, name, expression); err != nil {
		return err
	}
	state.Defs[name] = expression
	state.History = append(state.History, fmt.Sprintf("let %s = %s", name, expression))
	fmt.Fprintf(r.out, "defined %s = %s\n", name, expression)
	return nil
}

func (r *REPL) handleEval(ctx context.Context, state *domain.State, expression string) error {
	d, err := r.eval(state, expression)
	if err != nil {
		return err
	}

	table, err := tui.RenderTable(d, expression)
	if err != nil {
		return err
	}
	fmt.Fprint(r.out, table)

	return r.record(ctx, state, expression)
}

func (r *REPL) handleRoll(ctx context.Context, state *domain.State, expression string) error {
	d, err := r.eval(state, expression)
	if err != nil {
		return err
	}

	result, err := d.Roll(r.source)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "%g\n", result)

	return r.record(ctx, state, fmt.Sprintf("roll %s", expression))
}

func (r *REPL) handleChart(ctx context.Context, state *domain.State, expression string) error {
	d, err := r.eval(state, expression)
	if err != nil {
		return err
	}

	chart, err := tui.NewHistogram().RenderChart(d, expression)
	if err != nil {
		return err
	}
	fmt.Fprint(r.out, chart)

	return r.record(ctx, state, fmt.Sprintf("chart %s", expression))
}

func (r *REPL) eval(state *domain.State, expression string) (*dist.Distribution, error) {
	resolved, err := ResolveExpression(state.Defs, expression)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("expression resolved", "input", expression, "resolved", resolved)
	return r.parser.Parse(resolved)
}

func (r *REPL) record(ctx context.Context, state *domain.State, line string) error {
	if err := r.manager.Record(ctx, r.sessionID, line); err != nil {
		return err
	}
	state.History = append(state.History, line)
	return nil
}

func (r *REPL) printDefs(state *domain.State) {
	if len(state.Defs) == 0 {
		fmt.Fprintln(r.out, "no definitions")
		return
	}
	names := make([]string, 0, len(state.Defs))
	for name := range state.Defs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(r.out, "%s = %s\n", name, state.Defs[name])
	}
}

func (r *REPL) printHelp() {
	fmt.Fprintln(r.out, `Commands:
  <expression>          evaluate an expression (e.g. 2D6+1)
  let <name> = <expr>   define a named expression
  roll <expr>           sample one outcome
  chart <expr>          draw a terminal histogram
  list                  show definitions
  history               show session history
  quit                  leave the shell`)
}

func cloneDefs(defs map[string]string) map[string]string {
	out := make(map[string]string, len(defs))
	for k, v := range defs {
		out[k] = v
	}
	return out
}
