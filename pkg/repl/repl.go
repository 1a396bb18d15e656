// Package repl implements the line-oriented shell: it prints a prompt, reads
// one line, runs it as a meta-command or a statement, and prints the outcome.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"fensql/pkg/database"
	"fensql/pkg/dberror"
	"fensql/pkg/logging"
)

// DefaultPrompt is printed before every line is read.
const DefaultPrompt = "fensql> "

// Config controls the shell's presentation.
type Config struct {
	Prompt string

	// Styled enables terminal colors on the output writer.
	Styled bool
}

// REPL reads statements from in and writes results to out.
type REPL struct {
	db     *database.Database
	in     *bufio.Reader
	out    io.Writer
	prompt string
	styles styles
}

// New creates a shell over db. The shell takes ownership of db and closes it
// when the session ends.
func New(db *database.Database, in io.Reader, out io.Writer, cfg Config) *REPL {
	prompt := cfg.Prompt
	if prompt == "" {
		prompt = DefaultPrompt
	}
	return &REPL{
		db:     db,
		in:     bufio.NewReader(in),
		out:    out,
		prompt: prompt,
		styles: newStyles(out, cfg.Styled),
	}
}

// Run loops until .exit, end of input or ctx is done. End of input is a
// normal exit; only a failing reader makes Run return an error. Cancelling
// ctx ends the session even while the shell waits for a line.
func (r *REPL) Run(ctx context.Context) error {
	defer r.db.Close()

	log := logging.WithSession(r.db.SessionID())
	log.Debugw("repl started")

	done := make(chan struct{})
	defer close(done)
	lines := r.readLines(done)

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		r.printf("%s", r.styles.prompt(r.prompt))

		var in input
		select {
		case <-ctx.Done():
			r.println("")
			log.Debugw("repl finished", "reason", "interrupted")
			return nil
		case in = <-lines:
		}

		if in.err != nil && !errors.Is(in.err, io.EOF) {
			r.println("Error reading input.")
			return errors.Wrap(in.err, "read input")
		}
		if in.err != nil && in.line == "" {
			log.Debugw("repl finished", "reason", "eof")
			return nil
		}

		line := strings.TrimRight(in.line, "\r\n")
		if strings.HasPrefix(line, ".") {
			if r.runMeta(line) == metaExit {
				log.Debugw("repl finished", "reason", "exit")
				return nil
			}
		} else {
			r.runStatement(ctx, line)
		}

		if in.err != nil {
			// last line had no trailing newline
			return nil
		}
	}
}

type input struct {
	line string
	err  error
}

// readLines reads from the input on its own goroutine so Run can stop
// waiting when ctx is cancelled. The goroutine ends after the first read
// error or once done is closed; a read blocked on a terminal outlives the
// session until the process exits.
func (r *REPL) readLines(done <-chan struct{}) <-chan input {
	lines := make(chan input)
	go func() {
		for {
			line, err := r.in.ReadString('\n')
			select {
			case lines <- input{line: line, err: err}:
			case <-done:
				return
			}
			if err != nil {
				return
			}
		}
	}()
	return lines
}

func (r *REPL) runStatement(ctx context.Context, line string) {
	res, err := r.db.ExecuteQuery(ctx, line)
	if err != nil {
		r.println(r.styles.err(describeError(line, err)))
		return
	}

	for _, rec := range res.Records {
		r.println(rec.String())
	}
	r.println(r.styles.ok(res.Message))
}

// describeError renders a failed statement the way the shell reports it.
func describeError(line string, err error) string {
	switch dberror.CodeOf(err) {
	case dberror.CodeSyntaxError:
		return fmt.Sprintf("Syntax error detected for '%s'.", line)
	case dberror.CodeUnrecognizedStatement:
		return fmt.Sprintf("Unrecognized keyword at the start of '%s'.", line)
	case dberror.CodeFieldTooLong:
		return "String is too long."
	case dberror.CodeNegativeID:
		return "ID must be positive."
	case dberror.CodeTableFull:
		return "Error: Table full."
	default:
		return fmt.Sprintf("Error: %v", errors.Cause(err))
	}
}

func (r *REPL) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

func (r *REPL) println(s string) {
	fmt.Fprintln(r.out, s)
}
