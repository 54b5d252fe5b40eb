// Package report prints a human-readable summary of a result sequence. It
// consumes the engine's output; it never influences execution.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/zolinthecow/doctests/internal/model"
)

// Writer prints results as they come plus a final summary line.
type Writer struct {
	out io.Writer
}

// New creates a report writer targeting out.
func New(out io.Writer) *Writer {
	return &Writer{out: out}
}

// Print writes one line per result followed by a summary. It returns the
// overall verdict so callers can pick an exit code without recomputing it.
func (w *Writer) Print(results []model.ExecutionResult) bool {
	counts := map[model.Status]int{}

	for _, res := range results {
		counts[res.Status]++
		fmt.Fprintln(w.out, line(res))
		if res.Status == model.StatusFailed || res.Status == model.StatusTimedOut {
			w.printOutput(res)
		}
	}

	fmt.Fprintf(w.out, "\n%d passed, %d failed, %d skipped, %d timed out\n",
		counts[model.StatusPassed],
		counts[model.StatusFailed],
		counts[model.StatusSkipped],
		counts[model.StatusTimedOut],
	)

	return model.Success(results)
}

// line formats the one-line verdict for a result.
func line(res model.ExecutionResult) string {
	mark := map[model.Status]string{
		model.StatusPassed:   "PASS",
		model.StatusFailed:   "FAIL",
		model.StatusSkipped:  "SKIP",
		model.StatusTimedOut: "TIME",
	}[res.Status]

	where := fmt.Sprintf("%s hook", res.Hook)
	if res.Block != nil {
		lang := res.Block.Lang
		if lang == "" {
			lang = "(none)"
		}
		where = fmt.Sprintf("%s:%d [%s]", res.Block.Doc, res.Block.StartLine, lang)
	}

	s := fmt.Sprintf("%s %s (%s)", mark, where, res.Duration.Round(time.Millisecond))
	if res.Reason != "" {
		s += ": " + res.Reason
	}
	return s
}

// printOutput dumps captured output for failing results, indented so it reads
// as part of the entry above it.
func (w *Writer) printOutput(res model.ExecutionResult) {
	if res.Stdout != "" {
		fmt.Fprintf(w.out, "  stdout:\n%s", indent(res.Stdout))
	}
	if res.Stderr != "" {
		fmt.Fprintf(w.out, "  stderr:\n%s", indent(res.Stderr))
	}
}

func indent(s string) string {
	var b strings.Builder
	for _, ln := range strings.Split(strings.TrimRight(s, "\n"), "\n") {
		b.WriteString("    ")
		b.WriteString(ln)
		b.WriteString("\n")
	}
	return b.String()
}
