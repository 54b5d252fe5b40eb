package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/zolinthecow/doctests/internal/model"
)

func intPtr(v int) *int { return &v }

func TestPrintSummaryCounts(t *testing.T) {
	blk := &model.CodeBlock{Doc: "README.md", StartLine: 3, Lang: "python"}
	results := []model.ExecutionResult{
		{Block: blk, Status: model.StatusPassed, ExitCode: intPtr(0), Duration: 12 * time.Millisecond},
		{Block: blk, Status: model.StatusFailed, ExitCode: intPtr(1), Stderr: "boom\n"},
		{Block: blk, Status: model.StatusSkipped, Reason: model.ReasonMissingLanguage},
		{Block: blk, Status: model.StatusTimedOut, Reason: model.ReasonTimeout},
	}

	var buf bytes.Buffer
	ok := New(&buf).Print(results)

	assert.False(t, ok)
	out := buf.String()
	assert.Contains(t, out, "PASS README.md:3 [python]")
	assert.Contains(t, out, "FAIL README.md:3 [python]")
	assert.Contains(t, out, "SKIP README.md:3 [python]")
	assert.Contains(t, out, "TIME README.md:3 [python]")
	assert.Contains(t, out, "boom")
	assert.Contains(t, out, "1 passed, 1 failed, 1 skipped, 1 timed out")
}

func TestPrintHookResult(t *testing.T) {
	results := []model.ExecutionResult{
		{Hook: model.HookSetup, Status: model.StatusFailed, Stderr: "nope\n", ExitCode: intPtr(2)},
	}

	var buf bytes.Buffer
	ok := New(&buf).Print(results)

	assert.False(t, ok)
	assert.Contains(t, buf.String(), "FAIL setup hook")
	assert.Contains(t, buf.String(), "nope")
}

func TestPrintAllPassing(t *testing.T) {
	blk := &model.CodeBlock{Doc: "d.md", StartLine: 1, Lang: "sh"}
	results := []model.ExecutionResult{
		{Block: blk, Status: model.StatusPassed, ExitCode: intPtr(0)},
		{Block: blk, Status: model.StatusSkipped, Reason: model.ReasonNoDoctest},
	}

	var buf bytes.Buffer
	assert.True(t, New(&buf).Print(results))
}
