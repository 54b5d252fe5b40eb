package engine_test

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zolinthecow/doctests/internal/config"
	"github.com/zolinthecow/doctests/internal/engine"
	"github.com/zolinthecow/doctests/internal/extractor"
	"github.com/zolinthecow/doctests/internal/model"
)

// TestDocumentEndToEnd drives the real pipeline: raw document text through the
// extractor, blocks through the engine.
func TestDocumentEndToEnd(t *testing.T) {
	doc := strings.Join([]string{
		"# Usage",
		"",
		"```sh",
		"echo first",
		"```",
		"",
		"```sh no-doctest",
		"rm -rf /never/run/me",
		"```",
		"",
		"```",
		"no language here",
		"```",
		"",
		"```sh env=WHO=doc",
		`echo "hello $WHO"`,
		"```",
		"",
		"```sh",
		"exit 4",
		"```",
	}, "\n")

	blocks := extractor.Extract("usage.md", doc)
	require.Len(t, blocks, 5)

	cfg := config.Default()
	cfg.Root = t.TempDir()
	cfg.TempRoot = t.TempDir()
	cfg.Timeout = 5 * time.Second

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	results := engine.New(cfg, logger).Run(blocks)
	require.Len(t, results, 5)

	assert.Equal(t, model.StatusPassed, results[0].Status)
	assert.Equal(t, "first\n", results[0].Stdout)

	assert.Equal(t, model.StatusSkipped, results[1].Status)
	assert.Equal(t, model.ReasonNoDoctest, results[1].Reason)

	assert.Equal(t, model.StatusSkipped, results[2].Status)
	assert.Equal(t, model.ReasonMissingLanguage, results[2].Reason)

	assert.Equal(t, model.StatusPassed, results[3].Status)
	assert.Equal(t, "hello doc\n", results[3].Stdout)

	assert.Equal(t, model.StatusFailed, results[4].Status)
	require.NotNil(t, results[4].ExitCode)
	assert.Equal(t, 4, *results[4].ExitCode)

	assert.False(t, model.Success(results))
}
