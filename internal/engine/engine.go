// Package engine executes extracted code blocks through language-specific
// runners and produces one terminal result per block.
//
// The engine is deliberately sequential at the block level: blocks run one
// after another, in document-scan order. Within one block's execution the
// stdout drain, the stderr drain, and the exit wait run concurrently and race
// the global timeout timer. Every per-block failure is isolated — nothing a
// block does can abort the rest of the run or the teardown hook.
package engine

import (
	"log/slog"

	"github.com/zolinthecow/doctests/internal/config"
	"github.com/zolinthecow/doctests/internal/model"
)

// Engine runs blocks against a resolved configuration. It holds no mutable
// state between runs.
type Engine struct {
	cfg    config.Config
	logger *slog.Logger
}

// New creates an Engine. The config must already be fully resolved: Root and
// TempRoot set, runner table merged.
func New(cfg config.Config, logger *slog.Logger) *Engine {
	return &Engine{
		cfg:    cfg,
		logger: logger,
	}
}

// Run executes every block in order and returns the result sequence: hook
// failures first (setup before teardown), then one result per block in scan
// order. The engine never stops early — a failing setup hook, block, or
// teardown hook does not prevent anything that follows it.
//
// There is no cooperative cancellation; the only thing that interrupts a
// spawned process is the timeout timer.
func (e *Engine) Run(blocks []model.CodeBlock) []model.ExecutionResult {
	var hookFailures []model.ExecutionResult

	if e.cfg.Setup != "" {
		res := e.runHook(model.HookSetup, e.cfg.Setup)
		if res.Status == model.StatusFailed {
			hookFailures = append(hookFailures, res)
		}
	}

	results := make([]model.ExecutionResult, 0, len(blocks))
	for i := range blocks {
		res := e.runBlock(&blocks[i])
		e.logger.Info("block finished",
			slog.String("doc", blocks[i].Doc),
			slog.Int("line", blocks[i].StartLine),
			slog.String("lang", blocks[i].Lang),
			slog.String("status", string(res.Status)),
			slog.Duration("duration", res.Duration),
		)
		results = append(results, res)
	}

	// Teardown always runs, even if setup failed or every block did.
	if e.cfg.Teardown != "" {
		res := e.runHook(model.HookTeardown, e.cfg.Teardown)
		if res.Status == model.StatusFailed {
			hookFailures = append(hookFailures, res)
		}
	}

	return append(hookFailures, results...)
}

// runBlock classifies a block and executes it if it is runnable. The checks
// short-circuit in a fixed order: skip flag, missing language, unknown
// language, execute.
func (e *Engine) runBlock(blk *model.CodeBlock) model.ExecutionResult {
	if blk.HasFlag(model.FlagNoDoctest) {
		return model.ExecutionResult{
			Block:  blk,
			Status: model.StatusSkipped,
			Reason: model.ReasonNoDoctest,
		}
	}

	if blk.Lang == "" {
		return model.ExecutionResult{
			Block:  blk,
			Status: model.StatusSkipped,
			Reason: model.ReasonMissingLanguage,
		}
	}

	run, ok := e.cfg.Runners.Lookup(blk.Lang)
	if !ok {
		status := model.StatusSkipped
		if e.cfg.UnknownLanguage == config.PolicyFail {
			status = model.StatusFailed
		}
		return model.ExecutionResult{
			Block:  blk,
			Status: status,
			Reason: model.ReasonUnknownLanguage,
		}
	}

	return e.execute(blk, run)
}
