package engine

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/zolinthecow/doctests/internal/model"
)

// runHook executes a setup or teardown command once, in the project root,
// with the global environment plus the project-root variable. Hooks get no
// timeout and no private temp directory.
func (e *Engine) runHook(hook model.Hook, command string) model.ExecutionResult {
	start := time.Now()

	argv := splitCommand(command)
	if len(argv) == 0 {
		return hookFailure(hook, fmt.Errorf("empty %s command", hook), time.Since(start))
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = e.cfg.Root
	cmd.Env = composeEnv(os.Environ(), e.cfg.Env, map[string]string{
		model.EnvProjectRoot: e.cfg.Root,
	})

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	duration := time.Since(start)

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			code := exitErr.ExitCode()
			e.logger.Warn("hook failed",
				slog.String("hook", string(hook)),
				slog.Int("exitCode", code),
			)
			return model.ExecutionResult{
				Hook:     hook,
				Status:   model.StatusFailed,
				Stdout:   stdout.String(),
				Stderr:   stderr.String(),
				ExitCode: &code,
				Duration: duration,
			}
		}
		// The hook never started (binary missing, not executable, ...).
		return hookFailure(hook, err, duration)
	}

	e.logger.Info("hook passed", slog.String("hook", string(hook)), slog.Duration("duration", duration))
	zero := 0
	return model.ExecutionResult{
		Hook:     hook,
		Status:   model.StatusPassed,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: &zero,
		Duration: duration,
	}
}

// hookFailure builds the synthetic failed result for a hook that could not be
// spawned, with the platform error in stderr.
func hookFailure(hook model.Hook, err error, d time.Duration) model.ExecutionResult {
	return model.ExecutionResult{
		Hook:     hook,
		Status:   model.StatusFailed,
		Stderr:   err.Error(),
		Reason:   model.ReasonSpawnFailed,
		Duration: d,
	}
}
