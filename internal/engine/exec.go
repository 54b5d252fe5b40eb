package engine

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/xid"

	"github.com/zolinthecow/doctests/internal/model"
	"github.com/zolinthecow/doctests/internal/runner"
)

// execute runs a single block through its resolved runner. The block's script
// file and private temp directory are created right before the spawn and
// removed on every exit path; cleanup errors are swallowed.
func (e *Engine) execute(blk *model.CodeBlock, run runner.Runner) model.ExecutionResult {
	id := xid.New().String()

	tempDir := filepath.Join(e.cfg.TempRoot, "block-"+id)
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return spawnFailure(blk, err, 0)
	}

	scriptPath := filepath.Join(e.cfg.TempRoot,
		fmt.Sprintf("doctest_%s_%s%s", blk.Lang, id, run.Extension()))

	content := blk.Code
	if run.Wrap != nil {
		content = run.Wrap.WrapScript(blk.Code)
	}
	if err := os.WriteFile(scriptPath, []byte(content), 0644); err != nil {
		_ = os.RemoveAll(tempDir)
		return spawnFailure(blk, err, 0)
	}

	defer func() {
		_ = os.Remove(scriptPath)
		_ = os.RemoveAll(tempDir)
	}()

	workdir := e.resolveWorkdir(blk)

	var argv []string
	if run.Wrap != nil {
		argv = run.Wrap.Argv(scriptPath)
	} else {
		argv = append(splitCommand(run.Command), scriptPath)
	}

	env := composeEnv(os.Environ(), e.cfg.Env, blk.Env, map[string]string{
		model.EnvProjectRoot: e.cfg.Root,
		model.EnvDocPath:     blk.Doc,
		model.EnvTempDir:     tempDir,
		model.EnvWorkdir:     workdir,
	})

	return e.spawn(blk, argv, workdir, env)
}

// spawn starts the process and resolves the race between process exit and the
// timeout timer. Stdout and stderr are drained concurrently with the exit
// wait; all three are joined before a normal exit is classified. A timeout
// forcibly terminates the child, and whatever output made it into the buffers
// by then is all the result carries.
func (e *Engine) spawn(blk *model.CodeBlock, argv []string, workdir string, env []string) model.ExecutionResult {
	start := time.Now()

	if len(argv) == 0 {
		return spawnFailure(blk, fmt.Errorf("empty command"), time.Since(start))
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = workdir
	cmd.Env = env

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return spawnFailure(blk, err, time.Since(start))
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return spawnFailure(blk, err, time.Since(start))
	}

	if err := cmd.Start(); err != nil {
		return spawnFailure(blk, err, time.Since(start))
	}

	// Locked buffers: after a timeout the result is read while a drain may
	// still be flushing whatever the dying process left in its pipes.
	var stdout, stderr lockedBuffer
	var drains sync.WaitGroup
	drains.Add(2)
	go func() {
		defer drains.Done()
		_, _ = io.Copy(&stdout, stdoutPipe)
	}()
	go func() {
		defer drains.Done()
		_, _ = io.Copy(&stderr, stderrPipe)
	}()

	// Wait reaps the process only after both drains finish, so the buffers
	// are complete when done fires.
	done := make(chan error, 1)
	go func() {
		drains.Wait()
		done <- cmd.Wait()
	}()

	timer := time.NewTimer(e.cfg.Timeout)
	defer timer.Stop()

	select {
	case waitErr := <-done:
		exitCode := exitCodeFor(cmd, waitErr)
		status := model.StatusPassed
		if exitCode != 0 {
			status = model.StatusFailed
		}
		return model.ExecutionResult{
			Block:    blk,
			Status:   status,
			Stdout:   stdout.String(),
			Stderr:   stderr.String(),
			ExitCode: &exitCode,
			Duration: time.Since(start),
		}

	case <-timer.C:
		_ = cmd.Process.Kill()
		// Do not join the drains here: a grandchild that inherited the
		// pipes can keep them open indefinitely, and there is no guarantee
		// of capturing buffered output after a forced termination anyway.
		// The pending Wait goroutine reaps the child once the pipes close.
		return model.ExecutionResult{
			Block:    blk,
			Status:   model.StatusTimedOut,
			Stdout:   stdout.String(),
			Stderr:   stderr.String(),
			Reason:   model.ReasonTimeout,
			Duration: time.Since(start),
		}
	}
}

// resolveWorkdir returns the block's working directory: the workdir attribute
// resolved against the project root, or the project root itself.
func (e *Engine) resolveWorkdir(blk *model.CodeBlock) string {
	wd := blk.Attr("workdir")
	if wd == "" {
		return e.cfg.Root
	}
	if filepath.IsAbs(wd) {
		return wd
	}
	return filepath.Join(e.cfg.Root, wd)
}

// exitCodeFor extracts the child's exit code after Wait returns.
func exitCodeFor(cmd *exec.Cmd, waitErr error) int {
	if waitErr == nil {
		return 0
	}
	if exitErr, ok := waitErr.(*exec.ExitError); ok {
		return exitErr.ExitCode()
	}
	// Wait failed for a reason other than a non-zero exit; the process
	// state may still know the code.
	if cmd.ProcessState != nil {
		return cmd.ProcessState.ExitCode()
	}
	return 1
}

// lockedBuffer is a bytes.Buffer safe to read while a drain goroutine is
// still writing to it.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// spawnFailure builds the failed result for a block whose process never
// started. The platform error lands in stderr for diagnostics.
func spawnFailure(blk *model.CodeBlock, err error, d time.Duration) model.ExecutionResult {
	return model.ExecutionResult{
		Block:    blk,
		Status:   model.StatusFailed,
		Stderr:   err.Error(),
		Reason:   model.ReasonSpawnFailed,
		Duration: d,
	}
}
