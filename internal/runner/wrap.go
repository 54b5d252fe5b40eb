package runner

import (
	"strings"

	"github.com/zolinthecow/doctests/internal/model"
)

// nvimWrapper runs vimscript blocks through a headless Neovim. Neovim cannot
// be handed a bare script file the way an interpreter can: it must be started
// with fixed flags, and the script has to move itself into the block's working
// directory and keep swap/backup/undo state out of the project tree.
type nvimWrapper struct{}

func (nvimWrapper) WrapScript(code string) string {
	var b strings.Builder

	// Prelude: cd into the resolved workdir and point every data directory
	// at the block's private temp dir.
	b.WriteString("execute 'cd' fnameescape($" + model.EnvWorkdir + ")\n")
	b.WriteString("let &directory = $" + model.EnvTempDir + "\n")
	b.WriteString("let &backupdir = $" + model.EnvTempDir + "\n")
	b.WriteString("let &undodir = $" + model.EnvTempDir + "\n")
	b.WriteString("let &shadafile = $" + model.EnvTempDir + " . '/doctest.shada'\n")

	b.WriteString(code)
	if !strings.HasSuffix(code, "\n") {
		b.WriteString("\n")
	}

	// Postlude: exit cleanly so the headless host does not sit waiting for
	// input until the timeout kills it.
	b.WriteString("qa!\n")
	return b.String()
}

func (nvimWrapper) Argv(scriptPath string) []string {
	return []string{"nvim", "--headless", "--clean", "-u", "NONE", "-S", scriptPath}
}
