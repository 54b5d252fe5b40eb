// Package runner maps language tags to the command used to execute a block of
// that language. The registry is plain data: the engine looks a runner up and
// follows its descriptor, so adding a language — even one that needs a custom
// launch shape — is a registry change, not an engine change.
package runner

// Runner describes how to execute one language.
type Runner struct {
	// Command is the interpreter invocation, split with quote-aware
	// tokenization at spawn time. The script path is appended as the final
	// argument unless Wrap overrides argv construction.
	Command string
	// Ext is the file extension for the materialized script, including the
	// leading dot. Empty means DefaultExt.
	Ext string
	// Wrap, when non-nil, marks the runner as needing a non-generic
	// invocation: it synthesizes the script around the raw block code and
	// builds the full argv itself.
	Wrap Wrapper
}

// DefaultExt is used for languages with no extension mapping.
const DefaultExt = ".txt"

// Wrapper customizes script synthesis and argv construction for runners that
// cannot be launched as `command <scriptfile>`.
type Wrapper interface {
	// WrapScript returns the script file content: a prelude, the raw block
	// code, and a postlude that makes the host exit cleanly.
	WrapScript(code string) string
	// Argv returns the complete command line, including the script path
	// wherever the host expects it.
	Argv(scriptPath string) []string
}

// Registry maps a language tag to its runner.
type Registry map[string]Runner

// Lookup resolves the runner for a language tag.
func (r Registry) Lookup(lang string) (Runner, bool) {
	run, ok := r[lang]
	return run, ok
}

// Extension returns the script file extension for a runner, falling back to
// DefaultExt.
func (run Runner) Extension() string {
	if run.Ext == "" {
		return DefaultExt
	}
	return run.Ext
}

// Defaults is the built-in language table. Merge layers user overrides on top.
func Defaults() Registry {
	return Registry{
		"python": {Command: "python3", Ext: ".py"},
		"py":     {Command: "python3", Ext: ".py"},
		"sh":     {Command: "sh", Ext: ".sh"},
		"bash":   {Command: "bash", Ext: ".sh"},
		"js":     {Command: "node", Ext: ".js"},
		"node":   {Command: "node", Ext: ".js"},
		"ruby":   {Command: "ruby", Ext: ".rb"},
		"lua":    {Command: "lua", Ext: ".lua"},
		"go":     {Command: "go run", Ext: ".go"},
		"vim":    {Ext: ".vim", Wrap: nvimWrapper{}},
	}
}

// Merge returns a new registry with overrides layered over base. An override
// for an existing language replaces the whole descriptor; neither input map
// is mutated.
func Merge(base Registry, overrides Registry) Registry {
	merged := make(Registry, len(base)+len(overrides))
	for lang, run := range base {
		merged[lang] = run
	}
	for lang, run := range overrides {
		merged[lang] = run
	}
	return merged
}
