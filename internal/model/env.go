package model

// Environment variables injected into every spawned process. Example code in
// documents relies on these names, so they are a stable contract.
const (
	// EnvProjectRoot is set for blocks and hooks.
	EnvProjectRoot = "DOCTESTS_PROJECT_ROOT"
	// EnvDocPath is the originating document path. Blocks only.
	EnvDocPath = "DOCTESTS_DOC_PATH"
	// EnvTempDir is the block's private temp directory. Blocks only.
	EnvTempDir = "DOCTESTS_TEMP_DIR"
	// EnvWorkdir is the resolved working directory. Blocks only.
	EnvWorkdir = "DOCTESTS_WORKDIR"
)
