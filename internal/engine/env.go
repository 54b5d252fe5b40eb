package engine

import (
	"sort"
	"strings"
)

// composeEnv layers environment maps over the inherited process environment.
// Later layers win on key collision. The result is sorted so spawned
// environments are deterministic.
func composeEnv(inherited []string, layers ...map[string]string) []string {
	env := make(map[string]string, len(inherited))
	for _, kv := range inherited {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		env[key] = value
	}

	for _, layer := range layers {
		for key, value := range layer {
			env[key] = value
		}
	}

	out := make([]string, 0, len(env))
	for key, value := range env {
		out = append(out, key+"="+value)
	}
	sort.Strings(out)
	return out
}
