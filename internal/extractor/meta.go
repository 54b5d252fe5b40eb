package extractor

import "strings"

// parseMeta classifies each whitespace-separated meta token into exactly one
// of flags, attributes, or env overrides:
//
//	flagname        → flag
//	key=value       → attribute
//	env=KEY=VALUE   → env override (only the first two '=' separate; any
//	                  further '=' characters belong to the value)
//
// Duplicate keys are last-write-wins. An env token whose KEY part is empty is
// ignored.
func parseMeta(meta string) (flags map[string]bool, attrs, env map[string]string) {
	flags = make(map[string]bool)
	attrs = make(map[string]string)
	env = make(map[string]string)

	for _, tok := range strings.Fields(meta) {
		key, value, found := strings.Cut(tok, "=")
		if !found {
			flags[tok] = true
			continue
		}
		if key == "env" {
			envKey, envValue, _ := strings.Cut(value, "=")
			if envKey == "" {
				continue
			}
			env[envKey] = envValue
			continue
		}
		attrs[key] = value
	}

	return flags, attrs, env
}
