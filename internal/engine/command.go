package engine

import "strings"

// splitCommand tokenizes a runner or hook command string. Single- and
// double-quoted spans keep their spaces and have the quotes stripped. There
// is no escape handling and no quote nesting; a value containing the opposite
// quote character is undefined behavior here, deliberately — this is not a
// shell.
func splitCommand(s string) []string {
	var tokens []string
	var cur strings.Builder
	inToken := false
	var quote byte

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			} else {
				cur.WriteByte(c)
			}
		case c == '\'' || c == '"':
			quote = c
			inToken = true
		case c == ' ' || c == '\t':
			if inToken {
				tokens = append(tokens, cur.String())
				cur.Reset()
				inToken = false
			}
		default:
			cur.WriteByte(c)
			inToken = true
		}
	}
	if inToken {
		tokens = append(tokens, cur.String())
	}
	return tokens
}
