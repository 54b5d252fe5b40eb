// Package extractor scans raw document text for fenced code blocks and turns
// them into model.CodeBlock values.
//
// FENCE GRAMMAR:
// A fence opens with three or more backticks or three or more tildes at the
// start of a line, optionally followed by an info string. The closer must use
// the same character, repeated at least as many times as the opener, with
// nothing after it but whitespace. A line using the other character, or too
// few repetitions, is ordinary block content. An unterminated fence is not an
// error — the block closes implicitly at end of document.
package extractor

import (
	"strings"

	"github.com/zolinthecow/doctests/internal/model"
)

// Extract scans text and returns every fenced code block in document order.
// docPath is recorded on each block so downstream consumers can report where
// a block came from; it is not read from disk here.
func Extract(docPath, text string) []model.CodeBlock {
	var blocks []model.CodeBlock

	lines := strings.Split(text, "\n")
	for i := 0; i < len(lines); i++ {
		fenceChar, fenceLen, info, ok := parseOpeningFence(lines[i])
		if !ok {
			continue
		}

		startLine := i + 1
		lang, meta := splitInfoString(info)

		// Collect body lines until a valid closer. Running off the end of
		// the document closes the block implicitly.
		var body []string
		for i++; i < len(lines); i++ {
			if isClosingFence(lines[i], fenceChar, fenceLen) {
				break
			}
			body = append(body, lines[i])
		}

		flags, attrs, env := parseMeta(meta)
		blocks = append(blocks, model.CodeBlock{
			Doc:        docPath,
			StartLine:  startLine,
			Lang:       lang,
			Code:       strings.Join(body, "\n"),
			Meta:       meta,
			Flags:      flags,
			Attributes: attrs,
			Env:        env,
		})
	}

	return blocks
}

// parseOpeningFence matches a run of three or more backticks or tildes at the
// start of a line. It returns the fence character, the run length, and the
// info string (everything after the run, trimmed).
func parseOpeningFence(line string) (fenceChar byte, fenceLen int, info string, ok bool) {
	if len(line) == 0 {
		return 0, 0, "", false
	}
	c := line[0]
	if c != '`' && c != '~' {
		return 0, 0, "", false
	}
	n := runLength(line, c)
	if n < 3 {
		return 0, 0, "", false
	}
	return c, n, strings.TrimSpace(line[n:]), true
}

// isClosingFence reports whether line closes a fence opened with fenceChar
// repeated openLen times: same character, count >= openLen, and only trailing
// whitespace after the run.
func isClosingFence(line string, fenceChar byte, openLen int) bool {
	n := runLength(line, fenceChar)
	if n < openLen {
		return false
	}
	return strings.TrimSpace(line[n:]) == ""
}

// runLength counts how many times c repeats at the start of line.
func runLength(line string, c byte) int {
	n := 0
	for n < len(line) && line[n] == c {
		n++
	}
	return n
}

// splitInfoString separates the language tag from the meta string. The first
// whitespace-delimited token is the language; the remaining tokens are
// rejoined with single spaces.
func splitInfoString(info string) (lang, meta string) {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}
