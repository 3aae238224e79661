package analysis

import (
	"fmt"
	"strings"

	"codeguard/internal/model"
)

// checkSyntax runs a cheap structural scan for damage that makes semantic
// review pointless: unbalanced brackets and unterminated string literals.
// It is not a parser; it only catches what a truncated or mangled diff
// typically produces.
func checkSyntax(code string) *model.Issue {
	type bracket struct {
		ch   byte
		line int
	}
	var stack []bracket
	pairs := map[byte]byte{')': '(', ']': '[', '}': '{'}

	line := 1
	var inString bool
	var quote byte
	var stringLine int

	for i := 0; i < len(code); i++ {
		c := code[i]
		if c == '\n' {
			line++
			// Single-quoted Python strings do not span lines. Triple-quoted
			// ones are not tracked; skipping them avoids false positives.
			if inString {
				inString = false
			}
			continue
		}

		if inString {
			if c == '\\' {
				i++
			} else if c == quote {
				inString = false
			}
			continue
		}

		switch c {
		case '#':
			for i < len(code) && code[i] != '\n' {
				i++
			}
			i--
		case '\'', '"':
			// Treat triple quotes as opaque: skip to their closing run.
			if i+2 < len(code) && code[i+1] == c && code[i+2] == c {
				end := strings.Index(code[i+3:], string([]byte{c, c, c}))
				if end < 0 {
					return syntaxIssue(line, "unterminated triple-quoted string")
				}
				line += strings.Count(code[i:i+3+end+3], "\n")
				i += 3 + end + 2
				continue
			}
			inString = true
			quote = c
			stringLine = line
		case '(', '[', '{':
			stack = append(stack, bracket{c, line})
		case ')', ']', '}':
			if len(stack) == 0 || stack[len(stack)-1].ch != pairs[c] {
				return syntaxIssue(line, fmt.Sprintf("unexpected %q", c))
			}
			stack = stack[:len(stack)-1]
		}
	}

	if inString {
		return syntaxIssue(stringLine, "unterminated string literal")
	}
	if len(stack) > 0 {
		last := stack[len(stack)-1]
		return syntaxIssue(last.line, fmt.Sprintf("unclosed %q", last.ch))
	}
	return nil
}

func syntaxIssue(line int, msg string) *model.Issue {
	return &model.Issue{
		Severity:     model.SeverityHigh,
		Category:     "Syntax Error",
		Line:         line,
		Message:      fmt.Sprintf("syntax error at line %d: %s", line, msg),
		SuggestedFix: "Fix the syntax error before review. Check for missing brackets, quotes, or truncated code.",
	}
}
