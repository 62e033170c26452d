// errors.go — user-facing error wrapping and caret-snippet rendering.
//
// Turns lexer/parser/runtime diagnostics into readable snippets with a caret
// pointing at the offending column:
//
//	PARSE ERROR in demo.lox at 3:12: expected ')' after expression
//
//	   2 | var x = (1 + 2
//	   3 |              ;
//	     |             ^
//	   4 | print x;
//
// The snippet shows up to one line of context before and after, numbers the
// lines, and places the caret under the 1-based column. Coordinates out of
// range are clamped so rendering never fails on short or empty sources.
package lox

import (
	"fmt"
	"strings"
)

// WrapErrorWithSource returns err augmented with a caret-annotated snippet of
// src. Lex, parse and runtime errors are recognized; any other error is
// returned unchanged.
func WrapErrorWithSource(err error, src string) error {
	return WrapErrorWithName(err, "", src)
}

// WrapErrorWithName is WrapErrorWithSource with a source name ("demo.lox",
// "<repl>") included in the header when non-empty.
func WrapErrorWithName(err error, srcName, src string) error {
	switch e := err.(type) {
	case *LexError:
		// Lex/parse Col are 0-based; render as 1-based.
		return fmt.Errorf("%s", snippet(src, "LEXICAL ERROR", srcName, e.Line, e.Col+1, e.Msg))
	case *ParseError:
		return fmt.Errorf("%s", snippet(src, "PARSE ERROR", srcName, e.Line, e.Col+1, e.Msg))
	case *RuntimeError:
		msg := fmt.Sprintf("%s: %s", e.Kind, e.Msg)
		return fmt.Errorf("%s", snippet(src, "RUNTIME ERROR", srcName, e.Line, e.Col+1, msg))
	default:
		return err
	}
}

// ----- rendering -----

// snippet renders the labeled header plus a numbered, caret-annotated source
// excerpt. line and col are 1-based here.
func snippet(src, label, srcName string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	cur := lines[line-1]
	if col < 1 {
		col = 1
	}
	if col > len(cur)+1 {
		col = len(cur) + 1
	}

	var b strings.Builder
	if srcName != "" {
		fmt.Fprintf(&b, "%s in %s at %d:%d: %s\n\n", label, srcName, line, col, msg)
	} else {
		fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", label, line, col, msg)
	}

	width := len(fmt.Sprintf("%d", line+1))
	writeNumbered := func(n int) {
		fmt.Fprintf(&b, "  %*d | %s\n", width, n, lines[n-1])
	}

	if line > 1 {
		writeNumbered(line - 1)
	}
	writeNumbered(line)
	fmt.Fprintf(&b, "  %s | %s^\n", strings.Repeat(" ", width), strings.Repeat(" ", col-1))
	if line < len(lines) {
		writeNumbered(line + 1)
	}
	return b.String()
}
