package catalog

import "strings"

// statement is one top-level SQL statement and its position in the source.
type statement struct {
	text      string
	startLine int
	endLine   int
}

// scanMode tracks what region of SQL text the scanner is inside.
type scanMode int

const (
	modeNormal scanMode = iota
	modeLineComment
	modeBlockComment
	modeSingleQuote
	modeDoubleQuote
	modeDollarQuote
)

// splitStatements splits SQL text on top-level semicolons. Semicolons
// inside single-quoted strings, quoted identifiers, dollar-quoted bodies,
// line comments, and block comments do not terminate a statement, so
// function bodies survive intact. Statement text is kept verbatim.
func splitStatements(text string) []statement {
	var stmts []statement

	mode := modeNormal
	dollarTag := ""
	line := 1
	segStart := 0
	segStartLine := 1

	emit := func(end int) {
		raw := text[segStart:end]
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			return
		}
		// Newlines in the trimmed-off prefix shift the first line down.
		leading := raw[: len(raw)-len(strings.TrimLeft(raw, " \t\r\n"))]
		startLine := segStartLine + strings.Count(leading, "\n")
		stmts = append(stmts, statement{
			text:      trimmed,
			startLine: startLine,
			endLine:   startLine + strings.Count(trimmed, "\n"),
		})
	}

	i := 0
	for i < len(text) {
		c := text[i]
		if c == '\n' {
			line++
		}

		switch mode {
		case modeNormal:
			switch {
			case c == '-' && i+1 < len(text) && text[i+1] == '-':
				mode = modeLineComment
				i++
			case c == '/' && i+1 < len(text) && text[i+1] == '*':
				mode = modeBlockComment
				i++
			case c == '\'':
				mode = modeSingleQuote
			case c == '"':
				mode = modeDoubleQuote
			case c == '$':
				if tag, ok := dollarTagAt(text, i); ok {
					mode = modeDollarQuote
					dollarTag = tag
					i += len(tag) + 1 // past the opening $tag$
				}
			case c == ';':
				emit(i)
				segStart = i + 1
				segStartLine = line
			}
		case modeLineComment:
			if c == '\n' {
				mode = modeNormal
			}
		case modeBlockComment:
			if c == '*' && i+1 < len(text) && text[i+1] == '/' {
				mode = modeNormal
				i++
			}
		case modeSingleQuote:
			if c == '\'' {
				if i+1 < len(text) && text[i+1] == '\'' {
					i++ // escaped quote
				} else {
					mode = modeNormal
				}
			}
		case modeDoubleQuote:
			if c == '"' {
				mode = modeNormal
			}
		case modeDollarQuote:
			if c == '$' && hasDollarTag(text, i, dollarTag) {
				mode = modeNormal
				i += len(dollarTag) + 1
			}
		}
		i++
	}
	emit(len(text))

	return stmts
}

// dollarTagAt reports whether text[i:] opens a dollar quote ($$ or $tag$)
// and returns the tag (possibly empty).
func dollarTagAt(text string, i int) (string, bool) {
	j := i + 1
	for j < len(text) && (isIdentByte(text[j]) || text[j] == '_') {
		j++
	}
	if j < len(text) && text[j] == '$' {
		return text[i+1 : j], true
	}
	return "", false
}

// hasDollarTag reports whether text[i:] closes a dollar quote with the
// given tag.
func hasDollarTag(text string, i int, tag string) bool {
	end := i + 1 + len(tag)
	return end < len(text) && text[i+1:end] == tag && text[end] == '$'
}

func isIdentByte(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

// ScrubSQL returns sql with comments and single-quoted string literals
// blanked to spaces, preserving length and line structure. Dollar-quoted
// bodies are scrubbed recursively rather than blanked: function bodies
// are SQL and are exactly where a function's dependencies appear.
// Identifier tokens left behind are those a reference scan may consider,
// so a name appearing only inside a comment or string literal never
// counts as a dependency.
func ScrubSQL(sql string) string {
	out := []byte(sql)
	mode := modeNormal

	blank := func(idx int) {
		if out[idx] != '\n' {
			out[idx] = ' '
		}
	}

	i := 0
	for i < len(sql) {
		c := sql[i]
		switch mode {
		case modeNormal:
			switch {
			case c == '-' && i+1 < len(sql) && sql[i+1] == '-':
				mode = modeLineComment
				blank(i)
			case c == '/' && i+1 < len(sql) && sql[i+1] == '*':
				mode = modeBlockComment
				blank(i)
			case c == '\'':
				mode = modeSingleQuote
				blank(i)
			case c == '"':
				// Quoted identifiers stay in place; quotes themselves act
				// as token boundaries for the reference scan.
				mode = modeDoubleQuote
			case c == '$':
				if tag, ok := dollarTagAt(sql, i); ok {
					bodyStart := i + len(tag) + 2
					for k := i; k < bodyStart && k < len(sql); k++ {
						blank(k)
					}
					closer := "$" + tag + "$"
					rel := -1
					if bodyStart < len(sql) {
						rel = strings.Index(sql[bodyStart:], closer)
					}
					if rel < 0 {
						// Unterminated: scrub the rest as body.
						copy(out[bodyStart:], ScrubSQL(sql[bodyStart:]))
						i = len(sql)
						continue
					}
					bodyEnd := bodyStart + rel
					copy(out[bodyStart:bodyEnd], ScrubSQL(sql[bodyStart:bodyEnd]))
					for k := bodyEnd; k < bodyEnd+len(closer); k++ {
						blank(k)
					}
					i = bodyEnd + len(closer) - 1
				}
			}
		case modeLineComment:
			if c == '\n' {
				mode = modeNormal
			} else {
				blank(i)
			}
		case modeBlockComment:
			blank(i)
			if c == '*' && i+1 < len(sql) && sql[i+1] == '/' {
				blank(i + 1)
				mode = modeNormal
				i++
			}
		case modeSingleQuote:
			blank(i)
			if c == '\'' {
				if i+1 < len(sql) && sql[i+1] == '\'' {
					blank(i + 1)
					i++
				} else {
					mode = modeNormal
				}
			}
		case modeDoubleQuote:
			if c == '"' {
				mode = modeNormal
			}
		}
		i++
	}

	return string(out)
}
