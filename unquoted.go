package laxjson

import (
	"strings"

	"github.com/go-json-experiment/json"
)

// parseUnquotedString is the value-position entry point for spec.md §4.8.
func (p *parser) parseUnquotedString() bool {
	return p.parseUnquotedStringMode(false)
}

// parseUnquotedStringMode implements spec.md §4.8: an unquoted token, a
// MongoDB/JSONP function-call wrapper, or (when isKey) an object key that
// also stops at an unescaped colon.
func (p *parser) parseUnquotedStringMode(isKey bool) bool {
	start := p.i

	if p.atEnd() {
		return false
	}

	if r, _ := p.current(); isFunctionNameCharStart(r) {
		for {
			r, ok := p.current()
			if !ok || !isFunctionNameChar(r) {
				break
			}
			p.advance()
		}

		j := p.i
		for j < len(p.text) && isWhitespace(p.text[j]) {
			j++
		}

		if j < len(p.text) && p.text[j] == codeOpenParenthesis {
			// MongoDB wrapper (NumberLong("2")) or JSONP callback
			// (callback({...});): the call itself emits nothing, only the
			// inner value's output survives.
			p.i = j + 1
			p.parseValue()

			if r, ok := p.current(); ok && r == codeCloseParenthesis {
				p.advance()
				if r, ok := p.current(); ok && r == codeSemicolon {
					p.advance()
				}
			}
			return true
		}
	}

	// The function-name loop above may have advanced p.i past a URL
	// scheme's letters (every scheme here starts with isFunctionNameCharStart)
	// looking for a "(" that wasn't there. Rewind to start before testing
	// for a scheme, so the match is anchored on the whole token rather than
	// whatever's left after the scheme letters.
	p.i = start

	isURL := false
	if !isKey {
		switch {
		case p.matchLiteral("https://"), p.matchLiteral("http://"), p.matchLiteral("ftp://"):
			isURL = true
		}
	}

	if isURL {
		for {
			r, ok := p.current()
			if !ok || !isURLChar(r) {
				break
			}
			p.advance()
		}
	} else {
		for {
			r, ok := p.current()
			if !ok || isUnquotedStringDelimiter(r) || isQuote(r) {
				break
			}
			if isKey && r == codeColon {
				break
			}
			p.advance()
		}
	}

	if p.i <= start {
		return false
	}

	// Trim trailing whitespace from the run before it becomes the string
	// content.
	for p.i > start && isWhitespace(p.text[p.i-1]) {
		p.i--
	}

	symbol := string(p.text[start:p.i])

	if symbol == "undefined" {
		p.out.WriteString("null")
	} else {
		var repaired strings.Builder
		for _, char := range symbol {
			if isSingleQuoteLike(char) || isDoubleQuoteLike(char) {
				repaired.WriteRune('"')
			} else {
				repaired.WriteRune(char)
			}
		}
		p.out.WriteByte('"')
		p.out.WriteString(repaired.String())
		p.out.WriteByte('"')
	}

	// A stray closing quote for a missing opening quote.
	if r, ok := p.current(); ok && r == codeDoubleQuote {
		p.advance()
	}
	return true
}

// parseRegex recognizes a /pattern/flags literal and wraps it as a JSON
// string, escaping it through go-json-experiment/json so quotes,
// backslashes, and control characters inside the pattern can never corrupt
// the surrounding document.
func (p *parser) parseRegex() bool {
	r, ok := p.current()
	if !ok || r != codeSlash {
		return false
	}

	start := p.i
	p.advance()

	for {
		cur, ok := p.current()
		if !ok {
			break
		}
		prev := p.text[p.i-1]
		if cur == codeSlash && prev != codeBackslash {
			break
		}
		p.advance()
	}

	if r, ok := p.current(); ok && r == codeSlash {
		p.advance()
	}

	content := string(p.text[start:p.i])
	encoded, _ := json.Marshal(content)
	p.out.WriteString(string(encoded))
	return true
}
