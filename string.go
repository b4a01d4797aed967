package laxjson

import (
	"fmt"
	"strings"
)

// parseString implements spec.md §4.5, the most complex recognizer. It
// returns (consumed, error) where error is non-nil only for the
// non-repairable InvalidCharacter/InvalidUnicodeCharacter conditions.
//
// stopAtDelimiter and stopAtIndex select the two retry modes spec.md §9
// describes as a "bounded-lookahead retry": stopAtDelimiter is the greedy
// recognizer giving up and treating the next delimiter as the missing
// closing quote; stopAtIndex is the narrower retry used when an interior
// quote turns out to be followed by a comma, so the string is re-parsed
// stopping exactly there.
func (p *parser) parseString(stopAtDelimiter bool, stopAtIndex int) (bool, error) {
	if p.atEnd() {
		return false, nil
	}

	skipEscapeChars := p.text[p.i] == codeBackslash
	if skipEscapeChars {
		// This string is a "stringified string": the whole document was
		// embedded inside another string and escape-stripped. Drop the
		// leading backslash; every subsequent legitimate escape is
		// un-doubled as it's emitted.
		p.advance()
	}

	if p.atEnd() || !isQuote(p.text[p.i]) {
		return false, nil
	}

	opening := p.text[p.i]
	isEndQuote := endQuoteClassifier(opening)

	iBefore := p.i
	oBefore := p.out.Len()
	mightContainFilePaths := analyzePotentialFilePath(p.text, p.i)

	var str strings.Builder
	str.WriteRune('"')
	p.advance()

	runStart := iBefore

	for {
		if p.exceedsWindow(runStart) {
			return false, p.bufErr
		}

		if p.atEnd() {
			iPrev := p.prevNonWhitespaceIndex(p.i - 1)
			if !stopAtDelimiter && iPrev != -1 && isDelimiter(p.text[iPrev]) {
				// The text ends with a delimiter, e.g. ["hello] — the
				// missing end quote belongs earlier. Rewind and retry,
				// stopping at the first delimiter encountered.
				p.i = iBefore
				p.out.set(p.out.String()[:oBefore])
				return p.parseString(true, -1)
			}
			p.out.WriteString(insertBeforeLastWhitespace(str.String(), "\""))
			return true, nil
		}

		if stopAtIndex != -1 && p.i == stopAtIndex {
			p.out.WriteString(insertBeforeLastWhitespace(str.String(), "\""))
			return true, nil
		}

		switch {
		case isEndQuote(p.text[p.i]):
			iQuote := p.i
			oQuote := str.Len()
			str.WriteRune('"')
			p.advance()
			p.out.WriteString(str.String())

			// Peek past trailing whitespace/comments without committing,
			// mirroring the teacher's speculative lookahead exactly by
			// running the real whitespace-and-comments recognizer on a
			// throwaway parser positioned at the same cursor.
			tmp := &parser{text: p.text, i: p.i}
			tmp.parseWhitespaceAndSkipComments(false)
			iAfterWS := tmp.i
			afterWS := tmp.out.String()

			endsHere := stopAtDelimiter || iAfterWS >= len(p.text) ||
				isDelimiter(p.text[iAfterWS]) || isQuote(p.text[iAfterWS]) || isDigit(p.text[iAfterWS])

			if endsHere {
				p.i = iAfterWS
				p.out.WriteString(afterWS)
				p.parseConcatenatedString()
				return true, nil
			}

			iPrevChar := p.prevNonWhitespaceIndex(iQuote - 1)
			if iPrevChar != -1 {
				prevChar := p.text[iPrevChar]
				switch {
				case prevChar == ',':
					p.i = iBefore
					p.out.set(p.out.String()[:oBefore])
					return p.parseString(false, iPrevChar)
				case isDelimiter(prevChar):
					p.i = iBefore
					p.out.set(p.out.String()[:oBefore])
					return p.parseString(true, -1)
				}
			}

			// The quote was an unescaped interior quote: back out the
			// output written so far, resume right after the quote, and
			// retroactively escape it inside the in-progress string.
			p.out.set(p.out.String()[:oBefore])
			p.i = iQuote + 1
			reverted := str.String()[:oQuote] + `\"`
			str.Reset()
			str.WriteString(reverted)

		case stopAtDelimiter && isUnquotedStringDelimiter(p.text[p.i]):
			if p.i > 0 && p.text[p.i-1] == ':' && withinRange(p.text, iBefore+1, minInt(p.i+2, len(p.text))) {
				for p.i < len(p.text) && isURLChar(p.text[p.i]) {
					str.WriteRune(p.text[p.i])
					p.advance()
				}
			}
			p.out.WriteString(insertBeforeLastWhitespace(str.String(), "\""))
			p.parseConcatenatedString()
			return true, nil

		case p.text[p.i] == '\\':
			if p.i+1 >= len(p.text) {
				p.out.WriteString(insertBeforeLastWhitespace(str.String(), "\""))
				p.advance()
				return true, nil
			}

			char := p.text[p.i+1]
			if _, ok := escapeCharacters[char]; ok {
				if mightContainFilePaths {
					str.WriteString(`\\`)
					p.advance()
				} else {
					str.WriteRune(p.text[p.i])
					str.WriteRune(p.text[p.i+1])
					p.i += 2
				}
			} else if char == 'u' {
				j := 2
				hexCount := 0
				for j < 6 && p.i+j < len(p.text) && isHex(p.text[p.i+j]) {
					j++
					hexCount++
				}

				switch {
				case hexCount == 4:
					if mightContainFilePaths {
						str.WriteString(`\\`)
						p.advance()
					} else {
						str.WriteString(string(p.text[p.i : p.i+6]))
						p.i += 6
					}
				case p.i+j >= len(p.text):
					// Truncated unicode escape at the very end of input:
					// drop it and end the string here.
					p.i = len(p.text)
				default:
					if mightContainFilePaths && hexCount == 0 && p.i+2 < len(p.text) {
						next := p.text[p.i+2]
						if (next >= 'a' && next <= 'z') || (next >= 'A' && next <= 'Z') {
							str.WriteString(`\\`)
							p.advance()
							break
						}
					}
					endJ := 2
					for endJ < 6 && p.i+endJ < len(p.text) {
						nc := p.text[p.i+endJ]
						if nc == '"' || nc == '\'' || isWhitespace(nc) {
							break
						}
						endJ++
					}
					chars := string(p.text[p.i : p.i+endJ])
					escaped := strings.ReplaceAll(chars, `\`, `\\`)
					if hexCount < 4 && endJ == 2+hexCount {
						return false, newInvalidUnicodeError(fmt.Sprintf(`invalid unicode character "%s""`, escaped), p.i)
					}
					return false, newInvalidUnicodeError(fmt.Sprintf(`invalid unicode character "%s"`, escaped), p.i)
				}
			} else {
				if stopAtIndex != -1 && p.i == stopAtIndex-1 && isDelimiter(p.text[stopAtIndex]) {
					p.out.WriteString(insertBeforeLastWhitespace(str.String(), "\""))
					p.i = stopAtIndex
					return true, nil
				}
				if mightContainFilePaths {
					str.WriteString(`\\`)
					p.advance()
				} else {
					str.WriteRune(char)
					p.i += 2
				}
			}

		default:
			char := p.text[p.i]
			switch {
			case char == '"' && p.text[p.i-1] != '\\':
				str.WriteString(`\"`)
				p.advance()
			case isControlCharacter(char):
				if replacement, ok := controlCharacters[char]; ok {
					str.WriteString(replacement)
				}
				p.advance()
			default:
				if !isValidStringCharacter(char) {
					return false, newInvalidCharacterError(fmt.Sprintf("invalid character %q", fmt.Sprintf(`\u%04x`, char)), p.i)
				}
				str.WriteRune(char)
				p.advance()
			}
		}

		if skipEscapeChars {
			p.consumeRune(codeBackslash)
		}
	}
}

// endQuoteClassifier picks the predicate identifying a matching closing
// quote for the given opening quote, per spec.md §4.5's end-quote-class
// rule.
func endQuoteClassifier(opening rune) func(rune) bool {
	switch {
	case isDoubleQuote(opening):
		return isDoubleQuote
	case isSingleQuote(opening):
		return isSingleQuote
	case isSingleQuoteLike(opening):
		return isSingleQuoteLike
	default:
		return isDoubleQuoteLike
	}
}

// parseConcatenatedString implements spec.md §4.5.1: "a" + "b" becomes "ab".
func (p *parser) parseConcatenatedString() bool {
	processed := false
	iBeforeWS := p.i
	oBeforeWS := p.out.Len()
	p.parseWhitespaceAndSkipComments(true)

	for {
		r, ok := p.current()
		if !ok || r != codePlus {
			break
		}
		processed = true
		p.advance()
		p.parseWhitespaceAndSkipComments(true)

		// Drop the close quote of the left string: it must be the very
		// last non-whitespace character written so far.
		p.stripLast(`"`, true)
		start := p.out.Len()

		consumed, err := p.parseString(false, -1)
		if err != nil {
			consumed = false
		}
		if consumed {
			out := p.out.String()
			if len(out) > start {
				p.removeAt(start, 1)
			}
		} else {
			p.insertBeforeTrailingWhitespace(`"`)
		}
	}

	if !processed {
		p.i = iBeforeWS
		p.out.set(p.out.String()[:oBeforeWS])
	}
	return processed
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func withinRange(text []rune, from, to int) bool {
	if from < 0 {
		from = 0
	}
	if to > len(text) {
		to = len(text)
	}
	if from >= to {
		return false
	}
	return regexURLStart.MatchString(string(text[from:to]))
}
