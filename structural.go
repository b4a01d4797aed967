package laxjson

import "strings"

// parseObject implements spec.md §4.3: object parsing with repair for a
// missing/duplicate comma, a missing colon, a missing key, a missing value,
// and a missing closing brace.
func (p *parser) parseObject() (bool, error) {
	if p.atEnd() || p.text[p.i] != codeOpeningBrace {
		return false, nil
	}
	p.out.WriteRune(p.text[p.i])
	p.advance()
	p.parseWhitespaceAndSkipComments(true)

	// repair: skip a leading comma like {, message: "hi"}
	if p.consumeRune(codeComma) {
		p.parseWhitespaceAndSkipComments(true)
	}

	initial := true
	for !p.atEnd() && p.text[p.i] != codeClosingBrace {
		if !initial {
			iBefore := p.i
			oBefore := p.out.Len()
			processedComma := p.emitRune(codeComma)
			if processedComma {
				// The comma may land after whitespace/indentation already
				// written; move it back before that whitespace so the
				// output reads the way a human-formatted object would.
				temp := p.out.String()
				if strings.HasSuffix(temp, ",") {
					temp = temp[:len(temp)-1]
					temp = insertBeforeLastWhitespace(temp, ",")
					if idx := strings.LastIndex(temp, "\n"); idx != -1 {
						j := idx + 1
						for j < len(temp) && (temp[j] == ' ' || temp[j] == '\t') {
							j++
						}
						if j == len(temp) {
							temp = temp[:idx+1]
						}
					}
					p.out.set(temp)
				}
			} else {
				p.i = iBefore
				p.out.set(p.out.String()[:oBefore])
				p.insertBeforeTrailingWhitespace(",")
			}
		} else {
			initial = false
		}

		p.skipEllipsis()

		stringProcessed, err := p.parseString(false, -1)
		if err != nil {
			return false, err
		}
		processedKey := stringProcessed || p.parseUnquotedStringMode(true)
		if !processedKey {
			if p.atEnd() || p.text[p.i] == codeClosingBrace || p.text[p.i] == codeOpeningBrace ||
				p.text[p.i] == codeClosingBracket || p.text[p.i] == codeOpeningBracket {
				p.stripLast(",", false)
			} else {
				return false, newObjectKeyExpectedError(p.i)
			}
			break
		}

		p.parseWhitespaceAndSkipComments(true)
		processedColon := p.emitRune(codeColon)
		truncatedText := p.atEnd()
		if !processedColon {
			if !truncatedText && isStartOfValue(p.text[p.i]) || truncatedText {
				p.insertBeforeTrailingWhitespace(":")
			} else {
				return false, newColonExpectedError(p.i)
			}
		}

		processedValue, err := p.parseValue()
		if err != nil {
			return false, err
		}
		if !processedValue {
			if processedColon || truncatedText {
				p.out.WriteString("null")
			} else {
				return false, nil
			}
		}
	}

	if !p.atEnd() && p.text[p.i] == codeClosingBrace {
		p.out.WriteRune(p.text[p.i])
		p.advance()
	} else {
		p.insertBeforeTrailingWhitespace("}")
	}
	return true, nil
}

// parseArray implements spec.md §4.4: array parsing with repair for a
// missing comma and a missing closing bracket, plus the comma-inside-string
// cleanup spec.md §9 describes for ["hello,world,"2].
func (p *parser) parseArray() (bool, error) {
	if p.atEnd() || p.text[p.i] != codeOpeningBracket {
		return false, nil
	}
	p.out.WriteRune(p.text[p.i])
	p.advance()
	p.parseWhitespaceAndSkipComments(true)

	if p.consumeRune(codeComma) {
		p.parseWhitespaceAndSkipComments(true)
	}

	initial := true
	for !p.atEnd() && p.text[p.i] != codeClosingBracket {
		if !initial {
			iBefore := p.i
			oBefore := p.out.Len()
			p.parseWhitespaceAndSkipComments(true)

			if !p.emitRune(codeComma) {
				p.i = iBefore
				p.out.set(p.out.String()[:oBefore])
				p.insertBeforeTrailingWhitespace(",")
			}
		} else {
			initial = false
		}

		p.skipEllipsis()

		processedValue, err := p.parseValue()
		if err != nil {
			return false, err
		}

		if processedValue {
			// A trailing comma that ended up inside the preceding string,
			// immediately before its closing quote, actually belonged
			// between array items. Leave a bare "," string alone.
			outputStr := p.out.String()
			if strings.HasSuffix(outputStr, `,"`) {
				lastQuote := strings.LastIndex(outputStr[:len(outputStr)-2], `"`)
				if lastQuote != -1 && len(outputStr)-2-lastQuote > 2 {
					p.out.set(outputStr[:len(outputStr)-2] + `"`)
				}
			}
		} else {
			p.stripLast(",", false)
			break
		}
	}

	if !p.atEnd() && p.text[p.i] == codeClosingBracket {
		p.out.WriteRune(p.text[p.i])
		p.advance()
	} else {
		p.insertBeforeTrailingWhitespace("]")
	}
	return true, nil
}

// skipEllipsis implements spec.md §4.10: a leading "..." in an object or
// array (and an optional trailing comma) is dropped rather than treated as
// a value.
func (p *parser) skipEllipsis() bool {
	p.parseWhitespaceAndSkipComments(true)

	if p.i+2 < len(p.text) && p.text[p.i] == codeDot && p.text[p.i+1] == codeDot && p.text[p.i+2] == codeDot {
		p.i += 3
		p.parseWhitespaceAndSkipComments(true)
		p.consumeRune(codeComma)
		return true
	}
	return false
}
