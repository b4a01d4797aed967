package laxjson

import (
	"fmt"
	"regexp"
	"strings"
)

// RepairOptions configures a single repair call. The zero value disables
// the window bound entirely (spec.md §6: "a non-streaming caller may ignore
// the window").
type RepairOptions struct {
	// WindowSize bounds the longest single run a string/number/whitespace
	// recognizer may scan, and how far back a back-patch may reach into
	// already-emitted output, before repair gives up with a BufferExceeded
	// error (spec.md §5). 0 means unbounded.
	WindowSize int
}

// Repair attempts to repair text into valid JSON. It handles the scenarios
// spec.md §4 enumerates: missing/extra quotes, trailing commas, comments,
// single quotes, Python/JavaScript literals, NDJSON, Markdown code fences,
// and truncated input. A non-repairable defect is reported as a *[Error]
// carrying the offending message and input position.
func Repair(text string) (string, error) {
	return RepairWithOptions(text, RepairOptions{})
}

// RepairWithOptions is [Repair] with an explicit window bound; see
// [RepairOptions].
func RepairWithOptions(text string, opts RepairOptions) (string, error) {
	if len(text) == 0 {
		return "", newUnexpectedEndError(0)
	}

	p := newParser([]rune(text), opts.WindowSize)

	parseMarkdownCodeBlock(p, []string{"```", "[```", "{```"})

	success, err := p.parseValue()
	if err != nil {
		return "", err
	}
	if p.bufErr != nil {
		return "", p.bufErr
	}
	if !success {
		return "", newUnexpectedEndError(len(p.text))
	}

	parseMarkdownCodeBlock(p, []string{"```", "```]", "```}"})

	processedComma := p.emitRune(codeComma)
	if processedComma {
		p.parseWhitespaceAndSkipComments(true)
	}

	if !p.atEnd() && isStartOfValue(p.text[p.i]) && endsWithCommaOrNewline(p.out.String()) {
		if !processedComma {
			p.insertBeforeTrailingWhitespace(",")
		}
		if err := p.parseNewlineDelimitedJSON(); err != nil {
			return "", err
		}
	} else if processedComma {
		p.stripLast(",", false)
	}

	// repair redundant end quotes, e.g. trailing "}]" after a value that
	// already closed every structure it opened.
	for !p.atEnd() && (p.text[p.i] == codeClosingBrace || p.text[p.i] == codeClosingBracket) {
		p.advance()
		p.parseWhitespaceAndSkipComments(true)
	}

	p.parseWhitespaceAndSkipComments(true)

	if p.bufErr != nil {
		return "", p.bufErr
	}

	if p.atEnd() {
		return p.out.String(), nil
	}

	message := fmt.Sprintf("unexpected character %q", string(p.text[p.i]))
	return "", newUnexpectedCharacterError(message, p.i)
}

// parseValue implements spec.md §4.2: try each recognizer in turn, the
// first one to consume anything wins.
func (p *parser) parseValue() (bool, error) {
	p.parseWhitespaceAndSkipComments(true)

	if processedObj, err := p.parseObject(); err != nil {
		return false, err
	} else if processedObj {
		p.parseWhitespaceAndSkipComments(true)
		return true, nil
	}

	processed, err := p.parseArray()
	if err != nil {
		return false, err
	}
	if !processed {
		stringProcessed, err := p.parseString(false, -1)
		if err != nil {
			return false, err
		}
		processed = stringProcessed ||
			p.parseNumber() ||
			p.parseKeywords() ||
			p.parseUnquotedString() ||
			p.parseRegex()
	}
	p.parseWhitespaceAndSkipComments(true)

	return processed, nil
}

// parseWhitespaceAndSkipComments implements spec.md §4.9: whitespace and
// comments interleave freely, so they're consumed in a loop until neither
// makes progress.
func (p *parser) parseWhitespaceAndSkipComments(skipNewline bool) bool {
	start := p.i
	p.parseWhitespace(skipNewline)
	for {
		changed := p.parseComment()
		if changed {
			changed = p.parseWhitespace(skipNewline)
		}
		if !changed {
			break
		}
	}
	return p.i > start
}

// parseWhitespace consumes a run of ASCII and special whitespace, writing
// special whitespace out as a single normalized space (spec.md §3).
func (p *parser) parseWhitespace(skipNewline bool) bool {
	start := p.i
	runStart := p.i
	var ws strings.Builder

	isW := isWhitespace
	if !skipNewline {
		isW = isWhitespaceExceptNewline
	}

	for !p.atEnd() && (isW(p.text[p.i]) || isSpecialWhitespace(p.text[p.i])) {
		if p.exceedsWindow(runStart) {
			break
		}
		if isSpecialWhitespace(p.text[p.i]) {
			ws.WriteRune(' ')
		} else {
			ws.WriteRune(p.text[p.i])
		}
		p.advance()
	}

	if ws.Len() > 0 {
		p.out.WriteString(ws.String())
		return true
	}
	return p.i > start
}

// parseComment implements spec.md §4.9's comment stripping: block and line
// comments are recognized and discarded without emitting anything.
func (p *parser) parseComment() bool {
	if p.i+1 >= len(p.text) {
		return false
	}
	switch {
	case p.text[p.i] == codeSlash && p.text[p.i+1] == codeAsterisk:
		for !p.atEnd() && !p.atEndOfBlockComment() {
			p.advance()
		}
		if p.i+2 <= len(p.text) {
			p.i += 2
		}
		return true
	case p.text[p.i] == codeSlash && p.text[p.i+1] == codeSlash:
		for !p.atEnd() && p.text[p.i] != codeNewline {
			p.advance()
		}
		return true
	}
	return false
}

// parseNewlineDelimitedJSON implements spec.md §4.1's NDJSON handling: once
// the driver decides the input is a sequence of values rather than one,
// every further value is comma-joined and the whole thing wrapped in an
// array.
func (p *parser) parseNewlineDelimitedJSON() error {
	initial := true
	processedValue := true

	for processedValue {
		if !initial {
			if !p.emitRune(codeComma) {
				p.insertBeforeTrailingWhitespace(",")
			}
		} else {
			initial = false
		}

		var err error
		processedValue, err = p.parseValue()
		if err != nil {
			// A value in the NDJSON stream that can't be repaired just ends
			// the stream here rather than failing the whole document.
			processedValue = false
		}
	}

	if p.bufErr != nil {
		return nil
	}

	p.stripLast(",", false)
	p.out.set(fmt.Sprintf("[\n%s\n]", p.out.String()))
	return nil
}

// endsWithCommaOrNewline reports whether text's last non-whitespace
// character is a comma or newline that isn't actually the last character
// inside a still-open string (spec.md §4.1's NDJSON trigger condition).
var endsWithStringCommaRe = regexp.MustCompile(`"[ \t\r]*[,\n][ \t\r]*$`)

func endsWithCommaOrNewline(text string) bool {
	if len(text) == 0 {
		return false
	}

	runes := []rune(text)
	i := len(runes) - 1
	for i >= 0 && (runes[i] == ' ' || runes[i] == '\t' || runes[i] == '\r') {
		i--
	}
	if i < 0 {
		return false
	}

	if runes[i] == ',' || runes[i] == '\n' {
		trimmed := strings.TrimSpace(text)
		if len(trimmed) > 0 && trimmed[len(trimmed)-1] == '"' {
			return endsWithStringCommaRe.MatchString(text)
		}
		return true
	}
	return false
}

// parseMarkdownCodeBlock implements the supplemental Markdown-fence
// stripping kept from the teacher: a leading/trailing ``` (optionally
// followed by a language tag like json) around the JSON payload is common
// in LLM output and is silently dropped rather than treated as garbage.
func parseMarkdownCodeBlock(p *parser, blocks []string) bool {
	if skipMarkdownCodeBlock(p, blocks) {
		if !p.atEnd() && isFunctionNameCharStart(p.text[p.i]) {
			for !p.atEnd() && isFunctionNameChar(p.text[p.i]) {
				p.advance()
			}
		}
		for !p.atEnd() && (isWhitespace(p.text[p.i]) || isSpecialWhitespace(p.text[p.i])) {
			if isWhitespace(p.text[p.i]) {
				p.out.WriteRune(p.text[p.i])
			} else {
				p.out.WriteRune(' ')
			}
			p.advance()
		}
		return true
	}
	return false
}

func skipMarkdownCodeBlock(p *parser, blocks []string) bool {
	p.parseWhitespace(true)

	for _, block := range blocks {
		if p.consumeLiteral(block) {
			return true
		}
	}
	return false
}
