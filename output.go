package laxjson

import "strings"

// outputBuilder is the append-only output buffer spec.md §2.2 calls the
// Output Builder. Beyond plain appends, it exposes the three back-patch
// primitives the design requires: stripping the last occurrence of a
// substring, inserting text before trailing whitespace, and removing a
// fixed-width span at an index. These are first-class operations (rather
// than the teacher's inline string-surgery at each call site) so the window
// bound in spec.md §5 has one place to enforce it.
type outputBuilder struct {
	b strings.Builder
}

func (o *outputBuilder) WriteRune(r rune)     { o.b.WriteRune(r) }
func (o *outputBuilder) WriteString(s string) { o.b.WriteString(s) }
func (o *outputBuilder) WriteByte(c byte)     { _ = o.b.WriteByte(c) }
func (o *outputBuilder) Len() int             { return o.b.Len() }
func (o *outputBuilder) String() string       { return o.b.String() }

// set replaces the buffer's contents wholesale; used after computing a
// back-patched string.
func (o *outputBuilder) set(s string) {
	o.b.Reset()
	o.b.WriteString(s)
}

// stripLast removes the last occurrence of sub from the output. When
// stripRemaining is true, everything from that occurrence onward is
// discarded instead of just sub itself (used to drop a trailing comma and
// anything repair had already emitted after it).
func (p *parser) stripLast(sub string, stripRemaining bool) {
	before := p.out.String()
	idx := strings.LastIndex(before, sub)
	if idx == -1 {
		return
	}
	p.noteBackpatch(len(before) - idx)

	var after string
	if stripRemaining {
		after = before[:idx]
	} else {
		after = before[:idx] + before[idx+len(sub):]
	}
	p.out.set(after)
}

// insertBeforeTrailingWhitespace inserts text just before any run of ASCII
// whitespace at the end of the output, preserving pretty-printing (spec.md
// §9's design note).
func (p *parser) insertBeforeTrailingWhitespace(insert string) {
	before := p.out.String()
	if len(before) == 0 || !isWhitespace(rune(before[len(before)-1])) {
		p.out.WriteString(insert)
		return
	}

	idx := len(before) - 1
	for idx >= 0 && isWhitespace(rune(before[idx])) {
		idx--
	}
	p.noteBackpatch(len(before) - (idx + 1))
	p.out.set(before[:idx+1] + insert + before[idx+1:])
}

// removeAt deletes count bytes starting at start.
func (p *parser) removeAt(start, count int) {
	before := p.out.String()
	p.noteBackpatch(len(before) - start)
	p.out.set(before[:start] + before[start+count:])
}

// noteBackpatch latches a BufferExceeded error the first time a back-patch
// reaches further back into the output than the configured window allows
// (spec.md §5's "back-patch operations reach back at most O(window)").
func (p *parser) noteBackpatch(reach int) {
	if p.limit > 0 && reach > p.limit && p.bufErr == nil {
		p.bufErr = newBufferExceededError(p.i)
	}
}

// insertBeforeLastWhitespace is the string-level primitive used while a
// string literal is still being built in a local strings.Builder (str),
// before it has been committed to the shared output buffer. It mirrors
// insertBeforeTrailingWhitespace but operates on a detached string so the
// string recognizer can call it without perturbing the window bookkeeping
// (the insert lands inside content that hasn't been counted as output yet).
func insertBeforeLastWhitespace(s, insert string) string {
	if len(s) == 0 || !isWhitespace(rune(s[len(s)-1])) {
		return s + insert
	}
	idx := len(s) - 1
	for idx >= 0 && isWhitespace(rune(s[idx])) {
		idx--
	}
	return s[:idx+1] + insert + s[idx+1:]
}
