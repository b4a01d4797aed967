package laxjson

// parseKeywords recognizes JSON's own keywords and the Python literals a
// lenient producer sometimes leaves behind, per spec.md §4.7. Order matters:
// none of these names is a prefix of another, so there is no ambiguity in
// trying them in sequence.
func (p *parser) parseKeywords() bool {
	return p.parseKeyword("true", "true") ||
		p.parseKeyword("false", "false") ||
		p.parseKeyword("null", "null") ||
		p.parseKeyword("True", "true") ||
		p.parseKeyword("False", "false") ||
		p.parseKeyword("None", "null")
}

// parseKeyword matches name verbatim at the cursor and, on success, emits
// value instead (the JSON spelling).
func (p *parser) parseKeyword(name, value string) bool {
	if !p.consumeLiteral(name) {
		return false
	}
	p.out.WriteString(value)
	return true
}
