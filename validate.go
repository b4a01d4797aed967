package laxjson

import "github.com/go-json-experiment/json"

// Valid reports whether text is already strict JSON, using the same
// go-json-experiment/json decoder the unquoted-string and regex recognizers
// use for safe encoding elsewhere in this package. Callers can use this to
// skip a repair pass entirely on well-formed input (spec.md §8's idempotence
// invariant: Repair(Valid JSON) == that same JSON).
func Valid(text string) bool {
	var v any
	return json.Unmarshal([]byte(text), &v) == nil
}

// RepairIfInvalid returns text unchanged when it is already valid JSON, and
// otherwise runs [Repair] on it. This mirrors the cheap fast path a caller
// processing mostly-well-formed documents (e.g. validating API responses)
// would want, without paying for a full repair pass when none is needed.
func RepairIfInvalid(text string) (string, error) {
	if Valid(text) {
		return text, nil
	}
	return Repair(text)
}
