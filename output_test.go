package laxjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsertBeforeLastWhitespace(t *testing.T) {
	tests := []struct {
		text         string
		textToInsert string
		expected     string
	}{
		{"abc", "123", "abc123"},
		{"abc ", "123", "abc123 "},
		{"abc  ", "123", "abc123  "},
		{"abc \t\n", "123", "abc123 \t\n"},
		{"abc\n", "123", "abc123\n"},
		{"abc\t", "123", "abc123\t"},
		{"abc\r\n", "123", "abc123\r\n"},
		{"abc \n\t", "123", "abc123 \n\t"},
		{"", "123", "123"},
		{" ", "123", "123 "},
		{"\n", "123", "123\n"},
		{"\t", "123", "123\t"},
	}

	for _, test := range tests {
		t.Run(test.text, func(t *testing.T) {
			result := insertBeforeLastWhitespace(test.text, test.textToInsert)
			assert.Equal(t, test.expected, result)
		})
	}
}

func TestParserStripLast(t *testing.T) {
	p := newParser([]rune("x"), 0)
	p.out.WriteString("abc,")
	p.stripLast(",", false)
	assert.Equal(t, "abc", p.out.String())
}

func TestParserInsertBeforeTrailingWhitespace(t *testing.T) {
	p := newParser([]rune("x"), 0)
	p.out.WriteString("abc \n")
	p.insertBeforeTrailingWhitespace(",")
	assert.Equal(t, "abc, \n", p.out.String())
}

func TestParserRemoveAt(t *testing.T) {
	p := newParser([]rune("x"), 0)
	p.out.WriteString("abcdef")
	p.removeAt(2, 2)
	assert.Equal(t, "abef", p.out.String())
}
