package javaparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Source_Position(t *testing.T) {
	testCases := []struct {
		name   string
		text   string
		offset uint32
		expect Position
	}{
		{name: "start of single line", text: "class Foo {}", offset: 0, expect: Position{Line: 1, Column: 1}},
		{name: "mid first line", text: "class Foo {}", offset: 6, expect: Position{Line: 1, Column: 7}},
		{name: "start of second line, LF", text: "a\nb", offset: 2, expect: Position{Line: 2, Column: 1}},
		{name: "start of second line, CRLF", text: "a\r\nb", offset: 3, expect: Position{Line: 2, Column: 1}},
		{name: "start of second line, bare CR", text: "a\rb", offset: 2, expect: Position{Line: 2, Column: 1}},
		{name: "astral plane rune counts as two UTF-16 units", text: "\U0001F600x", offset: 4, expect: Position{Line: 1, Column: 3}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			src := NewSource(tc.text)
			assert.Equal(tc.expect, src.Position(tc.offset))
		})
	}
}

func Test_Source_LineText(t *testing.T) {
	src := NewSource("first\nsecond\r\nthird")
	assert.Equal(t, "first", src.LineText(0))
	assert.Equal(t, "second", src.LineText(7))
	assert.Equal(t, "third", src.LineText(15))
}

func Test_Source_Slice(t *testing.T) {
	src := NewSource("class Foo {}")
	assert.Equal(t, "Foo", src.Slice(6, 9))
}
