package javaparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Tokenize_kindSequence(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expect    []TokenKind
		expectErr bool
	}{
		{name: "empty input", input: "", expect: []TokenKind{TokEOF}},
		{name: "class header", input: "class Test {}", expect: []TokenKind{
			TokClass, TokIdentifier, TokLBrace, TokRBrace, TokEOF,
		}},
		{name: "line comment retained as a token", input: "// hi\nint x;", expect: []TokenKind{
			TokLineComment, TokInt, TokIdentifier, TokSemi, TokEOF,
		}},
		{name: "javadoc vs plain block comment", input: "/** doc */ /* plain */", expect: []TokenKind{
			TokJavadocComment, TokBlockComment, TokEOF,
		}},
		{name: "binary int literal with long suffix", input: "0b1010_1100L", expect: []TokenKind{
			TokLongLiteral, TokEOF,
		}},
		{name: "hex int literal", input: "0xCAFE_BABE", expect: []TokenKind{
			TokIntegerLiteral, TokEOF,
		}},
		{name: "scientific notation double, not split into keyword-like pieces", input: "3.303e+23", expect: []TokenKind{
			TokDoubleLiteral, TokEOF,
		}},
		{name: "float suffix", input: "1.5f", expect: []TokenKind{TokFloatLiteral, TokEOF}},
		{name: "text block", input: "\"\"\"\nhello\n\"\"\"", expect: []TokenKind{TokTextBlock, TokEOF}},
		{name: "string literal with escapes", input: `"a\nb\"c"`, expect: []TokenKind{TokStringLiteral, TokEOF}},
		{name: "char literal with unicode escape", input: "'\\u0041'", expect: []TokenKind{TokCharLiteral, TokEOF}},
		{name: "arrow and colon-colon", input: "x -> y::z", expect: []TokenKind{
			TokIdentifier, TokArrow, TokIdentifier, TokColonColon, TokIdentifier, TokEOF,
		}},
		{name: "ellipsis varargs", input: "int... xs", expect: []TokenKind{
			TokInt, TokEllipsis, TokIdentifier, TokEOF,
		}},
		{name: "nested generics closing angle brackets lex as shift operator", input: "List<List<String>>", expect: []TokenKind{
			TokIdentifier, TokLess, TokIdentifier, TokLess, TokIdentifier, TokRShift, TokEOF,
		}},
		{name: "contextual keywords lex as plain identifiers", input: "var record sealed yield", expect: []TokenKind{
			TokIdentifier, TokIdentifier, TokIdentifier, TokIdentifier, TokEOF,
		}},
		{name: "unterminated string errors", input: `"abc`, expectErr: true},
		{name: "unterminated block comment errors", input: `/* abc`, expectErr: true},
		{name: "invalid character errors", input: "#", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			toks, err := Tokenize(NewSource(tc.input))
			if tc.expectErr {
				assert.Error(err)
				return
			}
			if !assert.NoError(err) {
				return
			}
			var kinds []TokenKind
			for _, tok := range toks {
				kinds = append(kinds, tok.Kind)
			}
			assert.Equal(tc.expect, kinds)
		})
	}
}

func Test_Tokenize_spansCoverSource(t *testing.T) {
	assert := assert.New(t)
	src := NewSource("int x = 1;")
	toks, err := Tokenize(src)
	assert.NoError(err)

	for i := 0; i+1 < len(toks); i++ {
		assert.LessOrEqual(toks[i].End(), toks[i+1].Start, "token %d must not overlap token %d", i, i+1)
	}
	last := toks[len(toks)-1]
	assert.Equal(TokEOF, last.Kind)
	assert.Equal(uint32(len(src.Text())), last.Start)
}

func Test_Tokenize_alwaysEndsInExactlyOneEOF(t *testing.T) {
	assert := assert.New(t)
	for _, input := range []string{"", "class A {}", "   \n\t  ", "// comment only"} {
		toks, err := Tokenize(NewSource(input))
		assert.NoError(err)
		eofCount := 0
		for i, tok := range toks {
			if tok.Kind == TokEOF {
				eofCount++
				assert.Equal(len(toks)-1, i, "EOF must be the final token")
			}
		}
		assert.Equal(1, eofCount, "input %q", input)
	}
}
