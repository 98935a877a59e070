package javaparse

import (
	"strings"
	"unicode"
)

// lexMode is the lexer's scanning mode.
type lexMode int

const (
	modeDefault lexMode = iota
	modeIdentifier
	modeLineComment
	modeBlockComment
	modeString
	modeChar
	modeTextBlock
)

// punctuatorRule is one entry of the longest-match punctuator table (spec
// §4.2: "the tokens ->, ::, ..., @, ?, : are emitted as their own kinds").
type punctuatorRule struct {
	lexeme string
	kind   TokenKind
}

// Ordered longest-first within each starting character so the greedy
// longest-match scan (see matchPunctuator) never needs to backtrack.
var punctuatorRules = []punctuatorRule{
	{">>>=", TokURShiftEq},
	{">>>", TokURShift},
	{">>=", TokRShiftEq},
	{"<<=", TokLShiftEq},
	{"...", TokEllipsis},
	{"->", TokArrow},
	{"::", TokColonColon},
	{"==", TokEq},
	{"!=", TokNotEq},
	{"<=", TokLessEq},
	{">=", TokGreaterEq},
	{"&&", TokAndAnd},
	{"||", TokOrOr},
	{"++", TokPlusPlus},
	{"--", TokMinusMinus},
	{"+=", TokPlusEq},
	{"-=", TokMinusEq},
	{"*=", TokStarEq},
	{"/=", TokSlashEq},
	{"%=", TokPercentEq},
	{"&=", TokAndEq},
	{"|=", TokOrEq},
	{"^=", TokCaretEq},
	{"<<", TokLShift},
	{">>", TokRShift},
	{"{", TokLBrace},
	{"}", TokRBrace},
	{"(", TokLParen},
	{")", TokRParen},
	{"[", TokLBracket},
	{"]", TokRBracket},
	{";", TokSemi},
	{",", TokComma},
	{".", TokDot},
	{"@", TokAt},
	{"?", TokQuestion},
	{":", TokColon},
	{"!", TokNot},
	{"~", TokTilde},
	{"&", TokAnd},
	{"|", TokOr},
	{"^", TokCaret},
	{"%", TokPercent},
	{"=", TokAssign},
	{"<", TokLess},
	{">", TokGreater},
	{"+", TokPlus},
	{"-", TokMinus},
	{"*", TokStar},
	{"/", TokSlash},
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Tokenize lexes the given source buffer into a flat Token stream,
// terminated by exactly one EOF token (spec §4.2 contract). The lexer is a
// pure total function of (source, version): version gates only the text
// block literal, the one lexical form introduced after Java 8.
func Tokenize(src *Source, version ...Version) ([]Token, error) {
	v := DefaultVersion
	if len(version) > 0 {
		v = version[0]
	}
	l := &lexerState{src: src, text: src.Text(), version: v}
	return l.run()
}

type lexerState struct {
	src     *Source
	text    string
	pos     uint32
	toks    []Token
	version Version
}

func (l *lexerState) run() ([]Token, error) {
	for l.pos < uint32(len(l.text)) {
		if err := l.lexOne(); err != nil {
			return nil, err
		}
	}
	l.toks = append(l.toks, Token{Kind: TokEOF, Start: l.pos, Length: 0})
	return l.toks, nil
}

func (l *lexerState) rest() string {
	return l.text[l.pos:]
}

func (l *lexerState) peekByte() (byte, bool) {
	if int(l.pos) >= len(l.text) {
		return 0, false
	}
	return l.text[l.pos], true
}

func (l *lexerState) lexError(message string) error {
	pos := l.src.Position(l.pos)
	return LexError{Offset: l.pos, Line: pos.Line, Column: pos.Column, Message: message}
}

func (l *lexerState) emit(kind TokenKind, start uint32) {
	l.toks = append(l.toks, Token{Kind: kind, Start: start, Length: l.pos - start, Text: l.text[start:l.pos]})
}

func (l *lexerState) lexOne() error {
	b, _ := l.peekByte()

	switch {
	case b == ' ' || b == '\t' || b == '\f' || b == '\n' || b == '\r':
		l.pos++
		return nil
	case strings.HasPrefix(l.rest(), "//"):
		return l.lexLineComment()
	case strings.HasPrefix(l.rest(), "/**") && !strings.HasPrefix(l.rest(), "/**/"):
		return l.lexBlockComment(true)
	case strings.HasPrefix(l.rest(), "/*"):
		return l.lexBlockComment(false)
	case strings.HasPrefix(l.rest(), `"""`):
		if !l.version.supports(featureTextBlocks) {
			return l.lexError("text blocks are not available at this language version")
		}
		return l.lexTextBlock()
	case b == '"':
		return l.lexString()
	case b == '\'':
		return l.lexChar()
	case b >= '0' && b <= '9':
		return l.lexNumber()
	}

	r, size := decodeRune(l.rest())
	if isIdentStart(r) {
		return l.lexIdentifier()
	}

	if kind, lexeme, ok := matchPunctuator(l.rest()); ok {
		start := l.pos
		l.pos += uint32(len(lexeme))
		l.emit(kind, start)
		return nil
	}

	_ = size
	return l.lexError("invalid character '" + string(r) + "'")
}

func decodeRune(s string) (rune, int) {
	for i, r := range s {
		_ = i
		return r, len(string(r))
	}
	return 0, 0
}

func matchPunctuator(s string) (TokenKind, string, bool) {
	for _, rule := range punctuatorRules {
		if strings.HasPrefix(s, rule.lexeme) {
			return rule.kind, rule.lexeme, true
		}
	}
	return 0, "", false
}

func (l *lexerState) lexLineComment() error {
	start := l.pos
	l.pos += 2
	for int(l.pos) < len(l.text) && l.text[l.pos] != '\n' {
		l.pos++
	}
	l.emit(TokLineComment, start)
	return nil
}

func (l *lexerState) lexBlockComment(javadoc bool) error {
	start := l.pos
	l.pos += 2
	if javadoc {
		l.pos++ // consume the second '*' of '/**'
	}
	closed := false
	for int(l.pos)+1 < len(l.text) {
		if l.text[l.pos] == '*' && l.text[l.pos+1] == '/' {
			l.pos += 2
			closed = true
			break
		}
		l.pos++
	}
	if !closed {
		return l.lexError("unterminated block comment; missing '*/'")
	}
	kind := TokBlockComment
	if javadoc {
		kind = TokJavadocComment
	}
	l.emit(kind, start)
	return nil
}

func (l *lexerState) lexIdentifier() error {
	start := l.pos
	r, size := decodeRune(l.rest())
	l.pos += uint32(size)
	for {
		r, size = decodeRune(l.rest())
		if size == 0 || !isIdentContinue(r) {
			break
		}
		l.pos += uint32(size)
	}
	text := l.text[start:l.pos]
	// the contextual keyword non-sealed is one identifier token, not
	// `non`, `-`, `sealed`.
	if text == "non" && strings.HasPrefix(l.rest(), "-sealed") {
		if r, size := decodeRune(l.text[l.pos+7:]); size == 0 || !isIdentContinue(r) {
			l.pos += 7
			text = l.text[start:l.pos]
		}
	}
	if kind, ok := keywordTable[text]; ok {
		l.emit(kind, start)
		return nil
	}
	l.emit(TokIdentifier, start)
	return nil
}

// lexString scans a double-quoted string literal on a single logical line
// (spec §4.2). Escapes follow the same rules as character literals.
func (l *lexerState) lexString() error {
	start := l.pos
	l.pos++ // opening quote
	for {
		b, ok := l.peekByte()
		if !ok || b == '\n' {
			return l.lexError("unterminated string literal; missing closing '\"'")
		}
		if b == '"' {
			l.pos++
			break
		}
		if b == '\\' {
			if err := l.consumeEscape(); err != nil {
				return err
			}
			continue
		}
		l.pos++
	}
	l.emit(TokStringLiteral, start)
	return nil
}

func (l *lexerState) lexChar() error {
	start := l.pos
	l.pos++ // opening quote
	b, ok := l.peekByte()
	if !ok {
		return l.lexError("unterminated char literal; missing closing '\\''")
	}
	if b == '\\' {
		if err := l.consumeEscape(); err != nil {
			return err
		}
	} else if b == '\'' {
		return l.lexError("empty char literal")
	} else {
		_, size := decodeRune(l.rest())
		l.pos += uint32(size)
	}
	b, ok = l.peekByte()
	if !ok || b != '\'' {
		return l.lexError("unterminated char literal; missing closing '\\''")
	}
	l.pos++
	l.emit(TokCharLiteral, start)
	return nil
}

// consumeEscape consumes a backslash escape sequence: standard (\n \r \t \b
// \f \' \" \\), octal (1-3 digits, capped so the value is <= 0o377), or
// unicode (\u followed by exactly four hex digits).
func (l *lexerState) consumeEscape() error {
	l.pos++ // backslash
	b, ok := l.peekByte()
	if !ok {
		return l.lexError("unterminated escape sequence")
	}

	switch b {
	case 'n', 'r', 't', 'b', 'f', '\'', '"', '\\':
		l.pos++
		return nil
	case 'u':
		l.pos++
		for i := 0; i < 4; i++ {
			b, ok := l.peekByte()
			if !ok || !isHexDigit(b) {
				return l.lexError("invalid unicode escape; expected exactly four hex digits")
			}
			l.pos++
		}
		return nil
	case '0', '1', '2', '3', '4', '5', '6', '7':
		// octal escape: 1-3 digits, capped at 0o377.
		first := b
		l.pos++
		n := 1
		maxDigits := 3
		if first > '3' {
			maxDigits = 2
		}
		for n < maxDigits {
			b, ok := l.peekByte()
			if !ok || b < '0' || b > '7' {
				break
			}
			l.pos++
			n++
		}
		return nil
	default:
		return l.lexError("invalid escape sequence '\\" + string(b) + "'")
	}
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// lexTextBlock scans a `"""`-delimited text block (spec §4.2). Escapes
// within follow the same rules as lexString.
func (l *lexerState) lexTextBlock() error {
	start := l.pos
	l.pos += 3
	b, ok := l.peekByte()
	for ok && (b == ' ' || b == '\t') {
		l.pos++
		b, ok = l.peekByte()
	}
	if !ok || (b != '\n' && b != '\r') {
		return l.lexError("text block must begin with a line terminator after the opening '\"\"\"'")
	}

	for {
		if strings.HasPrefix(l.rest(), `"""`) {
			l.pos += 3
			l.emit(TokTextBlock, start)
			return nil
		}
		b, ok := l.peekByte()
		if !ok {
			return l.lexError(`unterminated text block; missing closing """`)
		}
		if b == '\\' {
			if err := l.consumeEscape(); err != nil {
				return err
			}
			continue
		}
		l.pos++
	}
}

// lexNumber scans a numeric literal: decimal, hex (0x/0X), binary (0b/0B),
// or octal (leading 0 then octal digits), with underscore separators, an
// optional floating-point fraction/exponent, and an optional type suffix
// (spec §4.2).
//
// The scientific-notation rule is evaluated before any fallback that could
// misclassify a bare 'd'/'e' as a keyword start (spec §9): digits, '.', 'e'/
// 'E' with optional sign, and suffix letters are all consumed as part of
// the same greedy numeric scan, so "3.303e+23" never breaks into separate
// identifier-like pieces.
func (l *lexerState) lexNumber() error {
	start := l.pos
	isFloat := false

	if l.rest()[0] == '0' && len(l.rest()) > 1 && (l.rest()[1] == 'x' || l.rest()[1] == 'X') {
		l.pos += 2
		l.consumeDigitsUnderscored(isHexDigitOrUnderscore)
		return l.finishNumber(start, false)
	}
	if l.rest()[0] == '0' && len(l.rest()) > 1 && (l.rest()[1] == 'b' || l.rest()[1] == 'B') {
		l.pos += 2
		l.consumeDigitsUnderscored(isBinaryDigitOrUnderscore)
		return l.finishNumber(start, false)
	}

	l.consumeDigitsUnderscored(isDecimalDigitOrUnderscore)

	if b, ok := l.peekByte(); ok && b == '.' {
		// lookahead: don't swallow "1.method()" style... Java doesn't have
		// that ambiguity for numeric literals followed by '.', a digit
		// after '.' or another '.' always starts a fractional part here.
		isFloat = true
		l.pos++
		l.consumeDigitsUnderscored(isDecimalDigitOrUnderscore)
	}

	if b, ok := l.peekByte(); ok && (b == 'e' || b == 'E') {
		save := l.pos
		l.pos++
		if b, ok := l.peekByte(); ok && (b == '+' || b == '-') {
			l.pos++
		}
		digitsStart := l.pos
		l.consumeDigitsUnderscored(isDecimalDigitOrUnderscore)
		if l.pos == digitsStart {
			l.pos = save // not actually an exponent; back off
		} else {
			isFloat = true
		}
	}

	return l.finishNumber(start, isFloat)
}

func (l *lexerState) finishNumber(start uint32, isFloat bool) error {
	b, ok := l.peekByte()
	kind := TokIntegerLiteral

	switch {
	case ok && (b == 'l' || b == 'L'):
		l.pos++
		kind = TokLongLiteral
	case ok && (b == 'f' || b == 'F'):
		l.pos++
		kind = TokFloatLiteral
	case ok && (b == 'd' || b == 'D'):
		l.pos++
		kind = TokDoubleLiteral
	case isFloat:
		kind = TokDoubleLiteral
	}

	l.emit(kind, start)
	return nil
}

func (l *lexerState) consumeDigitsUnderscored(pred func(byte) bool) {
	for {
		b, ok := l.peekByte()
		if !ok || !pred(b) {
			break
		}
		l.pos++
	}
}

func isDecimalDigitOrUnderscore(b byte) bool { return (b >= '0' && b <= '9') || b == '_' }
func isHexDigitOrUnderscore(b byte) bool     { return isHexDigit(b) || b == '_' }
func isBinaryDigitOrUnderscore(b byte) bool  { return b == '0' || b == '1' || b == '_' }
