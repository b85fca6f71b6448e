package parser

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokString
	tokNumber
	tokLParen
	tokRParen
	tokComma
	tokAssign
	tokStar
	tokDoubleStar
	tokOperator
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokIdent:
		return "identifier"
	case tokString:
		return "string"
	case tokNumber:
		return "number"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokComma:
		return "','"
	case tokAssign:
		return "'='"
	case tokStar:
		return "'*'"
	case tokDoubleStar:
		return "'**'"
	default:
		return "operator"
	}
}

type token struct {
	kind tokenKind
	text string
	// value is the decoded string body for tokString.
	value string
	pos   int
}

type lexer struct {
	src string
	pos int
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlnum(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// stringPrefix reports the length of a u or r prefix directly followed by a
// quote, and whether it makes the literal raw.
func stringPrefix(src string) (n int, raw bool) {
	if len(src) < 2 || (src[1] != '"' && src[1] != '\'') {
		return 0, false
	}
	switch src[0] {
	case 'u', 'U':
		return 1, false
	case 'r', 'R':
		return 1, true
	}
	return 0, false
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case ' ', '\t', '\r', '\n', '\f', '\v':
			l.pos++
		default:
			return
		}
	}
}

// tokenize scans the whole input up front; the grammar is small enough that
// the parser only needs one token of lookahead over a slice.
func tokenize(src string) ([]token, error) {
	l := &lexer{src: src}
	var out []token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
		if tok.kind == tokEOF {
			return out, nil
		}
	}
}

func (l *lexer) next() (token, error) {
	l.skipSpace()
	start := l.pos
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, pos: start}, nil
	}

	c := l.src[l.pos]
	switch {
	case isIdentStart(c):
		if n, raw := stringPrefix(l.src[l.pos:]); n > 0 {
			return l.str(n, raw)
		}
		for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
			l.pos++
		}
		return token{kind: tokIdent, text: l.src[start:l.pos], pos: start}, nil
	case isDigit(c) || (c == '.' && l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1])):
		return l.number()
	case c == '"' || c == '\'':
		return l.str(0, false)
	case c == '(':
		l.pos++
		return token{kind: tokLParen, text: "(", pos: start}, nil
	case c == ')':
		l.pos++
		return token{kind: tokRParen, text: ")", pos: start}, nil
	case c == ',':
		l.pos++
		return token{kind: tokComma, text: ",", pos: start}, nil
	case c == '*':
		if strings.HasPrefix(l.src[l.pos:], "**") {
			l.pos += 2
			return token{kind: tokDoubleStar, text: "**", pos: start}, nil
		}
		l.pos++
		return token{kind: tokStar, text: "*", pos: start}, nil
	case c == '=':
		if strings.HasPrefix(l.src[l.pos:], "==") {
			l.pos += 2
			return token{kind: tokOperator, text: "==", pos: start}, nil
		}
		l.pos++
		return token{kind: tokAssign, text: "=", pos: start}, nil
	}

	// Anything else is an operator or punctuation the grammar never accepts;
	// keep the whole rune so error messages stay readable.
	_, size := utf8.DecodeRuneInString(l.src[l.pos:])
	l.pos += size
	return token{kind: tokOperator, text: l.src[start:l.pos], pos: start}, nil
}

func (l *lexer) number() (token, error) {
	start := l.pos
	if l.src[l.pos] == '0' && l.pos+1 < len(l.src) && strings.IndexByte("xXoObB", l.src[l.pos+1]) >= 0 {
		// Prefixed integer; the digits are validated when converted.
		l.pos += 2
		for l.pos < len(l.src) && (isAlnum(l.src[l.pos]) || l.src[l.pos] == '_') {
			l.pos++
		}
		return token{kind: tokNumber, text: l.src[start:l.pos], pos: start}, nil
	}

	l.digits()
	if l.pos < len(l.src) && l.src[l.pos] == '.' {
		l.pos++
		l.digits()
	}
	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		mark := l.pos
		l.pos++
		if l.pos < len(l.src) && (l.src[l.pos] == '+' || l.src[l.pos] == '-') {
			l.pos++
		}
		if l.pos >= len(l.src) || !isDigit(l.src[l.pos]) {
			// "1e" followed by a name: leave the 'e' for the next token.
			l.pos = mark
		} else {
			l.digits()
		}
	}
	return token{kind: tokNumber, text: l.src[start:l.pos], pos: start}, nil
}

// digits also consumes '_' separators; their placement is checked later.
func (l *lexer) digits() {
	for l.pos < len(l.src) && (isDigit(l.src[l.pos]) || l.src[l.pos] == '_') {
		l.pos++
	}
}

// str scans a quoted literal whose optional u/r prefix is prefixLen bytes
// long. Raw literals keep backslashes, but an escaped quote still does not
// end the literal.
func (l *lexer) str(prefixLen int, raw bool) (token, error) {
	start := l.pos
	l.pos += prefixLen
	quote := l.src[l.pos]
	l.pos++

	var b strings.Builder
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == quote:
			l.pos++
			return token{kind: tokString, text: l.src[start:l.pos], value: b.String(), pos: start}, nil
		case c == '\n':
			return token{}, newError(ErrMalformed, l.pos, "newline inside string literal")
		case c == '\\' && raw:
			if l.pos+1 >= len(l.src) {
				return token{}, newError(ErrMalformed, start, "unterminated string literal")
			}
			if l.src[l.pos+1] == '\n' {
				return token{}, newError(ErrMalformed, l.pos+1, "newline inside string literal")
			}
			b.WriteString(l.src[l.pos : l.pos+2])
			l.pos += 2
		case c == '\\':
			if err := l.escape(&b); err != nil {
				return token{}, err
			}
		default:
			b.WriteByte(c)
			l.pos++
		}
	}
	return token{}, newError(ErrMalformed, start, "unterminated string literal")
}

func (l *lexer) escape(b *strings.Builder) error {
	at := l.pos
	l.pos++
	if l.pos >= len(l.src) {
		return newError(ErrMalformed, at, "unterminated string literal")
	}

	c := l.src[l.pos]
	l.pos++
	switch c {
	case '\n':
		return newError(ErrMalformed, l.pos-1, "newline inside string literal")
	case '\\', '\'', '"':
		b.WriteByte(c)
	case 'n':
		b.WriteByte('\n')
	case 't':
		b.WriteByte('\t')
	case 'r':
		b.WriteByte('\r')
	case '0':
		b.WriteByte(0)
	case 'x':
		return l.hexEscape(b, at, 2)
	case 'u':
		return l.hexEscape(b, at, 4)
	case 'U':
		return l.hexEscape(b, at, 8)
	default:
		// Unknown escapes keep their backslash.
		b.WriteByte('\\')
		b.WriteByte(c)
	}
	return nil
}

func (l *lexer) hexEscape(b *strings.Builder, at, width int) error {
	if l.pos+width > len(l.src) {
		return newError(ErrMalformed, at, "truncated escape sequence")
	}
	v, err := strconv.ParseUint(l.src[l.pos:l.pos+width], 16, 32)
	if err != nil {
		return newError(ErrMalformed, at, "invalid escape sequence %q", l.src[at:l.pos+width])
	}
	if v > utf8.MaxRune {
		return newError(ErrMalformed, at, "escape sequence %q out of range", l.src[at:l.pos+width])
	}
	l.pos += width
	b.WriteRune(rune(v))
	return nil
}
