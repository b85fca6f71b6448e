// Package parser turns a single action line such as
//
//	get_weather(city="Paris")
//
// into an entity.ParsedAction. It recognizes exactly one shape, a call with
// constant keyword arguments, and never evaluates any part of the input.
package parser

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"travel-agent/internal/domain/entity"
)

type parser struct {
	toks []token
	i    int
}

// Parse parses one action line. Leading and trailing whitespace is ignored;
// the call must span the rest of the line. A repeated keyword is rejected
// with ErrDuplicateKeyword.
func Parse(line string) (entity.ParsedAction, error) {
	line = strings.TrimSpace(line)
	if !utf8.ValidString(line) {
		return entity.ParsedAction{}, newError(ErrMalformed, invalidUTF8At(line), "invalid UTF-8 in action")
	}
	toks, err := tokenize(line)
	if err != nil {
		return entity.ParsedAction{}, err
	}
	p := &parser{toks: toks}
	return p.call()
}

func invalidUTF8At(s string) int {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return len(s)
}

func (p *parser) peek() token {
	return p.toks[p.i]
}

func (p *parser) peekAt(offset int) token {
	if p.i+offset >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.i+offset]
}

func (p *parser) advance() token {
	tok := p.toks[p.i]
	if tok.kind != tokEOF {
		p.i++
	}
	return tok
}

func (p *parser) expect(kind tokenKind) (token, error) {
	tok := p.peek()
	if tok.kind != kind {
		return tok, unexpected(tok, kind.String())
	}
	return p.advance(), nil
}

func unexpected(tok token, want string) *ParseError {
	if tok.kind == tokEOF {
		return newError(ErrMalformed, tok.pos, "expected %s, got end of input", want)
	}
	return newError(ErrMalformed, tok.pos, "expected %s, got %q", want, tok.text)
}

func (p *parser) call() (entity.ParsedAction, error) {
	name, err := p.expect(tokIdent)
	if err != nil {
		return entity.ParsedAction{}, err
	}
	if _, err := p.expect(tokLParen); err != nil {
		return entity.ParsedAction{}, err
	}

	args, err := p.arguments()
	if err != nil {
		return entity.ParsedAction{}, err
	}

	if tok := p.peek(); tok.kind != tokEOF {
		return entity.ParsedAction{}, newError(ErrMalformed, tok.pos, "unexpected %q after closing parenthesis", tok.text)
	}

	return entity.ParsedAction{Name: name.text, Arguments: args}, nil
}

// arguments consumes the argument list up to and including ')'.
func (p *parser) arguments() (entity.Arguments, error) {
	args := entity.Arguments{}
	for {
		tok := p.peek()
		switch tok.kind {
		case tokRParen:
			p.advance()
			return args, nil
		case tokEOF:
			return nil, newError(ErrMalformed, tok.pos, "missing closing parenthesis")
		case tokStar, tokDoubleStar:
			return nil, newError(ErrVariadic, tok.pos, "%s%s", tok.text, p.peekAt(1).text)
		}

		if tok.kind == tokAssign {
			return nil, newError(ErrMalformed, tok.pos, "missing keyword before '='")
		}
		if tok.kind != tokIdent || p.peekAt(1).kind != tokAssign {
			return nil, newError(ErrPositional, tok.pos, "argument starting with %q", tok.text)
		}
		key := p.advance().text
		p.advance()

		if _, dup := args[key]; dup {
			return nil, newError(ErrDuplicateKeyword, tok.pos, "%q", key)
		}

		val, err := p.literal()
		if err != nil {
			return nil, err
		}
		args[key] = val

		switch next := p.peek(); next.kind {
		case tokComma:
			p.advance()
		case tokRParen:
		case tokLParen, tokOperator, tokStar, tokDoubleStar:
			// The value continues as an expression: a call, attribute access,
			// subscript or arithmetic.
			return nil, newError(ErrNonConstant, next.pos, "value of %q is an expression", key)
		default:
			return nil, unexpected(next, "',' or ')'")
		}
	}
}

func (p *parser) literal() (entity.Literal, error) {
	tok := p.peek()
	switch tok.kind {
	case tokString:
		p.advance()
		// Adjacent literals concatenate: "a" 'b' is "ab".
		value := tok.value
		for p.peek().kind == tokString {
			value += p.advance().value
		}
		return entity.StringLiteral(value), nil
	case tokNumber:
		p.advance()
		return numberLiteral(tok.text, tok.pos)
	case tokIdent:
		p.advance()
		switch tok.text {
		case "True", "true":
			return entity.BoolLiteral(true), nil
		case "False", "false":
			return entity.BoolLiteral(false), nil
		case "None", "null":
			return entity.NullLiteral(), nil
		}
		return entity.Literal{}, newError(ErrNonConstant, tok.pos, "%q is a name, not a constant", tok.text)
	case tokOperator:
		if (tok.text == "-" || tok.text == "+") && p.peekAt(1).kind == tokNumber {
			p.advance()
			num := p.advance()
			text := num.text
			if tok.text == "-" {
				text = "-" + text
			}
			return numberLiteral(text, tok.pos)
		}
		if tok.text == "[" || tok.text == "{" || tok.text == "-" || tok.text == "+" || tok.text == "~" {
			return entity.Literal{}, newError(ErrNonConstant, tok.pos, "value starting with %q", tok.text)
		}
	case tokLParen:
		return entity.Literal{}, newError(ErrNonConstant, tok.pos, "parenthesized expression")
	case tokStar, tokDoubleStar:
		return entity.Literal{}, newError(ErrNonConstant, tok.pos, "unpacking expression")
	}
	return entity.Literal{}, unexpected(tok, "a constant value")
}

func numberLiteral(text string, pos int) (entity.Literal, error) {
	digits := strings.TrimLeft(text, "+-")
	if len(digits) > 1 && digits[0] == '0' && strings.IndexByte("xXoObB", digits[1]) >= 0 {
		n, err := strconv.ParseInt(text, 0, 64)
		if err != nil {
			return entity.Literal{}, numberError(err, text, pos)
		}
		return entity.NumberLiteral(float64(n)), nil
	}

	if !separatorsOK(digits) {
		return entity.Literal{}, newError(ErrMalformed, pos, "invalid number %q", text)
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(text, "_", ""), 64)
	if err != nil {
		return entity.Literal{}, numberError(err, text, pos)
	}
	return entity.NumberLiteral(f), nil
}

func numberError(err error, text string, pos int) *ParseError {
	if errors.Is(err, strconv.ErrRange) {
		return newError(ErrMalformed, pos, "number %s out of range", text)
	}
	return newError(ErrMalformed, pos, "invalid number %q", text)
}

// separatorsOK reports whether every '_' in a decimal literal sits between
// two digits.
func separatorsOK(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != '_' {
			continue
		}
		if i == 0 || i == len(s)-1 || !isDigit(s[i-1]) || !isDigit(s[i+1]) {
			return false
		}
	}
	return true
}

// LeadingIdentifier returns the identifier at the start of line, if any,
// without looking at the rest of the call.
func LeadingIdentifier(line string) (string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || !isIdentStart(line[0]) {
		return "", false
	}
	end := 1
	for end < len(line) && isIdentPart(line[end]) {
		end++
	}
	return line[:end], true
}
