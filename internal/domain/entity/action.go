package entity

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type LiteralKind int

const (
	LiteralString LiteralKind = iota
	LiteralNumber
	LiteralBool
	LiteralNull
)

func (k LiteralKind) String() string {
	switch k {
	case LiteralString:
		return "string"
	case LiteralNumber:
		return "number"
	case LiteralBool:
		return "boolean"
	case LiteralNull:
		return "null"
	default:
		return "unknown"
	}
}

// Literal is a constant argument value: exactly one of Str, Num and Bool is
// meaningful, selected by Kind.
type Literal struct {
	Kind LiteralKind
	Str  string
	Num  float64
	Bool bool
}

func StringLiteral(s string) Literal {
	return Literal{Kind: LiteralString, Str: s}
}

func NumberLiteral(f float64) Literal {
	return Literal{Kind: LiteralNumber, Num: f}
}

func BoolLiteral(b bool) Literal {
	return Literal{Kind: LiteralBool, Bool: b}
}

func NullLiteral() Literal {
	return Literal{Kind: LiteralNull}
}

func (l Literal) IsInt() bool {
	return l.Kind == LiteralNumber && math.Abs(l.Num) < 1<<53 && l.Num == math.Trunc(l.Num)
}

// String renders the value the way a tool receives it.
func (l Literal) String() string {
	switch l.Kind {
	case LiteralString:
		return l.Str
	case LiteralNumber:
		if l.IsInt() {
			return strconv.FormatInt(int64(l.Num), 10)
		}
		return strconv.FormatFloat(l.Num, 'g', -1, 64)
	case LiteralBool:
		if l.Bool {
			return "true"
		}
		return "false"
	default:
		return "null"
	}
}

// Canonical renders the value as action source text.
func (l Literal) Canonical() string {
	switch l.Kind {
	case LiteralString:
		return quote(l.Str)
	case LiteralBool:
		if l.Bool {
			return "True"
		}
		return "False"
	case LiteralNull:
		return "None"
	default:
		return l.String()
	}
}

// Equal compares kind and value, ignoring the source spelling of numbers.
func (l Literal) Equal(other Literal) bool {
	if l.Kind != other.Kind {
		return false
	}
	switch l.Kind {
	case LiteralString:
		return l.Str == other.Str
	case LiteralNumber:
		return l.Num == other.Num
	case LiteralBool:
		return l.Bool == other.Bool
	default:
		return true
	}
}

func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case 0:
			b.WriteString(`\0`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

type Arguments map[string]Literal

func (a Arguments) GetString(key string) (string, error) {
	v, ok := a[key]
	if !ok {
		return "", fmt.Errorf("missing required argument '%s'", key)
	}
	if v.Kind != LiteralString {
		return "", fmt.Errorf("argument '%s' must be a string, got %s", key, v.Kind)
	}
	return v.Str, nil
}

func (a Arguments) GetNumber(key string) (float64, error) {
	v, ok := a[key]
	if !ok {
		return 0, fmt.Errorf("missing required argument '%s'", key)
	}
	if v.Kind != LiteralNumber {
		return 0, fmt.Errorf("argument '%s' must be a number, got %s", key, v.Kind)
	}
	return v.Num, nil
}

func (a Arguments) GetBool(key string) (bool, error) {
	v, ok := a[key]
	if !ok {
		return false, fmt.Errorf("missing required argument '%s'", key)
	}
	if v.Kind != LiteralBool {
		return false, fmt.Errorf("argument '%s' must be a boolean, got %s", key, v.Kind)
	}
	return v.Bool, nil
}

// Values converts the arguments to plain Go values for logging and JSON.
func (a Arguments) Values() map[string]any {
	out := make(map[string]any, len(a))
	for k, v := range a {
		switch v.Kind {
		case LiteralString:
			out[k] = v.Str
		case LiteralNumber:
			out[k] = v.Num
		case LiteralBool:
			out[k] = v.Bool
		default:
			out[k] = nil
		}
	}
	return out
}

type ParsedAction struct {
	Name      string
	Arguments Arguments
}
