package abi

import (
	"strconv"
	"strings"
)

// Kind identifies the shape of a Type.
type Kind uint8

const (
	KindUint Kind = iota
	KindInt
	KindAddress
	KindBool
	KindFixedBytes
	KindBytes
	KindString
	KindFixedArray
	KindArray
	KindTuple
)

// Type is a node in an ABI type tree. Size holds the bit width for
// KindUint/KindInt, the byte length for KindFixedBytes and the element
// count for KindFixedArray. Elem is set for array kinds and Components
// for KindTuple; everything else leaves them zero.
type Type struct {
	Kind       Kind
	Size       int
	Elem       *Type
	Components []Component
}

// Component is one tuple member. The grammar never produces names; they
// are attached when a contract ABI document is loaded.
type Component struct {
	Name string
	Type Type
}

// ParseType parses a canonical ABI type string such as "uint256",
// "(address,bytes32)" or "string[2][]". The whole input must match;
// trailing characters, unknown names and out-of-range sizes all return a
// *GrammarError. Bracket suffixes fold left to right, making the
// rightmost suffix the outermost constructor: "string[2][]" is a dynamic
// array of string[2], while "string[][3]" is a three-element array of
// string[].
func ParseType(s string) (Type, error) {
	t, pos, err := parseType(s, 0)
	if err != nil {
		return Type{}, err
	}
	if pos != len(s) {
		return Type{}, &GrammarError{Input: s, Pos: pos, Msg: "trailing characters"}
	}
	return t, nil
}

func parseType(input string, pos int) (Type, int, error) {
	if pos >= len(input) {
		return Type{}, 0, &GrammarError{Input: input, Pos: pos, Msg: "empty type"}
	}
	var (
		t   Type
		err error
	)
	if input[pos] == '(' {
		t, pos, err = parseTuple(input, pos)
	} else {
		t, pos, err = parseElementary(input, pos)
	}
	if err != nil {
		return Type{}, 0, err
	}
	return parseArraySuffix(input, pos, t)
}

// parseTuple parses "(" type ("," type)* ")" starting at the opening
// parenthesis. At least one member is required.
func parseTuple(input string, pos int) (Type, int, error) {
	pos++
	var components []Component
	for {
		member, next, err := parseType(input, pos)
		if err != nil {
			return Type{}, 0, err
		}
		components = append(components, Component{Type: member})
		pos = next
		if pos >= len(input) {
			return Type{}, 0, &GrammarError{Input: input, Pos: pos, Msg: "unterminated tuple"}
		}
		switch input[pos] {
		case ',':
			pos++
		case ')':
			return Type{Kind: KindTuple, Components: components}, pos + 1, nil
		default:
			return Type{}, 0, &GrammarError{Input: input, Pos: pos, Msg: "expected ',' or ')' in tuple"}
		}
	}
}

func parseElementary(input string, pos int) (Type, int, error) {
	start := pos
	for pos < len(input) && input[pos] >= 'a' && input[pos] <= 'z' {
		pos++
	}
	name := input[start:pos]
	digitStart := pos
	for pos < len(input) && input[pos] >= '0' && input[pos] <= '9' {
		pos++
	}
	digits := input[digitStart:pos]

	switch name {
	case "uint", "int":
		bits, err := strconv.Atoi(digits)
		if digits == "" || err != nil || bits < 8 || bits > 256 || bits%8 != 0 {
			return Type{}, 0, &GrammarError{Input: input, Pos: digitStart, Msg: name + " width must be a multiple of 8 in [8,256]"}
		}
		kind := KindUint
		if name == "int" {
			kind = KindInt
		}
		return Type{Kind: kind, Size: bits}, pos, nil
	case "bytes":
		if digits == "" {
			return Type{Kind: KindBytes}, pos, nil
		}
		n, err := strconv.Atoi(digits)
		if err != nil || n < 1 || n > 32 {
			return Type{}, 0, &GrammarError{Input: input, Pos: digitStart, Msg: "bytes size must be in [1,32]"}
		}
		return Type{Kind: KindFixedBytes, Size: n}, pos, nil
	case "address", "bool", "string":
		if digits != "" {
			return Type{}, 0, &GrammarError{Input: input, Pos: digitStart, Msg: name + " takes no size suffix"}
		}
		switch name {
		case "address":
			return Type{Kind: KindAddress}, pos, nil
		case "bool":
			return Type{Kind: KindBool}, pos, nil
		default:
			return Type{Kind: KindString}, pos, nil
		}
	case "":
		return Type{}, 0, &GrammarError{Input: input, Pos: start, Msg: "expected a type name"}
	default:
		return Type{}, 0, &GrammarError{Input: input, Pos: start, Msg: "unknown type " + strconv.Quote(name)}
	}
}

// parseArraySuffix folds any number of "[]" or "[N]" suffixes onto base,
// left to right.
func parseArraySuffix(input string, pos int, base Type) (Type, int, error) {
	for pos < len(input) && input[pos] == '[' {
		pos++
		digitStart := pos
		for pos < len(input) && input[pos] >= '0' && input[pos] <= '9' {
			pos++
		}
		if pos >= len(input) || input[pos] != ']' {
			return Type{}, 0, &GrammarError{Input: input, Pos: pos, Msg: "expected ']'"}
		}
		digits := input[digitStart:pos]
		pos++

		elem := base
		if digits == "" {
			base = Type{Kind: KindArray, Elem: &elem}
		} else {
			n, err := strconv.Atoi(digits)
			if err != nil {
				return Type{}, 0, &GrammarError{Input: input, Pos: digitStart, Msg: "invalid array length"}
			}
			base = Type{Kind: KindFixedArray, Size: n, Elem: &elem}
		}
	}
	return base, pos, nil
}

// String renders the canonical form of the type. The rendering feeds
// signature hashing, so it round-trips exactly through ParseType; tuple
// member names are never included.
func (t Type) String() string {
	switch t.Kind {
	case KindUint:
		return "uint" + strconv.Itoa(t.Size)
	case KindInt:
		return "int" + strconv.Itoa(t.Size)
	case KindAddress:
		return "address"
	case KindBool:
		return "bool"
	case KindFixedBytes:
		return "bytes" + strconv.Itoa(t.Size)
	case KindBytes:
		return "bytes"
	case KindString:
		return "string"
	case KindFixedArray:
		return t.Elem.String() + "[" + strconv.Itoa(t.Size) + "]"
	case KindArray:
		return t.Elem.String() + "[]"
	case KindTuple:
		var sb strings.Builder
		sb.WriteByte('(')
		for i, c := range t.Components {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(c.Type.String())
		}
		sb.WriteByte(')')
		return sb.String()
	default:
		return "<invalid>"
	}
}

// IsDynamic reports whether the type's encoding is reached through an
// offset word rather than stored inline. It is always computed from the
// tree, never cached.
func (t Type) IsDynamic() bool {
	switch t.Kind {
	case KindString, KindBytes, KindArray:
		return true
	case KindFixedArray:
		return t.Elem.IsDynamic()
	case KindTuple:
		for _, c := range t.Components {
			if c.Type.IsDynamic() {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// Equal reports whether two types have the same shape. Tuple member
// names are ignored; they never affect encoding or rendering.
func (t Type) Equal(o Type) bool {
	if t.Kind != o.Kind || t.Size != o.Size {
		return false
	}
	if (t.Elem == nil) != (o.Elem == nil) {
		return false
	}
	if t.Elem != nil && !t.Elem.Equal(*o.Elem) {
		return false
	}
	if len(t.Components) != len(o.Components) {
		return false
	}
	for i := range t.Components {
		if !t.Components[i].Type.Equal(o.Components[i].Type) {
			return false
		}
	}
	return true
}
