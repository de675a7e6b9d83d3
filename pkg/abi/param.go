package abi

import (
	"strings"
)

// Param describes one declared parameter of a function, event or error.
// Indexed is only meaningful for event inputs.
type Param struct {
	Name    string
	Type    Type
	Indexed bool
}

// DecodedParam pairs a declared parameter with its decoded value. The
// parameter's fields are promoted, so d.Name and d.Type read through to
// the declaration.
type DecodedParam struct {
	Param
	Value Value
}

// DecodedParams is an ordered list of decoded parameters, preserving the
// declaration order of the interface they were decoded against.
type DecodedParams []DecodedParam

// ByName returns the decoded value for the named parameter, or nil when
// no parameter carries that name.
func (ps DecodedParams) ByName(name string) Value {
	for _, p := range ps {
		if p.Name == name {
			return p.Value
		}
	}
	return nil
}

// paramMarshaling is the JSON shape of one parameter in a contract ABI
// document. Unknown keys such as internalType are accepted and ignored.
type paramMarshaling struct {
	Name       string            `json:"name"`
	Type       string            `json:"type"`
	Components []paramMarshaling `json:"components,omitempty"`
	Indexed    bool              `json:"indexed,omitempty"`
}

func resolveParam(m paramMarshaling) (Param, error) {
	t, err := resolveTypeString(m.Type, m.Components)
	if err != nil {
		return Param{}, err
	}
	return Param{Name: m.Name, Type: t, Indexed: m.Indexed}, nil
}

// resolveTypeString parses a JSON "type" value. Solidity emits tuples as
// the literal word "tuple" plus optional array suffixes, with the member
// types in a separate components list, so those are expanded here before
// the grammar sees anything.
func resolveTypeString(s string, components []paramMarshaling) (Type, error) {
	if !strings.HasPrefix(s, "tuple") {
		return ParseType(s)
	}
	member := make([]Component, 0, len(components))
	for _, cm := range components {
		p, err := resolveParam(cm)
		if err != nil {
			return Type{}, err
		}
		member = append(member, Component{Name: p.Name, Type: p.Type})
	}
	base := Type{Kind: KindTuple, Components: member}

	rest := s[len("tuple"):]
	if rest == "" {
		return base, nil
	}
	t, pos, err := parseArraySuffix(rest, 0, base)
	if err != nil {
		return Type{}, err
	}
	if pos != len(rest) {
		return Type{}, &GrammarError{Input: s, Pos: len("tuple") + pos, Msg: "trailing characters after tuple type"}
	}
	return t, nil
}
