// Package abi implements the decode side of the Ethereum contract ABI:
// parsing textual type signatures into type trees, decoding ABI-encoded
// buffers into typed values under the head/tail addressing rules, and
// resolving 4-byte function selectors and 32-byte event topics back to
// the declared interface so call data and event logs can be rendered as
// named, typed parameters. Encoding values back to bytes is deliberately
// not provided.
package abi

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Abi is a contract's interface: its constructor, functions, events and
// custom errors, plus flags for the receive and fallback entries. An Abi
// is immutable once built; lookups never mutate it, so one instance may
// be shared freely across goroutines.
type Abi struct {
	Constructor *Constructor
	Functions   []Function
	Events      []Event
	Errors      []Error

	HasReceive  bool
	HasFallback bool
}

// ParseAbiJSON builds an Abi from a contract ABI JSON document, the
// array-of-entries form emitted by solc and served by explorers.
func ParseAbiJSON(data []byte) (*Abi, error) {
	a := &Abi{}
	if err := a.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return a, nil
}

// UnmarshalJSON decodes a contract ABI document. Recognized entry types
// are function, event, constructor, error, receive and fallback; an
// unrecognized type is a *LoadError, as is a function or event without a
// name, a function or constructor without stateMutability, and an event
// without its anonymous flag.
func (a *Abi) UnmarshalJSON(data []byte) error {
	var entries []abiEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return &LoadError{Entry: -1, Msg: "invalid ABI document", Err: err}
	}

	parsed := Abi{}
	for i, entry := range entries {
		switch entry.Type {
		case "receive":
			parsed.HasReceive = true

		case "fallback":
			parsed.HasFallback = true

		case "constructor":
			mutability, err := entryStateMutability(i, entry)
			if err != nil {
				return err
			}
			inputs, err := entryParams(i, entry.Inputs)
			if err != nil {
				return err
			}
			parsed.Constructor = &Constructor{Inputs: inputs, StateMutability: mutability}

		case "function":
			if entry.Name == nil {
				return &LoadError{Entry: i, Msg: "missing function name"}
			}
			mutability, err := entryStateMutability(i, entry)
			if err != nil {
				return err
			}
			inputs, err := entryParams(i, entry.Inputs)
			if err != nil {
				return err
			}
			outputs, err := entryParams(i, entry.Outputs)
			if err != nil {
				return err
			}
			parsed.Functions = append(parsed.Functions, Function{
				Name:            *entry.Name,
				Inputs:          inputs,
				Outputs:         outputs,
				StateMutability: mutability,
			})

		case "event":
			if entry.Name == nil {
				return &LoadError{Entry: i, Msg: "missing event name"}
			}
			if entry.Anonymous == nil {
				return &LoadError{Entry: i, Msg: "missing event anonymous field"}
			}
			inputs, err := entryParams(i, entry.Inputs)
			if err != nil {
				return err
			}
			parsed.Events = append(parsed.Events, Event{
				Name:      *entry.Name,
				Inputs:    inputs,
				Anonymous: *entry.Anonymous,
			})

		case "error":
			if entry.Name == nil {
				return &LoadError{Entry: i, Msg: "missing error name"}
			}
			inputs, err := entryParams(i, entry.Inputs)
			if err != nil {
				return err
			}
			parsed.Errors = append(parsed.Errors, Error{Name: *entry.Name, Inputs: inputs})

		default:
			return &LoadError{Entry: i, Msg: "invalid ABI entry type: " + entry.Type}
		}
	}

	*a = parsed
	return nil
}

// abiEntry is the JSON shape of one entry in a contract ABI document.
// Pointer fields distinguish absent from zero, since several of them are
// mandatory depending on the entry type.
type abiEntry struct {
	Type            string            `json:"type"`
	Name            *string           `json:"name"`
	Inputs          []paramMarshaling `json:"inputs"`
	Outputs         []paramMarshaling `json:"outputs"`
	StateMutability *string           `json:"stateMutability"`
	Anonymous       *bool             `json:"anonymous"`
}

func entryStateMutability(i int, entry abiEntry) (StateMutability, error) {
	if entry.StateMutability == nil {
		return "", &LoadError{Entry: i, Msg: "missing " + entry.Type + " state mutability"}
	}
	mutability, ok := parseStateMutability(*entry.StateMutability)
	if !ok {
		return "", &LoadError{Entry: i, Msg: "invalid state mutability " + *entry.StateMutability}
	}
	return mutability, nil
}

func entryParams(i int, ms []paramMarshaling) ([]Param, error) {
	params := make([]Param, 0, len(ms))
	for _, m := range ms {
		p, err := resolveParam(m)
		if err != nil {
			return nil, &LoadError{Entry: i, Msg: "invalid parameter type " + m.Type, Err: err}
		}
		params = append(params, p)
	}
	return params, nil
}

// FunctionBySelector returns the function whose selector matches, or a
// *SelectorNotFoundError.
func (a *Abi) FunctionBySelector(sel [4]byte) (*Function, error) {
	for i := range a.Functions {
		if a.Functions[i].Selector() == sel {
			return &a.Functions[i], nil
		}
	}
	return nil, &SelectorNotFoundError{Selector: sel}
}

// FunctionByName returns the named function, or nil. Overloads are not
// distinguished; the first declaration wins.
func (a *Abi) FunctionByName(name string) *Function {
	for i := range a.Functions {
		if a.Functions[i].Name == name {
			return &a.Functions[i]
		}
	}
	return nil
}

// EventByTopic returns the non-anonymous event whose topic matches, or a
// *TopicNotFoundError.
func (a *Abi) EventByTopic(topic common.Hash) (*Event, error) {
	for i := range a.Events {
		if !a.Events[i].Anonymous && a.Events[i].Topic() == topic {
			return &a.Events[i], nil
		}
	}
	return nil, &TopicNotFoundError{Topic: topic}
}

// EventByName returns the named event, or nil.
func (a *Abi) EventByName(name string) *Event {
	for i := range a.Events {
		if a.Events[i].Name == name {
			return &a.Events[i]
		}
	}
	return nil
}

// ErrorBySelector returns the custom error whose selector matches, or a
// *SelectorNotFoundError.
func (a *Abi) ErrorBySelector(sel [4]byte) (*Error, error) {
	for i := range a.Errors {
		if a.Errors[i].Selector() == sel {
			return &a.Errors[i], nil
		}
	}
	return nil, &SelectorNotFoundError{Selector: sel}
}

// DecodeFunctionInput resolves the leading 4-byte selector of call data
// and decodes the remainder against the matched function's inputs,
// returning the function and its parameters in declaration order.
func (a *Abi) DecodeFunctionInput(data []byte) (*Function, DecodedParams, error) {
	if len(data) < 4 {
		return nil, nil, &DecodeError{What: "function selector", Offset: 0, Want: 4, Have: len(data)}
	}
	var sel [4]byte
	copy(sel[:], data[:4])
	fn, err := a.FunctionBySelector(sel)
	if err != nil {
		return nil, nil, err
	}
	params, err := fn.DecodeInput(data[4:])
	if err != nil {
		return nil, nil, err
	}
	return fn, params, nil
}

// DecodeFunctionInputFromHex is DecodeFunctionInput over a hex string.
// Surrounding whitespace and an optional 0x prefix are stripped first.
func (a *Abi) DecodeFunctionInputFromHex(s string) (*Function, DecodedParams, error) {
	data, err := decodeHex(s)
	if err != nil {
		return nil, nil, err
	}
	return a.DecodeFunctionInput(data)
}

// DecodeRevertData resolves the leading 4-byte selector of revert data
// against the interface's custom errors and decodes the remainder.
func (a *Abi) DecodeRevertData(data []byte) (*Error, DecodedParams, error) {
	if len(data) < 4 {
		return nil, nil, &DecodeError{What: "error selector", Offset: 0, Want: 4, Have: len(data)}
	}
	var sel [4]byte
	copy(sel[:], data[:4])
	abiErr, err := a.ErrorBySelector(sel)
	if err != nil {
		return nil, nil, err
	}
	params, err := abiErr.DecodeData(data[4:])
	if err != nil {
		return nil, nil, err
	}
	return abiErr, params, nil
}

// DecodeLog resolves which event a log belongs to and reconstructs its
// parameters. topics[0] is matched against every non-anonymous event's
// topic; when nothing matches, or the log carries no topics at all, and
// the interface declares exactly one anonymous event, that event is
// used. With several anonymous events no resolution is attempted and a
// *TopicNotFoundError is returned.
func (a *Abi) DecodeLog(topics []common.Hash, data []byte) (*Event, DecodedParams, error) {
	ev := a.eventForTopics(topics)
	if ev == nil {
		var topic common.Hash
		if len(topics) > 0 {
			topic = topics[0]
		}
		return nil, nil, &TopicNotFoundError{Topic: topic}
	}
	params, err := ev.DecodeLog(topics, data)
	if err != nil {
		return nil, nil, err
	}
	return ev, params, nil
}

func (a *Abi) eventForTopics(topics []common.Hash) *Event {
	if len(topics) > 0 {
		for i := range a.Events {
			if !a.Events[i].Anonymous && a.Events[i].Topic() == topics[0] {
				return &a.Events[i]
			}
		}
	}
	var anonymous *Event
	for i := range a.Events {
		if a.Events[i].Anonymous {
			if anonymous != nil {
				return nil
			}
			anonymous = &a.Events[i]
		}
	}
	return anonymous
}

func decodeHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "0x")
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("abi: invalid hex input: %w", err)
	}
	return data, nil
}
