package abi

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// GrammarError reports a type string that does not match the ABI type
// grammar. Pos is the byte offset of the offending character in Input.
type GrammarError struct {
	Input string
	Pos   int
	Msg   string
}

func (e *GrammarError) Error() string {
	return fmt.Sprintf("abi: invalid type %q at position %d: %s", e.Input, e.Pos, e.Msg)
}

// LoadError reports a malformed contract ABI document. Entry is the index
// of the offending entry, or -1 when the document as a whole is at fault.
type LoadError struct {
	Entry int
	Msg   string
	Err   error
}

func (e *LoadError) Error() string {
	msg := "abi: " + e.Msg
	if e.Entry >= 0 {
		msg = fmt.Sprintf("abi: entry %d: %s", e.Entry, e.Msg)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *LoadError) Unwrap() error { return e.Err }

// DecodeError reports a failed read while decoding a buffer. Offset is
// the absolute position of the read; for out-of-bounds reads Want and
// Have carry the required length and the buffer length, for other
// failures Msg explains.
type DecodeError struct {
	What   string
	Offset int
	Want   int
	Have   int
	Msg    string
}

func (e *DecodeError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("abi: cannot decode %s at offset %d: %s", e.What, e.Offset, e.Msg)
	}
	return fmt.Sprintf("abi: cannot decode %s: need %d bytes at offset %d, buffer holds %d", e.What, e.Want, e.Offset, e.Have)
}

// SelectorNotFoundError reports call data whose leading four bytes match
// no function in the interface.
type SelectorNotFoundError struct {
	Selector [4]byte
}

func (e *SelectorNotFoundError) Error() string {
	return fmt.Sprintf("abi: no function with selector 0x%x", e.Selector)
}

// TopicNotFoundError reports a log that matches no event in the
// interface.
type TopicNotFoundError struct {
	Topic common.Hash
}

func (e *TopicNotFoundError) Error() string {
	if e.Topic == (common.Hash{}) {
		return "abi: log matches no known event"
	}
	return fmt.Sprintf("abi: no event with topic %s", e.Topic)
}

// InsufficientTopicsError reports a log with fewer topics than the event
// requires. Param names the indexed parameter that went unserved; it is
// empty when the event topic itself is missing.
type InsufficientTopicsError struct {
	Event string
	Param string
}

func (e *InsufficientTopicsError) Error() string {
	if e.Param == "" {
		return fmt.Sprintf("abi: event %s: missing event topic", e.Event)
	}
	return fmt.Sprintf("abi: event %s: insufficient topics entries, next indexed parameter is %q", e.Event, e.Param)
}

// InsufficientDataError reports a log whose data section yielded fewer
// values than the event's non-indexed parameters require.
type InsufficientDataError struct {
	Event string
	Param string
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("abi: event %s: insufficient data values, next parameter is %q", e.Event, e.Param)
}
