// Package transactionLogParser provides types and functionality for parsing
// and decoding Ethereum event logs and transaction calldata. It helps
// transform raw blockchain data into structured, typed representations.
package transactionLogParser

// DecodedLog represents a decoded Ethereum event log with its arguments and metadata.
// It contains the event name, emitting contract address, and structured argument data.
type DecodedLog struct {
	// LogIndex is the position of the log in the block
	LogIndex uint64
	// Address is the contract address that emitted the event
	Address string
	// Arguments contains the decoded event parameters
	Arguments []Argument
	// EventName is the name of the emitted event
	EventName string
	// OutputData contains the decoded non-indexed event data as a map
	OutputData map[string]interface{}
}

// DecodedTransaction represents decoded transaction calldata: the resolved
// method, its 4-byte selector, and the structured input arguments.
type DecodedTransaction struct {
	// MethodName is the name of the contract method that was called
	MethodName string
	// Selector is the hex-encoded 4-byte function selector
	Selector string
	// Arguments contains the decoded input parameters
	Arguments []Argument
}

// Argument represents a single parameter in a decoded event log or function call.
// It includes the parameter name, type, value, and whether it was indexed in the event.
type Argument struct {
	// Name is the parameter name
	Name string
	// Type is the Solidity type of the parameter
	Type string
	// Value is the actual parameter value
	Value interface{}
	// Indexed indicates whether this was an indexed event parameter
	Indexed bool
}
