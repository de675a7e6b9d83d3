package abi

import (
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
)

// StateMutability is a function's declared mutability.
type StateMutability string

const (
	Payable    StateMutability = "payable"
	NonPayable StateMutability = "nonpayable"
	View       StateMutability = "view"
	Pure       StateMutability = "pure"
)

func parseStateMutability(s string) (StateMutability, bool) {
	switch m := StateMutability(s); m {
	case Payable, NonPayable, View, Pure:
		return m, true
	}
	return "", false
}

// Constructor is a contract's constructor entry.
type Constructor struct {
	Inputs          []Param
	StateMutability StateMutability
}

// Function is a callable contract function.
type Function struct {
	Name            string
	Inputs          []Param
	Outputs         []Param
	StateMutability StateMutability
}

// Signature returns the canonical signature over the input types, e.g.
// "transfer(address,uint256)".
func (f *Function) Signature() string {
	return signature(f.Name, f.Inputs)
}

// Selector returns the first four bytes of the Keccak-256 hash of the
// canonical signature, the value found at the head of call data.
func (f *Function) Selector() [4]byte {
	return selector(f.Signature())
}

// DecodeInput decodes argument data (call data with the selector already
// stripped) against the function's declared inputs.
func (f *Function) DecodeInput(data []byte) (DecodedParams, error) {
	return decodeParams(f.Inputs, data)
}

// DecodeOutput decodes return data against the function's declared
// outputs.
func (f *Function) DecodeOutput(data []byte) (DecodedParams, error) {
	return decodeParams(f.Outputs, data)
}

func signature(name string, inputs []Param) string {
	types := make([]string, len(inputs))
	for i, p := range inputs {
		types[i] = p.Type.String()
	}
	return name + "(" + strings.Join(types, ",") + ")"
}

func selector(sig string) [4]byte {
	var sel [4]byte
	copy(sel[:], crypto.Keccak256([]byte(sig))[:4])
	return sel
}

// decodeParams decodes data against the declared parameters and zips the
// results back in declaration order.
func decodeParams(params []Param, data []byte) (DecodedParams, error) {
	types := make([]Type, len(params))
	for i, p := range params {
		types[i] = p.Type
	}
	values, err := DecodeValues(data, types)
	if err != nil {
		return nil, err
	}
	decoded := make(DecodedParams, len(params))
	for i := range params {
		decoded[i] = DecodedParam{Param: params[i], Value: values[i]}
	}
	return decoded, nil
}
