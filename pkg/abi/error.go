package abi

// Error is a custom error entry of a contract interface. Revert data
// carries its selector followed by ABI-encoded parameters, shaped
// exactly like call data.
type Error struct {
	Name   string
	Inputs []Param
}

// Signature returns the canonical signature over the input types.
func (e *Error) Signature() string {
	return signature(e.Name, e.Inputs)
}

// Selector returns the first four bytes of the Keccak-256 hash of the
// canonical signature.
func (e *Error) Selector() [4]byte {
	return selector(e.Signature())
}

// DecodeData decodes revert data (selector already stripped) against the
// error's declared parameters.
func (e *Error) DecodeData(data []byte) (DecodedParams, error) {
	return decodeParams(e.Inputs, data)
}
