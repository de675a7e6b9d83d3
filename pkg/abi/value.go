package abi

import (
	"encoding/json"
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Value is a decoded ABI value. The set of implementations is closed and
// mirrors Type: Uint, Int, Address, Bool, String, Bytes, Array and
// Tuple. FixedBytes types decode to Bytes, and fixed and dynamic arrays
// both decode to Array. A Value never references the buffer it was
// decoded from; decoding fully materializes everything it returns.
type Value interface {
	// String renders the value for human consumption: integers in
	// decimal, byte values as 0x-prefixed hex, addresses checksummed.
	String() string

	isValue()
}

// Uint is an unsigned integer value. X carries the full 32-byte word;
// Size is the declared bit width and never truncates X.
type Uint struct {
	X    *big.Int
	Size int
}

// Int is a signed integer value. X carries the raw unsigned word;
// callers needing the two's-complement interpretation sign-extend from
// Size bits themselves.
type Int struct {
	X    *big.Int
	Size int
}

// Address is a 20-byte account address.
type Address common.Address

// Bool is a boolean value.
type Bool bool

// String is a UTF-8 text value.
type String string

// Bytes is a raw byte value. It is produced by bytes and bytesN types
// and by indexed event parameters whose original value is stored only as
// a Keccak-256 digest.
type Bytes []byte

// Array is an ordered sequence of equally-typed values.
type Array []Value

// Tuple is an ordered sequence of heterogeneously-typed values.
type Tuple []Value

func (Uint) isValue()    {}
func (Int) isValue()     {}
func (Address) isValue() {}
func (Bool) isValue()    {}
func (String) isValue()  {}
func (Bytes) isValue()   {}
func (Array) isValue()   {}
func (Tuple) isValue()   {}

func (v Uint) String() string    { return v.X.String() }
func (v Int) String() string     { return v.X.String() }
func (v Address) String() string { return common.Address(v).Hex() }
func (v Bool) String() string    { return strconv.FormatBool(bool(v)) }
func (v String) String() string  { return strconv.Quote(string(v)) }
func (v Bytes) String() string   { return hexutil.Encode(v) }
func (v Array) String() string   { return joinValues(v, "[", "]") }
func (v Tuple) String() string   { return joinValues(v, "(", ")") }

func joinValues(vs []Value, left, right string) string {
	var sb strings.Builder
	sb.WriteString(left)
	for i, v := range vs {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(v.String())
	}
	sb.WriteString(right)
	return sb.String()
}

// Integers marshal as decimal strings so that values beyond float64
// precision survive a trip through ordinary JSON tooling; byte values
// and addresses marshal as hex text.

func (v Uint) MarshalJSON() ([]byte, error)    { return json.Marshal(v.X.String()) }
func (v Int) MarshalJSON() ([]byte, error)     { return json.Marshal(v.X.String()) }
func (v Address) MarshalJSON() ([]byte, error) { return json.Marshal(common.Address(v).Hex()) }
func (v Bytes) MarshalJSON() ([]byte, error)   { return json.Marshal(hexutil.Encode(v)) }
