package abi

import (
	"math/big"
	"strconv"
	"unicode/utf8"

	"github.com/ethereum/go-ethereum/common"
)

const wordSize = 32

// DecodeValues decodes one value per type from data, reading heads
// sequentially from the start of the buffer. Dynamic values consume only
// their 32-byte offset word at the cursor; their payloads live in the
// tail region and are reached through the offset. Every read is bounds
// checked and failures surface as *DecodeError.
func DecodeValues(data []byte, types []Type) ([]Value, error) {
	values := make([]Value, 0, len(types))
	at := 0
	for _, t := range types {
		v, consumed, err := decodeValue(data, t, 0, at)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
		at += consumed
	}
	return values, nil
}

// decodeValue decodes a single value of type t with its head at
// baseAddr+at, returning the value and how many bytes it consumed at the
// cursor. Static scalars consume their padded word, static composites
// the sum of their parts, dynamic types exactly the 32-byte offset word.
func decodeValue(data []byte, t Type, baseAddr, at int) (Value, int, error) {
	switch t.Kind {
	case KindUint:
		word, err := readWord(data, baseAddr+at, t.String())
		if err != nil {
			return nil, 0, err
		}
		return Uint{X: new(big.Int).SetBytes(word), Size: t.Size}, wordSize, nil

	case KindInt:
		word, err := readWord(data, baseAddr+at, t.String())
		if err != nil {
			return nil, 0, err
		}
		return Int{X: new(big.Int).SetBytes(word), Size: t.Size}, wordSize, nil

	case KindAddress:
		word, err := readWord(data, baseAddr+at, "address")
		if err != nil {
			return nil, 0, err
		}
		return Address(common.BytesToAddress(word)), wordSize, nil

	case KindBool:
		word, err := readWord(data, baseAddr+at, "bool")
		if err != nil {
			return nil, 0, err
		}
		one := new(big.Int).SetBytes(word).Cmp(big.NewInt(1)) == 0
		return Bool(one), wordSize, nil

	case KindFixedBytes:
		pos := baseAddr + at
		if err := checkRead(data, pos, t.Size, t.String()); err != nil {
			return nil, 0, err
		}
		b := make(Bytes, t.Size)
		copy(b, data[pos:pos+t.Size])
		return b, padded32(t.Size), nil

	case KindString:
		raw, consumed, err := decodeValue(data, Type{Kind: KindBytes}, baseAddr, at)
		if err != nil {
			return nil, 0, err
		}
		b := raw.(Bytes)
		if !utf8.Valid(b) {
			return nil, 0, &DecodeError{What: "string", Offset: baseAddr + at, Msg: "payload is not valid UTF-8"}
		}
		return String(b), consumed, nil

	case KindBytes:
		offset, err := readOffsetWord(data, baseAddr+at, "bytes offset")
		if err != nil {
			return nil, 0, err
		}
		lenPos := baseAddr + offset
		length, err := readOffsetWord(data, lenPos, "bytes length")
		if err != nil {
			return nil, 0, err
		}
		payloadPos := lenPos + wordSize
		if err := checkRead(data, payloadPos, length, "bytes payload"); err != nil {
			return nil, 0, err
		}
		b := make(Bytes, length)
		copy(b, data[payloadPos:payloadPos+length])
		return b, wordSize, nil

	case KindFixedArray:
		elemBase, elemAt := baseAddr, at
		dynamic := t.Elem.IsDynamic()
		if dynamic {
			offset, err := readOffsetWord(data, baseAddr+at, "array offset")
			if err != nil {
				return nil, 0, err
			}
			elemBase, elemAt = baseAddr+offset, 0
		}
		values := make(Array, 0, min(t.Size, len(data)/wordSize+1))
		consumed := 0
		for i := 0; i < t.Size; i++ {
			v, n, err := decodeValue(data, *t.Elem, elemBase, elemAt+consumed)
			if err != nil {
				return nil, 0, err
			}
			values = append(values, v)
			consumed += n
		}
		if dynamic {
			consumed = wordSize
		}
		return values, consumed, nil

	case KindArray:
		offset, err := readOffsetWord(data, baseAddr+at, "array offset")
		if err != nil {
			return nil, 0, err
		}
		lenPos := baseAddr + offset
		length, err := readOffsetWord(data, lenPos, "array length")
		if err != nil {
			return nil, 0, err
		}
		if length > len(data)/wordSize {
			return nil, 0, &DecodeError{What: "array length", Offset: lenPos, Msg: "length " + strconv.Itoa(length) + " exceeds buffer"}
		}
		v, _, err := decodeValue(data, Type{Kind: KindFixedArray, Size: length, Elem: t.Elem}, lenPos, wordSize)
		if err != nil {
			return nil, 0, err
		}
		return v, wordSize, nil

	case KindTuple:
		elemBase, elemAt := baseAddr, at
		dynamic := t.IsDynamic()
		if dynamic {
			offset, err := readOffsetWord(data, baseAddr+at, "tuple offset")
			if err != nil {
				return nil, 0, err
			}
			elemBase, elemAt = baseAddr+offset, 0
		}
		values := make(Tuple, 0, len(t.Components))
		consumed := 0
		for _, c := range t.Components {
			v, n, err := decodeValue(data, c.Type, elemBase, elemAt+consumed)
			if err != nil {
				return nil, 0, err
			}
			values = append(values, v)
			consumed += n
		}
		if dynamic {
			consumed = wordSize
		}
		return values, consumed, nil

	default:
		return nil, 0, &DecodeError{What: "value", Offset: baseAddr + at, Msg: "unsupported type"}
	}
}

// checkRead verifies that want bytes are readable at offset. The
// subtraction form avoids overflow for offsets near the integer limit.
func checkRead(data []byte, offset, want int, what string) error {
	if offset < 0 || want < 0 || offset > len(data)-want {
		return &DecodeError{What: what, Offset: offset, Want: want, Have: len(data)}
	}
	return nil
}

// readWord returns the 32-byte word at offset. The slice aliases data;
// callers copy before returning anything to the outside.
func readWord(data []byte, offset int, what string) ([]byte, error) {
	if err := checkRead(data, offset, wordSize, what); err != nil {
		return nil, err
	}
	return data[offset : offset+wordSize], nil
}

// readOffsetWord reads a 32-byte word and interprets it as a buffer
// position or length, rejecting values too large to address.
func readOffsetWord(data []byte, offset int, what string) (int, error) {
	word, err := readWord(data, offset, what)
	if err != nil {
		return 0, err
	}
	u := new(big.Int).SetBytes(word)
	if u.BitLen() > 62 {
		return 0, &DecodeError{What: what, Offset: offset, Msg: "value " + u.String() + " exceeds addressable range"}
	}
	return int(u.Int64()), nil
}

// padded32 rounds n up to the next multiple of 32.
func padded32(n int) int {
	if r := n % wordSize; r != 0 {
		return n + wordSize - r
	}
	return n
}
