package abi

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Event is a log-emitting contract event.
type Event struct {
	Name      string
	Inputs    []Param
	Anonymous bool
}

// Signature returns the canonical signature over the input types, e.g.
// "Transfer(address,address,uint256)".
func (e *Event) Signature() string {
	return signature(e.Name, e.Inputs)
}

// Topic returns the Keccak-256 hash of the canonical signature: the
// value found in topics[0] of logs emitted by non-anonymous events.
func (e *Event) Topic() common.Hash {
	return crypto.Keccak256Hash([]byte(e.Signature()))
}

// DecodeLog reconstructs the event's parameter list from a log's topics
// and data sections, preserving declaration order. For non-anonymous
// events topics[0] is the event's own topic and is discarded first.
// Indexed parameters are served from the remaining topics in order and
// the rest from the data buffer. Indexed parameters of dynamic type
// (string, bytes, arrays, tuples) are stored by the chain as a Keccak-256
// digest of the value, so they surface as opaque 32-byte Bytes values
// instead of being decoded.
func (e *Event) DecodeLog(topics []common.Hash, data []byte) (DecodedParams, error) {
	if !e.Anonymous {
		if len(topics) == 0 {
			return nil, &InsufficientTopicsError{Event: e.Name}
		}
		topics = topics[1:]
	}

	var dataTypes []Type
	for _, p := range e.Inputs {
		if !p.Indexed {
			dataTypes = append(dataTypes, p.Type)
		}
	}
	dataValues, err := DecodeValues(data, dataTypes)
	if err != nil {
		return nil, err
	}

	decoded := make(DecodedParams, 0, len(e.Inputs))
	for _, p := range e.Inputs {
		var v Value
		if p.Indexed {
			if len(topics) == 0 {
				return nil, &InsufficientTopicsError{Event: e.Name, Param: p.Name}
			}
			v = decodeTopic(p.Type, topics[0])
			topics = topics[1:]
		} else {
			if len(dataValues) == 0 {
				return nil, &InsufficientDataError{Event: e.Name, Param: p.Name}
			}
			v = dataValues[0]
			dataValues = dataValues[1:]
		}
		decoded = append(decoded, DecodedParam{Param: p, Value: v})
	}
	return decoded, nil
}

// decodeTopic interprets a single topic as the given type. Only value
// types decode directly; a topic always holds a full word, so those
// reads cannot fail. Everything else was hashed by the chain and stays
// opaque.
func decodeTopic(t Type, topic common.Hash) Value {
	switch t.Kind {
	case KindUint, KindInt, KindAddress, KindBool, KindFixedBytes:
		v, _, _ := decodeValue(topic[:], t, 0, 0)
		return v
	default:
		b := make(Bytes, len(topic))
		copy(b, topic[:])
		return b
	}
}
