package abi

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFunction() Function {
	return Function{
		Name: "funname",
		Inputs: []Param{
			{Name: "", Type: addressT},
			{Name: "x", Type: fixedArrayOf(Type{Kind: KindUint, Size: 56}, 5)},
		},
		StateMutability: Pure,
	}
}

func TestFunctionSignature(t *testing.T) {
	fn := testFunction()
	assert.Equal(t, "funname(address,uint56[5])", fn.Signature())
}

func TestFunctionSelector(t *testing.T) {
	fn := testFunction()
	assert.Equal(t, [4]byte{0xab, 0xa0, 0xe6, 0x3a}, fn.Selector())

	fn.Name = "f"
	assert.Equal(t, [4]byte{0xd8, 0xe8, 0x9e, 0x7d}, fn.Selector())
}

func TestFunctionSignatureWithTuple(t *testing.T) {
	// Tuples render canonically in signatures, never as the word "tuple".
	fn := Function{
		Name: "g",
		Inputs: []Param{
			{Name: "pair", Type: tupleOf(uint256T, stringT)},
			{Name: "ok", Type: boolT},
		},
	}
	assert.Equal(t, "g((uint256,string),bool)", fn.Signature())
	assert.Equal(t, [4]byte{0x59, 0x6c, 0x8c, 0x48}, fn.Selector())
}

func TestParseAbiJSON(t *testing.T) {
	doc := `[
		{"inputs":[{"internalType":"address","name":"a","type":"address"}],"stateMutability":"nonpayable","type":"constructor"},
		{"anonymous":false,"inputs":[{"indexed":false,"internalType":"address","name":"x","type":"address"},{"indexed":false,"internalType":"uint256","name":"y","type":"uint256"}],"name":"E","type":"event"},
		{"inputs":[{"internalType":"uint256","name":"x","type":"uint256"}],"name":"f","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"nonpayable","type":"function"},
		{"stateMutability":"payable","type":"receive"}
	]`

	parsed, err := ParseAbiJSON([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, &Abi{
		Constructor: &Constructor{
			Inputs:          []Param{{Name: "a", Type: addressT}},
			StateMutability: NonPayable,
		},
		Functions: []Function{{
			Name:            "f",
			Inputs:          []Param{{Name: "x", Type: uint256T}},
			Outputs:         []Param{{Name: "", Type: uint256T}},
			StateMutability: NonPayable,
		}},
		Events: []Event{{
			Name: "E",
			Inputs: []Param{
				{Name: "x", Type: addressT},
				{Name: "y", Type: uint256T},
			},
		}},
		HasReceive: true,
	}, parsed)
}

func TestParseAbiJSONTupleComponents(t *testing.T) {
	doc := `[{
		"type": "function",
		"name": "swap",
		"stateMutability": "nonpayable",
		"inputs": [{
			"name": "order",
			"type": "tuple",
			"components": [
				{"name": "maker", "type": "address"},
				{"name": "amounts", "type": "uint256[]"}
			]
		}],
		"outputs": []
	}]`

	parsed, err := ParseAbiJSON([]byte(doc))
	require.NoError(t, err)

	fn := parsed.FunctionByName("swap")
	require.NotNil(t, fn)
	assert.Equal(t, "swap((address,uint256[]))", fn.Signature())

	order := fn.Inputs[0].Type
	require.Equal(t, KindTuple, order.Kind)
	require.Len(t, order.Components, 2)
	assert.Equal(t, "maker", order.Components[0].Name)
	assert.Equal(t, "amounts", order.Components[1].Name)
}

func TestParseAbiJSONTupleArray(t *testing.T) {
	doc := `[{
		"type": "function",
		"name": "batch",
		"stateMutability": "nonpayable",
		"inputs": [{
			"name": "orders",
			"type": "tuple[2]",
			"components": [{"name": "id", "type": "uint256"}]
		}],
		"outputs": []
	}]`

	parsed, err := ParseAbiJSON([]byte(doc))
	require.NoError(t, err)

	fn := parsed.FunctionByName("batch")
	require.NotNil(t, fn)
	assert.Equal(t, "batch((uint256)[2])", fn.Signature())
	assert.Equal(t, KindFixedArray, fn.Inputs[0].Type.Kind)
	assert.Equal(t, 2, fn.Inputs[0].Type.Size)
}

func TestParseAbiJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"not an array", `{"type":"function"}`, "invalid ABI document"},
		{"unknown entry type", `[{"type":"proxy"}]`, "invalid ABI entry type: proxy"},
		{"function missing name", `[{"type":"function","stateMutability":"view"}]`, "missing function name"},
		{"function missing state mutability", `[{"type":"function","name":"f"}]`, "missing function state mutability"},
		{"constructor missing state mutability", `[{"type":"constructor"}]`, "missing constructor state mutability"},
		{"invalid state mutability", `[{"type":"function","name":"f","stateMutability":"mutable"}]`, "invalid state mutability mutable"},
		{"event missing name", `[{"type":"event","anonymous":false}]`, "missing event name"},
		{"event missing anonymous flag", `[{"type":"event","name":"E"}]`, "missing event anonymous field"},
		{"error missing name", `[{"type":"error"}]`, "missing error name"},
		{"invalid parameter type", `[{"type":"function","name":"f","stateMutability":"view","inputs":[{"name":"x","type":"uint7"}]}]`, "invalid parameter type uint7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAbiJSON([]byte(tt.doc))
			require.Error(t, err)

			var loadErr *LoadError
			require.ErrorAs(t, err, &loadErr)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseAbiJSONWrapsGrammarError(t *testing.T) {
	doc := `[{"type":"function","name":"f","stateMutability":"view","inputs":[{"name":"x","type":"uint7"}]}]`
	_, err := ParseAbiJSON([]byte(doc))
	require.Error(t, err)

	var grammarErr *GrammarError
	require.ErrorAs(t, err, &grammarErr)
	assert.Equal(t, "uint7", grammarErr.Input)
}

// tokenAbi is a small ERC20-flavored interface exercising functions,
// events and a custom error together.
func tokenAbi(t *testing.T) *Abi {
	t.Helper()
	doc := `[
		{"type":"function","name":"transfer","stateMutability":"nonpayable","inputs":[{"name":"to","type":"address"},{"name":"value","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
		{"type":"event","name":"Transfer","anonymous":false,"inputs":[{"name":"from","type":"address","indexed":true},{"name":"to","type":"address","indexed":true},{"name":"value","type":"uint256","indexed":false}]},
		{"type":"error","name":"InsufficientBalance","inputs":[{"name":"available","type":"uint256"},{"name":"required","type":"uint256"}]}
	]`
	parsed, err := ParseAbiJSON([]byte(doc))
	require.NoError(t, err)
	return parsed
}

func TestAbiLookups(t *testing.T) {
	parsed := tokenAbi(t)

	t.Run("function by selector", func(t *testing.T) {
		fn, err := parsed.FunctionBySelector([4]byte{0xa9, 0x05, 0x9c, 0xbb})
		require.NoError(t, err)
		assert.Equal(t, "transfer", fn.Name)
	})

	t.Run("unknown selector", func(t *testing.T) {
		_, err := parsed.FunctionBySelector([4]byte{0xde, 0xad, 0xbe, 0xef})
		var selErr *SelectorNotFoundError
		require.ErrorAs(t, err, &selErr)
		assert.Equal(t, [4]byte{0xde, 0xad, 0xbe, 0xef}, selErr.Selector)
	})

	t.Run("event by topic", func(t *testing.T) {
		ev, err := parsed.EventByTopic(common.HexToHash("0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"))
		require.NoError(t, err)
		assert.Equal(t, "Transfer", ev.Name)
	})

	t.Run("unknown topic", func(t *testing.T) {
		_, err := parsed.EventByTopic(common.HexToHash("0x01"))
		var topicErr *TopicNotFoundError
		require.ErrorAs(t, err, &topicErr)
	})

	t.Run("error by selector", func(t *testing.T) {
		abiErr, err := parsed.ErrorBySelector([4]byte{0xcf, 0x47, 0x91, 0x81})
		require.NoError(t, err)
		assert.Equal(t, "InsufficientBalance", abiErr.Name)
	})

	t.Run("by name", func(t *testing.T) {
		require.NotNil(t, parsed.FunctionByName("transfer"))
		require.NotNil(t, parsed.EventByName("Transfer"))
		assert.Nil(t, parsed.FunctionByName("mint"))
		assert.Nil(t, parsed.EventByName("Burn"))
	})
}

func TestDecodeFunctionInput(t *testing.T) {
	parsed := tokenAbi(t)

	to := common.HexToAddress("0x5B38Da6a701c568545dCfcB03FcB875f56beddC4")
	calldata := common.Hex2Bytes("a9059cbb")
	calldata = append(calldata, common.LeftPadBytes(to.Bytes(), 32)...)
	calldata = append(calldata, word(1234)...)

	fn, params, err := parsed.DecodeFunctionInput(calldata)
	require.NoError(t, err)
	assert.Equal(t, "transfer", fn.Name)
	require.Len(t, params, 2)
	assert.Equal(t, Address(to), params.ByName("to"))
	assert.Equal(t, Uint{X: big.NewInt(1234), Size: 256}, params.ByName("value"))
}

func TestDecodeFunctionInputFromHex(t *testing.T) {
	parsed := tokenAbi(t)

	input := "  0xa9059cbb" +
		"0000000000000000000000005b38da6a701c568545dcfcb03fcb875f56beddc4" +
		"00000000000000000000000000000000000000000000000000000000000004d2\n"

	fn, params, err := parsed.DecodeFunctionInputFromHex(input)
	require.NoError(t, err)
	assert.Equal(t, "transfer", fn.Name)
	assert.Equal(t, Uint{X: big.NewInt(1234), Size: 256}, params.ByName("value"))
}

func TestDecodeFunctionInputErrors(t *testing.T) {
	parsed := tokenAbi(t)

	t.Run("data shorter than a selector", func(t *testing.T) {
		_, _, err := parsed.DecodeFunctionInput([]byte{0xa9, 0x05})
		var decodeErr *DecodeError
		require.ErrorAs(t, err, &decodeErr)
	})

	t.Run("unknown selector", func(t *testing.T) {
		_, _, err := parsed.DecodeFunctionInput([]byte{0xde, 0xad, 0xbe, 0xef})
		var selErr *SelectorNotFoundError
		require.ErrorAs(t, err, &selErr)
	})

	t.Run("malformed hex", func(t *testing.T) {
		_, _, err := parsed.DecodeFunctionInputFromHex("0xzz")
		require.Error(t, err)
	})

	t.Run("truncated arguments", func(t *testing.T) {
		_, _, err := parsed.DecodeFunctionInput(common.Hex2Bytes("a9059cbb00"))
		var decodeErr *DecodeError
		require.ErrorAs(t, err, &decodeErr)
	})
}

func TestDecodeFunctionOutput(t *testing.T) {
	parsed := tokenAbi(t)

	fn := parsed.FunctionByName("transfer")
	require.NotNil(t, fn)

	params, err := fn.DecodeOutput(word(1))
	require.NoError(t, err)
	require.Len(t, params, 1)
	assert.Equal(t, Bool(true), params[0].Value)
}

func TestDecodeRevertData(t *testing.T) {
	parsed := tokenAbi(t)

	revert := common.Hex2Bytes("cf479181")
	revert = append(revert, words(5, 10)...)

	abiErr, params, err := parsed.DecodeRevertData(revert)
	require.NoError(t, err)
	assert.Equal(t, "InsufficientBalance", abiErr.Name)
	assert.Equal(t, Uint{X: big.NewInt(5), Size: 256}, params.ByName("available"))
	assert.Equal(t, Uint{X: big.NewInt(10), Size: 256}, params.ByName("required"))
}

func TestAbiDecodeLog(t *testing.T) {
	parsed := tokenAbi(t)

	from := common.HexToAddress("0x5B38Da6a701c568545dCfcB03FcB875f56beddC4")
	to := common.HexToAddress("0xAb8483F64d9C6d1EcF9b849Ae677dD3315835cb2")
	topics := []common.Hash{
		common.HexToHash("0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"),
		common.BytesToHash(common.LeftPadBytes(from.Bytes(), 32)),
		common.BytesToHash(common.LeftPadBytes(to.Bytes(), 32)),
	}

	ev, params, err := parsed.DecodeLog(topics, word(1000000))
	require.NoError(t, err)
	assert.Equal(t, "Transfer", ev.Name)
	assert.Equal(t, Address(from), params.ByName("from"))
	assert.Equal(t, Address(to), params.ByName("to"))
	assert.Equal(t, Uint{X: big.NewInt(1000000), Size: 256}, params.ByName("value"))
}

func TestAbiDecodeLogUnknownTopic(t *testing.T) {
	parsed := tokenAbi(t)

	topics := []common.Hash{common.HexToHash("0x1234")}
	_, _, err := parsed.DecodeLog(topics, nil)

	var topicErr *TopicNotFoundError
	require.ErrorAs(t, err, &topicErr)
	assert.Equal(t, common.HexToHash("0x1234"), topicErr.Topic)
}

func TestAbiDecodeLogAnonymousFallback(t *testing.T) {
	doc := `[
		{"type":"event","name":"Known","anonymous":false,"inputs":[]},
		{"type":"event","name":"Ghost","anonymous":true,"inputs":[{"name":"n","type":"uint256","indexed":true}]}
	]`
	parsed, err := ParseAbiJSON([]byte(doc))
	require.NoError(t, err)

	t.Run("unmatched topic falls back to the sole anonymous event", func(t *testing.T) {
		topics := []common.Hash{common.HexToHash("0x0000000000000000000000000000000000000000000000000000000000000009")}
		ev, params, err := parsed.DecodeLog(topics, nil)
		require.NoError(t, err)
		assert.Equal(t, "Ghost", ev.Name)
		assert.Equal(t, Uint{X: big.NewInt(9), Size: 256}, params.ByName("n"))
	})

	t.Run("no topics still resolves the anonymous event", func(t *testing.T) {
		noTopics := `[{"type":"event","name":"Data","anonymous":true,"inputs":[{"name":"v","type":"uint256","indexed":false}]}]`
		dataAbi, err := ParseAbiJSON([]byte(noTopics))
		require.NoError(t, err)

		ev, params, err := dataAbi.DecodeLog(nil, word(3))
		require.NoError(t, err)
		assert.Equal(t, "Data", ev.Name)
		assert.Equal(t, Uint{X: big.NewInt(3), Size: 256}, params.ByName("v"))
	})

	t.Run("several anonymous events stay unresolved", func(t *testing.T) {
		twoGhosts := `[
			{"type":"event","name":"A","anonymous":true,"inputs":[]},
			{"type":"event","name":"B","anonymous":true,"inputs":[]}
		]`
		ghostAbi, err := ParseAbiJSON([]byte(twoGhosts))
		require.NoError(t, err)

		_, _, err = ghostAbi.DecodeLog([]common.Hash{{}}, nil)
		var topicErr *TopicNotFoundError
		require.ErrorAs(t, err, &topicErr)
	})
}
