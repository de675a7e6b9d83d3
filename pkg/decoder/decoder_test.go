package decoder

import (
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/Layr-Labs/abi-decoder/pkg/abi"
	"github.com/Layr-Labs/abi-decoder/pkg/config"
	"github.com/Layr-Labs/abi-decoder/pkg/decoder/decoderConfig"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const counterAbiJson = `[
	{"type":"function","name":"increment","stateMutability":"nonpayable","inputs":[],"outputs":[]},
	{"type":"function","name":"setNumber","stateMutability":"nonpayable","inputs":[{"name":"newNumber","type":"uint256"}],"outputs":[]}
]`

func word(v int64) []byte {
	return common.LeftPadBytes(big.NewInt(v).Bytes(), 32)
}

func Test_Decoder_EmbeddedDefaults(t *testing.T) {
	d, err := NewDecoder(&decoderConfig.DecoderConfig{}, zap.NewNop())
	require.NoError(t, err)

	t.Run("Should load the embedded contract set", func(t *testing.T) {
		loaded := d.ListContracts()
		require.Len(t, loaded, 2)
		assert.Equal(t, "ERC20", loaded[0].Name)
		assert.Equal(t, "WETH9", loaded[1].Name)
		assert.Equal(t, common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"), loaded[1].Address)
	})

	t.Run("Should decode calldata by selector", func(t *testing.T) {
		calldata := append(common.Hex2Bytes("2e1a7d4d"), word(42)...)

		decoded, err := d.DecodeCalldata(calldata)
		require.NoError(t, err)
		assert.Equal(t, "withdraw", decoded.MethodName)
		assert.Equal(t, "0x2e1a7d4d", decoded.Selector)
		require.Len(t, decoded.Arguments, 1)
		assert.Equal(t, "wad", decoded.Arguments[0].Name)
		assert.Equal(t, abi.Uint{X: big.NewInt(42), Size: 256}, decoded.Arguments[0].Value)
	})

	t.Run("Should accept hex calldata with prefix and whitespace", func(t *testing.T) {
		decoded, err := d.DecodeCalldataFromHex("  0x2e1a7d4d000000000000000000000000000000000000000000000000000000000000002a\n")
		require.NoError(t, err)
		assert.Equal(t, "withdraw", decoded.MethodName)
	})

	t.Run("Should reject malformed hex calldata", func(t *testing.T) {
		_, err := d.DecodeCalldataFromHex("0xzz")
		assert.NotNil(t, err)
	})

	t.Run("Should reject calldata shorter than a selector", func(t *testing.T) {
		_, err := d.DecodeCalldata([]byte{0x2e})
		var decodeErr *abi.DecodeError
		require.ErrorAs(t, err, &decodeErr)
	})

	t.Run("Should surface the typed error for an unknown selector", func(t *testing.T) {
		_, err := d.DecodeCalldata([]byte{0xde, 0xad, 0xbe, 0xef})
		var selErr *abi.SelectorNotFoundError
		require.ErrorAs(t, err, &selErr)
	})

	t.Run("Should decode a log by contract address", func(t *testing.T) {
		dst := common.HexToAddress("0x5B38Da6a701c568545dCfcB03FcB875f56beddC4")
		lg := &types.Log{
			Address: common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"),
			Topics: []common.Hash{
				common.HexToHash("0xe1fffcc4923d04b559f4d29a8bfc6cda04eb5b0d3c460751c2402c5c5cc9109c"),
				common.BytesToHash(common.LeftPadBytes(dst.Bytes(), 32)),
			},
			Data: word(42),
		}

		decoded, err := d.DecodeLog(lg)
		require.NoError(t, err)
		assert.Equal(t, "Deposit", decoded.EventName)
		assert.Equal(t, abi.Address(dst), decoded.Arguments[0].Value)
	})

	t.Run("Should fall back to topic lookup for an unknown address", func(t *testing.T) {
		from := common.HexToAddress("0x5B38Da6a701c568545dCfcB03FcB875f56beddC4")
		to := common.HexToAddress("0xAb8483F64d9C6d1EcF9b849Ae677dD3315835cb2")
		lg := &types.Log{
			Address: common.HexToAddress("0x06012c8cf97BEaD5deAe237070F9587f8E7A266d"),
			Topics: []common.Hash{
				common.HexToHash("0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"),
				common.BytesToHash(common.LeftPadBytes(from.Bytes(), 32)),
				common.BytesToHash(common.LeftPadBytes(to.Bytes(), 32)),
			},
			Data: word(9000),
		}

		decoded, err := d.DecodeLog(lg)
		require.NoError(t, err)
		assert.Equal(t, "Transfer", decoded.EventName)
		require.Len(t, decoded.Arguments, 3)
		assert.Equal(t, abi.Uint{X: big.NewInt(9000), Size: 256}, decoded.Arguments[2].Value)
	})

	t.Run("Should error for a log matching nothing", func(t *testing.T) {
		lg := &types.Log{Address: common.HexToAddress("0x01")}
		_, err := d.DecodeLog(lg)
		var topicErr *abi.TopicNotFoundError
		require.ErrorAs(t, err, &topicErr)
	})
}

func Test_Decoder_ConfiguredContracts(t *testing.T) {
	t.Run("Should load an inline ABI", func(t *testing.T) {
		cfg := &decoderConfig.DecoderConfig{
			Contracts: []*decoderConfig.ContractConfig{{
				Name:    "Counter",
				Address: "0x5FbDB2315678afecb367f032d93F642f64180aa3",
				Abi:     []byte(counterAbiJson),
			}},
		}
		d, err := NewDecoder(cfg, zap.NewNop())
		require.NoError(t, err)

		decoded, err := d.DecodeCalldata(append(common.Hex2Bytes("3fb5c1cb"), word(7)...))
		require.NoError(t, err)
		assert.Equal(t, "setNumber", decoded.MethodName)
		assert.Equal(t, abi.Uint{X: big.NewInt(7), Size: 256}, decoded.Arguments[0].Value)

		decoded, err = d.DecodeCalldata(common.Hex2Bytes("d09de08a"))
		require.NoError(t, err)
		assert.Equal(t, "increment", decoded.MethodName)
		assert.Len(t, decoded.Arguments, 0)
	})

	t.Run("Should load an ABI from a file", func(t *testing.T) {
		abiPath := filepath.Join(t.TempDir(), "counter.abi.json")
		require.NoError(t, os.WriteFile(abiPath, []byte(counterAbiJson), 0644))

		cfg := &decoderConfig.DecoderConfig{
			Contracts: []*decoderConfig.ContractConfig{{Name: "Counter", AbiFile: abiPath}},
		}
		d, err := NewDecoder(cfg, zap.NewNop())
		require.NoError(t, err)

		decoded, err := d.DecodeCalldata(common.Hex2Bytes("d09de08a"))
		require.NoError(t, err)
		assert.Equal(t, "increment", decoded.MethodName)
	})

	t.Run("Should resolve an embedded address from the chain id", func(t *testing.T) {
		cfg := &decoderConfig.DecoderConfig{
			Contracts: []*decoderConfig.ContractConfig{{Name: "WETH9", ChainId: config.ChainId_EthereumHolesky}},
		}
		d, err := NewDecoder(cfg, zap.NewNop())
		require.NoError(t, err)

		loaded := d.ListContracts()
		require.Len(t, loaded, 1)
		assert.Equal(t, common.HexToAddress("0x94373a4919B3240D86eA41593D5eBa789FEF3848"), loaded[0].Address)
	})

	t.Run("Should fail for an unknown embedded contract", func(t *testing.T) {
		cfg := &decoderConfig.DecoderConfig{
			Contracts: []*decoderConfig.ContractConfig{{Name: "Nope"}},
		}
		_, err := NewDecoder(cfg, zap.NewNop())
		assert.NotNil(t, err)
	})

	t.Run("Should fail when the chain has no deployment", func(t *testing.T) {
		cfg := &decoderConfig.DecoderConfig{
			Contracts: []*decoderConfig.ContractConfig{{Name: "WETH9", ChainId: config.ChainId_EthereumHoodi}},
		}
		_, err := NewDecoder(cfg, zap.NewNop())
		assert.NotNil(t, err)
	})

	t.Run("Should fail for a missing ABI file", func(t *testing.T) {
		cfg := &decoderConfig.DecoderConfig{
			Contracts: []*decoderConfig.ContractConfig{{Name: "Counter", AbiFile: "/nonexistent/counter.abi.json"}},
		}
		_, err := NewDecoder(cfg, zap.NewNop())
		assert.NotNil(t, err)
	})
}
