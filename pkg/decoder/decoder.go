package decoder

import (
	"encoding/hex"
	"os"
	"strings"

	"github.com/Layr-Labs/abi-decoder/contracts"
	"github.com/Layr-Labs/abi-decoder/pkg/abi"
	"github.com/Layr-Labs/abi-decoder/pkg/config"
	"github.com/Layr-Labs/abi-decoder/pkg/contractStore"
	"github.com/Layr-Labs/abi-decoder/pkg/contractStore/inMemoryContractStore"
	"github.com/Layr-Labs/abi-decoder/pkg/decoder/decoderConfig"
	"github.com/Layr-Labs/abi-decoder/pkg/transactionLogParser"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Decoder wires the configured contract interfaces into a store and exposes
// the decode operations the CLI runs.
type Decoder struct {
	config *decoderConfig.DecoderConfig
	logger *zap.Logger
	store  contractStore.IContractStore
	parser *transactionLogParser.TransactionLogParser
}

func NewDecoder(cfg *decoderConfig.DecoderConfig, logger *zap.Logger) (*Decoder, error) {
	loaded, err := loadContracts(cfg, logger)
	if err != nil {
		return nil, err
	}

	store := inMemoryContractStore.NewInMemoryContractStore(loaded, logger)
	logger.Sugar().Infow("Decoder initialized", zap.Int("contracts", len(loaded)))

	return &Decoder{
		config: cfg,
		logger: logger,
		store:  store,
		parser: transactionLogParser.NewTransactionLogParser(store, logger),
	}, nil
}

func loadContracts(cfg *decoderConfig.DecoderConfig, logger *zap.Logger) ([]*contractStore.Contract, error) {
	if len(cfg.Contracts) == 0 {
		return loadEmbeddedContracts(logger)
	}

	loaded := make([]*contractStore.Contract, 0, len(cfg.Contracts))
	for _, cc := range cfg.Contracts {
		contract, err := loadContract(cc, logger)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load contract %s", cc.Name)
		}
		loaded = append(loaded, contract)
	}
	return loaded, nil
}

func loadContract(cc *decoderConfig.ContractConfig, logger *zap.Logger) (*contractStore.Contract, error) {
	var parsedAbi *abi.Abi
	var err error
	switch {
	case len(cc.Abi) > 0:
		parsedAbi, err = abi.ParseAbiJSON(cc.Abi)
	case cc.AbiFile != "":
		var data []byte
		if data, err = os.ReadFile(cc.AbiFile); err != nil {
			return nil, errors.Wrapf(err, "failed to read ABI file %s", cc.AbiFile)
		}
		parsedAbi, err = abi.ParseAbiJSON(data)
	default:
		parsedAbi, err = contracts.GetContractAbi(cc.Name)
	}
	if err != nil {
		return nil, err
	}

	var address common.Address
	if cc.Address != "" {
		address = common.HexToAddress(cc.Address)
	} else if cc.ChainId != 0 {
		if address, err = contracts.GetContractAddress(cc.Name, cc.ChainId); err != nil {
			return nil, err
		}
	}

	logger.Sugar().Debugw("Loaded contract interface",
		zap.String("name", cc.Name),
		zap.String("address", address.Hex()),
	)
	return &contractStore.Contract{
		Name:    cc.Name,
		Address: address,
		Abi:     parsedAbi,
	}, nil
}

// loadEmbeddedContracts is the zero-config default: every embedded interface,
// with mainnet addresses where chain-contracts.json has one.
func loadEmbeddedContracts(logger *zap.Logger) ([]*contractStore.Contract, error) {
	names := contracts.ContractNames()
	loaded := make([]*contractStore.Contract, 0, len(names))
	for _, name := range names {
		parsedAbi, err := contracts.GetContractAbi(name)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load embedded contract %s", name)
		}
		contract := &contractStore.Contract{Name: name, Abi: parsedAbi}
		if address, err := contracts.GetContractAddress(name, config.ChainId_EthereumMainnet); err == nil {
			contract.Address = address
		} else {
			logger.Sugar().Debugw("No mainnet address for embedded contract", zap.String("name", name))
		}
		loaded = append(loaded, contract)
	}
	return loaded, nil
}

// DecodeCalldata resolves the 4-byte selector across every loaded contract
// and decodes the remaining bytes as that function's inputs.
func (d *Decoder) DecodeCalldata(calldata []byte) (*transactionLogParser.DecodedTransaction, error) {
	if len(calldata) < 4 {
		return nil, &abi.DecodeError{What: "function selector", Want: 4, Have: len(calldata)}
	}
	var selector [4]byte
	copy(selector[:], calldata)

	contract, _, err := d.store.FunctionBySelector(selector)
	if err != nil {
		return nil, err
	}
	return d.parser.DecodeTransactionInputWithAbi(contract.Abi, calldata)
}

// DecodeCalldataFromHex accepts hex calldata with or without a 0x prefix and
// with surrounding whitespace.
func (d *Decoder) DecodeCalldataFromHex(input string) (*transactionLogParser.DecodedTransaction, error) {
	calldata, err := decodeHexInput(input)
	if err != nil {
		return nil, err
	}
	return d.DecodeCalldata(calldata)
}

// DecodeLog decodes a log against the contract registered at its address,
// falling back to a topic0 lookup across every loaded contract for logs from
// unregistered addresses.
func (d *Decoder) DecodeLog(lg *types.Log) (*transactionLogParser.DecodedLog, error) {
	contract, err := d.store.GetContractByAddress(lg.Address)
	if err == nil {
		return d.parser.DecodeLogWithAbi(contract.Abi, lg)
	}

	topic := common.Hash{}
	if len(lg.Topics) > 0 {
		topic = lg.Topics[0]
	}
	contract, _, err = d.store.EventByTopic(topic)
	if err != nil {
		d.logger.Sugar().Debugw("Log matches no registered contract or event",
			zap.String("address", lg.Address.Hex()),
			zap.String("topic", topic.Hex()),
		)
		return nil, err
	}
	return d.parser.DecodeLogWithAbi(contract.Abi, lg)
}

// ListContracts returns the loaded contracts in registration order.
func (d *Decoder) ListContracts() []*contractStore.Contract {
	return d.store.ListContracts()
}

func decodeHexInput(input string) ([]byte, error) {
	cleaned := strings.TrimPrefix(strings.TrimSpace(input), "0x")
	decoded, err := hex.DecodeString(cleaned)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid hex input")
	}
	return decoded, nil
}
