package transactionLogParser

import (
	"fmt"

	"github.com/Layr-Labs/abi-decoder/pkg/abi"
	"github.com/Layr-Labs/abi-decoder/pkg/contractStore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// TransactionLogParser handles the parsing and decoding of Ethereum transaction logs.
// It uses contract ABIs to decode event data into structured format.
type TransactionLogParser struct {
	contractStore contractStore.IContractStore
	logger        *zap.Logger
}

// NewTransactionLogParser creates a new TransactionLogParser with the provided dependencies.
//
// Parameters:
//   - contractStore: Store used to resolve contracts by address
//   - logger: Logger for recording operations
//
// Returns:
//   - *TransactionLogParser: A configured transaction log parser
func NewTransactionLogParser(contractStore contractStore.IContractStore, logger *zap.Logger) *TransactionLogParser {
	return &TransactionLogParser{
		contractStore: contractStore,
		logger:        logger,
	}
}

// DecodeLog resolves the emitting contract in the store and decodes the log
// against that contract's ABI.
func (tlp *TransactionLogParser) DecodeLog(lg *types.Log) (*DecodedLog, error) {
	contract, err := tlp.contractStore.GetContractByAddress(lg.Address)
	if err != nil {
		tlp.logger.Sugar().Debugw("No contract registered for log address",
			zap.String("address", lg.Address.Hex()),
		)
		return nil, err
	}
	return tlp.DecodeLogWithAbi(contract.Abi, lg)
}

// DecodeLogWithAbi decodes a log using the provided ABI.
// It extracts the event name, arguments, and output data from the log.
// Returns the decoded log with structured event data and any error encountered
// during decoding. If no ABI is provided, returns an error.
//
// Parameters:
//   - a: The ABI to use for decoding
//   - lg: The log to decode
//
// Returns:
//   - *DecodedLog: The decoded log with structured data
//   - error: Any error encountered during decoding
func (tlp *TransactionLogParser) DecodeLogWithAbi(a *abi.Abi, lg *types.Log) (*DecodedLog, error) {
	tlp.logger.Sugar().Infow(fmt.Sprintf("Decoding log with txHash: '%s' address: '%s'", lg.TxHash.Hex(), lg.Address.Hex()))

	decodedLog := &DecodedLog{
		Address:  lg.Address.Hex(),
		LogIndex: uint64(lg.Index),
	}

	if a == nil {
		tlp.logger.Sugar().Errorw("No ABI provided for decoding log",
			zap.String("address", lg.Address.Hex()),
		)
		return nil, errors.New("no ABI provided for decoding log")
	}

	event, params, err := a.DecodeLog(lg.Topics, lg.Data)
	if err != nil {
		tlp.logger.Sugar().Debugw("Failed to decode log against ABI",
			zap.Error(err),
			zap.String("address", lg.Address.Hex()),
			zap.String("transactionHash", lg.TxHash.Hex()),
		)
		return decodedLog, err
	}

	decodedLog.EventName = event.Name
	decodedLog.Arguments = make([]Argument, len(params))

	outputData := make(map[string]interface{})
	for i, param := range params {
		decodedLog.Arguments[i] = Argument{
			Name:    param.Name,
			Type:    param.Type.String(),
			Value:   param.Value,
			Indexed: param.Indexed,
		}
		if !param.Indexed && param.Name != "" {
			outputData[param.Name] = param.Value
		}
	}
	if len(outputData) > 0 {
		decodedLog.OutputData = outputData
	}

	return decodedLog, nil
}

// DecodeTransactionInput resolves the target contract in the store and decodes
// calldata against that contract's function set.
func (tlp *TransactionLogParser) DecodeTransactionInput(to common.Address, calldata []byte) (*DecodedTransaction, error) {
	contract, err := tlp.contractStore.GetContractByAddress(to)
	if err != nil {
		tlp.logger.Sugar().Debugw("No contract registered for transaction target",
			zap.String("address", to.Hex()),
		)
		return nil, err
	}
	return tlp.DecodeTransactionInputWithAbi(contract.Abi, calldata)
}

// DecodeTransactionInputWithAbi decodes calldata using the provided ABI. The
// selector picks the function; the remaining bytes decode as its inputs.
func (tlp *TransactionLogParser) DecodeTransactionInputWithAbi(a *abi.Abi, calldata []byte) (*DecodedTransaction, error) {
	if a == nil {
		return nil, errors.New("no ABI provided for decoding transaction input")
	}

	fn, params, err := a.DecodeFunctionInput(calldata)
	if err != nil {
		tlp.logger.Sugar().Debugw("Failed to decode transaction input", zap.Error(err))
		return nil, err
	}

	selector := fn.Selector()
	decoded := &DecodedTransaction{
		MethodName: fn.Name,
		Selector:   hexutil.Encode(selector[:]),
		Arguments:  make([]Argument, len(params)),
	}
	for i, param := range params {
		decoded.Arguments[i] = Argument{
			Name:  param.Name,
			Type:  param.Type.String(),
			Value: param.Value,
		}
	}
	return decoded, nil
}
