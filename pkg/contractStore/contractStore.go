package contractStore

import (
	"github.com/Layr-Labs/abi-decoder/pkg/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Contract pairs a deployed address with its parsed interface.
type Contract struct {
	Name    string
	Address common.Address
	Abi     *abi.Abi
}

// IContractStore is an interface whose implementation resolves contracts and
// their interface entries for decoding calldata and logs
type IContractStore interface {
	GetContractByAddress(address common.Address) (*Contract, error)

	GetContractByName(name string) (*Contract, error)

	ListContracts() []*Contract

	// FunctionBySelector resolves a 4-byte selector across every held contract.
	FunctionBySelector(selector [4]byte) (*Contract, *abi.Function, error)

	// EventByTopic resolves a topic0 hash across every held contract.
	EventByTopic(topic common.Hash) (*Contract, *abi.Event, error)
}
