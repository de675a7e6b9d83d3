package inMemoryContractStore

import (
	"fmt"
	"slices"

	"github.com/Layr-Labs/abi-decoder/pkg/abi"
	"github.com/Layr-Labs/abi-decoder/pkg/contractStore"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

type selectorEntry struct {
	contract *contractStore.Contract
	function *abi.Function
}

type topicEntry struct {
	contract *contractStore.Contract
	event    *abi.Event
}

type InMemoryContractStore struct {
	contracts  []*contractStore.Contract
	byAddress  map[common.Address]*contractStore.Contract
	byName     map[string]*contractStore.Contract
	bySelector map[[4]byte]selectorEntry
	byTopic    map[common.Hash]topicEntry
	logger     *zap.Logger
}

func NewInMemoryContractStore(contracts []*contractStore.Contract, logger *zap.Logger) *InMemoryContractStore {
	ics := &InMemoryContractStore{
		contracts:  make([]*contractStore.Contract, 0, len(contracts)),
		byAddress:  make(map[common.Address]*contractStore.Contract),
		byName:     make(map[string]*contractStore.Contract),
		bySelector: make(map[[4]byte]selectorEntry),
		byTopic:    make(map[common.Hash]topicEntry),
		logger:     logger,
	}
	for _, contract := range contracts {
		ics.addContract(contract)
	}
	ics.buildLookupTables()
	return ics
}

func (ics *InMemoryContractStore) addContract(contract *contractStore.Contract) {
	// The zero address marks an address-less interface; those never enter
	// the address index and never displace each other.
	hasAddress := contract.Address != (common.Address{})
	if hasAddress {
		if existing, ok := ics.byAddress[contract.Address]; ok {
			ics.logger.Warn("Contract address registered twice, keeping the later entry",
				zap.String("address", contract.Address.Hex()),
				zap.String("replaced", existing.Name),
				zap.String("replacement", contract.Name),
			)
			ics.contracts = slices.DeleteFunc(ics.contracts, func(c *contractStore.Contract) bool {
				return c == existing
			})
			if ics.byName[existing.Name] == existing {
				delete(ics.byName, existing.Name)
			}
		}
		ics.byAddress[contract.Address] = contract
	}
	ics.contracts = append(ics.contracts, contract)
	if contract.Name != "" {
		ics.byName[contract.Name] = contract
	}
}

func (ics *InMemoryContractStore) buildLookupTables() {
	for _, contract := range ics.contracts {
		if contract.Abi == nil {
			continue
		}
		for i := range contract.Abi.Functions {
			fn := &contract.Abi.Functions[i]
			ics.bySelector[fn.Selector()] = selectorEntry{contract: contract, function: fn}
		}
		for i := range contract.Abi.Events {
			ev := &contract.Abi.Events[i]
			if ev.Anonymous {
				continue
			}
			ics.byTopic[ev.Topic()] = topicEntry{contract: contract, event: ev}
		}
	}
}

func (ics *InMemoryContractStore) GetContractByAddress(address common.Address) (*contractStore.Contract, error) {
	contract, ok := ics.byAddress[address]
	if !ok {
		return nil, fmt.Errorf("no contract registered at address %s", address.Hex())
	}
	return contract, nil
}

func (ics *InMemoryContractStore) GetContractByName(name string) (*contractStore.Contract, error) {
	contract, ok := ics.byName[name]
	if !ok {
		return nil, fmt.Errorf("no contract registered with name %s", name)
	}
	return contract, nil
}

func (ics *InMemoryContractStore) ListContracts() []*contractStore.Contract {
	return ics.contracts
}

func (ics *InMemoryContractStore) FunctionBySelector(selector [4]byte) (*contractStore.Contract, *abi.Function, error) {
	entry, ok := ics.bySelector[selector]
	if !ok {
		return nil, nil, &abi.SelectorNotFoundError{Selector: selector}
	}
	return entry.contract, entry.function, nil
}

func (ics *InMemoryContractStore) EventByTopic(topic common.Hash) (*contractStore.Contract, *abi.Event, error) {
	entry, ok := ics.byTopic[topic]
	if !ok {
		return nil, nil, &abi.TopicNotFoundError{Topic: topic}
	}
	return entry.contract, entry.event, nil
}
