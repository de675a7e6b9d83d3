package contracts

import (
	"encoding/json"
	"fmt"

	"github.com/Layr-Labs/abi-decoder/pkg/config"
	"github.com/ethereum/go-ethereum/common"
)

type chainEntry struct {
	ChainId   config.ChainId    `json:"chainId"`
	Contracts map[string]string `json:"contracts"`
}

// GetContractAddress returns the deployed address of an embedded well-known
// contract on the given chain.
func GetContractAddress(contractName string, chainId config.ChainId) (common.Address, error) {
	bytes, err := abis.ReadFile("chain-contracts.json")
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to read chain-contracts.json: %w", err)
	}

	var entries []chainEntry
	if err := json.Unmarshal(bytes, &entries); err != nil {
		return common.Address{}, fmt.Errorf("failed to parse chain-contracts.json: %w", err)
	}

	for _, entry := range entries {
		if entry.ChainId == chainId {
			addrStr := entry.Contracts[contractName]
			if addrStr == "" {
				return common.Address{}, fmt.Errorf("no address found for contract %s on chain %d", contractName, chainId)
			}
			return common.HexToAddress(addrStr), nil
		}
	}

	return common.Address{}, fmt.Errorf("no address found for contract %s on chain %d", contractName, chainId)
}
