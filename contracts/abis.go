package contracts

import (
	"embed"
	"fmt"
	"strings"

	"github.com/Layr-Labs/abi-decoder/pkg/abi"
)

//go:embed *.json
var abis embed.FS

const abiSuffix = ".abi.json"

// GetContractAbi returns the parsed interface of an embedded well-known
// contract such as "ERC20" or "WETH9".
func GetContractAbi(contractName string) (*abi.Abi, error) {
	abiFile := contractName + abiSuffix
	abiBytes, err := abis.ReadFile(abiFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded ABI file %s: %w", abiFile, err)
	}

	parsedAbi, err := abi.ParseAbiJSON(abiBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI: %w", err)
	}
	return parsedAbi, nil
}

// ContractNames lists the embedded contract interfaces.
func ContractNames() []string {
	entries, err := abis.ReadDir(".")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), abiSuffix) {
			names = append(names, strings.TrimSuffix(entry.Name(), abiSuffix))
		}
	}
	return names
}
