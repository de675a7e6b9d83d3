package config

import "strings"

type ChainId uint

const (
	ChainId_EthereumMainnet ChainId = 1
	ChainId_EthereumHolesky ChainId = 17000
	ChainId_EthereumHoodi   ChainId = 560048
)

var (
	SupportedChainIds = []ChainId{
		ChainId_EthereumMainnet,
		ChainId_EthereumHolesky,
		ChainId_EthereumHoodi,
	}
)

// NormalizeFlagName maps a CLI flag name to the key viper stores it
// under, matching the env key replacer the commands install.
func NormalizeFlagName(name string) string {
	return strings.ToLower(strings.NewReplacer("-", "_", ".", "_").Replace(name))
}

func KebabToSnakeCase(s string) string {
	return strings.ReplaceAll(s, "-", "_")
}
