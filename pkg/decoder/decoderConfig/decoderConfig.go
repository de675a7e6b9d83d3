package decoderConfig

import (
	"encoding/json"
	"github.com/Layr-Labs/abi-decoder/pkg/config"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"k8s.io/apimachinery/pkg/util/validation/field"
	"sigs.k8s.io/yaml"
	"slices"
)

const (
	EnvPrefix = "DECODER_"

	Debug = "debug"
	Abi   = "abi"
)

// ContractConfig names one contract interface the decoder should load. The
// ABI comes from exactly one place: inline JSON, a file on disk, or the
// embedded well-known set (matched by name when both Abi and AbiFile are
// empty). Address and ChainId are optional; an address-less interface still
// serves selector and topic lookups.
type ContractConfig struct {
	Name    string          `json:"name" yaml:"name"`
	Address string          `json:"address" yaml:"address"`
	ChainId config.ChainId  `json:"chainId" yaml:"chainId"`
	AbiFile string          `json:"abiFile" yaml:"abiFile"`
	Abi     json.RawMessage `json:"abi" yaml:"abi"`
}

func (cc *ContractConfig) Validate() field.ErrorList {
	var allErrors field.ErrorList
	if cc.Name == "" {
		allErrors = append(allErrors, field.Required(field.NewPath("name"), "name is required"))
	}
	if cc.Address != "" && !common.IsHexAddress(cc.Address) {
		allErrors = append(allErrors, field.Invalid(field.NewPath("address"), cc.Address, "invalid contract address"))
	}
	if cc.AbiFile != "" && len(cc.Abi) > 0 {
		allErrors = append(allErrors, field.Invalid(field.NewPath("abiFile"), cc.AbiFile, "abiFile and abi are mutually exclusive"))
	}
	if cc.ChainId != 0 && !slices.Contains(config.SupportedChainIds, cc.ChainId) {
		allErrors = append(allErrors, field.Invalid(field.NewPath("chainId"), cc.ChainId, "unsupported chainId"))
	}
	return allErrors
}

type DecoderConfig struct {
	Debug     bool              `json:"debug" yaml:"debug"`
	Contracts []*ContractConfig `json:"contracts" yaml:"contracts"`
}

func (dc *DecoderConfig) Validate() error {
	var allErrors field.ErrorList
	for _, contract := range dc.Contracts {
		if contractErrors := contract.Validate(); len(contractErrors) > 0 {
			allErrors = append(allErrors, field.Invalid(field.NewPath("contracts"), contract, "invalid contract config"))
		}
	}
	return allErrors.ToAggregate()
}

func NewDecoderConfigFromJsonBytes(data []byte) (*DecoderConfig, error) {
	var c DecoderConfig
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal DecoderConfig from JSON")
	}
	return &c, nil
}

func NewDecoderConfigFromYamlBytes(data []byte) (*DecoderConfig, error) {
	var c DecoderConfig
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal DecoderConfig from YAML")
	}
	return &c, nil
}

func NewDecoderConfig() *DecoderConfig {
	return &DecoderConfig{
		Debug: viper.GetBool(config.NormalizeFlagName(Debug)),
	}
}
