package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Layr-Labs/abi-decoder/pkg/config"
	"github.com/Layr-Labs/abi-decoder/pkg/decoder"
	"github.com/Layr-Labs/abi-decoder/pkg/decoder/decoderConfig"
	"github.com/Layr-Labs/abi-decoder/pkg/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "decoder",
	Short: "Decode Ethereum calldata and event logs",
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var configFile string
var Config *decoderConfig.DecoderConfig

func init() {
	cobra.OnInitialize(initConfigIfPresent)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	rootCmd.PersistentFlags().Bool(decoderConfig.Debug, false, `"true" or "false"`)
	rootCmd.PersistentFlags().String(decoderConfig.Abi, "", "path to an ABI JSON file to load")

	viper.SetEnvPrefix(decoderConfig.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(calldataCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(selectorsCmd)
}

func initConfigIfPresent() {
	if configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			panic(err)
		}
		config, err := decoderConfig.NewDecoderConfigFromYamlBytes(data)
		if err != nil {
			panic(err)
		}
		Config = config
	} else {
		Config = decoderConfig.NewDecoderConfig()
	}
}

func initCmdFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if err := viper.BindPFlag(config.KebabToSnakeCase(f.Name), f); err != nil {
			fmt.Printf("Failed to bind flag '%s': %+v\n", f.Name, err)
		}
		if err := viper.BindEnv(f.Name); err != nil {
			fmt.Printf("Failed to bind env '%s': %+v\n", f.Name, err)
		}
	})
}

// setupDecoder runs the shared preamble of every subcommand: bind flags,
// finish the config, validate it and build the decoder.
func setupDecoder(cmd *cobra.Command) (*decoder.Decoder, error) {
	initCmdFlags(cmd)

	// Flags bind into viper after OnInitialize has already built Config,
	// so the debug flag has to be applied here.
	if viper.GetBool(config.NormalizeFlagName(decoderConfig.Debug)) {
		Config.Debug = true
	}
	applyAbiFlag()

	l, _ := logger.NewLogger(&logger.LoggerConfig{Debug: Config.Debug})

	if err := Config.Validate(); err != nil {
		l.Sugar().Errorw("Invalid configuration", "error", err)
		return nil, err
	}

	return decoder.NewDecoder(Config, l)
}

// applyAbiFlag appends the --abi file to the configured contracts, named
// after the file itself.
func applyAbiFlag() {
	abiFile := viper.GetString(config.NormalizeFlagName(decoderConfig.Abi))
	if abiFile == "" {
		return
	}
	name := filepath.Base(abiFile)
	name = strings.TrimSuffix(name, ".json")
	name = strings.TrimSuffix(name, ".abi")
	Config.Contracts = append(Config.Contracts, &decoderConfig.ContractConfig{
		Name:    name,
		AbiFile: abiFile,
	})
}

func printJson(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func main() {
	Execute()
}
