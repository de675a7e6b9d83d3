package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/spf13/cobra"
)

var (
	logAddress string
	logTopics  []string
	logData    string
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Decode an event log from its topics and data",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := setupDecoder(cmd)
		if err != nil {
			return err
		}

		topics := make([]common.Hash, 0, len(logTopics))
		for _, topic := range logTopics {
			b, err := parseHexBytes(topic)
			if err != nil {
				return fmt.Errorf("invalid topic %q: %w", topic, err)
			}
			if len(b) > common.HashLength {
				return fmt.Errorf("topic %q is longer than 32 bytes", topic)
			}
			topics = append(topics, common.BytesToHash(b))
		}

		data, err := parseHexBytes(logData)
		if err != nil {
			return fmt.Errorf("invalid log data: %w", err)
		}

		decoded, err := d.DecodeLog(&types.Log{
			Address: common.HexToAddress(logAddress),
			Topics:  topics,
			Data:    data,
		})
		if err != nil {
			return err
		}
		return printJson(decoded)
	},
}

func init() {
	logCmd.Flags().StringVar(&logAddress, "address", "", "emitting contract address")
	logCmd.Flags().StringSliceVar(&logTopics, "topics", nil, "comma separated log topics, topic0 first")
	logCmd.Flags().StringVar(&logData, "data", "", "hex encoded log data")
}

func parseHexBytes(input string) ([]byte, error) {
	return hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(input), "0x"))
}
