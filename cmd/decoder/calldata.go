package main

import (
	"github.com/spf13/cobra"
)

var calldataCmd = &cobra.Command{
	Use:   "calldata [hex]",
	Short: "Decode transaction calldata against the loaded contract interfaces",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := setupDecoder(cmd)
		if err != nil {
			return err
		}

		decoded, err := d.DecodeCalldataFromHex(args[0])
		if err != nil {
			return err
		}
		return printJson(decoded)
	},
}
