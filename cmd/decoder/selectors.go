package main

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"
)

type selectorListing struct {
	Contract  string
	Address   string         `json:",omitempty"`
	Functions []signatureRef `json:",omitempty"`
	Events    []signatureRef `json:",omitempty"`
	Errors    []signatureRef `json:",omitempty"`
}

type signatureRef struct {
	Id        string
	Signature string
}

var selectorsCmd = &cobra.Command{
	Use:   "selectors",
	Short: "List the function selectors and event topics of the loaded contract interfaces",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := setupDecoder(cmd)
		if err != nil {
			return err
		}

		listings := make([]selectorListing, 0, len(d.ListContracts()))
		for _, contract := range d.ListContracts() {
			listing := selectorListing{Contract: contract.Name}
			if contract.Address != (common.Address{}) {
				listing.Address = contract.Address.Hex()
			}
			for _, fn := range contract.Abi.Functions {
				selector := fn.Selector()
				listing.Functions = append(listing.Functions, signatureRef{
					Id:        hexutil.Encode(selector[:]),
					Signature: fn.Signature(),
				})
			}
			for _, ev := range contract.Abi.Events {
				listing.Events = append(listing.Events, signatureRef{
					Id:        ev.Topic().Hex(),
					Signature: ev.Signature(),
				})
			}
			for _, abiErr := range contract.Abi.Errors {
				selector := abiErr.Selector()
				listing.Errors = append(listing.Errors, signatureRef{
					Id:        hexutil.Encode(selector[:]),
					Signature: abiErr.Signature(),
				})
			}
			listings = append(listings, listing)
		}
		return printJson(listings)
	},
}
