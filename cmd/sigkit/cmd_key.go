package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dhamidi/sigkit/annotations"
	"github.com/dhamidi/sigkit/signature"
)

func newKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "key <class> <method> <descriptor> [parameter-index]",
		Short: "Print the annotations.xml item name for a method or one of its parameters",
		Args:  cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			index := signature.ReturnIndex
			if len(args) == 4 {
				i, err := strconv.Atoi(args[3])
				if err != nil || i < 0 {
					return fmt.Errorf("invalid parameter index: %s", args[3])
				}
				index = i
			}

			key, err := annotations.ItemKey(signature.MethodRef{
				Class:      args[0],
				Name:       args[1],
				Descriptor: args[2],
			}, index)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), key)
			return nil
		},
	}
}
