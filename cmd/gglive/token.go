package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/gglive"
)

func newTokenCmd() *cobra.Command {
	var length int
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a random access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tok, err := gglive.RandomToken(length)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().IntVarP(&length, "length", "n", 16, "token length")
	return cmd
}
