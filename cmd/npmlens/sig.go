// # cmd/npmlens/sig.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sig <module:symbol>",
		Short: "Show the signature of an exported symbol",
		Long: "Resolves a symbol through the package's files and import chains and prints\n" +
			"its parameters and return type. Example: npmlens sig express:Router",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, formatter, shutdown, err := setup(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer shutdown()

			rendered, err := a.Signature(cmd.Context(), args[0], formatter)
			if err != nil {
				return err
			}
			fmt.Println(rendered)
			return nil
		},
	}
}
