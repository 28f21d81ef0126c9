package cmd

import (
	"fmt"
	"reflect"

	"github.com/spf13/cobra"

	"github.com/km-arc/go-inject/app"
	kernel "github.com/km-arc/go-inject/framework/app"
)

func newGraphCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "graph [contract]",
		Short: "Print dependency trees and validate every registration",
		Long: `Prints the dependency tree of every registered contract, or only of the
named one, without constructing anything. Exits non-zero when any
registration cannot be resolved.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application := kernel.New(envFiles(cmd)...)
			if err := application.Register(&app.AppServiceProvider{}); err != nil {
				return err
			}

			contracts := application.Contracts()
			if len(args) == 1 {
				contract, ok := findContract(contracts, args[0])
				if !ok {
					return fmt.Errorf("no registered contract named %s", args[0])
				}
				contracts = []reflect.Type{contract}
			}

			out := cmd.OutOrStdout()
			for _, contract := range contracts {
				node, err := application.Describe(contract)
				if err != nil {
					fmt.Fprintf(out, "%v => error: %v\n", contract, err)
					continue
				}
				fmt.Fprint(out, node)
			}

			if err := application.Validate(); err != nil {
				return fmt.Errorf("invalid container: %w", err)
			}
			fmt.Fprintln(out, "ok")
			return nil
		},
	}
}

func findContract(contracts []reflect.Type, name string) (reflect.Type, bool) {
	for _, contract := range contracts {
		if fmt.Sprint(contract) == name {
			return contract, true
		}
	}
	return nil, false
}
