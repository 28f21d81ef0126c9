package cmd

import (
	"github.com/spf13/cobra"

	"github.com/km-arc/go-inject/app"
	"github.com/km-arc/go-inject/framework/container"
)

func newDemoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Resolve UserService and call DoSomething",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := container.New()
			registry := container.NewProviderRegistry(c)
			if err := registry.Register(&app.AppServiceProvider{Out: cmd.OutOrStdout()}); err != nil {
				return err
			}

			svc, err := container.Resolve[*app.UserService](c)
			if err != nil {
				return err
			}
			svc.DoSomething()
			return nil
		},
	}
}
