package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(cmdDisable)
}

var cmdDisable = &cobra.Command{
	Use:   "disable",
	Short: "Clear the package debugger registration",
	Long:  "Disables the debugger registration for the configured package. Use it when a launcher run died before it could clean up, leaving every later start of the app routed through the injector.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := controller().ClearRegistration(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Debugger registration cleared for %s\n", res.PackageFullName)
		return nil
	},
}
