package main

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"appxlauncher/internal/app"
)

func runRoot(cmd *cobra.Command, args []string) error {
	switch app.DetectMode(args) {
	case app.ModeInject:
		return runInject(cmd, args)
	default:
		return runLaunch(cmd)
	}
}

func runLaunch(cmd *cobra.Command) error {
	spin := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
	spin.Suffix = " Activating package..."
	spin.Start()
	res, err := controller().Launch(cmd.Context())
	spin.Stop()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Activated %s (package %s, pid %d)\n", res.AppUserModelID, res.PackageFullName, res.ProcessID)
	return nil
}

func runInject(cmd *cobra.Command, args []string) error {
	res, err := controller().Inject(cmd.Context(), app.InjectParams{Args: args})
	if err != nil {
		return err
	}
	if res.Skipped {
		return nil
	}

	state := "loaded"
	if !res.Confirmed {
		state = "load not confirmed"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Injected %s into pid %d (%s), resumed tid %d\n",
		res.ModulePath, res.Request.ProcessID, state, res.Request.ThreadID)
	return nil
}
