package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"appxlauncher/internal/app"
	"appxlauncher/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "appxlauncher [-p <pid> -tid <tid>]",
	Short: "appxlauncher: start a packaged app with a module loaded before its first instruction",
	Long: `Run without arguments, appxlauncher registers itself as the package debugger and activates the
application named in appxlauncher.json. Windows then runs appxlauncher again with -p/-tid for the
new, still suspended process; that invocation loads InjectDll into it and resumes it.`,
	Args: cobra.ArbitraryArgs,
	// The OS passes "-p <pid> -tid <tid>" verbatim; pflag would read -tid as -t -i -d.
	DisableFlagParsing: true,
	SilenceUsage:       true,
	SilenceErrors:      true,
	RunE:               runRoot,
}

// controllerAPI is the part of app.App the commands use.
type controllerAPI interface {
	Launch(ctx context.Context) (app.LaunchResult, error)
	Inject(ctx context.Context, params app.InjectParams) (app.InjectResult, error)
	Status(ctx context.Context) (app.StatusReport, error)
	ClearRegistration(ctx context.Context) (app.ClearResult, error)
}

var controllerFactory = func() controllerAPI {
	return app.New(app.Options{ExePath: executablePath()})
}

func controller() controllerAPI {
	return controllerFactory()
}

func executablePath() string {
	exe, err := os.Executable()
	if err != nil {
		return os.Args[0]
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		return resolved
	}
	return exe
}

func init() {
	// Orchestrator runs usually start from Explorer; don't refuse them.
	cobra.MousetrapHelpText = ""
}

func main() {
	logging.ConfigureRuntime(executablePath())
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Fatal().Err(err).Strs("args", os.Args[1:]).Msg("appxlauncher failed")
	}
}
