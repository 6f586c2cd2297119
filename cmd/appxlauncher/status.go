package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"appxlauncher/internal/app"
)

func init() {
	rootCmd.AddCommand(cmdStatus)
}

var (
	statusLabelStyle = lipgloss.NewStyle().Bold(true)
	statusOKStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	statusErrStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	statusBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

var cmdStatus = &cobra.Command{
	Use:   "status",
	Short: "Show the resolved package, activation id and module path",
	Long:  "Reads the config and resolves the installed package and module path without registering a debugger or activating anything.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := controller().Status(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderStatus(report))
		return nil
	},
}

func renderStatus(r app.StatusReport) string {
	rows := [][2]string{
		{"Config", r.ConfigPath},
		{"Package family", orDash(r.Config.PackageFamilyName)},
		{"App id", orDash(r.Config.AppID)},
		{"Activation id", orDash(r.AppUserModelID)},
	}
	if r.PackageErr != nil {
		rows = append(rows, [2]string{"Package", statusErrStyle.Render(r.PackageErr.Error())})
	} else {
		rows = append(rows, [2]string{"Package", statusOKStyle.Render(r.PackageFullName)})
	}
	switch {
	case r.ModulePath == "":
		rows = append(rows, [2]string{"Module", "- (no InjectDll, launch only)"})
	case r.ModuleExists:
		rows = append(rows, [2]string{"Module", statusOKStyle.Render(r.ModulePath)})
	default:
		rows = append(rows, [2]string{"Module", statusErrStyle.Render(r.ModulePath + " (missing)")})
	}
	resume := "only after successful injection"
	if r.Config.AlwaysResume {
		resume = "always"
	}
	rows = append(rows, [2]string{"Resume target", resume})

	width := 0
	for _, row := range rows {
		width = max(width, len(row[0]))
	}
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		label := statusLabelStyle.Render(row[0] + ":" + strings.Repeat(" ", width-len(row[0])))
		lines = append(lines, label+" "+row[1])
	}
	return statusBoxStyle.Render(strings.Join(lines, "\n"))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
