package main

import (
	"fmt"
	"steergen/cmd/steergen/ui"
	"steergen/internal/detect"
	"steergen/internal/steering"
	"strings"

	"github.com/spf13/cobra"
)

// targetsCmd lists the supported steering targets
var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "List supported steering targets",
	RunE:  listTargets,
}

// frameworksCmd lists the supported frameworks
var frameworksCmd = &cobra.Command{
	Use:   "frameworks",
	Short: "List supported frameworks",
	RunE:  listFrameworks,
}

func listTargets(cmd *cobra.Command, args []string) error {
	table := ui.NewTable("Steering targets", "ID", "Output", "Layout", "Description")
	for _, id := range steering.Targets() {
		tc := steering.LookupTarget(id)
		layout := "single file"
		if tc.MultipleFiles {
			layout = "multi file"
		}
		table.AddRow(string(id), tc.Path(), layout, tc.Description)
	}
	fmt.Print(table.View(ui.DefaultStyles()))
	return nil
}

func listFrameworks(cmd *cobra.Command, args []string) error {
	table := ui.NewTable("Supported frameworks", "ID", "Name", "Signatures")
	for _, info := range detect.Frameworks() {
		table.AddRow(string(info.ID), info.Name, strings.Join(info.Signatures, ", "))
	}
	fmt.Print(table.View(ui.DefaultStyles()))
	return nil
}
