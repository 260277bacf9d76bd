package main

import (
	"fmt"
	"steergen/cmd/steergen/ui"
	"steergen/internal/detect"

	"github.com/spf13/cobra"
)

// detectCmd probes the project for framework manifests
var detectCmd = &cobra.Command{
	Use:   "detect [path]",
	Short: "Detect a project's framework",
	Long: `Probes the project for framework manifests and prints the detected
framework together with the files worth reading first.

Examples:
  steergen detect
  steergen detect ./shop`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDetect,
}

func runDetect(cmd *cobra.Command, args []string) error {
	root := projectRoot(args)
	detection := detect.Probe(root)
	styles := ui.DefaultStyles()

	fmt.Printf("%s %s\n", styles.Bold.Render("Framework:"), detection.Framework.DisplayName())
	fmt.Printf("%s %s\n", styles.Bold.Render("ID:"), string(detection.Framework))

	supported := styles.Success.Render("yes")
	if !detection.Supported {
		supported = styles.Error.Render("no")
	}
	fmt.Printf("%s %s\n", styles.Bold.Render("Supported:"), supported)

	if len(detection.ImportantFiles) > 0 {
		fmt.Println(styles.Bold.Render("Files worth reading:"))
		for _, file := range detection.ImportantFiles {
			fmt.Printf("  %s\n", file)
		}
	}
	return nil
}
