package main

import (
	"fmt"

	"github.com/milk9111/starfall/assets"
	"github.com/spf13/cobra"
)

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Print the asset manifest",
	Long:  `Validates the embedded asset manifest and prints one line per entry.`,
	RunE:  runManifest,
}

func runManifest(cmd *cobra.Command, args []string) error {
	m, err := assets.DefaultManifest()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "base path: %s\n\n", m.BasePath)

	maxKeyLen := len("KEY")
	for _, d := range m.Entries {
		if len(d.Key) > maxKeyLen {
			maxKeyLen = len(d.Key)
		}
	}

	fmt.Fprintf(out, "  %-*s  %-11s  %s\n", maxKeyLen, "KEY", "KIND", "PATH")
	for _, d := range m.Entries {
		path := d.Path
		if d.Kind == assets.KindSpriteSheet {
			path = fmt.Sprintf("%s (%dx%d frames)", d.Path, d.FrameWidth, d.FrameHeight)
		}
		fmt.Fprintf(out, "  %-*s  %-11s  %s\n", maxKeyLen, d.Key, d.Kind, path)
	}
	return nil
}
