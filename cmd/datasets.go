package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/statlook/statlook-cli/internal/dataset"
)

var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "List bundled datasets",
	RunE: func(cmd *cobra.Command, args []string) error {
		infos, err := dataset.List()
		if err != nil {
			return err
		}
		for _, d := range infos {
			fmt.Printf("- %s: %s\n", d.Name, d.Title)
			if d.Description != "" {
				fmt.Printf("    %s\n", d.Description)
			}
			if d.Source != "" {
				fmt.Printf("    source: %s\n", d.Source)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(datasetsCmd)
}
