package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	cfgpkg "github.com/statlook/statlook-cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set statlook configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := effectiveConfig()
		fmt.Printf("runs_dir: %s\n", c.RunsDir)
		fmt.Printf("chart_format: %s\n", c.ChartFormat)
		fmt.Printf("chart_width_in: %.1f\n", c.ChartWidthIn)
		fmt.Printf("chart_height_in: %.1f\n", c.ChartHeightIn)
		fmt.Printf("confidence_level: %.3f\n", c.ConfidenceLevel)
		fmt.Printf("max_rows: %d\n", c.MaxRows)
		fmt.Printf("sample_rows: %d\n", c.SampleRows)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "runs_dir":
			cfg.RunsDir = val
		case "chart_format":
			switch val {
			case "png", "svg", "pdf":
				cfg.ChartFormat = val
			default:
				return fmt.Errorf("unsupported chart_format %q (use png|svg|pdf)", val)
			}
		case "chart_width_in", "chart_height_in", "confidence_level":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return fmt.Errorf("invalid number for %s: %q", key, val)
			}
			switch key {
			case "chart_width_in":
				cfg.ChartWidthIn = f
			case "chart_height_in":
				cfg.ChartHeightIn = f
			case "confidence_level":
				if f <= 0 || f >= 1 {
					return fmt.Errorf("confidence_level must be in (0, 1), got %g", f)
				}
				cfg.ConfidenceLevel = f
			}
		case "max_rows", "sample_rows":
			n, err := strconv.Atoi(val)
			if err != nil || n < 0 {
				return fmt.Errorf("invalid count for %s: %q", key, val)
			}
			if key == "max_rows" {
				cfg.MaxRows = n
			} else {
				cfg.SampleRows = n
			}
		default:
			return fmt.Errorf("unknown config key %q", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Printf("✓ Saved %s\n", key)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
