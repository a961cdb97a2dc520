package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"medcalc/internal/calculators"
	"medcalc/internal/platform/config"
)

func newCheckCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a server config file against the catalog",
		Long: "check loads a YAML config the way the server does, validates it, and confirms\n" +
			"that every calculator listed under required_calculators is registered.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			registry, err := calculators.NewRegistry()
			if err != nil {
				return err
			}
			if err := registry.Require(cfg.RequiredCalculators...); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d calculators registered, %d required present\n",
				registry.Len(), len(cfg.RequiredCalculators))
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "config", "c", "", "Path to the YAML config file (required)")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}
