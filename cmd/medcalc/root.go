package main

import (
	"encoding/json"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"medcalc/internal/calculator/service"
	"medcalc/internal/calculators"
)

// version is set at build time via -ldflags.
var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "medcalc",
		Short:         "Evaluate clinical calculators",
		Long:          "medcalc lists, describes and runs the clinical calculators served by the medcalc API,\nand validates server configuration files.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
	}
	root.AddCommand(newListCmd())
	root.AddCommand(newDescribeCmd())
	root.AddCommand(newRunCmd())
	root.AddCommand(newCheckCmd())
	return root
}

// loadService builds the same dispatch service the HTTP server uses, with
// logging silenced so stdout carries only results.
func loadService() (*service.Service, error) {
	engine, err := calculators.NewEngine()
	if err != nil {
		return nil, err
	}
	return service.New(engine, service.WithLogger(slog.New(slog.DiscardHandler)))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
