package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"medcalc/internal/calculator/service"
)

func newRunCmd() *cobra.Command {
	var (
		inputs    []string
		precision int
	)
	cmd := &cobra.Command{
		Use:   "run <id>",
		Short: "Evaluate a calculator and print its envelope",
		Example: "  medcalc run anion_gap --input na=140 --input cl=104 --input hco3=24\n" +
			"  medcalc run qtc --input qt_ms=400 --input heart_rate=75 --input sex=female --precision 1",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parseInputs(inputs)
			if err != nil {
				return err
			}
			req := service.RunRequest{Name: args[0], Inputs: parsed}
			if cmd.Flags().Changed("precision") {
				req.Precision = &precision
			}
			return runCalculator(cmd, req)
		},
	}
	f := cmd.Flags()
	f.StringArrayVarP(&inputs, "input", "i", nil, "Input as key=value; repeatable")
	f.IntVarP(&precision, "precision", "p", 0, "Round numeric results to this many decimals")
	return cmd
}

func runCalculator(cmd *cobra.Command, req service.RunRequest) error {

	svc, err := loadService()
	if err != nil {
		return err
	}
	env := svc.Run(cmd.Context(), req)
	if err := writeJSON(cmd.OutOrStdout(), env); err != nil {
		return err
	}
	if !env.OK() {
		return fmt.Errorf("%s: %s", env.ID, env.Error)
	}
	return nil
}

// parseInputs turns key=value pairs into an input map. Values are read as
// booleans, then numbers, and otherwise kept as strings.
func parseInputs(pairs []string) (map[string]any, error) {
	out := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("input %q must be key=value", pair)
		}
		out[key] = parseValue(strings.TrimSpace(raw))
	}
	return out, nil
}

func parseValue(raw string) any {
	switch strings.ToLower(raw) {
	case "true":
		return true
	case "false":
		return false
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	return raw
}
