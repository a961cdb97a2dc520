package main

import (
	"github.com/spf13/cobra"

	dErrors "medcalc/pkg/domain-errors"
)

func newDescribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <id>",
		Short: "Show the inputs a calculator accepts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return err
			}
			desc, err := svc.Describe(cmd.Context(), args[0])
			if err != nil {
				return dErrors.New(dErrors.CodeOf(err), dErrors.MessageOf(err))
			}
			return writeJSON(cmd.OutOrStdout(), desc)
		},
	}
}
