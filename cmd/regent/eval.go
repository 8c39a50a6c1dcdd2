package main

import (
	"github.com/spf13/cobra"

	"github.com/veridian-labs/regent/engine"
)

type evalOutput struct {
	Classification engine.RiskClassification `json:"classification"`
	Tasks          []engine.ComplianceTask   `json:"tasks"`
}

func newEvalCommand() *cobra.Command {
	var (
		file string
		asOf string
	)

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Classify a snapshot file and derive its compliance tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot(file)
			if err != nil {
				return err
			}

			ref, err := parseAsOf(asOf)
			if err != nil {
				return err
			}

			rc := engine.Classify(snap)
			tasks := engine.GenerateTasks(snap, rc, ref)

			return writeJSON(evalOutput{
				Classification: rc,
				Tasks:          tasks,
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Snapshot file (.json, .yaml, .yml)")
	cmd.Flags().StringVar(&asOf, "as-of", "", "Reference time for task due dates (RFC 3339, default now)")
	cmd.MarkFlagRequired("file")

	return cmd
}
