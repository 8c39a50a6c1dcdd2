package main

import (
	"github.com/spf13/cobra"

	"github.com/veridian-labs/regent/engine"
)

type diffOutput struct {
	Modifications []engine.Modification    `json:"modifications"`
	Triggers      []engine.Trigger         `json:"reassessment_triggers"`
	Flag          *engine.ReassessmentFlag `json:"reassessment_flag,omitempty"`
}

func newDiffCommand() *cobra.Command {
	var (
		oldFile string
		newFile string
		asOf    string
	)

	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Compare two snapshot revisions for substantial modifications and reassessment triggers",
		RunE: func(cmd *cobra.Command, args []string) error {
			oldSnap, err := loadSnapshot(oldFile)
			if err != nil {
				return err
			}

			newSnap, err := loadSnapshot(newFile)
			if err != nil {
				return err
			}

			ref, err := parseAsOf(asOf)
			if err != nil {
				return err
			}

			mods := engine.DetectModifications(oldSnap, newSnap)
			triggers := engine.DetectReassessmentTriggers(oldSnap, newSnap)

			return writeJSON(diffOutput{
				Modifications: mods,
				Triggers:      triggers,
				Flag:          engine.BuildReassessmentFlag(triggers, ref),
			})
		},
	}

	cmd.Flags().StringVarP(&oldFile, "old", "o", "", "Previous snapshot file")
	cmd.Flags().StringVarP(&newFile, "new", "n", "", "Revised snapshot file")
	cmd.Flags().StringVar(&asOf, "as-of", "", "Flag timestamp (RFC 3339, default now)")
	cmd.MarkFlagRequired("old")
	cmd.MarkFlagRequired("new")

	return cmd
}
