package cli

import (
	"github.com/spf13/cobra"

	"NotePDF/internal/config"
	"NotePDF/internal/convert"
	"NotePDF/internal/output"
)

func NewListCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <backup-archive>",
		Short: "Show the notes in a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(deps.Out)

			notes, err := convert.New(config.Default(), deps.Logger, formatter).Notes(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(notes) == 0 {
				formatter.Info("No notes found")
				return nil
			}
			formatter.NoteTree(notes)
			return nil
		},
	}

	return cmd
}
