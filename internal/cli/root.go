package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"NotePDF/internal/version"
)

type Dependencies struct {
	Logger *slog.Logger
	Level  *slog.LevelVar // raised to debug by --verbose
	Out    io.Writer
}

func NewRootCmd(deps *Dependencies) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "notepdf",
		Short:         "Convert stylus note backups to PDF",
		Long:          "A CLI tool that reads a note-taking app backup archive and renders every handwritten note into a PDF, one file per note.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(version.Full() + "\n")
	rootCmd.SetOut(deps.Out)

	rootCmd.AddCommand(NewConvertCmd(deps))
	rootCmd.AddCommand(NewListCmd(deps))
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(version.Full())
		},
	}
}
