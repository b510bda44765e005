package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"NotePDF/internal/config"
	"NotePDF/internal/convert"
	"NotePDF/internal/output"
)

func NewConvertCmd(deps *Dependencies) *cobra.Command {
	var (
		configPath string
		preview    bool
		strict     bool
		noPressure bool
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "convert <backup-archive> <output-directory>",
		Short: "Render every note in a backup to PDF",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose && deps.Level != nil {
				deps.Level.Set(slog.LevelDebug)
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if cmd.Flags().Changed("preview") {
				cfg.Preview = preview
			}
			if cmd.Flags().Changed("strict") {
				cfg.Strict = strict
			}
			if noPressure {
				cfg.Tuning.Pressure = false
			}

			c := convert.New(cfg, deps.Logger, output.NewFormatter(deps.Out))
			_, err = c.Run(cmd.Context(), args[0], args[1])
			return err
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/notepdf/config.toml)")
	cmd.Flags().BoolVar(&preview, "preview", false, "also write a PNG per page next to each PDF")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail a note when a page has no stroke data")
	cmd.Flags().BoolVar(&noPressure, "no-pressure", false, "draw every stroke at fixed width")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log every page")

	return cmd
}
