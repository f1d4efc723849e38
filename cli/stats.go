package cli

import (
	"github.com/spf13/cobra"

	"github.com/syncscope/syncscope/pkg/progress"
	"github.com/syncscope/syncscope/pkg/render"
)

func NewStatsCmd() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Render per-epoch stats and a size report",
		Long: `Query the monitored Postgres for per-epoch aggregates and relation sizes,
then render an epoch stats chart and a size report under the output directory.`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 0 {
				logUsageCmd(*cmd, cmd.Use)

				return
			}

			cfg, err := loadConfig()
			if err != nil {
				logErrorCmd(*cmd, err)

				return
			}
			if outDir != "" {
				cfg.OutputDir = outDir
			}
			cfg.finalize()

			pg, err := progress.Connect(cfg.PGHost, cfg.PGPort, cfg.PGUser, cfg.PGPassword, cfg.PGDatabase, cfg.PGSSLMode)
			if err != nil {
				logErrorCmd(*cmd, err)

				return
			}
			defer pg.Close()

			ctx := cmd.Context()
			r := render.New(cfg.OutputDir)

			stats, err := pg.EpochStats(ctx)
			if err != nil {
				logErrorCmd(*cmd, err)

				return
			}
			statsPath, err := r.EpochStats(stats, cfg.PGDatabase)
			if err != nil {
				logErrorCmd(*cmd, err)

				return
			}
			logSuccessCmd(*cmd, "Saved epoch stats to "+statsPath)

			report, err := pg.Sizes(ctx, cfg.PGDatabase)
			if err != nil {
				logErrorCmd(*cmd, err)

				return
			}
			reportPath, err := r.SizeReport(report, cfg.PGDatabase)
			if err != nil {
				logErrorCmd(*cmd, err)

				return
			}
			logSuccessCmd(*cmd, "Saved size report to "+reportPath)
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "", "Output directory for rendered files")

	return cmd
}
