package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/syncscope/syncscope/compare"
	"github.com/syncscope/syncscope/pkg/render"
	"github.com/syncscope/syncscope/pkg/storage/sqlite"
)

func NewCompareCmd() *cobra.Command {
	var (
		storePath string
		dbName    string
		outDir    string
		selectArg string
		tagsArg   []string
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Render a comparison chart for selected versions",
		Long: `Select recorded versions and render their memory and CPU series into an
HTML comparison chart. Without --select or --versions the selection is
interactive.`,
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
			if storePath != "" {
				cfg.StorePath = storePath
			}
			if outDir != "" {
				cfg.OutputDir = outDir
			}
			cfg.finalize()
			if dbName == "" {
				dbName = cfg.PGDatabase
			}

			db, err := sqlite.NewDatabase(cfg.StorePath)
			if err != nil {
				logErrorCmd(*cmd, err)

				return
			}
			store := sqlite.NewStore(db)
			defer store.Close()

			svc := compare.NewService(store)
			ctx := cmd.Context()

			var chosen []string
			switch {
			case len(tagsArg) > 0:
				chosen = tagsArg
			case selectArg != "":
				indices, err := parseIndices(selectArg)
				if err != nil {
					logErrorCmd(*cmd, err)

					return
				}
				chosen, err = svc.Select(ctx, indices)
				if err != nil {
					logErrorCmd(*cmd, err)

					return
				}
			default:
				versions, err := svc.ListVersions(ctx)
				if err != nil {
					logErrorCmd(*cmd, err)

					return
				}
				if len(versions) == 0 {
					logSuccessCmd(*cmd, "No versions recorded yet")

					return
				}

				form := huh.NewForm(huh.NewGroup(
					huh.NewMultiSelect[string]().
						Title("Select versions to compare").
						Options(huh.NewOptions(versions...)...).
						Value(&chosen),
				))
				if err := form.Run(); err != nil {
					logErrorCmd(*cmd, err)

					return
				}
			}

			set, err := svc.Assemble(ctx, chosen)
			if err != nil {
				logErrorCmd(*cmd, err)

				return
			}

			path, err := render.New(cfg.OutputDir).Comparison(set, dbName)
			if err != nil {
				logErrorCmd(*cmd, err)

				return
			}
			logSuccessCmd(*cmd, "Saved comparison to "+path)
		},
	}

	cmd.Flags().StringVar(&storePath, "db", "", "Path to the store file")
	cmd.Flags().StringVar(&dbName, "dbname", "", "Database name used in the output filename")
	cmd.Flags().StringVar(&outDir, "out", "", "Output directory for rendered files")
	cmd.Flags().StringVar(&selectArg, "select", "", "Comma-separated 1-based indices into the versions list (e.g. 1,3)")
	cmd.Flags().StringSliceVar(&tagsArg, "versions", []string{}, "Version tags to compare, bypassing selection")

	return cmd
}

// parseIndices rejects the whole selection on the first non-numeric entry.
func parseIndices(raw string) ([]int, error) {
	parts := strings.Split(raw, ",")
	indices := make([]int, 0, len(parts))
	for _, part := range parts {
		idx, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an index", compare.ErrBadSelection, strings.TrimSpace(part))
		}
		indices = append(indices, idx)
	}

	return indices, nil
}
