package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/syncscope/syncscope/compare"
	"github.com/syncscope/syncscope/pkg/storage/sqlite"
)

func NewVersionsCmd() *cobra.Command {
	var (
		storePath string
		jsonOut   bool
	)

	cmd := &cobra.Command{
		Use:   "versions",
		Short: "List recorded version tags",
		Long:  `List the distinct version tags in the store, most recent first.`,
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
			cfg.finalize()

			db, err := sqlite.NewDatabase(cfg.StorePath)
			if err != nil {
				logErrorCmd(*cmd, err)

				return
			}
			store := sqlite.NewStore(db)
			defer store.Close()

			svc := compare.NewService(store)

			versions, err := svc.ListVersions(cmd.Context())
			if err != nil {
				logErrorCmd(*cmd, err)

				return
			}
			if len(versions) == 0 {
				logSuccessCmd(*cmd, "No versions recorded yet")

				return
			}

			if jsonOut {
				logJSONCmd(*cmd, struct {
					Versions []string `json:"versions"`
				}{Versions: versions})

				return
			}
			for i, v := range versions {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, v)
			}
		},
	}

	cmd.Flags().StringVar(&storePath, "db", "", "Path to the store file")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")

	return cmd
}
