package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/syncscope/syncscope/cli"
	"github.com/syncscope/syncscope/pkg/sdk"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "syncscope",
		Short: "db-sync resource monitor",
		Long: `Syncscope watches a database synchronization process, samples its memory
and CPU against sync progress, and renders version-to-version comparisons.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			sdkConf := sdk.Config{
				ServerURL:       cli.DefServerURL,
				TLSVerification: cli.DefTLSVerification,
			}
			s := sdk.NewSDK(sdkConf)
			cli.SetSDK(s)
		},
	}

	rootCmd.AddCommand(cli.NewMonitorCmd())
	rootCmd.AddCommand(cli.NewVersionsCmd())
	rootCmd.AddCommand(cli.NewCompareCmd())
	rootCmd.AddCommand(cli.NewStatsCmd())
	rootCmd.AddCommand(cli.NewRemoteCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
