package cli

import (
	"github.com/spf13/cobra"
	"github.com/syncscope/syncscope/pkg/sdk"
)

var (
	DefTLSVerification = false
	DefServerURL       = "http://localhost:7070"
)

var ssdk sdk.SDK

func SetSDK(s sdk.SDK) {
	ssdk = s
}

var remoteCmd = []cobra.Command{
	{
		Use:   "versions",
		Short: "List recorded versions",
		Long:  `List version tags recorded by a running monitor daemon, newest first.`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 0 {
				logUsageCmd(*cmd, cmd.Use)

				return
			}

			versions, err := ssdk.ListVersions()
			if err != nil {
				logErrorCmd(*cmd, err)

				return
			}
			logJSONCmd(*cmd, struct {
				Versions []string `json:"versions"`
			}{Versions: versions})
		},
	},
	{
		Use:   "series <version>...",
		Short: "Fetch recorded series",
		Long:  `Fetch memory and CPU series for the given version tags from a running monitor daemon.`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 0 {
				logUsageCmd(*cmd, cmd.Use)

				return
			}

			set, err := ssdk.Series(args)
			if err != nil {
				logErrorCmd(*cmd, err)

				return
			}
			logJSONCmd(*cmd, set)
		},
	},
}

func NewRemoteCmd() *cobra.Command {
	cmd := cobra.Command{
		Use:   "remote [versions|series]",
		Short: "Query a monitor daemon",
		Long:  `Query a running monitor daemon over its HTTP API.`,
	}

	for i := range remoteCmd {
		cmd.AddCommand(&remoteCmd[i])
	}

	cmd.PersistentFlags().StringVarP(
		&DefServerURL,
		"server-url",
		"r",
		DefServerURL,
		"Monitor daemon URL",
	)

	cmd.PersistentFlags().BoolVarP(
		&DefTLSVerification,
		"tls-verification",
		"v",
		DefTLSVerification,
		"TLS Verification",
	)

	return &cmd
}
