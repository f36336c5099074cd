package probe

import (
	"github.com/spf13/cobra"
)

func newReadiness() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "readiness",
		Short: "Checks whether the server is ready to serve requests",
		Long:  `Performs a GET request against the local management readiness endpoint and exits non-zero on failure. Intended as a container readiness probe.`,
		Run: func(cmd *cobra.Command, _ []string) {
			verbose, _ := cmd.Flags().GetBool(verboseFlag)
			runProbe("/-/ready", verbose)
		},
	}

	cmd.Flags().BoolP(verboseFlag, "v", false, "Print the probe response body")

	return cmd
}
