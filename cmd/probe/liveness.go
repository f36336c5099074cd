package probe

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github/chapool/go-disperse/internal/config"
)

const probeTimeout = 5 * time.Second

func newLiveness() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "liveness",
		Short: "Checks whether the server process is alive",
		Long:  `Performs a GET request against the local management liveness endpoint and exits non-zero on failure. Intended as a container liveness probe.`,
		Run: func(cmd *cobra.Command, _ []string) {
			verbose, _ := cmd.Flags().GetBool(verboseFlag)
			runProbe("/-/healthy", verbose)
		},
	}

	cmd.Flags().BoolP(verboseFlag, "v", false, "Print the probe response body")

	return cmd
}

// runProbe hits the given management endpoint on the locally listening server
// and terminates the process with the probe outcome as exit code.
func runProbe(path string, verbose bool) {
	cfg := config.DefaultServiceConfigFromEnv()

	body, err := performProbe(cfg, path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	if verbose {
		fmt.Println(body)
	}
}

func performProbe(cfg config.Server, path string) (string, error) {
	client := &http.Client{Timeout: probeTimeout}

	res, err := client.Get(probeURL(cfg.Echo.ListenAddress, path))
	if err != nil {
		return "", errors.Wrap(err, "probe request failed")
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", errors.Wrap(err, "failed to read probe response")
	}

	if res.StatusCode != http.StatusOK {
		return "", errors.Errorf("probe returned status %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
	}

	return strings.TrimSpace(string(body)), nil
}

// probeURL maps the server's listen address to a local URL, substituting
// localhost when the server binds all interfaces (e.g. ":8080").
func probeURL(listenAddress, path string) string {
	host := listenAddress
	if strings.HasPrefix(host, ":") {
		host = "localhost" + host
	}

	return "http://" + host + path
}
