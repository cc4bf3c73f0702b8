package queuecli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/williamma12/ray/pkg/remote"
)

func healthcheckCommand() *cobra.Command {
	var (
		url     = "http://127.0.0.1:8080"
		timeout = 5 * time.Second
	)

	cmd := &cobra.Command{
		Use:   "healthcheck",
		Short: "Check the health of a running queue server",
		Long: `healthcheck queries the /healthz endpoint of a queue server. It exits with
code 0 when the server answers 200 and non-zero otherwise, so it can be used
as a container HEALTHCHECK.`,
		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, _ []string) error {
			target := url
			if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
				target = "http://" + target
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(target, "/")+remote.PathHealth, nil)
			if err != nil {
				return fmt.Errorf("creating request: %w", err)
			}

			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				return fmt.Errorf("request failed: %w", err)
			}
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			if err != nil {
				return fmt.Errorf("reading response: %w", err)
			}

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("unhealthy: HTTP status %d: %s", resp.StatusCode, body)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(body))
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", url, "Base URL of the queue server.")
	cmd.Flags().DurationVar(&timeout, "timeout", timeout, "Timeout for the HTTP request.")

	return cmd
}
