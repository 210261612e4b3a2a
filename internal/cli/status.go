package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/payflow/resilience/internal/core/config"
	"github.com/payflow/resilience/internal/resilience/breaker"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current state of all circuit breakers",
	Run:   runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: 5 * time.Second}
	url := fmt.Sprintf("http://localhost:%d/breakers", cfg.Server.Port)

	resp, err := client.Get(url)
	if err != nil {
		slog.Error("Failed to reach daemon", "url", url, "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var snapshot []breaker.Status
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		slog.Error("Failed to decode breaker status", "error", err)
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.Debug)
	_, _ = fmt.Fprintln(w, "DEPENDENCY\tSTATE\tFAILURES\tTHRESHOLD\tOPENED")

	for _, b := range snapshot {
		openedAt := "-"
		if !b.OpenedAt.IsZero() {
			openedAt = b.OpenedAt.Format(time.RFC3339)
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
			b.Name, b.State, b.FailureCount, b.Threshold, openedAt)
	}
	_ = w.Flush()
}
