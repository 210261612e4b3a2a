package cli

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/payflow/resilience/internal/core/config"
)

var resetCmd = &cobra.Command{
	Use:   "reset [dependency]",
	Short: "Force a circuit breaker back to closed",
	Args:  cobra.ExactArgs(1),
	Run:   runReset,
}

func init() {
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) {
	name := args[0]

	cfg, err := config.Load(cfgPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: 5 * time.Second}
	url := fmt.Sprintf("http://localhost:%d/breakers/reset?name=%s", cfg.Server.Port, name)

	resp, err := client.Post(url, "application/json", nil)
	if err != nil {
		slog.Error("Failed to reach daemon", "url", url, "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		slog.Error("Reset failed", "dependency", name, "status", resp.StatusCode)
		os.Exit(1)
	}

	fmt.Printf("Circuit breaker for %s reset to closed\n", name)
}
