package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	configfile "github.com/lexatlas-labs/clauseline-cli/internal/adapters/driven/config/file"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage clauseline configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long: `Sets a configuration value and persists it immediately.

Keys use dot notation, for example:
  clauseline config set judge.provider ollama
  clauseline config set judge.model llama3.2
  clauseline config set analysis.clause_concurrency 8`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

// shownKeys is the fixed display order for config show.
var shownKeys = []string{
	configfile.KeyJudgeProvider,
	configfile.KeyJudgeModel,
	configfile.KeyJudgeBaseURL,
	configfile.KeyJudgeAPIKey,
	configfile.KeyJudgeMaxTokens,
	configfile.KeyJudgeRPM,
	configfile.KeyEmbeddingProvider,
	configfile.KeyEmbeddingModel,
	configfile.KeyEmbeddingBaseURL,
	configfile.KeyEmbeddingAPIKey,
	configfile.KeyEmbeddingDimensions,
	configfile.KeyAnalysisConcurrency,
	configfile.KeyAnalysisMaxUploadBytes,
	configfile.KeyAnalysisEmbeddingRetries,
	configfile.KeyAnalysisProviderOrder,
	configfile.KeyVectorConnString,
	configfile.KeyDataDir,
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cmd.Printf("Configuration file: %s\n\n", configStore.Path())
	for _, key := range shownKeys {
		value, ok := configStore.Get(key)
		if !ok {
			continue
		}
		cmd.Printf("%-32s %v\n", key, maskSecret(key, value))
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key, raw := args[0], args[1]
	if err := configStore.Set(key, parseConfigValue(raw)); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	cmd.Printf("%s = %v\n", key, maskSecret(key, parseConfigValue(raw)))
	return nil
}

// maskSecret hides all but the tail of API keys and connection strings.
func maskSecret(key string, value any) any {
	if !strings.Contains(key, "api_key") && !strings.Contains(key, "conn_string") {
		return value
	}
	s, ok := value.(string)
	if !ok || s == "" {
		return value
	}
	if len(s) <= 4 {
		return "****"
	}
	return "****" + s[len(s)-4:]
}

// parseConfigValue infers bool and integer values from the raw string.
func parseConfigValue(raw string) any {
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	return raw
}
