package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"securepay/internal/engine/acquiring"
	"securepay/internal/pkg/logger"
	"securepay/internal/platform/config"
)

var Version = "dev"

type app struct {
	configPath string
	cfg        *config.Config
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "paycli",
		Short:         "Call the acquiring API and work with request tokens",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger.Init(cfg.Logging)
			a.cfg = cfg
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to config file (environment only when empty)")

	rootCmd.AddCommand(a.initCmd())
	rootCmd.AddCommand(a.stateCmd())
	rootCmd.AddCommand(a.checkOrderCmd())
	rootCmd.AddCommand(a.confirmCmd())
	rootCmd.AddCommand(a.cancelCmd())
	rootCmd.AddCommand(a.tokenCmd())
	rootCmd.AddCommand(a.verifyCmd())
	rootCmd.AddCommand(a.apiTokenCmd())

	return rootCmd
}

func (a *app) client() (*acquiring.Client, error) {
	if err := a.cfg.Validate(); err != nil {
		return nil, err
	}
	return acquiring.NewFromConfig(a.cfg.Terminal, a.cfg.API, acquiring.WithLogger(logger.Component("paycli"))), nil
}

func (a *app) password() (string, error) {
	if a.cfg.Terminal.Password == "" {
		return "", config.ErrMissingTerminalPassword
	}
	return a.cfg.Terminal.Password, nil
}

// readInput reads path, or stdin when path is empty or "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

// readRequest decodes the --request file into dst when one was given.
func readRequest(cmd *cobra.Command, path string, dst interface{}) error {
	if path == "" {
		return nil
	}
	data, err := readInput(cmd, path)
	if err != nil {
		return fmt.Errorf("read request: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode request: %w", err)
	}
	return nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
