package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/inkwell-journal/inkwell/internal/coach"
	"github.com/inkwell-journal/inkwell/internal/config"
	"github.com/inkwell-journal/inkwell/internal/journal"
	"github.com/inkwell-journal/inkwell/internal/runner"
	"github.com/inkwell-journal/inkwell/internal/vault"
	"github.com/inkwell-journal/inkwell/internal/view"
)

// cfg holds the merged configuration, populated in PersistentPreRunE.
var cfg config.Config

// vaultFlag overrides the configured storage root.
var vaultFlag string

var rootCmd = &cobra.Command{
	Use:   "inkwell",
	Short: "Guided reflective journaling with an AI coach",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config handling for the setup command itself.
		if cmd.Name() == "setup" {
			return nil
		}

		// First run: no global config yet. Offer the wizard when stdin
		// is an interactive terminal; otherwise continue with defaults.
		globalPath, err := config.GlobalPath()
		if err == nil {
			if _, statErr := os.Stat(globalPath); os.IsNotExist(statErr) && term.IsTerminal(os.Stdin.Fd()) {
				fmt.Println()
				fmt.Println("  Welcome to inkwell! Looks like this is your first time.")
				if err := runSetup(true); err != nil {
					return err
				}
			}
		}

		global, err := config.LoadGlobal()
		if err != nil {
			return fmt.Errorf("loading global config: %w", err)
		}
		project, err := config.LoadProject()
		if err != nil {
			return fmt.Errorf("loading project config: %w", err)
		}
		cfg = config.Merge(global, project)

		if vaultFlag != "" {
			cfg.VaultPath = vaultFlag
		}
		return nil
	},
}

// Execute runs the root command. Exits with code 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// GetConfig returns the merged configuration for use by subcommands.
func GetConfig() config.Config {
	return cfg
}

// openVault opens and initializes the configured vault.
func openVault() (*vault.Vault, error) {
	v := vault.Open(cfg.VaultPath)
	if err := v.Init(); err != nil {
		return nil, fmt.Errorf("initializing vault at %s: %w", cfg.VaultPath, err)
	}
	return v, nil
}

// runSession drives one journal session from the initial action to a
// terminal state, talking to the terminal on the process streams.
func runSession(v *vault.Vault, initial journal.Action) error {
	renderer := view.New(os.Stdout, os.Stderr)
	r := &runner.Runner{
		Vault:   v,
		Invoker: coach.NewCLIInvoker(cfg.ModelCommand, cfg.ModelArgs),
		View:    renderer,
	}
	return runner.NewLoop(r, renderer, os.Stdin).Run(context.Background(), initial)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&vaultFlag, "vault", "v", "", "Path to the journal vault (overrides config)")
}
