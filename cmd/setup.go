package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/inkwell-journal/inkwell/internal/config"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Configure inkwell interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetup(false)
	},
}

// runSetup runs the interactive setup wizard and saves the resulting
// global config. firstRun only changes the banner text.
func runSetup(firstRun bool) error {
	r := bufio.NewReader(os.Stdin)

	ask := func(prompt, defaultVal string) (string, error) {
		fmt.Printf("%s [%s]: ", prompt, defaultVal)
		line, err := r.ReadString('\n')
		if err != nil {
			return "", err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return defaultVal, nil
		}
		return line, nil
	}

	current := config.Defaults()
	if !firstRun {
		if existing, err := config.LoadGlobal(); err == nil && existing != nil {
			current = config.Merge(existing, nil)
		}
	}

	fmt.Println()
	fmt.Println("  ┌─────────────────────────────────┐")
	fmt.Println("  │     inkwell — journal setup     │")
	fmt.Println("  └─────────────────────────────────┘")
	fmt.Println()

	var err error

	current.VaultPath, err = ask("  Vault directory (where entries are stored)", current.VaultPath)
	if err != nil {
		return err
	}

	modelCmd, err := ask("  Model CLI command", current.ModelCommand)
	if err != nil {
		return err
	}
	if modelCmd != current.ModelCommand {
		current.ModelCommand = modelCmd
		current.ModelArgs = nil
	}

	fmt.Println()
	if err := config.Save(current); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	fmt.Println("  Configuration saved.")
	return nil
}

func init() {
	rootCmd.AddCommand(setupCmd)
}
