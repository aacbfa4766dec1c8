package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/inkwell-journal/inkwell/internal/tui"
	"github.com/inkwell-journal/inkwell/internal/vault"
)

var (
	plainOutput bool
	watchDoc    bool
)

var viewCmd = &cobra.Command{
	Use:   "view <entry-id|path>",
	Short: "View a journal document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := openVault()
		if err != nil {
			return err
		}

		path, doc, err := resolveDoc(v, args[0])
		if err != nil {
			return err
		}

		if plainOutput {
			printDoc(cmd, doc)
			return nil
		}
		return tui.Run(doc, path, watchDoc)
	},
}

// resolveDoc accepts either a document id or a path to a vault document
// file (named <uuid>.md).
func resolveDoc(v *vault.Vault, arg string) (string, vault.Doc, error) {
	if id, err := uuid.Parse(arg); err == nil {
		doc, err := v.Read(id)
		if err != nil {
			return "", vault.Doc{}, err
		}
		return v.DocPath(id), doc, nil
	}

	data, err := os.ReadFile(arg)
	if err != nil {
		if os.IsNotExist(err) {
			return "", vault.Doc{}, fmt.Errorf("file not found: %s", arg)
		}
		return "", vault.Doc{}, err
	}
	stem := strings.TrimSuffix(filepath.Base(arg), ".md")
	id, err := uuid.Parse(stem)
	if err != nil {
		return "", vault.Doc{}, fmt.Errorf("%s is not a vault document (want <uuid>.md)", arg)
	}
	doc, err := vault.Decode(id, data)
	if err != nil {
		return "", vault.Doc{}, err
	}
	return arg, doc, nil
}

// printDoc writes a plain-text rendering to stdout.
func printDoc(cmd *cobra.Command, doc vault.Doc) {
	if title, ok := doc.Frontmatter["title"].(string); ok {
		cmd.Printf("%s\n", title)
	}
	for _, key := range []string{"mode", "mood", "energy"} {
		if val, ok := doc.Frontmatter[key].(string); ok {
			cmd.Printf("  %-7s %s\n", key+":", val)
		}
	}
	cmd.Println()
	cmd.Println(doc.Body)
}

func init() {
	viewCmd.Flags().BoolVar(&plainOutput, "plain", false, "Print to stdout instead of the full-screen viewer")
	viewCmd.Flags().BoolVar(&watchDoc, "watch", false, "Reload the viewer when the document changes on disk")
	rootCmd.AddCommand(viewCmd)
}
