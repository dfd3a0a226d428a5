package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/M4ss1ck/whatsapp-simulator/internal/adapter/codec"
	"github.com/M4ss1ck/whatsapp-simulator/internal/adapter/export"
)

var (
	exportFormat string
	exportDir    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the conversation as a document or rendered file",
	Long: `Exports the current conversation. The default "json" format writes the
full document (participants, messages, settings, preferences) for later
import; "text", "markdown" and "screen" write a rendered transcript.
Files are named <chat-slug>-<date>.<ext>.`,
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a previously exported document",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", `Export format: "json", "text", "markdown" or "screen"`)
	exportCmd.Flags().StringVarP(&exportDir, "dir", "d", ".", "Directory to write the export into")

	rootCmd.AddCommand(exportCmd, importCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	svc, closeStore, err := openService()
	if err != nil {
		return err
	}
	defer closeStore()

	now := time.Now()

	if exportFormat == "json" {
		data, err := codec.EncodeExport(svc.Conversation(), svc.Prefs())
		if err != nil {
			return err
		}
		name := export.Filename(svc.Conversation().Settings.Title, "json", now)
		path := filepath.Join(exportDir, name)
		if err := os.WriteFile(path, data, 0600); err != nil {
			return fmt.Errorf("writing export file: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
		return nil
	}

	r, err := pickRenderer(exportFormat)
	if err != nil {
		return err
	}
	ext := map[string]string{"text": "txt", "txt": "txt", "markdown": "md", "md": "md", "screen": "ansi", "ansi": "ansi"}[exportFormat]

	path, err := export.Write(exportDir, ext, r, svc.Screen(now))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0]) //nolint:gosec // user-supplied import path
	if err != nil {
		return fmt.Errorf("reading import file: %w", err)
	}

	svc, closeStore, err := openService()
	if err != nil {
		return err
	}
	defer closeStore()

	conv, prefs, err := codec.DecodeImport(data, svc.Conversation(), svc.Prefs())
	if err != nil {
		return err
	}
	svc.Replace(conv, prefs)

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d participants, %d messages\n",
		len(conv.Participants), len(conv.Messages))
	return nil
}
