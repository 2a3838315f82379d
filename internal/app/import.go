package app

import (
	"fmt"
	"os"

	"github.com/blackwell-systems/aethernote/internal/library"
	"github.com/blackwell-systems/aethernote/internal/util"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// defaultExportFile matches the TUI's save dialog.
const defaultExportFile = "aethernote-backup.json"

const importFailed = "Could not load file. It might be corrupted or in the wrong format."

func newExportCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Save the whole library to a file",
		Long: `Save the whole library to a file. JSON exports can be loaded again
with 'aethernote import'; YAML is for reading only. Use - for stdout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultExportFile
			if len(args) == 1 {
				path = args[0]
			}
			snap := st.Snapshot()

			var (
				data []byte
				err  error
			)
			switch format {
			case "json":
				data, err = library.Marshal(snap)
			case "yaml", "yml":
				data, err = library.MarshalYAML(snap)
			default:
				return fmt.Errorf("unknown format %q (json or yaml)", format)
			}
			if err != nil {
				return err
			}

			if path == "-" {
				_, err = os.Stdout.Write(data)
				return err
			}
			path = util.ExpandHome(path)
			if err := util.WriteFileAtomic(path, data, 0644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			logger.Info("exported library", zap.String("path", path), zap.String("format", format))
			ok("Saved to %s", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "Output format: json or yaml")
	return cmd
}

func newImportCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the library with an exported JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := util.ExpandHome(args[0])
			s, err := library.ReadFile(path)
			if err != nil {
				logger.Warn("import failed", zap.String("path", path), zap.Error(err))
				fail(importFailed)
				return err
			}

			if !yes && util.IsInteractive() {
				cur := st.Snapshot()
				q := fmt.Sprintf("Replace %s and %s with %s from %s?",
					plural(len(cur.Bookshelves), "bookshelf", "bookshelves"),
					plural(cur.BookCount(), "note", "notes"),
					plural(s.BookCount(), "note", "notes"), args[0])
				if !confirmYes(q) {
					warn("Cancelled")
					return nil
				}
			}

			if err := st.Replace(s); err != nil {
				return err
			}
			ok("Loaded %s, %s", plural(len(s.Bookshelves), "bookshelf", "bookshelves"), plural(s.BookCount(), "note", "notes"))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Replace without asking")
	return cmd
}
