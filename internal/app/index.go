package app

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/blackwell-systems/aethernote/internal/util"
	"github.com/blackwell-systems/aethernote/internal/webshell"
	"github.com/spf13/cobra"
)

func newIndexCmd() *cobra.Command {
	var (
		flagOpen bool
		dir      string
	)

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Generate a static HTML page of the library",
		Long: `Generate an index.html that shows every bookshelf with the active theme
and a search box. Open it in any web browser to read your notes without
running aethernote.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				dir = cfg.Storage.DataDir
			}
			snap := st.Snapshot()
			indexPath, err := webshell.WriteIndex(util.ExpandHome(dir), snap, themes.ByName(snap.ActiveTheme))
			if err != nil {
				return fmt.Errorf("generating index: %w", err)
			}
			ok("Generated HTML index with %s", plural(snap.BookCount(), "note", "notes"))

			if flagOpen {
				if err := openBrowser(indexPath); err != nil {
					warn("Could not open browser: %v", err)
					fmt.Printf("\nOpen in browser:\n  file://%s\n", indexPath)
				}
			} else {
				fmt.Printf("\nOpen in browser:\n  file://%s\n", indexPath)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&flagOpen, "open", false, "Open the generated index in the default browser")
	cmd.Flags().StringVar(&dir, "dir", "", "Output directory (default: data dir)")

	return cmd
}

func openBrowser(target string) error {
	var openCmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		openCmd = exec.Command("open", target)
	case "windows":
		openCmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
	default:
		openCmd = exec.Command("xdg-open", target)
	}
	return openCmd.Start()
}
