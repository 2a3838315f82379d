package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/blackwell-systems/aethernote/internal/theme"
	"github.com/blackwell-systems/aethernote/internal/tui"
	"github.com/blackwell-systems/aethernote/internal/util"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newThemeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "List, apply, import and delete themes",
	}
	cmd.AddCommand(
		newThemeListCmd(),
		newThemeApplyCmd(),
		newThemeImportCmd(),
		newThemeDeleteCmd(),
		newThemeRefreshCmd(),
	)
	cmd.RunE = newThemeListCmd().RunE
	return cmd
}

// withSystemThemes loads the configured manifest into the registry before
// run. LoadRemote logs failures; the built-in and custom themes stay usable.
func withSystemThemes(run func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		_ = loadSystemThemes(cmd.Context(), themes)
		return run(cmd, args)
	}
}

func newThemeListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available themes",
		Args:  cobra.NoArgs,
		RunE: withSystemThemes(func(cmd *cobra.Command, args []string) error {
			active := themes.ByName(st.Snapshot().ActiveTheme).Name
			for _, t := range themes.All() {
				marker := "  "
				if t.Name == active {
					marker = color.GreenString("● ")
				}
				var sw strings.Builder
				if util.IsTTY() && !color.NoColor {
					for _, hex := range theme.Swatches(t) {
						sw.WriteString(tui.Swatch(hex))
					}
					sw.WriteString(" ")
				}
				kind := "custom"
				if t.IsSystem {
					kind = "system"
				}
				fmt.Printf("%s%s%-24s %s\n", marker, sw.String(), t.Name, color.HiBlackString(kind))
			}
			return nil
		}),
	}
}

func newThemeApplyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apply <name>",
		Short: "Make a theme active",
		Args:  cobra.ExactArgs(1),
		RunE: withSystemThemes(func(cmd *cobra.Command, args []string) error {
			t, found := themes.Lookup(args[0])
			if !found {
				return fmt.Errorf("theme %q: %w", args[0], theme.ErrNotFound)
			}
			if err := theme.Apply(st, t); err != nil {
				return err
			}
			ok("Applied theme %q", t.Name)
			return nil
		}),
	}
}

func newThemeImportCmd() *cobra.Command {
	var (
		force   bool
		noApply bool
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Add a custom theme from a JSON file",
		Long: `Add a custom theme from a JSON file of the form
{"name": "...", "styles": {"colors": {"--bg-1": "#000", ...}}}.
The theme is applied unless --no-apply is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(util.ExpandHome(args[0]))
			if err != nil {
				return fmt.Errorf("Could not load theme. Error: %w", err)
			}
			t, err := theme.ParseImport(data)
			if err != nil {
				return fmt.Errorf("Could not load theme. Error: %w", err)
			}

			err = themes.Import(t, func(name string) bool {
				if force {
					return true
				}
				if !util.IsInteractive() {
					return false
				}
				return confirmYes(fmt.Sprintf("A custom theme named %q already exists. Do you want to overwrite it?", name))
			})
			if errors.Is(err, theme.ErrImportCanceled) {
				warn("Theme %q already exists (use --force to overwrite)", t.Name)
				return nil
			}
			if err != nil {
				return err
			}
			ok("Imported theme %q", t.Name)

			if noApply {
				return nil
			}
			if err := theme.Apply(st, t); err != nil {
				return err
			}
			ok("Applied theme %q", t.Name)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite a custom theme with the same name")
	cmd.Flags().BoolVar(&noApply, "no-apply", false, "Import without applying")
	return cmd
}

func newThemeDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a custom theme",
		Args:  cobra.ExactArgs(1),
		RunE: withSystemThemes(func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if !yes && util.IsInteractive() && !confirmYes(fmt.Sprintf("Delete theme %q?", name)) {
				warn("Cancelled")
				return nil
			}
			if err := themes.Delete(name); err != nil {
				if errors.Is(err, theme.ErrSystemTheme) {
					return fmt.Errorf("%q is a system theme and cannot be deleted", name)
				}
				return err
			}
			ok("Deleted theme %q", name)

			if st.Snapshot().ActiveTheme == name {
				fallback := themes.ByName("")
				if err := theme.Apply(st, fallback); err != nil {
					return err
				}
				warn("Active theme removed, now using %q", fallback.Name)
			}
			return nil
		}),
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func newThemeRefreshCmd() *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Load system themes from the configured manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if source == "" {
				source = cfg.Themes.Manifest
			}
			if source == "" {
				warn("No theme manifest configured (themes.manifest)")
				return nil
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Themes.Timeout)
			defer cancel()
			if err := themes.LoadRemote(ctx, theme.NewFetcher(cfg.Themes.Timeout), source); err != nil {
				return fmt.Errorf("loading themes: %w", err)
			}
			n := 0
			for _, t := range themes.All() {
				if t.IsSystem {
					n++
				}
			}
			ok("%s available", plural(n, "system theme", "system themes"))
			return nil
		},
	}
	cmd.Flags().StringVar(&source, "manifest", "", "Manifest URL or path (default: themes.manifest)")
	return cmd
}
