package app

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/blackwell-systems/aethernote/internal/library"
	"github.com/blackwell-systems/aethernote/internal/util"
	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newBookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "book",
		Aliases: []string{"note"},
		Short:   "Add, edit, tag and delete notes",
		Long: `Manage notes. A note is named by its id, a unique id prefix (4+
characters) or its title when no other note shares it.`,
	}
	cmd.AddCommand(
		newBookAddCmd(),
		newBookRenameCmd(),
		newBookEditCmd(),
		newBookShowCmd(),
		newBookDeleteCmd(),
		newBookTagCmd(),
		newBookUntagCmd(),
	)
	return cmd
}

func splitTags(csv string) []string {
	var tags []string
	for _, t := range strings.Split(csv, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func newBookAddCmd() *cobra.Command {
	var (
		bookshelf string
		shelf     string
		content   string
		tagsCSV   string
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a note to a shelf",
		Example: `  aethernote book add "Reading list" --shelf ideas
  aethernote book add todo -s inbox --tags work,urgent --content "- [ ] ship it"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var id string
			err := st.Modify(func(s *library.AppState) error {
				i, j, err := shelfRef(s, bookshelf, shelf)
				if err != nil {
					return err
				}
				b, err := s.AddBook(i, j, args[0])
				if err != nil {
					return err
				}
				b.Content = content
				for _, t := range splitTags(tagsCSV) {
					b.AddTag(t)
				}
				id = b.ID
				return nil
			})
			if err != nil {
				return err
			}
			ok("Added %q (%s)", args[0], id)
			return nil
		},
	}
	cmd.Flags().StringVarP(&bookshelf, "bookshelf", "b", "", "Bookshelf name or id (default: active)")
	cmd.Flags().StringVarP(&shelf, "shelf", "s", "", "Shelf name or id")
	cmd.Flags().StringVar(&content, "content", "", "Note content (markdown)")
	cmd.Flags().StringVar(&tagsCSV, "tags", "", "Comma-separated tags")
	_ = cmd.MarkFlagRequired("shelf")
	return cmd
}

func newBookRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <note> <new-title>",
		Short: "Rename a note",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := st.Modify(func(s *library.AppState) error {
				p, err := bookRef(s, args[0])
				if err != nil {
					return err
				}
				return s.RenameBook(p.Bookshelf, p.Shelf, p.Book, args[1])
			})
			if err != nil {
				return err
			}
			ok("Renamed to %q", args[1])
			return nil
		},
	}
}

func newBookEditCmd() *cobra.Command {
	var (
		content string
		file    string
	)

	cmd := &cobra.Command{
		Use:   "edit <note>",
		Short: "Replace a note's content",
		Long: `Replace a note's content from --content, from --file (- for stdin),
or, with neither, in $EDITOR.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := st.Snapshot()
			p, err := bookRef(snap, args[0])
			if err != nil {
				return err
			}
			id := bookAt(snap, p).ID

			var text string
			switch {
			case cmd.Flags().Changed("content"):
				text = content
			case file == "-":
				b, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("reading stdin: %w", err)
				}
				text = string(b)
			case file != "":
				b, err := os.ReadFile(util.ExpandHome(file))
				if err != nil {
					return err
				}
				text = string(b)
			default:
				text, err = editInEditor(bookAt(snap, p).Content)
				if err != nil {
					return err
				}
			}

			err = st.Modify(func(s *library.AppState) error {
				p, _, err := s.FindBook(id)
				if err != nil {
					return err
				}
				return s.SetContent(p.Bookshelf, p.Shelf, p.Book, text)
			})
			if err != nil {
				return err
			}
			ok("Saved %s", plural(len(text), "byte", "bytes"))
			return nil
		},
	}
	cmd.Flags().StringVar(&content, "content", "", "New content")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Read content from a file (- for stdin)")
	return cmd
}

// editInEditor opens content in $VISUAL or $EDITOR and returns the result.
func editInEditor(content string) (string, error) {
	editor := os.Getenv("VISUAL")
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		editor = "vi"
	}

	tmp, err := os.CreateTemp("", "aethernote-*.md")
	if err != nil {
		return "", err
	}
	path := tmp.Name()
	defer os.Remove(path)
	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return "", err
	}
	tmp.Close()

	parts := strings.Fields(editor)
	c := exec.Command(parts[0], append(parts[1:], path)...)
	c.Stdin, c.Stdout, c.Stderr = os.Stdin, os.Stdout, os.Stderr
	if err := c.Run(); err != nil {
		return "", fmt.Errorf("running %s: %w", editor, err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func newBookShowCmd() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "show <note>",
		Short: "Print a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := st.Snapshot()
			p, err := bookRef(snap, args[0])
			if err != nil {
				return err
			}
			b := bookAt(snap, p)

			header("%s", b.Title)
			printField("id", b.ID)
			printField("shelf", location(snap, p))
			if len(b.Tags) > 0 {
				printField("tags", color.MagentaString("#"+strings.Join(b.Tags, " #")))
			}
			fmt.Println()

			if b.Content == "" {
				fmt.Println(color.HiBlackString("(empty)"))
				return nil
			}
			if raw || !util.IsTTY() {
				fmt.Println(b.Content)
				return nil
			}
			r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(80))
			if err != nil {
				fmt.Println(b.Content)
				return nil
			}
			out, err := r.Render(b.Content)
			if err != nil {
				fmt.Println(b.Content)
				return nil
			}
			fmt.Print(out)
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "Print markdown without rendering")
	return cmd
}

func newBookDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <note>",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := st.Snapshot()
			p, err := bookRef(snap, args[0])
			if err != nil {
				return err
			}
			b := bookAt(snap, p)
			if !yes && util.IsInteractive() && !confirmYes(fmt.Sprintf("Delete %q?", b.Title)) {
				warn("Cancelled")
				return nil
			}

			id := b.ID
			err = st.Modify(func(s *library.AppState) error {
				p, _, err := s.FindBook(id)
				if err != nil {
					return err
				}
				return s.DeleteBook(p.Bookshelf, p.Shelf, p.Book)
			})
			if err != nil {
				return err
			}
			ok("Deleted %q", b.Title)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func newBookTagCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tag <note> <tag>...",
		Short: "Add tags to a note",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var added []string
			err := st.Modify(func(s *library.AppState) error {
				p, err := bookRef(s, args[0])
				if err != nil {
					return err
				}
				b := bookAt(s, p)
				for _, t := range args[1:] {
					if b.AddTag(t) {
						added = append(added, strings.ToLower(strings.TrimSpace(t)))
					}
				}
				return nil
			})
			if err != nil {
				return err
			}
			if len(added) == 0 {
				warn("No new tags")
				return nil
			}
			ok("Tagged #%s", strings.Join(added, " #"))
			return nil
		},
	}
}

func newBookUntagCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "untag <note> <tag>...",
		Short: "Remove tags from a note",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			removed := 0
			err := st.Modify(func(s *library.AppState) error {
				p, err := bookRef(s, args[0])
				if err != nil {
					return err
				}
				b := bookAt(s, p)
				for _, t := range args[1:] {
					if b.RemoveTag(t) {
						removed++
					}
				}
				return nil
			})
			if err != nil {
				return err
			}
			ok("Removed %s", plural(removed, "tag", "tags"))
			return nil
		},
	}
}
