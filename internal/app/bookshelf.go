package app

import (
	"fmt"

	"github.com/blackwell-systems/aethernote/internal/library"
	"github.com/blackwell-systems/aethernote/internal/util"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newBookshelfCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bookshelf",
		Aliases: []string{"bs"},
		Short:   "Create, rename, delete and switch bookshelves",
	}
	cmd.AddCommand(
		newBookshelfAddCmd(),
		newBookshelfRenameCmd(),
		newBookshelfDeleteCmd(),
		newBookshelfListCmd(),
		newBookshelfUseCmd(),
	)
	cmd.RunE = newBookshelfListCmd().RunE
	return cmd
}

func newBookshelfAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Create a bookshelf and make it active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var id string
			err := st.Modify(func(s *library.AppState) error {
				bs, err := s.AddBookshelf(args[0])
				if err != nil {
					return err
				}
				id = bs.ID
				return nil
			})
			if err != nil {
				return err
			}
			ok("Created bookshelf %q (%s)", args[0], id)
			return nil
		},
	}
}

func newBookshelfRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <bookshelf> <new-name>",
		Short: "Rename a bookshelf",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := st.Modify(func(s *library.AppState) error {
				i, err := s.BookshelfIndex(args[0])
				if err != nil {
					return err
				}
				return s.RenameBookshelf(i, args[1])
			})
			if err != nil {
				return err
			}
			ok("Renamed bookshelf to %q", args[1])
			return nil
		},
	}
}

func newBookshelfDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <bookshelf>",
		Short: "Delete a bookshelf with all its shelves and notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := st.Snapshot()
			i, err := snap.BookshelfIndex(args[0])
			if err != nil {
				return err
			}
			name := snap.Bookshelves[i].Name
			if !yes && util.IsInteractive() && !confirmYes(fmt.Sprintf("Delete bookshelf %q?", name)) {
				warn("Cancelled")
				return nil
			}

			id := snap.Bookshelves[i].ID
			err = st.Modify(func(s *library.AppState) error {
				i, err := s.BookshelfIndex(id)
				if err != nil {
					return err
				}
				return s.DeleteBookshelf(i)
			})
			if err != nil {
				return err
			}
			ok("Deleted bookshelf %q", name)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func newBookshelfListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List bookshelves",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := st.Snapshot()
			if len(snap.Bookshelves) == 0 {
				fmt.Println("No bookshelves yet.")
				return nil
			}
			for i, bs := range snap.Bookshelves {
				marker := "  "
				if i == snap.Active {
					marker = color.GreenString("● ")
				}
				notes := 0
				for _, sh := range bs.Shelves {
					notes += len(sh.Books)
				}
				fmt.Printf("%s%-24s %s\n", marker, bs.Name,
					color.HiBlackString("%s, %s  %s", plural(len(bs.Shelves), "shelf", "shelves"), plural(notes, "note", "notes"), bs.ID))
			}
			return nil
		},
	}
}

func newBookshelfUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use <bookshelf>",
		Short: "Make a bookshelf active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := st.Modify(func(s *library.AppState) error {
				i, err := s.BookshelfIndex(args[0])
				if err != nil {
					return err
				}
				return s.SetActive(i)
			})
			if err != nil {
				return err
			}
			ok("Active bookshelf: %s", args[0])
			return nil
		},
	}
}
