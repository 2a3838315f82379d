package app

import (
	"fmt"

	"github.com/blackwell-systems/aethernote/internal/library"
	"github.com/blackwell-systems/aethernote/internal/util"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newShelfCmd() *cobra.Command {
	var bookshelf string

	cmd := &cobra.Command{
		Use:   "shelf",
		Short: "Manage the shelves of a bookshelf",
		Long:  "Manage shelves. Commands act on the active bookshelf unless --bookshelf is given.",
	}
	cmd.PersistentFlags().StringVarP(&bookshelf, "bookshelf", "b", "", "Bookshelf name or id (default: active)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <name>",
			Short: "Add a shelf",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				err := st.Modify(func(s *library.AppState) error {
					i, err := bookshelfRef(s, bookshelf)
					if err != nil {
						return err
					}
					_, err = s.AddShelf(i, args[0])
					return err
				})
				if err != nil {
					return err
				}
				ok("Added shelf %q", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "rename <shelf> <new-name>",
			Short: "Rename a shelf",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				err := st.Modify(func(s *library.AppState) error {
					i, j, err := shelfRef(s, bookshelf, args[0])
					if err != nil {
						return err
					}
					return s.RenameShelf(i, j, args[1])
				})
				if err != nil {
					return err
				}
				ok("Renamed shelf to %q", args[1])
				return nil
			},
		},
		&cobra.Command{
			Use:   "toggle <shelf>",
			Short: "Collapse or expand a shelf",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				var collapsed bool
				err := st.Modify(func(s *library.AppState) error {
					i, j, err := shelfRef(s, bookshelf, args[0])
					if err != nil {
						return err
					}
					if err := s.ToggleShelf(i, j); err != nil {
						return err
					}
					collapsed = s.Bookshelves[i].Shelves[j].Collapsed
					return nil
				})
				if err != nil {
					return err
				}
				if collapsed {
					ok("Collapsed %q", args[0])
				} else {
					ok("Expanded %q", args[0])
				}
				return nil
			},
		},
		newShelfDeleteCmd(&bookshelf),
		&cobra.Command{
			Use:   "list",
			Short: "List shelves and their notes",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				snap := st.Snapshot()
				i, err := bookshelfRef(snap, bookshelf)
				if err != nil {
					return err
				}
				bs := snap.Bookshelves[i]
				header("%s", bs.Name)
				if len(bs.Shelves) == 0 {
					fmt.Println("  No shelves yet.")
					return nil
				}
				for _, sh := range bs.Shelves {
					state := ""
					if sh.Collapsed {
						state = color.HiBlackString(" (collapsed)")
					}
					fmt.Printf("  %s%s\n", color.CyanString(sh.Name), state)
					for _, b := range sh.Books {
						fmt.Printf("    %-32s %s\n", b.Title, color.HiBlackString(b.ID))
					}
				}
				return nil
			},
		},
	)
	return cmd
}

func newShelfDeleteCmd(bookshelf *string) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <shelf>",
		Short: "Delete a shelf and its notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := st.Snapshot()
			i, j, err := shelfRef(snap, *bookshelf, args[0])
			if err != nil {
				return err
			}
			sh := snap.Bookshelves[i].Shelves[j]
			if !yes && util.IsInteractive() && !confirmYes(fmt.Sprintf("Delete shelf %q?", sh.Name)) {
				warn("Cancelled")
				return nil
			}

			bsID := snap.Bookshelves[i].ID
			err = st.Modify(func(s *library.AppState) error {
				i, j, err := shelfRef(s, bsID, sh.ID)
				if err != nil {
					return err
				}
				return s.DeleteShelf(i, j)
			})
			if err != nil {
				return err
			}
			ok("Deleted shelf %q", sh.Name)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}
