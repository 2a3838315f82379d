package app

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/blackwell-systems/aethernote/internal/library"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type searchResult struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Bookshelf  string   `json:"bookshelf"`
	Shelf      string   `json:"shelf"`
	Tags       []string `json:"tags,omitempty"`
	MatchedTag bool     `json:"matchedTag"`
}

func newSearchCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search notes by tag, title and content",
		Long: `Search every note, case-insensitively. Notes with a matching tag are
listed first, then notes matching by title or content.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := strings.Join(args, " ")
			hits := library.Search(st.Snapshot(), q)

			if jsonOut {
				out := make([]searchResult, len(hits))
				for i, h := range hits {
					out[i] = searchResult{
						ID:         h.Book.ID,
						Title:      h.Book.Title,
						Bookshelf:  h.Bookshelf,
						Shelf:      h.Shelf,
						Tags:       h.Book.Tags,
						MatchedTag: h.MatchedTag,
					}
				}
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			header("Search results for “%s” — %d found", q, len(hits))
			for _, h := range hits {
				title := h.Book.Title
				if h.MatchedTag {
					title = color.MagentaString("#") + " " + title
				} else {
					title = "  " + title
				}
				fmt.Printf("%-40s %s\n", title, color.HiBlackString("%s › %s  %s", h.Bookshelf, h.Shelf, h.Book.ID))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}
