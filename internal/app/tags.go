package app

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/blackwell-systems/aethernote/internal/library"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newTagsCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List every tag with its note count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			counts := library.TagCounts(st.Snapshot())

			if jsonOut {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(counts)
			}

			if len(counts) == 0 {
				fmt.Println("No tags found.")
				return nil
			}

			// Sort by count descending, then name ascending
			type tagEntry struct {
				Name  string
				Count int
			}
			var entries []tagEntry
			for name, count := range counts {
				entries = append(entries, tagEntry{name, count})
			}
			sort.Slice(entries, func(i, j int) bool {
				if entries[i].Count != entries[j].Count {
					return entries[i].Count > entries[j].Count
				}
				return entries[i].Name < entries[j].Name
			})

			for _, e := range entries {
				fmt.Printf("  %-24s %s\n",
					color.CyanString(e.Name),
					color.HiBlackString("(%d)", e.Count),
				)
			}
			fmt.Printf("\n%s\n", plural(len(entries), "tag", "tags"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}
