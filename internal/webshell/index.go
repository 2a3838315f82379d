package webshell

import (
	"fmt"
	"html"
	"path/filepath"
	"strings"

	"github.com/blackwell-systems/aethernote/internal/library"
	"github.com/blackwell-systems/aethernote/internal/theme"
	"github.com/blackwell-systems/aethernote/internal/util"
)

// WriteIndex renders the library into <dir>/index.html and returns the path.
func WriteIndex(dir string, s *library.AppState, t theme.Theme) (string, error) {
	indexPath := filepath.Join(dir, "index.html")
	if err := util.WriteFileAtomic(indexPath, []byte(GenerateHTML(s, t)), 0644); err != nil {
		return "", fmt.Errorf("writing index.html: %w", err)
	}
	return indexPath, nil
}

// GenerateHTML renders every bookshelf as a read-only page styled by t.
func GenerateHTML(s *library.AppState, t theme.Theme) string {
	var b strings.Builder

	b.WriteString(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>aethernote</title>
    <link rel="manifest" href="/manifest.json">
    <link rel="icon" href="/icon.svg" type="image/svg+xml">
    <style>
`)
	b.WriteString(theme.CSS(t))
	b.WriteString(`        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }
        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
            background: linear-gradient(160deg, var(--bg-1), var(--bg-2));
            color: var(--ink);
            min-height: 100vh;
            line-height: 1.5;
        }
        .sticky-nav {
            position: sticky;
            top: 0;
            z-index: 10;
            background: var(--bg-1);
            padding: 20px 20px 10px;
            box-shadow: var(--shadow-1, none);
        }
        header, .controls, #library {
            max-width: 1200px;
            margin: 0 auto;
        }
        h1 { font-size: 1.8rem; color: var(--accent); }
        .subtitle { color: var(--ink-dim); font-size: 0.9rem; margin-bottom: 12px; }
        #search {
            width: 100%;
            padding: 10px 16px;
            font-size: 1rem;
            background: var(--panel-10, var(--bg-2));
            border: var(--border-thickness, 1px) solid var(--panel-border, var(--ink-dim));
            border-radius: var(--r-md, 8px);
            color: var(--ink);
        }
        #search:focus { outline: none; border-color: var(--accent); }
        #library { padding: 20px; }
        .bookshelf { margin-bottom: 32px; }
        .bookshelf > h2 { color: var(--accent); margin-bottom: 12px; }
        .shelves { columns: 320px; column-gap: 16px; }
        .shelf {
            break-inside: avoid;
            margin-bottom: 16px;
            padding: 12px;
            background: var(--panel-16, var(--bg-2));
            border-radius: var(--r-md, 8px);
            box-shadow: var(--shadow-inset, none);
        }
        .shelf h3 { font-size: 1rem; margin-bottom: 8px; }
        .books { display: flex; flex-wrap: wrap; gap: 8px; }
        .book {
            width: 96px;
            min-height: 72px;
            padding: 8px;
            border-radius: var(--r-sm, 6px);
            color: #fff;
            font-size: 0.8rem;
            font-weight: 600;
            overflow-wrap: anywhere;
        }
        .book .tags { font-weight: 400; opacity: 0.85; margin-top: 4px; }
        .no-results { text-align: center; color: var(--ink-dim); padding: 40px; }
    </style>
</head>
<body>
    <div class="sticky-nav">
        <header>
            <h1>aethernote</h1>
`)
	fmt.Fprintf(&b, "            <p class=\"subtitle\">%d bookshelves, %d notes</p>\n", len(s.Bookshelves), s.BookCount())
	b.WriteString(`        </header>
        <div class="controls">
            <input type="text" id="search" placeholder="Search notes and tags" autocomplete="off">
        </div>
    </div>

    <div id="library">
`)

	order := 0
	for _, bs := range s.Bookshelves {
		fmt.Fprintf(&b, "        <section class=\"bookshelf\" data-id=\"%s\">\n            <h2>%s</h2>\n            <div class=\"shelves\">\n",
			html.EscapeString(bs.ID), html.EscapeString(bs.Name))
		for _, sh := range bs.Shelves {
			fmt.Fprintf(&b, "                <div class=\"shelf\" data-id=\"%s\">\n                    <h3>%s</h3>\n                    <div class=\"books\">\n",
				html.EscapeString(sh.ID), html.EscapeString(sh.Name))
			for _, bk := range sh.Books {
				renderNoteCard(&b, bs.Name, sh.Name, bk, order)
				order++
			}
			b.WriteString("                    </div>\n                </div>\n")
		}
		b.WriteString("            </div>\n        </section>\n")
	}

	b.WriteString(`    </div>

    <div id="no-results" class="no-results" style="display:none;">
        No notes match your search.
    </div>

    <script>
        const search = document.getElementById('search');
        const library = document.getElementById('library');
        const noResults = document.getElementById('no-results');
        const cards = Array.from(document.querySelectorAll('.book'));

        // Tag matches first, then title or content matches, each in tree order.
        search.addEventListener('input', () => {
            const q = search.value.trim().toLowerCase();
            const shelves = document.querySelectorAll('.bookshelf, .shelf');
            if (q === '') {
                cards.forEach(c => { c.style.display = ''; c.style.order = ''; });
                shelves.forEach(s => s.style.display = '');
                library.style.display = '';
                noResults.style.display = 'none';
                return;
            }
            let visible = 0;
            cards.forEach(c => {
                const tags = c.dataset.tags.split(',').filter(t => t);
                const byTag = tags.some(t => t.includes(q));
                const byText = c.dataset.title.toLowerCase().includes(q) ||
                    c.dataset.content.toLowerCase().includes(q);
                c.style.display = byTag || byText ? '' : 'none';
                c.style.order = byTag ? '0' : '1';
                if (byTag || byText) visible++;
            });
            shelves.forEach(s => {
                const any = Array.from(s.querySelectorAll('.book')).some(c => c.style.display !== 'none');
                s.style.display = any ? '' : 'none';
            });
            library.style.display = visible ? '' : 'none';
            noResults.style.display = visible ? 'none' : 'block';
        });
    </script>
</body>
</html>
`)
	return b.String()
}

func renderNoteCard(b *strings.Builder, bookshelf, shelf string, bk library.Book, index int) {
	from, to := "#7F5AF0", "#2CB67D"
	if bk.Gradient.Valid() {
		from, to = bk.Gradient[0], bk.Gradient[1]
	}
	lower := make([]string, len(bk.Tags))
	for i, t := range bk.Tags {
		lower[i] = strings.ToLower(t)
	}

	fmt.Fprintf(b, `                        <div class="book" data-id="%s" data-index="%d" data-tags="%s" data-title="%s" data-content="%s" title="%s" style="background: linear-gradient(135deg, %s, %s)">
                            %s
`,
		html.EscapeString(bk.ID),
		index,
		html.EscapeString(strings.Join(lower, ",")),
		html.EscapeString(bk.Title),
		html.EscapeString(bk.Content),
		html.EscapeString(bookshelf+" › "+shelf),
		html.EscapeString(cssColor(from)),
		html.EscapeString(cssColor(to)),
		html.EscapeString(bk.Title),
	)
	if len(bk.Tags) > 0 {
		fmt.Fprintf(b, "                            <div class=\"tags\">#%s</div>\n", html.EscapeString(strings.Join(lower, " #")))
	}
	b.WriteString("                        </div>\n")
}

// cssColor keeps gradient stops that parse as colors and drops the rest.
func cssColor(v string) string {
	if hex, ok := theme.HexColor(v); ok {
		return hex
	}
	return "#444444"
}
