package static

import (
	"bytes"
	"io/fs"
	"net/url"
	"sort"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/cases"
)

// listEntry is one row of a generated directory listing.
type listEntry struct {
	name    string
	dir     bool
	symlink bool
}

// display is the visible link text: symlinks get a trailing @, other
// directories a trailing slash.
func (e listEntry) display() string {
	switch {
	case e.symlink:
		return e.name + "@"
	case e.dir:
		return e.name + "/"
	}
	return e.name
}

// href is the escaped relative link. Directories link with a trailing slash
// so the browser does not need the redirect.
func (e listEntry) href() string {
	name := e.name
	if e.dir {
		name += "/"
	}
	// A leading "./" keeps names like "a:b" from parsing as a scheme.
	return (&url.URL{Path: "./" + name}).EscapedPath()
}

func entriesFromInfos(infos []fs.FileInfo) []listEntry {
	entries := make([]listEntry, 0, len(infos))
	for _, fi := range infos {
		entries = append(entries, listEntry{
			name:    fi.Name(),
			dir:     fi.IsDir(),
			symlink: fi.Mode()&fs.ModeSymlink != 0,
		})
	}
	return entries
}

// sortEntries orders entries by case-folded name, then by raw name so the
// order is stable across filesystems.
func sortEntries(entries []listEntry) {
	fold := cases.Fold()
	keys := make(map[string]string, len(entries))
	for _, e := range entries {
		keys[e.name] = fold.String(e.name)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		ki, kj := keys[entries[i].name], keys[entries[j].name]
		if ki != kj {
			return ki < kj
		}
		return entries[i].name < entries[j].name
	})
}

func elem(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// renderListing writes an HTML page listing entries of the directory shown
// as displayPath. Entries must already be sorted.
func renderListing(displayPath string, entries []listEntry) ([]byte, error) {
	title := "Directory listing for " + displayPath

	head := elem(atom.Head)
	head.AppendChild(elem(atom.Meta, html.Attribute{Key: "charset", Val: "utf-8"}))
	titleEl := elem(atom.Title)
	titleEl.AppendChild(text(title))
	head.AppendChild(titleEl)

	body := elem(atom.Body)
	h1 := elem(atom.H1)
	h1.AppendChild(text(title))
	body.AppendChild(h1)
	body.AppendChild(elem(atom.Hr))

	ul := elem(atom.Ul)
	for _, e := range entries {
		a := elem(atom.A, html.Attribute{Key: "href", Val: e.href()})
		a.AppendChild(text(e.display()))
		li := elem(atom.Li)
		li.AppendChild(a)
		ul.AppendChild(li)
	}
	body.AppendChild(ul)
	body.AppendChild(elem(atom.Hr))

	root := elem(atom.Html, html.Attribute{Key: "lang", Val: "en"})
	root.AppendChild(head)
	root.AppendChild(body)

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	doc.AppendChild(root)

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
