// ABOUTME: Title, canonical URL and favicon lookups run after the meta scan
// ABOUTME: Uses goquery so lookups follow the same element order a browser sees

package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"linkmeta-api/core/domain"
	"linkmeta-api/pkg/utils/urls"
)

const (
	// KeyTitle is the standard key back-filled from <title>
	KeyTitle = "title"

	// KeyCanonicalURL is the standard key for <link rel="canonical">
	KeyCanonicalURL = "canonicalUrl"

	// KeyFavicon is the standard key for <link rel="icon">
	KeyFavicon = "favicon"
)

// pageLinks holds the first canonical and icon hrefs found in the document
type pageLinks struct {
	title     string
	hasTitle  bool
	canonical string
	favicon   string
}

// lookupPageLinks collects the title text and the first canonical and icon links
func lookupPageLinks(doc *goquery.Document) pageLinks {
	var pl pageLinks

	if sel := doc.Find("title").First(); sel.Length() > 0 {
		if title := strings.TrimSpace(sel.Text()); title != "" {
			pl.title = title
			pl.hasTitle = true
		}
	}

	doc.Find("link[rel][href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		rel := normalizeRel(s.AttrOr("rel", ""))
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" {
			return true
		}
		switch rel {
		case "canonical":
			if pl.canonical == "" {
				pl.canonical = href
			}
		case "icon", "shortcut icon":
			if pl.favicon == "" {
				pl.favicon = href
			}
		}
		return pl.canonical == "" || pl.favicon == ""
	})

	return pl
}

// augment back-fills the title and stores canonical and favicon under standard.
// Canonical is stored as written; favicon is resolved against baseURL.
func augment(result *domain.Result, markup, baseURL string) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return
	}
	pl := lookupPageLinks(doc)

	if _, ok := result.Get(domain.NamespaceStandard, KeyTitle); !ok && pl.hasTitle {
		result.Standard[KeyTitle] = pl.title
	}
	if pl.canonical != "" {
		result.Standard[KeyCanonicalURL] = pl.canonical
	}
	if pl.favicon != "" {
		result.Standard[KeyFavicon] = urls.ResolveURL(pl.favicon, baseURL)
	}
}

// normalizeRel lower-cases a rel value and collapses inner whitespace
func normalizeRel(rel string) string {
	return strings.ToLower(strings.Join(strings.Fields(rel), " "))
}
