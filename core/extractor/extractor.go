// ABOUTME: Metadata extractor turning raw HTML into a namespaced result
// ABOUTME: Pure and deterministic; malformed or unrecognized tags are skipped, never reported

package extractor

import (
	"sort"

	"linkmeta-api/core/domain"
)

// Extract scans doc for meta and link elements and returns the classified result.
// Later tags overwrite earlier ones with the same namespace and key. Link pairs
// and unrecognized tags are collected only when opts.IncludeAllMeta is set.
// Extract is safe for concurrent use.
func Extract(doc domain.Document, opts domain.Options) *domain.Result {
	result := domain.NewResult()

	s := newScanner(doc.HTML, "meta", "link")
	for t, ok := s.next(); ok; t, ok = s.next() {
		switch t.name {
		case "meta":
			if rec, keep := classifyMeta(t, opts.IncludeAllMeta); keep {
				result.Set(rec)
			}
		case "link":
			if !opts.IncludeAllMeta {
				continue
			}
			rel, hasRel := t.attr("rel")
			href, hasHref := t.attr("href")
			if hasRel && hasHref {
				result.AddLink(domain.Link{Rel: rel, Href: href})
			}
		}
	}

	augment(result, doc.HTML, doc.BaseURL)

	result.Prune(opts.IncludeAllMeta)
	return result
}

// Records flattens a result into meta records ordered by namespace and key.
// The links list is not included.
func Records(r *domain.Result) []domain.MetaRecord {
	var out []domain.MetaRecord
	add := func(ns domain.Namespace, m map[string]string) {
		for _, k := range sortedKeys(m) {
			out = append(out, domain.MetaRecord{Namespace: ns, Key: k, Value: m[k]})
		}
	}
	add(domain.NamespaceStandard, r.Standard)
	add(domain.NamespaceOG, r.OG)
	add(domain.NamespaceTwitter, r.Twitter)
	if r.Other != nil {
		add(domain.NamespaceOther, r.Other.Values)
	}
	return out
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
