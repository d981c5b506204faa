// ABOUTME: Classification of meta tags into standard, og, twitter and other namespaces
// ABOUTME: Also folds colon and underscore separated property names into camelCase keys

package extractor

import (
	"strings"

	"linkmeta-api/core/domain"
)

// propertyPrefixes are recognized on the property attribute, in match order
var propertyPrefixes = []string{"og:", "twitter:", "article:", "product:"}

// standardNames are the name attribute values kept under the standard namespace
var standardNames = map[string]struct{}{
	"description": {},
	"keywords":    {},
	"viewport":    {},
	"robots":      {},
	"generator":   {},
	"theme-color": {},
	"author":      {},
}

const twitterPrefix = "twitter:"

// classifyMeta applies the meta rules in order and returns the record to store.
// ok is false when the tag should be skipped.
func classifyMeta(t tag, includeAllMeta bool) (rec domain.MetaRecord, ok bool) {
	content, hasContent := t.attr("content")

	// property="og:*|twitter:*|article:*|product:*"
	if property, has := t.attr("property"); has && hasContent {
		for _, prefix := range propertyPrefixes {
			if !strings.HasPrefix(property, prefix) {
				continue
			}
			remainder := property[len(prefix):]
			switch prefix {
			case "og:":
				return domain.MetaRecord{Namespace: domain.NamespaceOG, Key: CamelKey(remainder), Value: content}, true
			case twitterPrefix:
				return domain.MetaRecord{Namespace: domain.NamespaceTwitter, Key: CamelKey(remainder), Value: content}, true
			default:
				if !includeAllMeta {
					return domain.MetaRecord{}, false
				}
				return domain.MetaRecord{Namespace: domain.NamespaceOther, Key: prefix + remainder, Value: content}, true
			}
		}
	}

	// name="twitter:*" or a known standard name
	name, hasName := t.attr("name")
	if hasName && hasContent {
		if strings.HasPrefix(name, twitterPrefix) {
			return domain.MetaRecord{Namespace: domain.NamespaceTwitter, Key: CamelKey(name[len(twitterPrefix):]), Value: content}, true
		}
		if _, known := standardNames[name]; known {
			return domain.MetaRecord{Namespace: domain.NamespaceStandard, Key: name, Value: content}, true
		}
		if includeAllMeta {
			return domain.MetaRecord{Namespace: domain.NamespaceOther, Key: name, Value: content}, true
		}
	}

	if charset, has := t.attr("charset"); has {
		return domain.MetaRecord{Namespace: domain.NamespaceStandard, Key: "charset", Value: charset}, true
	}

	return domain.MetaRecord{}, false
}

// CamelKey folds a property remainder into a camelCase key. Every ':' or '_'
// followed by an ASCII letter collapses into that letter upper-cased, so
// "site_name" becomes "siteName" and "audio:secure_url" becomes "audioSecureUrl".
// Separators not followed by a letter are kept.
func CamelKey(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c == ':' || c == '_') && i+1 < len(s) && isASCIILetter(s[i+1]) {
			next := s[i+1]
			if next >= 'a' && next <= 'z' {
				next -= 'a' - 'A'
			}
			b.WriteByte(next)
			i++
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
