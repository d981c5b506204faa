// ABOUTME: Metadata domain model describing the namespaced result of a page extraction
// ABOUTME: Holds documents, meta records, link pairs and the JSON shape returned to callers

package domain

import (
	"encoding/json"
	"sort"
)

// Namespace identifies the bucket a meta record is stored under
type Namespace string

const (
	// NamespaceStandard holds plain HTML meta tags, title, canonical URL and favicon
	NamespaceStandard Namespace = "standard"

	// NamespaceOG holds Open Graph properties
	NamespaceOG Namespace = "og"

	// NamespaceTwitter holds Twitter Card properties
	NamespaceTwitter Namespace = "twitter"

	// NamespaceOther holds everything else when all meta is requested
	NamespaceOther Namespace = "other"
)

// LinksKey is the reserved key under the other namespace that carries link pairs
const LinksKey = "links"

// Response header names copied into a result when requested
const (
	HeaderContentType   = "content-type"
	HeaderContentLength = "content-length"
	HeaderLastModified  = "last-modified"
)

// ResponseHeaderNames lists the headers a result may carry, in output order
var ResponseHeaderNames = []string{HeaderContentType, HeaderContentLength, HeaderLastModified}

// Document is the raw markup of a page plus the URL it was requested from
type Document struct {
	HTML    string
	BaseURL string
}

// MetaRecord is a single classified tag
type MetaRecord struct {
	Namespace Namespace
	Key       string
	Value     string
}

// Link is a rel/href pair taken from a link element
type Link struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}

// Other holds unrecognized meta values together with the link list.
// It serializes as a flat object where "links" sits next to the raw names.
type Other struct {
	Values map[string]string
	Links  []Link
}

// IsEmpty reports whether neither values nor links were collected
func (o *Other) IsEmpty() bool {
	return o == nil || (len(o.Values) == 0 && len(o.Links) == 0)
}

// MarshalJSON flattens values and links into one object
func (o Other) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(o.Values)+1)
	for k, v := range o.Values {
		out[k] = v
	}
	if len(o.Links) > 0 {
		out[LinksKey] = o.Links
	}
	return json.Marshal(out)
}

// UnmarshalJSON splits a flat object back into values and links
func (o *Other) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	o.Values = nil
	o.Links = nil
	for k, v := range raw {
		if k == LinksKey {
			if err := json.Unmarshal(v, &o.Links); err != nil {
				return err
			}
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return err
		}
		if o.Values == nil {
			o.Values = make(map[string]string)
		}
		o.Values[k] = s
	}
	return nil
}

// Result is the extraction output for one page
type Result struct {
	Standard map[string]string `json:"standard,omitempty"`
	OG       map[string]string `json:"og,omitempty"`
	Twitter  map[string]string `json:"twitter,omitempty"`
	Other    *Other            `json:"other,omitempty"`
	HTML     *string           `json:"html,omitempty"`
	Headers  map[string]string `json:"headers,omitempty"`
}

// NewResult returns a result with every namespace allocated
func NewResult() *Result {
	return &Result{
		Standard: make(map[string]string),
		OG:       make(map[string]string),
		Twitter:  make(map[string]string),
		Other:    &Other{Values: make(map[string]string)},
	}
}

// Set stores a record, overwriting any earlier value for the same key
func (r *Result) Set(rec MetaRecord) {
	switch rec.Namespace {
	case NamespaceStandard:
		r.Standard[rec.Key] = rec.Value
	case NamespaceOG:
		r.OG[rec.Key] = rec.Value
	case NamespaceTwitter:
		r.Twitter[rec.Key] = rec.Value
	case NamespaceOther:
		if rec.Key == LinksKey {
			return
		}
		r.Other.Values[rec.Key] = rec.Value
	}
}

// AddLink appends a link pair to the other namespace
func (r *Result) AddLink(link Link) {
	r.Other.Links = append(r.Other.Links, link)
}

// Get returns the value stored under a namespace and key
func (r *Result) Get(ns Namespace, key string) (string, bool) {
	var m map[string]string
	switch ns {
	case NamespaceStandard:
		m = r.Standard
	case NamespaceOG:
		m = r.OG
	case NamespaceTwitter:
		m = r.Twitter
	case NamespaceOther:
		if r.Other != nil {
			m = r.Other.Values
		}
	}
	v, ok := m[key]
	return v, ok
}

// Prune drops namespaces that ended up empty. The other namespace is kept only
// when keepOther is set and something was collected into it.
func (r *Result) Prune(keepOther bool) {
	if len(r.Standard) == 0 {
		r.Standard = nil
	}
	if len(r.OG) == 0 {
		r.OG = nil
	}
	if len(r.Twitter) == 0 {
		r.Twitter = nil
	}
	if !keepOther || r.Other.IsEmpty() {
		r.Other = nil
	}
}

// Namespaces lists the namespaces present in the result, sorted
func (r *Result) Namespaces() []Namespace {
	var out []Namespace
	if r.Standard != nil {
		out = append(out, NamespaceStandard)
	}
	if r.OG != nil {
		out = append(out, NamespaceOG)
	}
	if r.Twitter != nil {
		out = append(out, NamespaceTwitter)
	}
	if r.Other != nil {
		out = append(out, NamespaceOther)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
