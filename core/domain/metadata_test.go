package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult_SetLastWins(t *testing.T) {
	r := NewResult()
	r.Set(MetaRecord{Namespace: NamespaceOG, Key: "title", Value: "first"})
	r.Set(MetaRecord{Namespace: NamespaceOG, Key: "title", Value: "second"})

	v, ok := r.Get(NamespaceOG, "title")
	assert.True(t, ok)
	assert.Equal(t, "second", v)
}

func TestResult_SetIgnoresReservedLinksKey(t *testing.T) {
	r := NewResult()
	r.Set(MetaRecord{Namespace: NamespaceOther, Key: LinksKey, Value: "nope"})

	_, ok := r.Get(NamespaceOther, LinksKey)
	assert.False(t, ok)
	assert.True(t, r.Other.IsEmpty())
}

func TestResult_Prune(t *testing.T) {
	tests := []struct {
		name      string
		build     func(r *Result)
		keepOther bool
		want      []Namespace
	}{
		{
			name:  "empty result drops everything",
			build: func(r *Result) {},
			want:  nil,
		},
		{
			name: "other dropped when not requested",
			build: func(r *Result) {
				r.Set(MetaRecord{Namespace: NamespaceOther, Key: "foo", Value: "bar"})
				r.Set(MetaRecord{Namespace: NamespaceOG, Key: "title", Value: "x"})
			},
			keepOther: false,
			want:      []Namespace{NamespaceOG},
		},
		{
			name: "other kept when requested and non-empty",
			build: func(r *Result) {
				r.AddLink(Link{Rel: "alternate", Href: "/feed"})
			},
			keepOther: true,
			want:      []Namespace{NamespaceOther},
		},
		{
			name:      "other dropped when requested but empty",
			build:     func(r *Result) {},
			keepOther: true,
			want:      nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResult()
			tt.build(r)
			r.Prune(tt.keepOther)
			assert.Equal(t, tt.want, r.Namespaces())
		})
	}
}

func TestResult_JSONShape(t *testing.T) {
	r := NewResult()
	r.Set(MetaRecord{Namespace: NamespaceStandard, Key: "title", Value: "Hello"})
	r.Set(MetaRecord{Namespace: NamespaceOther, Key: "article:author", Value: "Jo"})
	r.AddLink(Link{Rel: "alternate", Href: "/feed"})
	r.Prune(true)

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.NotContains(t, decoded, "og")
	assert.NotContains(t, decoded, "twitter")
	assert.NotContains(t, decoded, "html")
	assert.NotContains(t, decoded, "headers")

	other := decoded["other"].(map[string]interface{})
	assert.Equal(t, "Jo", other["article:author"])
	links := other["links"].([]interface{})
	require.Len(t, links, 1)
	assert.Equal(t, map[string]interface{}{"rel": "alternate", "href": "/feed"}, links[0])
}

func TestOther_UnmarshalJSON(t *testing.T) {
	var o Other
	err := json.Unmarshal([]byte(`{"generator-x":"y","links":[{"rel":"me","href":"https://a.example"}]}`), &o)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"generator-x": "y"}, o.Values)
	assert.Equal(t, []Link{{Rel: "me", Href: "https://a.example"}}, o.Links)
}

func TestOptions_EffectiveTimeout(t *testing.T) {
	assert.Equal(t, DefaultTimeout, Options{}.EffectiveTimeout())
	assert.Equal(t, 2*time.Second, Options{Timeout: 2 * time.Second}.EffectiveTimeout())
}
