package widget

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestDeriveName(t *testing.T) {
	cases := []struct {
		page string
		want string
	}{
		{"", "index"},
		{"/", "index"},
		{"/blog/post-1", "blog/post-1"},
		{"/blog/post-1/", "blog/post-1"},
		{"/about?ref=nav", "about"},
		{"/docs#install", "docs"},
		{"/" + strings.Repeat("a", 150), strings.Repeat("a", 100)},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DeriveName(tc.page), "page %q", tc.page)
	}
}

func TestDeriveName_TruncatesOnRuneBoundary(t *testing.T) {
	name := DeriveName("/" + strings.Repeat("页", 150))
	assert.Equal(t, strings.Repeat("页", 100), name)
	assert.True(t, utf8.ValidString(name))
}

func TestNewController_ExplicitNameWins(t *testing.T) {
	w := NewController(nil, nil, Options{Name: "custom", Page: "/blog"})
	defer w.Close()
	assert.Equal(t, "custom", w.Name())

	w2 := NewController(nil, nil, Options{Page: "/blog"})
	defer w2.Close()
	assert.Equal(t, "blog", w2.Name())
}
