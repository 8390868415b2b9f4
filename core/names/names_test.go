package names

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want QualifiedName
		ok   bool
	}{
		{"short", "Get-ChildItem", QualifiedName{Name: "Get-ChildItem"}, true},
		{"qualified", `files\Get-ChildItem`, QualifiedName{Namespace: "files", Name: "Get-ChildItem"}, true},
		{"wildcard passes through", `files\Get-*`, QualifiedName{Namespace: "files", Name: "Get-*"}, true},
		{"empty", "", QualifiedName{}, false},
		{"separator only", `\`, QualifiedName{}, false},
		{"empty namespace", `\gci`, QualifiedName{}, false},
		{"empty short name", `files\`, QualifiedName{}, false},
		{"two separators", `a\b\c`, QualifiedName{}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Parse(tc.raw)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, raw := range []string{
		"gci",
		"Get-ChildItem",
		`files\Get-ChildItem`,
		`net\*`,
	} {
		qn, ok := Parse(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, raw, qn.String())
	}
}

func TestQualified(t *testing.T) {
	qn, _ := Parse("gci")
	assert.False(t, qn.Qualified())

	qn, _ = Parse(`files\gci`)
	assert.True(t, qn.Qualified())
}
