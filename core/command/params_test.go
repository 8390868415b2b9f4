package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParameterBuilder(t *testing.T) {
	p := NewParameter("Path", TypeString).At(0).Required().
		AlsoInSets(1 << 1).At(1)

	require.Len(t, p.Sets, 2)
	assert.True(t, p.Sets[0].InAllSets)
	assert.Equal(t, 0, p.Sets[0].Position)
	assert.True(t, p.Sets[0].Mandatory)

	assert.False(t, p.Sets[1].InAllSets)
	assert.Equal(t, SetFlags(1<<1), p.Sets[1].Sets)
	assert.Equal(t, 1, p.Sets[1].Position)
	assert.False(t, p.Sets[1].Mandatory)
}

func TestParameterFlags(t *testing.T) {
	p := NewParameter("Force", TypeSwitch)
	assert.Equal(t, AllSets, p.Flags())

	p = NewParameter("Name", TypeString).InSets(1 << 0).AlsoInSets(1 << 2)
	assert.Equal(t, SetFlags(1<<0|1<<2), p.Flags())
}

func TestMetadataResolve(t *testing.T) {
	m := NewMetadata(
		NewParameter("Path", TypeString),
		NewParameter("PassThru", TypeSwitch),
		NewParameter("Force", TypeSwitch),
	)

	p, err := m.Resolve("path")
	require.NoError(t, err)
	assert.Equal(t, "Path", p.Name)

	// Unambiguous prefix.
	p, err = m.Resolve("fo")
	require.NoError(t, err)
	assert.Equal(t, "Force", p.Name)

	// Ambiguous prefix.
	_, err = m.Resolve("pa")
	var ambiguous *AmbiguousNameError
	require.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, []string{"Path", "PassThru"}, ambiguous.Candidates)

	// Unknown names are not an error, they pass through.
	p, err = m.Resolve("nadda")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestMetadataDuplicatePanics(t *testing.T) {
	assert.Panics(t, func() {
		NewMetadata(
			NewParameter("Path", TypeString),
			NewParameter("path", TypeString),
		)
	})
}

func TestDescribeSets(t *testing.T) {
	m := NewMetadata().WithSetNames("ByPath", "ByName")
	assert.Equal(t, "ByPath", m.DescribeSets(1<<0))
	assert.Equal(t, "ByPath, ByName", m.DescribeSets(1<<0|1<<1))
	assert.Equal(t, "set4", m.DescribeSets(1<<4))
	assert.Equal(t, "all", m.DescribeSets(AllSets))
	assert.Equal(t, "none", m.DescribeSets(0))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "alias", Alias.String())
	assert.Equal(t, "alias|builtin", (Alias | Builtin).String())
	assert.Equal(t, "none", Kind(0).String())
}

func TestSetEntryAppliesTo(t *testing.T) {
	e := SetEntry{Sets: 1 << 1}
	assert.True(t, e.AppliesTo(1<<1|1<<2))
	assert.False(t, e.AppliesTo(1<<2))

	e = SetEntry{InAllSets: true}
	assert.True(t, e.AppliesTo(0))
}
