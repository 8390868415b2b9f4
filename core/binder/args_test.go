package binder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutshell-sh/nutshell/core/command"
)

func reparseMeta() *command.Metadata {
	return command.NewMetadata(
		command.NewParameter("Path", command.TypeString).At(0),
		command.NewParameter("Force", command.TypeSwitch),
		command.NewParameter("Depth", command.TypeInt),
	)
}

func TestReparseNamedPair(t *testing.T) {
	args, err := Reparse(reparseMeta(), RawList("-Path", "/tmp"))
	require.NoError(t, err)
	require.Len(t, args, 1)
	assert.Equal(t, "Path", args[0].Name)
	assert.True(t, args[0].NameSpecified)
	assert.Equal(t, "/tmp", args[0].Value)
	assert.True(t, args[0].ValueSpecified)
}

func TestReparseSwitchSynthesis(t *testing.T) {
	args, err := Reparse(reparseMeta(), RawList("-Force", "/tmp"))
	require.NoError(t, err)
	require.Len(t, args, 2)

	assert.Equal(t, "Force", args[0].Name)
	assert.Equal(t, true, args[0].Value)
	assert.True(t, args[0].ValueSpecified)

	// The switch does not consume the following token.
	assert.False(t, args[1].NameSpecified)
	assert.Equal(t, "/tmp", args[1].Value)
}

func TestReparseInlineValue(t *testing.T) {
	args, err := Reparse(reparseMeta(), RawList("-Depth:3", "-Force:false"))
	require.NoError(t, err)
	require.Len(t, args, 2)
	assert.Equal(t, "Depth", args[0].Name)
	assert.Equal(t, "3", args[0].Value)
	assert.Equal(t, "Force", args[1].Name)
	assert.Equal(t, "false", args[1].Value)
}

func TestReparseMissingArgument(t *testing.T) {
	_, err := Reparse(reparseMeta(), RawList("-Depth"))
	var bindErr *BindError
	require.ErrorAs(t, err, &bindErr)
	assert.Equal(t, CodeMissingArgument, bindErr.Code)
	assert.Equal(t, "Depth", bindErr.Parameter)

	// A following parameter token is not a value either.
	_, err = Reparse(reparseMeta(), RawList("-Depth", "-Force"))
	require.ErrorAs(t, err, &bindErr)
	assert.Equal(t, CodeMissingArgument, bindErr.Code)
}

func TestReparseUnknownNamePassesThrough(t *testing.T) {
	args, err := Reparse(reparseMeta(), RawList("-Nope", "value", "-Tail"))
	require.NoError(t, err)
	require.Len(t, args, 2)

	// Unknown names pair with a following plain token so a dynamic
	// parameter could still claim both.
	assert.Equal(t, "Nope", args[0].Name)
	assert.Equal(t, "value", args[0].Value)
	assert.True(t, args[0].ValueSpecified)

	assert.Equal(t, "Tail", args[1].Name)
	assert.False(t, args[1].ValueSpecified)
}

func TestReparseDashedValues(t *testing.T) {
	args, err := Reparse(reparseMeta(), RawList("-123", "-", "--"))
	require.NoError(t, err)
	require.Len(t, args, 3)
	for _, a := range args {
		assert.False(t, a.NameSpecified, "%v should be a value", a.Value)
		assert.True(t, a.ValueSpecified)
	}
}

func TestReparseSplatExpansion(t *testing.T) {
	raw := []RawArg{
		Raw("-Path"), Raw("/explicit"),
		{Text: "@opts", Splat: map[string]any{"Force": true, "Depth": 2}, Offset: -1},
	}
	args, err := Reparse(reparseMeta(), raw)
	require.NoError(t, err)
	require.Len(t, args, 3)

	// Splats expand after ordinary tokens, keys in sorted order.
	assert.Equal(t, "Path", args[0].Name)
	assert.False(t, args[0].FromSplat)
	assert.Equal(t, "Depth", args[1].Name)
	assert.True(t, args[1].FromSplat)
	assert.Equal(t, 2, args[1].Value)
	assert.Equal(t, "Force", args[2].Name)
	assert.True(t, args[2].FromSplat)
}

func TestReparseAmbiguousPrefix(t *testing.T) {
	meta := command.NewMetadata(
		command.NewParameter("Path", command.TypeString),
		command.NewParameter("PassThru", command.TypeSwitch),
	)
	_, err := Reparse(meta, RawList("-pa", "x"))
	var ambiguous *command.AmbiguousNameError
	assert.ErrorAs(t, err, &ambiguous)
}

func TestReparseExtent(t *testing.T) {
	raw := []RawArg{
		{Text: "-Path", Offset: 10},
		{Text: "/tmp", Offset: 16},
	}
	args, err := Reparse(reparseMeta(), raw)
	require.NoError(t, err)
	require.Len(t, args, 1)
	assert.Equal(t, "-Path", args[0].Extent.Text)
	assert.Equal(t, 10, args[0].Extent.Offset)
}
