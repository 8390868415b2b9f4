package binder

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutshell-sh/nutshell/core/command"
	"github.com/nutshell-sh/nutshell/core/diag"
)

func itemMeta() *command.Metadata {
	return command.NewMetadata(
		command.NewParameter("Path", command.TypeString).At(0),
		command.NewParameter("Force", command.TypeSwitch),
		command.NewParameter("Depth", command.TypeInt),
	)
}

func TestBindNamedAndSwitch(t *testing.T) {
	rep, err := New(itemMeta()).Bind(RawList("-Path", "/tmp", "-Force", "-Depth", "2"))
	require.NoError(t, err)

	assert.Equal(t, "/tmp", rep.GetString("Path"))
	assert.Equal(t, true, rep.GetBool("Force"))
	assert.Equal(t, 2, rep.GetInt("Depth"))
	assert.Empty(t, rep.Leftovers)
	assert.True(t, rep.Specified("Path"))
}

func TestBindPositionalLeftover(t *testing.T) {
	// With Path taken by name, /etc has no position to land on.
	rep, err := New(itemMeta()).Bind(RawList("-Path", "/tmp", "/etc"))
	require.NoError(t, err)

	assert.Equal(t, "/tmp", rep.GetString("Path"))
	require.Len(t, rep.Leftovers, 1)
	assert.Equal(t, "/etc", rep.Leftovers[0].Value)
}

func TestBindPositional(t *testing.T) {
	rep, err := New(itemMeta()).Bind(RawList("/tmp"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp", rep.GetString("Path"))
}

func TestBindAlreadyBound(t *testing.T) {
	_, err := New(itemMeta()).Bind(RawList("-Path", "/a", "-Path", "/b"))
	var bindErr *BindError
	require.ErrorAs(t, err, &bindErr)
	assert.Equal(t, CodeAlreadyBound, bindErr.Code)
	assert.Equal(t, "Path", bindErr.Parameter)
}

func TestBindSplatLosesToExplicit(t *testing.T) {
	raw := []RawArg{
		Raw("-Path"), Raw("/explicit"),
		{Text: "@opts", Splat: map[string]any{"Path": "/splatted", "Force": true}, Offset: -1},
	}
	rep, err := New(itemMeta()).Bind(raw)
	require.NoError(t, err)
	assert.Equal(t, "/explicit", rep.GetString("Path"))
	assert.True(t, rep.GetBool("Force"))
}

func TestBindUnknownNamedLeftover(t *testing.T) {
	rep, err := New(itemMeta()).Bind(RawList("-Whatever", "x"))
	require.NoError(t, err)
	require.Len(t, rep.Leftovers, 1)
	assert.Equal(t, "Whatever", rep.Leftovers[0].Name)
	assert.Equal(t, "x", rep.Leftovers[0].Value)
}

const (
	byCount = command.SetFlags(1) << 0
	byName  = command.SetFlags(1) << 1
)

// twoSetMeta declares Count at position 0 in the default set and Size
// at position 0 in the other set, both numeric.
func twoSetMeta() *command.Metadata {
	return command.NewMetadata(
		command.NewParameter("Count", command.TypeInt).InSets(byCount).At(0),
		command.NewParameter("Size", command.TypeFloat).InSets(byName).At(0),
	).WithDefaultSet(byCount).WithSetNames("ByCount", "BySize")
}

func TestPositionalPrefersDefaultSetThroughCoercion(t *testing.T) {
	// "12" fits neither parameter without coercion, so the first two
	// attempts fail. The third attempt retries the default set with
	// coercion and must win before the any-set attempt ever sees the
	// argument.
	rep, err := New(twoSetMeta()).Bind(RawList("12"))
	require.NoError(t, err)

	assert.Equal(t, 12, rep.GetInt("Count"))
	assert.False(t, rep.Has("Size"))
	assert.Equal(t, byCount, rep.Sets)
}

func TestPositionalFallsToAnySetWithoutCoercion(t *testing.T) {
	meta := command.NewMetadata(
		command.NewParameter("Count", command.TypeInt).InSets(byCount).At(0),
		command.NewParameter("Name", command.TypeString).InSets(byName).At(0),
	).WithDefaultSet(byCount)

	// A plain string binds Name on the second attempt, before any
	// coercion happens.
	rep, err := New(meta).Bind(RawList("hello"))
	require.NoError(t, err)
	assert.Equal(t, "hello", rep.GetString("Name"))
	assert.False(t, rep.Has("Count"))
	assert.Equal(t, byName, rep.Sets)
}

func TestBindNarrowsLaterPositions(t *testing.T) {
	meta := command.NewMetadata(
		command.NewParameter("Mode", command.TypeString).InSets(byName),
		command.NewParameter("Path", command.TypeString).At(0),
		command.NewParameter("Target", command.TypeString).InSets(byCount).At(1),
		command.NewParameter("Label", command.TypeString).InSets(byName).At(1),
	)

	rep, err := New(meta).Bind(RawList("-Mode", "fast", "/src", "/dst"))
	require.NoError(t, err)

	assert.Equal(t, "/src", rep.GetString("Path"))
	assert.Equal(t, "/dst", rep.GetString("Label"))
	assert.False(t, rep.Has("Target"), "narrowed out by -Mode")
	assert.Equal(t, byName, rep.Sets)
}

func TestBindAmbiguousPositionIsHardError(t *testing.T) {
	meta := command.NewMetadata(
		command.NewParameter("One", command.TypeString).At(0),
		command.NewParameter("Two", command.TypeString).At(0),
	)
	_, err := New(meta).Bind(RawList("x"))
	var bindErr *BindError
	require.ErrorAs(t, err, &bindErr)
	assert.Equal(t, CodeAmbiguousPosition, bindErr.Code)
}

func TestBindRemainingCatchAll(t *testing.T) {
	meta := command.NewMetadata(
		command.NewParameter("Path", command.TypeString).At(0),
		command.NewParameter("Args", command.TypeStringSlice).Remaining(),
	)
	rep, err := New(meta).Bind(RawList("/bin/tool", "a", "-X", "b"))
	require.NoError(t, err)

	assert.Equal(t, "/bin/tool", rep.GetString("Path"))
	assert.Equal(t, []string{"a", "-X", "b"}, rep.GetStrings("Args"))
	assert.Empty(t, rep.Leftovers)
}

func TestBindDefaults(t *testing.T) {
	meta := command.NewMetadata(
		command.NewParameter("Path", command.TypeString).At(0),
		command.NewParameter("Depth", command.TypeInt).WithDefault("3"),
		command.NewParameter("Label", command.TypeString).WithDefault(""),
	)
	rep, err := New(meta).Bind(RawList("/tmp"))
	require.NoError(t, err)

	// Non-empty expressions coerce, empty ones bind nil untouched.
	assert.Equal(t, 3, rep.GetInt("Depth"))
	assert.True(t, rep.Has("Label"))
	assert.Nil(t, rep.Values["Label"])
	assert.Equal(t, []string{"Depth", "Label"}, rep.AppliedDefaults)
	assert.False(t, rep.Specified("Depth"))
}

type failingDefaults struct {
	failOn string
}

func (f failingDefaults) Evaluate(p *command.Parameter) (any, error) {
	if p.Name == f.failOn {
		return nil, fmt.Errorf("no value for %s", p.Name)
	}
	return p.Default, nil
}

func TestBindDefaultErrorNamesCommitted(t *testing.T) {
	meta := command.NewMetadata(
		command.NewParameter("Alpha", command.TypeString).WithDefault("a"),
		command.NewParameter("Beta", command.TypeString).WithDefault("b"),
	)
	b := New(meta, WithDefaults(failingDefaults{failOn: "Beta"}))
	_, err := b.Bind(nil)

	var defErr *DefaultError
	require.ErrorAs(t, err, &defErr)
	assert.Equal(t, "Beta", defErr.Parameter)
	assert.Equal(t, []string{"Alpha"}, defErr.Committed)
	assert.Contains(t, err.Error(), "defaults already bound: Alpha")
}

func TestBindDefaultSwallowableValidationSkips(t *testing.T) {
	var events []diag.Event
	rec := diag.RecorderFunc(func(ev diag.Event) { events = append(events, ev) })

	meta := command.NewMetadata(
		command.NewParameter("Mode", command.TypeString).
			WithDefault("slow").
			WithValidator(func(v any) error {
				if v == "slow" {
					return Swallow(errors.New("slow mode retired"))
				}
				return nil
			}),
	)
	rep, err := New(meta, WithRecorder(rec)).Bind(nil)
	require.NoError(t, err)

	assert.False(t, rep.Has("Mode"))
	require.Len(t, events, 1)
	assert.Equal(t, diag.DefaultSkipped, events[0].Kind)
	assert.Equal(t, "Mode", events[0].Name)
}

func TestBindAmbiguousSet(t *testing.T) {
	meta := command.NewMetadata(
		command.NewParameter("A", command.TypeString).InSets(byCount),
		command.NewParameter("B", command.TypeString).InSets(byName),
	)
	_, err := New(meta).Bind(nil)
	var bindErr *BindError
	require.ErrorAs(t, err, &bindErr)
	assert.Equal(t, CodeAmbiguousSet, bindErr.Code)

	// A default set breaks the tie.
	meta = command.NewMetadata(
		command.NewParameter("A", command.TypeString).InSets(byCount),
		command.NewParameter("B", command.TypeString).InSets(byName),
	).WithDefaultSet(byCount)
	rep, err := New(meta).Bind(nil)
	require.NoError(t, err)
	assert.Equal(t, byCount, rep.Sets)
}

func TestBindDisjointNamedPairFails(t *testing.T) {
	meta := command.NewMetadata(
		command.NewParameter("A", command.TypeString).InSets(byCount),
		command.NewParameter("B", command.TypeString).InSets(byName),
	)
	_, err := New(meta).Bind(RawList("-A", "x", "-B", "y"))
	var bindErr *BindError
	require.ErrorAs(t, err, &bindErr)
	assert.Equal(t, CodeAmbiguousSet, bindErr.Code)
}

func TestBindMissingMandatoryReported(t *testing.T) {
	meta := command.NewMetadata(
		command.NewParameter("Name", command.TypeString).Required(),
		command.NewParameter("Force", command.TypeSwitch),
	)
	rep, err := New(meta).Bind(RawList("-Force"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Name"}, rep.MissingMandatory)

	rep, err = New(meta).Bind(RawList("-Name", "x"))
	require.NoError(t, err)
	assert.Empty(t, rep.MissingMandatory)
}
