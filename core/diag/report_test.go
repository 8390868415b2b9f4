package diag

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLog(t *testing.T) {
	var buf bytes.Buffer
	rec := NewJSONLines(&buf)
	rec.Record(Event{TimestampMicros: 1, Kind: SecuritySuppression, Name: "Deploy"})
	rec.Record(Event{TimestampMicros: 2, Kind: PathLookupDenied, Name: "../etc"})

	var got []Event
	err := ReadLog(&buf, func(ev Event) { got = append(got, ev) })
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, SecuritySuppression, got[0].Kind)
	assert.Equal(t, "Deploy", got[0].Name)
	assert.Equal(t, PathLookupDenied, got[1].Kind)
}

func TestReadLog_badInput(t *testing.T) {
	err := ReadLog(strings.NewReader("{not json"), func(Event) {})
	assert.Error(t, err)
}

func TestReportUpdate(t *testing.T) {
	var report Report
	for _, ev := range []Event{
		{Kind: SecuritySuppression, Name: "Deploy"},
		{Kind: SecuritySuppression, Name: "Deploy"},
		{Kind: ProviderError, Name: "mem:tool"},
		{Kind: AmbiguousPath, Name: "note*"},
		{Kind: EventKind("mystery"), Name: "x"},
	} {
		report.Update(ev)
	}

	assert.Equal(t, 5, report.Events)
	assert.Equal(t, 2, report.Suppressions.Count("Deploy"))
	assert.Equal(t, 1, report.ProviderErrors.Count("mem:tool"))
	assert.Equal(t, 1, report.AmbiguousPaths.Count("note*"))
	assert.Equal(t, 1, report.UnknownKinds.Count("mystery"))
	assert.Equal(t, 0, report.DeniedLookups.Count("anything"))
}
