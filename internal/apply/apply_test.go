// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package apply

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regctl/regctl/internal/report"
	"github.com/regctl/regctl/internal/settings"
	"github.com/regctl/regctl/internal/store"
)

// recordSink captures report lines for assertions.
type recordSink struct {
	lines []string
	sevs  []report.Severity
}

func (s *recordSink) Emit(sev report.Severity, line string) {
	s.sevs = append(s.sevs, sev)
	s.lines = append(s.lines, line)
}

func (s *recordSink) joined() string {
	return strings.Join(s.lines, "\n")
}

func newRun(t *testing.T) (store.Store, *recordSink, *report.Reporter) {
	t.Helper()
	st, err := store.OpenHiveFile(filepath.Join(t.TempDir(), "apply.hive.json"))
	require.NoError(t, err)
	sink := &recordSink{}
	return st, sink, report.New(sink, false)
}

func TestRunSingleDwordAgainstEmptyStore(t *testing.T) {
	st, sink, rep := newRun(t)
	doc := &settings.Document{Entries: []settings.Entry{
		{Path: "X", Name: "Mode", Type: "DWord", Value: float64(1)},
	}}

	res := Run(st, doc, rep)

	assert.Equal(t, 1, res.Succeeded)
	assert.Equal(t, 0, res.Failed)
	require.Len(t, res.Outcomes, 1)
	assert.Equal(t, StateSucceeded, res.Outcomes[0].State)
	assert.True(t, res.Outcomes[0].Created)

	val, found, err := st.GetValue("X", "Mode")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, settings.TypeDword, val.Type)
	assert.Equal(t, []byte{1, 0, 0, 0}, val.Data)

	assert.Contains(t, sink.joined(), "created path X")
	assert.Contains(t, sink.joined(), "done: 1 applied, 0 failed")
}

func TestRunTalliesAlwaysSum(t *testing.T) {
	st, _, rep := newRun(t)
	doc := &settings.Document{Entries: []settings.Entry{
		{Path: "A", Name: "Ok", Value: "fine"},
		{Path: "A", Name: "BadTag", Type: "Float", Value: float64(1)},
		{Path: "A", Name: "BadValue", Type: "DWord", Value: "not numeric"},
		{Path: "", Name: "NoPath", Value: "x"},
		{Path: "A", Name: "AlsoOk", Type: "QWord", Value: float64(2)},
	}}

	res := Run(st, doc, rep)

	assert.Equal(t, len(doc.Entries), res.Succeeded+res.Failed)
	assert.Equal(t, 2, res.Succeeded)
	assert.Equal(t, 3, res.Failed)
}

func TestRunContinuesPastFailures(t *testing.T) {
	st, sink, rep := newRun(t)
	doc := &settings.Document{Entries: []settings.Entry{
		{Path: "A", Name: "Bad", Type: "Nope", Value: float64(1)},
		{Path: "B", Name: "Good", Value: "ok"},
	}}

	res := Run(st, doc, rep)

	assert.Equal(t, 1, res.Succeeded)
	assert.Equal(t, 1, res.Failed)

	// The failing entry never touched the store.
	exists, err := st.PathExists("A")
	require.NoError(t, err)
	assert.False(t, exists, "bad entry fails before creating its path")

	_, found, err := st.GetValue("B", "Good")
	require.NoError(t, err)
	assert.True(t, found)

	assert.Contains(t, sink.joined(), `failed A\Bad`)
}

func TestRunSecondPassCreatesNothing(t *testing.T) {
	st, _, rep := newRun(t)
	doc := &settings.Document{Entries: []settings.Entry{
		{Path: `Software\Vendor`, Name: "Mode", Type: "DWord", Value: float64(1)},
	}}

	first := Run(st, doc, rep)
	require.Equal(t, 1, first.Succeeded)

	sink2 := &recordSink{}
	second := Run(st, doc, report.New(sink2, false))
	assert.Equal(t, 1, second.Succeeded)
	assert.False(t, second.Outcomes[0].Created)
	assert.NotContains(t, sink2.joined(), "created path")
}

// denyStore fails every write with a permission error, standing in for an
// under-privileged registry run.
type denyStore struct{}

var errDenied = errors.New("access is denied")

func (denyStore) PathExists(string) (bool, error) { return false, nil }
func (denyStore) EnsurePath(string) (bool, error) {
	return false, wrapWrite(errDenied)
}
func (denyStore) SetValue(string, string, store.Value) error {
	return wrapWrite(errDenied)
}
func (denyStore) GetValue(string, string) (store.Value, bool, error) {
	return store.Value{}, false, nil
}
func (denyStore) Close() error { return nil }

func wrapWrite(cause error) error {
	return errors.Join(store.ErrWrite, cause)
}

func TestRunPermissionDeniedIsEntryLocal(t *testing.T) {
	sink := &recordSink{}
	rep := report.New(sink, false)
	doc := &settings.Document{Entries: []settings.Entry{
		{Path: "X", Name: "Mode", Type: "DWord", Value: float64(1)},
	}}

	res := Run(denyStore{}, doc, rep)

	assert.Equal(t, 0, res.Succeeded)
	assert.Equal(t, 1, res.Failed)
	require.Len(t, res.Outcomes, 1)
	assert.ErrorIs(t, res.Outcomes[0].Err, store.ErrWrite)
	assert.Contains(t, sink.joined(), "access is denied")
}

func TestRunCreatedPathSurvivesFailedWrite(t *testing.T) {
	st, _, rep := newRun(t)

	failing := &writeFailStore{Store: st}
	doc := &settings.Document{Entries: []settings.Entry{
		{Path: "Keep", Name: "V", Type: "DWord", Value: float64(1)},
	}}

	res := Run(failing, doc, rep)
	require.Equal(t, 1, res.Failed)
	assert.ErrorIs(t, res.Outcomes[0].Err, store.ErrWrite)

	// No rollback: the path created during Ensuring stays.
	exists, err := st.PathExists("Keep")
	require.NoError(t, err)
	assert.True(t, exists)
}

// writeFailStore delegates everything but fails value writes.
type writeFailStore struct {
	store.Store
}

func (w *writeFailStore) SetValue(string, string, store.Value) error {
	return wrapWrite(errDenied)
}
