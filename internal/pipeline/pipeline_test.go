package pipeline

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/justinlbrj23/onyotpisot/internal/sheets"
)

type memSource struct {
	rows []sheets.InputRow
	err  error
}

func (s memSource) Read(_ context.Context, _, _ string) ([]sheets.InputRow, error) {
	return s.rows, s.err
}

type memSink struct {
	writes [][]sheets.Cell
	errs   []error
}

func (s *memSink) Write(_ context.Context, cells []sheets.Cell) error {
	var err error
	if len(s.errs) > 0 {
		err = s.errs[0]
		s.errs = s.errs[1:]
	}
	if err != nil {
		return err
	}
	s.writes = append(s.writes, cells)
	return nil
}

// driverFactory hands out pre-built fakes one per acquisition and remembers
// them so tests can assert on cleanup.
type driverFactory struct {
	drivers []*fakeDriver
	next    int
	err     error
}

func (f *driverFactory) factory() (Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.next >= len(f.drivers) {
		d := readyDriver()
		f.drivers = append(f.drivers, d)
	}
	d := f.drivers[f.next]
	f.next++
	return d, nil
}

func newRunner(site Site, source memSource, sink *memSink, f *driverFactory) *Runner {
	return &Runner{
		Site:     site,
		Source:   source,
		Sink:     sink,
		Factory:  f.factory,
		KeyRange: "A2:A",
	}
}

func TestRunnerExampleScenario(t *testing.T) {
	source := memSource{rows: []sheets.InputRow{{Index: 5, Key: "1234567"}}}
	sink := &memSink{}
	f := &driverFactory{}

	summary, err := newRunner(testSite(), source, sink, f).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, Summary{Done: 1}, summary)

	// Exactly cell(row=5, C)="JOHN DOE" and cell(row=5, E)="$120,000".
	require.Len(t, sink.writes, 1)
	require.Equal(t, []sheets.Cell{
		{Row: 5, Column: "C", Value: "JOHN DOE"},
		{Row: 5, Column: "E", Value: "$120,000"},
	}, sink.writes[0])

	// The per-row session was released exactly once.
	require.Len(t, f.drivers, 1)
	require.Equal(t, 1, f.drivers[0].closed)
}

func TestRunnerSourceFailureAborts(t *testing.T) {
	source := memSource{err: fmt.Errorf("%w: api unreachable", sheets.ErrSourceUnavailable)}
	sink := &memSink{}
	f := &driverFactory{}

	_, err := newRunner(testSite(), source, sink, f).Run(context.Background())
	require.ErrorIs(t, err, sheets.ErrSourceUnavailable)
	require.Empty(t, f.drivers)
	require.Empty(t, sink.writes)
}

func TestRunnerSkipsBlankAndCheckedRows(t *testing.T) {
	source := memSource{rows: []sheets.InputRow{
		{Index: 2, Key: ""},
		{Index: 3, Key: "1234567", Check: "done"},
		{Index: 4, Key: "7654321"},
	}}
	sink := &memSink{}
	f := &driverFactory{}

	summary, err := newRunner(testSite(), source, sink, f).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, Summary{Done: 1, Skipped: 2}, summary)

	// Skipped rows never reach the processor: one session, one write.
	require.Len(t, f.drivers, 1)
	require.Len(t, sink.writes, 1)
	require.Equal(t, 4, sink.writes[0][0].Row)
}

func TestRunnerRowFailureIsolated(t *testing.T) {
	source := memSource{rows: []sheets.InputRow{
		{Index: 2, Key: "badrow"},
		{Index: 3, Key: "goodrow"},
	}}
	sink := &memSink{}

	failing := readyDriver()
	delete(failing.texts, "#results")
	f := &driverFactory{drivers: []*fakeDriver{failing, readyDriver()}}

	summary, err := newRunner(testSite(), source, sink, f).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, Summary{Done: 1, Failed: 1}, summary)

	// Zero writes for the failed row; the next row advanced exactly once.
	require.Len(t, sink.writes, 1)
	require.Equal(t, 3, sink.writes[0][0].Row)

	// Cleanup ran on both exit paths.
	require.Equal(t, 1, failing.closed)
	require.Equal(t, 1, f.drivers[1].closed)
}

func TestRunnerSessionAcquireErrorSkipsRow(t *testing.T) {
	source := memSource{rows: []sheets.InputRow{{Index: 2, Key: "1234567"}}}
	sink := &memSink{}
	f := &driverFactory{err: fmt.Errorf("browser missing")}

	summary, err := newRunner(testSite(), source, sink, f).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, Summary{Skipped: 1}, summary)
	require.Empty(t, sink.writes)
}

func TestRunnerSinkErrorDoesNotAbortBatch(t *testing.T) {
	source := memSource{rows: []sheets.InputRow{
		{Index: 2, Key: "a"},
		{Index: 3, Key: "b"},
	}}
	sink := &memSink{errs: []error{fmt.Errorf("%w: quota", sheets.ErrSinkWrite)}}
	f := &driverFactory{}

	summary, err := newRunner(testSite(), source, sink, f).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, Summary{Done: 1, Failed: 1}, summary)
	require.Len(t, sink.writes, 1)
	require.Equal(t, 3, sink.writes[0][0].Row)
}

func TestRunnerSharedSession(t *testing.T) {
	source := memSource{rows: []sheets.InputRow{
		{Index: 2, Key: "a"},
		{Index: 3, Key: "b"},
	}}
	sink := &memSink{}
	f := &driverFactory{}

	site := testSite()
	site.SharedSession = true

	summary, err := newRunner(site, source, sink, f).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, Summary{Done: 2}, summary)

	// One browser for the batch, re-navigated to the search root per row,
	// released exactly once at the end.
	require.Len(t, f.drivers, 1)
	require.Equal(t, []string{
		"https://example.test/search",
		"https://example.test/search",
	}, f.drivers[0].navigated)
	require.Equal(t, 1, f.drivers[0].closed)
}

func TestRunnerIdempotentRerun(t *testing.T) {
	source := memSource{rows: []sheets.InputRow{{Index: 5, Key: "1234567"}}}

	run := func() []sheets.Cell {
		sink := &memSink{}
		f := &driverFactory{}
		_, err := newRunner(testSite(), source, sink, f).Run(context.Background())
		require.NoError(t, err)
		require.Len(t, sink.writes, 1)
		return sink.writes[0]
	}

	// Same static page content, same input: byte-identical cell values.
	require.Equal(t, run(), run())
}
