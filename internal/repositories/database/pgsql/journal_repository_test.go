package pgsql

import (
	"context"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/SscSPs/ledger_reporting/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedQuery struct {
	sql  string
	args []any
}

// scriptedQuerier answers each Query with the next scripted result set and
// records the arguments it was called with.
type scriptedQuerier struct {
	results [][][]any
	queries []recordedQuery
}

func (q *scriptedQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.queries = append(q.queries, recordedQuery{sql: sql, args: args})
	if len(q.results) == 0 {
		return &scriptedRows{}, nil
	}
	rows := q.results[0]
	q.results = q.results[1:]
	return &scriptedRows{rows: rows}, nil
}

func (q *scriptedQuerier) QueryRow(context.Context, string, ...any) pgx.Row {
	panic("QueryRow is not scripted")
}

type scriptedRows struct {
	rows   [][]any
	pos    int
	closed bool
}

func (r *scriptedRows) Close()                                       { r.closed = true }
func (r *scriptedRows) Err() error                                   { return nil }
func (r *scriptedRows) CommandTag() pgconn.CommandTag                { return pgconn.NewCommandTag("SELECT") }
func (r *scriptedRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *scriptedRows) RawValues() [][]byte                          { return nil }
func (r *scriptedRows) Conn() *pgx.Conn                              { return nil }

func (r *scriptedRows) Next() bool {
	if r.closed || r.pos >= len(r.rows) {
		return false
	}
	r.pos++
	return true
}

func (r *scriptedRows) Scan(dest ...any) error {
	row := r.rows[r.pos-1]
	if len(dest) != len(row) {
		return fmt.Errorf("scanning %d columns into %d targets", len(row), len(dest))
	}
	for i, v := range row {
		reflect.ValueOf(dest[i]).Elem().Set(reflect.ValueOf(v))
	}
	return nil
}

func (r *scriptedRows) Values() ([]any, error) { return r.rows[r.pos-1], nil }

var (
	postingDay = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	march      = domain.NewDateRange(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC))
)

// lineRow matches the column order of the approved line query.
func lineRow(entry int64, line int, debit int64) []any {
	return []any{entry, postingDay, "sale", "", "APPROVED", line, "cash", debit, int64(0)}
}

// headerRow matches the column order of the entry header queries.
func headerRow(entry, correlative int64) []any {
	return []any{entry, correlative, postingDay, "sale", "", "APPROVED"}
}

// entryLineRow matches the column order of the batched line query.
func entryLineRow(entry int64, line int) []any {
	return []any{entry, line, "cash", int64(100), int64(0)}
}

func collectLines(t *testing.T, lines func(yield func(domain.LedgerLine, error) bool)) []domain.LedgerLine {
	t.Helper()
	var out []domain.LedgerLine
	for l, err := range lines {
		require.NoError(t, err)
		out = append(out, l)
	}
	return out
}

func assertLineCursor(t *testing.T, q recordedQuery, entry int64, line int) {
	t.Helper()
	after, ok := q.args[4].(*time.Time)
	require.True(t, ok)
	require.NotNil(t, after)
	assert.Equal(t, postingDay, *after)
	assert.Equal(t, entry, q.args[5])
	assert.Equal(t, line, q.args[6])
}

func TestStatusesAtLeast(t *testing.T) {
	assert.Equal(t, []string{"DRAFT", "PENDING", "APPROVED"}, statusesAtLeast(domain.Draft))
	assert.Equal(t, []string{"PENDING", "APPROVED"}, statusesAtLeast(domain.Pending))
	assert.Equal(t, []string{"APPROVED"}, statusesAtLeast(domain.Approved))
}

func TestNewPgxJournalRepository_DefaultPageSize(t *testing.T) {
	assert.Equal(t, DefaultPageSize, newPgxJournalRepository(nil, "co", 0).pageSize)
	assert.Equal(t, 50, newPgxJournalRepository(nil, "co", 50).pageSize)
}

func TestNewSnapshotProvider_Options(t *testing.T) {
	p := NewSnapshotProvider(nil, WithPageSize(25), WithPageSize(-1))
	assert.Equal(t, 25, p.pageSize)
	assert.Nil(t, p.decorate)
}

func TestApprovedLinesInRange_PagesSameDayPostingsByKeyset(t *testing.T) {
	q := &scriptedQuerier{results: [][][]any{
		{lineRow(1, 1, 100), lineRow(1, 2, 200)},
		{lineRow(2, 1, 300)},
	}}
	repo := newPgxJournalRepository(q, "co-1", 2)

	lines := collectLines(t, repo.ApprovedLinesInRange(context.Background(), []string{"cash"}, march))

	require.Len(t, lines, 3)
	assert.Equal(t, []uint64{100, 200, 300}, []uint64{lines[0].Debit, lines[1].Debit, lines[2].Debit})
	require.Len(t, q.queries, 2, "a short page ends the stream")

	first := q.queries[0]
	assert.Equal(t, "co-1", first.args[0])
	assert.Equal(t, march.Start, *first.args[2].(*time.Time))
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), *first.args[3].(*time.Time), "the upper bound is the day after the range end")
	assert.Nil(t, first.args[4])
	assert.Equal(t, 2, first.args[7])

	assertLineCursor(t, q.queries[1], 1, 2)
}

func TestApprovedLinesInRange_FullLastPageIssuesOneMoreQuery(t *testing.T) {
	q := &scriptedQuerier{results: [][][]any{
		{lineRow(1, 1, 100)},
		{lineRow(1, 2, 200)},
		{},
	}}
	repo := newPgxJournalRepository(q, "co-1", 1)

	lines := collectLines(t, repo.ApprovedLinesInRange(context.Background(), []string{"cash"}, march))

	require.Len(t, lines, 2)
	require.Len(t, q.queries, 3)
	assertLineCursor(t, q.queries[1], 1, 1)
	assertLineCursor(t, q.queries[2], 1, 2)
}

func TestApprovedLinesInRange_StopsQueryingWhenConsumerStops(t *testing.T) {
	q := &scriptedQuerier{results: [][][]any{
		{lineRow(1, 1, 100)},
		{lineRow(1, 2, 200)},
	}}
	repo := newPgxJournalRepository(q, "co-1", 1)

	for range repo.ApprovedLinesInRange(context.Background(), []string{"cash"}, march) {
		break
	}
	assert.Len(t, q.queries, 1)
}

func TestApprovedLinesBefore_OpenLowerBound(t *testing.T) {
	q := &scriptedQuerier{}
	repo := newPgxJournalRepository(q, "co-1", 10)
	before := time.Date(2024, 3, 1, 17, 30, 0, 0, time.UTC)

	assert.Empty(t, collectLines(t, repo.ApprovedLinesBefore(context.Background(), []string{"cash"}, before)))

	require.Len(t, q.queries, 1)
	assert.Nil(t, q.queries[0].args[2])
	assert.Equal(t, march.Start, *q.queries[0].args[3].(*time.Time))
}

func TestApprovedLines_NoAccountsNoQuery(t *testing.T) {
	q := &scriptedQuerier{}
	repo := newPgxJournalRepository(q, "co-1", 10)

	assert.Empty(t, collectLines(t, repo.ApprovedLinesInRange(context.Background(), nil, march)))
	assert.Empty(t, q.queries)
}

func TestEntries_PagesByCorrelativeKeyset(t *testing.T) {
	q := &scriptedQuerier{results: [][][]any{
		{headerRow(10, 1), headerRow(11, 2)},
		{entryLineRow(10, 1), entryLineRow(11, 1), entryLineRow(11, 2)},
		{headerRow(12, 2)},
		{entryLineRow(12, 1)},
	}}
	repo := newPgxJournalRepository(q, "co-1", 2)

	var entries []domain.JournalEntry
	for e, err := range repo.Entries(context.Background(), march, domain.Pending) {
		require.NoError(t, err)
		entries = append(entries, e)
	}

	require.Len(t, entries, 3)
	assert.Equal(t, []int64{10, 11, 12}, []int64{entries[0].EntryNumber, entries[1].EntryNumber, entries[2].EntryNumber})
	assert.Len(t, entries[1].Lines, 2)
	require.Len(t, q.queries, 4, "each header page is followed by one batched line query")

	first := q.queries[0]
	assert.Equal(t, []string{"PENDING", "APPROVED"}, first.args[1])
	assert.Equal(t, march.Start, first.args[2])
	assert.Equal(t, march.End, first.args[3])
	assert.Nil(t, first.args[4])
	assert.Equal(t, 2, first.args[6])

	assert.Equal(t, []int64{10, 11}, q.queries[1].args[1])

	second := q.queries[2]
	after, ok := second.args[4].(*int64)
	require.True(t, ok)
	require.NotNil(t, after)
	assert.Equal(t, int64(2), *after)
	assert.Equal(t, int64(11), second.args[5])
}

func TestEntries_FullLastPageIssuesOneMoreQuery(t *testing.T) {
	q := &scriptedQuerier{results: [][][]any{
		{headerRow(10, 1)},
		{entryLineRow(10, 1)},
		{},
	}}
	repo := newPgxJournalRepository(q, "co-1", 1)

	count := 0
	for _, err := range repo.Entries(context.Background(), march, domain.Approved) {
		require.NoError(t, err)
		count++
	}

	assert.Equal(t, 1, count)
	require.Len(t, q.queries, 3, "an empty header page skips the line query")
	assert.Equal(t, int64(1), *q.queries[2].args[4].(*int64))
	assert.Equal(t, int64(10), q.queries[2].args[5])
}
