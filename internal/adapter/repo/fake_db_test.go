package repo

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type queryResult struct {
	columns []string
	rows    [][]any
	err     error
}

type call struct {
	query string
	args  []any
}

// fakeDB answers Query with canned results keyed by query text and records
// every call.
type fakeDB struct {
	results map[string]queryResult
	tag     pgconn.CommandTag
	execErr error
	calls   []call
}

func (f *fakeDB) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	f.calls = append(f.calls, call{query: query, args: args})
	return f.tag, f.execErr
}

func (f *fakeDB) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	f.calls = append(f.calls, call{query: query, args: args})
	return errRow{err: errors.New("QueryRow not supported")}
}

func (f *fakeDB) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	f.calls = append(f.calls, call{query: query, args: args})
	res, ok := f.results[query]
	if !ok {
		return &fakeRows{}, nil
	}
	if res.err != nil {
		return nil, res.err
	}
	return &fakeRows{columns: res.columns, data: res.rows, idx: -1}, nil
}

type errRow struct{ err error }

func (r errRow) Scan(dest ...any) error { return r.err }

type fakeRows struct {
	columns []string
	data    [][]any
	idx     int
	closed  bool
}

func (r *fakeRows) Close()                        { r.closed = true }
func (r *fakeRows) Err() error                    { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }
func (r *fakeRows) Conn() *pgx.Conn               { return nil }
func (r *fakeRows) RawValues() [][]byte           { return nil }

func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription {
	out := make([]pgconn.FieldDescription, len(r.columns))
	for i, c := range r.columns {
		out[i] = pgconn.FieldDescription{Name: c}
	}
	return out
}

func (r *fakeRows) Next() bool {
	if r.closed {
		return false
	}
	r.idx++
	if r.idx >= len(r.data) {
		r.closed = true
		return false
	}
	return true
}

func (r *fakeRows) Values() ([]any, error) {
	if r.idx < 0 || r.idx >= len(r.data) {
		return nil, errors.New("no current row")
	}
	return r.data[r.idx], nil
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.data[r.idx]
	if len(dest) != len(row) {
		return fmt.Errorf("scan: %d destinations for %d columns", len(dest), len(row))
	}
	for i, d := range dest {
		target := reflect.ValueOf(d).Elem()
		if row[i] == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		v := reflect.ValueOf(row[i])
		switch {
		case v.Type().AssignableTo(target.Type()):
			target.Set(v)
		case target.Kind() == reflect.Ptr && v.Type().AssignableTo(target.Type().Elem()):
			p := reflect.New(target.Type().Elem())
			p.Elem().Set(v)
			target.Set(p)
		default:
			return fmt.Errorf("scan: cannot assign %s to %s", v.Type(), target.Type())
		}
	}
	return nil
}

var characterColumns = []string{"id", "name", "description", "appearance", "personality", "portrait_key", "created_at", "updated_at"}

var creationColumns = []string{"id", "title", "image_prompt", "video_prompt", "idea", "character_id", "image_key", "provider", "fallback_reason", "created_at", "updated_at"}

var fixedTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func characterRow(id, name string) []any {
	return []any{id, name, "silver hair", "", "calm", nil, fixedTime, fixedTime}
}

func creationRow(id, title string) []any {
	return []any{id, title, "image", "video", "idea", nil, "creations/" + id + ".svg", "openai", "", fixedTime, fixedTime}
}
