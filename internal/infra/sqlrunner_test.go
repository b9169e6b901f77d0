package infra

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/webshunter/animemacker/internal/middleware"
)

type recordingExecutor struct {
	query string
	args  []any
}

func (r *recordingExecutor) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	r.query = query
	r.args = args
	return pgconn.NewCommandTag("UPDATE 1"), nil
}

func (r *recordingExecutor) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	r.query = query
	return errorRow{err: pgx.ErrNoRows}
}

func (r *recordingExecutor) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	r.query = query
	return nil, errors.New("not implemented")
}

func TestExtractMarker(t *testing.T) {
	marker, body, err := extractMarker("\n--sql 8a8e0d52-7f5d-4f21-8b7d-f7d4b821eed7\nselect 1;\n")
	if err != nil {
		t.Fatalf("extractMarker returned error: %v", err)
	}
	if marker != "8a8e0d52-7f5d-4f21-8b7d-f7d4b821eed7" {
		t.Fatalf("marker = %q", marker)
	}
	if body != "select 1;" {
		t.Fatalf("body = %q", body)
	}

	for _, q := range []string{"", "select 1;", "--sql not-a-uuid\nselect 1;", "-- sql 8a8e0d52-7f5d-4f21-8b7d-f7d4b821eed7\nselect 1"} {
		if _, _, err := extractMarker(q); err == nil {
			t.Fatalf("extractMarker(%q) expected error", q)
		}
	}
}

func TestSQLRunnerStripsMarker(t *testing.T) {
	rec := &recordingExecutor{}
	runner := NewSQLRunner(rec, zerolog.Nop())

	tag, err := runner.Exec(context.Background(), "--sql 6d4f5660-0f7c-4f73-a1f3-9ab6d5e6c7a3\nupdate t set x = $1;", 1)
	if err != nil {
		t.Fatalf("Exec returned error: %v", err)
	}
	if tag.RowsAffected() != 1 {
		t.Fatalf("RowsAffected = %d", tag.RowsAffected())
	}
	if rec.query != "update t set x = $1;" || len(rec.args) != 1 {
		t.Fatalf("forwarded query = %q args = %v", rec.query, rec.args)
	}

	if _, err := runner.Exec(context.Background(), "update t set x = 1;"); !errors.Is(err, ErrMissingMarker) {
		t.Fatalf("Exec err = %v, want ErrMissingMarker", err)
	}

	var dest int
	err = runner.QueryRow(context.Background(), "--sql 6d4f5660-0f7c-4f73-a1f3-9ab6d5e6c7a3\nselect 1;").Scan(&dest)
	if !IsNoRows(err) {
		t.Fatalf("QueryRow err = %v, want no rows", err)
	}
	if err := runner.QueryRow(context.Background(), "select 1;").Scan(&dest); !errors.Is(err, ErrMissingMarker) {
		t.Fatalf("QueryRow err = %v, want ErrMissingMarker", err)
	}
}

func TestSQLRunnerLogsRequestID(t *testing.T) {
	var buf bytes.Buffer
	runner := NewSQLRunner(&recordingExecutor{}, zerolog.New(&buf).Level(zerolog.DebugLevel))

	ctx := middleware.WithRequestID(context.Background(), "req-42")
	if _, err := runner.Exec(ctx, "--sql 6d4f5660-0f7c-4f73-a1f3-9ab6d5e6c7a3\nupdate t set x = 1;"); err != nil {
		t.Fatalf("Exec returned error: %v", err)
	}
	if !strings.Contains(buf.String(), `"request_id":"req-42"`) {
		t.Fatalf("log %q missing request id", buf.String())
	}

	buf.Reset()
	if _, err := runner.Exec(context.Background(), "--sql 6d4f5660-0f7c-4f73-a1f3-9ab6d5e6c7a3\nupdate t set x = 1;"); err != nil {
		t.Fatalf("Exec returned error: %v", err)
	}
	if strings.Contains(buf.String(), "request_id") {
		t.Fatalf("log %q should not carry a request id", buf.String())
	}
}
