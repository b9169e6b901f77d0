// Package repo holds the PostgreSQL repositories. Every query goes through an
// infra.SQLExecutor so the --sql markers are enforced and logged.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/webshunter/animemacker/internal/domain"
	"github.com/webshunter/animemacker/internal/infra"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	default:
		return limit
	}
}

// validateID rejects malformed IDs before they reach a ::uuid cast.
func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: id %q", domain.ErrNotFound, id)
	}
	return nil
}

func isNotFound(err error) bool {
	return pgxscan.NotFound(err) || infra.IsNoRows(err) || errors.Is(err, domain.ErrNotFound)
}

func wrapNotFound(op string, err error) error {
	if isNotFound(err) {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func execAffecting(ctx context.Context, sql infra.SQLExecutor, op, query string, args ...any) error {
	tag, err := sql.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return nil
}
