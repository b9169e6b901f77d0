package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/webshunter/animemacker/internal/domain"
	"github.com/webshunter/animemacker/internal/infra"
	"github.com/webshunter/animemacker/internal/sqlinline"
)

// CharacterRepositoryPG implements domain.CharacterRepository using PostgreSQL.
type CharacterRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewCharacterRepository constructs a new character repository instance.
func NewCharacterRepository(sql infra.SQLExecutor) *CharacterRepositoryPG {
	return &CharacterRepositoryPG{sql: sql}
}

// Create inserts c with a fresh ID and returns the stored row.
func (r *CharacterRepositoryPG) Create(ctx context.Context, c *domain.Character) (*domain.Character, error) {
	if err := validateCharacter(c); err != nil {
		return nil, err
	}
	var out domain.Character
	err := pgxscan.Get(ctx, r.sql, &out, sqlinline.QInsertCharacter,
		uuid.NewString(), strings.TrimSpace(c.Name), c.Description, c.Appearance, c.Personality)
	if err != nil {
		return nil, fmt.Errorf("create character: %w", err)
	}
	return &out, nil
}

// Update overwrites the editable fields of the character with c.ID.
func (r *CharacterRepositoryPG) Update(ctx context.Context, c *domain.Character) (*domain.Character, error) {
	if err := validateCharacter(c); err != nil {
		return nil, err
	}
	if err := validateID(c.ID); err != nil {
		return nil, err
	}
	var out domain.Character
	err := pgxscan.Get(ctx, r.sql, &out, sqlinline.QUpdateCharacter,
		c.ID, strings.TrimSpace(c.Name), c.Description, c.Appearance, c.Personality)
	if err != nil {
		return nil, wrapNotFound("update character", err)
	}
	return &out, nil
}

func (r *CharacterRepositoryPG) Get(ctx context.Context, id string) (*domain.Character, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	var out domain.Character
	if err := pgxscan.Get(ctx, r.sql, &out, sqlinline.QSelectCharacterByID, id); err != nil {
		return nil, wrapNotFound("get character", err)
	}
	return &out, nil
}

// Latest returns the most recently created character.
func (r *CharacterRepositoryPG) Latest(ctx context.Context) (*domain.Character, error) {
	var out domain.Character
	if err := pgxscan.Get(ctx, r.sql, &out, sqlinline.QSelectLatestCharacter); err != nil {
		return nil, wrapNotFound("latest character", err)
	}
	return &out, nil
}

// List returns characters newest first.
func (r *CharacterRepositoryPG) List(ctx context.Context, limit int) ([]domain.Character, error) {
	var out []domain.Character
	if err := pgxscan.Select(ctx, r.sql, &out, sqlinline.QListCharacters, clampLimit(limit)); err != nil {
		return nil, fmt.Errorf("list characters: %w", err)
	}
	return out, nil
}

func (r *CharacterRepositoryPG) Delete(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	return execAffecting(ctx, r.sql, "delete character", sqlinline.QDeleteCharacter, id)
}

// SetPortrait records the storage key of the character's portrait.
func (r *CharacterRepositoryPG) SetPortrait(ctx context.Context, id, key string) error {
	if err := validateID(id); err != nil {
		return err
	}
	return execAffecting(ctx, r.sql, "set character portrait", sqlinline.QUpdateCharacterPortrait, id, key)
}

// UpsertLatest keeps a single active character: the newest row is updated in
// place, or a new one is created when the table is empty.
func (r *CharacterRepositoryPG) UpsertLatest(ctx context.Context, c *domain.Character) (*domain.Character, error) {
	if err := validateCharacter(c); err != nil {
		return nil, err
	}
	latest, err := r.Latest(ctx)
	switch {
	case err == nil:
		next := *c
		next.ID = latest.ID
		return r.Update(ctx, &next)
	case isNotFound(err):
		return r.Create(ctx, c)
	default:
		return nil, err
	}
}

func validateCharacter(c *domain.Character) error {
	if c == nil || strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: character name is required", domain.ErrInvalidInput)
	}
	return nil
}

var _ domain.CharacterRepository = (*CharacterRepositoryPG)(nil)
