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

// CreationRepositoryPG implements domain.CreationRepository using PostgreSQL.
type CreationRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewCreationRepository constructs a new creation repository instance.
func NewCreationRepository(sql infra.SQLExecutor) *CreationRepositoryPG {
	return &CreationRepositoryPG{sql: sql}
}

// Create stores a generated scene with its provenance.
func (r *CreationRepositoryPG) Create(ctx context.Context, c *domain.Creation) (*domain.Creation, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: creation is required", domain.ErrInvalidInput)
	}
	if err := validateScene(c.Scene()); err != nil {
		return nil, err
	}
	characterID := ""
	if c.CharacterID != nil {
		characterID = strings.TrimSpace(*c.CharacterID)
		if characterID != "" {
			if err := validateID(characterID); err != nil {
				return nil, err
			}
		}
	}
	var out domain.Creation
	err := pgxscan.Get(ctx, r.sql, &out, sqlinline.QInsertCreation,
		uuid.NewString(),
		strings.TrimSpace(c.Title),
		strings.TrimSpace(c.ImagePrompt),
		strings.TrimSpace(c.VideoPrompt),
		c.Idea,
		characterID,
		c.Provider,
		c.FallbackReason,
	)
	if err != nil {
		return nil, fmt.Errorf("create creation: %w", err)
	}
	return &out, nil
}

func (r *CreationRepositoryPG) Get(ctx context.Context, id string) (*domain.Creation, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	var out domain.Creation
	if err := pgxscan.Get(ctx, r.sql, &out, sqlinline.QSelectCreationByID, id); err != nil {
		return nil, wrapNotFound("get creation", err)
	}
	return &out, nil
}

// List returns creations newest first.
func (r *CreationRepositoryPG) List(ctx context.Context, limit int) ([]domain.Creation, error) {
	var out []domain.Creation
	if err := pgxscan.Select(ctx, r.sql, &out, sqlinline.QListCreations, clampLimit(limit)); err != nil {
		return nil, fmt.Errorf("list creations: %w", err)
	}
	return out, nil
}

// Update replaces the three prompt fields; all are required.
func (r *CreationRepositoryPG) Update(ctx context.Context, id string, scene domain.SceneOutput) (*domain.Creation, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	if err := validateScene(scene); err != nil {
		return nil, err
	}
	var out domain.Creation
	err := pgxscan.Get(ctx, r.sql, &out, sqlinline.QUpdateCreationScene,
		id, strings.TrimSpace(scene.Title), strings.TrimSpace(scene.ImagePrompt), strings.TrimSpace(scene.VideoPrompt))
	if err != nil {
		return nil, wrapNotFound("update creation", err)
	}
	return &out, nil
}

// SetImage records the storage key of the creation's image.
func (r *CreationRepositoryPG) SetImage(ctx context.Context, id, key string) error {
	if err := validateID(id); err != nil {
		return err
	}
	return execAffecting(ctx, r.sql, "set creation image", sqlinline.QUpdateCreationImage, id, key)
}

func (r *CreationRepositoryPG) Delete(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	return execAffecting(ctx, r.sql, "delete creation", sqlinline.QDeleteCreation, id)
}

func validateScene(s domain.SceneOutput) error {
	var missing []string
	if strings.TrimSpace(s.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(s.ImagePrompt) == "" {
		missing = append(missing, "image_prompt")
	}
	if strings.TrimSpace(s.VideoPrompt) == "" {
		missing = append(missing, "video_prompt")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s required", domain.ErrInvalidInput, strings.Join(missing, ", "))
	}
	return nil
}

var _ domain.CreationRepository = (*CreationRepositoryPG)(nil)
