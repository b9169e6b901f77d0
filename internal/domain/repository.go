package domain

import "context"

// CharacterRepository defines persistence for characters.
type CharacterRepository interface {
	Create(ctx context.Context, c *Character) (*Character, error)
	Update(ctx context.Context, c *Character) (*Character, error)
	Get(ctx context.Context, id string) (*Character, error)
	Latest(ctx context.Context) (*Character, error)
	List(ctx context.Context, limit int) ([]Character, error)
	Delete(ctx context.Context, id string) error
	SetPortrait(ctx context.Context, id, key string) error
	// UpsertLatest updates the newest character in place, or creates one when
	// none exist.
	UpsertLatest(ctx context.Context, c *Character) (*Character, error)
}

// CreationRepository defines persistence for saved scenes.
type CreationRepository interface {
	Create(ctx context.Context, c *Creation) (*Creation, error)
	Get(ctx context.Context, id string) (*Creation, error)
	List(ctx context.Context, limit int) ([]Creation, error)
	Update(ctx context.Context, id string, scene SceneOutput) (*Creation, error)
	SetImage(ctx context.Context, id, key string) error
	Delete(ctx context.Context, id string) error
}
