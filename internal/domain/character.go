package domain

import "time"

// Character is a persisted character definition.
type Character struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Appearance  string    `json:"appearance" db:"appearance"`
	Personality string    `json:"personality" db:"personality"`
	PortraitKey *string   `json:"portrait_key,omitempty" db:"portrait_key"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Profile converts the character into the generation profile. portraitURL is
// attached as-is when non-empty.
func (c *Character) Profile(portraitURL string) *CharacterProfile {
	if c == nil {
		return nil
	}
	return &CharacterProfile{
		Name:          c.Name,
		Description:   c.Description,
		PortraitImage: portraitURL,
	}
}
