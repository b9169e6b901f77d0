package domain

import "time"

// Creation is a saved scene output together with its provenance.
type Creation struct {
	ID             string    `json:"id" db:"id"`
	Title          string    `json:"title" db:"title"`
	ImagePrompt    string    `json:"image_prompt" db:"image_prompt"`
	VideoPrompt    string    `json:"video_prompt" db:"video_prompt"`
	Idea           string    `json:"idea" db:"idea"`
	CharacterID    *string   `json:"character_id,omitempty" db:"character_id"`
	ImageKey       *string   `json:"image_key,omitempty" db:"image_key"`
	Provider       string    `json:"provider" db:"provider"`
	FallbackReason string    `json:"fallback_reason,omitempty" db:"fallback_reason"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// Scene returns the three prompt fields of the creation.
func (c Creation) Scene() SceneOutput {
	return SceneOutput{Title: c.Title, ImagePrompt: c.ImagePrompt, VideoPrompt: c.VideoPrompt}
}
