package domain

import "strings"

// DefaultCharacterName is used in titles and prompts when no character is attached.
const DefaultCharacterName = "anime character"

// CharacterProfile is the read-only view of a character used during generation.
type CharacterProfile struct {
	Name          string `json:"name" validate:"required,max=120"`
	Description   string `json:"description" validate:"max=2000"`
	PortraitImage string `json:"portrait_image,omitempty"`
}

// SceneRequest carries a single generation call.
type SceneRequest struct {
	Idea      string
	Character *CharacterProfile
}

// CharacterName returns the attached character's name or the generic default.
func (r SceneRequest) CharacterName() string {
	if r.Character == nil || strings.TrimSpace(r.Character.Name) == "" {
		return DefaultCharacterName
	}
	return r.Character.Name
}

// CharacterDescription returns the attached character's description, if any.
func (r SceneRequest) CharacterDescription() string {
	if r.Character == nil {
		return ""
	}
	return r.Character.Description
}

// SceneOutput is the structured result of scene-prompt generation.
type SceneOutput struct {
	Title       string `json:"title" validate:"required" jsonschema:"description=A creative short title for the scene"`
	ImagePrompt string `json:"image_prompt" validate:"required" jsonschema:"description=The detailed image description for an AI image generator"`
	VideoPrompt string `json:"video_prompt" validate:"required" jsonschema:"description=The detailed video prompt for an AI image-to-video generator"`
}
