package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/webshunter/animemacker/internal/domain"
	"github.com/webshunter/animemacker/internal/hashtags"
	"github.com/webshunter/animemacker/internal/middleware"
	"github.com/webshunter/animemacker/internal/providers/prompt"
)

type sceneRequest struct {
	Idea        string                   `json:"idea" validate:"required,max=2000"`
	CharacterID string                   `json:"character_id" validate:"omitempty,uuid"`
	UseLatest   bool                     `json:"use_latest"`
	Character   *domain.CharacterProfile `json:"character"`
	Save        bool                     `json:"save"`
}

func (s *sceneRequest) normalize() {
	s.Idea = strings.TrimSpace(s.Idea)
	s.CharacterID = strings.TrimSpace(s.CharacterID)
	if s.Character != nil {
		s.Character.Name = strings.TrimSpace(s.Character.Name)
		if s.Character.Name == "" {
			s.Character = nil
		}
	}
}

type sceneResponse struct {
	prompt.Result
	Hashtags    []string         `json:"hashtags"`
	Description string           `json:"description"`
	Locale      string           `json:"locale,omitempty"`
	Creation    *domain.Creation `json:"creation,omitempty"`
}

// ScenesGenerate asks the configured completer for a scene and falls back to
// the composer when it cannot deliver.
func (a *App) ScenesGenerate(w http.ResponseWriter, r *http.Request) {
	a.scene(w, r, func(ctx context.Context, req domain.SceneRequest) prompt.Result {
		return a.Generator.Generate(ctx, req)
	})
}

// ScenesCompose returns the deterministic composer output only.
func (a *App) ScenesCompose(w http.ResponseWriter, r *http.Request) {
	a.scene(w, r, func(_ context.Context, req domain.SceneRequest) prompt.Result {
		return prompt.Result{Scene: a.Generator.Composer().Compose(req), Provider: "composer"}
	})
}

func (a *App) scene(w http.ResponseWriter, r *http.Request, run func(context.Context, domain.SceneRequest) prompt.Result) {
	var req sceneRequest
	if !a.bind(w, r, &req) {
		return
	}
	profile, characterID, err := a.resolveCharacter(r.Context(), req)
	if err != nil {
		a.fail(w, r, err, "character")
		return
	}
	res := run(r.Context(), domain.SceneRequest{Idea: req.Idea, Character: profile})
	resp := sceneResponse{
		Result:      res,
		Hashtags:    hashtags.Generate(res.Scene, profile),
		Description: hashtags.Description(res.Scene, profile),
		Locale:      middleware.LocaleFromContext(r.Context()),
	}
	if req.Save {
		if a.Creations == nil {
			a.error(w, http.StatusServiceUnavailable, "unavailable", "persistence is not configured")
			return
		}
		created, err := a.Creations.Create(r.Context(), &domain.Creation{
			Title:          res.Scene.Title,
			ImagePrompt:    res.Scene.ImagePrompt,
			VideoPrompt:    res.Scene.VideoPrompt,
			Idea:           req.Idea,
			CharacterID:    characterID,
			Provider:       res.Provider,
			FallbackReason: res.FallbackReason,
		})
		if err != nil {
			a.fail(w, r, err, "creation")
			return
		}
		resp.Creation = created
	}
	a.json(w, http.StatusOK, resp)
}

// resolveCharacter picks the character for a scene: an explicit id, then the
// latest saved character when asked, then an inline profile.
func (a *App) resolveCharacter(ctx context.Context, req sceneRequest) (*domain.CharacterProfile, *string, error) {
	if req.CharacterID != "" || req.UseLatest {
		if a.Characters == nil {
			return req.Character, nil, nil
		}
		var c *domain.Character
		var err error
		if req.CharacterID != "" {
			c, err = a.Characters.Get(ctx, req.CharacterID)
		} else {
			c, err = a.Characters.Latest(ctx)
			if errors.Is(err, domain.ErrNotFound) {
				return req.Character, nil, nil
			}
		}
		if err != nil {
			return nil, nil, err
		}
		id := c.ID
		return c.Profile(a.assetURL(c.PortraitKey)), &id, nil
	}
	return req.Character, nil, nil
}
