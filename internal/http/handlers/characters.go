package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/webshunter/animemacker/internal/domain"
	"github.com/webshunter/animemacker/internal/placeholder"
)

type characterRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description" validate:"max=2000"`
	Appearance  string `json:"appearance" validate:"max=2000"`
	Personality string `json:"personality" validate:"max=500"`
}

func (c *characterRequest) normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Description = strings.TrimSpace(c.Description)
	c.Appearance = strings.TrimSpace(c.Appearance)
	c.Personality = strings.TrimSpace(c.Personality)
}

func (c characterRequest) character(id string) *domain.Character {
	return &domain.Character{
		ID:          id,
		Name:        c.Name,
		Description: c.Description,
		Appearance:  c.Appearance,
		Personality: c.Personality,
	}
}

type characterView struct {
	*domain.Character
	PortraitURL string `json:"portrait_url,omitempty"`
}

func (a *App) characterView(c *domain.Character) characterView {
	return characterView{Character: c, PortraitURL: a.assetURL(c.PortraitKey)}
}

// CharacterLatest returns the active character, the most recently created one.
func (a *App) CharacterLatest(w http.ResponseWriter, r *http.Request) {
	c, err := a.Characters.Latest(r.Context())
	if err != nil {
		a.fail(w, r, err, "character")
		return
	}
	a.json(w, http.StatusOK, a.characterView(c))
}

// CharacterSave updates the active character in place or creates the first one.
func (a *App) CharacterSave(w http.ResponseWriter, r *http.Request) {
	var req characterRequest
	if !a.bind(w, r, &req) {
		return
	}
	c, err := a.Characters.UpsertLatest(r.Context(), req.character(""))
	if err != nil {
		a.fail(w, r, err, "character")
		return
	}
	a.json(w, http.StatusOK, a.characterView(c))
}

func (a *App) CharacterClear(w http.ResponseWriter, r *http.Request) {
	c, err := a.Characters.Latest(r.Context())
	if err != nil {
		a.fail(w, r, err, "character")
		return
	}
	a.deleteCharacter(w, r, c)
}

func (a *App) CharactersList(w http.ResponseWriter, r *http.Request) {
	list, err := a.Characters.List(r.Context(), queryLimit(r))
	if err != nil {
		a.fail(w, r, err, "characters")
		return
	}
	items := make([]characterView, 0, len(list))
	for i := range list {
		items = append(items, a.characterView(&list[i]))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func (a *App) CharactersCreate(w http.ResponseWriter, r *http.Request) {
	var req characterRequest
	if !a.bind(w, r, &req) {
		return
	}
	c, err := a.Characters.Create(r.Context(), req.character(""))
	if err != nil {
		a.fail(w, r, err, "character")
		return
	}
	a.json(w, http.StatusCreated, a.characterView(c))
}

func (a *App) CharacterGet(w http.ResponseWriter, r *http.Request) {
	c, err := a.Characters.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err, "character")
		return
	}
	a.json(w, http.StatusOK, a.characterView(c))
}

func (a *App) CharacterUpdate(w http.ResponseWriter, r *http.Request) {
	var req characterRequest
	if !a.bind(w, r, &req) {
		return
	}
	c, err := a.Characters.Update(r.Context(), req.character(chi.URLParam(r, "id")))
	if err != nil {
		a.fail(w, r, err, "character")
		return
	}
	a.json(w, http.StatusOK, a.characterView(c))
}

func (a *App) CharacterDelete(w http.ResponseWriter, r *http.Request) {
	c, err := a.Characters.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err, "character")
		return
	}
	a.deleteCharacter(w, r, c)
}

func (a *App) deleteCharacter(w http.ResponseWriter, r *http.Request, c *domain.Character) {
	if err := a.Characters.Delete(r.Context(), c.ID); err != nil {
		a.fail(w, r, err, "character")
		return
	}
	if c.PortraitKey != nil && a.Store != nil {
		if err := a.Store.Delete(r.Context(), *c.PortraitKey); err != nil {
			a.Logger.Warn().Err(err).Str("key", *c.PortraitKey).Msg("http: portrait cleanup failed")
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// CharacterPortrait stores an uploaded portrait, or renders one from the
// character description when the request carries no file.
func (a *App) CharacterPortrait(w http.ResponseWriter, r *http.Request) {
	c, err := a.Characters.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err, "character")
		return
	}
	img, ok := a.imageFromRequest(w, r, func() placeholder.ImageResource {
		return placeholder.Portrait(strings.TrimSpace(c.Description + " " + c.Appearance))
	})
	if !ok {
		return
	}
	key, err := a.storeImage(r, "characters/"+c.ID+"/portrait", img)
	if err != nil {
		a.fail(w, r, err, "portrait")
		return
	}
	if err := a.Characters.SetPortrait(r.Context(), c.ID, key); err != nil {
		a.fail(w, r, err, "character")
		return
	}
	c.PortraitKey = &key
	a.json(w, http.StatusOK, a.characterView(c))
}
