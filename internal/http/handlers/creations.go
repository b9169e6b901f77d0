package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/webshunter/animemacker/internal/domain"
	"github.com/webshunter/animemacker/internal/placeholder"
	"github.com/webshunter/animemacker/internal/storage"
	"github.com/webshunter/animemacker/pkg/zip"
)

const exportLimit = 200

type creationRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	ImagePrompt string `json:"image_prompt" validate:"required"`
	VideoPrompt string `json:"video_prompt" validate:"required"`
	Idea        string `json:"idea" validate:"max=2000"`
	CharacterID string `json:"character_id" validate:"omitempty,uuid"`
	Provider    string `json:"provider" validate:"max=40"`
}

func (c *creationRequest) normalize() {
	c.Title = strings.TrimSpace(c.Title)
	c.ImagePrompt = strings.TrimSpace(c.ImagePrompt)
	c.VideoPrompt = strings.TrimSpace(c.VideoPrompt)
	c.Idea = strings.TrimSpace(c.Idea)
	c.CharacterID = strings.TrimSpace(c.CharacterID)
	c.Provider = strings.TrimSpace(c.Provider)
	if c.Provider == "" {
		c.Provider = "manual"
	}
}

type sceneUpdateRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	ImagePrompt string `json:"image_prompt" validate:"required"`
	VideoPrompt string `json:"video_prompt" validate:"required"`
}

func (s *sceneUpdateRequest) normalize() {
	s.Title = strings.TrimSpace(s.Title)
	s.ImagePrompt = strings.TrimSpace(s.ImagePrompt)
	s.VideoPrompt = strings.TrimSpace(s.VideoPrompt)
}

type creationView struct {
	*domain.Creation
	ImageURL string `json:"image_url,omitempty"`
}

func (a *App) creationView(c *domain.Creation) creationView {
	return creationView{Creation: c, ImageURL: a.assetURL(c.ImageKey)}
}

func (a *App) CreationsList(w http.ResponseWriter, r *http.Request) {
	list, err := a.Creations.List(r.Context(), queryLimit(r))
	if err != nil {
		a.fail(w, r, err, "creations")
		return
	}
	items := make([]creationView, 0, len(list))
	for i := range list {
		items = append(items, a.creationView(&list[i]))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func (a *App) CreationsCreate(w http.ResponseWriter, r *http.Request) {
	var req creationRequest
	if !a.bind(w, r, &req) {
		return
	}
	c := &domain.Creation{
		Title:       req.Title,
		ImagePrompt: req.ImagePrompt,
		VideoPrompt: req.VideoPrompt,
		Idea:        req.Idea,
		Provider:    req.Provider,
	}
	if req.CharacterID != "" {
		c.CharacterID = &req.CharacterID
	}
	created, err := a.Creations.Create(r.Context(), c)
	if err != nil {
		a.fail(w, r, err, "creation")
		return
	}
	a.json(w, http.StatusCreated, a.creationView(created))
}

func (a *App) CreationGet(w http.ResponseWriter, r *http.Request) {
	c, err := a.Creations.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err, "creation")
		return
	}
	a.json(w, http.StatusOK, a.creationView(c))
}

func (a *App) CreationUpdate(w http.ResponseWriter, r *http.Request) {
	var req sceneUpdateRequest
	if !a.bind(w, r, &req) {
		return
	}
	c, err := a.Creations.Update(r.Context(), chi.URLParam(r, "id"), domain.SceneOutput{
		Title:       req.Title,
		ImagePrompt: req.ImagePrompt,
		VideoPrompt: req.VideoPrompt,
	})
	if err != nil {
		a.fail(w, r, err, "creation")
		return
	}
	a.json(w, http.StatusOK, a.creationView(c))
}

func (a *App) CreationDelete(w http.ResponseWriter, r *http.Request) {
	c, err := a.Creations.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err, "creation")
		return
	}
	if err := a.Creations.Delete(r.Context(), c.ID); err != nil {
		a.fail(w, r, err, "creation")
		return
	}
	if c.ImageKey != nil && a.Store != nil {
		if err := a.Store.Delete(r.Context(), *c.ImageKey); err != nil {
			a.Logger.Warn().Err(err).Str("key", *c.ImageKey).Msg("http: image cleanup failed")
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreationImage stores an uploaded image for the creation, or the scene
// placeholder rendered from its image prompt.
func (a *App) CreationImage(w http.ResponseWriter, r *http.Request) {
	c, err := a.Creations.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err, "creation")
		return
	}
	img, ok := a.imageFromRequest(w, r, func() placeholder.ImageResource {
		return a.sceneImage(c.ImagePrompt)
	})
	if !ok {
		return
	}
	key, err := a.storeImage(r, "creations/"+c.ID, img)
	if err != nil {
		a.fail(w, r, err, "image")
		return
	}
	if err := a.Creations.SetImage(r.Context(), c.ID, key); err != nil {
		a.fail(w, r, err, "creation")
		return
	}
	c.ImageKey = &key
	a.json(w, http.StatusOK, a.creationView(c))
}

// CreationsExport streams a zip with creations.json and every stored image.
func (a *App) CreationsExport(w http.ResponseWriter, r *http.Request) {
	list, err := a.Creations.List(r.Context(), exportLimit)
	if err != nil {
		a.fail(w, r, err, "creations")
		return
	}
	manifest, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		a.fail(w, r, err, "creations")
		return
	}
	now := time.Now().UTC()
	assets := []zip.Asset{{Filename: "creations.json", MIME: "application/json", Data: manifest, Modified: now}}
	for _, c := range list {
		if c.ImageKey == nil || a.Store == nil {
			continue
		}
		data, err := a.Store.Read(r.Context(), *c.ImageKey)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			a.fail(w, r, err, "creations")
			return
		}
		mimeType, _, _ := storage.DetectImage(data)
		assets = append(assets, zip.Asset{
			Filename: "images/" + path.Base(*c.ImageKey),
			MIME:     mimeType,
			Data:     data,
			Modified: c.UpdatedAt,
		})
	}
	archive, err := zip.ArchiveAssets(assets)
	if err != nil {
		a.fail(w, r, err, "export")
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=creations-%s.zip", now.Format("20060102-150405")))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive)
}
