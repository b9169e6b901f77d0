package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/webshunter/animemacker/internal/placeholder"
)

type placeholderRequest struct {
	Prompt string `json:"prompt" validate:"max=4000"`
}

func (p *placeholderRequest) normalize() { p.Prompt = strings.TrimSpace(p.Prompt) }

func (a *App) PlaceholderScene(w http.ResponseWriter, r *http.Request) {
	var req placeholderRequest
	if !a.bind(w, r, &req) {
		return
	}
	img := a.sceneImage(req.Prompt)
	a.json(w, http.StatusOK, map[string]any{
		"mime":     img.MIME,
		"data_uri": img.DataURI(),
	})
}

func (a *App) PlaceholderSceneSVG(w http.ResponseWriter, r *http.Request) {
	prompt := strings.TrimSpace(r.URL.Query().Get("prompt"))
	if len(prompt) > 4000 {
		a.error(w, http.StatusBadRequest, "bad_request", "prompt must be at most 4000 characters")
		return
	}
	img := a.sceneImage(prompt)
	w.Header().Set("Content-Type", img.MIME)
	w.Header().Set("Content-Length", strconv.Itoa(len(img.Data)))
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img.Data)
}

// sceneImage renders prompt once per cache lifetime.
func (a *App) sceneImage(prompt string) placeholder.ImageResource {
	key := "scene:" + prompt
	if v, ok := a.placeholders.Get(key); ok {
		return v.(placeholder.ImageResource)
	}
	img := a.Synthesizer.Scene(prompt)
	a.placeholders.SetDefault(key, img)
	return img
}
