package handlers

import (
	"net/http"
	"strings"

	"github.com/webshunter/animemacker/internal/domain"
	"github.com/webshunter/animemacker/internal/hashtags"
)

type hashtagsRequest struct {
	Scene     domain.SceneOutput       `json:"scene"`
	Character *domain.CharacterProfile `json:"character"`
}

func (h *hashtagsRequest) normalize() {
	if h.Character != nil && strings.TrimSpace(h.Character.Name) == "" {
		h.Character = nil
	}
}

func (a *App) Hashtags(w http.ResponseWriter, r *http.Request) {
	var req hashtagsRequest
	if !a.bind(w, r, &req) {
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"hashtags":    hashtags.Generate(req.Scene, req.Character),
		"description": hashtags.Description(req.Scene, req.Character),
	})
}
