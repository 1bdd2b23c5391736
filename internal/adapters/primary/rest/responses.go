package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/HamdanRaza309/Social-Media-App-Backend/internal/core/domain"
)

// envelope est la forme de TOUTES les réponses : {message, success,
// ...payload}. Contrat historique des clients, on n'y touche pas.
type envelope map[string]any

func respond(w http.ResponseWriter, status int, payload envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("rest: encode response", "error", err)
	}
}

// respondError traduit une erreur du domaine en statut HTTP + message.
// Rien ne remonte en fault non géré : tout inconnu devient un 500
// générique (sans fuiter le détail technique au client).
func respondError(w http.ResponseWriter, err error) {
	status, message := mapDomainError(err)
	if status == http.StatusInternalServerError {
		slog.Error("rest: unexpected error", "error", err)
	}
	respond(w, status, envelope{"message": message, "success": false})
}

func mapDomainError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrEmptyField),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrInvalidHandle),
		errors.Is(err, domain.ErrEmptyText),
		errors.Is(err, domain.ErrSelfFollow):
		return http.StatusBadRequest, err.Error()

	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Please enter correct credentials."

	case errors.Is(err, domain.ErrNotPostAuthor):
		return http.StatusForbidden, err.Error()

	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrPostNotFound):
		return http.StatusNotFound, err.Error()

	case errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrHandleTaken),
		errors.Is(err, domain.ErrAlreadyFollowing),
		errors.Is(err, domain.ErrNotFollowing):
		return http.StatusConflict, err.Error()

	default:
		return http.StatusInternalServerError, "Server error. Please try again later."
	}
}

// --- PAYLOADS ---

type postPayload struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"authorId"`
	Text      string    `json:"text"`
	Likes     []string  `json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toPostPayload(p *domain.Post) postPayload {
	return postPayload{
		ID:        p.ID,
		AuthorID:  p.AuthorID,
		Text:      p.Text,
		Likes:     p.Likes,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toPostPayloads(posts []*domain.Post) []postPayload {
	out := make([]postPayload, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostPayload(p))
	}
	return out
}
