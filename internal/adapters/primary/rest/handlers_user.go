package rest

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/HamdanRaza309/Social-Media-App-Backend/internal/core/ports"
)

type registerRequest struct {
	Name     string `json:"name"`
	Handle   string `json:"handle"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, envelope{"message": "Invalid request body.", "success": false})
		return
	}

	view, err := s.identity.Register(r.Context(), ports.RegisterCmd{
		Name:     req.Name,
		Handle:   req.Handle,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusCreated, envelope{
		"message": "Account created successfully.",
		"success": true,
		"user":    view,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, envelope{"message": "Invalid request body.", "success": false})
		return
	}

	session, err := s.identity.Login(r.Context(), ports.LoginCmd{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	// Le token part dans un cookie httpOnly : jamais accessible au JS
	// du client, renvoyé automatiquement sur chaque requête.
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    session.Token,
		Path:     "/",
		MaxAge:   int(session.ExpiresIn.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	respond(w, http.StatusOK, envelope{
		"message": fmt.Sprintf("Welcome back %s", session.Name),
		"success": true,
	})
}

// handleLogout invalide côté client : le token reste techniquement
// valide jusqu'à son expiry (pas de liste de révocation, assumé).
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	respond(w, http.StatusOK, envelope{
		"message": "User logged out successfully.",
		"success": true,
	})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	view, err := s.graph.Profile(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, envelope{
		"message": "Profile fetched successfully.",
		"success": true,
		"user":    view,
	})
}

func (s *Server) handleOtherUsers(w http.ResponseWriter, r *http.Request) {
	actorID, err := actorFrom(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	others, err := s.graph.ListOthers(r.Context(), actorID)
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, envelope{
		"message": "Other users fetched successfully.",
		"success": true,
		"users":   others,
	})
}

func (s *Server) handleFollow(w http.ResponseWriter, r *http.Request) {
	actorID, err := actorFrom(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	if err := s.graph.Follow(r.Context(), actorID, r.PathValue("id")); err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, envelope{"message": "Followed successfully.", "success": true})
}

func (s *Server) handleUnfollow(w http.ResponseWriter, r *http.Request) {
	actorID, err := actorFrom(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	if err := s.graph.Unfollow(r.Context(), actorID, r.PathValue("id")); err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, envelope{"message": "Unfollowed successfully.", "success": true})
}

func (s *Server) handleToggleBookmark(w http.ResponseWriter, r *http.Request) {
	actorID, err := actorFrom(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	outcome, err := s.interactions.ToggleBookmark(r.Context(), actorID, r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, envelope{
		"message": fmt.Sprintf("Post %s.", outcome),
		"success": true,
		"status":  outcome,
	})
}
