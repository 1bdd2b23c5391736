package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type createPostRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	actorID, err := actorFrom(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	var req createPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, envelope{"message": "Invalid request body.", "success": false})
		return
	}

	post, err := s.posts.Create(r.Context(), actorID, req.Text)
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusCreated, envelope{
		"message": "Tweet created successfully.",
		"success": true,
		"tweet":   toPostPayload(post),
	})
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	actorID, err := actorFrom(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	if err := s.posts.Delete(r.Context(), actorID, r.PathValue("id")); err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, envelope{"message": "Tweet deleted successfully.", "success": true})
}

func (s *Server) handleToggleLike(w http.ResponseWriter, r *http.Request) {
	actorID, err := actorFrom(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	outcome, err := s.interactions.ToggleLike(r.Context(), actorID, r.PathValue("id"))
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

// handleHomeFeed : propres posts + posts des comptes suivis.
func (s *Server) handleHomeFeed(w http.ResponseWriter, r *http.Request) {
	actorID, err := actorFrom(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	posts, err := s.feeds.HomeFeed(r.Context(), actorID)
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, envelope{
		"message": "Tweets fetched successfully.",
		"success": true,
		"tweets":  toPostPayloads(posts),
	})
}

// handleOwnPosts : les posts d'un compte donné (pas forcément l'acteur).
func (s *Server) handleOwnPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.feeds.OwnFeed(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, envelope{
		"message": "Tweets fetched successfully.",
		"success": true,
		"tweets":  toPostPayloads(posts),
	})
}

func (s *Server) handleFollowingFeed(w http.ResponseWriter, r *http.Request) {
	actorID, err := actorFrom(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	posts, err := s.feeds.FollowingFeed(r.Context(), actorID)
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, envelope{
		"message": "Tweets fetched successfully.",
		"success": true,
		"tweets":  toPostPayloads(posts),
	})
}
