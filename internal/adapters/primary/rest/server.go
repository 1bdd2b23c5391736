package rest

import (
	"net/http"
	"time"

	"github.com/HamdanRaza309/Social-Media-App-Backend/internal/core/ports"
)

// Server adapte le transport HTTP vers les ports primaires du domaine.
// Le framing (chemins, verbes, cookie) vit ici et seulement ici ; les
// services ne connaissent que des IDs et des commandes.
type Server struct {
	identity     ports.IdentityService
	graph        ports.GraphService
	posts        ports.PostService
	interactions ports.InteractionService
	feeds        ports.FeedService

	cookieName string
	cookieTTL  time.Duration
}

func NewServer(
	identity ports.IdentityService,
	graph ports.GraphService,
	posts ports.PostService,
	interactions ports.InteractionService,
	feeds ports.FeedService,
) *Server {
	return &Server{
		identity:     identity,
		graph:        graph,
		posts:        posts,
		interactions: interactions,
		feeds:        feeds,
		cookieName:   "token",
		cookieTTL:    24 * time.Hour,
	}
}

// Handler construit le routeur. Les routes publiques (register, login,
// logout) passent sans middleware ; tout le reste exige un token.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// --- Identité ---
	mux.HandleFunc("POST /api/v1/user/register", s.handleRegister)
	mux.HandleFunc("POST /api/v1/user/login", s.handleLogin)
	mux.HandleFunc("GET /api/v1/user/logout", s.handleLogout)

	// --- Graphe social ---
	mux.Handle("GET /api/v1/user/profile/{id}", s.authenticated(s.handleProfile))
	mux.Handle("GET /api/v1/user/otherusers", s.authenticated(s.handleOtherUsers))
	mux.Handle("POST /api/v1/user/follow/{id}", s.authenticated(s.handleFollow))
	mux.Handle("POST /api/v1/user/unfollow/{id}", s.authenticated(s.handleUnfollow))
	mux.Handle("PUT /api/v1/user/bookmarks/{id}", s.authenticated(s.handleToggleBookmark))

	// --- Posts & feeds ---
	mux.Handle("POST /api/v1/tweet/create", s.authenticated(s.handleCreatePost))
	mux.Handle("DELETE /api/v1/tweet/delete/{id}", s.authenticated(s.handleDeletePost))
	mux.Handle("PUT /api/v1/tweet/like/{id}", s.authenticated(s.handleToggleLike))
	mux.Handle("GET /api/v1/tweet/tweets", s.authenticated(s.handleHomeFeed))
	mux.Handle("GET /api/v1/tweet/alltweets/{id}", s.authenticated(s.handleOwnPosts))
	mux.Handle("GET /api/v1/tweet/followingtweets", s.authenticated(s.handleFollowingFeed))

	return mux
}
