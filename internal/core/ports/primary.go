package ports

import (
	"context"
	"time"

	"github.com/HamdanRaza309/Social-Media-App-Backend/internal/core/domain"
)

// --- INPUTS (Command Pattern) ---
// Des structs plutôt que des listes d'arguments : on peut ajouter des
// champs optionnels plus tard sans casser la signature.

type RegisterCmd struct {
	Name     string
	Handle   string
	Email    string
	Password string
}

type LoginCmd struct {
	Email    string
	Password string
}

// --- OUTPUTS ---

// Session est le résultat d'un login réussi : le token signé que le
// client conservera (cookie httpOnly côté transport).
type Session struct {
	AccountID string
	Name      string
	Token     string
	ExpiresIn time.Duration
}

// ToggleOutcome décrit le résultat d'un flip d'appartenance.
type ToggleOutcome string

const (
	OutcomeLiked        ToggleOutcome = "liked"
	OutcomeDisliked     ToggleOutcome = "disliked"
	OutcomeBookmarked   ToggleOutcome = "bookmarked"
	OutcomeUnbookmarked ToggleOutcome = "unbookmarked"
)

// PostView est un post hydraté de sa vue dérivée : les comptes qui
// l'ont mis en bookmark (calculés par requête, jamais stockés).
type PostView struct {
	Post         *domain.Post
	BookmarkedBy []string
}

// --- PORTS PRIMAIRES (Driving) ---
// L'API que l'hexagone expose au monde extérieur (REST, CLI, tests).

type IdentityService interface {
	Register(ctx context.Context, cmd RegisterCmd) (*domain.PublicAccount, error)
	Login(ctx context.Context, cmd LoginCmd) (*Session, error)

	// Authenticate vérifie un token et retourne l'ID du compte.
	// Vérification pure : aucun état côté serveur.
	Authenticate(ctx context.Context, token string) (string, error)
}

type GraphService interface {
	Follow(ctx context.Context, actorID, targetID string) error
	Unfollow(ctx context.Context, actorID, targetID string) error
	Profile(ctx context.Context, accountID string) (*domain.PublicAccount, error)

	// ListOthers renvoie tous les comptes sauf l'acteur.
	// Résultat vide = ErrAccountNotFound (contrat historique du client).
	ListOthers(ctx context.Context, actorID string) ([]domain.PublicAccount, error)
}

type PostService interface {
	Create(ctx context.Context, authorID, text string) (*domain.Post, error)
	Delete(ctx context.Context, actorID, postID string) error
	Get(ctx context.Context, postID string) (*PostView, error)
}

type InteractionService interface {
	ToggleLike(ctx context.Context, actorID, postID string) (ToggleOutcome, error)
	ToggleBookmark(ctx context.Context, actorID, postID string) (ToggleOutcome, error)
}

type FeedService interface {
	// OwnFeed : les posts écrits par le compte lui-même.
	OwnFeed(ctx context.Context, accountID string) ([]*domain.Post, error)

	// HomeFeed : OwnFeed ++ posts des comptes suivis. Pas de merge
	// chronologique : propres posts d'abord, puis ceux des suivis,
	// chaque groupe dans l'ordre de retour du store.
	HomeFeed(ctx context.Context, actorID string) ([]*domain.Post, error)

	// FollowingFeed : uniquement la partie "comptes suivis" du HomeFeed.
	FollowingFeed(ctx context.Context, actorID string) ([]*domain.Post, error)
}
