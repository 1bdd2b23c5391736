package ports

import (
	"context"
	"time"

	"github.com/HamdanRaza309/Social-Media-App-Backend/internal/core/domain"
)

// --- PERSISTANCE (Document Store) ---

// AccountRepository est un port Driven vers la collection des comptes.
// Les mutations d'ensembles sont des méthodes de première classe : le
// store les exécute atomiquement ($addToSet / $pull), jamais en
// lecture-modification-écriture côté service.
type AccountRepository interface {
	// Save insère le compte et lui attribue son ID.
	// Erreurs : ErrEmailTaken / ErrHandleTaken sur violation d'unicité.
	Save(ctx context.Context, acc *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	ListOthers(ctx context.Context, excludingID string) ([]*domain.Account, error)

	// Follow / Unfollow mutent LES DEUX côtés de la relation
	// (actor.following et target.followers) dans la même transaction.
	// Erreurs : ErrAccountNotFound, ErrAlreadyFollowing / ErrNotFollowing.
	Follow(ctx context.Context, actorID, targetID string) error
	Unfollow(ctx context.Context, actorID, targetID string) error

	// ToggleBookmark flippe l'appartenance de postID dans les bookmarks
	// du compte, en un seul update atomique. Retourne true si le post
	// vient d'être ajouté, false s'il vient d'être retiré.
	ToggleBookmark(ctx context.Context, accountID, postID string) (added bool, err error)

	// BookmarkerIDs est la vue dérivée côté post : les IDs des comptes
	// dont les bookmarks contiennent postID.
	BookmarkerIDs(ctx context.Context, postID string) ([]string, error)
}

// PostRepository est le port Driven vers la collection des posts.
type PostRepository interface {
	Save(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id string) (*domain.Post, error)
	Delete(ctx context.Context, id string) error
	ListByAuthor(ctx context.Context, authorID string) ([]*domain.Post, error)

	// ListByAuthors sert le Feed Composer : une seule requête
	// d'appartenance plutôt qu'un aller-retour par compte suivi.
	ListByAuthors(ctx context.Context, authorIDs []string) ([]*domain.Post, error)

	// ToggleLike flippe l'appartenance de accountID dans post.likes,
	// atomiquement. Retourne true si le like vient d'être ajouté.
	ToggleLike(ctx context.Context, postID, accountID string) (added bool, err error)
}

// --- SÉCURITÉ (CRYPTO) ---

// PasswordHasher abstrait l'algorithme de hachage (Argon2, Bcrypt).
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenProvider abstrait la génération/vérification du token de session.
type TokenProvider interface {
	Issue(accountID string) (token string, ttl time.Duration, err error)
	// Validate retourne l'AccountID porté par le token.
	// Erreurs : domain.ErrTokenExpired, domain.ErrInvalidToken.
	Validate(token string) (accountID string, err error)
}

// --- MESSAGERIE (BROKER) ---

// EventPublisher notifie les consommateurs aval (notifications, etc.).
// Best effort : un échec de publication ne fait jamais échouer la
// requête utilisateur.
type EventPublisher interface {
	PublishAccountRegistered(ctx context.Context, accountID, email string) error
	PublishPostCreated(ctx context.Context, post *domain.Post) error
	PublishPostDeleted(ctx context.Context, postID string) error
	PublishFollowChanged(ctx context.Context, actorID, targetID string, following bool) error
}
