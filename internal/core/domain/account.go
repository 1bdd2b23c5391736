package domain

import (
	"errors"
	"net/mail"
	"slices"
	"strings"
	"time"
)

// --- ERREURS DU DOMAINE ---
var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrHandleTaken        = errors.New("handle already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrInvalidHandle      = errors.New("handle must be at least 3 characters")
	ErrEmptyField         = errors.New("all fields are required")
	ErrAlreadyFollowing   = errors.New("already following this account")
	ErrNotFollowing       = errors.New("not following this account")
	ErrSelfFollow         = errors.New("cannot follow yourself")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
)

// --- ENTITÉ ---

// Account est l'agrégat racine côté utilisateurs.
// Les trois ensembles (Followers, Following, Bookmarks) contiennent des
// IDs opaques ; l'unicité des membres est garantie par le store
// ($addToSet), jamais par relecture en mémoire.
type Account struct {
	ID             string
	Name           string
	Handle         string
	Email          string
	CredentialHash string // Jamais exposé au client (voir Public())
	Followers      []string
	Following      []string
	Bookmarks      []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PublicAccount est la vue renvoyée aux clients : même forme que
// Account, sans le hash de credentials.
type PublicAccount struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Handle    string    `json:"handle"`
	Email     string    `json:"email"`
	Followers []string  `json:"followers"`
	Following []string  `json:"following"`
	Bookmarks []string  `json:"bookmarks"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// --- FACTORY (CONSTRUCTEUR) ---

// NewAccount crée une instance valide. C'est le SEUL moyen de créer un
// compte proprement (validation des invariants ici).
// L'ID est volontairement laissé vide : il est attribué par le store
// au moment du Save.
func NewAccount(name, handle, email, credentialHash string) (*Account, error) {
	// 1. Champs requis (Fail Fast)
	if strings.TrimSpace(name) == "" || strings.TrimSpace(handle) == "" ||
		strings.TrimSpace(email) == "" || credentialHash == "" {
		return nil, ErrEmptyField
	}

	// 2. Invariants métier
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	if len(strings.TrimSpace(handle)) < 3 {
		return nil, ErrInvalidHandle
	}

	now := time.Now().UTC()
	return &Account{
		Name:           strings.TrimSpace(name),
		Handle:         strings.TrimSpace(handle),
		Email:          strings.ToLower(strings.TrimSpace(email)),
		CredentialHash: credentialHash,
		Followers:      []string{},
		Following:      []string{},
		Bookmarks:      []string{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// --- COMPORTEMENTS ---

// Public projette l'entité vers sa vue exposable (sans credentials).
func (a *Account) Public() PublicAccount {
	return PublicAccount{
		ID:        a.ID,
		Name:      a.Name,
		Handle:    a.Handle,
		Email:     a.Email,
		Followers: slices.Clone(a.Followers),
		Following: slices.Clone(a.Following),
		Bookmarks: slices.Clone(a.Bookmarks),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// IsFollowing vérifie l'appartenance côté acteur (le côté canonique
// de la relation ; le miroir Followers est maintenu par le store).
func (a *Account) IsFollowing(targetID string) bool {
	return slices.Contains(a.Following, targetID)
}

// HasBookmarked vérifie l'appartenance d'un post aux bookmarks.
func (a *Account) HasBookmarked(postID string) bool {
	return slices.Contains(a.Bookmarks, postID)
}
