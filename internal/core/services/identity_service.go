package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/HamdanRaza309/Social-Media-App-Backend/internal/core/domain"
	"github.com/HamdanRaza309/Social-Media-App-Backend/internal/core/ports"
)

// IdentityService implémente ports.IdentityService (Primary Port).
// Il contient la logique applicative : inscription, login, vérification
// du token de session.
type IdentityService struct {
	accounts      ports.AccountRepository
	hasher        ports.PasswordHasher
	tokenProvider ports.TokenProvider
	broker        ports.EventPublisher
}

// NewIdentityService est le constructeur avec injection de dépendances.
func NewIdentityService(
	accounts ports.AccountRepository,
	hasher ports.PasswordHasher,
	token ports.TokenProvider,
	broker ports.EventPublisher,
) *IdentityService {
	return &IdentityService{
		accounts:      accounts,
		hasher:        hasher,
		tokenProvider: token,
		broker:        broker,
	}
}

func (s *IdentityService) Register(ctx context.Context, cmd ports.RegisterCmd) (*domain.PublicAccount, error) {
	// 1. Champs requis (le mot de passe n'atteint jamais le domaine,
	// on le valide donc ici avant de hacher)
	if strings.TrimSpace(cmd.Password) == "" {
		return nil, domain.ErrEmptyField
	}

	// 2. Fail Fast : unicité de l'email. Vérification "soft" ;
	// l'index unique du store reste la garantie ultime (race condition).
	if existing, err := s.accounts.GetByEmail(ctx, strings.ToLower(cmd.Email)); err == nil && existing != nil {
		return nil, domain.ErrEmailTaken
	}

	// 3. Hachage du mot de passe (jamais de plaintext persisté)
	credentialHash, err := s.hasher.Hash(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing failed: %w", err)
	}

	// 4. Création de l'agrégat (validation des invariants dans NewAccount)
	acc, err := domain.NewAccount(cmd.Name, cmd.Handle, cmd.Email, credentialHash)
	if err != nil {
		return nil, err
	}

	// 5. Persistance (le store attribue l'ID)
	if err := s.accounts.Save(ctx, acc); err != nil {
		return nil, err
	}

	// 6. Side effect : publication asynchrone, best effort.
	_ = s.broker.PublishAccountRegistered(ctx, acc.ID, acc.Email)

	view := acc.Public()
	return &view, nil
}

func (s *IdentityService) Login(ctx context.Context, cmd ports.LoginCmd) (*ports.Session, error) {
	if strings.TrimSpace(cmd.Email) == "" || strings.TrimSpace(cmd.Password) == "" {
		return nil, domain.ErrEmptyField
	}

	// 1. Récupération. Email absent et mot de passe faux produisent la
	// MÊME erreur : ne jamais révéler si l'email existe.
	acc, err := s.accounts.GetByEmail(ctx, strings.ToLower(cmd.Email))
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	// 2. Vérification du mot de passe
	if err := s.hasher.Compare(acc.CredentialHash, cmd.Password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	// 3. Émission du token de session (auto-porté, 24h)
	token, ttl, err := s.tokenProvider.Issue(acc.ID)
	if err != nil {
		return nil, fmt.Errorf("token issue failed: %w", err)
	}

	return &ports.Session{
		AccountID: acc.ID,
		Name:      acc.Name,
		Token:     token,
		ExpiresIn: ttl,
	}, nil
}

// Authenticate est une vérification pure : pas de table de sessions,
// le token porte tout. Un logout ne révoque donc pas un token encore
// valide avant son expiry (limitation assumée).
func (s *IdentityService) Authenticate(ctx context.Context, token string) (string, error) {
	return s.tokenProvider.Validate(token)
}
