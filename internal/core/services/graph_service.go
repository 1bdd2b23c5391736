package services

import (
	"context"

	"github.com/HamdanRaza309/Social-Media-App-Backend/internal/core/domain"
	"github.com/HamdanRaza309/Social-Media-App-Backend/internal/core/ports"
)

// GraphService gère la relation de suivi entre comptes.
// Les deux côtés de la relation (actor.following / target.followers)
// sont mutés par le repository dans la même unité logique.
type GraphService struct {
	accounts ports.AccountRepository
	broker   ports.EventPublisher
}

func NewGraphService(accounts ports.AccountRepository, broker ports.EventPublisher) *GraphService {
	return &GraphService{accounts: accounts, broker: broker}
}

func (s *GraphService) Follow(ctx context.Context, actorID, targetID string) error {
	if actorID == "" || targetID == "" {
		return domain.ErrAccountNotFound
	}
	if actorID == targetID {
		return domain.ErrSelfFollow
	}

	// Le repository porte le garde d'idempotence ($ne sur l'ensemble) :
	// un double follow renvoie ErrAlreadyFollowing, jamais un doublon.
	if err := s.accounts.Follow(ctx, actorID, targetID); err != nil {
		return err
	}

	_ = s.broker.PublishFollowChanged(ctx, actorID, targetID, true)
	return nil
}

func (s *GraphService) Unfollow(ctx context.Context, actorID, targetID string) error {
	if actorID == "" || targetID == "" {
		return domain.ErrAccountNotFound
	}
	if actorID == targetID {
		return domain.ErrSelfFollow
	}

	if err := s.accounts.Unfollow(ctx, actorID, targetID); err != nil {
		return err
	}

	_ = s.broker.PublishFollowChanged(ctx, actorID, targetID, false)
	return nil
}

func (s *GraphService) Profile(ctx context.Context, accountID string) (*domain.PublicAccount, error) {
	acc, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	view := acc.Public()
	return &view, nil
}

// ListOthers renvoie tous les comptes sauf l'acteur, credentials
// exclus. Un résultat vide est traité comme ErrAccountNotFound :
// c'est le contrat historique du client, pas une erreur interne.
func (s *GraphService) ListOthers(ctx context.Context, actorID string) ([]domain.PublicAccount, error) {
	others, err := s.accounts.ListOthers(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if len(others) == 0 {
		return nil, domain.ErrAccountNotFound
	}

	views := make([]domain.PublicAccount, 0, len(others))
	for _, acc := range others {
		views = append(views, acc.Public())
	}
	return views, nil
}
