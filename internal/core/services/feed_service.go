package services

import (
	"context"
	"log/slog"

	"github.com/HamdanRaza309/Social-Media-App-Backend/internal/core/domain"
	"github.com/HamdanRaza309/Social-Media-App-Backend/internal/core/ports"
)

// FeedService compose les timelines au moment de la lecture : pas de
// fan-out à l'écriture, pas de cache — le store est la seule source.
type FeedService struct {
	posts    ports.PostRepository
	accounts ports.AccountRepository
}

func NewFeedService(posts ports.PostRepository, accounts ports.AccountRepository) *FeedService {
	return &FeedService{posts: posts, accounts: accounts}
}

func (s *FeedService) OwnFeed(ctx context.Context, accountID string) ([]*domain.Post, error) {
	// Le compte doit exister.
	if _, err := s.accounts.GetByID(ctx, accountID); err != nil {
		return nil, err
	}
	return s.posts.ListByAuthor(ctx, accountID)
}

// HomeFeed : propres posts d'abord, puis ceux des comptes suivis.
// Chaque groupe garde l'ordre de retour du store ; aucun merge
// chronologique (limitation documentée, conservée pour compatibilité).
func (s *FeedService) HomeFeed(ctx context.Context, actorID string) ([]*domain.Post, error) {
	acc, err := s.accounts.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	own, err := s.posts.ListByAuthor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	followed, err := s.followedPosts(ctx, acc)
	if err != nil {
		return nil, err
	}

	return append(own, followed...), nil
}

func (s *FeedService) FollowingFeed(ctx context.Context, actorID string) ([]*domain.Post, error) {
	acc, err := s.accounts.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	return s.followedPosts(ctx, acc)
}

// followedPosts récupère les posts de tous les comptes suivis via une
// seule requête d'appartenance (pas un aller-retour par compte).
func (s *FeedService) followedPosts(ctx context.Context, acc *domain.Account) ([]*domain.Post, error) {
	if len(acc.Following) == 0 {
		return []*domain.Post{}, nil
	}

	posts, err := s.posts.ListByAuthors(ctx, acc.Following)
	if err != nil {
		slog.Error("feed: followed posts lookup failed", "account_id", acc.ID, "error", err)
		return nil, err
	}
	return posts, nil
}
