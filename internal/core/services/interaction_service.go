package services

import (
	"context"

	"github.com/HamdanRaza309/Social-Media-App-Backend/internal/core/ports"
)

// InteractionService généralise les deux instances du même motif : un
// flip d'appartenance de l'acteur dans un ensemble cible (likes côté
// post, bookmarks côté compte). Le flip lui-même est délégué au store
// en un seul update atomique — jamais de lecture-décision-écriture ici,
// deux toggles concurrents ne peuvent donc pas se perdre.
type InteractionService struct {
	posts    ports.PostRepository
	accounts ports.AccountRepository
}

func NewInteractionService(posts ports.PostRepository, accounts ports.AccountRepository) *InteractionService {
	return &InteractionService{posts: posts, accounts: accounts}
}

func (s *InteractionService) ToggleLike(ctx context.Context, actorID, postID string) (ports.ToggleOutcome, error) {
	added, err := s.posts.ToggleLike(ctx, postID, actorID)
	if err != nil {
		return "", err
	}
	if added {
		return ports.OutcomeLiked, nil
	}
	return ports.OutcomeDisliked, nil
}

func (s *InteractionService) ToggleBookmark(ctx context.Context, actorID, postID string) (ports.ToggleOutcome, error) {
	// L'ensemble canonique vit sur le compte, mais l'opération porte
	// sur un post : on vérifie d'abord qu'il existe (ErrPostNotFound).
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return "", err
	}

	added, err := s.accounts.ToggleBookmark(ctx, actorID, postID)
	if err != nil {
		return "", err
	}
	if added {
		return ports.OutcomeBookmarked, nil
	}
	return ports.OutcomeUnbookmarked, nil
}
