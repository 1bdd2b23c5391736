package services

import (
	"context"

	"github.com/HamdanRaza309/Social-Media-App-Backend/internal/core/domain"
	"github.com/HamdanRaza309/Social-Media-App-Backend/internal/core/ports"
)

// PostService gère le cycle de vie des posts : création et suppression
// (réservée à l'auteur).
type PostService struct {
	posts     ports.PostRepository
	accounts  ports.AccountRepository
	publisher ports.EventPublisher
}

func NewPostService(posts ports.PostRepository, accounts ports.AccountRepository, pub ports.EventPublisher) *PostService {
	return &PostService{posts: posts, accounts: accounts, publisher: pub}
}

func (s *PostService) Create(ctx context.Context, authorID, text string) (*domain.Post, error) {
	post, err := domain.NewPost(authorID, text)
	if err != nil {
		return nil, err
	}

	// 1. Sauvegarde (Source of Truth, le store attribue l'ID)
	if err := s.posts.Save(ctx, post); err != nil {
		return nil, err
	}

	// 2. Publication événement, best effort : la donnée est sauvée,
	// on ne fait pas échouer la requête si le broker est lent/down.
	_ = s.publisher.PublishPostCreated(ctx, post)

	return post, nil
}

func (s *PostService) Delete(ctx context.Context, actorID, postID string) error {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	// Seul l'auteur peut supprimer.
	if post.AuthorID != actorID {
		return domain.ErrNotPostAuthor
	}

	if err := s.posts.Delete(ctx, postID); err != nil {
		return err
	}

	// Les IDs orphelins restent dans les bookmarks des autres comptes :
	// pas de cascade (comportement assumé, voir DESIGN.md).
	_ = s.publisher.PublishPostDeleted(ctx, postID)
	return nil
}

// Get hydrate le post de sa vue dérivée : les comptes qui l'ont mis en
// bookmark, calculés par requête d'appartenance côté comptes.
func (s *PostService) Get(ctx context.Context, postID string) (*ports.PostView, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	bookmarkers, err := s.accounts.BookmarkerIDs(ctx, postID)
	if err != nil {
		return nil, err
	}

	return &ports.PostView{Post: post, BookmarkedBy: bookmarkers}, nil
}
