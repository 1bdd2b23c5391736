package domain

import (
	"errors"
	"slices"
	"strings"
	"time"
)

var (
	ErrPostNotFound  = errors.New("post not found")
	ErrEmptyText     = errors.New("post text cannot be empty")
	ErrNotPostAuthor = errors.New("only the author can delete this post")
)

// Post ("tweet") : un texte court, un auteur immuable, un ensemble de
// likes. Les bookmarks ne sont PAS stockés ici : l'emplacement
// canonique est Account.Bookmarks, la vue côté post est dérivée par
// requête d'appartenance (voir ports.AccountRepository.BookmarkerIDs).
type Post struct {
	ID        string
	AuthorID  string
	Text      string
	Likes     []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewPost valide et construit un post. L'ID est attribué par le store.
func NewPost(authorID, text string) (*Post, error) {
	if authorID == "" {
		return nil, ErrAccountNotFound
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	now := time.Now().UTC()
	return &Post{
		AuthorID:  authorID,
		Text:      text,
		Likes:     []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// IsLikedBy vérifie l'appartenance d'un compte aux likes.
func (p *Post) IsLikedBy(accountID string) bool {
	return slices.Contains(p.Likes, accountID)
}
