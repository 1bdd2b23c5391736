package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/HamdanRaza309/Social-Media-App-Backend/internal/core/domain"
)

// Fakes en mémoire implémentant les ports secondaires. Ils reproduisent
// la sémantique du store (flips atomiques sous mutex, relation de suivi
// symétrique, gardes d'idempotence) pour tester les services sans Mongo.

type fakeAccountRepo struct {
	mu       sync.Mutex
	seq      int
	accounts map[string]*domain.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: map[string]*domain.Account{}}
}

func (f *fakeAccountRepo) Save(_ context.Context, acc *domain.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, other := range f.accounts {
		if other.Email == acc.Email {
			return domain.ErrEmailTaken
		}
		if other.Handle == acc.Handle {
			return domain.ErrHandleTaken
		}
	}
	f.seq++
	acc.ID = fmt.Sprintf("acc-%d", f.seq)
	f.accounts[acc.ID] = cloneAccount(acc)
	return nil
}

func (f *fakeAccountRepo) GetByID(_ context.Context, id string) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	acc, ok := f.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return cloneAccount(acc), nil
}

func (f *fakeAccountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, acc := range f.accounts {
		if acc.Email == strings.ToLower(email) {
			return cloneAccount(acc), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (f *fakeAccountRepo) ListOthers(_ context.Context, excludingID string) ([]*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Account
	for id, acc := range f.accounts {
		if id != excludingID {
			out = append(out, cloneAccount(acc))
		}
	}
	return out, nil
}

func (f *fakeAccountRepo) Follow(_ context.Context, actorID, targetID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	actor, ok := f.accounts[actorID]
	if !ok {
		return domain.ErrAccountNotFound
	}
	if slices.Contains(actor.Following, targetID) {
		return domain.ErrAlreadyFollowing
	}
	target, ok := f.accounts[targetID]
	if !ok {
		return domain.ErrAccountNotFound
	}
	// Les deux côtés dans la même section critique, comme la transaction.
	actor.Following = append(actor.Following, targetID)
	target.Followers = append(target.Followers, actorID)
	return nil
}

func (f *fakeAccountRepo) Unfollow(_ context.Context, actorID, targetID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	actor, ok := f.accounts[actorID]
	if !ok {
		return domain.ErrAccountNotFound
	}
	if !slices.Contains(actor.Following, targetID) {
		return domain.ErrNotFollowing
	}
	target, ok := f.accounts[targetID]
	if !ok {
		return domain.ErrAccountNotFound
	}
	actor.Following = remove(actor.Following, targetID)
	target.Followers = remove(target.Followers, actorID)
	return nil
}

func (f *fakeAccountRepo) ToggleBookmark(_ context.Context, accountID, postID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	acc, ok := f.accounts[accountID]
	if !ok {
		return false, domain.ErrAccountNotFound
	}
	if slices.Contains(acc.Bookmarks, postID) {
		acc.Bookmarks = remove(acc.Bookmarks, postID)
		return false, nil
	}
	acc.Bookmarks = append(acc.Bookmarks, postID)
	return true, nil
}

func (f *fakeAccountRepo) BookmarkerIDs(_ context.Context, postID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []string
	for id, acc := range f.accounts {
		if slices.Contains(acc.Bookmarks, postID) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

type fakePostRepo struct {
	mu    sync.Mutex
	seq   int
	order []string // Ordre d'insertion = "ordre de retour du store"
	posts map[string]*domain.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: map[string]*domain.Post{}}
}

func (f *fakePostRepo) Save(_ context.Context, post *domain.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	post.ID = fmt.Sprintf("post-%d", f.seq)
	f.posts[post.ID] = clonePost(post)
	f.order = append(f.order, post.ID)
	return nil
}

func (f *fakePostRepo) GetByID(_ context.Context, id string) (*domain.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	return clonePost(post), nil
}

func (f *fakePostRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.posts[id]; !ok {
		return domain.ErrPostNotFound
	}
	delete(f.posts, id)
	f.order = remove(f.order, id)
	return nil
}

func (f *fakePostRepo) ListByAuthor(_ context.Context, authorID string) ([]*domain.Post, error) {
	return f.listWhere(func(p *domain.Post) bool { return p.AuthorID == authorID })
}

func (f *fakePostRepo) ListByAuthors(_ context.Context, authorIDs []string) ([]*domain.Post, error) {
	return f.listWhere(func(p *domain.Post) bool { return slices.Contains(authorIDs, p.AuthorID) })
}

func (f *fakePostRepo) ToggleLike(_ context.Context, postID, accountID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[postID]
	if !ok {
		return false, domain.ErrPostNotFound
	}
	if slices.Contains(post.Likes, accountID) {
		post.Likes = remove(post.Likes, accountID)
		return false, nil
	}
	post.Likes = append(post.Likes, accountID)
	return true, nil
}

func (f *fakePostRepo) listWhere(keep func(*domain.Post) bool) ([]*domain.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*domain.Post{}
	for _, id := range f.order {
		if p := f.posts[id]; keep(p) {
			out = append(out, clonePost(p))
		}
	}
	return out, nil
}

// --- Sécurité & broker ---

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (fakeHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return fmt.Errorf("password mismatch")
	}
	return nil
}

type fakeTokens struct{}

func (fakeTokens) Issue(accountID string) (string, time.Duration, error) {
	return "token:" + accountID, 24 * time.Hour, nil
}

func (fakeTokens) Validate(token string) (string, error) {
	id, ok := strings.CutPrefix(token, "token:")
	if !ok {
		return "", domain.ErrInvalidToken
	}
	return id, nil
}

type recordingBroker struct {
	mu     sync.Mutex
	events []string
}

func (b *recordingBroker) record(e string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
	return nil
}

func (b *recordingBroker) PublishAccountRegistered(_ context.Context, accountID, _ string) error {
	return b.record("registered:" + accountID)
}
func (b *recordingBroker) PublishPostCreated(_ context.Context, post *domain.Post) error {
	return b.record("post.created:" + post.ID)
}
func (b *recordingBroker) PublishPostDeleted(_ context.Context, postID string) error {
	return b.record("post.deleted:" + postID)
}
func (b *recordingBroker) PublishFollowChanged(_ context.Context, actorID, targetID string, following bool) error {
	return b.record(fmt.Sprintf("follow:%s->%s:%v", actorID, targetID, following))
}

// --- Helpers ---

func cloneAccount(a *domain.Account) *domain.Account {
	c := *a
	c.Followers = slices.Clone(a.Followers)
	c.Following = slices.Clone(a.Following)
	c.Bookmarks = slices.Clone(a.Bookmarks)
	return &c
}

func clonePost(p *domain.Post) *domain.Post {
	c := *p
	c.Likes = slices.Clone(p.Likes)
	return &c
}

func remove(s []string, v string) []string {
	out := s[:0]
	for _, x := range s {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}
