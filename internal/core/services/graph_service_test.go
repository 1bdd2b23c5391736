package services

import (
	"context"
	"errors"
	"testing"

	"github.com/HamdanRaza309/Social-Media-App-Backend/internal/core/domain"
)

func seedAccounts(t *testing.T, repo *fakeAccountRepo, handles ...string) []string {
	t.Helper()
	ids := make([]string, 0, len(handles))
	for _, h := range handles {
		acc, err := domain.NewAccount(h, h, h+"@example.com", "hash")
		if err != nil {
			t.Fatalf("new account %s: %v", h, err)
		}
		if err := repo.Save(context.Background(), acc); err != nil {
			t.Fatalf("save %s: %v", h, err)
		}
		ids = append(ids, acc.ID)
	}
	return ids
}

func TestFollowSymmetry(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := NewGraphService(repo, &recordingBroker{})
	ctx := context.Background()
	ids := seedAccounts(t, repo, "alice", "bob")
	a, b := ids[0], ids[1]

	if err := svc.Follow(ctx, a, b); err != nil {
		t.Fatalf("follow: %v", err)
	}

	// B ∈ A.following  <=>  A ∈ B.followers
	alice, _ := repo.GetByID(ctx, a)
	bob, _ := repo.GetByID(ctx, b)
	if !alice.IsFollowing(b) {
		t.Fatal("expected b in alice.Following")
	}
	if len(bob.Followers) != 1 || bob.Followers[0] != a {
		t.Fatalf("bob.Followers = %v", bob.Followers)
	}

	if err := svc.Unfollow(ctx, a, b); err != nil {
		t.Fatalf("unfollow: %v", err)
	}

	alice, _ = repo.GetByID(ctx, a)
	bob, _ = repo.GetByID(ctx, b)
	if alice.IsFollowing(b) || len(bob.Followers) != 0 {
		t.Fatalf("relation not fully removed: following=%v followers=%v", alice.Following, bob.Followers)
	}
}

// Le double follow est un refus explicite, pas un succès silencieux.
func TestFollowIdempotencyRefusal(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := NewGraphService(repo, &recordingBroker{})
	ctx := context.Background()
	ids := seedAccounts(t, repo, "alice", "bob")

	if err := svc.Follow(ctx, ids[0], ids[1]); err != nil {
		t.Fatalf("follow: %v", err)
	}
	if err := svc.Follow(ctx, ids[0], ids[1]); !errors.Is(err, domain.ErrAlreadyFollowing) {
		t.Fatalf("expected ErrAlreadyFollowing, got %v", err)
	}
	if err := svc.Unfollow(ctx, ids[1], ids[0]); !errors.Is(err, domain.ErrNotFollowing) {
		t.Fatalf("expected ErrNotFollowing, got %v", err)
	}
}

func TestFollowSelf(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := NewGraphService(repo, &recordingBroker{})
	ids := seedAccounts(t, repo, "alice")

	if err := svc.Follow(context.Background(), ids[0], ids[0]); !errors.Is(err, domain.ErrSelfFollow) {
		t.Fatalf("expected ErrSelfFollow, got %v", err)
	}
}

func TestFollowUnknownTarget(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := NewGraphService(repo, &recordingBroker{})
	ids := seedAccounts(t, repo, "alice")

	if err := svc.Follow(context.Background(), ids[0], "acc-999"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestListOthers(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := NewGraphService(repo, &recordingBroker{})
	ctx := context.Background()
	ids := seedAccounts(t, repo, "alice", "bob", "carol")

	others, err := svc.ListOthers(ctx, ids[0])
	if err != nil {
		t.Fatalf("list others: %v", err)
	}
	if len(others) != 2 {
		t.Fatalf("len(others) = %d", len(others))
	}
	for _, o := range others {
		if o.ID == ids[0] {
			t.Fatal("actor present in its own ListOthers")
		}
	}
}

// Résultat vide = erreur NotFound, c'est le contrat du client.
func TestListOthersEmpty(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := NewGraphService(repo, &recordingBroker{})
	ids := seedAccounts(t, repo, "alice")

	if _, err := svc.ListOthers(context.Background(), ids[0]); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestProfileStripsCredentials(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := NewGraphService(repo, &recordingBroker{})
	ids := seedAccounts(t, repo, "alice")

	view, err := svc.Profile(context.Background(), ids[0])
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if view.Handle != "alice" {
		t.Fatalf("handle = %q", view.Handle)
	}
	// PublicAccount n'a structurellement pas de champ credentials ;
	// on vérifie quand même que l'ID correspond au compte stocké.
	if view.ID != ids[0] {
		t.Fatalf("id = %q", view.ID)
	}
}
