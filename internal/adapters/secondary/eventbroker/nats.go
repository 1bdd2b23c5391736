package eventbroker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/HamdanRaza309/Social-Media-App-Backend/internal/core/domain"
)

const (
	StreamName     = "SOCIAL"
	SubjectPattern = "social.>"
)

// NatsBroker publie les événements du domaine sur JetStream pour les
// consommateurs aval (notifications, analytics). Toutes les
// publications sont best effort côté appelant.
type NatsBroker struct {
	js jetstream.JetStream
}

// NewNatsBroker initialise la connexion et s'assure que le stream
// existe (idempotent).
func NewNatsBroker(url string) (*NatsBroker, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		return nil, fmt.Errorf("jetstream init: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     StreamName,
		Subjects: []string{SubjectPattern},
		Storage:  jetstream.FileStorage,
		Replicas: 1, // Mettre 3 en cluster
	})
	if err != nil {
		return nil, fmt.Errorf("create stream: %w", err)
	}

	return &NatsBroker{js: js}, nil
}

// --- PAYLOADS (contrat implicite avec les consommateurs) ---

type AccountRegisteredEvent struct {
	EventID   string `json:"event_id"`
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
}

type PostCreatedEvent struct {
	EventID   string    `json:"event_id"`
	PostID    string    `json:"post_id"`
	AuthorID  string    `json:"author_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type PostDeletedEvent struct {
	EventID string `json:"event_id"`
	PostID  string `json:"post_id"`
}

type FollowChangedEvent struct {
	EventID   string `json:"event_id"`
	ActorID   string `json:"actor_id"`
	TargetID  string `json:"target_id"`
	Following bool   `json:"following"`
}

func (n *NatsBroker) PublishAccountRegistered(ctx context.Context, accountID, email string) error {
	return n.publish(ctx, "social.account.registered", AccountRegisteredEvent{
		EventID:   uuid.NewString(),
		AccountID: accountID,
		Email:     email,
	})
}

func (n *NatsBroker) PublishPostCreated(ctx context.Context, post *domain.Post) error {
	return n.publish(ctx, "social.post.created", PostCreatedEvent{
		EventID:   uuid.NewString(),
		PostID:    post.ID,
		AuthorID:  post.AuthorID,
		Text:      post.Text,
		CreatedAt: post.CreatedAt,
	})
}

func (n *NatsBroker) PublishPostDeleted(ctx context.Context, postID string) error {
	return n.publish(ctx, "social.post.deleted", PostDeletedEvent{
		EventID: uuid.NewString(),
		PostID:  postID,
	})
}

func (n *NatsBroker) PublishFollowChanged(ctx context.Context, actorID, targetID string, following bool) error {
	subject := "social.graph.followed"
	if !following {
		subject = "social.graph.unfollowed"
	}
	return n.publish(ctx, subject, FollowChangedEvent{
		EventID:   uuid.NewString(),
		ActorID:   actorID,
		TargetID:  targetID,
		Following: following,
	})
}

// publish sérialise, injecte le contexte de trace dans les headers NATS
// et publie avec confirmation JetStream.
func (n *NatsBroker) publish(ctx context.Context, subject string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := &nats.Msg{
		Subject: subject,
		Data:    data,
		Header:  nats.Header{},
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(msg.Header))

	if _, err := n.js.PublishMsg(ctx, msg); err != nil {
		return fmt.Errorf("nats publish %s: %w", subject, err)
	}

	slog.Debug("📢 Event published", "subject", subject)
	return nil
}
