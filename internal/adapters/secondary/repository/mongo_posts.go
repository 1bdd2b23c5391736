package repository

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/HamdanRaza309/Social-Media-App-Backend/internal/core/domain"
)

type mongoPost struct {
	ID        primitive.ObjectID `bson:"_id"`
	AuthorID  string             `bson:"authorId"`
	Text      string             `bson:"text"`
	Likes     []string           `bson:"likes"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

type PostRepo struct {
	col *mongo.Collection
}

func NewPostRepo(client *mongo.Client, db string) *PostRepo {
	return &PostRepo{col: client.Database(db).Collection("posts")}
}

// EnsureIndexes : les feeds interrogent par auteur, l'index est
// obligatoire pour ne pas scanner la collection.
func (r *PostRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "authorId", Value: 1}},
	})
	return err
}

func (r *PostRepo) Save(ctx context.Context, post *domain.Post) error {
	oid := primitive.NewObjectID()
	doc := mongoPost{
		ID:        oid,
		AuthorID:  post.AuthorID,
		Text:      post.Text,
		Likes:     post.Likes,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("db: save post: %w", err)
	}

	post.ID = oid.Hex()
	return nil
}

func (r *PostRepo) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	oid, err := postOID(id)
	if err != nil {
		return nil, err
	}

	var doc mongoPost
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("db: get post: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *PostRepo) Delete(ctx context.Context, id string) error {
	oid, err := postOID(id)
	if err != nil {
		return err
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("db: delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPostNotFound
	}
	// Volontairement AUCUN nettoyage des bookmarks pointant ici :
	// les références orphelines sont un écart assumé du modèle.
	return nil
}

// ListByAuthor : pas de tri explicite, l'ordre de retour du store fait
// foi (contrat de compatibilité des feeds).
func (r *PostRepo) ListByAuthor(ctx context.Context, authorID string) ([]*domain.Post, error) {
	return r.list(ctx, bson.M{"authorId": authorID})
}

func (r *PostRepo) ListByAuthors(ctx context.Context, authorIDs []string) ([]*domain.Post, error) {
	if len(authorIDs) == 0 {
		return []*domain.Post{}, nil
	}
	return r.list(ctx, bson.M{"authorId": bson.M{"$in": authorIDs}})
}

// ToggleLike : même motif atomique que ToggleBookmark côté comptes, un
// seul FindOneAndUpdate en pipeline, l'état AVANT décide du sens.
func (r *PostRepo) ToggleLike(ctx context.Context, postID, accountID string) (bool, error) {
	oid, err := postOID(postID)
	if err != nil {
		return false, err
	}

	update := bson.A{bson.M{"$set": bson.M{
		"likes": bson.M{"$cond": bson.A{
			bson.M{"$in": bson.A{accountID, "$likes"}},
			bson.M{"$setDifference": bson.A{"$likes", bson.A{accountID}}},
			bson.M{"$concatArrays": bson.A{"$likes", bson.A{accountID}}},
		}},
		"updatedAt": "$$NOW",
	}}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.Before)

	var before mongoPost
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&before); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, domain.ErrPostNotFound
		}
		return false, fmt.Errorf("db: toggle like: %w", err)
	}

	return !slices.Contains(before.Likes, accountID), nil
}

// --- HELPERS ---

func (r *PostRepo) list(ctx context.Context, filter bson.M) ([]*domain.Post, error) {
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("db: list posts: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoPost
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("db: decode posts: %w", err)
	}

	posts := make([]*domain.Post, 0, len(docs))
	for i := range docs {
		posts = append(posts, docs[i].toDomain())
	}
	return posts, nil
}

func (d *mongoPost) toDomain() *domain.Post {
	return &domain.Post{
		ID:        d.ID.Hex(),
		AuthorID:  d.AuthorID,
		Text:      d.Text,
		Likes:     emptyIfNil(d.Likes),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func postOID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrPostNotFound
	}
	return oid, nil
}
