package repository

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/HamdanRaza309/Social-Media-App-Backend/internal/core/domain"
)

// mongoAccount est le DTO interne : tampon entre les documents BSON et
// l'entité du domaine (ObjectID vs ID opaque, arrays nil vs vides).
type mongoAccount struct {
	ID             primitive.ObjectID `bson:"_id"`
	Name           string             `bson:"name"`
	Handle         string             `bson:"handle"`
	Email          string             `bson:"email"`
	CredentialHash string             `bson:"credentialHash"`
	Followers      []string           `bson:"followers"`
	Following      []string           `bson:"following"`
	Bookmarks      []string           `bson:"bookmarks"`
	CreatedAt      time.Time          `bson:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt"`
}

type AccountRepo struct {
	client *mongo.Client
	col    *mongo.Collection
}

func NewAccountRepo(client *mongo.Client, db string) *AccountRepo {
	return &AccountRepo{
		client: client,
		col:    client.Database(db).Collection("accounts"),
	}
}

// EnsureIndexes crée les index d'unicité (idempotent, appelé au boot).
// La contrainte UNIQUE du store est la garantie ultime contre les
// inscriptions concurrentes sur le même email/handle.
func (r *AccountRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "handle", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "bookmarks", Value: 1}}},
	})
	return err
}

func (r *AccountRepo) Save(ctx context.Context, acc *domain.Account) error {
	oid := primitive.NewObjectID()
	doc := mongoAccount{
		ID:             oid,
		Name:           acc.Name,
		Handle:         acc.Handle,
		Email:          acc.Email,
		CredentialHash: acc.CredentialHash,
		Followers:      acc.Followers,
		Following:      acc.Following,
		Bookmarks:      acc.Bookmarks,
		CreatedAt:      acc.CreatedAt,
		UpdatedAt:      acc.UpdatedAt,
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return r.translateError(err)
	}

	// L'identité est attribuée par le store, pas par le domaine.
	acc.ID = oid.Hex()
	return nil
}

func (r *AccountRepo) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	oid, err := accountOID(id)
	if err != nil {
		return nil, err
	}

	var doc mongoAccount
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("db: get account by id: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var doc mongoAccount
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("db: get account by email: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AccountRepo) ListOthers(ctx context.Context, excludingID string) ([]*domain.Account, error) {
	oid, err := accountOID(excludingID)
	if err != nil {
		return nil, err
	}

	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$ne": oid}})
	if err != nil {
		return nil, fmt.Errorf("db: list others: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoAccount
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("db: decode others: %w", err)
	}

	accounts := make([]*domain.Account, 0, len(docs))
	for i := range docs {
		accounts = append(accounts, docs[i].toDomain())
	}
	return accounts, nil
}

// Follow mute les deux côtés de la relation dans une transaction
// multi-documents : jamais d'état asymétrique observable, même en cas
// de crash entre les deux writes.
func (r *AccountRepo) Follow(ctx context.Context, actorID, targetID string) error {
	actorOID, err := accountOID(actorID)
	if err != nil {
		return err
	}
	targetOID, err := accountOID(targetID)
	if err != nil {
		return err
	}

	sess, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("db: start session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		// 1. Côté acteur, avec garde d'idempotence : le filtre $ne ne
		// matche pas si la relation existe déjà.
		res, err := r.col.UpdateOne(sc,
			bson.M{"_id": actorOID, "following": bson.M{"$ne": targetID}},
			bson.M{
				"$addToSet":    bson.M{"following": targetID},
				"$currentDate": bson.M{"updatedAt": true},
			})
		if err != nil {
			return nil, fmt.Errorf("db: follow actor side: %w", err)
		}
		if res.MatchedCount == 0 {
			// Compte absent, ou relation déjà en place : on distingue.
			if exists, err := r.existsTx(sc, actorOID); err != nil {
				return nil, err
			} else if !exists {
				return nil, domain.ErrAccountNotFound
			}
			return nil, domain.ErrAlreadyFollowing
		}

		// 2. Côté cible (miroir). MatchedCount == 0 => cible absente,
		// la transaction est annulée et le côté acteur avec elle.
		res, err = r.col.UpdateOne(sc,
			bson.M{"_id": targetOID},
			bson.M{
				"$addToSet":    bson.M{"followers": actorID},
				"$currentDate": bson.M{"updatedAt": true},
			})
		if err != nil {
			return nil, fmt.Errorf("db: follow target side: %w", err)
		}
		if res.MatchedCount == 0 {
			return nil, domain.ErrAccountNotFound
		}
		return nil, nil
	})
	return err
}

// Unfollow est le miroir exact de Follow.
func (r *AccountRepo) Unfollow(ctx context.Context, actorID, targetID string) error {
	actorOID, err := accountOID(actorID)
	if err != nil {
		return err
	}
	targetOID, err := accountOID(targetID)
	if err != nil {
		return err
	}

	sess, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("db: start session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		res, err := r.col.UpdateOne(sc,
			bson.M{"_id": actorOID, "following": targetID},
			bson.M{
				"$pull":        bson.M{"following": targetID},
				"$currentDate": bson.M{"updatedAt": true},
			})
		if err != nil {
			return nil, fmt.Errorf("db: unfollow actor side: %w", err)
		}
		if res.MatchedCount == 0 {
			if exists, err := r.existsTx(sc, actorOID); err != nil {
				return nil, err
			} else if !exists {
				return nil, domain.ErrAccountNotFound
			}
			return nil, domain.ErrNotFollowing
		}

		res, err = r.col.UpdateOne(sc,
			bson.M{"_id": targetOID},
			bson.M{
				"$pull":        bson.M{"followers": actorID},
				"$currentDate": bson.M{"updatedAt": true},
			})
		if err != nil {
			return nil, fmt.Errorf("db: unfollow target side: %w", err)
		}
		if res.MatchedCount == 0 {
			return nil, domain.ErrAccountNotFound
		}
		return nil, nil
	})
	return err
}

// ToggleBookmark flippe l'appartenance en UN update atomique (pipeline
// d'agrégation) : le document retourné AVANT mutation nous dit dans
// quel sens le flip est parti. Deux toggles concurrents sont sérialisés
// par le store, pas par nous.
func (r *AccountRepo) ToggleBookmark(ctx context.Context, accountID, postID string) (bool, error) {
	oid, err := accountOID(accountID)
	if err != nil {
		return false, err
	}

	update := bson.A{bson.M{"$set": bson.M{
		"bookmarks": bson.M{"$cond": bson.A{
			bson.M{"$in": bson.A{postID, "$bookmarks"}},
			bson.M{"$setDifference": bson.A{"$bookmarks", bson.A{postID}}},
			bson.M{"$concatArrays": bson.A{"$bookmarks", bson.A{postID}}},
		}},
		"updatedAt": "$$NOW",
	}}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.Before)

	var before mongoAccount
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&before); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, domain.ErrAccountNotFound
		}
		return false, fmt.Errorf("db: toggle bookmark: %w", err)
	}

	// Absent avant => le flip vient de l'ajouter.
	return !slices.Contains(before.Bookmarks, postID), nil
}

// BookmarkerIDs matérialise la vue dérivée côté post : les comptes
// dont l'ensemble bookmarks contient ce post.
func (r *AccountRepo) BookmarkerIDs(ctx context.Context, postID string) ([]string, error) {
	cur, err := r.col.Find(ctx,
		bson.M{"bookmarks": postID},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, fmt.Errorf("db: bookmarkers: %w", err)
	}
	defer cur.Close(ctx)

	var rows []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("db: decode bookmarkers: %w", err)
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID.Hex())
	}
	return ids, nil
}

// --- HELPERS ---

func (r *AccountRepo) existsTx(ctx context.Context, oid primitive.ObjectID) (bool, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{"_id": oid}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("db: account exists: %w", err)
	}
	return n > 0, nil
}

// toDomain convertit le DTO BSON en entité du domaine.
func (d *mongoAccount) toDomain() *domain.Account {
	return &domain.Account{
		ID:             d.ID.Hex(),
		Name:           d.Name,
		Handle:         d.Handle,
		Email:          d.Email,
		CredentialHash: d.CredentialHash,
		Followers:      emptyIfNil(d.Followers),
		Following:      emptyIfNil(d.Following),
		Bookmarks:      emptyIfNil(d.Bookmarks),
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

// accountOID traduit un ID opaque en ObjectID. Un ID mal formé ne peut
// désigner aucun compte : on le traite comme absent.
func accountOID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrAccountNotFound
	}
	return oid, nil
}

// translateError traduit les erreurs techniques Mongo en erreurs du
// domaine (violation d'unicité -> Conflict).
func (r *AccountRepo) translateError(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		if strings.Contains(err.Error(), "handle") {
			return domain.ErrHandleTaken
		}
		return domain.ErrEmailTaken
	}
	return fmt.Errorf("db: save account: %w", err)
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
