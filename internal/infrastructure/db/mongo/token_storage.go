package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/inventario/inventory-console/internal/core/ports"
)

const tokenCollection = "session_tokens"

// TokenStorage keeps one document per session key in MongoDB.
type TokenStorage struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewTokenStorage(db *mongo.Database) *TokenStorage {
	return &TokenStorage{coll: db.Collection(tokenCollection), now: time.Now}
}

type tokenDoc struct {
	Key       string    `bson:"_id"`
	Token     string    `bson:"token"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (s *TokenStorage) Get(ctx context.Context, key string) (string, error) {
	var doc tokenDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", ports.ErrTokenNotFound
	}
	if err != nil {
		return "", fmt.Errorf("find token: %w", err)
	}
	return doc.Token, nil
}

func (s *TokenStorage) Set(ctx context.Context, key, token string) error {
	doc := tokenDoc{Key: key, Token: token, UpdatedAt: s.now().UTC()}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert token: %w", err)
	}
	return nil
}

func (s *TokenStorage) Delete(ctx context.Context, key string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

// EnsureIndexes lets MongoDB expire tokens ttl after their last write. A
// zero ttl keeps tokens until logout.
func (s *TokenStorage) EnsureIndexes(ctx context.Context, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "updated_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(int32(ttl.Seconds())),
	})
	if err != nil {
		return fmt.Errorf("ensure token ttl index: %w", err)
	}
	return nil
}
