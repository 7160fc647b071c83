package repositories

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"taskboard/backend/models"
)

type TagRepository interface {
	List(ctx context.Context) ([]models.Tag, error)
	ListByNames(ctx context.Context, names []string) ([]models.Tag, error)
	Insert(ctx context.Context, tag *models.Tag) error
}

type MongoTagRepository struct {
	tags *mongo.Collection
}

func NewMongoTagRepository(tags *mongo.Collection) *MongoTagRepository {
	return &MongoTagRepository{tags: tags}
}

func (r *MongoTagRepository) List(ctx context.Context) ([]models.Tag, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoTagRepository) ListByNames(ctx context.Context, names []string) ([]models.Tag, error) {
	if len(names) == 0 {
		return nil, nil
	}
	return r.find(ctx, bson.M{"name": bson.M{"$in": names}})
}

func (r *MongoTagRepository) find(ctx context.Context, filter bson.M) ([]models.Tag, error) {
	cursor, err := r.tags.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %v", err)
	}
	defer cursor.Close(ctx)

	var tags []models.Tag
	if err := cursor.All(ctx, &tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags: %v", err)
	}
	return tags, nil
}

// Insert relies on the unique index on name; a duplicate surfaces as
// ErrDuplicate rather than a second document.
func (r *MongoTagRepository) Insert(ctx context.Context, tag *models.Tag) error {
	if tag.ID.IsZero() {
		tag.ID = primitive.NewObjectID()
	}
	if _, err := r.tags.InsertOne(ctx, tag); err != nil {
		return wrapDuplicate(err)
	}
	return nil
}
