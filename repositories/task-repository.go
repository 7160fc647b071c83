package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"taskboard/backend/models"
)

type TaskRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error)
	ListForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Task, error)
	ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Task, error)
	Insert(ctx context.Context, task *models.Task) error
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	CountByCreator(ctx context.Context, userID primitive.ObjectID) (int64, error)
	CountByCreatorAndStatus(ctx context.Context, userID primitive.ObjectID, status models.Status) (int64, error)
	CountCompletedSince(ctx context.Context, since time.Time) (int64, error)
	CountPending(ctx context.Context) (int64, error)
	CompletedCountByTeam(ctx context.Context, since time.Time) ([]GroupCount, error)
	CompletedCountByOwner(ctx context.Context, since time.Time) ([]GroupCount, error)
}

type MongoTaskRepository struct {
	tasks *mongo.Collection
}

func NewMongoTaskRepository(tasks *mongo.Collection) *MongoTaskRepository {
	return &MongoTaskRepository{tasks: tasks}
}

func (r *MongoTaskRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	var task models.Task
	err := r.tasks.FindOne(ctx, bson.M{"_id": id}).Decode(&task)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch task: %v", err)
	}
	return &task, nil
}

// ListForUser returns tasks the user created or is assigned to.
func (r *MongoTaskRepository) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Task, error) {
	filter := bson.M{"$or": []bson.M{
		{"createdBy": userID},
		{"owners": userID},
	}}
	return r.find(ctx, filter)
}

func (r *MongoTaskRepository) ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Task, error) {
	return r.find(ctx, bson.M{"project": projectID})
}

func (r *MongoTaskRepository) find(ctx context.Context, filter bson.M) ([]models.Task, error) {
	cursor, err := r.tasks.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %v", err)
	}
	defer cursor.Close(ctx)

	var tasks []models.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %v", err)
	}
	return tasks, nil
}

func (r *MongoTaskRepository) Insert(ctx context.Context, task *models.Task) error {
	if task.ID.IsZero() {
		task.ID = primitive.NewObjectID()
	}
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now
	if _, err := r.tasks.InsertOne(ctx, task); err != nil {
		return fmt.Errorf("failed to create task: %v", err)
	}
	return nil
}

func (r *MongoTaskRepository) Update(ctx context.Context, task *models.Task) error {
	task.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"tags":      task.Tags,
		"status":    task.Status,
		"priority":  task.Priority,
		"updatedAt": task.UpdatedAt,
	}}
	result, err := r.tasks.UpdateOne(ctx, bson.M{"_id": task.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update task: %v", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoTaskRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.tasks.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete task: %v", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoTaskRepository) CountByCreator(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return r.count(ctx, bson.M{"createdBy": userID})
}

func (r *MongoTaskRepository) CountByCreatorAndStatus(ctx context.Context, userID primitive.ObjectID, status models.Status) (int64, error) {
	return r.count(ctx, bson.M{"createdBy": userID, "status": status})
}

func (r *MongoTaskRepository) CountCompletedSince(ctx context.Context, since time.Time) (int64, error) {
	return r.count(ctx, bson.M{
		"status":    models.StatusCompleted,
		"updatedAt": bson.M{"$gte": since},
	})
}

func (r *MongoTaskRepository) CountPending(ctx context.Context) (int64, error) {
	return r.count(ctx, bson.M{"status": bson.M{"$ne": models.StatusCompleted}})
}

func (r *MongoTaskRepository) count(ctx context.Context, filter bson.M) (int64, error) {
	count, err := r.tasks.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count tasks: %v", err)
	}
	return count, nil
}

// CompletedCountByTeam groups tasks completed in the window by team.
func (r *MongoTaskRepository) CompletedCountByTeam(ctx context.Context, since time.Time) ([]GroupCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"status":    models.StatusCompleted,
			"updatedAt": bson.M{"$gte": since},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$team",
			"count": bson.M{"$sum": 1},
		}}},
	}
	return r.aggregate(ctx, pipeline)
}

// CompletedCountByOwner unwinds the owners array before grouping, so a
// task with several owners counts once per owner.
func (r *MongoTaskRepository) CompletedCountByOwner(ctx context.Context, since time.Time) ([]GroupCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"status":    models.StatusCompleted,
			"updatedAt": bson.M{"$gte": since},
		}}},
		{{Key: "$unwind", Value: "$owners"}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$owners",
			"count": bson.M{"$sum": 1},
		}}},
	}
	return r.aggregate(ctx, pipeline)
}

func (r *MongoTaskRepository) aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]GroupCount, error) {
	cursor, err := r.tasks.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate tasks: %v", err)
	}
	defer cursor.Close(ctx)

	var groups []GroupCount
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, fmt.Errorf("failed to decode aggregation: %v", err)
	}
	return groups, nil
}
