package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"taskboard/backend/models"
)

type ProjectRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error)
	ListByTeams(ctx context.Context, teamIDs []primitive.ObjectID) ([]models.Project, error)
	ListByTeam(ctx context.Context, teamID primitive.ObjectID) ([]models.Project, error)
	Insert(ctx context.Context, project *models.Project) error
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	CountByCreator(ctx context.Context, userID primitive.ObjectID) (int64, error)
}

// MongoProjectRepository also holds the tasks collection: deleting a
// project cascades to its tasks at the store boundary.
type MongoProjectRepository struct {
	projects *mongo.Collection
	tasks    *mongo.Collection
}

func NewMongoProjectRepository(projects, tasks *mongo.Collection) *MongoProjectRepository {
	return &MongoProjectRepository{projects: projects, tasks: tasks}
}

func (r *MongoProjectRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	var project models.Project
	err := r.projects.FindOne(ctx, bson.M{"_id": id}).Decode(&project)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch project: %v", err)
	}
	return &project, nil
}

func (r *MongoProjectRepository) ListByTeams(ctx context.Context, teamIDs []primitive.ObjectID) ([]models.Project, error) {
	if len(teamIDs) == 0 {
		return nil, nil
	}
	return r.find(ctx, bson.M{"team": bson.M{"$in": teamIDs}})
}

func (r *MongoProjectRepository) ListByTeam(ctx context.Context, teamID primitive.ObjectID) ([]models.Project, error) {
	return r.find(ctx, bson.M{"team": teamID})
}

func (r *MongoProjectRepository) find(ctx context.Context, filter bson.M) ([]models.Project, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.projects.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %v", err)
	}
	defer cursor.Close(ctx)

	var projects []models.Project
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("failed to decode projects: %v", err)
	}
	return projects, nil
}

func (r *MongoProjectRepository) Insert(ctx context.Context, project *models.Project) error {
	if project.ID.IsZero() {
		project.ID = primitive.NewObjectID()
	}
	now := time.Now()
	project.CreatedAt = now
	project.UpdatedAt = now
	if _, err := r.projects.InsertOne(ctx, project); err != nil {
		return wrapDuplicate(err)
	}
	return nil
}

func (r *MongoProjectRepository) Update(ctx context.Context, project *models.Project) error {
	project.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"name":        project.Name,
		"description": project.Description,
		"status":      project.Status,
		"updatedAt":   project.UpdatedAt,
	}}
	result, err := r.projects.UpdateOne(ctx, bson.M{"_id": project.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update project: %v", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the project and then its tasks. The project delete
// runs first so that a project already removed by a concurrent request
// reports NotFound without touching any tasks.
func (r *MongoProjectRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.projects.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete project: %v", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	if _, err := r.tasks.DeleteMany(ctx, bson.M{"project": id}); err != nil {
		return fmt.Errorf("failed to delete project tasks: %v", err)
	}
	return nil
}

func (r *MongoProjectRepository) CountByCreator(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	count, err := r.projects.CountDocuments(ctx, bson.M{"createdBy": userID})
	if err != nil {
		return 0, fmt.Errorf("failed to count projects: %v", err)
	}
	return count, nil
}
