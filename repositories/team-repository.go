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

type TeamRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Team, error)
	ListByMember(ctx context.Context, userID primitive.ObjectID) ([]models.Team, error)
	ListAll(ctx context.Context) ([]models.Team, error)
	Insert(ctx context.Context, team *models.Team) error
	AddMember(ctx context.Context, teamID, userID primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// MongoTeamRepository holds the projects collection as well: team
// deletion is restricted while projects still reference the team, and
// that check lives at the store boundary.
type MongoTeamRepository struct {
	teams    *mongo.Collection
	projects *mongo.Collection
}

func NewMongoTeamRepository(teams, projects *mongo.Collection) *MongoTeamRepository {
	return &MongoTeamRepository{teams: teams, projects: projects}
}

func (r *MongoTeamRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Team, error) {
	var team models.Team
	err := r.teams.FindOne(ctx, bson.M{"_id": id}).Decode(&team)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch team: %v", err)
	}
	return &team, nil
}

func (r *MongoTeamRepository) ListByMember(ctx context.Context, userID primitive.ObjectID) ([]models.Team, error) {
	cursor, err := r.teams.Find(ctx, bson.M{"members": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %v", err)
	}
	defer cursor.Close(ctx)

	var teams []models.Team
	if err := cursor.All(ctx, &teams); err != nil {
		return nil, fmt.Errorf("failed to decode teams: %v", err)
	}
	return teams, nil
}

func (r *MongoTeamRepository) ListAll(ctx context.Context) ([]models.Team, error) {
	cursor, err := r.teams.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %v", err)
	}
	defer cursor.Close(ctx)

	var teams []models.Team
	if err := cursor.All(ctx, &teams); err != nil {
		return nil, fmt.Errorf("failed to decode teams: %v", err)
	}
	return teams, nil
}

func (r *MongoTeamRepository) Insert(ctx context.Context, team *models.Team) error {
	if team.ID.IsZero() {
		team.ID = primitive.NewObjectID()
	}
	now := time.Now()
	team.CreatedAt = now
	team.UpdatedAt = now
	if _, err := r.teams.InsertOne(ctx, team); err != nil {
		return wrapDuplicate(err)
	}
	return nil
}

// AddMember appends the user to the members set. $addToSet keeps the
// write idempotent should two identical requests race.
func (r *MongoTeamRepository) AddMember(ctx context.Context, teamID, userID primitive.ObjectID) error {
	update := bson.M{
		"$addToSet": bson.M{"members": userID},
		"$set":      bson.M{"updatedAt": time.Now()},
	}
	result, err := r.teams.UpdateOne(ctx, bson.M{"_id": teamID}, update)
	if err != nil {
		return fmt.Errorf("failed to add member: %v", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the team, refusing while projects still reference it.
// The dependents check and the delete are separate statements, so a
// project created in between can still orphan; that window is accepted,
// matching the rest of the store's single-document write model.
func (r *MongoTeamRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	dependents, err := r.projects.CountDocuments(ctx, bson.M{"team": id})
	if err != nil {
		return fmt.Errorf("failed to check team projects: %v", err)
	}
	if dependents > 0 {
		return ErrHasDependents
	}

	result, err := r.teams.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete team: %v", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
