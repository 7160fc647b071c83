package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"taskboard/backend/logging"
	"taskboard/backend/models"
	"taskboard/backend/policy"
	"taskboard/backend/repositories"
)

type ProjectService struct {
	Projects repositories.ProjectRepository
	Teams    repositories.TeamRepository
}

func NewProjectService(projects repositories.ProjectRepository, teams repositories.TeamRepository) *ProjectService {
	return &ProjectService{Projects: projects, Teams: teams}
}

// Create makes a project under a team. Only team members may create;
// the caller becomes owner and creator.
func (s *ProjectService) Create(ctx context.Context, userID primitive.ObjectID, name, description string, teamID primitive.ObjectID, status models.Status) (*models.Project, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: project name is required", ErrValidation)
	}
	if teamID.IsZero() {
		return nil, fmt.Errorf("%w: team is required for project", ErrValidation)
	}

	team, err := s.fetchTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if policy.ProjectCreate(userID, team) != policy.Allow {
		return nil, fmt.Errorf("%w: you are not a member of this team", ErrForbidden)
	}

	// An unknown status falls back to the default rather than erroring,
	// matching the lenient create behavior of the rest of the API.
	if !status.Valid() {
		status = models.StatusToDo
	}

	project := &models.Project{
		Name:        name,
		Description: description,
		Team:        teamID,
		Status:      status,
		Owner:       userID,
		CreatedBy:   userID,
	}
	if err := s.Projects.Insert(ctx, project); err != nil {
		return nil, err
	}

	logging.Logger.Infof("Event ID: PROJECT_CREATED, Description: Project '%s' created by user %s in team %s", project.Name, userID.Hex(), teamID.Hex())
	return project, nil
}

// ListVisible returns projects of every team the user belongs to. The
// membership set is rebuilt on each call; it is never cached across
// requests.
func (s *ProjectService) ListVisible(ctx context.Context, userID primitive.ObjectID) ([]models.Project, error) {
	teams, err := s.Teams.ListByMember(ctx, userID)
	if err != nil {
		return nil, err
	}
	membership := policy.NewMembership(teams)
	return s.Projects.ListByTeams(ctx, membership.TeamIDs())
}

// ListByTeam returns a team's projects, visible to its members only.
func (s *ProjectService) ListByTeam(ctx context.Context, userID, teamID primitive.ObjectID) ([]models.Project, error) {
	team, err := s.fetchTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if policy.TeamRead(userID, team) != policy.Allow {
		return nil, fmt.Errorf("%w: you are not a member of this team", ErrForbidden)
	}
	return s.Projects.ListByTeam(ctx, teamID)
}

// Get returns a single project for its creator or any member of its team.
func (s *ProjectService) Get(ctx context.Context, userID, projectID primitive.ObjectID) (*models.Project, error) {
	project, err := s.fetch(ctx, projectID)
	if err != nil {
		return nil, err
	}

	// The team snapshot is only needed when the caller is not the
	// creator; a dangling team reference then denies access.
	var team *models.Team
	if project.CreatedBy != userID {
		team, err = s.Teams.GetByID(ctx, project.Team)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
	}
	if policy.ProjectRead(userID, project, team) != policy.Allow {
		return nil, fmt.Errorf("%w: access denied", ErrForbidden)
	}
	return project, nil
}

// ProjectUpdate carries the patchable fields. Description is a pointer
// so an explicit empty string clears it while absence leaves it alone.
type ProjectUpdate struct {
	Name        string
	Description *string
	Status      models.Status
}

// Update patches a project; creator only.
func (s *ProjectService) Update(ctx context.Context, userID, projectID primitive.ObjectID, update ProjectUpdate) (*models.Project, error) {
	project, err := s.fetch(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if policy.ProjectUpdate(userID, project) != policy.Allow {
		return nil, fmt.Errorf("%w: only the creator can update this project", ErrForbidden)
	}

	if update.Name != "" {
		project.Name = update.Name
	}
	if update.Description != nil {
		project.Description = *update.Description
	}
	if update.Status != "" {
		if !update.Status.Valid() {
			return nil, fmt.Errorf("%w: invalid status %q", ErrValidation, update.Status)
		}
		project.Status = update.Status
	}

	if err := s.Projects.Update(ctx, project); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: project not found", ErrNotFound)
		}
		return nil, err
	}
	return project, nil
}

// Delete removes a project and its tasks; creator only.
func (s *ProjectService) Delete(ctx context.Context, userID, projectID primitive.ObjectID) error {
	project, err := s.fetch(ctx, projectID)
	if err != nil {
		return err
	}
	if policy.ProjectDelete(userID, project) != policy.Allow {
		return fmt.Errorf("%w: only the creator can delete this project", ErrForbidden)
	}

	if err := s.Projects.Delete(ctx, projectID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: project not found", ErrNotFound)
		}
		return err
	}

	logging.Logger.Infof("Event ID: PROJECT_DELETED, Description: Project '%s' deleted by creator %s", project.Name, userID.Hex())
	return nil
}

func (s *ProjectService) fetch(ctx context.Context, projectID primitive.ObjectID) (*models.Project, error) {
	project, err := s.Projects.GetByID(ctx, projectID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("%w: project not found", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) fetchTeam(ctx context.Context, teamID primitive.ObjectID) (*models.Team, error) {
	team, err := s.Teams.GetByID(ctx, teamID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("%w: team not found", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return team, nil
}
