package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"taskboard/backend/models"
	"taskboard/backend/repositories"
)

type DashboardService struct {
	Projects repositories.ProjectRepository
	Tasks    repositories.TaskRepository
	Teams    repositories.TeamRepository
	Users    repositories.UserRepository
}

func NewDashboardService(projects repositories.ProjectRepository, tasks repositories.TaskRepository, teams repositories.TeamRepository, users repositories.UserRepository) *DashboardService {
	return &DashboardService{Projects: projects, Tasks: tasks, Teams: teams, Users: users}
}

// Stats returns the creator-scoped counts for the user's dashboard.
func (s *DashboardService) Stats(ctx context.Context, userID primitive.ObjectID) (*models.DashboardStats, error) {
	projects, err := s.Projects.CountByCreator(ctx, userID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.Tasks.CountByCreator(ctx, userID)
	if err != nil {
		return nil, err
	}
	completed, err := s.Tasks.CountByCreatorAndStatus(ctx, userID, models.StatusCompleted)
	if err != nil {
		return nil, err
	}
	inProgress, err := s.Tasks.CountByCreatorAndStatus(ctx, userID, models.StatusInProgress)
	if err != nil {
		return nil, err
	}

	return &models.DashboardStats{
		Projects:   projects,
		Tasks:      tasks,
		Completed:  completed,
		InProgress: inProgress,
	}, nil
}

// ReportOverview aggregates completed work over the trailing 7 days,
// grouped by team and by task owner. Group ids are resolved to names
// here; a reference that no longer resolves reports as "Unknown".
func (s *DashboardService) ReportOverview(ctx context.Context) (*models.ReportOverview, error) {
	lastWeek := time.Now().AddDate(0, 0, -7)

	completedLastWeek, err := s.Tasks.CountCompletedSince(ctx, lastWeek)
	if err != nil {
		return nil, err
	}
	pending, err := s.Tasks.CountPending(ctx)
	if err != nil {
		return nil, err
	}

	byTeam, err := s.Tasks.CompletedCountByTeam(ctx, lastWeek)
	if err != nil {
		return nil, err
	}
	closedByTeam := make([]models.TeamClosure, 0, len(byTeam))
	for _, group := range byTeam {
		name := "Unknown"
		team, err := s.Teams.GetByID(ctx, group.ID)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		if team != nil {
			name = team.Name
		}
		closedByTeam = append(closedByTeam, models.TeamClosure{TeamName: name, Count: group.Count})
	}

	byOwner, err := s.Tasks.CompletedCountByOwner(ctx, lastWeek)
	if err != nil {
		return nil, err
	}
	closedByOwner := make([]models.OwnerClosure, 0, len(byOwner))
	for _, group := range byOwner {
		name := "Unknown"
		user, err := s.Users.GetByID(ctx, group.ID)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		if user != nil {
			name = user.Name
		}
		closedByOwner = append(closedByOwner, models.OwnerClosure{OwnerName: name, Count: group.Count})
	}

	return &models.ReportOverview{
		CompletedLastWeek: completedLastWeek,
		PendingTasks:      pending,
		ClosedByTeam:      closedByTeam,
		ClosedByOwner:     closedByOwner,
	}, nil
}
