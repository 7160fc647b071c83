package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"taskboard/backend/logging"
	"taskboard/backend/models"
	"taskboard/backend/policy"
	"taskboard/backend/repositories"
)

type TaskService struct {
	Tasks    repositories.TaskRepository
	Projects repositories.ProjectRepository
	Teams    repositories.TeamRepository
	Tags     repositories.TagRepository
}

func NewTaskService(tasks repositories.TaskRepository, projects repositories.ProjectRepository, teams repositories.TeamRepository, tags repositories.TagRepository) *TaskService {
	return &TaskService{Tasks: tasks, Projects: projects, Teams: teams, Tags: tags}
}

// TaskCreate carries the fields of a new task.
type TaskCreate struct {
	Name           string
	Description    string
	ProjectID      primitive.ObjectID
	TeamID         primitive.ObjectID
	Owners         []primitive.ObjectID
	Tags           []string
	TimeToComplete int
	DueDate        time.Time
	Status         models.Status
	Priority       models.Priority
}

// Create validates the request, checks team membership and ownership
// consistency, then inserts the task. Validation precedes all
// authorization; a missing team or project reports NotFound before any
// permission result.
func (s *TaskService) Create(ctx context.Context, userID primitive.ObjectID, input TaskCreate) (*models.Task, error) {
	if input.Name == "" || input.ProjectID.IsZero() || input.TeamID.IsZero() ||
		len(input.Owners) == 0 || input.TimeToComplete <= 0 || input.DueDate.IsZero() {
		return nil, fmt.Errorf("%w: required fields missing", ErrValidation)
	}

	team, err := s.fetchTeam(ctx, input.TeamID)
	if err != nil {
		return nil, err
	}
	if policy.TaskCreate(userID, team) != policy.Allow {
		return nil, fmt.Errorf("%w: you are not a team member", ErrForbidden)
	}

	project, err := s.Projects.GetByID(ctx, input.ProjectID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("%w: project not found", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if project.Team != team.ID {
		return nil, fmt.Errorf("%w: project does not belong to this team", ErrValidation)
	}

	if offender, ok := policy.OwnersAreMembers(team, input.Owners); !ok {
		return nil, fmt.Errorf("%w: owner %s is not a team member", ErrValidation, offender.Hex())
	}

	if err := s.checkTags(ctx, input.Tags); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = models.StatusToDo
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: invalid status %q", ErrValidation, status)
	}
	if input.Priority != "" && !input.Priority.Valid() {
		return nil, fmt.Errorf("%w: invalid priority %q", ErrValidation, input.Priority)
	}

	task := &models.Task{
		Name:           input.Name,
		Description:    input.Description,
		Project:        project.ID,
		Team:           team.ID,
		Owners:         input.Owners,
		Tags:           input.Tags,
		TimeToComplete: input.TimeToComplete,
		DueDate:        input.DueDate,
		Status:         status,
		Priority:       input.Priority,
		CreatedBy:      userID,
	}
	if err := s.Tasks.Insert(ctx, task); err != nil {
		return nil, err
	}

	logging.Logger.Infof("Event ID: TASK_CREATED, Description: Task '%s' created by user %s in project %s", task.Name, userID.Hex(), project.ID.Hex())
	return task, nil
}

// ListMine returns tasks the user created or is assigned to.
func (s *TaskService) ListMine(ctx context.Context, userID primitive.ObjectID) ([]models.Task, error) {
	return s.Tasks.ListForUser(ctx, userID)
}

// Get returns a single task for its creator or an assigned owner.
func (s *TaskService) Get(ctx context.Context, userID, taskID primitive.ObjectID) (*models.Task, error) {
	task, err := s.fetch(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if policy.TaskRead(userID, task) != policy.Allow {
		return nil, fmt.Errorf("%w: not allowed to view this task", ErrForbidden)
	}
	return task, nil
}

// ListByProject returns a project's tasks. Access follows project
// visibility: creator or member of the project's team.
func (s *TaskService) ListByProject(ctx context.Context, userID, projectID primitive.ObjectID) ([]models.Task, error) {
	project, err := s.Projects.GetByID(ctx, projectID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("%w: project not found", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

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

	return s.Tasks.ListByProject(ctx, projectID)
}

// TaskUpdate carries the patchable fields: tags, status and priority.
// Tags is a pointer so an explicit empty list clears them.
type TaskUpdate struct {
	Tags     *[]string
	Status   models.Status
	Priority models.Priority
}

// Update patches a task; creator or assigned owner only.
func (s *TaskService) Update(ctx context.Context, userID, taskID primitive.ObjectID, update TaskUpdate) (*models.Task, error) {
	task, err := s.fetch(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if policy.TaskUpdate(userID, task) != policy.Allow {
		return nil, fmt.Errorf("%w: not allowed to update this task", ErrForbidden)
	}

	if update.Tags != nil {
		if err := s.checkTags(ctx, *update.Tags); err != nil {
			return nil, err
		}
		task.Tags = *update.Tags
	}
	if update.Status != "" {
		if !update.Status.Valid() {
			return nil, fmt.Errorf("%w: invalid status %q", ErrValidation, update.Status)
		}
		task.Status = update.Status
	}
	if update.Priority != "" {
		if !update.Priority.Valid() {
			return nil, fmt.Errorf("%w: invalid priority %q", ErrValidation, update.Priority)
		}
		task.Priority = update.Priority
	}

	if err := s.Tasks.Update(ctx, task); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: task not found", ErrNotFound)
		}
		return nil, err
	}
	return task, nil
}

// Delete removes a task. Same rule as update: creator or owner.
func (s *TaskService) Delete(ctx context.Context, userID, taskID primitive.ObjectID) error {
	task, err := s.fetch(ctx, taskID)
	if err != nil {
		return err
	}
	if policy.TaskDelete(userID, task) != policy.Allow {
		return fmt.Errorf("%w: not allowed to delete this task", ErrForbidden)
	}

	if err := s.Tasks.Delete(ctx, taskID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: task not found", ErrNotFound)
		}
		return err
	}

	logging.Logger.Infof("Event ID: TASK_DELETED, Description: Task '%s' deleted by user %s", task.Name, userID.Hex())
	return nil
}

// checkTags verifies every tag name exists in the tag registry.
func (s *TaskService) checkTags(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}
	tags, err := s.Tags.ListByNames(ctx, names)
	if err != nil {
		return err
	}
	known := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		known[t.Name] = struct{}{}
	}
	for _, name := range names {
		if _, ok := known[name]; !ok {
			return fmt.Errorf("%w: unknown tag %q", ErrValidation, name)
		}
	}
	return nil
}

func (s *TaskService) fetch(ctx context.Context, taskID primitive.ObjectID) (*models.Task, error) {
	task, err := s.Tasks.GetByID(ctx, taskID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("%w: task not found", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) fetchTeam(ctx context.Context, teamID primitive.ObjectID) (*models.Team, error) {
	team, err := s.Teams.GetByID(ctx, teamID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("%w: team not found", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return team, nil
}
