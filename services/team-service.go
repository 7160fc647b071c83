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

type TeamService struct {
	Teams repositories.TeamRepository
	Users repositories.UserRepository
}

func NewTeamService(teams repositories.TeamRepository, users repositories.UserRepository) *TeamService {
	return &TeamService{Teams: teams, Users: users}
}

// ListMine returns the teams the user is a member of.
func (s *TeamService) ListMine(ctx context.Context, userID primitive.ObjectID) ([]models.Team, error) {
	return s.Teams.ListByMember(ctx, userID)
}

// Get returns a single team, visible only to its members.
func (s *TeamService) Get(ctx context.Context, userID, teamID primitive.ObjectID) (*models.Team, error) {
	team, err := s.fetch(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if policy.TeamRead(userID, team) != policy.Allow {
		return nil, fmt.Errorf("%w: you are not a member of this team", ErrForbidden)
	}
	return team, nil
}

// Create makes the caller the owner and sole initial member.
func (s *TeamService) Create(ctx context.Context, userID primitive.ObjectID, name, description string) (*models.Team, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: team name is required", ErrValidation)
	}

	team := &models.Team{
		Name:        name,
		Description: description,
		Owner:       userID,
		Members:     []primitive.ObjectID{userID},
	}
	if err := s.Teams.Insert(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, fmt.Errorf("%w: team with this name already exists", ErrConflict)
		}
		return nil, err
	}

	logging.Logger.Infof("Event ID: TEAM_CREATED, Description: Team '%s' created by user %s", team.Name, userID.Hex())
	return team, nil
}

// AddMember adds a user to the team; owner only. The target can be
// named by id or by email. Concurrent add-member and delete-team are
// not serialized: a member write can land just after a delete, which
// is an accepted race of the single-document store model.
func (s *TeamService) AddMember(ctx context.Context, userID, teamID, targetID primitive.ObjectID, targetEmail string) (*models.Team, error) {
	team, err := s.fetch(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if policy.TeamAddMember(userID, team) != policy.Allow {
		return nil, fmt.Errorf("%w: only owner can add members", ErrForbidden)
	}

	target, err := s.resolveUser(ctx, targetID, targetEmail)
	if err != nil {
		return nil, err
	}
	if team.HasMember(target.ID) {
		return nil, fmt.Errorf("%w: user already in team", ErrValidation)
	}

	if err := s.Teams.AddMember(ctx, team.ID, target.ID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: team not found", ErrNotFound)
		}
		return nil, err
	}

	logging.Logger.Infof("Event ID: TEAM_MEMBER_ADDED, Description: User %s added to team '%s' by owner %s", target.ID.Hex(), team.Name, userID.Hex())
	return s.fetch(ctx, teamID)
}

// Delete removes the team; owner only. Refused while projects still
// reference the team.
func (s *TeamService) Delete(ctx context.Context, userID, teamID primitive.ObjectID) error {
	team, err := s.fetch(ctx, teamID)
	if err != nil {
		return err
	}
	if policy.TeamDelete(userID, team) != policy.Allow {
		return fmt.Errorf("%w: only owner can delete team", ErrForbidden)
	}

	if err := s.Teams.Delete(ctx, teamID); err != nil {
		switch {
		case errors.Is(err, repositories.ErrHasDependents):
			return fmt.Errorf("%w: team still has projects", ErrConflict)
		case errors.Is(err, repositories.ErrNotFound):
			return fmt.Errorf("%w: team not found", ErrNotFound)
		}
		return err
	}

	logging.Logger.Infof("Event ID: TEAM_DELETED, Description: Team '%s' deleted by owner %s", team.Name, userID.Hex())
	return nil
}

func (s *TeamService) fetch(ctx context.Context, teamID primitive.ObjectID) (*models.Team, error) {
	team, err := s.Teams.GetByID(ctx, teamID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("%w: team not found", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return team, nil
}

func (s *TeamService) resolveUser(ctx context.Context, targetID primitive.ObjectID, targetEmail string) (*models.User, error) {
	var (
		target *models.User
		err    error
	)
	switch {
	case !targetID.IsZero():
		target, err = s.Users.GetByID(ctx, targetID)
	case targetEmail != "":
		target, err = s.Users.GetByEmail(ctx, targetEmail)
	default:
		return nil, fmt.Errorf("%w: user id or email is required", ErrValidation)
	}
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("%w: user not found", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return target, nil
}
