// Package policy holds the ownership and access rules for teams,
// projects and tasks. Every function is a pure decision over resource
// snapshots the caller has already fetched; the package never touches
// the database. A nil resource always decides NotFound before any
// permission rule runs.
package policy

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"taskboard/backend/models"
)

type Decision int

const (
	Allow Decision = iota
	Forbidden
	NotFound
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Forbidden:
		return "forbidden"
	case NotFound:
		return "not found"
	}
	return "unknown"
}

// TeamRead decides whether a user may see a team. Teams are visible
// only to their members.
func TeamRead(principal primitive.ObjectID, team *models.Team) Decision {
	if team == nil {
		return NotFound
	}
	if !team.HasMember(principal) {
		return Forbidden
	}
	return Allow
}

// TeamAddMember decides whether a user may add members to a team.
// Only the team owner controls membership.
func TeamAddMember(principal primitive.ObjectID, team *models.Team) Decision {
	if team == nil {
		return NotFound
	}
	if team.Owner != principal {
		return Forbidden
	}
	return Allow
}

// TeamDelete decides whether a user may delete a team. Only the owner.
func TeamDelete(principal primitive.ObjectID, team *models.Team) Decision {
	if team == nil {
		return NotFound
	}
	if team.Owner != principal {
		return Forbidden
	}
	return Allow
}

// ProjectCreate decides whether a user may create a project under a
// team: any member of the team may.
func ProjectCreate(principal primitive.ObjectID, team *models.Team) Decision {
	if team == nil {
		return NotFound
	}
	if !team.HasMember(principal) {
		return Forbidden
	}
	return Allow
}

// ProjectRead decides whether a user may see a project: the creator,
// or any member of the project's team. The team snapshot may be nil
// when the referenced team no longer exists; creator access still
// applies, team access does not.
func ProjectRead(principal primitive.ObjectID, project *models.Project, team *models.Team) Decision {
	if project == nil {
		return NotFound
	}
	if project.CreatedBy == principal {
		return Allow
	}
	if team != nil && team.HasMember(principal) {
		return Allow
	}
	return Forbidden
}

// ProjectUpdate decides whether a user may update a project. Creator only.
func ProjectUpdate(principal primitive.ObjectID, project *models.Project) Decision {
	if project == nil {
		return NotFound
	}
	if project.CreatedBy != principal {
		return Forbidden
	}
	return Allow
}

// ProjectDelete decides whether a user may delete a project. Creator only.
func ProjectDelete(principal primitive.ObjectID, project *models.Project) Decision {
	if project == nil {
		return NotFound
	}
	if project.CreatedBy != principal {
		return Forbidden
	}
	return Allow
}

// TaskCreate decides whether a user may create a task under a team:
// any member of the team may. Project/team consistency and owner
// membership are validation concerns, checked by the caller with
// OwnersAreMembers before insert.
func TaskCreate(principal primitive.ObjectID, team *models.Team) Decision {
	if team == nil {
		return NotFound
	}
	if !team.HasMember(principal) {
		return Forbidden
	}
	return Allow
}

// OwnersAreMembers reports whether every proposed task owner is a
// member of the team, returning the first offender otherwise.
func OwnersAreMembers(team *models.Team, owners []primitive.ObjectID) (primitive.ObjectID, bool) {
	for _, owner := range owners {
		if !team.HasMember(owner) {
			return owner, false
		}
	}
	return primitive.NilObjectID, true
}

// TaskRead decides whether a user may see a task: the creator or any
// assigned owner.
func TaskRead(principal primitive.ObjectID, task *models.Task) Decision {
	if task == nil {
		return NotFound
	}
	if task.CreatedBy == principal || task.HasOwner(principal) {
		return Allow
	}
	return Forbidden
}

// TaskUpdate decides whether a user may update a task. Creator or owner.
func TaskUpdate(principal primitive.ObjectID, task *models.Task) Decision {
	if task == nil {
		return NotFound
	}
	if task.CreatedBy == principal || task.HasOwner(principal) {
		return Allow
	}
	return Forbidden
}

// TaskDelete decides whether a user may delete a task. Same rule as
// update: creator or owner.
func TaskDelete(principal primitive.ObjectID, task *models.Task) Decision {
	return TaskUpdate(principal, task)
}
