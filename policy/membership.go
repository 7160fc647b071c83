package policy

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"taskboard/backend/models"
)

// Membership is the set of team ids a user belongs to. It is built
// fresh for each request from the team store; membership can change
// between requests, so the set is never cached across them.
type Membership map[primitive.ObjectID]struct{}

func NewMembership(teams []models.Team) Membership {
	m := make(Membership, len(teams))
	for _, t := range teams {
		m[t.ID] = struct{}{}
	}
	return m
}

func (m Membership) Contains(teamID primitive.ObjectID) bool {
	_, ok := m[teamID]
	return ok
}

// TeamIDs returns the set as a slice, for store queries of the form
// "projects whose team is one of these".
func (m Membership) TeamIDs() []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	return ids
}
