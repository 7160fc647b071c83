package policy

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"taskboard/backend/models"
)

func TestMembership(t *testing.T) {
	teamA := models.Team{ID: primitive.NewObjectID()}
	teamB := models.Team{ID: primitive.NewObjectID()}
	other := primitive.NewObjectID()

	m := NewMembership([]models.Team{teamA, teamB})

	if !m.Contains(teamA.ID) || !m.Contains(teamB.ID) {
		t.Error("membership missing a team the user belongs to")
	}
	if m.Contains(other) {
		t.Error("membership contains a foreign team")
	}
	if got := len(m.TeamIDs()); got != 2 {
		t.Errorf("TeamIDs length = %d, want 2", got)
	}
}

func TestMembershipEmpty(t *testing.T) {
	m := NewMembership(nil)
	if len(m.TeamIDs()) != 0 {
		t.Error("empty membership should have no team ids")
	}
}
