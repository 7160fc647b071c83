package services

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTeamFixture() (*TeamService, *fakeTeamRepo, *fakeUserRepo, *fakeProjectRepo) {
	projects := newFakeProjectRepo(nil)
	teams := newFakeTeamRepo(projects)
	users := newFakeUserRepo()
	return NewTeamService(teams, users), teams, users, projects
}

func TestCreateTeamOwnerBecomesSoleMember(t *testing.T) {
	svc, _, users, _ := newTeamFixture()
	owner := users.add("Alice", "alice@example.com")

	team, err := svc.Create(context.Background(), owner.ID, "Eng", "engineering")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if team.Owner != owner.ID {
		t.Error("creator is not the owner")
	}
	if len(team.Members) != 1 || team.Members[0] != owner.ID {
		t.Errorf("members = %v, want exactly the owner", team.Members)
	}
}

func TestCreateTeamRequiresName(t *testing.T) {
	svc, _, users, _ := newTeamFixture()
	owner := users.add("Alice", "alice@example.com")

	if _, err := svc.Create(context.Background(), owner.ID, "", ""); !errors.Is(err, ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}

func TestCreateTeamDuplicateName(t *testing.T) {
	svc, _, users, _ := newTeamFixture()
	owner := users.add("Alice", "alice@example.com")

	if _, err := svc.Create(context.Background(), owner.ID, "Eng", ""); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.Create(context.Background(), owner.ID, "Eng", ""); !errors.Is(err, ErrConflict) {
		t.Errorf("err = %v, want ErrConflict", err)
	}
}

func TestAddMemberOwnerOnly(t *testing.T) {
	svc, _, users, _ := newTeamFixture()
	owner := users.add("Alice", "alice@example.com")
	member := users.add("Bob", "bob@example.com")
	target := users.add("Carol", "carol@example.com")

	team, err := svc.Create(context.Background(), owner.ID, "Eng", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.AddMember(context.Background(), owner.ID, team.ID, member.ID, ""); err != nil {
		t.Fatalf("owner AddMember: %v", err)
	}

	// A plain member is not allowed to grow the team.
	_, err = svc.AddMember(context.Background(), member.ID, team.ID, target.ID, "")
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
}

func TestAddMemberUnknownUser(t *testing.T) {
	svc, _, users, _ := newTeamFixture()
	owner := users.add("Alice", "alice@example.com")

	team, err := svc.Create(context.Background(), owner.ID, "Eng", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err = svc.AddMember(context.Background(), owner.ID, team.ID, primitive.NewObjectID(), "")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestAddMemberAlreadyInTeam(t *testing.T) {
	svc, _, users, _ := newTeamFixture()
	owner := users.add("Alice", "alice@example.com")
	member := users.add("Bob", "bob@example.com")

	team, err := svc.Create(context.Background(), owner.ID, "Eng", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.AddMember(context.Background(), owner.ID, team.ID, member.ID, ""); err != nil {
		t.Fatalf("AddMember: %v", err)
	}
	_, err = svc.AddMember(context.Background(), owner.ID, team.ID, member.ID, "")
	if !errors.Is(err, ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}

func TestAddMemberByEmail(t *testing.T) {
	svc, _, users, _ := newTeamFixture()
	owner := users.add("Alice", "alice@example.com")
	member := users.add("Bob", "bob@example.com")

	team, err := svc.Create(context.Background(), owner.ID, "Eng", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	updated, err := svc.AddMember(context.Background(), owner.ID, team.ID, primitive.NilObjectID, "bob@example.com")
	if err != nil {
		t.Fatalf("AddMember by email: %v", err)
	}
	if !updated.HasMember(member.ID) {
		t.Error("member added by email is missing from the team")
	}
}

func TestGetTeamMembersOnly(t *testing.T) {
	svc, _, users, _ := newTeamFixture()
	owner := users.add("Alice", "alice@example.com")
	outsider := users.add("Eve", "eve@example.com")

	team, err := svc.Create(context.Background(), owner.ID, "Eng", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Get(context.Background(), owner.ID, team.ID); err != nil {
		t.Fatalf("owner Get: %v", err)
	}
	if _, err := svc.Get(context.Background(), outsider.ID, team.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("outsider Get err = %v, want ErrForbidden", err)
	}
	if _, err := svc.Get(context.Background(), owner.ID, primitive.NewObjectID()); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing team Get err = %v, want ErrNotFound", err)
	}
}

func TestDeleteTeamOwnerOnly(t *testing.T) {
	svc, _, users, _ := newTeamFixture()
	owner := users.add("Alice", "alice@example.com")
	member := users.add("Bob", "bob@example.com")

	team, err := svc.Create(context.Background(), owner.ID, "Eng", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.AddMember(context.Background(), owner.ID, team.ID, member.ID, ""); err != nil {
		t.Fatalf("AddMember: %v", err)
	}

	if err := svc.Delete(context.Background(), member.ID, team.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("member delete err = %v, want ErrForbidden", err)
	}
	if err := svc.Delete(context.Background(), owner.ID, team.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
}

func TestDeleteTeamMissing(t *testing.T) {
	svc, _, users, _ := newTeamFixture()
	owner := users.add("Alice", "alice@example.com")

	if err := svc.Delete(context.Background(), owner.ID, primitive.NewObjectID()); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteTeamRestrictedWhileProjectsExist(t *testing.T) {
	svc, _, users, projects := newTeamFixture()
	owner := users.add("Alice", "alice@example.com")

	team, err := svc.Create(context.Background(), owner.ID, "Eng", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	projectSvc := NewProjectService(projects, svc.Teams)
	if _, err := projectSvc.Create(context.Background(), owner.ID, "Website", "", team.ID, ""); err != nil {
		t.Fatalf("project create: %v", err)
	}

	if err := svc.Delete(context.Background(), owner.ID, team.ID); !errors.Is(err, ErrConflict) {
		t.Errorf("delete with projects err = %v, want ErrConflict", err)
	}
}

func TestListMine(t *testing.T) {
	svc, _, users, _ := newTeamFixture()
	owner := users.add("Alice", "alice@example.com")
	other := users.add("Bob", "bob@example.com")

	if _, err := svc.Create(context.Background(), owner.ID, "Eng", ""); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(context.Background(), other.ID, "Design", ""); err != nil {
		t.Fatalf("Create: %v", err)
	}

	teams, err := svc.ListMine(context.Background(), owner.ID)
	if err != nil {
		t.Fatalf("ListMine: %v", err)
	}
	if len(teams) != 1 || teams[0].Name != "Eng" {
		t.Errorf("ListMine = %v, want only Eng", teams)
	}
}
