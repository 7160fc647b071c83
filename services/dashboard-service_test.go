package services

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"taskboard/backend/models"
)

func TestDashboardStats(t *testing.T) {
	taskRepo := newFakeTaskRepo()
	projectRepo := newFakeProjectRepo(taskRepo)
	teamRepo := newFakeTeamRepo(projectRepo)
	users := newFakeUserRepo()
	svc := NewDashboardService(projectRepo, taskRepo, teamRepo, users)

	me := users.add("Alice", "alice@example.com")
	someone := users.add("Bob", "bob@example.com")
	team := primitive.NewObjectID()

	for i := 0; i < 2; i++ {
		projectRepo.Insert(context.Background(), &models.Project{Name: "P", Team: team, CreatedBy: me.ID})
	}
	// Counted toward nobody's dashboard but mine.
	projectRepo.Insert(context.Background(), &models.Project{Name: "Q", Team: team, CreatedBy: someone.ID})

	statuses := []models.Status{
		models.StatusCompleted,
		models.StatusCompleted,
		models.StatusCompleted,
		models.StatusInProgress,
		models.StatusToDo,
	}
	for _, status := range statuses {
		taskRepo.Insert(context.Background(), &models.Task{Name: "T", Team: team, CreatedBy: me.ID, Status: status})
	}
	taskRepo.Insert(context.Background(), &models.Task{Name: "U", Team: team, CreatedBy: someone.ID, Status: models.StatusCompleted})

	stats, err := svc.Stats(context.Background(), me.ID)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Projects != 2 {
		t.Errorf("Projects = %d, want 2", stats.Projects)
	}
	if stats.Tasks != 5 {
		t.Errorf("Tasks = %d, want 5", stats.Tasks)
	}
	if stats.Completed != 3 {
		t.Errorf("Completed = %d, want 3", stats.Completed)
	}
	if stats.InProgress != 1 {
		t.Errorf("InProgress = %d, want 1", stats.InProgress)
	}
}

func TestReportOverview(t *testing.T) {
	taskRepo := newFakeTaskRepo()
	projectRepo := newFakeProjectRepo(taskRepo)
	teamRepo := newFakeTeamRepo(projectRepo)
	users := newFakeUserRepo()
	svc := NewDashboardService(projectRepo, taskRepo, teamRepo, users)

	alice := users.add("Alice", "alice@example.com")
	creator := users.add("Carol", "carol@example.com")

	eng := &models.Team{Name: "Eng", Owner: alice.ID, Members: []primitive.ObjectID{alice.ID}}
	teamRepo.Insert(context.Background(), eng)

	taskRepo.Insert(context.Background(), &models.Task{
		Name:      "Ship",
		Team:      eng.ID,
		Owners:    []primitive.ObjectID{alice.ID},
		CreatedBy: creator.ID,
		Status:    models.StatusCompleted,
	})
	taskRepo.Insert(context.Background(), &models.Task{
		Name:      "Review",
		Team:      eng.ID,
		Owners:    []primitive.ObjectID{alice.ID},
		CreatedBy: creator.ID,
		Status:    models.StatusCompleted,
	})
	taskRepo.Insert(context.Background(), &models.Task{
		Name:      "Backlog",
		Team:      eng.ID,
		Owners:    []primitive.ObjectID{alice.ID},
		CreatedBy: creator.ID,
		Status:    models.StatusToDo,
	})

	// A completion older than the reporting window stays out of every
	// windowed figure.
	stale := &models.Task{
		Name:      "Old win",
		Team:      eng.ID,
		Owners:    []primitive.ObjectID{alice.ID},
		CreatedBy: creator.ID,
		Status:    models.StatusCompleted,
	}
	taskRepo.Insert(context.Background(), stale)
	aged := taskRepo.tasks[stale.ID]
	aged.UpdatedAt = time.Now().AddDate(0, 0, -30)
	taskRepo.tasks[stale.ID] = aged

	overview, err := svc.ReportOverview(context.Background())
	if err != nil {
		t.Fatalf("ReportOverview: %v", err)
	}
	if overview.CompletedLastWeek != 2 {
		t.Errorf("CompletedLastWeek = %d, want 2", overview.CompletedLastWeek)
	}
	if overview.PendingTasks != 1 {
		t.Errorf("PendingTasks = %d, want 1", overview.PendingTasks)
	}
	if len(overview.ClosedByTeam) != 1 || overview.ClosedByTeam[0].TeamName != "Eng" || overview.ClosedByTeam[0].Count != 2 {
		t.Errorf("ClosedByTeam = %v", overview.ClosedByTeam)
	}
	if len(overview.ClosedByOwner) != 1 || overview.ClosedByOwner[0].OwnerName != "Alice" || overview.ClosedByOwner[0].Count != 2 {
		t.Errorf("ClosedByOwner = %v", overview.ClosedByOwner)
	}
}

func TestReportOverviewUnknownReferences(t *testing.T) {
	taskRepo := newFakeTaskRepo()
	projectRepo := newFakeProjectRepo(taskRepo)
	teamRepo := newFakeTeamRepo(projectRepo)
	users := newFakeUserRepo()
	svc := NewDashboardService(projectRepo, taskRepo, teamRepo, users)

	// The task's team and owner never existed in the stores, as after a
	// team delete or user removal.
	taskRepo.Insert(context.Background(), &models.Task{
		Name:      "Orphan",
		Team:      primitive.NewObjectID(),
		Owners:    []primitive.ObjectID{primitive.NewObjectID()},
		CreatedBy: primitive.NewObjectID(),
		Status:    models.StatusCompleted,
	})

	overview, err := svc.ReportOverview(context.Background())
	if err != nil {
		t.Fatalf("ReportOverview: %v", err)
	}
	if len(overview.ClosedByTeam) != 1 || overview.ClosedByTeam[0].TeamName != "Unknown" {
		t.Errorf("ClosedByTeam = %v, want Unknown", overview.ClosedByTeam)
	}
	if len(overview.ClosedByOwner) != 1 || overview.ClosedByOwner[0].OwnerName != "Unknown" {
		t.Errorf("ClosedByOwner = %v, want Unknown", overview.ClosedByOwner)
	}
}
