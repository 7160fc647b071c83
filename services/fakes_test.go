package services

// In-memory repository fakes. They mirror the Mongo implementations'
// error contract: ErrNotFound on missing ids, ErrDuplicate on unique
// constraint violations, ErrHasDependents on a restricted team delete.

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"taskboard/backend/models"
	"taskboard/backend/repositories"
)

type fakeUserRepo struct {
	users map[primitive.ObjectID]models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]models.User)}
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) List(_ context.Context) ([]models.User, error) {
	users := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	return users, nil
}

func (r *fakeUserRepo) Insert(_ context.Context, user *models.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repositories.ErrDuplicate
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id primitive.ObjectID, hashed string) error {
	user, ok := r.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	user.Password = hashed
	r.users[id] = user
	return nil
}

func (r *fakeUserRepo) add(name, email string) models.User {
	user := models.User{ID: primitive.NewObjectID(), Name: name, Email: email}
	r.users[user.ID] = user
	return user
}

type fakeTeamRepo struct {
	teams    map[primitive.ObjectID]models.Team
	projects *fakeProjectRepo
}

func newFakeTeamRepo(projects *fakeProjectRepo) *fakeTeamRepo {
	return &fakeTeamRepo{teams: make(map[primitive.ObjectID]models.Team), projects: projects}
}

func (r *fakeTeamRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Team, error) {
	team, ok := r.teams[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	t := team
	return &t, nil
}

func (r *fakeTeamRepo) ListByMember(_ context.Context, userID primitive.ObjectID) ([]models.Team, error) {
	var teams []models.Team
	for _, team := range r.teams {
		t := team
		if (&t).HasMember(userID) {
			teams = append(teams, t)
		}
	}
	return teams, nil
}

func (r *fakeTeamRepo) ListAll(_ context.Context) ([]models.Team, error) {
	teams := make([]models.Team, 0, len(r.teams))
	for _, t := range r.teams {
		teams = append(teams, t)
	}
	return teams, nil
}

func (r *fakeTeamRepo) Insert(_ context.Context, team *models.Team) error {
	for _, existing := range r.teams {
		if existing.Name == team.Name {
			return repositories.ErrDuplicate
		}
	}
	if team.ID.IsZero() {
		team.ID = primitive.NewObjectID()
	}
	team.CreatedAt = time.Now()
	team.UpdatedAt = team.CreatedAt
	r.teams[team.ID] = *team
	return nil
}

func (r *fakeTeamRepo) AddMember(_ context.Context, teamID, userID primitive.ObjectID) error {
	team, ok := r.teams[teamID]
	if !ok {
		return repositories.ErrNotFound
	}
	if !(&team).HasMember(userID) {
		team.Members = append(team.Members, userID)
	}
	r.teams[teamID] = team
	return nil
}

func (r *fakeTeamRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.teams[id]; !ok {
		return repositories.ErrNotFound
	}
	if r.projects != nil && r.projects.countByTeam(id) > 0 {
		return repositories.ErrHasDependents
	}
	delete(r.teams, id)
	return nil
}

type fakeProjectRepo struct {
	projects map[primitive.ObjectID]models.Project
	tasks    *fakeTaskRepo
}

func newFakeProjectRepo(tasks *fakeTaskRepo) *fakeProjectRepo {
	return &fakeProjectRepo{projects: make(map[primitive.ObjectID]models.Project), tasks: tasks}
}

func (r *fakeProjectRepo) countByTeam(teamID primitive.ObjectID) int {
	n := 0
	for _, p := range r.projects {
		if p.Team == teamID {
			n++
		}
	}
	return n
}

func (r *fakeProjectRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Project, error) {
	project, ok := r.projects[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	p := project
	return &p, nil
}

func (r *fakeProjectRepo) ListByTeams(_ context.Context, teamIDs []primitive.ObjectID) ([]models.Project, error) {
	wanted := make(map[primitive.ObjectID]struct{}, len(teamIDs))
	for _, id := range teamIDs {
		wanted[id] = struct{}{}
	}
	var projects []models.Project
	for _, p := range r.projects {
		if _, ok := wanted[p.Team]; ok {
			projects = append(projects, p)
		}
	}
	return projects, nil
}

func (r *fakeProjectRepo) ListByTeam(_ context.Context, teamID primitive.ObjectID) ([]models.Project, error) {
	var projects []models.Project
	for _, p := range r.projects {
		if p.Team == teamID {
			projects = append(projects, p)
		}
	}
	return projects, nil
}

func (r *fakeProjectRepo) Insert(_ context.Context, project *models.Project) error {
	if project.ID.IsZero() {
		project.ID = primitive.NewObjectID()
	}
	project.CreatedAt = time.Now()
	project.UpdatedAt = project.CreatedAt
	r.projects[project.ID] = *project
	return nil
}

func (r *fakeProjectRepo) Update(_ context.Context, project *models.Project) error {
	if _, ok := r.projects[project.ID]; !ok {
		return repositories.ErrNotFound
	}
	project.UpdatedAt = time.Now()
	r.projects[project.ID] = *project
	return nil
}

func (r *fakeProjectRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.projects[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.projects, id)
	if r.tasks != nil {
		r.tasks.deleteByProject(id)
	}
	return nil
}

func (r *fakeProjectRepo) CountByCreator(_ context.Context, userID primitive.ObjectID) (int64, error) {
	var n int64
	for _, p := range r.projects {
		if p.CreatedBy == userID {
			n++
		}
	}
	return n, nil
}

type fakeTaskRepo struct {
	tasks map[primitive.ObjectID]models.Task
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[primitive.ObjectID]models.Task)}
}

func (r *fakeTaskRepo) deleteByProject(projectID primitive.ObjectID) {
	for id, task := range r.tasks {
		if task.Project == projectID {
			delete(r.tasks, id)
		}
	}
}

func (r *fakeTaskRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Task, error) {
	task, ok := r.tasks[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	t := task
	return &t, nil
}

func (r *fakeTaskRepo) ListForUser(_ context.Context, userID primitive.ObjectID) ([]models.Task, error) {
	var tasks []models.Task
	for _, task := range r.tasks {
		t := task
		if t.CreatedBy == userID || (&t).HasOwner(userID) {
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}

func (r *fakeTaskRepo) ListByProject(_ context.Context, projectID primitive.ObjectID) ([]models.Task, error) {
	var tasks []models.Task
	for _, task := range r.tasks {
		if task.Project == projectID {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

func (r *fakeTaskRepo) Insert(_ context.Context, task *models.Task) error {
	if task.ID.IsZero() {
		task.ID = primitive.NewObjectID()
	}
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt
	r.tasks[task.ID] = *task
	return nil
}

func (r *fakeTaskRepo) Update(_ context.Context, task *models.Task) error {
	if _, ok := r.tasks[task.ID]; !ok {
		return repositories.ErrNotFound
	}
	task.UpdatedAt = time.Now()
	r.tasks[task.ID] = *task
	return nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.tasks[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *fakeTaskRepo) CountByCreator(_ context.Context, userID primitive.ObjectID) (int64, error) {
	var n int64
	for _, t := range r.tasks {
		if t.CreatedBy == userID {
			n++
		}
	}
	return n, nil
}

func (r *fakeTaskRepo) CountByCreatorAndStatus(_ context.Context, userID primitive.ObjectID, status models.Status) (int64, error) {
	var n int64
	for _, t := range r.tasks {
		if t.CreatedBy == userID && t.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *fakeTaskRepo) CountCompletedSince(_ context.Context, since time.Time) (int64, error) {
	var n int64
	for _, t := range r.tasks {
		if t.Status == models.StatusCompleted && !t.UpdatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (r *fakeTaskRepo) CountPending(_ context.Context) (int64, error) {
	var n int64
	for _, t := range r.tasks {
		if t.Status != models.StatusCompleted {
			n++
		}
	}
	return n, nil
}

func (r *fakeTaskRepo) CompletedCountByTeam(_ context.Context, since time.Time) ([]repositories.GroupCount, error) {
	counts := make(map[primitive.ObjectID]int64)
	for _, t := range r.tasks {
		if t.Status == models.StatusCompleted && !t.UpdatedAt.Before(since) {
			counts[t.Team]++
		}
	}
	return toGroupCounts(counts), nil
}

func (r *fakeTaskRepo) CompletedCountByOwner(_ context.Context, since time.Time) ([]repositories.GroupCount, error) {
	counts := make(map[primitive.ObjectID]int64)
	for _, t := range r.tasks {
		if t.Status == models.StatusCompleted && !t.UpdatedAt.Before(since) {
			for _, owner := range t.Owners {
				counts[owner]++
			}
		}
	}
	return toGroupCounts(counts), nil
}

func toGroupCounts(counts map[primitive.ObjectID]int64) []repositories.GroupCount {
	groups := make([]repositories.GroupCount, 0, len(counts))
	for id, n := range counts {
		groups = append(groups, repositories.GroupCount{ID: id, Count: n})
	}
	return groups
}

type fakeTagRepo struct {
	tags map[string]models.Tag
}

func newFakeTagRepo(names ...string) *fakeTagRepo {
	r := &fakeTagRepo{tags: make(map[string]models.Tag)}
	for _, name := range names {
		r.tags[name] = models.Tag{ID: primitive.NewObjectID(), Name: name}
	}
	return r
}

func (r *fakeTagRepo) List(_ context.Context) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(r.tags))
	for _, t := range r.tags {
		tags = append(tags, t)
	}
	return tags, nil
}

func (r *fakeTagRepo) ListByNames(_ context.Context, names []string) ([]models.Tag, error) {
	var tags []models.Tag
	for _, name := range names {
		if t, ok := r.tags[name]; ok {
			tags = append(tags, t)
		}
	}
	return tags, nil
}

func (r *fakeTagRepo) Insert(_ context.Context, tag *models.Tag) error {
	if _, ok := r.tags[tag.Name]; ok {
		return repositories.ErrDuplicate
	}
	if tag.ID.IsZero() {
		tag.ID = primitive.NewObjectID()
	}
	r.tags[tag.Name] = *tag
	return nil
}
