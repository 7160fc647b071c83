package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"taskboard/backend/handlers"
	"taskboard/backend/logging"
	"taskboard/backend/middleware"
	"taskboard/backend/repositories"
	"taskboard/backend/services"
)

// createUniqueIndex enforces the uniqueness constraints the domain
// relies on: Team.name, User.email and Tag.name.
func createUniqueIndex(collection *mongo.Collection, field string) error {
	indexModel := mongo.IndexModel{
		Keys:    bson.M{field: 1},
		Options: options.Index().SetUnique(true),
	}
	_, err := collection.Indexes().CreateOne(context.TODO(), indexModel)
	if err != nil {
		return fmt.Errorf("failed to create unique index on %s.%s: %v", collection.Name(), field, err)
	}
	return nil
}

func main() {
	logging.InitLogger()
	logging.Logger.Info("Event ID: SERVICE_START, Description: Starting Taskboard API...")

	if err := godotenv.Load(".env"); err != nil {
		logging.Logger.Warnf("Event ID: ENV_LOAD_WARNING, Description: No .env file loaded: %v", err)
	}

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	mongoDBName := os.Getenv("MONGO_DB_NAME")
	if mongoDBName == "" {
		mongoDBName = "taskboard"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		logging.Logger.Fatalf("Event ID: DB_CONNECTION_FAILED, Description: Database connection failed: %v", err)
	}
	defer client.Disconnect(context.TODO())

	if err := client.Ping(ctx, nil); err != nil {
		logging.Logger.Fatalf("Event ID: DB_PING_FAILED, Description: MongoDB connection ping error: %v", err)
	}
	logging.Logger.Infof("Event ID: DB_CONNECTED, Description: Successfully connected to MongoDB at %s.", mongoURI)

	db := client.Database(mongoDBName)
	usersCollection := db.Collection("users")
	teamsCollection := db.Collection("teams")
	projectsCollection := db.Collection("projects")
	tasksCollection := db.Collection("tasks")
	tagsCollection := db.Collection("tags")

	for _, idx := range []struct {
		collection *mongo.Collection
		field      string
	}{
		{usersCollection, "email"},
		{teamsCollection, "name"},
		{tagsCollection, "name"},
	} {
		if err := createUniqueIndex(idx.collection, idx.field); err != nil {
			logging.Logger.Fatalf("Event ID: DB_INDEX_FAILED, Description: %v", err)
		}
	}

	captchaBreaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "recaptcha-cb",
		MaxRequests: 1,
		Timeout:     5 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: Circuit Breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})
	httpClient := &http.Client{Timeout: 10 * time.Second}

	userRepo := repositories.NewMongoUserRepository(usersCollection)
	teamRepo := repositories.NewMongoTeamRepository(teamsCollection, projectsCollection)
	projectRepo := repositories.NewMongoProjectRepository(projectsCollection, tasksCollection)
	taskRepo := repositories.NewMongoTaskRepository(tasksCollection)
	tagRepo := repositories.NewMongoTagRepository(tagsCollection)

	userService := services.NewUserService(userRepo, teamRepo, httpClient, captchaBreaker)
	teamService := services.NewTeamService(teamRepo, userRepo)
	projectService := services.NewProjectService(projectRepo, teamRepo)
	taskService := services.NewTaskService(taskRepo, projectRepo, teamRepo, tagRepo)
	tagService := services.NewTagService(tagRepo)
	dashboardService := services.NewDashboardService(projectRepo, taskRepo, teamRepo, userRepo)

	userHandler := handlers.NewUserHandler(userService)
	teamHandler := handlers.NewTeamHandler(teamService)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)
	tagHandler := handlers.NewTagHandler(tagService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	r := mux.NewRouter()

	auth := r.PathPrefix("/api/auth").Subrouter()
	auth.HandleFunc("/register", userHandler.Register).Methods("POST")
	auth.HandleFunc("/login", userHandler.Login).Methods("POST")
	auth.HandleFunc("/forgot-password", userHandler.ForgotPassword).Methods("POST")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.JWTAuthMiddleware)

	api.HandleFunc("/team", teamHandler.ListMyTeams).Methods("GET")
	api.HandleFunc("/team/users/all", userHandler.ListUsers).Methods("GET")
	api.HandleFunc("/team/create", teamHandler.CreateTeam).Methods("POST")
	api.HandleFunc("/team/add-member", teamHandler.AddMember).Methods("POST")
	api.HandleFunc("/team/{id}", teamHandler.GetTeam).Methods("GET")
	api.HandleFunc("/team/{id}", teamHandler.DeleteTeam).Methods("DELETE")

	api.HandleFunc("/project/create", projectHandler.CreateProject).Methods("POST")
	api.HandleFunc("/project", projectHandler.ListProjects).Methods("GET")
	api.HandleFunc("/project/team/{teamId}", projectHandler.ListProjectsByTeam).Methods("GET")
	api.HandleFunc("/project/{id}", projectHandler.GetProject).Methods("GET")
	api.HandleFunc("/project/{id}", projectHandler.UpdateProject).Methods("PATCH")
	api.HandleFunc("/project/{id}", projectHandler.DeleteProject).Methods("DELETE")

	api.HandleFunc("/task/create", taskHandler.CreateTask).Methods("POST")
	api.HandleFunc("/task", taskHandler.ListMyTasks).Methods("GET")
	api.HandleFunc("/task/project/{projectId}", taskHandler.ListTasksByProject).Methods("GET")
	api.HandleFunc("/task/update/{taskId}", taskHandler.UpdateTask).Methods("PATCH")
	api.HandleFunc("/task/{taskId}", taskHandler.GetTask).Methods("GET")
	api.HandleFunc("/task/{id}", taskHandler.DeleteTask).Methods("DELETE")

	api.HandleFunc("/tag/create", tagHandler.CreateTag).Methods("POST")
	api.HandleFunc("/tag", tagHandler.ListTags).Methods("GET")

	api.HandleFunc("/dashboard/stats", dashboardHandler.GetStats).Methods("GET")
	api.HandleFunc("/reports/overview", dashboardHandler.GetOverview).Methods("GET")
	api.HandleFunc("/users", userHandler.ListUsers).Methods("GET")

	corsRouter := enableCORS(r)

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "4000"
	}

	srv := &http.Server{
		Addr:         ":" + serverPort,
		Handler:      corsRouter,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	logging.Logger.Infof("Event ID: SERVER_START_INFO, Description: Server running on http://localhost:%s", serverPort)
	if err := srv.ListenAndServe(); err != nil {
		logging.Logger.Fatalf("Event ID: SERVER_FATAL_ERROR, Description: Server failed to start: %v", err)
	}
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
