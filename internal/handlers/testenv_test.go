package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/taskboard/taskboard-api/internal/auth"
	"github.com/taskboard/taskboard-api/internal/constants"
	"github.com/taskboard/taskboard-api/internal/database"
	"github.com/taskboard/taskboard-api/internal/middleware"
	"github.com/taskboard/taskboard-api/internal/models"
	"github.com/taskboard/taskboard-api/internal/repository"
	"github.com/taskboard/taskboard-api/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	db             *gorm.DB
	authHandler    *AuthHandler
	userHandler    *UserHandler
	projectHandler *ProjectHandler
	taskHandler    *TaskHandler
	userService    *services.UserService
	projectService *services.ProjectService
	taskService    *services.TaskService
}

func setupTestEnv(t *testing.T) testEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)
	auth.Configure("test-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Task{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	userService := services.NewUserService(userRepo)
	authService := services.NewAuthService(userRepo)
	projectService := services.NewProjectService(projectRepo)
	taskService := services.NewTaskService(taskRepo, projectRepo)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return testEnv{
		db:             db,
		authHandler:    NewAuthHandler(authService, userService),
		userHandler:    NewUserHandler(userService),
		projectHandler: NewProjectHandler(projectService),
		taskHandler:    NewTaskHandler(taskService),
		userService:    userService,
		projectService: projectService,
		taskService:    taskService,
	}
}

// router wires the full API surface the way cmd/server does, with a
// cookie session store instead of Redis.
func (env testEnv) router() *gin.Engine {
	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	api := r.Group("/api")

	authRoutes := api.Group("/auth")
	authRoutes.POST("/register", env.authHandler.Register)
	authRoutes.POST("/login", env.authHandler.Login)
	authRoutes.POST("/logout", env.authHandler.Logout)

	users := api.Group("/users")
	users.GET("", env.userHandler.ListUsers)
	users.POST("", env.userHandler.CreateUser)
	users.GET("/me", middleware.RequireAuth(), env.userHandler.GetCurrentUser)
	users.GET("/:id", env.userHandler.GetUser)
	users.PUT("/:id", env.userHandler.UpdateUser)
	users.DELETE("/:id", env.userHandler.DeleteUser)

	projects := api.Group("/projects")
	projects.GET("", env.projectHandler.ListProjects)
	projects.POST("", env.projectHandler.CreateProject)
	projects.GET("/:id", env.projectHandler.GetProject)
	projects.PUT("/:id", env.projectHandler.UpdateProject)
	projects.DELETE("/:id", env.projectHandler.DeleteProject)

	tasks := api.Group("/tasks")
	tasks.GET("", env.taskHandler.ListTasks)
	tasks.POST("", env.taskHandler.CreateTask)
	tasks.GET("/:id", env.taskHandler.GetTask)
	tasks.PUT("/:id", env.taskHandler.UpdateTask)
	tasks.DELETE("/:id", env.taskHandler.DeleteTask)

	return r
}

func doRequest(t *testing.T, r http.Handler, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createTestUser(t *testing.T, db *gorm.DB, username, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		Email:        email,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestProject(t *testing.T, db *gorm.DB, name string, ownerID *uint64) *models.Project {
	t.Helper()

	project := &models.Project{
		Name:        name,
		Description: name + " description",
		UserID:      ownerID,
	}
	require.NoError(t, db.Create(project).Error)
	return project
}

func createTestTask(t *testing.T, db *gorm.DB, title string, projectID *uint64) *models.Task {
	t.Helper()

	task := &models.Task{
		Title:     title,
		Status:    models.DefaultTaskStatus,
		ProjectID: projectID,
	}
	require.NoError(t, db.Create(task).Error)
	return task
}
