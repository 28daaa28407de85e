package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/taskboard/taskboard-api/internal/dto"
	"github.com/taskboard/taskboard-api/internal/models"
)

func TestTaskHandler_CreateTask_UnknownProjectLeavesUnattached(t *testing.T) {
	env := setupTestEnv(t)

	payload := map[string]any{
		"title":     "Orphan task",
		"projectId": 999,
	}
	w := doRequest(t, env.router(), http.MethodPost, "/api/tasks", payload)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.TaskDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Nil(t, response.ProjectID, "unknown project ids are dropped, not rejected")
	require.Nil(t, response.ProjectName)
}

func TestTaskHandler_CreateTask_AttachesExistingProject(t *testing.T) {
	env := setupTestEnv(t)
	project := createTestProject(t, env.db, "Personal", nil)

	payload := map[string]any{
		"title":       "Buy groceries",
		"description": "Milk, Bread, Eggs",
		"projectId":   project.ID,
	}
	w := doRequest(t, env.router(), http.MethodPost, "/api/tasks", payload)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.TaskDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotNil(t, response.ProjectID)
	require.Equal(t, project.ID, *response.ProjectID)
	require.NotNil(t, response.ProjectName)
	require.Equal(t, "Personal", *response.ProjectName)
}

func TestTaskHandler_CreateTask_DefaultStatus(t *testing.T) {
	env := setupTestEnv(t)

	w := doRequest(t, env.router(), http.MethodPost, "/api/tasks", map[string]any{
		"title": "No status given",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.TaskDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "pending", response.Status)
}

func TestTaskHandler_CreateTask_StatusIsFreeForm(t *testing.T) {
	env := setupTestEnv(t)

	w := doRequest(t, env.router(), http.MethodPost, "/api/tasks", map[string]any{
		"title":  "Unusual status",
		"status": "someday maybe",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.TaskDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "someday maybe", response.Status)
}

func TestTaskHandler_UpdateTask_ReassignsProject(t *testing.T) {
	env := setupTestEnv(t)

	personal := createTestProject(t, env.db, "Personal", nil)
	work := createTestProject(t, env.db, "Work", nil)
	task := createTestTask(t, env.db, "Movable task", &personal.ID)

	payload := map[string]any{
		"title":     "Movable task",
		"status":    "in progress",
		"projectId": work.ID,
	}
	w := doRequest(t, env.router(), http.MethodPut, fmt.Sprintf("/api/tasks/%d", task.ID), payload)
	require.Equal(t, http.StatusOK, w.Code)

	// A subsequent read reflects the new attachment.
	w = doRequest(t, env.router(), http.MethodGet, fmt.Sprintf("/api/tasks/%d", task.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.TaskDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotNil(t, response.ProjectID)
	require.Equal(t, work.ID, *response.ProjectID)
	require.NotNil(t, response.ProjectName)
	require.Equal(t, "Work", *response.ProjectName)
	require.Equal(t, "in progress", response.Status)
}

func TestTaskHandler_UpdateTask_UnknownProjectDetaches(t *testing.T) {
	env := setupTestEnv(t)

	personal := createTestProject(t, env.db, "Personal", nil)
	task := createTestTask(t, env.db, "Drifting task", &personal.ID)

	payload := map[string]any{
		"title":     "Drifting task",
		"projectId": 999,
	}
	w := doRequest(t, env.router(), http.MethodPut, fmt.Sprintf("/api/tasks/%d", task.ID), payload)
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.TaskDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Nil(t, response.ProjectID)
	require.Nil(t, response.ProjectName)
}

func TestTaskHandler_UpdateTask_NotFound(t *testing.T) {
	env := setupTestEnv(t)

	payload := map[string]any{"title": "Ghost"}
	w := doRequest(t, env.router(), http.MethodPut, "/api/tasks/999", payload)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestTaskHandler_GetTask_NotFound(t *testing.T) {
	env := setupTestEnv(t)

	w := doRequest(t, env.router(), http.MethodGet, "/api/tasks/999", nil)

	require.Equal(t, http.StatusNotFound, w.Code)
	require.Zero(t, w.Body.Len())
}

func TestTaskHandler_RoundTrip(t *testing.T) {
	env := setupTestEnv(t)
	project := createTestProject(t, env.db, "Personal", nil)

	payload := map[string]any{
		"title":       "Round trip",
		"description": "Persist then read back",
		"status":      "in progress",
		"projectId":   project.ID,
	}
	w := doRequest(t, env.router(), http.MethodPost, "/api/tasks", payload)
	require.Equal(t, http.StatusOK, w.Code)

	var created dto.TaskDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotZero(t, created.ID)
	require.False(t, created.CreatedAt.IsZero())

	w = doRequest(t, env.router(), http.MethodGet, fmt.Sprintf("/api/tasks/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var fetched dto.TaskDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	require.Equal(t, created, fetched, "server-assigned fields must be stable across reads")
}

func TestTaskHandler_ListTasks(t *testing.T) {
	env := setupTestEnv(t)

	project := createTestProject(t, env.db, "Personal", nil)
	createTestTask(t, env.db, "First", &project.ID)
	createTestTask(t, env.db, "Second", nil)

	w := doRequest(t, env.router(), http.MethodGet, "/api/tasks", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response []dto.TaskDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response, 2)
	require.NotNil(t, response[0].ProjectName)
	require.Equal(t, "Personal", *response[0].ProjectName)
	require.Nil(t, response[1].ProjectID)
}

func TestTaskHandler_ListTasks_Paginated(t *testing.T) {
	env := setupTestEnv(t)

	for i := 0; i < 5; i++ {
		createTestTask(t, env.db, fmt.Sprintf("Task %d", i), nil)
	}

	w := doRequest(t, env.router(), http.MethodGet, "/api/tasks?page=2&limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response []dto.TaskDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response, 2)
	require.Equal(t, "Task 2", response[0].Title)
}

func TestTaskHandler_DeleteTask(t *testing.T) {
	env := setupTestEnv(t)
	task := createTestTask(t, env.db, "Short lived", nil)

	w := doRequest(t, env.router(), http.MethodDelete, fmt.Sprintf("/api/tasks/%d", task.ID), nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.Task{}).Count(&count).Error)
	require.Zero(t, count)
}
