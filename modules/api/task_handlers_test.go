package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	taskdomain "github.com/example/taskboard/domain/task"
	domain "github.com/example/taskboard/domain/user"
	"github.com/example/taskboard/modules/task"
	"github.com/gofiber/fiber/v2"
)

// mockTaskPort implements task.TaskPort and records the requests it
// receives.
type mockTaskPort struct {
	createReq *task.CreateTaskRequest
	listReq   *task.ListTasksRequest
	updateReq *task.UpdateTaskRequest
	deleteID  string
	err       error
}

func (m *mockTaskPort) Create(_ context.Context, req task.CreateTaskRequest) (taskdomain.View, error) {
	m.createReq = &req
	return taskdomain.View{ID: "task-1", Title: req.Title}, m.err
}

func (m *mockTaskPort) Get(_ context.Context, id string) (taskdomain.View, error) {
	return taskdomain.View{ID: id}, m.err
}

func (m *mockTaskPort) List(_ context.Context, req task.ListTasksRequest) ([]taskdomain.View, error) {
	m.listReq = &req
	return []taskdomain.View{}, m.err
}

func (m *mockTaskPort) Update(_ context.Context, req task.UpdateTaskRequest) (taskdomain.View, error) {
	m.updateReq = &req
	return taskdomain.View{ID: req.ID}, m.err
}

func (m *mockTaskPort) Delete(_ context.Context, id string) error {
	m.deleteID = id
	return m.err
}

func newTestApp(taskPort task.TaskPort) *fiber.App {
	authPort := &mockAuthPort{
		validateTokenFunc: func(context.Context, string) (*domain.Claims, error) {
			return &domain.Claims{UserID: "caller-1", Email: "caller@example.com"}, nil
		},
	}
	handlers := NewHandlers(authPort, taskPort)

	app := fiber.New()
	tasks := app.Group("/api/tasks", AuthMiddleware(authPort))
	tasks.Post("/", handlers.CreateTask)
	tasks.Get("/", handlers.ListTasks)
	tasks.Get("/:id", handlers.GetTask)
	tasks.Put("/:id", handlers.UpdateTask)
	tasks.Delete("/:id", handlers.DeleteTask)
	return app
}

func authedRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set("Authorization", "Bearer token")
	return req
}

func TestCreateTask_CreatorComesFromClaims(t *testing.T) {
	mock := &mockTaskPort{}
	app := newTestApp(mock)

	// The body tries to spoof a creator; the claims win
	body := `{"title":"T","description":"D","dueDate":"2026-09-01T00:00:00Z","assignedToId":"u2","creatorId":"spoofed"}`
	resp, err := app.Test(authedRequest("POST", "/api/tasks/", body), -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Errorf("status = %v, want %v", resp.StatusCode, http.StatusCreated)
	}
	if mock.createReq == nil {
		t.Fatal("Create was not called")
	}
	if mock.createReq.CreatorID != "caller-1" {
		t.Errorf("CreatorID = %q, want caller-1", mock.createReq.CreatorID)
	}
	if mock.createReq.AssignedToID != "u2" {
		t.Errorf("AssignedToID = %q, want u2", mock.createReq.AssignedToID)
	}
}

func TestListTasks_QueryParams(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  task.ListTasksRequest
	}{
		{
			name:  "all params",
			query: "?status=To+Do&priority=High&assignedTo=u1&creator=u2&overdue=true&sortBy=createdAt&order=desc",
			want: task.ListTasksRequest{
				Status:       "To Do",
				Priority:     "High",
				AssignedToID: "u1",
				CreatorID:    "u2",
				Overdue:      true,
				SortBy:       "createdAt",
				Order:        "desc",
			},
		},
		{
			name:  "overdue requires literal true",
			query: "?overdue=1",
			want:  task.ListTasksRequest{},
		},
		{
			name:  "no params",
			query: "",
			want:  task.ListTasksRequest{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockTaskPort{}
			app := newTestApp(mock)

			resp, err := app.Test(authedRequest("GET", "/api/tasks/"+tt.query, ""), -1)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				t.Errorf("status = %v, want %v", resp.StatusCode, http.StatusOK)
			}
			if mock.listReq == nil {
				t.Fatal("List was not called")
			}
			if *mock.listReq != tt.want {
				t.Errorf("ListTasksRequest = %+v, want %+v", *mock.listReq, tt.want)
			}
		})
	}
}

func TestUpdateTask_OnlySuppliedFieldsForwarded(t *testing.T) {
	mock := &mockTaskPort{}
	app := newTestApp(mock)

	resp, err := app.Test(authedRequest("PUT", "/api/tasks/task-5", `{"status":"Review"}`), -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %v, want %v", resp.StatusCode, http.StatusOK)
	}
	if mock.updateReq == nil {
		t.Fatal("Update was not called")
	}
	if mock.updateReq.ID != "task-5" {
		t.Errorf("ID = %q, want task-5", mock.updateReq.ID)
	}
	if mock.updateReq.Status == nil || *mock.updateReq.Status != "Review" {
		t.Errorf("Status = %v, want Review", mock.updateReq.Status)
	}
	if mock.updateReq.Title != nil || mock.updateReq.AssignedToID != nil {
		t.Errorf("absent fields should stay nil: %+v", mock.updateReq)
	}
}

func TestDeleteTask_NoContent(t *testing.T) {
	mock := &mockTaskPort{}
	app := newTestApp(mock)

	resp, err := app.Test(authedRequest("DELETE", "/api/tasks/task-9", ""), -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("status = %v, want %v", resp.StatusCode, http.StatusNoContent)
	}
	if mock.deleteID != "task-9" {
		t.Errorf("deleted ID = %q, want task-9", mock.deleteID)
	}
}

func TestTaskErrors_MapToStatuses(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "not found",
			err:        errors.New("task not found"),
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "validation",
			err:        errors.New("title is required"),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unexpected",
			err:        errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockTaskPort{err: tt.err}
			app := newTestApp(mock)

			resp, err := app.Test(authedRequest("GET", "/api/tasks/task-1", ""), -1)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %v, want %v", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}
