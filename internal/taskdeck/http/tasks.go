package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/aussiebroadwan/taskdeck/internal/taskdeck/domain"
	"github.com/aussiebroadwan/taskdeck/internal/taskdeck/service"
	"github.com/aussiebroadwan/taskdeck/pkg/httpx"
	"github.com/aussiebroadwan/taskdeck/pkg/slogx"
)

type TasksHandler struct {
	TaskService *service.TaskService
}

// taskView is the wire shape for a single task. Due dates render as
// plain calendar dates, timestamps as RFC 3339.
type taskView struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Desc        string     `json:"desc,omitempty"`
	Due         *string    `json:"due,omitempty"`
	Priority    string     `json:"priority"`
	Category    string     `json:"category"`
	Done        bool       `json:"done"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func viewOf(t domain.Task) taskView {
	v := taskView{
		ID:          t.ID,
		Title:       t.Title,
		Desc:        t.Desc,
		Priority:    string(t.Priority),
		Category:    string(t.Category),
		Done:        t.Done,
		CreatedAt:   t.CreatedAt,
		CompletedAt: t.CompletedAt,
	}
	if t.Due != nil {
		due := t.Due.Format(time.DateOnly)
		v.Due = &due
	}
	return v
}

// HandleList returns the caller's tasks, optionally narrowed by the
// q, status, priority and category query parameters.
func (h *TasksHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		ErrUnauthorized.WriteError(w)
		return
	}

	query := r.URL.Query()
	filter := domain.TaskFilter{
		Query:  query.Get("q"),
		Status: query.Get("status"),
	}

	if filter.Status != "" && filter.Status != "pending" && filter.Status != "done" {
		ErrValidation.WithDescription("status must be pending or done").WriteError(w)
		return
	}
	if s := query.Get("priority"); s != "" {
		p, err := domain.ParsePriority(s)
		if err != nil || p == domain.PriorityAuto {
			ErrValidation.WithDescription("unknown priority filter").WriteError(w)
			return
		}
		filter.Priority = p
	}
	if s := query.Get("category"); s != "" {
		c, err := domain.ParseCategory(s)
		if err != nil {
			ErrValidation.WithDescription("unknown category filter").WriteError(w)
			return
		}
		filter.Category = c
	}

	tasks, err := h.TaskService.List(ctx, userID, filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	views := make([]taskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, viewOf(t))
	}
	httpx.WriteJSON(w, http.StatusOK, views)
}

type createTaskRequest struct {
	Title    string  `json:"title"`
	Desc     string  `json:"desc"`
	Due      *string `json:"due"`
	Priority string  `json:"priority"`
	Category string  `json:"category"`
}

// HandleCreate adds a new task for the caller.
func (h *TasksHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		ErrUnauthorized.WriteError(w)
		return
	}

	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrValidation.WithDescription("request body must be valid JSON").WriteError(w)
		return
	}

	in := service.CreateTaskInput{
		Title: req.Title,
		Desc:  req.Desc,
	}

	if req.Due != nil && *req.Due != "" {
		due, err := time.Parse(time.DateOnly, *req.Due)
		if err != nil {
			ErrValidation.WithDescription("due must be a YYYY-MM-DD date").WriteError(w)
			return
		}
		in.Due = &due
	}

	priority, err := domain.ParsePriority(req.Priority)
	if err != nil {
		ErrValidation.WithDescription("unknown priority").WriteError(w)
		return
	}
	in.Priority = priority

	category, err := domain.ParseCategory(req.Category)
	if err != nil {
		ErrValidation.WithDescription("unknown category").WriteError(w)
		return
	}
	in.Category = category

	created, err := h.TaskService.Create(ctx, userID, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	log.Info("task created", "user_id", userID, "task_id", created.ID)
	httpx.WriteJSON(w, http.StatusCreated, viewOf(created))
}

// updateTaskRequest distinguishes absent fields from explicit nulls:
// a due of JSON null clears the date, an absent due leaves it alone.
// Due is a bare RawMessage on purpose. encoding/json zeroes a pointer
// field on JSON null before the unmarshaler runs, which would make an
// explicit null look absent; the non-pointer form keeps the null bytes.
type updateTaskRequest struct {
	Title    *string         `json:"title"`
	Desc     *string         `json:"desc"`
	Due      json.RawMessage `json:"due"`
	Priority *string         `json:"priority"`
	Category *string         `json:"category"`
	Done     *bool           `json:"done"`
}

// HandleUpdate patches the addressed task.
func (h *TasksHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		ErrUnauthorized.WriteError(w)
		return
	}

	taskID := r.PathValue("id")
	if taskID == "" {
		ErrValidation.WithDescription("task id is required").WriteError(w)
		return
	}

	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrValidation.WithDescription("request body must be valid JSON").WriteError(w)
		return
	}

	patch := domain.TaskPatch{
		Title: req.Title,
		Desc:  req.Desc,
		Done:  req.Done,
	}

	if req.Due != nil {
		if string(req.Due) == "null" {
			patch.ClearDue = true
		} else {
			var s string
			if err := json.Unmarshal(req.Due, &s); err != nil {
				ErrValidation.WithDescription("due must be a YYYY-MM-DD date or null").WriteError(w)
				return
			}
			due, err := time.Parse(time.DateOnly, s)
			if err != nil {
				ErrValidation.WithDescription("due must be a YYYY-MM-DD date or null").WriteError(w)
				return
			}
			patch.Due = &due
		}
	}

	if req.Priority != nil {
		p, err := domain.ParsePriority(*req.Priority)
		if err != nil || p == domain.PriorityAuto {
			ErrValidation.WithDescription("priority must be High, Medium or Low").WriteError(w)
			return
		}
		patch.Priority = &p
	}

	if req.Category != nil {
		c, err := domain.ParseCategory(*req.Category)
		if err != nil {
			ErrValidation.WithDescription("unknown category").WriteError(w)
			return
		}
		patch.Category = &c
	}

	updated, err := h.TaskService.Update(ctx, userID, taskID, patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, viewOf(updated))
}

// HandleDelete removes the addressed task. Deleting a missing task
// still answers 204 so retries stay safe.
func (h *TasksHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		ErrUnauthorized.WriteError(w)
		return
	}

	taskID := r.PathValue("id")
	if taskID == "" {
		ErrValidation.WithDescription("task id is required").WriteError(w)
		return
	}

	if err := h.TaskService.Delete(ctx, userID, taskID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
