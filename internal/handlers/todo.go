package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"todo_service/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

// CreateTodoRequest is the payload for POST /create.
type CreateTodoRequest struct {
	Title string `json:"title" binding:"required" example:"buy milk"`
	// RFC3339, 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD'
	Deadline string `json:"deadline" binding:"required" example:"2025-01-01"`
}

// UpdateTodoRequest is the payload for PUT /update/{id}. Omitted fields are left unchanged.
type UpdateTodoRequest struct {
	Title       *string `json:"title,omitempty" example:"buy oat milk"`
	Deadline    *string `json:"deadline,omitempty" example:"2025-01-02 18:00:00"`
	IsCompleted *bool   `json:"isCompleted,omitempty" example:"true"`
}

// parseDeadline accepts multiple formats and normalizes to UTC.
func parseDeadline(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, &service.ValidationError{
		Field:  "deadline",
		Reason: fmt.Sprintf("%q is not RFC3339, 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD'", s),
	}
}

// parseID reads a positive integer path parameter. Writes 400 and returns false otherwise.
func (h *Handler) parseID(c *gin.Context) (int64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		h.logAndJSONError(c, http.StatusBadRequest, errInvalidID, "todo_bad_id", fmt.Errorf("bad id %q", raw))
		return 0, false
	}
	return id, true
}

// mustUser returns the authenticated caller. Routes using it sit behind authMiddleware.
func (h *Handler) mustUser(c *gin.Context) (int64, bool) {
	u, ok := currentUser(c)
	if !ok {
		h.logAndJSONError(c, http.StatusInternalServerError, errInternal, "todo_no_user_in_context",
			fmt.Errorf("route %s reached without auth", c.FullPath()))
		return 0, false
	}
	return u.ID, true
}

// @Summary      Create todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Param        body  body      CreateTodoRequest  true  "New todo"
// @Success      201   {object}  models.Todo
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string  "user not found"
// @Failure      500   {object}  map[string]string
// @Router       /create [post]
// @Security     BearerAuth
func (h *Handler) createTodo(c *gin.Context) {
	ownerID, ok := h.mustUser(c)
	if !ok {
		return
	}
	var req CreateTodoRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		h.respondError(c, "todo_create_failed", err)
		return
	}

	todo, err := h.services.Todos.Create(c.Request.Context(), ownerID, service.NewTodo{
		Title:    req.Title,
		Deadline: deadline,
	})
	if err != nil {
		h.respondError(c, "todo_create_failed", err, "user_id", ownerID)
		return
	}
	c.JSON(http.StatusCreated, todo)
}

// @Summary      List todos
// @Description  Returns every todo owned by the caller, oldest first.
// @Tags         todos
// @Produce      json
// @Success      200  {array}   models.Todo
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /getAll [get]
// @Security     BearerAuth
func (h *Handler) listTodos(c *gin.Context) {
	ownerID, ok := h.mustUser(c)
	if !ok {
		return
	}
	todos, err := h.services.Todos.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		h.respondError(c, "todo_list_failed", err, "user_id", ownerID)
		return
	}
	c.JSON(http.StatusOK, todos)
}

// @Summary      Get todo
// @Tags         todos
// @Produce      json
// @Param        id   path      int  true  "Todo ID"
// @Success      200  {object}  models.Todo
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /getAll/{id} [get]
// @Security     BearerAuth
func (h *Handler) getTodo(c *gin.Context) {
	ownerID, ok := h.mustUser(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	todo, err := h.services.Todos.Get(c.Request.Context(), ownerID, id)
	if err != nil {
		h.respondError(c, "todo_get_failed", err, "user_id", ownerID, "todo_id", id)
		return
	}
	c.JSON(http.StatusOK, todo)
}

// @Summary      Update todo
// @Description  Partial update. Setting isCompleted to true stamps completedAt; false clears it.
// @Tags         todos
// @Accept       json
// @Produce      json
// @Param        id    path      int                true  "Todo ID"
// @Param        body  body      UpdateTodoRequest  true  "Fields to change"
// @Success      202   {object}  models.Todo
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /update/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateTodo(c *gin.Context) {
	ownerID, ok := h.mustUser(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req UpdateTodoRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	patch := service.TodoPatch{Title: req.Title, IsCompleted: req.IsCompleted}
	if req.Deadline != nil {
		deadline, err := parseDeadline(*req.Deadline)
		if err != nil {
			h.respondError(c, "todo_update_failed", err)
			return
		}
		patch.Deadline = &deadline
	}

	todo, err := h.services.Todos.Update(c.Request.Context(), ownerID, id, patch)
	if err != nil {
		h.respondError(c, "todo_update_failed", err, "user_id", ownerID, "todo_id", id)
		return
	}
	c.JSON(http.StatusAccepted, todo)
}

// @Summary      Delete todo
// @Tags         todos
// @Param        id   path  int  true  "Todo ID"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /delete/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteTodo(c *gin.Context) {
	ownerID, ok := h.mustUser(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	if err := h.services.Todos.Delete(c.Request.Context(), ownerID, id); err != nil {
		h.respondError(c, "todo_delete_failed", err, "user_id", ownerID, "todo_id", id)
		return
	}
	c.Status(http.StatusNoContent)
}
