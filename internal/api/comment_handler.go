package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/service"
)

// CommentHandler handles comment-related HTTP requests
type CommentHandler struct {
	comments service.CommentService
	logger   *slog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(comments service.CommentService, logger *slog.Logger) *CommentHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CommentHandler{
		comments: comments,
		logger:   logger.With(slog.String("component", "comment_handler")),
	}
}

// AddComment handles POST /api/comments/{taskId}/comments.
func (h *CommentHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	actor, taskID, ok := handlePrincipalAndPathUUID(w, r, "taskId")
	if !ok {
		return
	}

	var req CreateCommentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	comment, err := h.comments.AddComment(r.Context(), actor, taskID, req.Content)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, commentToResponse(comment))
}

// ListComments handles GET /api/comments/{taskId}.
func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	actor, taskID, ok := handlePrincipalAndPathUUID(w, r, "taskId")
	if !ok {
		return
	}

	comments, err := h.comments.ListComments(r.Context(), actor, taskID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	resp := make([]CommentResponse, 0, len(comments))
	for _, c := range comments {
		resp = append(resp, commentToResponse(c))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// DeleteComment handles DELETE /api/comments/{id}.
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	actor, commentID, ok := handlePrincipalAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.comments.DeleteComment(r.Context(), actor, commentID); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
