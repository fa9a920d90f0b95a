package controllers

import (
	"log/slog"
	"net/http"

	"yatube/app/auth"
	"yatube/app/metrics"
	"yatube/app/services"
)

type commentPayload struct {
	Text *string `json:"text"`
}

// CommentController handles HTTP requests for the comments of one post
type CommentController struct {
	base
	commentService *services.CommentService
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService *services.CommentService, logger *slog.Logger, m *metrics.Metrics) *CommentController {
	return &CommentController{
		base:           newBase(logger, m),
		commentService: commentService,
	}
}

// Index lists the comments of the post in the URL
func (cc *CommentController) Index(w http.ResponseWriter, r *http.Request) {
	postID, err := pathInt(r, "post_id")
	if err != nil {
		cc.sendServiceError(w, r, "comment", err)
		return
	}

	comments, err := cc.commentService.ListComments(postID)
	if err != nil {
		cc.sendServiceError(w, r, "comment", err)
		return
	}
	cc.sendJSON(w, http.StatusOK, comments)
}

// Show returns one comment of the post
func (cc *CommentController) Show(w http.ResponseWriter, r *http.Request) {
	postID, id, err := commentIDs(r)
	if err != nil {
		cc.sendServiceError(w, r, "comment", err)
		return
	}

	comment, err := cc.commentService.GetComment(postID, id)
	if err != nil {
		cc.sendServiceError(w, r, "comment", err)
		return
	}
	cc.sendJSON(w, http.StatusOK, comment)
}

// Create handles adding a comment by the requester to the post
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	requester := auth.IdentityFrom(r.Context())
	postID, err := pathInt(r, "post_id")
	if err != nil {
		cc.sendServiceError(w, r, "comment", err)
		return
	}

	var payload commentPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		if _, authErr := cc.commentService.AuthorizeCreate(requester, postID); authErr != nil {
			cc.sendServiceError(w, r, "comment", authErr)
			return
		}
		cc.sendServiceError(w, r, "comment", malformed(err))
		return
	}

	comment, err := cc.commentService.CreateComment(requester, postID, services.CommentInput{Text: payload.Text})
	if err != nil {
		cc.sendServiceError(w, r, "comment", err)
		return
	}
	cc.sendJSON(w, http.StatusCreated, comment)
}

// Update handles PUT and PATCH on a comment
func (cc *CommentController) Update(w http.ResponseWriter, r *http.Request) {
	requester := auth.IdentityFrom(r.Context())
	postID, id, err := commentIDs(r)
	if err != nil {
		cc.sendServiceError(w, r, "comment", err)
		return
	}

	var payload commentPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		if _, authErr := cc.commentService.Authorize(requester, r.Method, postID, id); authErr != nil {
			cc.sendServiceError(w, r, "comment", authErr)
			return
		}
		cc.sendServiceError(w, r, "comment", malformed(err))
		return
	}

	comment, err := cc.commentService.UpdateComment(requester, r.Method, postID, id, services.CommentInput{Text: payload.Text})
	if err != nil {
		cc.sendServiceError(w, r, "comment", err)
		return
	}
	cc.sendJSON(w, http.StatusOK, comment)
}

// Delete handles deleting a comment
func (cc *CommentController) Delete(w http.ResponseWriter, r *http.Request) {
	postID, id, err := commentIDs(r)
	if err != nil {
		cc.sendServiceError(w, r, "comment", err)
		return
	}

	if err := cc.commentService.DeleteComment(auth.IdentityFrom(r.Context()), postID, id); err != nil {
		cc.sendServiceError(w, r, "comment", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func commentIDs(r *http.Request) (postID, id int, err error) {
	if postID, err = pathInt(r, "post_id"); err != nil {
		return 0, 0, err
	}
	if id, err = pathInt(r, "id"); err != nil {
		return 0, 0, err
	}
	return postID, id, nil
}

func malformed(err error) error {
	return &services.ValidationError{Fields: map[string]string{"non_field_errors": err.Error()}}
}
