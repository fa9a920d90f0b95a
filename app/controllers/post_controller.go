package controllers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"yatube/app/auth"
	"yatube/app/metrics"
	"yatube/app/models"
	"yatube/app/services"
)

// postPayload is the writable part of a post body. Group stays raw so an
// absent field can be told apart from an explicit null.
type postPayload struct {
	Text  *string         `json:"text"`
	Group json.RawMessage `json:"group"`
}

// postPage is the paginated list response.
type postPage struct {
	Count    int            `json:"count"`
	Next     *string        `json:"next"`
	Previous *string        `json:"previous"`
	Results  []*models.Post `json:"results"`
}

// PostController handles HTTP requests for posts
type PostController struct {
	base
	postService *services.PostService
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService, logger *slog.Logger, m *metrics.Metrics) *PostController {
	return &PostController{
		base:        newBase(logger, m),
		postService: postService,
	}
}

// MaxPageLimit caps ?limit= so a page never grows past what one request
// should carry.
const MaxPageLimit = 1000

// Index lists posts. With ?limit= the response is paginated.
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if query.Get("limit") == "" {
		posts, err := pc.postService.ListPosts()
		if err != nil {
			pc.sendServiceError(w, r, "post", err)
			return
		}
		pc.sendJSON(w, http.StatusOK, posts)
		return
	}

	limit, err := strconv.Atoi(query.Get("limit"))
	if err != nil || limit <= 0 {
		pc.sendServiceError(w, r, "post", &services.ValidationError{Fields: map[string]string{"limit": "must be a positive integer"}})
		return
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	offset := 0
	if raw := query.Get("offset"); raw != "" {
		offset, err = strconv.Atoi(raw)
		if err != nil || offset < 0 {
			pc.sendServiceError(w, r, "post", &services.ValidationError{Fields: map[string]string{"offset": "must be a non-negative integer"}})
			return
		}
	}

	posts, count, err := pc.postService.ListPostsPage(limit, offset)
	if err != nil {
		pc.sendServiceError(w, r, "post", err)
		return
	}

	page := postPage{Count: count, Results: posts}
	if offset < count && limit < count-offset {
		page.Next = pageLink(r, limit, offset+limit)
	}
	if offset > 0 {
		prev := offset - limit
		if prev < 0 {
			prev = 0
		}
		page.Previous = pageLink(r, limit, prev)
	}
	pc.sendJSON(w, http.StatusOK, page)
}

// Show handles displaying a single post
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		pc.sendServiceError(w, r, "post", err)
		return
	}

	post, err := pc.postService.GetPost(id)
	if err != nil {
		pc.sendServiceError(w, r, "post", err)
		return
	}
	pc.sendJSON(w, http.StatusOK, post)
}

// Create handles creating a new post authored by the requester
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	requester := auth.IdentityFrom(r.Context())

	in, err := pc.decode(w, r)
	if err != nil {
		if authErr := pc.postService.AuthorizeCreate(requester); authErr != nil {
			err = authErr
		}
		pc.sendServiceError(w, r, "post", err)
		return
	}

	post, err := pc.postService.CreatePost(requester, in)
	if err != nil {
		pc.sendServiceError(w, r, "post", err)
		return
	}
	pc.sendJSON(w, http.StatusCreated, post)
}

// Update handles PUT and PATCH on a post
func (pc *PostController) Update(w http.ResponseWriter, r *http.Request) {
	requester := auth.IdentityFrom(r.Context())
	id, err := pathInt(r, "id")
	if err != nil {
		pc.sendServiceError(w, r, "post", err)
		return
	}

	in, err := pc.decode(w, r)
	if err != nil {
		if _, authErr := pc.postService.Authorize(requester, r.Method, id); authErr != nil {
			err = authErr
		}
		pc.sendServiceError(w, r, "post", err)
		return
	}

	post, err := pc.postService.UpdatePost(requester, r.Method, id, in)
	if err != nil {
		pc.sendServiceError(w, r, "post", err)
		return
	}
	pc.sendJSON(w, http.StatusOK, post)
}

// Delete handles deleting a post and its comments
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		pc.sendServiceError(w, r, "post", err)
		return
	}

	if err := pc.postService.DeletePost(auth.IdentityFrom(r.Context()), id); err != nil {
		pc.sendServiceError(w, r, "post", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (pc *PostController) decode(w http.ResponseWriter, r *http.Request) (services.PostInput, error) {
	var payload postPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		return services.PostInput{}, malformed(err)
	}

	in := services.PostInput{Text: payload.Text}
	if payload.Group == nil {
		return in, nil
	}

	in.GroupSet = true
	group, err := parseGroupRef(payload.Group)
	if err != nil {
		return services.PostInput{}, &services.ValidationError{Fields: map[string]string{"group": err.Error()}}
	}
	in.Group = group
	return in, nil
}

// parseGroupRef accepts null, a number or a numeric string.
func parseGroupRef(raw json.RawMessage) (*int, error) {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}

	switch ref := v.(type) {
	case nil:
		return nil, nil
	case float64:
		if ref != float64(int(ref)) {
			return nil, fmt.Errorf("incorrect type: expected pk value, received %v", ref)
		}
		id := int(ref)
		return &id, nil
	case string:
		id, err := strconv.Atoi(ref)
		if err != nil {
			return nil, fmt.Errorf("incorrect type: expected pk value, received %q", ref)
		}
		return &id, nil
	default:
		return nil, fmt.Errorf("incorrect type: expected pk value, received %T", ref)
	}
}

func pageLink(r *http.Request, limit, offset int) *string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if fwd := r.Header.Get("X-Forwarded-Proto"); fwd != "" {
		scheme = fwd
	}

	q := r.URL.Query()
	q.Set("limit", strconv.Itoa(limit))
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	} else {
		q.Del("offset")
	}

	u := url.URL{Scheme: scheme, Host: r.Host, Path: r.URL.Path, RawQuery: q.Encode()}
	link := u.String()
	return &link
}
