// Package routes wires controllers, services and middleware into the HTTP handler.
package routes

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"yatube/app/auth"
	"yatube/app/controllers"
	"yatube/app/metrics"
	"yatube/app/middleware"
	"yatube/app/repositories"
	"yatube/app/services"

	"github.com/gorilla/mux"
)

// Deps are the collaborators the routes are built from. Metrics may be nil
// to disable instrumentation and the /metrics endpoint.
type Deps struct {
	Store       *repositories.Store
	Tokens      *auth.TokenIssuer
	Logger      *slog.Logger
	Metrics     *metrics.Metrics
	MetricsPath string
}

// SetupRoutes defines the application's routes and returns the root handler.
func SetupRoutes(deps Deps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	posts := deps.Store.Posts()
	comments := deps.Store.Comments()
	groups := deps.Store.Groups()

	postController := controllers.NewPostController(services.NewPostService(posts, groups), logger, deps.Metrics)
	commentController := controllers.NewCommentController(services.NewCommentService(comments, posts), logger, deps.Metrics)
	groupController := controllers.NewGroupController(services.NewGroupService(groups), logger, deps.Metrics)
	authController := controllers.NewAuthController(services.NewUserService(deps.Store.Users(), deps.Tokens), logger, deps.Metrics)

	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(notFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	// Apply global middleware
	if deps.Metrics != nil {
		router.Use(middleware.Metrics(deps.Metrics))
	}
	router.Use(middleware.ContentTypeJSON)

	router.HandleFunc("/healthz", health(deps.Store)).Methods(http.MethodGet, http.MethodHead)
	if deps.Metrics != nil {
		path := deps.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		router.Handle(path, deps.Metrics.Handler()).Methods(http.MethodGet)
	}

	// Each path is one route so an unknown verb on it is a 405, not a 404.
	// Token endpoints never look at the Authorization header.
	router.Handle("/api/v1/jwt/create", methods{http.MethodPost: authController.CreateToken})
	router.Handle("/api/v1/jwt/refresh", methods{http.MethodPost: authController.RefreshToken})
	router.Handle("/api/v1/jwt/verify", methods{http.MethodPost: authController.VerifyToken})

	authenticate := middleware.Authenticate(deps.Tokens, deps.Metrics, logger)
	api := func(path string, ms methods) {
		router.Handle("/api/v1"+path, authenticate(ms))
	}

	// Posts API endpoints
	api("/posts", methods{
		http.MethodGet:  postController.Index,
		http.MethodPost: postController.Create,
	})
	api("/posts/{id}", methods{
		http.MethodGet:    postController.Show,
		http.MethodPut:    postController.Update,
		http.MethodPatch:  postController.Update,
		http.MethodDelete: postController.Delete,
	})

	// Groups API endpoints
	api("/groups", methods{http.MethodGet: groupController.Index})
	api("/groups/{id}", methods{http.MethodGet: groupController.Show})

	// Comments API endpoints
	api("/posts/{post_id}/comments", methods{
		http.MethodGet:  commentController.Index,
		http.MethodPost: commentController.Create,
	})
	api("/posts/{post_id}/comments/{id}", methods{
		http.MethodGet:    commentController.Show,
		http.MethodPut:    commentController.Update,
		http.MethodPatch:  commentController.Update,
		http.MethodDelete: commentController.Delete,
	})

	var handler http.Handler = router
	handler = middleware.Recoverer(logger)(handler)
	handler = middleware.Logger(logger)(handler)
	handler = middleware.RequestID(handler)
	return middleware.TrimTrailingSlash(handler)
}

func health(store *repositories.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, code := "ok", http.StatusOK
		if store.DB().IsClosed() {
			status, code = "unavailable", http.StatusServiceUnavailable
		}
		writeJSON(w, code, map[string]string{"status": status})
	}
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method \"" + r.Method + "\" not allowed"})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
