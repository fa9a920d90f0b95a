package routes

import (
	"net/http"
	"sort"
	"strings"
)

// methods serves every verb of one path. GET also answers HEAD, OPTIONS
// lists the allowed verbs, anything else is a 405.
type methods map[string]http.HandlerFunc

func (ms methods) allow() string {
	verbs := []string{http.MethodOptions}
	for m := range ms {
		verbs = append(verbs, m)
		if m == http.MethodGet {
			verbs = append(verbs, http.MethodHead)
		}
	}
	sort.Strings(verbs)
	return strings.Join(verbs, ", ")
}

func (ms methods) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	method := r.Method
	if method == http.MethodHead {
		method = http.MethodGet
	}
	if h, ok := ms[method]; ok {
		h(w, r)
		return
	}

	w.Header().Set("Allow", ms.allow())
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	methodNotAllowed(w, r)
}
