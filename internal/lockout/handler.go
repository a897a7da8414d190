package lockout

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"log/slog"

	"authcore/internal/auth"
)

type ListHandler struct {
	Store  *Store
	Logger *slog.Logger
}

func (h *ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := auth.UserFromContext(r.Context()); !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	q := r.URL.Query()
	filter := ListFilter{}
	filter.Email = q.Get("email")
	if q.Get("active") == "true" {
		filter.ActiveAt = time.Now().UTC()
	}
	if limitStr := q.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil {
			filter.Limit = l
		}
	}

	lockouts, err := h.Store.List(r.Context(), filter)
	if err != nil {
		h.Logger.Error("list lockouts", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(lockouts)
}
