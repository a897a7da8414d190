package audit

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
	// Authentication is handled by middleware; we just ensure it ran.
	if _, ok := auth.UserFromContext(r.Context()); !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	q := r.URL.Query()
	filter := Filter{}
	filter.Actor = q.Get("actor")
	filter.Action = q.Get("action")
	if outcome := q.Get("outcome"); outcome != "" {
		filter.Outcome = Outcome(outcome)
	}
	filter.Tag = q.Get("tag")
	if sinceStr := q.Get("since"); sinceStr != "" {
		if t, err := time.Parse(time.RFC3339, sinceStr); err == nil {
			filter.Since = t
		}
	}
	if untilStr := q.Get("until"); untilStr != "" {
		if t, err := time.Parse(time.RFC3339, untilStr); err == nil {
			filter.Until = t
		}
	}
	if limitStr := q.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil {
			filter.Limit = l
		}
	}

	events, err := h.Store.List(r.Context(), filter)
	if err != nil {
		h.Logger.Error("list audit events", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(events)
}
