package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"log/slog"

	"github.com/go-playground/validator/v10"

	"authcore/internal/metrics"
	"authcore/internal/stats"
)

var validate = validator.New()

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	SessionToken string `json:"session_token"`
	User         *User  `json:"user"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

type LoginHandler struct {
	Service *Service
	Logger  *slog.Logger
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.Email != "" && req.Password != "" {
		// Empty fields fall through so the service reports its own
		// invalid-argument error; here we only reject bad shapes.
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid email address")
			return
		}
	}
	ctx := WithRemoteAddr(r.Context(), clientAddr(r))

	user, err := h.Service.Login(ctx, req.Email, req.Password)
	switch {
	case errors.Is(err, ErrMissingCredentials):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, ErrLockedOut):
		metrics.LoginAttempts.WithLabelValues("locked_out").Inc()
		writeError(w, http.StatusTooManyRequests, err.Error())
		return
	case err != nil:
		h.Logger.Error("login", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if user == nil {
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	sessionToken, err := h.Service.CreateSession(ctx, user.ID)
	if err != nil {
		h.Logger.Error("create session", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	access, err := h.Service.IssueAccessToken(user)
	if err != nil {
		h.Logger.Error("issue access token", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	metrics.SessionsCreated.Inc()
	h.Logger.Info("login", "email", user.Email, "role", user.Role)
	writeJSON(w, http.StatusOK, loginResponse{
		AccessToken:  access,
		TokenType:    "Bearer",
		ExpiresIn:    int64(h.Service.AccessTokenTTL().Seconds()),
		SessionToken: sessionToken,
		User:         user,
	})
}

type logoutRequest struct {
	SessionToken string `json:"session_token" validate:"required"`
}

type LogoutHandler struct {
	Service *Service
	Logger  *slog.Logger
}

func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req logoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "session_token is required")
		return
	}
	if err := h.Service.Logout(r.Context(), strings.TrimSpace(req.SessionToken)); err != nil {
		h.Logger.Error("logout", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type refreshRequest struct {
	SessionToken string `json:"session_token" validate:"required"`
}

type RefreshHandler struct {
	Service *Service
	Logger  *slog.Logger
}

func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "session_token is required")
		return
	}
	access, user, err := h.Service.Refresh(r.Context(), strings.TrimSpace(req.SessionToken))
	if err != nil {
		if errors.Is(err, ErrInvalidSession) {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		h.Logger.Error("refresh", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{
		AccessToken: access,
		TokenType:   "Bearer",
		ExpiresIn:   int64(h.Service.AccessTokenTTL().Seconds()),
		User:        user,
	})
}

type MeHandler struct {
	Logger *slog.Logger
}

func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	user, ok := UserFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// StatsHandler summarizes recent login latencies for admins.
type StatsHandler struct {
	Recorder *Recorder
	Logger   *slog.Logger
}

func (h *StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	samples := h.Recorder.Samples()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"login_latency_ms": stats.Summarize(samples),
		"sample_count":     len(samples),
	})
}
