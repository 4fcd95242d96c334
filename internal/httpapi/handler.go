package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	cxauth "github.com/Kevin-Shelton/verizon-cx-demo-sub000"
	"github.com/Kevin-Shelton/verizon-cx-demo-sub000/middleware"
	"github.com/Kevin-Shelton/verizon-cx-demo-sub000/token"
)

const maxLoginBodyBytes = 1 << 16

// Handler wraps the engine for the HTTP surface.
type Handler struct {
	engine *cxauth.Engine
	logger *slog.Logger
}

// NewHandler creates a Handler around engine.
func NewHandler(engine *cxauth.Engine, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{engine: engine, logger: logger}
}

type loginRequest struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	ChallengeToken string `json:"challengeToken,omitempty"`
}

type loginUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role"`
}

type loginResponse struct {
	Success   bool      `json:"success"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      loginUser `json:"user"`
}

// Login handles POST /api/auth/login. All credential failures share one
// outward message; only the challenge state is distinguishable.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxLoginBodyBytes))
	if err := dec.Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx := cxauth.WithClientID(r.Context(), clientAddr(r))

	outcome, err := h.engine.Login(ctx, cxauth.LoginRequest{
		Email:          body.Email,
		Password:       body.Password,
		ChallengeToken: body.ChallengeToken,
	})

	switch outcome.State {
	case cxauth.StateAuthenticated:
		writeJSON(w, http.StatusOK, loginResponse{
			Success:   true,
			Token:     outcome.Token,
			ExpiresAt: outcome.ExpiresAt,
			User: loginUser{
				ID:    outcome.User.ID,
				Email: outcome.User.Email,
				Name:  outcome.User.Name,
				Role:  outcome.User.Role,
			},
		})
	case cxauth.StateChallengeRequired:
		writeJSON(w, http.StatusForbidden, errorResponse{
			Success:           false,
			Error:             "additional verification required",
			RequiresChallenge: true,
		})
	default:
		if errors.Is(err, cxauth.ErrMissingCredentials) {
			writeError(w, http.StatusBadRequest, "email and password are required")
			return
		}
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
	}
}

type portalTokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// PortalToken handles POST /api/portal/token. A valid session bearer
// binds the handoff to the signed-in identity; anything else falls back
// to the anonymous portal identity rather than failing the request.
func (h *Handler) PortalToken(w http.ResponseWriter, r *http.Request) {
	ctx := cxauth.WithClientID(r.Context(), clientAddr(r))

	grant, err := h.engine.MintHandoff(ctx, h.sessionClaims(r))
	if err != nil {
		h.logger.Error("handoff mint failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not issue portal token")
		return
	}

	writeJSON(w, http.StatusOK, portalTokenResponse{
		Token:     grant.Token,
		ExpiresAt: grant.ExpiresAt,
	})
}

type launchResponse struct {
	URL string `json:"url"`
}

// PortalLaunch handles GET /api/portal/launch?url=<partner-url>.
func (h *Handler) PortalLaunch(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		writeError(w, http.StatusBadRequest, "url parameter is required")
		return
	}

	ctx := cxauth.WithClientID(r.Context(), clientAddr(r))

	launch, err := h.engine.LaunchURL(ctx, rawURL, h.sessionClaims(r))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid partner URL")
		return
	}

	writeJSON(w, http.StatusOK, launchResponse{URL: launch})
}

// Healthz is the liveness probe.
func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// sessionClaims returns the session claims injected by the optional
// session middleware, or nil for visitors. Portal routes serve both, so
// a missing or invalid bearer is not an error here.
func (h *Handler) sessionClaims(r *http.Request) *token.Claims {
	claims, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		return nil
	}
	return claims
}

// clientAddr returns the request's source address without the port. Chi's
// RealIP middleware has already folded forwarding headers into RemoteAddr.
func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
