package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/lmorazan/corresponsal-backend/internal/auth"
	"github.com/lmorazan/corresponsal-backend/internal/config"
	"github.com/lmorazan/corresponsal-backend/internal/http/respond"
	"github.com/lmorazan/corresponsal-backend/internal/models"
	"github.com/lmorazan/corresponsal-backend/internal/models/dto"
)

// AuthHandler issues bearer tokens for the single configured agent
// account. There is no user directory: credentials come from config
// and the signed token is the only server-side session artifact.
type AuthHandler struct {
	tokens *auth.TokenManager
	cfg    *config.Config
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(tokens *auth.TokenManager, cfg *config.Config) *AuthHandler {
	return &AuthHandler{tokens: tokens, cfg: cfg}
}

// Register attaches auth routes to the router.
func (h *AuthHandler) Register(r *mux.Router) {
	r.HandleFunc("/auth/login", h.handleLogin).Methods(http.MethodPost)
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, respond.CodeValidation, "invalid JSON payload")
		return
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		respond.Error(w, http.StatusBadRequest, respond.CodeValidation, "username and password are required")
		return
	}
	if !h.credentialsValid(req.Username, req.Password) {
		respond.Error(w, http.StatusUnauthorized, respond.CodeAuth, "Invalid credentials")
		return
	}

	agent := models.Agent{
		Username:       req.Username,
		Role:           models.RoleAdmin,
		Agencia:        h.cfg.Agencia,
		Sucursal:       h.cfg.Sucursal,
		CodigoAgencia:  h.cfg.CodigoAgencia,
		CodigoSucursal: h.cfg.CodigoSucursal,
	}
	token, err := h.tokens.Generate(agent)
	if err != nil {
		log.Error().Err(err).Msg("token generation failed")
		respond.Error(w, http.StatusInternalServerError, respond.CodeInternal, "failed to generate token")
		return
	}

	respond.Token(w, token, dto.LoginUser{
		Username: agent.Username,
		Agencia:  agent.Agencia,
		Sucursal: agent.Sucursal,
	})
}

// credentialsValid checks the static account. When a bcrypt hash is
// configured it takes precedence over the plain-text password.
func (h *AuthHandler) credentialsValid(username, password string) bool {
	if subtle.ConstantTimeCompare([]byte(username), []byte(h.cfg.AdminUser)) != 1 {
		return false
	}
	if h.cfg.AdminPasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(h.cfg.AdminPasswordHash), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(h.cfg.AdminPassword)) == 1
}
