package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"MiniCart/pkg/kit"
)

const (
	maxBodyBytes   = 1 << 20
	registeredPath = "/index.html"
)

type Server struct {
	Log      *zap.Logger
	Users    UserStore
	Tokens   *TokenMaker
	TokenTTL time.Duration

	LoginLimiter    *kit.IPRateLimiter
	RegisterLimiter *kit.IPRateLimiter
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	s.RegisterRoutes(r)
	return r
}

// RegisterRoutes adds /login and /register to r. Limiters are optional.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.With(limit(s.LoginLimiter)).Post("/login", s.handleLogin)
	r.With(limit(s.RegisterLimiter)).Post("/register", s.handleRegister)
}

func limit(l *kit.IPRateLimiter) func(http.Handler) http.Handler {
	if l == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return l.Middleware
}

type credentials struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResp struct {
	Token string `json:"token"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	req, _, err := decodeCredentials(w, r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad request")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "email/password required")
		return
	}

	u, err := s.Users.Verify(req.Email, req.Password)
	if err != nil {
		kit.WriteError(w, r, http.StatusUnauthorized, "❌ Usuario o contraseña incorrectos")
		return
	}

	tok, err := s.Tokens.New(u.Email, u.Username, s.TokenTTL)
	if err != nil {
		s.Log.Error("token issue", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error")
		return
	}

	kit.WriteJSON(w, http.StatusOK, loginResp{Token: tok})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	req, form, err := decodeCredentials(w, r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad request")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "email/password required")
		return
	}

	u, err := s.Users.Create(req.Email, req.Username, req.Password)
	if errors.Is(err, ErrEmailExists) {
		kit.WriteError(w, r, http.StatusConflict, "❌ Este usuario ya está registrado")
		return
	}
	if err != nil {
		s.Log.Error("register", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error")
		return
	}

	s.Log.Info("user registered", zap.String("user_id", u.ID))

	if form {
		http.Redirect(w, r, registeredPath, http.StatusSeeOther)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// decodeCredentials accepts a JSON body or an HTML form post.
func decodeCredentials(w http.ResponseWriter, r *http.Request) (credentials, bool, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if kit.IsForm(r) {
		if err := r.ParseForm(); err != nil {
			return credentials{}, true, err
		}
		return credentials{
			Username: r.PostForm.Get("username"),
			Email:    r.PostForm.Get("email"),
			Password: r.PostForm.Get("password"),
		}, true, nil
	}

	var req credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return credentials{}, false, err
	}
	return req, false, nil
}

// WhoAmI reports the principal resolved by Authenticate.
func WhoAmI(w http.ResponseWriter, r *http.Request) {
	p, ok := PrincipalFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, msgMissingToken)
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}
