package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/example/animeswipe/internal/platform/analytics"
	"github.com/example/animeswipe/internal/platform/api"
	"github.com/example/animeswipe/services/swipe/internal/accounts"
)

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type authResponse struct {
	User        accounts.User `json:"user"`
	AccessToken string        `json:"access_token"`
	ExpiresAt   time.Time     `json:"expires_at"`
}

func validUsername(u string) bool {
	if len(u) < 3 || len(u) > 32 {
		return false
	}
	for _, r := range u {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_' || r == '-':
		default:
			return false
		}
	}
	return true
}

// Register handles POST /v1/auth/register
func Register(us accounts.Store, tokens accounts.TokenService, pub *analytics.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
			api.BadRequest(w, "INVALID_JSON", "invalid JSON", "", nil)
			return
		}

		req.Email = strings.TrimSpace(strings.ToLower(req.Email))
		req.Username = strings.TrimSpace(req.Username)

		if _, err := mail.ParseAddress(req.Email); err != nil {
			api.BadRequest(w, "INVALID_EMAIL", "a valid email is required", "", nil)
			return
		}
		if !validUsername(req.Username) {
			api.BadRequest(w, "INVALID_USERNAME", "username must be 3-32 characters of letters, digits, '_' or '-'", "", nil)
			return
		}
		if len(req.Password) < 8 {
			api.BadRequest(w, "WEAK_PASSWORD", "password must be at least 8 characters", "", nil)
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			api.Internal(w, "")
			return
		}

		user, err := us.CreateUser(r.Context(), accounts.CreateUserParams{
			Email:        req.Email,
			Username:     req.Username,
			PasswordHash: string(hash),
		})
		if err != nil {
			if errors.Is(err, accounts.ErrConflict) {
				api.Conflict(w, "ALREADY_EXISTS", "email or username already taken", "", nil)
				return
			}
			api.Internal(w, "")
			return
		}

		token, exp, err := tokens.NewAccessToken(user.ID, time.Now().UTC())
		if err != nil {
			api.Internal(w, "")
			return
		}

		pub.Publish(analytics.SubjectAuthRegistered, "auth.registered", user.ID, nil)
		api.WriteJSON(w, http.StatusCreated, authResponse{User: user, AccessToken: token, ExpiresAt: exp})
	}
}

// Login handles POST /v1/auth/login
func Login(us accounts.Store, tokens accounts.TokenService, pub *analytics.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
			api.BadRequest(w, "INVALID_JSON", "invalid JSON", "", nil)
			return
		}
		if strings.TrimSpace(req.Login) == "" || req.Password == "" {
			api.BadRequest(w, "MISSING_CREDENTIALS", "login and password are required", "", nil)
			return
		}

		row, err := us.FindUserByLogin(r.Context(), req.Login)
		if err != nil {
			if errors.Is(err, accounts.ErrNotFound) {
				api.Unauthorized(w, "INVALID_CREDENTIALS", "invalid login or password", "")
				return
			}
			api.Internal(w, "")
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(row.PasswordHash), []byte(req.Password)) != nil {
			api.Unauthorized(w, "INVALID_CREDENTIALS", "invalid login or password", "")
			return
		}

		token, exp, err := tokens.NewAccessToken(row.User.ID, time.Now().UTC())
		if err != nil {
			api.Internal(w, "")
			return
		}

		pub.Publish(analytics.SubjectAuthLoggedIn, "auth.logged_in", row.User.ID, nil)
		api.WriteJSON(w, http.StatusOK, authResponse{User: row.User, AccessToken: token, ExpiresAt: exp})
	}
}
