package auth

import (
	"errors"
	"net/http"

	"greengallery/core"
	"greengallery/identity"

	"github.com/go-chi/render"
	"github.com/sirupsen/logrus"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token string `json:"token"`
	ID    string `json:"id"`
	Email string `json:"email"`
}

func issueSession(w http.ResponseWriter, r *http.Request, tokens *identity.TokenIssuer, id identity.Identity) {
	token, err := tokens.Issue(id)
	if err != nil {
		logrus.WithError(err).Error("Failed to issue session token")
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, map[string]string{"error": "Failed to create session"})
		return
	}
	render.JSON(w, r, sessionResponse{Token: token, ID: id.ID, Email: id.Email})
}

// HandleSignUp registers a new account and returns a session token.
func HandleSignUp(provider identity.Provider, tokens *identity.TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, map[string]string{"error": "Invalid request body"})
			return
		}

		id, err := provider.SignUp(r.Context(), req.Email, req.Password)
		if err != nil {
			var verr *core.ValidationError
			switch {
			case errors.As(err, &verr):
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, map[string]string{"error": verr.Reason})
			case errors.Is(err, core.ErrEmailTaken):
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, map[string]string{"error": "Email is already registered"})
			default:
				logrus.WithError(err).Error("Sign-up failed")
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, map[string]string{"error": "Sign-up failed"})
			}
			return
		}

		issueSession(w, r, tokens, id)
	}
}

// HandleSignIn verifies credentials and returns a session token.
func HandleSignIn(provider identity.Provider, tokens *identity.TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, map[string]string{"error": "Invalid request body"})
			return
		}

		id, err := provider.SignIn(r.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, core.ErrInvalidCredentials) {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, map[string]string{"error": "Invalid email or password"})
				return
			}
			logrus.WithError(err).Error("Sign-in failed")
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, map[string]string{"error": "Sign-in failed"})
			return
		}

		issueSession(w, r, tokens, id)
	}
}

// HandleSignOut exists for client symmetry. Sessions are stateless tokens,
// so there is nothing to revoke server-side.
func HandleSignOut() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]string{"status": "signed out"})
	}
}
