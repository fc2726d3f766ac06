// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Parley Contributors

package web

import (
	"encoding/json"
	"net/http"
	"time"
)

// registerRequest is the request body for POST /api/auth/register.
type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginRequest is the request body for POST /api/auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// publicUser is the user shape echoed back by auth endpoints. The password
// hash is never part of any response.
type publicUser struct {
	ID       string  `json:"id,omitempty"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	ImageURL *string `json:"imageUrl,omitempty"`
}

// handleRegister creates a new user account.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	user, err := s.authSvc.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "User registered successfully",
		"user":    publicUser{Name: user.Name, Email: user.Email},
	})
}

// handleLogin authenticates a user and sets the session cookie.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	session, token, err := s.authSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if s.metrics != nil {
			s.metrics.LoginsTotal.WithLabelValues("failure").Inc()
		}
		s.writeServiceError(w, r, err)
		return
	}
	if s.metrics != nil {
		s.metrics.LoginsTotal.WithLabelValues("success").Inc()
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"user": publicUser{
			ID:    session.UserID.String(),
			Name:  session.Name,
			Email: session.Email,
		},
	})
}

// handleLogout destroys the current session and clears the cookie.
// Logging out without a live session still succeeds.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	var token string
	if cookie, err := r.Cookie(s.cfg.CookieName); err == nil {
		token = cookie.Value
	}

	if err := s.authSvc.Logout(r.Context(), token); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, map[string]any{"message": "Logout successful"})
}

// handleCheckSession returns the current session's user, or 401 when the
// request carries no valid session. Pure read, no mutation.
func (s *Server) handleCheckSession(w http.ResponseWriter, r *http.Request) {
	sc := SessionFromContext(r.Context())
	if !sc.Present() {
		writeError(w, http.StatusUnauthorized, ErrCodeUnauthorized, "not authenticated")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user": publicUser{
			ID:       sc.Session.UserID.String(),
			Name:     sc.Session.Name,
			Email:    sc.Session.Email,
			ImageURL: sc.Session.ImageURL,
		},
	})
}
