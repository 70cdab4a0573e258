package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jdoyle/centavo/finance"
)

const maxBodySize = 64 * 1024

type contextKey int

const accountIDKey contextKey = iota

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

func decodeJSON[T any](w http.ResponseWriter, r *http.Request) (T, bool) {
	var req T
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return req, false
	}
	return req, true
}

// requireAuth validates the bearer token and stores the account ID on
// the request context.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		accountID, err := parseAccessToken(s.secret, token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		ctx := context.WithValue(r.Context(), accountIDKey, accountID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func accountIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(accountIDKey).(string)
	return id
}

func (s *Server) issueSession(w http.ResponseWriter, a *account, status int) {
	access, err := mintAccessToken(s.secret, a.ID, s.accessTTL)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to mint access token")
		return
	}
	writeJSON(w, status, authResponse{
		AccessToken:  access,
		RefreshToken: s.refresh.issue(a.ID),
		ExpiresIn:    int64(s.accessTTL / time.Second),
		userPayload:  a.payload(),
	})
}

// handleRegister handles POST /auth/register.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJSON[RegisterRequest](w, r)
	if !ok {
		return
	}
	if req.Name == "" || req.Email == "" {
		writeError(w, http.StatusBadRequest, "name and email are required")
		return
	}
	if len(req.Password) < 8 {
		writeError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}
	a, err := s.accounts.register(req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, errAccountExists) {
			writeError(w, http.StatusConflict, "email already registered")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create account")
		return
	}
	s.logger.Info("account registered", "email", a.Email)
	s.issueSession(w, a, http.StatusCreated)
}

// handleLogin handles POST /auth/login.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJSON[LoginRequest](w, r)
	if !ok {
		return
	}
	a, err := s.accounts.authenticate(req.Email, req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	s.issueSession(w, a, http.StatusOK)
}

// handleRefresh handles POST /auth/refresh-token. The refresh token is
// not rotated; only the access token is re-minted.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJSON[RefreshRequest](w, r)
	if !ok {
		return
	}
	accountID, err := s.refresh.redeem(req.RefreshToken)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}
	access, err := mintAccessToken(s.secret, accountID, s.accessTTL)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to mint access token")
		return
	}
	writeJSON(w, http.StatusOK, refreshResponse{
		AccessToken: access,
		ExpiresIn:   int64(s.accessTTL / time.Second),
	})
}

// handleLogout handles POST /auth/logout. Revoking an unknown token
// still succeeds; logout is best-effort by contract.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJSON[LogoutRequest](w, r)
	if !ok {
		return
	}
	s.refresh.revoke(req.RefreshToken)
	writeJSON(w, http.StatusOK, struct{}{})
}

// handleMe handles GET /auth/me.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	a, err := s.accounts.get(accountIDFromContext(r.Context()))
	if err != nil {
		writeError(w, http.StatusUnauthorized, "account no longer exists")
		return
	}
	writeJSON(w, http.StatusOK, a.payload())
}

// handleTargets handles PUT /auth/targets.
func (s *Server) handleTargets(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJSON[TargetsRequest](w, r)
	if !ok {
		return
	}
	a, err := s.accounts.update(accountIDFromContext(r.Context()), func(a *account) {
		if req.MonthlyBudget != nil {
			a.MonthlyBudget = *req.MonthlyBudget
		}
		if req.SavingsTarget != nil {
			a.SavingsTarget = *req.SavingsTarget
		}
	})
	if err != nil {
		writeError(w, http.StatusUnauthorized, "account no longer exists")
		return
	}
	writeJSON(w, http.StatusOK, a.payload())
}

// handleProfile handles PUT /auth/profile.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJSON[ProfileRequest](w, r)
	if !ok {
		return
	}
	a, err := s.accounts.update(accountIDFromContext(r.Context()), func(a *account) {
		if req.Name != nil {
			a.Name = *req.Name
		}
		if req.Email != nil {
			a.Email = *req.Email
		}
		if req.ProfileImage != nil {
			a.ProfileImage = *req.ProfileImage
		}
	})
	if err != nil {
		writeError(w, http.StatusUnauthorized, "account no longer exists")
		return
	}
	writeJSON(w, http.StatusOK, a.payload())
}

// handleCreateTransaction handles POST /transactions.
func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	tx, ok := decodeJSON[finance.Transaction](w, r)
	if !ok {
		return
	}
	if err := tx.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	created := s.txs.add(accountIDFromContext(r.Context()), tx)
	writeJSON(w, http.StatusCreated, created)
}

// handleListTransactions handles GET /transactions.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	var from, to time.Time
	if v := r.URL.Query().Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid 'from' timestamp")
			return
		}
		from = t
	}
	if v := r.URL.Query().Get("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid 'to' timestamp")
			return
		}
		to = t
	}
	category := r.URL.Query().Get("category")
	txs := s.txs.list(accountIDFromContext(r.Context()), from, to, category)
	writeJSON(w, http.StatusOK, txs)
}

// handleDeleteTransaction handles DELETE /transactions/{id}.
func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.txs.delete(accountIDFromContext(r.Context()), id); err != nil {
		writeError(w, http.StatusNotFound, "transaction not found")
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}
