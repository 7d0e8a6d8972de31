package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// roundClaims binds a bearer token to one round.
type roundClaims struct {
	RoundID string `json:"rid"`
	jwt.RegisteredClaims
}

// ctxRoundKey is the context key type for the authorized round ID.
type ctxRoundKey struct{}

// signRoundToken creates an HS256 JWT for round id, valid for opts.TokenTTL.
func (s *Server) signRoundToken(id string, now time.Time) (string, time.Time, error) {
	exp := now.Add(s.opts.TokenTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, roundClaims{
		RoundID: id,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	ss, err := t.SignedString(s.opts.Secret)
	return ss, exp, err
}

// parseRoundToken verifies a token and returns the round ID it grants.
func (s *Server) parseRoundToken(tok string) (string, error) {
	var claims roundClaims
	t, err := jwt.ParseWithClaims(tok, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.opts.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.opts.Now),
	)
	if err != nil {
		return "", err
	}
	if !t.Valid || claims.RoundID == "" {
		return "", errors.New("invalid round token")
	}
	return claims.RoundID, nil
}

// requireRound enforces a valid round token and injects its round ID into
// the request context.
func (s *Server) requireRound() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := bearer(r)
			if tok == "" {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			id, err := s.parseRoundToken(tok)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "invalid_token")
				return
			}
			ctx := context.WithValue(r.Context(), ctxRoundKey{}, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// roundID returns the round ID placed by requireRound.
func roundID(r *http.Request) string {
	id, _ := r.Context().Value(ctxRoundKey{}).(string)
	return id
}

// bearer extracts the token from "Authorization: Bearer <token>".
func bearer(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}
