package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// authKey is a context key populated by requireAuth.
type authKey int

const authSubject authKey = iota

// demoSubject is the sole identity a Server authenticates, since the
// library keeps no user store: a caller either knows the demo password or
// does not.
const demoSubject = "demo"

// hashPassword bcrypt-hashes a plaintext password for storage in a
// Server's demoPasswordHash field.
func hashPassword(plain string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
}

// login checks password against the server's demo credential and, if it
// matches, returns a signed bearer token.
func (s *Server) login(password string) (string, error) {
	if err := bcrypt.CompareHashAndPassword(s.demoPasswordHash, []byte(password)); err != nil {
		return "", fmt.Errorf("incorrect password")
	}
	return s.generateJWT()
}

func (s *Server) generateJWT() (string, error) {
	claims := &jwt.MapClaims{
		"iss": "lrgen",
		"sub": demoSubject,
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return tok.SignedString(s.jwtSecret)
}

func (s *Server) validateJWT(tok string) error {
	_, err := jwt.Parse(tok, func(t *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}), jwt.WithIssuer("lrgen"), jwt.WithSubject(demoSubject), jwt.WithLeeway(time.Minute))
	return err
}

func getBearerToken(req *http.Request) (string, error) {
	authHeader := strings.TrimSpace(req.Header.Get("Authorization"))
	if authHeader == "" {
		return "", fmt.Errorf("no authorization header present")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(strings.TrimSpace(parts[0]), "bearer") {
		return "", fmt.Errorf("authorization header not in Bearer format")
	}
	return strings.TrimSpace(parts[1]), nil
}

// requireAuth wraps next so it only runs once a valid bearer token for the
// demo credential has been presented; otherwise it writes an HTTP-401 and
// never calls next.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		tok, err := getBearerToken(req)
		if err != nil {
			Unauthorized(err.Error()).writeResponse(w)
			return
		}
		if err := s.validateJWT(tok); err != nil {
			Unauthorized("invalid or expired token").writeResponse(w)
			return
		}

		ctx := context.WithValue(req.Context(), authSubject, demoSubject)
		next(w, req.WithContext(ctx))
	}
}
