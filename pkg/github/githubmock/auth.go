package githubmock

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenIssuer   = "issues-qa-mock"
	ctxLoginKey   = "login"
	authorization = "Authorization"
)

// IssueToken mints a bearer token identifying login.
func (s *Server) IssueToken(login string) (string, error) {
	if login == "" {
		return "", fmt.Errorf("login is required")
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   login,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// authenticate resolves the caller from the Authorization header. Both the
// "Bearer" and "token" schemes are accepted. A missing header yields an
// anonymous caller; a present but invalid one aborts with 401.
func (s *Server) authenticate(c *gin.Context) {
	header := c.GetHeader(authorization)
	if header == "" {
		c.Next()
		return
	}

	scheme, raw, ok := strings.Cut(header, " ")
	if !ok || (!strings.EqualFold(scheme, "bearer") && !strings.EqualFold(scheme, "token")) {
		abortBadCredentials(c)
		return
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(strings.TrimSpace(raw), claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(tokenIssuer))
	if err != nil || claims.Subject == "" {
		s.log.Debugw("rejected token", "error", err)
		abortBadCredentials(c)
		return
	}

	c.Set(ctxLoginKey, claims.Subject)
	c.Next()
}

// requireLogin aborts anonymous write requests.
func requireLogin(c *gin.Context) {
	if c.GetString(ctxLoginKey) == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{Message: "Requires authentication", DocumentationURL: docsURL})
		return
	}
	c.Next()
}

func abortBadCredentials(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{Message: "Bad credentials", DocumentationURL: docsURL})
}
