package middleware

import (
	"context"
	"net/http"
	"strings"

	"patient-sheets/internal/domain/entity"
	"patient-sheets/internal/domain/repository"
	"patient-sheets/pkg/jwt"
	"patient-sheets/pkg/response"
)

type contextKey string

const (
	SessionKey   contextKey = "session"
	SessionIDKey contextKey = "session_id"
)

type AuthMiddleware struct {
	jwtService  *jwt.JWTService
	sessionRepo repository.SessionRepository
}

func NewAuthMiddleware(jwtService *jwt.JWTService, sessionRepo repository.SessionRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:  jwtService,
		sessionRepo: sessionRepo,
	}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		if claims.TokenType != jwt.SessionToken {
			response.Unauthorized(w, "Invalid token type")
			return
		}

		// Session must still exist in Redis (not logged out or expired)
		session, err := m.sessionRepo.FindByID(r.Context(), claims.SessionID)
		if err != nil {
			response.InternalServerError(w, "Failed to load session")
			return
		}
		if session == nil {
			response.Unauthorized(w, "Session has expired")
			return
		}

		ctx := context.WithValue(r.Context(), SessionKey, session)
		ctx = context.WithValue(ctx, SessionIDKey, session.ID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSessionFromContext extracts the session loaded by Authenticate
func GetSessionFromContext(ctx context.Context) (*entity.Session, bool) {
	session, ok := ctx.Value(SessionKey).(*entity.Session)
	return session, ok && session != nil
}

// GetSessionIDFromContext extracts session ID from context
func GetSessionIDFromContext(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(SessionIDKey).(string)
	return sessionID, ok
}
