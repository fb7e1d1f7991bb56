package web

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"voiceclone-backend/internal/domain"
)

type ctxKey int

const (
	ctxKeyAccountID ctxKey = iota
	ctxKeyAdminID
)

// JWTManager signs and verifies the bearer tokens both login flows hand
// out. Claims carry the subject id and an is_admin flag; user tokens are
// rejected on admin routes and vice versa.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	return &JWTManager{secret: []byte(secret), ttl: ttl}
}

func (m *JWTManager) issue(subjectID string, isAdmin bool) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":  subjectID,
		"is_admin": isAdmin,
		"iat":      now.Unix(),
		"exp":      now.Add(m.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *JWTManager) IssueUserToken(accountID string) (string, error) {
	return m.issue(accountID, false)
}

func (m *JWTManager) IssueAdminToken(adminID string) (string, error) {
	return m.issue(adminID, true)
}

func (m *JWTManager) parse(r *http.Request) (subjectID string, isAdmin bool, err error) {
	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false, domain.ErrInvalidCredentials
	}

	token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidCredentials
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return "", false, domain.ErrInvalidCredentials
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", false, domain.ErrInvalidCredentials
	}
	id, _ := claims["user_id"].(string)
	if id == "" {
		return "", false, domain.ErrInvalidCredentials
	}
	admin, _ := claims["is_admin"].(bool)
	return id, admin, nil
}

// RequireUser admits user tokens and stores the account id in context.
func (m *JWTManager) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, isAdmin, err := m.parse(r)
		if err != nil || isAdmin {
			writeError(w, domain.ErrInvalidCredentials)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKeyAccountID, id)))
	})
}

// RequireAdmin admits admin tokens only.
func (m *JWTManager) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, isAdmin, err := m.parse(r)
		if err != nil {
			writeError(w, domain.ErrInvalidCredentials)
			return
		}
		if !isAdmin {
			writeError(w, domain.ErrForbidden)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKeyAdminID, id)))
	})
}

func accountIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyAccountID).(string)
	return id
}
