package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Roles carried in access tokens
const (
	RoleDoctor = "doctor"
	RoleAdmin  = "admin"
)

const tokenTypeAccess = "access"

// Claims represents JWT claims structure
type Claims struct {
	DoctorID int64  `json:"doctor_id"`
	Role     string `json:"role"`
	Type     string `json:"type"` // always "access"
	jwt.RegisteredClaims
}

// Manager handles JWT operations
type Manager struct {
	secret string
	ttl    time.Duration
}

// NewManager creates new JWT manager
func NewManager(secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{secret: secret, ttl: ttl}
}

// GenerateAccessToken signs an access token for a doctor (or an admin, doctorID may be 0)
func (m *Manager) GenerateAccessToken(doctorID int64, role string) (string, error) {
	if role != RoleDoctor && role != RoleAdmin {
		return "", fmt.Errorf("unknown role %q", role)
	}
	if role == RoleDoctor && doctorID <= 0 {
		return "", fmt.Errorf("doctor token requires a doctor id")
	}

	now := time.Now()
	claims := Claims{
		DoctorID: doctorID,
		Role:     role,
		Type:     tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.secret))
}

// ValidateToken validates and parses token
func (m *Manager) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}

// ValidateAccessToken validates access token specifically
func (m *Manager) ValidateAccessToken(tokenString string) (*Claims, error) {
	claims, err := m.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	if claims.Type != tokenTypeAccess {
		return nil, fmt.Errorf("invalid token type: expected access, got %s", claims.Type)
	}

	switch claims.Role {
	case RoleAdmin:
	case RoleDoctor:
		if claims.DoctorID <= 0 {
			return nil, fmt.Errorf("doctor token without doctor id")
		}
	default:
		return nil, fmt.Errorf("unknown role %q", claims.Role)
	}

	return claims, nil
}
