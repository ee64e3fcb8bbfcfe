package auth

import (
	"fmt"
	"log"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/thangamari27/zenmart/internal/models"
	"github.com/thangamari27/zenmart/internal/storage"
)

// adminEmails is the fixed administrator allow-list. It is not extensible
// at runtime: the admin role is always recomputed from this set, never
// trusted from persisted state.
var adminEmails = map[string]bool{
	"admin@example.com":      true,
	"arun.kumar@example.com": true,
}

// IsAdminEmail reports whether email belongs to the administrator
// allow-list.
func IsAdminEmail(email string) bool {
	return adminEmails[email]
}

// Identity is one entry in the mock identity directory.
type Identity struct {
	UID          string
	DisplayName  string
	Email        string
	PhotoURL     string
	passwordHash []byte
}

// Manager holds the current authenticated session and its persisted copy.
// It is an explicit state container with a defined lifecycle: construct at
// process start (which restores any persisted session), tear down via
// Logout.
type Manager struct {
	storage    storage.Store
	jwtSecret  []byte
	tokenDurat time.Duration
	identities []Identity
	current    *models.Session
}

// NewManager creates a Manager backed by the default mock identity
// directory and restores any previously persisted session.
func NewManager(st storage.Store, jwtSecret string) *Manager {
	m := &Manager{
		storage:    st,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour,
		identities: defaultIdentities(),
	}
	m.Restore()
	return m
}

// defaultIdentities builds the mock directory: one demo customer and two
// administrators. Passwords are hashed at construction so the directory
// never holds plaintext.
func defaultIdentities() []Identity {
	entries := []struct {
		uid, name, email, photo, password string
	}{
		{"mock-user-123", "Demo User", "demo@example.com",
			"https://images.unsplash.com/photo-1535713875002-d1d0cf377fde?w=150&h=150&fit=crop&crop=face", "demo1234"},
		{"mock-admin-456", "Admin User", "admin@example.com",
			"https://images.unsplash.com/photo-1560250097-0b93528c311a?w=150&h=150&fit=crop&crop=face", "admin1234"},
		{"mock-admin-789", "Arun Kumar", "arun.kumar@example.com",
			"https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=150&h=150&fit=crop&crop=face", "arun1234"},
	}

	identities := make([]Identity, 0, len(entries))
	for _, e := range entries {
		hash, err := bcrypt.GenerateFromPassword([]byte(e.password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("auth: failed to hash mock credential for %s: %v", e.email, err)
			continue
		}
		identities = append(identities, Identity{
			UID:          e.uid,
			DisplayName:  e.name,
			Email:        e.email,
			PhotoURL:     e.photo,
			passwordHash: hash,
		})
	}
	return identities
}

// Login authenticates against the mock directory and sets the current
// session. IsAdmin is derived from the allow-list at this point.
func (m *Manager) Login(email, password string) (*models.Session, string, error) {
	for _, id := range m.identities {
		if id.Email != email {
			continue
		}
		if err := bcrypt.CompareHashAndPassword(id.passwordHash, []byte(password)); err != nil {
			return nil, "", fmt.Errorf("invalid credentials")
		}
		return m.establish(id)
	}
	// Do not reveal whether the email exists.
	return nil, "", fmt.Errorf("invalid credentials")
}

// LoginMock signs in the directory entry at index without a credential
// check, mirroring the one-click demo logins.
func (m *Manager) LoginMock(index int) (*models.Session, string, error) {
	if index < 0 || index >= len(m.identities) {
		return nil, "", fmt.Errorf("no mock identity at index %d", index)
	}
	return m.establish(m.identities[index])
}

func (m *Manager) establish(id Identity) (*models.Session, string, error) {
	session := &models.Session{
		UID:         id.UID,
		DisplayName: id.DisplayName,
		Email:       id.Email,
		PhotoURL:    id.PhotoURL,
		IsAdmin:     IsAdminEmail(id.Email),
		Mock:        true,
		LoginTime:   time.Now(),
	}

	token, err := m.mintToken(session)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	m.current = session
	m.storage.Set(storage.KeySession, session)
	return session, token, nil
}

// Logout clears the session and its persisted copy. It never fails the
// caller: the adapter swallows and logs storage errors.
func (m *Manager) Logout() {
	m.current = nil
	m.storage.Remove(storage.KeySession)
}

// Restore reads any persisted session and re-derives IsAdmin from the
// allow-list. A stored IsAdmin bit is never trusted verbatim; this guards
// against stale or tampered persisted role flags.
func (m *Manager) Restore() *models.Session {
	var session models.Session
	if !m.storage.Get(storage.KeySession, &session) {
		m.current = nil
		return nil
	}
	session.IsAdmin = IsAdminEmail(session.Email)
	m.current = &session
	return m.current
}

// Current returns the current session, or nil when anonymous.
func (m *Manager) Current() *models.Session {
	return m.current
}

func (m *Manager) mintToken(session *models.Session) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid":   session.UID,
		"email": session.Email,
		"name":  session.DisplayName,
		"exp":   time.Now().Add(m.tokenDurat).Unix(),
		"iat":   time.Now().Unix(),
		"jti":   uuid.New().String(),
	})
	return token.SignedString(m.jwtSecret)
}

// ValidateToken parses and validates a session token, returning the claims
// if valid.
func (m *Manager) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

// SessionFromToken resolves a token to a session. The admin role is
// recomputed from the claim's email, never carried in the token.
func (m *Manager) SessionFromToken(tokenString string) (*models.Session, error) {
	claims, err := m.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	uid, _ := claims["uid"].(string)
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)

	if m.current != nil && m.current.UID == uid {
		return m.current, nil
	}
	return &models.Session{
		UID:         uid,
		DisplayName: name,
		Email:       email,
		IsAdmin:     IsAdminEmail(email),
		Mock:        true,
	}, nil
}
