package auth

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/splitbill/internal/models"
	"github.com/mmynk/splitbill/internal/storage"
)

type memUsers struct {
	mu      sync.Mutex
	byEmail map[string]*models.User
	byID    map[string]*models.User
}

func newMemUsers() *memUsers {
	return &memUsers{byEmail: map[string]*models.User{}, byID: map[string]*models.User{}}
}

func (m *memUsers) CreateUser(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[u.Email]; ok {
		return fmt.Errorf("duplicate email %s", u.Email)
	}
	m.byEmail[u.Email] = u
	m.byID[u.ID] = u
	return nil
}

func (m *memUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("user %s: %w", email, storage.ErrNotFound)
}

func (m *memUsers) GetUserByID(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[id]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("user %s: %w", id, storage.ErrNotFound)
}

func newAuthenticator() *PasswordAuthenticator {
	return NewPasswordAuthenticator(newMemUsers()).WithCost(bcrypt.MinCost)
}

func TestPasswordAuthenticator_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes email and hashes password", func(t *testing.T) {
		a := newAuthenticator()
		user, err := a.Register(ctx, "  Alice@Example.COM ", "Alice", "correct-horse")
		require.NoError(t, err)

		assert.Equal(t, "alice@example.com", user.Email)
		assert.Equal(t, "Alice", user.DisplayName)
		assert.NotEqual(t, "correct-horse", user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct-horse")))
	})

	t.Run("display name defaults to mailbox", func(t *testing.T) {
		user, err := newAuthenticator().Register(ctx, "bob@example.com", " ", "password1")
		require.NoError(t, err)
		assert.Equal(t, "bob", user.DisplayName)
	})

	t.Run("rejects duplicates case-insensitively", func(t *testing.T) {
		a := newAuthenticator()
		_, err := a.Register(ctx, "carol@example.com", "Carol", "password1")
		require.NoError(t, err)

		_, err = a.Register(ctx, "CAROL@example.com", "Carol", "password2")
		assert.ErrorIs(t, err, ErrEmailExists)
	})

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"short password", "dan@example.com", "short", ErrWeakPassword},
		{"missing at", "dan.example.com", "password1", ErrInvalidEmail},
		{"empty email", "", "password1", ErrInvalidEmail},
		{"display form", "Dan <dan@example.com>", "password1", ErrInvalidEmail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newAuthenticator().Register(ctx, tt.email, "Dan", tt.password)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPasswordAuthenticator_Authenticate(t *testing.T) {
	ctx := context.Background()
	a := newAuthenticator()
	registered, err := a.Register(ctx, "erin@example.com", "Erin", "password1")
	require.NoError(t, err)

	user, err := a.Authenticate(ctx, "ERIN@example.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	_, err = a.Authenticate(ctx, "erin@example.com", "password2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = a.Authenticate(ctx, "nobody@example.com", "password1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	found, err := a.Lookup(ctx, registered.ID)
	require.NoError(t, err)
	assert.Equal(t, "Erin", found.DisplayName)

	_, err = a.Lookup(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestJWTManager(t *testing.T) {
	user := &models.User{ID: "user-1", Email: "frank@example.com"}

	t.Run("round trip", func(t *testing.T) {
		m := NewJWTManager("secret", time.Hour)
		token, expires, err := m.Generate(user)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(time.Hour), expires, 5*time.Second)

		claims, err := m.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)
		assert.Equal(t, "frank@example.com", claims.Email)
		assert.Equal(t, Issuer, claims.Issuer)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, _, err := NewJWTManager("secret", time.Hour).Generate(user)
		require.NoError(t, err)

		_, err = NewJWTManager("other", time.Hour).Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		m := NewJWTManager("secret", time.Minute)
		m.now = func() time.Time { return time.Now().Add(-time.Hour) }
		token, _, err := m.Generate(user)
		require.NoError(t, err)

		m.now = time.Now
		_, err = m.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects other algorithms", func(t *testing.T) {
		claims := &Claims{
			UserID: "user-1",
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    Issuer,
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = NewJWTManager("secret", time.Hour).Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := NewJWTManager("secret", time.Hour).Validate("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr error
	}{
		{"Bearer abc", "abc", nil},
		{"bearer abc", "abc", nil},
		{"", "", ErrMissingToken},
		{"Basic abc", "", ErrInvalidToken},
		{"Bearer", "", ErrInvalidToken},
		{"Bearer  ", "", ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, err := BearerToken(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
