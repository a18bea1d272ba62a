package service

import (
	"context"
	"testing"

	"greenroots/internal/config"
	"greenroots/internal/dto"
	"greenroots/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "test-secret", JWTExpirationHours: 1}
}

func TestLogin(t *testing.T) {
	repo := newStubUserRepo()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)
	repo.add(&model.User{Email: "ana@example.com", PasswordHash: string(hash), Firstname: "Ana", Role: "user"})

	svc := NewAuthService(repo, testConfig())

	t.Run("valid credentials return token and user", func(t *testing.T) {
		resp, err := svc.Login(context.Background(), dto.LoginRequest{Email: "ana@example.com", Password: "correct horse"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "ana@example.com", resp.User.Email)

		token, err := jwt.Parse(resp.Token, func(t *jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		})
		require.NoError(t, err)
		claims := token.Claims.(jwt.MapClaims)
		assert.Equal(t, "user", claims["role"])
		assert.Equal(t, resp.User.ID, claims["user_id"])
	})

	t.Run("unknown email and wrong password yield the same error", func(t *testing.T) {
		_, errUnknown := svc.Login(context.Background(), dto.LoginRequest{Email: "nobody@example.com", Password: "x"})
		_, errWrongPw := svc.Login(context.Background(), dto.LoginRequest{Email: "ana@example.com", Password: "wrong"})
		assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
		assert.ErrorIs(t, errWrongPw, ErrInvalidCredentials)
	})
}

func TestRegister(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, testConfig())

	t.Run("creates user with hashed password and user role", func(t *testing.T) {
		resp, err := svc.Register(context.Background(), dto.RegisterRequest{
			Email: "bob@example.com", Password: "supersecret", Firstname: "Bob",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "user", resp.User.Role)

		stored, err := repo.FindByEmail(context.Background(), "bob@example.com")
		require.NoError(t, err)
		assert.NotEqual(t, "supersecret", stored.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("supersecret")))
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		_, err := svc.Register(context.Background(), dto.RegisterRequest{
			Email: "bob@example.com", Password: "anothersecret", Firstname: "Bob",
		})
		assert.ErrorIs(t, err, ErrConflict)
	})
}
