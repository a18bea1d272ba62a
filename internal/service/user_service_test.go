package service

import (
	"context"
	"testing"

	"greenroots/internal/dto"
	"greenroots/internal/model"
	"greenroots/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserUpdateHashesPassword(t *testing.T) {
	repo := newStubUserRepo()
	user := repo.add(&model.User{Email: "ana@example.com", Firstname: "Ana", Role: "user"})
	svc := NewUserService(repo, nil)

	newPassword := "brand new secret"
	city := "Lyon"
	_, err := svc.Update(context.Background(), user.ID, dto.UpdateUserRequest{
		Password: &newPassword,
		City:     &city,
	})
	require.NoError(t, err)

	hash, ok := repo.updatedFields["passwordHash"].(string)
	require.True(t, ok, "password must be persisted under passwordHash")
	assert.NotEqual(t, newPassword, hash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte(newPassword)))
	assert.Equal(t, "Lyon", repo.updatedFields["city"])
	assert.NotContains(t, repo.updatedFields, "email")
}

func TestUserDeleteBlockedByOrders(t *testing.T) {
	repo := newStubUserRepo()
	user := repo.add(&model.User{Email: "ana@example.com", Firstname: "Ana"})
	repo.hasOrders = true
	svc := NewUserService(repo, nil)

	assert.ErrorIs(t, svc.Delete(context.Background(), user.ID), ErrReferentialBlock)

	repo.hasOrders = false
	require.NoError(t, svc.Delete(context.Background(), user.ID))
}

func TestUserImpact(t *testing.T) {
	repo := newStubUserRepo()
	user := repo.add(&model.User{Email: "ana@example.com", Firstname: "Ana"})
	repo.impact = repository.Impact{
		TotalCO2: decimal.NewFromInt(75),
		TotalO2:  decimal.NewFromInt(330),
	}
	svc := NewUserService(repo, nil)

	resp, err := svc.Impact(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, resp.TotalCO2.Equal(decimal.NewFromInt(75)))
	assert.True(t, resp.TotalO2.Equal(decimal.NewFromInt(330)))
}
