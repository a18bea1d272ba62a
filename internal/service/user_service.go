package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"greenroots/internal/dto"
	"greenroots/internal/model"
	"greenroots/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// impactTTL bounds the staleness of the cached per-user impact aggregate.
// The cache is also invalidated eagerly when an order item lands.
const impactTTL = 5 * time.Minute

func impactKey(userID uuid.UUID) string { return "impact:" + userID.String() }

type UserService interface {
	List(ctx context.Context, filter dto.ListFilter) (*dto.UserListResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error)
	// Impact aggregates co2/o2 absorption across all the user's order items,
	// served from Redis when a fresh copy exists.
	Impact(ctx context.Context, id uuid.UUID) (*dto.ImpactResponse, error)
	Create(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateUserRequest) (*dto.UserResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	repo repository.UserRepository
	rdb  *redis.Client // nil disables the impact cache
}

func NewUserService(repo repository.UserRepository, rdb *redis.Client) UserService {
	return &userService{repo: repo, rdb: rdb}
}

func (s *userService) List(ctx context.Context, filter dto.ListFilter) (*dto.UserListResponse, error) {
	var (
		users []model.User
		total int64
		err   error
	)
	if filter.WithCount {
		users, total, err = s.repo.ListWithCount(ctx, filter.Limit, filter.Offset)
	} else {
		users, err = s.repo.List(ctx, filter.Limit, filter.Offset)
		total = int64(len(users))
	}
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ErrNotFound
	}

	resp := &dto.UserListResponse{Users: make([]dto.UserResponse, 0, len(users)), Total: total}
	for i := range users {
		resp.Users = append(resp.Users, userToResponse(&users[i]))
	}
	return resp, nil
}

func (s *userService) Get(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, orNotFound(err)
	}
	resp := userToResponse(user)
	return &resp, nil
}

func (s *userService) Impact(ctx context.Context, id uuid.UUID) (*dto.ImpactResponse, error) {
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, impactKey(id)).Result(); err == nil {
			var cached dto.ImpactResponse
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return &cached, nil
			}
		}
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, orNotFound(err)
	}
	impact, err := s.repo.ImpactByUser(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := &dto.ImpactResponse{TotalCO2: impact.TotalCO2, TotalO2: impact.TotalO2}

	if s.rdb != nil {
		if raw, err := json.Marshal(resp); err == nil {
			s.rdb.Set(ctx, impactKey(id), raw, impactTTL)
		}
	}
	return resp, nil
}

func (s *userService) Create(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return nil, ErrConflict
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Firstname:    req.Firstname,
		Lastname:     req.Lastname,
		Phone:        req.Phone,
		Address:      req.Address,
		Zipcode:      req.Zipcode,
		City:         req.City,
		Role:         req.Role,
	}
	if err := s.repo.Insert(ctx, user); err != nil {
		return nil, err
	}
	resp := userToResponse(user)
	return &resp, nil
}

// Update applies only the fields present in the payload. A new password is
// hashed before it reaches storage; the plaintext never leaves this method.
func (s *userService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	fields := map[string]any{}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), 12)
		if err != nil {
			return nil, err
		}
		fields["passwordHash"] = string(hash)
	}
	if req.Firstname != nil {
		fields["firstname"] = *req.Firstname
	}
	if req.Lastname != nil {
		fields["lastname"] = *req.Lastname
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Address != nil {
		fields["address"] = *req.Address
	}
	if req.Zipcode != nil {
		fields["zipcode"] = *req.Zipcode
	}
	if req.City != nil {
		fields["city"] = *req.City
	}
	if req.Role != nil {
		fields["role"] = *req.Role
	}
	if len(fields) == 0 {
		return s.Get(ctx, id)
	}

	user, err := s.repo.UpdateFields(ctx, id, fields)
	if err != nil {
		return nil, orNotFound(err)
	}
	resp := userToResponse(user)
	return &resp, nil
}

// Delete refuses while the user still owns orders, keeping purchase history
// attributable.
func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	owns, err := s.repo.HasOrders(ctx, id)
	if err != nil {
		return err
	}
	if owns {
		return ErrReferentialBlock
	}
	_, err = s.repo.Remove(ctx, id)
	return orNotFound(err)
}
