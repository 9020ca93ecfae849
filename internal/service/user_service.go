package service

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"vesseltrack/internal/auth"
	"vesseltrack/internal/cache"
	"vesseltrack/internal/errors"
	"vesseltrack/internal/model"
	"vesseltrack/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// cachedUser is the redis projection of a user record. The password hash is
// deliberately absent: GetUser resolves principals, not credentials, and the
// hash must never leave the primary store.
type cachedUser struct {
	ID        uint       `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Fullname  string     `json:"fullname"`
	Role      model.Role `json:"role"`
	IsStaff   bool       `json:"is_staff"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func newCachedUser(u *model.User) cachedUser {
	return cachedUser{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Fullname:  u.Fullname,
		Role:      u.Role,
		IsStaff:   u.IsStaff,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (c cachedUser) toUser() *model.User {
	return &model.User{
		ID:        c.ID,
		Username:  c.Username,
		Email:     c.Email,
		Fullname:  c.Fullname,
		Role:      c.Role,
		IsStaff:   c.IsStaff,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ProfilePatch carries the self-service profile fields. Nil pointers mean the
// field is absent from the request and left untouched.
type ProfilePatch struct {
	Fullname *string
	Email    *string
}

// UserPatch carries the admin-path update fields. There is no field-level
// allow-list beyond the record-level permission check: a staff requester may
// set role and is_staff through this same generic patch.
type UserPatch struct {
	Username *string
	Email    *string
	Fullname *string
	Role     *string
	IsStaff  *bool
}

// UserService exposes profile and administrative user operations.
type UserService interface {
	GetUser(ctx context.Context, id uint) (*model.User, error)
	GetUserDetail(ctx context.Context, principal *auth.Principal, id uint) (*model.User, error)
	UpdateOwnProfile(ctx context.Context, principal *auth.Principal, patch ProfilePatch) (*model.User, error)
	UpdateUser(ctx context.Context, principal *auth.Principal, targetID uint, patch UserPatch) (*model.User, error)
	ListUsers(ctx context.Context, principal *auth.Principal) ([]model.UserSummary, error)
	Stats(ctx context.Context, principal *auth.Principal) (*model.UserStats, error)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func (s *userService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// GetUser resolves a user by id through a read-through cache. The auth
// middleware uses this on every authenticated request, so staff and role
// checks see near-current store state. The returned record never carries
// a password hash; credential checks go through the repository directly.
func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached cachedUser
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached.toUser(), nil
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}

	projected := newCachedUser(user)
	if payload, err := json.Marshal(projected); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, userCacheTTL)
	}
	return projected.toUser(), nil
}

// GetUserDetail returns any user's full detail to any authenticated
// requester. There is intentionally no ownership or staff check here.
func (s *userService) GetUserDetail(ctx context.Context, principal *auth.Principal, id uint) (*model.User, error) {
	if !auth.CanAccess(principal, auth.OpViewUserDetail, id) {
		return nil, errors.ErrPermissionDenied
	}
	return s.GetUser(ctx, id)
}

// UpdateOwnProfile applies the fullname/email fields present in the patch to
// the requester's own record. All other fields are immutable via this path.
func (s *userService) UpdateOwnProfile(ctx context.Context, principal *auth.Principal, patch ProfilePatch) (*model.User, error) {
	// The evaluator decides before the principal is touched: a nil
	// principal must be denied, not dereferenced.
	if !auth.CanAccess(principal, auth.OpUpdateOwnProfile, 0) {
		return nil, errors.ErrPermissionDenied
	}

	fields := map[string]interface{}{}
	if patch.Fullname != nil {
		fields["fullname"] = *patch.Fullname
	}
	if patch.Email != nil {
		fields["email"] = *patch.Email
	}

	return s.applyUpdate(ctx, principal.ID, fields)
}

// UpdateUser applies a generic partial update to the target user. Permitted
// for the target themselves or any staff requester.
func (s *userService) UpdateUser(ctx context.Context, principal *auth.Principal, targetID uint, patch UserPatch) (*model.User, error) {
	target, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}

	if !auth.CanAccess(principal, auth.OpUpdateUserDetail, target.ID) {
		return nil, errors.ErrPermissionDenied
	}

	fields := map[string]interface{}{}
	if patch.Username != nil {
		fields["username"] = *patch.Username
	}
	if patch.Email != nil {
		fields["email"] = *patch.Email
	}
	if patch.Fullname != nil {
		fields["fullname"] = *patch.Fullname
	}
	if patch.Role != nil {
		role := model.Role(*patch.Role)
		if !role.Valid() {
			return nil, errors.NewValidationError("role", fmt.Sprintf("%q is not a valid choice", *patch.Role))
		}
		fields["role"] = role
	}
	if patch.IsStaff != nil {
		fields["is_staff"] = *patch.IsStaff
	}

	return s.applyUpdate(ctx, target.ID, fields)
}

// applyUpdate writes the patch in one store call, drops the cached copy, and
// returns the fresh record. An empty patch is a no-op read.
func (s *userService) applyUpdate(ctx context.Context, id uint, fields map[string]interface{}) (*model.User, error) {
	if len(fields) > 0 {
		if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
		_ = s.cache.Delete(ctx, s.cacheKey(id))
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers returns summaries of every user, gated on the staff flag.
func (s *userService) ListUsers(ctx context.Context, principal *auth.Principal) ([]model.UserSummary, error) {
	if !auth.CanAccess(principal, auth.OpListUsers, 0) {
		return nil, errors.ErrPermissionDenied
	}

	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]model.UserSummary, 0, len(users))
	for i := range users {
		summaries = append(summaries, users[i].Summary())
	}
	return summaries, nil
}

// Stats returns user counts grouped by role, gated on the staff flag.
func (s *userService) Stats(ctx context.Context, principal *auth.Principal) (*model.UserStats, error) {
	if !auth.CanAccess(principal, auth.OpViewStats, 0) {
		return nil, errors.ErrPermissionDenied
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	operators, err := s.repo.CountByRole(ctx, model.RoleOperator)
	if err != nil {
		return nil, err
	}
	analysts, err := s.repo.CountByRole(ctx, model.RoleAnalyst)
	if err != nil {
		return nil, err
	}
	admins, err := s.repo.CountByRole(ctx, model.RoleAdmin)
	if err != nil {
		return nil, err
	}

	return &model.UserStats{
		TotalUsers: total,
		Operators:  operators,
		Analysts:   analysts,
		Admins:     admins,
	}, nil
}
