package usecase

import (
	"context"
	"strings"
	"time"

	"electrifind/internal/data/entity"
	"electrifind/internal/data/repository"
	"electrifind/internal/dto/request"
	"electrifind/internal/dto/response"
	"electrifind/pkg/apperr"
	"electrifind/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	GetMe(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, req *request.ChangePasswordRequest) (string, error)
}

type authService struct {
	userRepo repository.UserRepository
	tokens   TokenService
	log      *zap.Logger
}

func NewAuthService(userRepo repository.UserRepository, tokens TokenService, log *zap.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		log:      log,
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation(utils.FormatValidationErrors(errs))
	}

	// 2. Fast-path duplicate check. The database unique constraint is the
	// real guard; this only gives a friendlier answer for the common case.
	existing, err := s.userRepo.FindByPhone(ctx, req.Phone, false)
	if err != nil {
		s.log.Error("Failed to check phone", zap.Error(err), zap.String("phone", req.Phone))
		return nil, apperr.Internal(err)
	}
	if existing != nil {
		return nil, apperr.Conflict("Phone number already registered")
	}

	// 3. Hash password
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, apperr.Internal(err)
	}

	// 4. Role defaults to customer at this boundary
	role := entity.UserRole(req.Role)
	if role == "" {
		role = entity.RoleCustomer
	}
	if !role.Valid() {
		return nil, apperr.Validation("Invalid role")
	}

	// 5. Build user record with schema defaults
	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         strings.TrimSpace(req.Name),
		Email:        normalizeEmail(req.Email),
		Phone:        req.Phone,
		PasswordHash: hashedPassword,
		Role:         role,
		ProfileImage: entity.DefaultProfileImage,
		Address: entity.Address{
			City:     entity.DefaultCity,
			District: entity.DefaultDistrict,
		},
		IsActive: true,
	}

	// 6. Persist. A concurrent registration with the same phone loses here
	// and comes back as Conflict from the store.
	if err := s.userRepo.Create(ctx, user); err != nil {
		if apperr.KindOf(err) == apperr.KindConflict {
			return nil, err
		}
		s.log.Error("Failed to create user", zap.Error(err), zap.String("phone", req.Phone))
		return nil, apperr.Internal(err)
	}

	// 7. Issue token
	token, _, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		s.log.Error("Failed to issue token after register",
			zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, apperr.Internal(err)
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("phone", user.Phone),
		zap.String("role", string(user.Role)))

	return &response.AuthResponse{
		Token: token,
		User:  response.NewAuthUser(user, false),
	}, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation(utils.FormatValidationErrors(errs))
	}

	// 2. Find user with secret included
	user, err := s.userRepo.FindByPhone(ctx, req.Phone, true)
	if err != nil {
		s.log.Error("Failed to find user for login", zap.Error(err), zap.String("phone", req.Phone))
		return nil, apperr.Internal(err)
	}

	// 3. Unknown phone and wrong password answer identically so the
	// response cannot reveal whether a phone is registered.
	if user == nil {
		s.log.Warn("User not found for login", zap.String("phone", req.Phone))
		return nil, apperr.Unauthorized("Invalid credentials")
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	// 4. Deactivated accounts are told so, after the credentials matched
	if !user.IsActive {
		s.log.Warn("Inactive user tried to login", zap.String("user_id", user.ID.String()))
		return nil, apperr.Forbidden("Your account has been deactivated. Please contact support.")
	}

	// 5. Best-effort last-login stamp; a failure must not fail the login
	if err := s.userRepo.RecordLogin(ctx, user.ID, time.Now()); err != nil {
		s.log.Warn("Failed to record last login",
			zap.Error(err), zap.String("user_id", user.ID.String()))
	}

	// 6. Issue token
	token, _, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		s.log.Error("Failed to issue token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, apperr.Internal(err)
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("phone", user.Phone))

	return &response.AuthResponse{
		Token: token,
		User:  response.NewAuthUser(user, true),
	}, nil
}

func (s *authService) GetMe(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to load profile", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, apperr.Internal(err)
	}
	if user == nil {
		return nil, apperr.NotFound("User not found")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	// 1. Validate the fields that are present
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update profile validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation(utils.FormatValidationErrors(errs))
	}

	// 2. Map onto the allow-listed update; absent fields stay untouched
	fields := repository.ProfileUpdate{
		Name:         req.Name,
		Email:        normalizeEmail(req.Email),
		ProfileImage: req.ProfileImage,
	}
	if req.Address != nil {
		fields.Address = &entity.Address{
			Street:   req.Address.Street,
			Area:     req.Address.Area,
			City:     req.Address.City,
			District: req.Address.District,
		}
	}

	user, err := s.userRepo.UpdateProfile(ctx, userID, fields)
	if err != nil {
		if apperr.KindOf(err) != apperr.KindInternal {
			return nil, err
		}
		s.log.Error("Failed to update profile", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, apperr.Internal(err)
	}

	s.log.Info("Profile updated", zap.String("user_id", userID.String()))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID uuid.UUID, req *request.ChangePasswordRequest) (string, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Change password validation failed", zap.Any("errors", errs))
		return "", apperr.Validation(utils.FormatValidationErrors(errs))
	}

	// 2. Verify the current password before touching anything
	storedHash, err := s.userRepo.FindSecretByID(ctx, userID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return "", err
		}
		s.log.Error("Failed to load password hash", zap.Error(err), zap.String("user_id", userID.String()))
		return "", apperr.Internal(err)
	}
	if !utils.CheckPasswordHash(req.CurrentPassword, storedHash) {
		s.log.Warn("Change password with wrong current password",
			zap.String("user_id", userID.String()))
		return "", apperr.Unauthorized("Current password is incorrect")
	}

	// 3. Re-hash and persist through the only secret write path
	newHash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		s.log.Error("Failed to hash new password", zap.Error(err))
		return "", apperr.Internal(err)
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, newHash); err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return "", err
		}
		s.log.Error("Failed to update password", zap.Error(err), zap.String("user_id", userID.String()))
		return "", apperr.Internal(err)
	}

	// 4. Issue a fresh token. Previously issued tokens stay valid until
	// their natural expiry; there is no revocation infrastructure.
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil || user == nil {
		s.log.Error("Failed to reload user after password change",
			zap.Error(err), zap.String("user_id", userID.String()))
		return "", apperr.Internal(err)
	}

	token, _, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		s.log.Error("Failed to issue token after password change",
			zap.Error(err), zap.String("user_id", userID.String()))
		return "", apperr.Internal(err)
	}

	s.log.Info("Password changed", zap.String("user_id", userID.String()))

	return token, nil
}

// ==================== HELPERS ====================

func normalizeEmail(email *string) *string {
	if email == nil {
		return nil
	}
	normalized := strings.ToLower(strings.TrimSpace(*email))
	if normalized == "" {
		return nil
	}
	return &normalized
}
