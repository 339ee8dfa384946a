package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"electrifind/internal/data/entity"
	"electrifind/pkg/apperr"
	"electrifind/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// ProfileUpdate carries the allow-listed mutable fields. Nil means
// "leave untouched"; the secret, role and status flags are not reachable
// through this path.
type ProfileUpdate struct {
	Name         *string
	Email        *string
	ProfileImage *string
	Address      *entity.Address
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByPhone(ctx context.Context, phone string, includeSecret bool) (*entity.User, error)
	FindSecretByID(ctx context.Context, id uuid.UUID) (string, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error)
	CountAll(ctx context.Context) (int64, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, fields ProfileUpdate) (*entity.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	RecordLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log,
	}
}

// safe column list, password deliberately absent
const userColumns = `id, name, email, phone, role, profile_image,
	       address_street, address_area, address_city, address_district,
	       longitude, latitude, loyalty_points, total_referrals,
	       is_verified, is_active, fcm_token, last_login, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Phone,
		&user.Role,
		&user.ProfileImage,
		&user.Address.Street,
		&user.Address.Area,
		&user.Address.City,
		&user.Address.District,
		&user.Longitude,
		&user.Latitude,
		&user.LoyaltyPoints,
		&user.TotalReferrals,
		&user.IsVerified,
		&user.IsActive,
		&user.FCMToken,
		&user.LastLogin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user record. Phone and email uniqueness is owned by
// the database constraints; a unique violation surfaces as Conflict so a
// race between two registrations is decided by the store, not the pre-check.
func (ur *userRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, name, email, phone, password, role, profile_image,
		                  address_street, address_area, address_city, address_district,
		                  longitude, latitude, loyalty_points, total_referrals,
		                  is_verified, is_active, fcm_token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`

	_, err := ur.db.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.Phone,
		user.PasswordHash,
		user.Role,
		user.ProfileImage,
		user.Address.Street,
		user.Address.Area,
		user.Address.City,
		user.Address.District,
		user.Longitude,
		user.Latitude,
		user.LoyaltyPoints,
		user.TotalReferrals,
		user.IsVerified,
		user.IsActive,
		user.FCMToken,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			if strings.Contains(pgErr.ConstraintName, "email") {
				return apperr.Conflict("Email already registered")
			}
			return apperr.Conflict("Phone number already registered")
		}

		ur.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("phone", user.Phone),
		)
		return fmt.Errorf("create user %s: %w", user.Phone, err)
	}

	return nil
}

func (ur *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`

	user, err := scanUser(ur.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by ID",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return nil, fmt.Errorf("find user by ID %s: %w", id.String(), err)
	}

	return user, nil
}

// FindByPhone looks a user up by phone number. The password hash is
// scanned only when includeSecret is set, for credential verification.
func (ur *userRepository) FindByPhone(ctx context.Context, phone string, includeSecret bool) (*entity.User, error) {
	if !includeSecret {
		query := `
			SELECT ` + userColumns + `
			FROM users
			WHERE phone = $1
		`
		user, err := scanUser(ur.db.QueryRow(ctx, query, phone))
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		if err != nil {
			ur.log.Error("Failed to find user by phone",
				zap.Error(err),
				zap.String("phone", phone),
			)
			return nil, fmt.Errorf("find user by phone %s: %w", phone, err)
		}
		return user, nil
	}

	query := `
		SELECT password, ` + userColumns + `
		FROM users
		WHERE phone = $1
	`

	var user entity.User
	err := ur.db.QueryRow(ctx, query, phone).Scan(
		&user.PasswordHash,
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Phone,
		&user.Role,
		&user.ProfileImage,
		&user.Address.Street,
		&user.Address.Area,
		&user.Address.City,
		&user.Address.District,
		&user.Longitude,
		&user.Latitude,
		&user.LoyaltyPoints,
		&user.TotalReferrals,
		&user.IsVerified,
		&user.IsActive,
		&user.FCMToken,
		&user.LastLogin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by phone",
			zap.Error(err),
			zap.String("phone", phone),
		)
		return nil, fmt.Errorf("find user by phone %s: %w", phone, err)
	}

	return &user, nil
}

// FindSecretByID loads only the stored password hash, for credential
// verification before a password change.
func (ur *userRepository) FindSecretByID(ctx context.Context, id uuid.UUID) (string, error) {
	query := `SELECT password FROM users WHERE id = $1`

	var hash string
	err := ur.db.QueryRow(ctx, query, id).Scan(&hash)
	if err == pgx.ErrNoRows {
		return "", apperr.NotFound("User not found")
	}
	if err != nil {
		ur.log.Error("Failed to load password hash",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return "", fmt.Errorf("find secret by ID %s: %w", id.String(), err)
	}

	return hash, nil
}

// FindAll retrieves paginated list of users
func (ur *userRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := ur.db.Query(ctx, query, limit, offset)
	if err != nil {
		ur.log.Error("Failed to get all users",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all users limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			ur.log.Error("Failed to scan user row", zap.Error(err))
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		ur.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate users rows: %w", err)
	}

	return users, nil
}

func (ur *userRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM users`

	var count int64
	err := ur.db.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		ur.log.Error("Database error counting users", zap.Error(err))
		return 0, fmt.Errorf("count all users: %w", err)
	}

	return count, nil
}

// UpdateProfile applies the allow-listed fields; nil fields keep their
// stored value. A provided address replaces the whole address block.
func (ur *userRepository) UpdateProfile(ctx context.Context, id uuid.UUID, fields ProfileUpdate) (*entity.User, error) {
	var street, area, city, district *string
	if fields.Address != nil {
		street = &fields.Address.Street
		area = &fields.Address.Area
		city = &fields.Address.City
		district = &fields.Address.District
	}

	query := `
		UPDATE users
		SET name = COALESCE($2, name),
		    email = COALESCE($3, email),
		    profile_image = COALESCE($4, profile_image),
		    address_street = COALESCE($5, address_street),
		    address_area = COALESCE($6, address_area),
		    address_city = COALESCE($7, address_city),
		    address_district = COALESCE($8, address_district),
		    updated_at = $9
		WHERE id = $1
		RETURNING ` + userColumns + `
	`

	user, err := scanUser(ur.db.QueryRow(ctx, query,
		id,
		fields.Name,
		fields.Email,
		fields.ProfileImage,
		street,
		area,
		city,
		district,
		time.Now(),
	))

	if err == pgx.ErrNoRows {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, apperr.Conflict("Email already registered")
		}

		ur.log.Error("Failed to update profile",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return nil, fmt.Errorf("update profile %s: %w", id.String(), err)
	}

	return user, nil
}

// UpdatePassword is the only write path for the stored secret. The hash
// is computed by the caller exactly once per plaintext.
func (ur *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	query := `UPDATE users SET password = $2, updated_at = $3 WHERE id = $1`

	result, err := ur.db.Exec(ctx, query, id, passwordHash, time.Now())
	if err != nil {
		ur.log.Error("Failed to update password",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return fmt.Errorf("update password %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("User not found")
	}

	return nil
}

// RecordLogin stamps last_login. Callers treat failures as non-fatal.
func (ur *userRepository) RecordLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `UPDATE users SET last_login = $2 WHERE id = $1`

	_, err := ur.db.Exec(ctx, query, id, at)
	if err != nil {
		return fmt.Errorf("record login %s: %w", id.String(), err)
	}

	return nil
}

// Deactivate clears the active flag. Records are never hard-deleted.
func (ur *userRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE users SET is_active = FALSE, updated_at = $2 WHERE id = $1`

	result, err := ur.db.Exec(ctx, query, id, time.Now())
	if err != nil {
		ur.log.Error("Failed to deactivate user",
			zap.Error(err),
			zap.String("id", id.String()),
		)
		return fmt.Errorf("deactivate user %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("User not found")
	}

	ur.log.Info("User deactivated", zap.String("id", id.String()))
	return nil
}
