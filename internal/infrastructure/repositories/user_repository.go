package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/AI-Matrix-Zoo/smart-community-sub000/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags). The
// unique indexes are the authoritative uniqueness guard: a concurrent
// insert racing past the service-level pre-checks fails here.
type DBUser struct {
	ID                string  `gorm:"primaryKey;size:32"`
	Email             *string `gorm:"uniqueIndex;size:255"`
	Phone             string  `gorm:"uniqueIndex;size:32"`
	Name              string  `gorm:"uniqueIndex;size:64"`
	PasswordHash      string  `gorm:"column:password;size:255"`
	Role              string  `gorm:"index;size:16"`
	Building          string  `gorm:"size:64;uniqueIndex:idx_users_residence,where:role = 'USER'"`
	Unit              string  `gorm:"size:64;uniqueIndex:idx_users_residence"`
	Room              string  `gorm:"size:64;uniqueIndex:idx_users_residence"`
	IdentityImagePath string  `gorm:"size:255"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository. A duplicate-key violation from
// any of the unique indexes is reported as a conflict.
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrAlreadyRegistered
		}
		return err
	}
	user.CreatedAt = dbUser.CreatedAt
	user.UpdatedAt = dbUser.UpdatedAt
	return nil
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByName implements domain.UserRepository
func (r *UserRepositoryImpl) FindByName(ctx context.Context, name string) (*domain.User, error) {
	return r.findOne(ctx, "name = ?", name)
}

// FindByEmail implements domain.UserRepository
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

// FindByPhone implements domain.UserRepository
func (r *UserRepositoryImpl) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return r.findOne(ctx, "phone = ?", phone)
}

// ResidenceTaken reports whether a USER-role record already claims the
// normalized (building, unit, room) triple.
func (r *UserRepositoryImpl) ResidenceTaken(ctx context.Context, building, unit, room string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&DBUser{}).
		Where("building = ? AND unit = ? AND room = ? AND role = ?", building, unit, room, domain.RoleUser).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdatePassword implements domain.UserRepository
func (r *UserRepositoryImpl) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", id).Update("password", passwordHash).Error
}

func (r *UserRepositoryImpl) findOne(ctx context.Context, query string, arg string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where(query, arg).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// domainToDB converts domain user to database user
func (r *UserRepositoryImpl) domainToDB(user *domain.User) *DBUser {
	var email *string
	if user.Email != "" {
		email = &user.Email
	}
	return &DBUser{
		ID:                user.ID,
		Email:             email,
		Phone:             user.Phone,
		Name:              user.Name,
		PasswordHash:      user.PasswordHash,
		Role:              user.Role,
		Building:          user.Building,
		Unit:              user.Unit,
		Room:              user.Room,
		IdentityImagePath: user.IdentityImagePath,
	}
}

// dbToDomain converts database user to domain user
func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	email := ""
	if dbUser.Email != nil {
		email = *dbUser.Email
	}
	return &domain.User{
		ID:                dbUser.ID,
		Email:             email,
		Phone:             dbUser.Phone,
		Name:              dbUser.Name,
		PasswordHash:      dbUser.PasswordHash,
		Role:              dbUser.Role,
		Building:          dbUser.Building,
		Unit:              dbUser.Unit,
		Room:              dbUser.Room,
		IdentityImagePath: dbUser.IdentityImagePath,
		CreatedAt:         dbUser.CreatedAt,
		UpdatedAt:         dbUser.UpdatedAt,
	}
}
