package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/amankumarsingh77/channel-monitor/internal/auth"
	"github.com/amankumarsingh77/channel-monitor/internal/models"
	"github.com/amankumarsingh77/channel-monitor/pkg/apperrors"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type authRepo struct {
	db *sqlx.DB
}

func NewAuthRepo(db *sqlx.DB) auth.Repository {
	return &authRepo{
		db: db,
	}
}

func (a *authRepo) Register(ctx context.Context, user *models.User) (*models.User, error) {
	u := &models.User{}
	err := a.db.QueryRowxContext(
		ctx,
		createUser,
		&user.Fullname,
		&user.Email,
		&user.Password,
		&user.Username,
		&user.Role,
	).StructScan(u)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}

func (a *authRepo) GetByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	u := &models.User{}
	if err := a.db.QueryRowxContext(
		ctx,
		getUserQuery,
		userID,
	).StructScan(u); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("user %s not found", userID)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

func (a *authRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	u := &models.User{}
	if err := a.db.QueryRowxContext(
		ctx,
		getUserByEmail,
		email,
	).StructScan(u); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("user with email %s not found", email)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}
