package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Operator is a back-office account. Unlike marketplace accounts these are
// stored server-side with a bcrypt password hash.
type Operator struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

var errInvalidCredentials = errors.New("invalid operator credentials")

func (a *App) storeAuthenticateOperator(ctx context.Context, email, password string) (*Operator, error) {
	var op Operator
	var hash string
	err := a.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, role, is_active, created_at
		FROM operators
		WHERE LOWER(email) = LOWER($1)
	`, email).Scan(&op.ID, &op.Email, &hash, &op.Role, &op.IsActive, &op.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load operator: %w", err)
	}
	if !op.IsActive {
		return nil, errInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, errInvalidCredentials
	}
	return &op, nil
}

func (a *App) storeListOperators(ctx context.Context) ([]Operator, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT id, email, role, is_active, created_at
		FROM operators
		ORDER BY email ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list operators: %w", err)
	}
	defer rows.Close()

	operators := make([]Operator, 0)
	for rows.Next() {
		var op Operator
		if err := rows.Scan(&op.ID, &op.Email, &op.Role, &op.IsActive, &op.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan operator: %w", err)
		}
		operators = append(operators, op)
	}
	return operators, rows.Err()
}

func (a *App) storeCreateOperator(ctx context.Context, email, password, role string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	_, err = a.db.ExecContext(ctx, `
		INSERT INTO operators (email, password_hash, role, is_active)
		VALUES (LOWER($1), $2, $3, TRUE)
	`, email, string(hash), role)
	if err != nil {
		return fmt.Errorf("failed to create operator: %w", err)
	}
	return nil
}

func (a *App) storeToggleOperatorStatus(ctx context.Context, id int) (bool, error) {
	var isActive bool
	err := a.db.QueryRowContext(ctx, `
		UPDATE operators SET is_active = NOT is_active WHERE id = $1
		RETURNING is_active
	`, id).Scan(&isActive)
	if err != nil {
		return false, fmt.Errorf("failed to toggle operator status: %w", err)
	}
	return isActive, nil
}

// bootstrapOperator creates the initial admin account when the operators
// table is empty and the bootstrap credentials are configured.
func (a *App) bootstrapOperator(ctx context.Context) error {
	if a.cfg.BootstrapOperatorEmail == "" || a.cfg.BootstrapOperatorPassword == "" {
		return nil
	}

	var count int
	if err := a.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM operators`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count operators: %w", err)
	}
	if count > 0 {
		return nil
	}

	if err := a.storeCreateOperator(ctx, a.cfg.BootstrapOperatorEmail, a.cfg.BootstrapOperatorPassword, "admin"); err != nil {
		return err
	}
	a.log.Info("bootstrapped initial operator", "email", a.cfg.BootstrapOperatorEmail)
	return nil
}
