package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Profile is one account's subscription record.
type Profile struct {
	ID            string     `json:"id"`
	Email         string     `json:"email,omitempty"`
	Plan          string     `json:"plan"`
	PlanExpiresAt *time.Time `json:"plan_expires_at,omitempty"`
	PlanNotes     string     `json:"plan_notes,omitempty"`
	IsActive      bool       `json:"is_active"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// HasActiveAccess is the single boolean gate the engine's callers
// consume: the account is active and its plan has not expired.
func (p *Profile) HasActiveAccess(now time.Time) bool {
	if p == nil || !p.IsActive {
		return false
	}
	if p.PlanExpiresAt == nil {
		return true
	}
	return p.PlanExpiresAt.After(now)
}

const trialDays = 30

// ProfileRepository stores subscription plans keyed by account id.
type ProfileRepository struct {
	db *DB
}

func NewProfileRepository(db *DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// GetProfile returns the profile for an account, or nil when none
// exists.
func (r *ProfileRepository) GetProfile(ctx context.Context, id string) (*Profile, error) {
	var profile Profile
	err := r.db.QueryRowContext(ctx, `
		SELECT id, COALESCE(email, ''), plan, plan_expires_at,
		       COALESCE(plan_notes, ''), is_active, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`, id).Scan(&profile.ID, &profile.Email, &profile.Plan, &profile.PlanExpiresAt,
		&profile.PlanNotes, &profile.IsActive, &profile.CreatedAt, &profile.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile %s: %w", id, err)
	}

	return &profile, nil
}

// EnsureProfile returns the existing profile or creates a fresh trial
// one with a 30-day expiry.
func (r *ProfileRepository) EnsureProfile(ctx context.Context, id, email string) (*Profile, error) {
	existing, err := r.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	expiresAt := time.Now().AddDate(0, 0, trialDays)
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO profiles (id, email, plan, plan_expires_at, is_active)
		VALUES ($1, NULLIF($2, ''), 'trial', $3, TRUE)
		ON CONFLICT (id) DO NOTHING
	`, id, email, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile %s: %w", id, err)
	}

	return r.GetProfile(ctx, id)
}

// RenewPlan sets the account's plan and pushes the expiry days forward
// from now.
func (r *ProfileRepository) RenewPlan(ctx context.Context, id, plan string, days int) (*Profile, error) {
	expiresAt := time.Now().AddDate(0, 0, days)
	result, err := r.db.ExecContext(ctx, `
		UPDATE profiles
		SET plan = $2, plan_expires_at = $3, is_active = TRUE, updated_at = NOW()
		WHERE id = $1
	`, id, plan, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to renew plan for %s: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check renewal for %s: %w", id, err)
	}
	if affected == 0 {
		return nil, nil
	}

	return r.GetProfile(ctx, id)
}
