package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mfk4us/bocc-client-panel/internal/models"
)

// DB is the subset of pgxpool.Pool the repositories use. pgxmock satisfies it
// too, which is what the repository tests run against.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
	Update(ctx context.Context, profile *models.Profile) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteMany(ctx context.Context, ids []uuid.UUID) (int64, error)
	UpdateStatusMany(ctx context.Context, ids []uuid.UUID, status string) (int64, error)
	ListAll(ctx context.Context) ([]models.Profile, error)
}

type profileRepo struct {
	db DB
}

func NewProfileRepo(db DB) ProfileRepository {
	return &profileRepo{db: db}
}

const profileColumns = `id, email, password_hash, role, workflow_name, phone_number, business_name, customer_name, status, created_at, updated_at`

func scanProfile(row pgx.Row) (*models.Profile, error) {
	p := &models.Profile{}
	err := row.Scan(&p.ID, &p.Email, &p.PasswordHash, &p.Role, &p.WorkflowName, &p.PhoneNumber,
		&p.BusinessName, &p.CustomerName, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *profileRepo) Create(ctx context.Context, profile *models.Profile) error {
	query := `
		INSERT INTO profiles (id, email, password_hash, role, workflow_name, phone_number, business_name, customer_name, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, profile.ID, profile.Email, profile.PasswordHash, profile.Role,
		profile.WorkflowName, profile.PhoneNumber, profile.BusinessName, profile.CustomerName, profile.Status)
	return err
}

func (r *profileRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	return scanProfile(r.db.QueryRow(ctx, query, id))
}

func (r *profileRepo) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE email = $1`
	return scanProfile(r.db.QueryRow(ctx, query, email))
}

func (r *profileRepo) Update(ctx context.Context, profile *models.Profile) error {
	query := `
		UPDATE profiles
		SET role = $1, workflow_name = $2, phone_number = $3, business_name = $4, customer_name = $5, status = $6, updated_at = NOW()
		WHERE id = $7
	`
	_, err := r.db.Exec(ctx, query, profile.Role, profile.WorkflowName, profile.PhoneNumber,
		profile.BusinessName, profile.CustomerName, profile.Status, profile.ID)
	return err
}

func (r *profileRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM profiles WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

// DeleteMany removes the whole identifier set in one statement. Callers treat
// the batch as a unit; there is no per-item accounting.
func (r *profileRepo) DeleteMany(ctx context.Context, ids []uuid.UUID) (int64, error) {
	query := `DELETE FROM profiles WHERE id = ANY($1)`
	tag, err := r.db.Exec(ctx, query, ids)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *profileRepo) UpdateStatusMany(ctx context.Context, ids []uuid.UUID, status string) (int64, error) {
	query := `UPDATE profiles SET status = $1, updated_at = NOW() WHERE id = ANY($2)`
	tag, err := r.db.Exec(ctx, query, status, ids)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// ListAll returns every profile in insertion order. The list view filters and
// paginates in memory, so there is no SQL-side predicate here.
func (r *profileRepo) ListAll(ctx context.Context) ([]models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles ORDER BY created_at ASC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []models.Profile
	for rows.Next() {
		p := models.Profile{}
		if err := rows.Scan(&p.ID, &p.Email, &p.PasswordHash, &p.Role, &p.WorkflowName, &p.PhoneNumber,
			&p.BusinessName, &p.CustomerName, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}
