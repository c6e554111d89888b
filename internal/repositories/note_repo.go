package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mfk4us/bocc-client-panel/internal/models"
)

type NoteRepository interface {
	Create(ctx context.Context, note *models.Note) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Note, error)
	Update(ctx context.Context, note *models.Note) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, workflowName string, limit, offset int) ([]*models.Note, error)
	ListByCustomer(ctx context.Context, workflowName, customerPhone string) ([]*models.Note, error)
}

type noteRepo struct {
	db DB
}

func NewNoteRepo(db DB) NoteRepository {
	return &noteRepo{db: db}
}

func (r *noteRepo) Create(ctx context.Context, note *models.Note) error {
	query := `
		INSERT INTO customer_notes (id, workflow_name, customer_phone, author, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, note.ID, note.WorkflowName, note.CustomerPhone, note.Author, note.Content)
	return err
}

func (r *noteRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Note, error) {
	note := &models.Note{}
	query := `
		SELECT id, workflow_name, customer_phone, author, content, created_at, updated_at
		FROM customer_notes
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&note.ID, &note.WorkflowName, &note.CustomerPhone,
		&note.Author, &note.Content, &note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return note, nil
}

func (r *noteRepo) Update(ctx context.Context, note *models.Note) error {
	query := `
		UPDATE customer_notes
		SET content = $1, updated_at = NOW()
		WHERE id = $2
	`
	_, err := r.db.Exec(ctx, query, note.Content, note.ID)
	return err
}

func (r *noteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM customer_notes WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *noteRepo) List(ctx context.Context, workflowName string, limit, offset int) ([]*models.Note, error) {
	query := `
		SELECT id, workflow_name, customer_phone, author, content, created_at, updated_at
		FROM customer_notes
		WHERE workflow_name = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, workflowName, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectNotes(rows)
}

func (r *noteRepo) ListByCustomer(ctx context.Context, workflowName, customerPhone string) ([]*models.Note, error) {
	query := `
		SELECT id, workflow_name, customer_phone, author, content, created_at, updated_at
		FROM customer_notes
		WHERE workflow_name = $1 AND customer_phone = $2
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, workflowName, customerPhone)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectNotes(rows)
}

func collectNotes(rows pgx.Rows) ([]*models.Note, error) {
	var notes []*models.Note
	for rows.Next() {
		note := &models.Note{}
		if err := rows.Scan(&note.ID, &note.WorkflowName, &note.CustomerPhone,
			&note.Author, &note.Content, &note.CreatedAt, &note.UpdatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}
