package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/mfk4us/bocc-client-panel/internal/models"
)

type TeamMemberRepository interface {
	Create(ctx context.Context, member *models.TeamMember) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.TeamMember, error)
	Update(ctx context.Context, member *models.TeamMember) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, workflowName string, limit, offset int) ([]*models.TeamMember, error)
}

type teamMemberRepo struct {
	db DB
}

func NewTeamMemberRepo(db DB) TeamMemberRepository {
	return &teamMemberRepo{db: db}
}

func (r *teamMemberRepo) Create(ctx context.Context, member *models.TeamMember) error {
	query := `
		INSERT INTO team_members (id, workflow_name, email, name, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, member.ID, member.WorkflowName, member.Email, member.Name, member.Role, member.Status)
	return err
}

func (r *teamMemberRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.TeamMember, error) {
	member := &models.TeamMember{}
	query := `
		SELECT id, workflow_name, email, name, role, status, created_at, updated_at
		FROM team_members
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&member.ID, &member.WorkflowName, &member.Email,
		&member.Name, &member.Role, &member.Status, &member.CreatedAt, &member.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return member, nil
}

func (r *teamMemberRepo) Update(ctx context.Context, member *models.TeamMember) error {
	query := `
		UPDATE team_members
		SET email = $1, name = $2, role = $3, status = $4, updated_at = NOW()
		WHERE id = $5
	`
	_, err := r.db.Exec(ctx, query, member.Email, member.Name, member.Role, member.Status, member.ID)
	return err
}

func (r *teamMemberRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM team_members WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *teamMemberRepo) List(ctx context.Context, workflowName string, limit, offset int) ([]*models.TeamMember, error) {
	query := `
		SELECT id, workflow_name, email, name, role, status, created_at, updated_at
		FROM team_members
		WHERE workflow_name = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, workflowName, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*models.TeamMember
	for rows.Next() {
		member := &models.TeamMember{}
		if err := rows.Scan(&member.ID, &member.WorkflowName, &member.Email,
			&member.Name, &member.Role, &member.Status, &member.CreatedAt, &member.UpdatedAt); err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	return members, rows.Err()
}
