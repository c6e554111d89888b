package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mfk4us/bocc-client-panel/internal/models"
)

type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Message, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, sentAt *time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, workflowName string, limit, offset int) ([]*models.Message, error)
}

type messageRepo struct {
	db DB
}

func NewMessageRepo(db DB) MessageRepository {
	return &messageRepo{db: db}
}

func (r *messageRepo) Create(ctx context.Context, message *models.Message) error {
	query := `
		INSERT INTO messages (id, workflow_name, channel, recipient, template_name, body, status, sent_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	`
	_, err := r.db.Exec(ctx, query, message.ID, message.WorkflowName, message.Channel,
		message.Recipient, message.TemplateName, message.Body, message.Status, message.SentAt)
	return err
}

func (r *messageRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Message, error) {
	message := &models.Message{}
	query := `
		SELECT id, workflow_name, channel, recipient, template_name, body, status, sent_at, created_at
		FROM messages
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&message.ID, &message.WorkflowName, &message.Channel,
		&message.Recipient, &message.TemplateName, &message.Body, &message.Status, &message.SentAt, &message.CreatedAt)
	if err != nil {
		return nil, err
	}
	return message, nil
}

func (r *messageRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string, sentAt *time.Time) error {
	query := `UPDATE messages SET status = $1, sent_at = $2 WHERE id = $3`
	_, err := r.db.Exec(ctx, query, status, sentAt, id)
	return err
}

func (r *messageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM messages WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *messageRepo) List(ctx context.Context, workflowName string, limit, offset int) ([]*models.Message, error) {
	query := `
		SELECT id, workflow_name, channel, recipient, template_name, body, status, sent_at, created_at
		FROM messages
		WHERE workflow_name = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, workflowName, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*models.Message
	for rows.Next() {
		message := &models.Message{}
		if err := rows.Scan(&message.ID, &message.WorkflowName, &message.Channel,
			&message.Recipient, &message.TemplateName, &message.Body, &message.Status,
			&message.SentAt, &message.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}
	return messages, rows.Err()
}
