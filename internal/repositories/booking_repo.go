package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/mfk4us/bocc-client-panel/internal/models"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	Update(ctx context.Context, booking *models.Booking) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, workflowName string, limit, offset int) ([]*models.Booking, error)
}

type bookingRepo struct {
	db DB
}

func NewBookingRepo(db DB) BookingRepository {
	return &bookingRepo{db: db}
}

func (r *bookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	query := `
		INSERT INTO bookings (id, workflow_name, customer_name, phone_number, service, scheduled_at, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, booking.ID, booking.WorkflowName, booking.CustomerName,
		booking.PhoneNumber, booking.Service, booking.ScheduledAt, booking.Status, booking.Notes)
	return err
}

func (r *bookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	booking := &models.Booking{}
	query := `
		SELECT id, workflow_name, customer_name, phone_number, service, scheduled_at, status, notes, created_at, updated_at
		FROM bookings
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&booking.ID, &booking.WorkflowName, &booking.CustomerName,
		&booking.PhoneNumber, &booking.Service, &booking.ScheduledAt, &booking.Status, &booking.Notes,
		&booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return booking, nil
}

func (r *bookingRepo) Update(ctx context.Context, booking *models.Booking) error {
	query := `
		UPDATE bookings
		SET customer_name = $1, phone_number = $2, service = $3, scheduled_at = $4, status = $5, notes = $6, updated_at = NOW()
		WHERE id = $7
	`
	_, err := r.db.Exec(ctx, query, booking.CustomerName, booking.PhoneNumber, booking.Service,
		booking.ScheduledAt, booking.Status, booking.Notes, booking.ID)
	return err
}

func (r *bookingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM bookings WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *bookingRepo) List(ctx context.Context, workflowName string, limit, offset int) ([]*models.Booking, error) {
	query := `
		SELECT id, workflow_name, customer_name, phone_number, service, scheduled_at, status, notes, created_at, updated_at
		FROM bookings
		WHERE workflow_name = $1
		ORDER BY scheduled_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, workflowName, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		booking := &models.Booking{}
		if err := rows.Scan(&booking.ID, &booking.WorkflowName, &booking.CustomerName,
			&booking.PhoneNumber, &booking.Service, &booking.ScheduledAt, &booking.Status, &booking.Notes,
			&booking.CreatedAt, &booking.UpdatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	return bookings, rows.Err()
}
