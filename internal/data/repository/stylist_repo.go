package repository

import (
	"context"
	"errors"
	"fmt"

	"salon-booking/internal/data/entity"
	"salon-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type StylistRepository interface {
	Create(ctx context.Context, stylist *entity.Stylist) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Stylist, error)
	FindAll(ctx context.Context, activeOnly bool, limit, offset int) ([]*entity.Stylist, error)
	CountAll(ctx context.Context, activeOnly bool) (int64, error)
	Update(ctx context.Context, stylist *entity.Stylist) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Capability set
	SetServices(ctx context.Context, stylistID uuid.UUID, serviceIDs []uuid.UUID) error
	LoadServices(ctx context.Context, stylists ...*entity.Stylist) error
}

type stylistRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewStylistRepository(db database.PgxIface, log *zap.Logger) StylistRepository {
	return &stylistRepository{
		db:  db,
		log: log.With(zap.String("repository", "stylist")),
	}
}

const stylistColumns = `id, name, email, phone, specialization, bio, photo_url, is_active, created_at, updated_at`

func scanStylist(row pgx.Row) (*entity.Stylist, error) {
	var stylist entity.Stylist
	err := row.Scan(
		&stylist.ID,
		&stylist.Name,
		&stylist.Email,
		&stylist.Phone,
		&stylist.Specialization,
		&stylist.Bio,
		&stylist.PhotoURL,
		&stylist.IsActive,
		&stylist.CreatedAt,
		&stylist.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &stylist, nil
}

// Create inserts the stylist together with its capability set.
func (r *stylistRepository) Create(ctx context.Context, stylist *entity.Stylist) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("begin create stylist: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO stylists (id, name, email, phone, specialization, bio, photo_url,
		                      is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err = tx.Exec(ctx, query,
		stylist.ID,
		stylist.Name,
		stylist.Email,
		stylist.Phone,
		stylist.Specialization,
		stylist.Bio,
		stylist.PhotoURL,
		stylist.IsActive,
		stylist.CreatedAt,
		stylist.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		r.log.Error("Failed to create stylist",
			zap.Error(err),
			zap.String("email", stylist.Email),
		)
		return fmt.Errorf("create stylist %s: %w", stylist.Email, err)
	}

	for _, service := range stylist.Services {
		if err := insertStylistService(ctx, tx, stylist.ID, service.ID); err != nil {
			r.log.Error("Failed to link stylist service",
				zap.Error(err),
				zap.String("stylist_id", stylist.ID.String()),
				zap.String("service_id", service.ID.String()),
			)
			return fmt.Errorf("link service %s: %w", service.ID.String(), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit stylist", zap.Error(err))
		return fmt.Errorf("commit create stylist: %w", err)
	}

	return nil
}

func insertStylistService(ctx context.Context, tx pgx.Tx, stylistID, serviceID uuid.UUID) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO stylist_services (stylist_id, service_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		stylistID, serviceID,
	)
	return err
}

func (r *stylistRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Stylist, error) {
	query := `SELECT ` + stylistColumns + ` FROM stylists WHERE id = $1`

	stylist, err := scanStylist(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find stylist by ID",
			zap.Error(err),
			zap.String("stylist_id", id.String()),
		)
		return nil, fmt.Errorf("find stylist by ID %s: %w", id.String(), err)
	}

	return stylist, nil
}

func (r *stylistRepository) FindAll(ctx context.Context, activeOnly bool, limit, offset int) ([]*entity.Stylist, error) {
	query := `
		SELECT ` + stylistColumns + `
		FROM stylists
		WHERE ($1 = FALSE OR is_active = TRUE)
		ORDER BY name
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, activeOnly, limit, offset)
	if err != nil {
		r.log.Error("Failed to find stylists",
			zap.Error(err),
			zap.Bool("active_only", activeOnly),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find stylists: %w", err)
	}
	defer rows.Close()

	var stylists []*entity.Stylist
	for rows.Next() {
		stylist, err := scanStylist(rows)
		if err != nil {
			r.log.Error("Failed to scan stylist row", zap.Error(err))
			return nil, fmt.Errorf("scan stylist row: %w", err)
		}
		stylists = append(stylists, stylist)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate stylist rows: %w", err)
	}

	return stylists, nil
}

func (r *stylistRepository) CountAll(ctx context.Context, activeOnly bool) (int64, error) {
	query := `SELECT COUNT(*) FROM stylists WHERE ($1 = FALSE OR is_active = TRUE)`

	var total int64
	if err := r.db.QueryRow(ctx, query, activeOnly).Scan(&total); err != nil {
		r.log.Error("Failed to count stylists", zap.Error(err))
		return 0, fmt.Errorf("count stylists: %w", err)
	}

	return total, nil
}

func (r *stylistRepository) Update(ctx context.Context, stylist *entity.Stylist) error {
	query := `
		UPDATE stylists
		SET name = $2, email = $3, phone = $4, specialization = $5, bio = $6,
		    photo_url = $7, is_active = $8, updated_at = $9
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		stylist.ID,
		stylist.Name,
		stylist.Email,
		stylist.Phone,
		stylist.Specialization,
		stylist.Bio,
		stylist.PhotoURL,
		stylist.IsActive,
		stylist.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		r.log.Error("Failed to update stylist",
			zap.Error(err),
			zap.String("stylist_id", stylist.ID.String()),
		)
		return fmt.Errorf("update stylist %s: %w", stylist.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes the stylist; bookings.stylist_id is ON DELETE SET NULL.
func (r *stylistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM stylists WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete stylist",
			zap.Error(err),
			zap.String("stylist_id", id.String()),
		)
		return fmt.Errorf("delete stylist %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	r.log.Info("Stylist deleted", zap.String("stylist_id", id.String()))
	return nil
}

// SetServices replaces the capability set of a stylist.
func (r *stylistRepository) SetServices(ctx context.Context, stylistID uuid.UUID, serviceIDs []uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("begin set stylist services: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM stylist_services WHERE stylist_id = $1`, stylistID); err != nil {
		r.log.Error("Failed to clear stylist services",
			zap.Error(err),
			zap.String("stylist_id", stylistID.String()),
		)
		return fmt.Errorf("clear services of stylist %s: %w", stylistID.String(), err)
	}

	for _, serviceID := range serviceIDs {
		if err := insertStylistService(ctx, tx, stylistID, serviceID); err != nil {
			r.log.Error("Failed to link stylist service",
				zap.Error(err),
				zap.String("stylist_id", stylistID.String()),
				zap.String("service_id", serviceID.String()),
			)
			return fmt.Errorf("link service %s: %w", serviceID.String(), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit stylist services", zap.Error(err))
		return fmt.Errorf("commit stylist services: %w", err)
	}

	return nil
}

// LoadServices fills the Services field of each stylist with one query.
func (r *stylistRepository) LoadServices(ctx context.Context, stylists ...*entity.Stylist) error {
	if len(stylists) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*entity.Stylist, len(stylists))
	ids := make([]uuid.UUID, 0, len(stylists))
	for _, stylist := range stylists {
		stylist.Services = []*entity.Service{}
		byID[stylist.ID] = stylist
		ids = append(ids, stylist.ID)
	}

	query := `
		SELECT ss.stylist_id, s.id, s.name, s.category, s.description, s.price,
		       s.duration_minutes, s.is_active, s.created_at, s.updated_at
		FROM stylist_services ss
		JOIN services s ON s.id = ss.service_id
		WHERE ss.stylist_id = ANY($1)
		ORDER BY s.name
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to load stylist services", zap.Error(err))
		return fmt.Errorf("load stylist services: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			stylistID uuid.UUID
			service   entity.Service
		)
		err := rows.Scan(
			&stylistID,
			&service.ID,
			&service.Name,
			&service.Category,
			&service.Description,
			&service.Price,
			&service.DurationMinutes,
			&service.IsActive,
			&service.CreatedAt,
			&service.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan stylist service row", zap.Error(err))
			return fmt.Errorf("scan stylist service row: %w", err)
		}
		if stylist, ok := byID[stylistID]; ok {
			stylist.Services = append(stylist.Services, &service)
		}
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return fmt.Errorf("iterate stylist service rows: %w", err)
	}

	return nil
}
