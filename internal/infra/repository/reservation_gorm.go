package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/restaurant-reservations/internal/domain/reservation"
	"github.com/BruksfildServices01/restaurant-reservations/internal/httperr"
	"github.com/BruksfildServices01/restaurant-reservations/internal/models"
)

const pgUniqueViolation = "23505"

type ReservationGormRepository struct {
	db *gorm.DB
}

func NewReservationGormRepository(db *gorm.DB) *ReservationGormRepository {
	return &ReservationGormRepository{db: db}
}

// --------------------------------------------------
// Create / conflict
// --------------------------------------------------

// Create relies on the partial unique index ux_reservations_active_slot;
// a concurrent insert for the same active slot fails with 23505.
func (r *ReservationGormRepository) Create(
	ctx context.Context,
	res *models.Reservation,
) error {
	return translateError("create", r.db.WithContext(ctx).Create(res).Error)
}

func (r *ReservationGormRepository) FindActiveBySlot(
	ctx context.Context,
	date time.Time,
	slot string,
	excludeID string,
) (*models.Reservation, error) {

	q := r.db.WithContext(ctx).
		Where(
			"reservation_date = ? AND slot_time = ? AND status <> ?",
			date, slot, string(domain.StatusCancelled),
		)

	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var res models.Reservation
	err := q.First(&res).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, translateError("find_active_by_slot", err)
	}
	return &res, nil
}

// --------------------------------------------------
// Lookup
// --------------------------------------------------

func (r *ReservationGormRepository) GetByID(
	ctx context.Context,
	id string,
) (*models.Reservation, error) {

	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}

	var res models.Reservation
	if err := r.db.WithContext(ctx).First(&res, "id = ?", id).Error; err != nil {
		return nil, translateError("get_by_id", err)
	}
	return &res, nil
}

// --------------------------------------------------
// State change
// --------------------------------------------------

func (r *ReservationGormRepository) Mutate(
	ctx context.Context,
	id string,
	fn func(res *models.Reservation) error,
) (*models.Reservation, error) {

	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}

	var out models.Reservation

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var res models.Reservation
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&res, "id = ?", id).Error; err != nil {
			return err
		}

		before := res
		if err := fn(&res); err != nil {
			return err
		}

		// UpdateColumns skips gorm's auto timestamp; UpdatedAt is set by fn.
		if changes := reservationChanges(before, res); len(changes) > 0 {
			if err := tx.Model(&res).UpdateColumns(changes).Error; err != nil {
				return err
			}
		}

		out = res
		return nil
	})
	if err != nil {
		return nil, translateError("mutate", err)
	}

	return &out, nil
}

func (r *ReservationGormRepository) Delete(
	ctx context.Context,
	id string,
) error {

	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}

	result := r.db.WithContext(ctx).Delete(&models.Reservation{}, "id = ?", id)
	if result.Error != nil {
		return translateError("delete", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *ReservationGormRepository) ListAll(
	ctx context.Context,
) ([]models.Reservation, error) {

	var out []models.Reservation
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, translateError("list_all", err)
	}
	return out, nil
}

func (r *ReservationGormRepository) ListByStatus(
	ctx context.Context,
	status domain.Status,
) ([]models.Reservation, error) {

	var out []models.Reservation
	if err := r.db.WithContext(ctx).
		Where("status = ?", string(status)).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, translateError("list_by_status", err)
	}
	return out, nil
}

func (r *ReservationGormRepository) ListByDate(
	ctx context.Context,
	date time.Time,
) ([]models.Reservation, error) {

	start := domain.NormalizeDate(date)
	end := start.AddDate(0, 0, 1)

	var out []models.Reservation
	if err := r.db.WithContext(ctx).
		Where("reservation_date >= ? AND reservation_date < ?", start, end).
		Order("slot_time ASC, created_at ASC").
		Find(&out).Error; err != nil {
		return nil, translateError("list_by_date", err)
	}
	return out, nil
}

func (r *ReservationGormRepository) CountByStatus(
	ctx context.Context,
) (map[domain.Status]int64, error) {

	var rows []struct {
		Status string
		Total  int64
	}

	if err := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, translateError("count_by_status", err)
	}

	out := make(map[domain.Status]int64, len(rows))
	for _, row := range rows {
		out[domain.Status(row.Status)] = row.Total
	}
	return out, nil
}

// reservationChanges lists the columns fn touched. An unchanged record
// yields no write.
func reservationChanges(before, after models.Reservation) map[string]any {
	out := map[string]any{}

	if before.GuestName != after.GuestName {
		out["guest_name"] = after.GuestName
	}
	if before.GuestEmail != after.GuestEmail {
		out["guest_email"] = after.GuestEmail
	}
	if before.GuestPhone != after.GuestPhone {
		out["guest_phone"] = after.GuestPhone
	}
	if !before.Date.Equal(after.Date) {
		out["reservation_date"] = after.Date
	}
	if before.Time != after.Time {
		out["slot_time"] = after.Time
	}
	if before.PartySize != after.PartySize {
		out["party_size"] = after.PartySize
	}
	if before.SpecialRequests != after.SpecialRequests {
		out["special_requests"] = after.SpecialRequests
	}
	if before.Status != after.Status {
		out["status"] = after.Status
	}
	if !before.UpdatedAt.Equal(after.UpdatedAt) {
		out["updated_at"] = after.UpdatedAt
	}

	return out
}

// --------------------------------------------------
// Errors
// --------------------------------------------------

func translateError(op string, err error) error {
	if err == nil {
		return nil
	}

	if _, ok := httperr.BusinessCode(err); ok {
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case isUniqueViolation(err):
		return domain.ErrSlotConflict
	case isUnavailable(err):
		return httperr.Transient("reservations."+op, err)
	}

	return pkgerrors.Wrapf(err, "reservations.%s", op)
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func isUnavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, driver.ErrBadConn) ||
		pgconn.Timeout(err) {
		return true
	}
	var connErr *pgconn.ConnectError
	return errors.As(err, &connErr)
}

// Compile-time check
var _ domain.Repository = (*ReservationGormRepository)(nil)
