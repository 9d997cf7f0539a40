package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"roombooker/internal/booking"
	"roombooker/internal/config"
	"roombooker/internal/models"
	"roombooker/internal/storage"
	"strings"

	"github.com/lib/pq"
)

//go:embed schema.sql
var schema string

const (
	codeUniqueViolation    = "23505"
	codeExclusionViolation = "23P01"

	constraintCheckinBooking = "checkins_booking_id_key"
	constraintQRToken        = "bookings_qr_token_key"
	constraintRoomCode       = "rooms_code_key"
)

const bookingColumns = `
	b.id, b.room_id, b.requester_id, b.requester_name, b.requester_email, b.purpose,
	b.audience_count, b.start_time, b.end_time, b.status, b.rejection_reason, b.qr_token,
	b.created_at, b.updated_at`

type Storage struct {
	DB *sql.DB
}

var _ booking.IntervalStore = (*Storage)(nil)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func InitDB(ctx context.Context, dbCfg *config.Database) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.User,
		dbCfg.Password,
		dbCfg.DBName,
		dbCfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, dbCfg.Timeout)
	defer cancel()

	if err = db.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	return &Storage{DB: db}, nil
}

func (s *Storage) Migrate(ctx context.Context) error {
	if _, err := s.DB.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

func (s *Storage) SaveRoom(ctx context.Context, room models.Room) error {
	query := `
		INSERT INTO rooms (id, code, name, capacity, status)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET code = EXCLUDED.code, name = EXCLUDED.name, capacity = EXCLUDED.capacity,
			status = EXCLUDED.status, updated_at = NOW()`

	if room.Status == "" {
		room.Status = models.RoomAvailable
	}

	_, err := s.DB.ExecContext(ctx, query, room.ID, room.Code, room.Name, room.Capacity, room.Status)
	if err != nil {
		return mapError("failed to save room", err)
	}

	return nil
}

func (s *Storage) GetRoom(ctx context.Context, id string) (models.Room, error) {
	query := `
		SELECT id, code, name, capacity, status, created_at, updated_at
		FROM rooms
		WHERE id = $1`

	var room models.Room
	err := s.DB.QueryRowContext(ctx, query, id).Scan(
		&room.ID,
		&room.Code,
		&room.Name,
		&room.Capacity,
		&room.Status,
		&room.CreatedAt,
		&room.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Room{}, storage.ErrRoomNotFound
		}
		return models.Room{}, fmt.Errorf("failed to get room: %w", err)
	}

	return room, nil
}

func (s *Storage) FindOverlapping(ctx context.Context, roomID string, window models.Interval, statuses []models.BookingStatus) ([]models.Booking, error) {
	return findOverlapping(ctx, s.DB, roomID, window, statuses, false)
}

func (s *Storage) GetBooking(ctx context.Context, id string) (models.BookingView, error) {
	query := `
		SELECT` + bookingColumns + `,
			r.id, r.code, r.name, r.capacity, r.status, r.created_at, r.updated_at
		FROM bookings b
		JOIN rooms r ON r.id = b.room_id
		WHERE b.id = $1`

	v, err := scanView(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.BookingView{}, storage.ErrBookingNotFound
		}
		return models.BookingView{}, fmt.Errorf("failed to get booking: %w", err)
	}

	return v, nil
}

func (s *Storage) ListBookings(ctx context.Context, filter models.BookingFilter) ([]models.BookingView, error) {
	var (
		conds []string
		args  []any
	)

	if filter.RequesterID != "" {
		args = append(args, filter.RequesterID)
		conds = append(conds, fmt.Sprintf("b.requester_id = $%d", len(args)))
	}
	if filter.RoomID != "" {
		args = append(args, filter.RoomID)
		conds = append(conds, fmt.Sprintf("b.room_id = $%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		args = append(args, pq.Array(statusStrings(filter.Statuses)))
		conds = append(conds, fmt.Sprintf("b.status = ANY($%d)", len(args)))
	}
	if !filter.EndedBefore.IsZero() {
		args = append(args, filter.EndedBefore)
		conds = append(conds, fmt.Sprintf("b.end_time <= $%d", len(args)))
	}

	query := `
		SELECT` + bookingColumns + `,
			r.id, r.code, r.name, r.capacity, r.status, r.created_at, r.updated_at
		FROM bookings b
		JOIN rooms r ON r.id = b.room_id`
	if len(conds) > 0 {
		query += "\n\t\tWHERE " + strings.Join(conds, " AND ")
	}
	query += "\n\t\tORDER BY b.created_at DESC"

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	views := []models.BookingView{}
	for rows.Next() {
		v, err := scanView(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		views = append(views, v)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookings: %w", err)
	}

	return views, nil
}

func (s *Storage) InTx(ctx context.Context, fn func(tx booking.Tx) error) error {
	sqlTx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	if err = fn(&tx{tx: sqlTx}); err != nil {
		return err
	}

	if err = sqlTx.Commit(); err != nil {
		return mapError("failed to commit transaction", err)
	}

	return nil
}

type tx struct {
	tx *sql.Tx
}

// LockRoom takes a transaction-scoped advisory lock keyed by the room id, so concurrent
// creators for one room queue behind each other until commit or rollback.
func (t *tx) LockRoom(ctx context.Context, roomID string) error {
	if _, err := t.tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, roomID); err != nil {
		return fmt.Errorf("failed to lock room: %w", err)
	}
	return nil
}

func (t *tx) FindOverlapping(ctx context.Context, roomID string, window models.Interval, statuses []models.BookingStatus) ([]models.Booking, error) {
	return findOverlapping(ctx, t.tx, roomID, window, statuses, true)
}

func (t *tx) GetBookingForUpdate(ctx context.Context, id string) (models.Booking, error) {
	query := `
		SELECT` + bookingColumns + `
		FROM bookings b
		WHERE b.id = $1
		FOR UPDATE`

	b, err := scanBooking(t.tx.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, storage.ErrBookingNotFound
		}
		return models.Booking{}, fmt.Errorf("failed to get booking: %w", err)
	}

	return b, nil
}

func (t *tx) GetBookingByTokenForUpdate(ctx context.Context, token string) (models.Booking, error) {
	query := `
		SELECT` + bookingColumns + `
		FROM bookings b
		WHERE b.qr_token = $1
		FOR UPDATE`

	b, err := scanBooking(t.tx.QueryRowContext(ctx, query, token))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, storage.ErrBookingNotFound
		}
		return models.Booking{}, fmt.Errorf("failed to get booking by token: %w", err)
	}

	return b, nil
}

func (t *tx) Insert(ctx context.Context, b models.Booking) error {
	query := `
		INSERT INTO bookings (id, room_id, requester_id, requester_name, requester_email, purpose,
			audience_count, start_time, end_time, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := t.tx.ExecContext(ctx, query,
		b.ID,
		b.RoomID,
		b.RequesterID,
		b.RequesterName,
		b.RequesterEmail,
		b.Purpose,
		b.AudienceCount,
		b.StartTime,
		b.EndTime,
		b.Status,
		b.CreatedAt,
		b.UpdatedAt,
	)
	if err != nil {
		return mapError("failed to create booking", err)
	}

	return nil
}

func (t *tx) UpdateStatus(ctx context.Context, id string, from models.BookingStatus, upd models.StatusUpdate) error {
	query := `
		UPDATE bookings
		SET status = $1,
			rejection_reason = COALESCE($2, rejection_reason),
			qr_token = COALESCE($3, qr_token),
			updated_at = $4
		WHERE id = $5 AND status = $6`

	res, err := t.tx.ExecContext(ctx, query,
		upd.Status,
		nullString(upd.RejectionReason),
		nullString(upd.QRToken),
		upd.UpdatedAt,
		id,
		from,
	)
	if err != nil {
		return mapError("failed to update booking status", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	if affected == 0 {
		return storage.ErrStaleStatus
	}

	return nil
}

func (t *tx) InsertCheckin(ctx context.Context, rec models.CheckinRecord) error {
	query := `
		INSERT INTO checkins (id, booking_id, checkin_time, checked_in_by)
		VALUES ($1, $2, $3, $4)`

	_, err := t.tx.ExecContext(ctx, query, rec.ID, rec.BookingID, rec.CheckinTime, nullString(rec.CheckedInBy))
	if err != nil {
		return mapError("failed to create checkin", err)
	}

	return nil
}

func findOverlapping(ctx context.Context, q querier, roomID string, window models.Interval, statuses []models.BookingStatus, forUpdate bool) ([]models.Booking, error) {
	query := `
		SELECT` + bookingColumns + `
		FROM bookings b
		WHERE b.room_id = $1
			AND b.status = ANY($2)
			AND b.start_time < $4
			AND b.end_time > $3
		ORDER BY b.start_time ASC`
	if forUpdate {
		query += "\n\t\tFOR UPDATE"
	}

	rows, err := q.QueryContext(ctx, query, roomID, pq.Array(statusStrings(statuses)), window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("failed to find overlapping bookings: %w", err)
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookings: %w", err)
	}

	return bookings, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func bookingDest(b *models.Booking, reason, token *sql.NullString) []any {
	return []any{
		&b.ID,
		&b.RoomID,
		&b.RequesterID,
		&b.RequesterName,
		&b.RequesterEmail,
		&b.Purpose,
		&b.AudienceCount,
		&b.StartTime,
		&b.EndTime,
		&b.Status,
		reason,
		token,
		&b.CreatedAt,
		&b.UpdatedAt,
	}
}

func scanBooking(row scanner) (models.Booking, error) {
	var (
		b             models.Booking
		reason, token sql.NullString
	)

	if err := row.Scan(bookingDest(&b, &reason, &token)...); err != nil {
		return models.Booking{}, err
	}

	b.RejectionReason = stringPtr(reason)
	b.QRToken = stringPtr(token)

	return b, nil
}

func scanView(row scanner) (models.BookingView, error) {
	var (
		v             models.BookingView
		room          models.Room
		reason, token sql.NullString
	)

	dest := append(bookingDest(&v.Booking, &reason, &token),
		&room.ID,
		&room.Code,
		&room.Name,
		&room.Capacity,
		&room.Status,
		&room.CreatedAt,
		&room.UpdatedAt,
	)

	if err := row.Scan(dest...); err != nil {
		return models.BookingView{}, err
	}

	v.RejectionReason = stringPtr(reason)
	v.QRToken = stringPtr(token)
	v.Room = &room

	return v, nil
}

// mapError translates constraint violations into storage sentinels.
func mapError(msg string, err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return fmt.Errorf("%s: %w", msg, err)
	}

	switch {
	case pqErr.Code == codeExclusionViolation:
		return fmt.Errorf("%s: %w", msg, storage.ErrOverlap)
	case pqErr.Code == codeUniqueViolation && pqErr.Constraint == constraintCheckinBooking:
		return fmt.Errorf("%s: %w", msg, storage.ErrCheckinExists)
	case pqErr.Code == codeUniqueViolation && pqErr.Constraint == constraintQRToken:
		return fmt.Errorf("%s: %w", msg, storage.ErrTokenExists)
	case pqErr.Code == codeUniqueViolation && pqErr.Constraint == constraintRoomCode:
		return fmt.Errorf("%s: %w", msg, storage.ErrRoomExists)
	default:
		return fmt.Errorf("%s: %w", msg, err)
	}
}

func statusStrings(statuses []models.BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
