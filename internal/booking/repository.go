package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, error)

	// UpdateStatus transitions a booking from one status to another as a
	// single compare-and-swap. It reports whether a row was updated, so a
	// lost race surfaces as false rather than a silent double transition.
	UpdateStatus(ctx context.Context, id string, from, to Status) (bool, error)

	// HasOverlap reports whether any non-rejected booking of the item
	// intersects the half-open [start, end) interval.
	HasOverlap(ctx context.Context, itemID string, start, end time.Time) (bool, error)

	// HasApprovedOverlap is the approval-time variant: only APPROVED
	// bookings count, and the booking being decided is excluded.
	HasApprovedOverlap(ctx context.Context, itemID string, start, end time.Time, excludeID string) (bool, error)

	// LastForItem returns the latest-ending approved booking that already
	// started, or nil. NextForItem returns the soonest approved booking
	// still ahead, or nil.
	LastForItem(ctx context.Context, itemID string, now time.Time) (*Booking, error)
	NextForItem(ctx context.Context, itemID string, now time.Time) (*Booking, error)

	// ListApprovedForItems fetches all approved bookings of the given
	// items in one round trip, for batch last/next computation.
	ListApprovedForItems(ctx context.Context, itemIDs []string) ([]*Booking, error)

	// ExistsCompleted reports whether the booker held an approved booking
	// of the item that has already ended.
	ExistsCompleted(ctx context.Context, itemID, bookerID string, now time.Time) (bool, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

// bookingColumns is the select list shared by every query that loads full
// bookings with their item and booker projections.
func bookingColumns() []string {
	return []string{
		"b.id", "b.item_id", "i.name", "i.owner_id",
		"b.booker_id", "u.name",
		"b.start_date", "b.end_date", "b.status", "b.created_at",
	}
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	if err := row.Scan(
		&b.ID, &b.ItemID, &b.ItemName, &b.ItemOwnerID,
		&b.BookerID, &b.BookerName,
		&b.Start, &b.End, &b.Status, &b.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("item_id", "booker_id", "start_date", "end_date", "status").
		Values(b.ItemID, b.BookerID, b.Start, b.End, b.Status).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt); err != nil {
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns()...).
		From("public.bookings b").
		Join("public.items i ON b.item_id = i.id").
		Join("public.users u ON b.booker_id = u.id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(bookingColumns()...).
		From("public.bookings b").
		Join("public.items i ON b.item_id = i.id").
		Join("public.users u ON b.booker_id = u.id")

	if filter.BookerID != "" {
		query = query.Where(squirrel.Eq{"b.booker_id": filter.BookerID})
	}
	if filter.OwnerID != "" {
		query = query.Where(squirrel.Eq{"i.owner_id": filter.OwnerID})
	}

	// Temporal states partition against the caller's now, never the wall
	// clock of the database.
	switch filter.State {
	case StateCurrent:
		query = query.
			Where(squirrel.LtOrEq{"b.start_date": filter.Now}).
			Where(squirrel.Gt{"b.end_date": filter.Now})
	case StatePast:
		query = query.Where(squirrel.Lt{"b.end_date": filter.Now})
	case StateFuture:
		query = query.Where(squirrel.Gt{"b.start_date": filter.Now})
	case StateWaiting:
		query = query.Where(squirrel.Eq{"b.status": StatusWaiting})
	case StateRejected:
		query = query.Where(squirrel.Eq{"b.status": StatusRejected})
	}

	query = query.OrderBy("b.start_date DESC")

	from := filter.From
	if from < 0 {
		from = 0
	}
	size := filter.Size
	if size < 1 {
		size = 10
	}
	query = query.Limit(uint64(size)).Offset(uint64(from))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, from, to Status) (bool, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", to).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": from}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build update booking status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("update booking status failed: %w", err)
	}
	return ct.RowsAffected() > 0, nil
}

func (r *pgxRepository) HasOverlap(ctx context.Context, itemID string, start, end time.Time) (bool, error) {
	return r.hasOverlap(ctx, itemID, start, end, squirrel.NotEq{"status": StatusRejected}, "")
}

func (r *pgxRepository) HasApprovedOverlap(ctx context.Context, itemID string, start, end time.Time, excludeID string) (bool, error) {
	return r.hasOverlap(ctx, itemID, start, end, squirrel.Eq{"status": StatusApproved}, excludeID)
}

func (r *pgxRepository) hasOverlap(ctx context.Context, itemID string, start, end time.Time, statusCond squirrel.Sqlizer, excludeID string) (bool, error) {
	// Intervals are half-open: [start, end) intersects [s, e) iff s < end && e > start.
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	subQuery := psql.Select("1").
		From("public.bookings").
		Where(squirrel.Eq{"item_id": itemID}).
		Where(statusCond).
		Where(squirrel.Lt{"start_date": end}).
		Where(squirrel.Gt{"end_date": start})

	if excludeID != "" {
		subQuery = subQuery.Where(squirrel.NotEq{"id": excludeID})
	}

	sql, args, err := subQuery.ToSql()
	if err != nil {
		return false, fmt.Errorf("build check overlap query failed: %w", err)
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, "SELECT EXISTS ("+sql+")", args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check overlap failed: %w", err)
	}
	return exists, nil
}

func (r *pgxRepository) LastForItem(ctx context.Context, itemID string, now time.Time) (*Booking, error) {
	return r.edgeForItem(ctx, itemID, squirrel.Lt{"b.start_date": now}, "b.end_date DESC")
}

func (r *pgxRepository) NextForItem(ctx context.Context, itemID string, now time.Time) (*Booking, error) {
	return r.edgeForItem(ctx, itemID, squirrel.Gt{"b.start_date": now}, "b.start_date ASC")
}

func (r *pgxRepository) edgeForItem(ctx context.Context, itemID string, timeCond squirrel.Sqlizer, order string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns()...).
		From("public.bookings b").
		Join("public.items i ON b.item_id = i.id").
		Join("public.users u ON b.booker_id = u.id").
		Where(squirrel.Eq{"b.item_id": itemID}).
		Where(squirrel.Eq{"b.status": StatusApproved}).
		Where(timeCond).
		OrderBy(order).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build item booking edge query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item booking edge failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) ListApprovedForItems(ctx context.Context, itemIDs []string) ([]*Booking, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns()...).
		From("public.bookings b").
		Join("public.items i ON b.item_id = i.id").
		Join("public.users u ON b.booker_id = u.id").
		Where(squirrel.Eq{"b.item_id": itemIDs}).
		Where(squirrel.Eq{"b.status": StatusApproved}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list item bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list item bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *pgxRepository) ExistsCompleted(ctx context.Context, itemID, bookerID string, now time.Time) (bool, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	subQuery := psql.Select("1").
		From("public.bookings").
		Where(squirrel.Eq{"item_id": itemID}).
		Where(squirrel.Eq{"booker_id": bookerID}).
		Where(squirrel.Eq{"status": StatusApproved}).
		Where(squirrel.Lt{"end_date": now})

	sql, args, err := subQuery.ToSql()
	if err != nil {
		return false, fmt.Errorf("build check completed booking query failed: %w", err)
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, "SELECT EXISTS ("+sql+")", args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check completed booking failed: %w", err)
	}
	return exists, nil
}
