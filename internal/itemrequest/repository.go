package itemrequest

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, req *ItemRequest) error
	GetByID(ctx context.Context, id string) (*ItemRequest, error)
	ListByRequestor(ctx context.Context, requestorID string) ([]*ItemRequest, error)

	// ListOthers returns requests from everyone but the given user,
	// newest first.
	ListOthers(ctx context.Context, requestorID string, from, size int) ([]*ItemRequest, error)

	// ListReplies fetches the items answering the given requests.
	ListReplies(ctx context.Context, requestIDs []string) ([]*Reply, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, req *ItemRequest) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.requests").
		Columns("requestor_id", "description").
		Values(req.RequestorID, req.Description).
		Suffix("RETURNING id, created").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create item request query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&req.ID, &req.Created); err != nil {
		return fmt.Errorf("create item request failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*ItemRequest, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "requestor_id", "description", "created").
		From("public.requests").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get item request query failed: %w", err)
	}

	var req ItemRequest
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&req.ID, &req.RequestorID, &req.Description, &req.Created); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get item request failed: %w", err)
	}
	return &req, nil
}

func (r *pgxRepository) ListByRequestor(ctx context.Context, requestorID string) ([]*ItemRequest, error) {
	return r.list(ctx, squirrel.Eq{"requestor_id": requestorID}, 0, 0)
}

func (r *pgxRepository) ListOthers(ctx context.Context, requestorID string, from, size int) ([]*ItemRequest, error) {
	return r.list(ctx, squirrel.NotEq{"requestor_id": requestorID}, from, size)
}

func (r *pgxRepository) list(ctx context.Context, cond squirrel.Sqlizer, from, size int) ([]*ItemRequest, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	builder := psql.Select("id", "requestor_id", "description", "created").
		From("public.requests").
		Where(cond).
		OrderBy("created DESC")

	if size > 0 {
		if from < 0 {
			from = 0
		}
		builder = builder.Limit(uint64(size)).Offset(uint64(from))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list item requests query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list item requests failed: %w", err)
	}
	defer rows.Close()

	var requests []*ItemRequest
	for rows.Next() {
		var req ItemRequest
		if err := rows.Scan(&req.ID, &req.RequestorID, &req.Description, &req.Created); err != nil {
			return nil, fmt.Errorf("scan item request failed: %w", err)
		}
		requests = append(requests, &req)
	}
	return requests, rows.Err()
}

func (r *pgxRepository) ListReplies(ctx context.Context, requestIDs []string) ([]*Reply, error) {
	if len(requestIDs) == 0 {
		return nil, nil
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "request_id", "name", "owner_id").
		From("public.items").
		Where(squirrel.Eq{"request_id": requestIDs}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list request replies query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list request replies failed: %w", err)
	}
	defer rows.Close()

	var replies []*Reply
	for rows.Next() {
		var rep Reply
		if err := rows.Scan(&rep.ID, &rep.RequestID, &rep.Name, &rep.OwnerID); err != nil {
			return nil, fmt.Errorf("scan request reply failed: %w", err)
		}
		replies = append(replies, &rep)
	}
	return replies, rows.Err()
}
