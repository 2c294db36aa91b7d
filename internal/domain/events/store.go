package events

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"conexaoiris/internal/domain/categories"
	"conexaoiris/internal/tags"
)

type Store interface {
	Create(ctx context.Context, in *CreateEventInput) (*EventSuggestion, error)
	GetByID(ctx context.Context, id int64) (*EventSuggestion, error)
	ListFiltered(ctx context.Context, filter Filter) ([]EventSuggestion, error)
	ListByUser(ctx context.Context, userID int64) ([]EventSuggestion, error)
	ListForModeration(ctx context.Context, filter ModerationFilter) ([]EventSuggestion, error)
	UpdateStatus(ctx context.Context, id int64, status Status) (*EventSuggestion, error)
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Store {
	return &Repository{db: db}
}

const eventColumns = `
	e.id, e.title, e.category_id, e.description, e.date, e.time, e.location,
	e.organizer, e.price, e.lgbtq_friendly, e.tags, e.status, e.user_id,
	e.created_at, e.updated_at,
	c.id, c.key, c.label
`

// Create verifies the referenced category, then inserts with status PENDING
// always. The returned suggestion is the freshly-read row in application
// form (tags as a slice, price as a number).
func (r *Repository) Create(ctx context.Context, in *CreateEventInput) (*EventSuggestion, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1)`, in.CategoryID,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("check category: %w", err)
	}
	if !exists {
		return nil, ErrCategoryNotFound
	}

	const q = `
		INSERT INTO event_suggestions (
			title, category_id, description, date, time, location, organizer,
			price, lgbtq_friendly, tags, status, user_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`

	var price *float64
	if in.Price != nil {
		// stored with two-decimal fixed precision
		v := math.Round(*in.Price*100) / 100
		price = &v
	}

	var id int64
	err = r.db.QueryRow(ctx, q,
		in.Title,
		in.CategoryID,
		in.Description,
		in.Date,
		in.Time,
		in.Location,
		in.Organizer,
		price,
		in.LgbtqFriendly,
		tags.Serialize(tags.Normalize(in.Tags)),
		StatusPending,
		in.UserID,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create event suggestion: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*EventSuggestion, error) {
	q := fmt.Sprintf(`
		SELECT %s
		FROM event_suggestions e
		JOIN categories c ON c.id = e.category_id
		WHERE e.id = $1
	`, eventColumns)

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	ev, err := scanEvent(r.db.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get event suggestion: %w", err)
	}
	return ev, nil
}

// ListFiltered narrows the approved listing by category key, friendliness
// flag and tags. Tag matching is exact jsonb element membership (?|), not
// substring containment.
func (r *Repository) ListFiltered(ctx context.Context, filter Filter) ([]EventSuggestion, error) {
	where := []string{"e.status = $1"}
	args := []any{StatusApproved}
	arg := 2

	if filter.CategoryKey != "" && filter.CategoryKey != "all" {
		where = append(where, fmt.Sprintf("c.key = $%d", arg))
		args = append(args, filter.CategoryKey)
		arg++
	}
	if filter.LgbtqFriendly != nil {
		where = append(where, fmt.Sprintf("e.lgbtq_friendly = $%d", arg))
		args = append(args, *filter.LgbtqFriendly)
		arg++
	}
	if len(filter.Tags) > 0 {
		where = append(where, fmt.Sprintf("e.tags::jsonb ?| $%d", arg))
		args = append(args, filter.Tags)
		arg++
	}

	q := fmt.Sprintf(`
		SELECT %s
		FROM event_suggestions e
		JOIN categories c ON c.id = e.category_id
		WHERE %s
		ORDER BY e.date ASC
	`, eventColumns, strings.Join(where, " AND "))

	return r.list(ctx, q, args...)
}

func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]EventSuggestion, error) {
	q := fmt.Sprintf(`
		SELECT %s
		FROM event_suggestions e
		JOIN categories c ON c.id = e.category_id
		WHERE e.user_id = $1
		ORDER BY e.created_at DESC
	`, eventColumns)

	return r.list(ctx, q, userID)
}

func (r *Repository) ListForModeration(ctx context.Context, filter ModerationFilter) ([]EventSuggestion, error) {
	if filter.Limit <= 0 || filter.Limit > 60 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	where := []string{"1=1"}
	args := []any{}
	arg := 1

	if filter.Status != nil {
		where = append(where, fmt.Sprintf("e.status = $%d", arg))
		args = append(args, *filter.Status)
		arg++
	}

	limitPos := arg
	offsetPos := arg + 1
	args = append(args, filter.Limit, filter.Offset)

	q := fmt.Sprintf(`
		SELECT %s
		FROM event_suggestions e
		JOIN categories c ON c.id = e.category_id
		WHERE %s
		ORDER BY e.created_at DESC
		LIMIT $%d OFFSET $%d
	`, eventColumns, strings.Join(where, " AND "), limitPos, offsetPos)

	return r.list(ctx, q, args...)
}

// UpdateStatus overwrites the status unconditionally; one-shot transition
// rules are enforced by the moderation handlers.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status Status) (*EventSuggestion, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	ct, err := r.db.Exec(ctx, `
		UPDATE event_suggestions
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`, status, id)
	if err != nil {
		return nil, fmt.Errorf("update event status: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return nil, ErrNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *Repository) list(ctx context.Context, q string, args ...any) ([]EventSuggestion, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list event suggestions: %w", err)
	}
	defer rows.Close()

	var out []EventSuggestion
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event suggestion: %w", err)
		}
		out = append(out, *ev)
	}
	return out, rows.Err()
}

func scanEvent(row pgx.Row) (*EventSuggestion, error) {
	var (
		ev          EventSuggestion
		cat         categories.Category
		description pgtype.Text
		eventTime   pgtype.Text
		price       pgtype.Float8
		rawTags     string
		userID      pgtype.Int8
	)

	err := row.Scan(
		&ev.ID, &ev.Title, &ev.CategoryID, &description, &ev.Date, &eventTime,
		&ev.Location, &ev.Organizer, &price, &ev.LgbtqFriendly, &rawTags,
		&ev.Status, &userID, &ev.CreatedAt, &ev.UpdatedAt,
		&cat.ID, &cat.Key, &cat.Label,
	)
	if err != nil {
		return nil, err
	}

	ev.Category = &cat
	ev.Tags = tags.Parse(rawTags)

	if description.Valid {
		v := description.String
		ev.Description = &v
	}
	if eventTime.Valid {
		v := eventTime.String
		ev.Time = &v
	}
	if price.Valid {
		v := price.Float64
		ev.Price = &v
	}
	if userID.Valid {
		v := userID.Int64
		ev.UserID = &v
	}

	return &ev, nil
}
