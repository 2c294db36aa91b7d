package locations

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"conexaoiris/internal/domain/categories"
	"conexaoiris/internal/tags"
)

type Store interface {
	Create(ctx context.Context, in *CreateLocationInput) (*LocationSuggestion, error)
	GetByID(ctx context.Context, id int64) (*LocationSuggestion, error)
	ListPublic(ctx context.Context) ([]LocationSuggestion, error)
	ListByUser(ctx context.Context, userID int64) ([]LocationSuggestion, error)
	ListWithCoordinates(ctx context.Context, categoryKey string) ([]LocationSuggestion, error)
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Store {
	return &Repository{db: db}
}

const locationColumns = `
	l.id, l.name, l.category_id, l.address, l.description, l.phone, l.website,
	l.lgbtq_owned, l.safety_rating, l.public_visible, l.latitude, l.longitude,
	l.tags, l.user_id, l.created_at, l.updated_at,
	c.id, c.key, c.label
`

// Create verifies the referenced category before writing; a dangling
// reference fails with ErrCategoryNotFound and no row is inserted.
func (r *Repository) Create(ctx context.Context, in *CreateLocationInput) (*LocationSuggestion, error) {
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
		INSERT INTO location_suggestions (
			name, category_id, address, description, phone, website,
			lgbtq_owned, safety_rating, public_visible, latitude, longitude,
			tags, user_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at
	`

	loc := &LocationSuggestion{
		Name:          in.Name,
		CategoryID:    in.CategoryID,
		Address:       in.Address,
		Description:   in.Description,
		Phone:         in.Phone,
		Website:       in.Website,
		LgbtqOwned:    in.LgbtqOwned,
		SafetyRating:  in.SafetyRating,
		PublicVisible: in.PublicVisible,
		Latitude:      in.Latitude,
		Longitude:     in.Longitude,
		Tags:          tags.Normalize(in.Tags),
		UserID:        in.UserID,
	}

	err = r.db.QueryRow(ctx, q,
		in.Name,
		in.CategoryID,
		in.Address,
		in.Description,
		in.Phone,
		in.Website,
		in.LgbtqOwned,
		in.SafetyRating,
		in.PublicVisible,
		in.Latitude,
		in.Longitude,
		tags.Serialize(loc.Tags),
		in.UserID,
	).Scan(&loc.ID, &loc.CreatedAt, &loc.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create location suggestion: %w", err)
	}

	return r.GetByID(ctx, loc.ID)
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*LocationSuggestion, error) {
	q := fmt.Sprintf(`
		SELECT %s
		FROM location_suggestions l
		JOIN categories c ON c.id = l.category_id
		WHERE l.id = $1
	`, locationColumns)

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	loc, err := scanLocation(r.db.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get location suggestion: %w", err)
	}
	return loc, nil
}

// ListPublic returns every location, oldest first. There is no status
// concept on locations, so nothing is filtered out.
func (r *Repository) ListPublic(ctx context.Context) ([]LocationSuggestion, error) {
	q := fmt.Sprintf(`
		SELECT %s
		FROM location_suggestions l
		JOIN categories c ON c.id = l.category_id
		ORDER BY l.created_at ASC
	`, locationColumns)

	return r.list(ctx, q)
}

func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]LocationSuggestion, error) {
	q := fmt.Sprintf(`
		SELECT %s
		FROM location_suggestions l
		JOIN categories c ON c.id = l.category_id
		WHERE l.user_id = $1
		ORDER BY l.created_at DESC
	`, locationColumns)

	return r.list(ctx, q, userID)
}

// ListWithCoordinates feeds the map: only rows that can be placed. An empty
// or "all" category key means no category filter.
func (r *Repository) ListWithCoordinates(ctx context.Context, categoryKey string) ([]LocationSuggestion, error) {
	where := "l.latitude IS NOT NULL AND l.longitude IS NOT NULL"
	args := []any{}
	if categoryKey != "" && categoryKey != "all" {
		where += " AND c.key = $1"
		args = append(args, categoryKey)
	}

	q := fmt.Sprintf(`
		SELECT %s
		FROM location_suggestions l
		JOIN categories c ON c.id = l.category_id
		WHERE %s
		ORDER BY l.created_at ASC
	`, locationColumns, where)

	return r.list(ctx, q, args...)
}

func (r *Repository) list(ctx context.Context, q string, args ...any) ([]LocationSuggestion, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list location suggestions: %w", err)
	}
	defer rows.Close()

	var out []LocationSuggestion
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan location suggestion: %w", err)
		}
		out = append(out, *loc)
	}
	return out, rows.Err()
}

func scanLocation(row pgx.Row) (*LocationSuggestion, error) {
	var (
		loc         LocationSuggestion
		cat         categories.Category
		description pgtype.Text
		phone       pgtype.Text
		website     pgtype.Text
		latitude    pgtype.Float8
		longitude   pgtype.Float8
		rawTags     string
		userID      pgtype.Int8
	)

	err := row.Scan(
		&loc.ID, &loc.Name, &loc.CategoryID, &loc.Address, &description, &phone, &website,
		&loc.LgbtqOwned, &loc.SafetyRating, &loc.PublicVisible, &latitude, &longitude,
		&rawTags, &userID, &loc.CreatedAt, &loc.UpdatedAt,
		&cat.ID, &cat.Key, &cat.Label,
	)
	if err != nil {
		return nil, err
	}

	loc.Category = &cat
	loc.Tags = tags.Parse(rawTags)

	if description.Valid {
		v := description.String
		loc.Description = &v
	}
	if phone.Valid {
		v := phone.String
		loc.Phone = &v
	}
	if website.Valid {
		v := website.String
		loc.Website = &v
	}
	if latitude.Valid {
		v := latitude.Float64
		loc.Latitude = &v
	}
	if longitude.Valid {
		v := longitude.Float64
		loc.Longitude = &v
	}
	if userID.Valid {
		v := userID.Int64
		loc.UserID = &v
	}

	return &loc, nil
}
