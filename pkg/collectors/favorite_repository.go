package collectors

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/eventscout/eventscout/pkg/domain"
)

// FavoriteRepository stores favorites in SQL. It speaks sqlite by
// default; pass driver "postgres" to rebind placeholders for lib/pq.
type FavoriteRepository struct {
	db     *sql.DB
	driver string
}

func NewFavoriteRepository(db *sql.DB, driver string) (*FavoriteRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}
	if driver == "" {
		driver = "sqlite3"
	}

	repo := &FavoriteRepository{db: db, driver: driver}
	if err := repo.createTables(); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return repo, nil
}

func (r *FavoriteRepository) createTables() error {
	query := `
	CREATE TABLE IF NOT EXISTS favorites (
		id TEXT PRIMARY KEY,
		event_id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		date TEXT,
		genre TEXT,
		venue TEXT,
		image_url TEXT,
		is_favorite BOOLEAN NOT NULL,
		created_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_favorites_event_id ON favorites(event_id);
	`

	_, err := r.db.Exec(query)
	return err
}

func (r *FavoriteRepository) List(ctx context.Context) ([]domain.Favorite, error) {
	query := r.rebind(`
	SELECT id, event_id, name, date, genre, venue, image_url, is_favorite
	FROM favorites
	ORDER BY created_at ASC
	`)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	favorites := []domain.Favorite{}
	for rows.Next() {
		var favorite domain.Favorite
		err := rows.Scan(
			&favorite.ID,
			&favorite.EventID,
			&favorite.Name,
			&favorite.Date,
			&favorite.Genre,
			&favorite.Venue,
			&favorite.ImageURL,
			&favorite.IsFavorite,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		favorites = append(favorites, favorite)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return favorites, nil
}

// Add persists a new favorite and assigns its server id.
func (r *FavoriteRepository) Add(ctx context.Context, favorite *domain.Favorite) error {
	if favorite == nil {
		return fmt.Errorf("favorite cannot be nil")
	}
	if favorite.EventID == "" {
		return domain.ErrInvalidRequest
	}

	favorite.ID = newID()

	query := r.rebind(`
	INSERT INTO favorites (id, event_id, name, date, genre, venue, image_url, is_favorite, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)

	_, err := r.db.ExecContext(ctx, query,
		favorite.ID,
		favorite.EventID,
		favorite.Name,
		favorite.Date,
		favorite.Genre,
		favorite.Venue,
		favorite.ImageURL,
		favorite.IsFavorite,
		time.Now(),
	)

	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") ||
			strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateFavorite
		}
		return fmt.Errorf("failed to add favorite: %w", err)
	}

	return nil
}

func (r *FavoriteRepository) RemoveByEventID(ctx context.Context, eventID string) error {
	if eventID == "" {
		return domain.ErrInvalidRequest
	}

	query := r.rebind(`DELETE FROM favorites WHERE event_id = ?`)

	result, err := r.db.ExecContext(ctx, query, eventID)
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrFavoriteNotFound
	}

	return nil
}

func (r *FavoriteRepository) GetByEventID(ctx context.Context, eventID string) (*domain.Favorite, error) {
	query := r.rebind(`
	SELECT id, event_id, name, date, genre, venue, image_url, is_favorite
	FROM favorites
	WHERE event_id = ?
	`)

	var favorite domain.Favorite
	err := r.db.QueryRowContext(ctx, query, eventID).Scan(
		&favorite.ID,
		&favorite.EventID,
		&favorite.Name,
		&favorite.Date,
		&favorite.Genre,
		&favorite.Venue,
		&favorite.ImageURL,
		&favorite.IsFavorite,
	)

	if err == sql.ErrNoRows {
		return nil, domain.ErrFavoriteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get favorite by event id: %w", err)
	}

	return &favorite, nil
}

// rebind rewrites ? placeholders as $1..$n for the postgres driver.
func (r *FavoriteRepository) rebind(query string) string {
	if r.driver != "postgres" {
		return query
	}

	var b strings.Builder
	n := 0
	for _, ch := range query {
		if ch == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(ch)
	}
	return b.String()
}

func newID() string {
	buf := make([]byte, 12)
	rand.Read(buf)
	return hex.EncodeToString(buf)
}
