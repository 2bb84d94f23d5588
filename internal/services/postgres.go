package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/lib/pq"

	"github.com/Jophkins/lastshoot/internal/models"
)

// PostgresStorage handles PostgreSQL operations
type PostgresStorage struct {
	db *sql.DB
}

var postgresInstance *PostgresStorage

var ErrPhotoNotFound = errors.New("photo not found")

// InitializePostgres sets up PostgreSQL storage
func InitializePostgres(connectionString string) error {
	pgStorage := &PostgresStorage{}
	if err := pgStorage.Connect(connectionString); err != nil {
		return err
	}
	postgresInstance = pgStorage
	return nil
}

// Connect establishes connection to PostgreSQL
func (p *PostgresStorage) Connect(connectionString string) error {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %v", err)
	}

	// Test the connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping PostgreSQL: %v", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	p.db = db

	// Create tables
	if err := p.createTables(); err != nil {
		return fmt.Errorf("failed to create tables: %v", err)
	}

	log.Println("Connected to PostgreSQL successfully")
	return nil
}

func (p *PostgresStorage) createTables() error {
	query := `
    CREATE TABLE IF NOT EXISTS photos (
        id UUID PRIMARY KEY,
        original_key VARCHAR(500) NOT NULL,
        preview_key VARCHAR(500) NOT NULL,
        thumb_key VARCHAR(500) NOT NULL,
        title VARCHAR(255) NOT NULL DEFAULT '',
        description TEXT NOT NULL DEFAULT '',
        tags TEXT[] NOT NULL DEFAULT '{}',
        is_published BOOLEAN NOT NULL DEFAULT false,
        deleted_at TIMESTAMPTZ,
        camera_make VARCHAR(100),
        camera_model VARCHAR(100),
        lens_model VARCHAR(100),
        focal_length DOUBLE PRECISION,
        aperture DOUBLE PRECISION,
        shutter VARCHAR(20),
        iso INTEGER,
        taken_at TIMESTAMPTZ,
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
        updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    );
    `
	_, err := p.db.Exec(query)
	if err != nil {
		return err
	}

	// Indexes
	indexQuery := `
    CREATE INDEX IF NOT EXISTS idx_photos_created_at ON photos(created_at DESC);
    CREATE INDEX IF NOT EXISTS idx_photos_is_published ON photos(is_published);
    CREATE INDEX IF NOT EXISTS idx_photos_deleted_at ON photos(deleted_at);
    `

	_, err = p.db.Exec(indexQuery)
	return err
}

// Public functions - directly callable from handlers

func SavePhoto(photo models.Photo) error {
	if postgresInstance == nil {
		return fmt.Errorf("postgres storage not initialized")
	}
	return postgresInstance.savePhoto(photo)
}

// ListPhotosPage returns one keyset-paginated page of photos for the admin
// list. filter is one of "", "all", "published", "draft", "deleted".
func ListPhotosPage(filter, cursor string, limit int) ([]models.Photo, error) {
	if postgresInstance == nil {
		return nil, fmt.Errorf("postgres storage not initialized")
	}
	return postgresInstance.listPhotosPage(FilterClause(filter), cursor, limit)
}

// ListPublishedPage returns one page of the public gallery: published
// photos that are not soft-deleted.
func ListPublishedPage(cursor string, limit int) ([]models.Photo, error) {
	if postgresInstance == nil {
		return nil, fmt.Errorf("postgres storage not initialized")
	}
	return postgresInstance.listPhotosPage(FilterClause("published"), cursor, limit)
}

func UpdatePhoto(id string, req models.UpdatePhotoRequest) (models.Photo, error) {
	if postgresInstance == nil {
		return models.Photo{}, fmt.Errorf("postgres storage not initialized")
	}
	return postgresInstance.updatePhoto(id, req)
}

// SoftDeletePhoto marks a photo deleted. The row is never removed, so the
// photo stays restorable.
func SoftDeletePhoto(id string) error {
	if postgresInstance == nil {
		return fmt.Errorf("postgres storage not initialized")
	}
	return postgresInstance.setDeletedAt(id, true)
}

// RestorePhoto clears deleted_at. The publish flag is untouched: a photo
// comes back as the draft or published item it was before deletion.
func RestorePhoto(id string) error {
	if postgresInstance == nil {
		return fmt.Errorf("postgres storage not initialized")
	}
	return postgresInstance.setDeletedAt(id, false)
}

// CheckPostgres is used by the health endpoint.
func CheckPostgres() error {
	if postgresInstance == nil || postgresInstance.db == nil {
		return fmt.Errorf("postgres storage not initialized")
	}
	return postgresInstance.db.Ping()
}

// FilterClause maps an admin list filter to its SQL predicate.
func FilterClause(filter string) string {
	switch filter {
	case "published":
		return "is_published = true AND deleted_at IS NULL"
	case "draft":
		return "is_published = false AND deleted_at IS NULL"
	case "deleted":
		return "deleted_at IS NOT NULL"
	default:
		return "TRUE"
	}
}

const photoColumns = `id, original_key, preview_key, thumb_key, title, description, tags, is_published, deleted_at,
        camera_make, camera_model, lens_model, focal_length, aperture, shutter, iso, taken_at, created_at, updated_at`

// Private methods with actual implementation

func (p *PostgresStorage) savePhoto(photo models.Photo) error {
	query := `
    INSERT INTO photos (id, original_key, preview_key, thumb_key, title, description, tags, is_published,
        camera_make, camera_model, lens_model, focal_length, aperture, shutter, iso, taken_at, created_at, updated_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
    `

	_, err := p.db.Exec(query,
		photo.ID,
		photo.OriginalKey,
		photo.PreviewKey,
		photo.ThumbKey,
		photo.Title,
		photo.Description,
		pq.Array(photo.Tags),
		photo.IsPublished,
		photo.CameraMake,
		photo.CameraModel,
		photo.LensModel,
		photo.FocalLength,
		photo.Aperture,
		photo.Shutter,
		photo.ISO,
		photo.TakenAt,
		photo.CreatedAt,
		photo.UpdatedAt,
	)

	return err
}

// listPhotosPage pages newest-first. The cursor is the id of the last row
// of the previous page; rows strictly after it in (created_at, id) DESC
// order are returned.
func (p *PostgresStorage) listPhotosPage(whereClause, cursor string, limit int) ([]models.Photo, error) {
	query := `SELECT ` + photoColumns + ` FROM photos WHERE ` + whereClause
	args := []interface{}{}

	if cursor != "" {
		args = append(args, cursor)
		query += fmt.Sprintf(` AND (created_at, id) < (SELECT created_at, id FROM photos WHERE id = $%d)`, len(args))
	}

	args = append(args, limit)
	query += fmt.Sprintf(` ORDER BY created_at DESC, id DESC LIMIT $%d`, len(args))

	rows, err := p.db.Query(query, args...)
	if err != nil {
		log.Printf("Error querying photos page: %v", err)
		return nil, err
	}
	defer func(rows *sql.Rows) {
		if cerr := rows.Close(); cerr != nil {
			log.Printf("Error closing rows: %v", cerr)
		}
	}(rows)

	var photos []models.Photo
	for rows.Next() {
		photo, err := scanPhoto(rows)
		if err != nil {
			log.Printf("Error scanning row: %v", err)
			continue
		}
		photos = append(photos, photo)
	}
	return photos, rows.Err()
}

func (p *PostgresStorage) updatePhoto(id string, req models.UpdatePhotoRequest) (models.Photo, error) {
	set := "updated_at = NOW()"
	args := []interface{}{}

	addSet := func(column string, value interface{}) {
		args = append(args, value)
		set += fmt.Sprintf(", %s = $%d", column, len(args))
	}

	if req.Title != nil {
		addSet("title", *req.Title)
	}
	if req.Description != nil {
		addSet("description", *req.Description)
	}
	if req.Tags != nil {
		addSet("tags", pq.Array(req.Tags))
	}
	if req.IsPublished != nil {
		addSet("is_published", *req.IsPublished)
	}
	if req.CameraMake != nil {
		addSet("camera_make", *req.CameraMake)
	}
	if req.CameraModel != nil {
		addSet("camera_model", *req.CameraModel)
	}
	if req.LensModel != nil {
		addSet("lens_model", *req.LensModel)
	}
	if req.FocalLength != nil {
		addSet("focal_length", *req.FocalLength)
	}
	if req.Aperture != nil {
		addSet("aperture", *req.Aperture)
	}
	if req.Shutter != nil {
		addSet("shutter", *req.Shutter)
	}
	if req.ISO != nil {
		addSet("iso", *req.ISO)
	}
	if req.TakenAt != nil {
		addSet("taken_at", *req.TakenAt)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE photos SET %s WHERE id = $%d RETURNING `+photoColumns, set, len(args))

	photo, err := scanPhoto(p.db.QueryRow(query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Photo{}, ErrPhotoNotFound
		}
		return models.Photo{}, err
	}
	return photo, nil
}

func (p *PostgresStorage) setDeletedAt(id string, deleted bool) error {
	query := `UPDATE photos SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1`
	if !deleted {
		query = `UPDATE photos SET deleted_at = NULL, updated_at = NOW() WHERE id = $1`
	}

	result, err := p.db.Exec(query, id)
	if err != nil {
		return err
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrPhotoNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPhoto(row rowScanner) (models.Photo, error) {
	var photo models.Photo
	err := row.Scan(
		&photo.ID,
		&photo.OriginalKey,
		&photo.PreviewKey,
		&photo.ThumbKey,
		&photo.Title,
		&photo.Description,
		pq.Array(&photo.Tags),
		&photo.IsPublished,
		&photo.DeletedAt,
		&photo.CameraMake,
		&photo.CameraModel,
		&photo.LensModel,
		&photo.FocalLength,
		&photo.Aperture,
		&photo.Shutter,
		&photo.ISO,
		&photo.TakenAt,
		&photo.CreatedAt,
		&photo.UpdatedAt,
	)
	return photo, err
}
