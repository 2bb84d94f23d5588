package services

import (
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jophkins/lastshoot/internal/models"
)

func TestFilterClause(t *testing.T) {
	tests := []struct {
		filter string
		want   string
	}{
		{"published", "is_published = true AND deleted_at IS NULL"},
		{"draft", "is_published = false AND deleted_at IS NULL"},
		{"deleted", "deleted_at IS NOT NULL"},
		{"all", "TRUE"},
		{"", "TRUE"},
		{"bogus", "TRUE"},
	}

	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterClause(tt.filter))
		})
	}
}

func newMockStorage(t *testing.T) (*PostgresStorage, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &PostgresStorage{db: db}, mock
}

var photoRowColumns = []string{
	"id", "original_key", "preview_key", "thumb_key", "title", "description", "tags", "is_published", "deleted_at",
	"camera_make", "camera_model", "lens_model", "focal_length", "aperture", "shutter", "iso", "taken_at",
	"created_at", "updated_at",
}

func photoRow(rows *sqlmock.Rows, id string, deletedAt *time.Time, createdAt time.Time) *sqlmock.Rows {
	var deleted interface{}
	if deletedAt != nil {
		deleted = *deletedAt
	}
	return rows.AddRow(
		id, "original/"+id+".jpg", "preview/"+id+".jpg", "thumb/"+id+".jpg", "title", "", []byte("{}"), true, deleted,
		nil, nil, nil, nil, nil, nil, nil, nil,
		createdAt, createdAt,
	)
}

func TestListPhotosPageFirstPage(t *testing.T) {
	p, mock := newMockStorage(t)

	now := time.Now().UTC()
	rows := sqlmock.NewRows(photoRowColumns)
	photoRow(rows, "p1", nil, now)
	photoRow(rows, "p2", nil, now.Add(-time.Minute))

	mock.ExpectQuery(regexp.QuoteMeta(`FROM photos WHERE TRUE ORDER BY created_at DESC, id DESC LIMIT $1`)).
		WithArgs(21).
		WillReturnRows(rows)

	photos, err := p.listPhotosPage(FilterClause("all"), "", 21)
	require.NoError(t, err)
	require.Len(t, photos, 2)
	assert.Equal(t, "p1", photos[0].ID)
	assert.Equal(t, "p2", photos[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// The cursor expands into a row comparison against the cursor row itself,
// so a page picks up exactly where the previous one ended even when many
// photos share a created_at.
func TestListPhotosPageCursorRowComparison(t *testing.T) {
	p, mock := newMockStorage(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		`AND (created_at, id) < (SELECT created_at, id FROM photos WHERE id = $1) ORDER BY created_at DESC, id DESC LIMIT $2`)).
		WithArgs("cursor-photo", 21).
		WillReturnRows(sqlmock.NewRows(photoRowColumns))

	photos, err := p.listPhotosPage(FilterClause("all"), "cursor-photo", 21)
	require.NoError(t, err)
	assert.Empty(t, photos)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListPhotosPageDeletedFilter(t *testing.T) {
	p, mock := newMockStorage(t)

	deletedAt := time.Now().UTC()
	rows := sqlmock.NewRows(photoRowColumns)
	photoRow(rows, "gone", &deletedAt, deletedAt.Add(-time.Hour))

	mock.ExpectQuery(regexp.QuoteMeta(`FROM photos WHERE deleted_at IS NOT NULL ORDER BY`)).
		WithArgs(21).
		WillReturnRows(rows)

	photos, err := p.listPhotosPage(FilterClause("deleted"), "", 21)
	require.NoError(t, err)
	require.Len(t, photos, 1)
	require.NotNil(t, photos[0].DeletedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePhotoSetClauseFollowsProvidedFields(t *testing.T) {
	p, mock := newMockStorage(t)

	title := "New title"
	published := true
	req := models.UpdatePhotoRequest{Title: &title, IsPublished: &published}

	rows := sqlmock.NewRows(photoRowColumns)
	photoRow(rows, "p1", nil, time.Now().UTC())

	mock.ExpectQuery(regexp.QuoteMeta(
		`UPDATE photos SET updated_at = NOW(), title = $1, is_published = $2 WHERE id = $3 RETURNING`)).
		WithArgs(title, published, "p1").
		WillReturnRows(rows)

	photo, err := p.updatePhoto("p1", req)
	require.NoError(t, err)
	assert.Equal(t, "p1", photo.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePhotoMissingRow(t *testing.T) {
	p, mock := newMockStorage(t)

	title := "whatever"
	mock.ExpectQuery(`UPDATE photos SET`).
		WillReturnError(sql.ErrNoRows)

	_, err := p.updatePhoto("missing", models.UpdatePhotoRequest{Title: &title})
	assert.ErrorIs(t, err, ErrPhotoNotFound)
}

func TestSoftDeleteStampsDeletedAt(t *testing.T) {
	p, mock := newMockStorage(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE photos SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1`)).
		WithArgs("p1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, p.setDeletedAt("p1", true))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Restore clears deleted_at and touches nothing else; the anchored match
// pins that is_published stays whatever it was before deletion, so a
// restored photo reappears as the draft or published item it was.
func TestRestoreClearsOnlyDeletedAt(t *testing.T) {
	p, mock := newMockStorage(t)

	mock.ExpectExec(`^UPDATE photos SET deleted_at = NULL, updated_at = NOW\(\) WHERE id = \$1$`).
		WithArgs("p1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, p.setDeletedAt("p1", false))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetDeletedAtMissingRow(t *testing.T) {
	p, mock := newMockStorage(t)

	mock.ExpectExec(`UPDATE photos SET deleted_at`).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, p.setDeletedAt("missing", true), ErrPhotoNotFound)
}
