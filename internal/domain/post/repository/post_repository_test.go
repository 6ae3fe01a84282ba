package repository

import (
	"testing"

	"blog_api/internal/domain/post/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

// renderListSQL 以 DryRun 渲染可见性条件产生的 SQL
func renderListSQL(t *testing.T, db *gorm.DB, viewerID uint, isPublished *string) string {
	var posts []model.Post
	tx := db.Session(&gorm.Session{DryRun: true}).
		Model(&model.Post{}).
		Scopes(VisibilityScope(viewerID, isPublished)).
		Find(&posts)
	require.NoError(t, tx.Error)
	return tx.Statement.SQL.String()
}

func TestVisibilityScope(t *testing.T) {
	db, _ := newMockDB(t)

	t.Run("Anonymous sees published only", func(t *testing.T) {
		sql := renderListSQL(t, db, 0, nil)

		assert.Contains(t, sql, "posts.is_published = $1")
		assert.NotContains(t, sql, "author_id")
	})

	t.Run("Logged-in sees published or own drafts", func(t *testing.T) {
		sql := renderListSQL(t, db, 5, nil)

		assert.Contains(t, sql, "posts.is_published = $1 OR (posts.author_id = $2 AND posts.is_published = $3)")
	})

	t.Run("isPublished=true narrows to published only", func(t *testing.T) {
		isPublished := "true"
		sql := renderListSQL(t, db, 5, &isPublished)

		assert.Contains(t, sql, "posts.is_published = $1")
		assert.NotContains(t, sql, "author_id")
	})

	t.Run("Any other isPublished narrows to own drafts", func(t *testing.T) {
		isPublished := "false"
		sql := renderListSQL(t, db, 5, &isPublished)

		assert.Contains(t, sql, "posts.author_id = $1 AND posts.is_published = $2")
		assert.NotContains(t, sql, "OR")
	})

	t.Run("Anonymous ignores the isPublished parameter", func(t *testing.T) {
		isPublished := "false"
		sql := renderListSQL(t, db, 0, &isPublished)

		assert.Contains(t, sql, "posts.is_published = $1")
		assert.NotContains(t, sql, "author_id")
	})
}

func TestLikeCounts(t *testing.T) {
	t.Run("Counts grouped by post", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostRepository(db)

		rows := sqlmock.NewRows([]string{"post_id", "total"}).
			AddRow(1, 3).
			AddRow(2, 1)
		mock.ExpectQuery(`SELECT post_id, COUNT\(\*\) AS total FROM "likes"`).
			WillReturnRows(rows)

		counts, err := repo.LikeCounts([]uint{1, 2, 3})

		assert.NoError(t, err)
		assert.Equal(t, int64(3), counts[1])
		assert.Equal(t, int64(1), counts[2])
		assert.Equal(t, int64(0), counts[3])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Empty input skips the query", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostRepository(db)

		counts, err := repo.LikeCounts(nil)

		assert.NoError(t, err)
		assert.Empty(t, counts)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLikedSet(t *testing.T) {
	t.Run("Returns liked post ids as a set", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostRepository(db)

		rows := sqlmock.NewRows([]string{"post_id"}).AddRow(1).AddRow(3)
		mock.ExpectQuery(`SELECT "post_id" FROM "likes"`).
			WillReturnRows(rows)

		liked, err := repo.LikedSet(5, []uint{1, 2, 3})

		assert.NoError(t, err)
		assert.True(t, liked[1])
		assert.False(t, liked[2])
		assert.True(t, liked[3])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Anonymous user short-circuits", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostRepository(db)

		liked, err := repo.LikedSet(0, []uint{1, 2})

		assert.NoError(t, err)
		assert.Empty(t, liked)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
