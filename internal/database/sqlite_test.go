package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedDataset writes a minimal evms dataset and returns its path.
func seedDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "project.db")

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE evms (
		WHO1_하도급업체 TEXT,
		HOW2_대공종 TEXT,
		WHERE2_동 TEXT,
		WHEN2종료일 TEXT,
		R8_노무비_금액 REAL,
		R10_합계_금액 REAL
	)`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO evms VALUES
		('금빛건설㈜', '철근콘크리트', '본관동', '2026-08-15', 30000000, 120000000),
		('태양토건㈜', '토공사', '본관동', '2026-07-20', 12000000, 45000000),
		('한길전기㈜', '전기공사', '별관동', '2026-09-01', 8000000, 22000000)`)
	require.NoError(t, err)
	return path
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.db"))
	require.Error(t, err)
}

func TestOpen_NotADataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = db.Exec("CREATE TABLE other (x INTEGER)")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = Open(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "evms")
}

func TestExecute(t *testing.T) {
	store, err := Open(seedDataset(t))
	require.NoError(t, err)
	defer store.Close()

	t.Run("aggregate query", func(t *testing.T) {
		r := store.Execute(context.Background(),
			"SELECT WHO1_하도급업체 AS 업체, SUM(R10_합계_금액) AS 합계금액 FROM evms GROUP BY WHO1_하도급업체 ORDER BY 합계금액 DESC")
		require.Empty(t, r.Err)
		assert.Equal(t, []string{"업체", "합계금액"}, r.Columns)
		require.Len(t, r.Rows, 3)
		assert.Equal(t, "금빛건설㈜", r.Rows[0][0])
		assert.Equal(t, float64(120000000), r.Rows[0][1])
	})

	t.Run("text columns come back as strings", func(t *testing.T) {
		r := store.Execute(context.Background(), "SELECT WHEN2종료일 FROM evms ORDER BY WHEN2종료일 LIMIT 1")
		require.Empty(t, r.Err)
		require.Len(t, r.Rows, 1)
		assert.Equal(t, "2026-07-20", r.Rows[0][0])
	})

	t.Run("empty result keeps columns", func(t *testing.T) {
		r := store.Execute(context.Background(), "SELECT WHO1_하도급업체 FROM evms WHERE WHO1_하도급업체 = '없는업체'")
		require.Empty(t, r.Err)
		assert.Equal(t, []string{"WHO1_하도급업체"}, r.Columns)
		assert.Empty(t, r.Rows)
	})

	t.Run("bad column is an in-band error", func(t *testing.T) {
		r := store.Execute(context.Background(), "SELECT 없는컬럼 FROM evms")
		assert.Contains(t, r.Err, "SQL 실행 오류: ")
		assert.Empty(t, r.Rows)
	})

	t.Run("write is rejected by the read-only connection", func(t *testing.T) {
		r := store.Execute(context.Background(), "DELETE FROM evms")
		assert.NotEmpty(t, r.Err)
	})
}
