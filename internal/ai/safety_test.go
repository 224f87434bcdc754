package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSQL(t *testing.T) {
	t.Run("allows plain SELECT", func(t *testing.T) {
		assert.NoError(t, ValidateSQL("SELECT HOW2_대공종, SUM(R10_합계_금액) FROM evms GROUP BY HOW2_대공종"))
	})

	t.Run("allows SELECT with subquery and quoted columns", func(t *testing.T) {
		assert.NoError(t, ValidateSQL(`SELECT SUM(R10_합계_금액 * COALESCE("WHEN4_실행률(%)", 0)) FROM evms WHERE WHEN1_시작일 > (SELECT MAX(WHEN2종료일) FROM evms)`))
	})

	t.Run("rejects each mutating keyword", func(t *testing.T) {
		for _, sql := range []string{
			"DROP TABLE evms",
			"DELETE FROM evms WHERE 1=1",
			"INSERT INTO evms VALUES (1)",
			"UPDATE evms SET R10_합계_금액 = 0",
			"ALTER TABLE evms ADD COLUMN x TEXT",
			"CREATE TABLE t (id INTEGER)",
			"TRUNCATE TABLE evms",
		} {
			err := ValidateSQL(sql)
			require.Error(t, err, sql)
		}
	})

	t.Run("rejects lowercase and embedded statements", func(t *testing.T) {
		assert.Error(t, ValidateSQL("select 1; drop table evms"))
		assert.Error(t, ValidateSQL("SELECT * FROM evms; DELETE FROM evms"))
	})

	t.Run("keyword must be word-bounded", func(t *testing.T) {
		assert.NoError(t, ValidateSQL("SELECT * FROM updates"))
		assert.NoError(t, ValidateSQL("SELECT created_at FROM evms_inserted"))
	})
}
