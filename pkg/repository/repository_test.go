package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates in-memory repositories closed at test cleanup
func setupTestDB(t *testing.T) *Repositories {
	t.Helper()
	repos, err := NewRepositories(context.Background(), Config{
		DSN:          ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, repos.Close()) })
	return repos
}

func TestNewRepositories(t *testing.T) {
	repos := setupTestDB(t)
	require.NoError(t, repos.Ping(context.Background()))

	assert.NotNil(t, repos.Knowledge)
	assert.NotNil(t, repos.Interaction)
	assert.NotNil(t, repos.Setting)
	assert.NotNil(t, repos.RateLimit)

	// trained column and the trigger are in place
	var count int
	err := repos.DB.Get(&count, `SELECT COUNT(*) FROM pragma_table_info('response_logs') WHERE name = 'trained'`)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	err = repos.DB.Get(&count, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'trigger' AND name = 'prompt_data_touch_updated_at'`)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRunMigrations_Idempotent(t *testing.T) {
	repos := setupTestDB(t)
	require.NoError(t, runMigrations(context.Background(), repos.DB))
	require.NoError(t, runMigrations(context.Background(), repos.DB))
}

func TestRunMigrations_AddsTrainedColumn(t *testing.T) {
	ctx := context.Background()
	db, err := sqlx.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	defer db.Close()

	// response_logs as created before the trained column existed
	_, err = db.Exec(`CREATE TABLE response_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_message TEXT NOT NULL,
		ai_response TEXT NOT NULL,
		source TEXT NOT NULL,
		score REAL,
		feedback TEXT,
		ip_address TEXT NOT NULL DEFAULT '',
		user_agent TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO response_logs (user_message, ai_response, source) VALUES ('q', 'a', 'gpt')`)
	require.NoError(t, err)

	require.NoError(t, initSchema(ctx, db))
	require.NoError(t, runMigrations(ctx, db))

	var trained int
	require.NoError(t, db.Get(&trained, `SELECT trained FROM response_logs WHERE user_message = 'q'`))
	assert.Equal(t, 0, trained)

	var count int
	require.NoError(t, db.Get(&count, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'index' AND name = 'idx_response_logs_trained'`))
	assert.Equal(t, 1, count)
}

func TestUlower(t *testing.T) {
	repos := setupTestDB(t)

	var res string
	require.NoError(t, repos.DB.Get(&res, `SELECT ulower('ÜBER Luna ЛУНА')`))
	assert.Equal(t, "über luna луна", res)

	var null *string
	require.NoError(t, repos.DB.Get(&null, `SELECT ulower(NULL)`))
	assert.Nil(t, null)
}

func TestSplitMigrationStatements(t *testing.T) {
	sqlText := `
-- leading comment
CREATE INDEX IF NOT EXISTS idx_a ON t(a);

CREATE TRIGGER IF NOT EXISTS trg
AFTER UPDATE ON t
FOR EACH ROW
BEGIN
    UPDATE t SET b = 1 WHERE id = NEW.id;
END;
CREATE INDEX IF NOT EXISTS idx_b ON t(b);
`
	stmts := splitMigrationStatements(sqlText)
	require.Len(t, stmts, 3)
	assert.Equal(t, "CREATE INDEX IF NOT EXISTS idx_a ON t(a);", stmts[0])
	assert.Contains(t, stmts[1], "BEGIN")
	assert.Contains(t, stmts[1], "UPDATE t SET b = 1 WHERE id = NEW.id;")
	assert.True(t, len(stmts[1]) > 0 && stmts[1][len(stmts[1])-4:] == "END;")
	assert.Equal(t, "CREATE INDEX IF NOT EXISTS idx_b ON t(b);", stmts[2])
}

func TestTagsHelpers(t *testing.T) {
	assert.Equal(t, "a,B,c d", tagsSQL([]string{" a", "B ", "", "c d"}))
	assert.Equal(t, []string{"a", "B", "c d"}, parseTags("a, B ,,c d"))
	assert.Empty(t, parseTags("  "))
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%luna%", likePattern("Luna"))
	assert.Equal(t, `%100\%\_ok\\%`, likePattern(`100%_OK\`))
}

func TestIsLockError(t *testing.T) {
	assert.False(t, isLockError(nil))
	assert.False(t, isLockError(errors.New("constraint failed")))
	assert.True(t, isLockError(errors.New("database is locked (5) (SQLITE_BUSY)")))
	assert.True(t, isLockError(errors.New("database table is locked")))
}

func TestRetryOnLock(t *testing.T) {
	calls := 0
	err := retryOnLock(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("database is locked")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)

	calls = 0
	errConstraint := errors.New("constraint failed")
	err = retryOnLock(context.Background(), func() error {
		calls++
		return errConstraint
	})
	require.ErrorIs(t, err, errConstraint)
	assert.Equal(t, 1, calls, "non-lock errors are not retried")
}
