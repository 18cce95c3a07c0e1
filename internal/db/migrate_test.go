package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *Database {
	t.Helper()
	d, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return d
}

func TestMigrate_Idempotent(t *testing.T) {
	d := openTestDB(t)

	require.NoError(t, Migrate(d))
	require.NoError(t, Migrate(d))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	d := openTestDB(t)

	expected := []string{"tasks", "events", "goals", "daily_summaries", "daily_evaluations", "reflections", "agent_memory"}
	for _, table := range expected {
		var name string
		err := d.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	d := openTestDB(t)

	expected := []string{
		"idx_tasks_status",
		"idx_tasks_parent",
		"idx_events_start",
		"idx_daily_summaries_date",
		"idx_daily_evaluations_date",
		"idx_agent_memory_ts",
	}
	for _, idx := range expected {
		var name string
		err := d.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_TaskStatusCheck(t *testing.T) {
	d := openTestDB(t)

	_, err := d.Exec(`INSERT INTO tasks (id, title, status, created_at, updated_at) VALUES ('t1', 'x', 'finished', 'a', 'a')`)
	assert.Error(t, err)
}

func TestMigrate_SubtasksCascade(t *testing.T) {
	d := openTestDB(t)

	_, err := d.Exec(`INSERT INTO tasks (id, title, created_at, updated_at) VALUES ('p', 'parent', 'a', 'a')`)
	require.NoError(t, err)
	_, err = d.Exec(`INSERT INTO tasks (id, title, parent_task_id, created_at, updated_at) VALUES ('c', 'child', 'p', 'a', 'a')`)
	require.NoError(t, err)

	_, err = d.Exec(`DELETE FROM tasks WHERE id = 'p'`)
	require.NoError(t, err)

	var n int
	require.NoError(t, d.QueryRow(`SELECT COUNT(*) FROM tasks`).Scan(&n))
	assert.Equal(t, 0, n)
}

func TestDialectFor(t *testing.T) {
	assert.Equal(t, DialectPostgres, DialectFor("postgres://u:p@localhost/daybook?sslmode=disable"))
	assert.Equal(t, DialectPostgres, DialectFor("postgresql://localhost/daybook"))
	assert.Equal(t, DialectSQLite, DialectFor(":memory:"))
	assert.Equal(t, DialectSQLite, DialectFor("/var/lib/daybook/daybook.db"))
	assert.Equal(t, DialectSQLite, DialectFor("sqlite:///tmp/x.db"))
}

func TestRebindQuery(t *testing.T) {
	assert.Equal(t, "SELECT 1", RebindQuery("SELECT 1"))
	assert.Equal(t,
		"UPDATE tasks SET title = $1, status = $2 WHERE id = $3",
		RebindQuery("UPDATE tasks SET title = ?, status = ? WHERE id = ?"))
	assert.Equal(t,
		"SELECT * FROM tasks WHERE title = 'why?' AND id = $1",
		RebindQuery("SELECT * FROM tasks WHERE title = 'why?' AND id = ?"))
}

func TestRebind_SQLitePassThrough(t *testing.T) {
	d := openTestDB(t)
	assert.Equal(t, DBTX(d.DB), Rebind(DialectSQLite, d.DB))
	_, wrapped := Rebind(DialectPostgres, d.DB).(rebinder)
	assert.True(t, wrapped)
}
