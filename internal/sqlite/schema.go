package sqlite

// Schema DDL. The kv table holds one opaque document per key.
const (
	createKV = `CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value BLOB NOT NULL,
    updated_at TEXT NOT NULL
);`

	upsertKV = `INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	selectKV = `SELECT value FROM kv WHERE key = ?`

	selectKeys = `SELECT key FROM kv ORDER BY key`
)

// schemaStatements run in order on every Attach.
var schemaStatements = []string{
	createKV,
	`PRAGMA journal_mode = WAL;`,
	`PRAGMA busy_timeout = 5000;`,
}
