package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createProfileTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE profiles (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		display_name TEXT NOT NULL,
		avatar_url TEXT,
		password_hash TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createTeamTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE teams (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		team_code TEXT NOT NULL UNIQUE,
		invite_code TEXT NOT NULL UNIQUE,
		password_hash TEXT,
		created_by TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createTeamMemberTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE team_members (
		team_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'viewer',
		status TEXT,
		joined_at DATETIME NOT NULL,
		PRIMARY KEY (team_id, user_id)
	);`)
}

func createTeamChatTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE team_chats (
		id TEXT PRIMARY KEY,
		team_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		body TEXT NOT NULL,
		created_at DATETIME
	);`)
}

func createSnapshotTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE team_chat_snapshots (
		team_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		state BLOB NOT NULL,
		updated_at DATETIME,
		PRIMARY KEY (team_id, user_id)
	);`)
	mustExec(t, db, `CREATE TABLE team_todo_snapshots (
		team_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		state BLOB NOT NULL,
		updated_at DATETIME,
		PRIMARY KEY (team_id, user_id)
	);`)
}

func createInvitationTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE team_invitations (
		id TEXT PRIMARY KEY,
		team_id TEXT NOT NULL,
		email TEXT,
		github_handle TEXT,
		invited_by TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		code TEXT,
		created_at DATETIME,
		accepted_at DATETIME
	);`)
}
