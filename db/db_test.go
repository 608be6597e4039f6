package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"commander/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) Store {
	t.Helper()
	s, err := Open(Options{
		Driver:     DriverSQLite,
		DSN:        filepath.Join(t.TempDir(), "commands.db"),
		AutoCreate: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(Options{Driver: "oracle", DSN: "x"})
	assert.ErrorContains(t, err, "unknown driver")
}

func TestOpen_MissingDSN(t *testing.T) {
	_, err := Open(Options{Driver: DriverSQLite})
	assert.ErrorContains(t, err, "connection string")
}

func TestOpen_MockNeedsNoDSN(t *testing.T) {
	s, err := Open(Options{Driver: DriverMock})
	require.NoError(t, err)
	assert.IsType(t, MockStore{}, s)
}

func TestOpen_PureGoSQLite(t *testing.T) {
	s, err := Open(Options{
		Driver:     DriverSQLitePureGo,
		DSN:        filepath.Join(t.TempDir(), "purego.db"),
		AutoCreate: true,
	})
	require.NoError(t, err)
	defer s.Close()

	repo := s.Repository()
	cmd := &model.Command{HowTo: "disk usage", Line: "du -sh .", Platform: "linux"}
	require.NoError(t, repo.CreateCommand(cmd))
	require.NoError(t, repo.SaveChanges(context.Background()))
	assert.NotZero(t, cmd.ID)
}

func tableDDL(t *testing.T, path string) string {
	t.Helper()
	conn, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer conn.Close()

	var ddl string
	require.NoError(t, conn.QueryRow(
		`SELECT sql FROM sqlite_master WHERE type = 'table' AND name = 'Commands'`,
	).Scan(&ddl))
	return ddl
}

func TestOpen_AutoCreateLeavesExistingTableAlone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "existing.db")

	conn, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = conn.Exec(`CREATE TABLE Commands (
		Id INTEGER PRIMARY KEY AUTOINCREMENT,
		HowTo varchar(250),
		Line text,
		Platform text
	)`)
	require.NoError(t, err)
	require.NoError(t, conn.Close())
	before := tableDDL(t, path)

	s, err := Open(Options{Driver: DriverSQLite, DSN: path, AutoCreate: true})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	assert.Equal(t, before, tableDDL(t, path))
}

func TestOpen_AutoCreateCreatesMissingTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.db")

	s, err := Open(Options{Driver: DriverSQLite, DSN: path, AutoCreate: true})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	ddl := tableDDL(t, path)
	assert.Contains(t, ddl, "HowTo")
	assert.Contains(t, ddl, "Platform")
}

func TestSQLRepo_CreateAssignsIDOnSave(t *testing.T) {
	ctx := context.Background()
	repo := openTestStore(t).Repository()

	first := &model.Command{HowTo: "list files", Line: "ls -la", Platform: "linux"}
	second := &model.Command{ID: 99, HowTo: "print dir", Line: "pwd", Platform: "linux"}
	require.NoError(t, repo.CreateCommand(first))
	require.NoError(t, repo.CreateCommand(second))
	assert.Zero(t, first.ID, "id must not be assigned before commit")

	require.NoError(t, repo.SaveChanges(ctx))
	assert.NotZero(t, first.ID)
	assert.NotZero(t, second.ID)
	assert.NotEqual(t, 99, second.ID, "caller supplied id must be ignored")
	assert.NotEqual(t, first.ID, second.ID)

	all, err := repo.GetAllCommands(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSQLRepo_GetMissingReturnsNotFound(t *testing.T) {
	repo := openTestStore(t).Repository()

	cmd, err := repo.GetCommandByID(context.Background(), 42)
	assert.Nil(t, cmd)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLRepo_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	repo := store.Repository()
	cmd := &model.Command{HowTo: "list files", Line: "ls", Platform: "linux"}
	require.NoError(t, repo.CreateCommand(cmd))
	require.NoError(t, repo.SaveChanges(ctx))

	repo = store.Repository()
	got, err := repo.GetCommandByID(ctx, cmd.ID)
	require.NoError(t, err)
	got.Line = "ls -la"
	require.NoError(t, repo.UpdateCommand(got))
	require.NoError(t, repo.SaveChanges(ctx))

	got, err = store.Repository().GetCommandByID(ctx, cmd.ID)
	require.NoError(t, err)
	assert.Equal(t, "ls -la", got.Line)
	assert.Equal(t, "list files", got.HowTo)

	repo = store.Repository()
	require.NoError(t, repo.DeleteCommand(got))
	require.NoError(t, repo.SaveChanges(ctx))

	_, err = store.Repository().GetCommandByID(ctx, cmd.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLRepo_StagedWorkIsInvisibleUntilSaved(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	repo := store.Repository()
	require.NoError(t, repo.CreateCommand(&model.Command{HowTo: "a", Line: "b", Platform: "c"}))

	all, err := store.Repository().GetAllCommands(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSQLRepo_DeleteMissingFailsCommit(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	repo := store.Repository()
	keep := &model.Command{HowTo: "keep", Line: "true", Platform: "linux"}
	require.NoError(t, repo.CreateCommand(keep))
	require.NoError(t, repo.SaveChanges(ctx))

	repo = store.Repository()
	require.NoError(t, repo.CreateCommand(&model.Command{HowTo: "new", Line: "false", Platform: "linux"}))
	require.NoError(t, repo.DeleteCommand(&model.Command{ID: 1000}))
	err := repo.SaveChanges(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := store.Repository().GetAllCommands(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1, "failed commit must roll back the staged create")
}

func TestSQLRepo_RejectsNil(t *testing.T) {
	repo := openTestStore(t).Repository()

	assert.ErrorIs(t, repo.CreateCommand(nil), ErrNilCommand)
	assert.ErrorIs(t, repo.UpdateCommand(nil), ErrNilCommand)
	assert.ErrorIs(t, repo.DeleteCommand(nil), ErrNilCommand)
}

func TestMockRepo(t *testing.T) {
	ctx := context.Background()
	repo := MockStore{}.Repository()

	all, err := repo.GetAllCommands(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	cmd, err := repo.GetCommandByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Some text", cmd.HowTo)

	assert.ErrorIs(t, repo.CreateCommand(cmd), ErrNotImplemented)
	assert.ErrorIs(t, repo.UpdateCommand(cmd), ErrNotImplemented)
	assert.ErrorIs(t, repo.DeleteCommand(cmd), ErrNotImplemented)
	assert.ErrorIs(t, repo.SaveChanges(ctx), ErrNotImplemented)
}
