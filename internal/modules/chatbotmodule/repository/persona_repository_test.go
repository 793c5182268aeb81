package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/mantonx/cinebot/internal/modules/chatbotmodule/core/persona"
	chatErrors "github.com/mantonx/cinebot/internal/modules/chatbotmodule/errors"
	"github.com/mantonx/cinebot/internal/modules/chatbotmodule/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestRepo(t *testing.T) *PersonaRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// every connection to :memory: is a separate database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	repo := NewPersonaRepository(db)
	require.NoError(t, repo.Migrate())
	return repo
}

func newMockRepo(t *testing.T) (*PersonaRepository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	t.Cleanup(func() { sqlDB.Close() })
	return NewPersonaRepository(db), mock
}

func TestReseedAndList_PreservesOrder(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	catalog := persona.DefaultCatalog()
	require.NoError(t, repo.Reseed(ctx, catalog))

	got, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, catalog, got)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(len(catalog)), n)
}

func TestReseed_ReplacesEverything(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Reseed(ctx, persona.DefaultCatalog()))

	small := []types.PersonaRecord{{
		ID:       types.DefaultPersonaID,
		Contexts: []types.Context{types.ContextGeneral},
		Emotions: []types.Emotion{types.EmotionFriendly},
	}}
	require.NoError(t, repo.Reseed(ctx, small))

	got, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, types.DefaultPersonaID, got[0].ID)
}

func TestGet(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Reseed(ctx, persona.DefaultCatalog()))

	host, err := repo.Get(ctx, "horror_host")
	require.NoError(t, err)
	assert.Equal(t, "Horror Host", host.DisplayName)
	assert.Equal(t, []types.Context{types.ContextHorror, types.ContextThriller, types.ContextMystery}, host.Contexts)

	_, err = repo.Get(ctx, "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, chatErrors.ErrPersonaNotFound)
	assert.Equal(t, chatErrors.ErrorTypeStorage, chatErrors.GetType(err))
}

func TestUpsert(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Reseed(ctx, persona.DefaultCatalog()[:3]))

	// new personas are appended
	ghoul := types.PersonaRecord{
		ID:       "ghoul",
		Contexts: []types.Context{types.ContextHorror},
		Emotions: []types.Emotion{types.EmotionSurprised},
	}
	require.NoError(t, repo.Upsert(ctx, ghoul))

	got, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, "ghoul", got[3].ID)

	// existing personas keep their slot
	updated := got[1]
	updated.DisplayName = "Renamed"
	updated.Emotions = []types.Emotion{types.EmotionCalm}
	require.NoError(t, repo.Upsert(ctx, updated))

	got, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got[1].DisplayName)
	assert.Equal(t, []types.Emotion{types.EmotionCalm}, got[1].Emotions)

	err = repo.Upsert(ctx, types.PersonaRecord{ID: "empty"})
	assert.ErrorIs(t, err, chatErrors.ErrInvalidPersona)
}

func TestUpsert_IntoEmptyTable(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, persona.DefaultCatalog()[0]))
	got, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestTagRoundTrip(t *testing.T) {
	rec := types.PersonaRecord{
		ID:       "p",
		Contexts: []types.Context{types.ContextSciFi, types.ContextGeneral},
		Emotions: []types.Emotion{types.EmotionHappy},
	}
	row := FromRecord(rec, 7)
	assert.Equal(t, "sci-fi,general", row.Contexts)
	assert.Equal(t, 7, row.Position)
	assert.Equal(t, rec, row.ToRecord())

	assert.Equal(t, []string{"a", "b"}, splitTags(" a, ,b,"))
	assert.Nil(t, splitTags(""))
}

func TestList_StorageFailure(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT \* FROM "chatbot_personas"`).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.List(context.Background())
	require.Error(t, err)
	assert.Equal(t, chatErrors.ErrorTypeStorage, chatErrors.GetType(err))
	assert.Equal(t, "list_personas", chatErrors.GetOperation(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReseed_RollsBackOnFailure(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "chatbot_personas"`).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := repo.Reseed(context.Background(), persona.DefaultCatalog())
	require.Error(t, err)
	assert.Equal(t, "reseed_personas", chatErrors.GetOperation(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
