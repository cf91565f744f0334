package database

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"testing"
	"testing/fstest"

	"socialfeed/internal/config"
	"socialfeed/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func sqliteConfig(t *testing.T) *config.Config {
	return &config.Config{
		Env:                      "test",
		DBDriver:                 DriverSQLite,
		DBSQLitePath:             filepath.Join(t.TempDir(), "test.db"),
		DBSchemaMode:             SchemaModeHybrid,
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           5,
		DBConnMaxLifetimeMinutes: 15,
	}
}

func TestConnect_SQLiteAppliesSchema(t *testing.T) {
	cfg := sqliteConfig(t)

	db, err := Connect(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close() })

	for _, model := range PersistentModels() {
		assert.True(t, db.Migrator().HasTable(model))
	}
	assert.Nil(t, GetReadDB(), "sqlite never uses a replica")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 10, sqlDB.Stats().MaxOpenConnections)
}

func TestConnectWithOptions_SkipsSchema(t *testing.T) {
	db, err := ConnectWithOptions(sqliteConfig(t), ConnectOptions{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close() })

	assert.False(t, db.Migrator().HasTable(&models.Post{}))
}

func TestPostgresDSN(t *testing.T) {
	cfg := &config.Config{DBHost: "db", DBPort: "5433", DBUser: "u", DBPassword: "p", DBName: "feed"}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=feed sslmode=disable", PostgresDSN(cfg))

	cfg.DatabaseURL = "postgres://u:p@db:5433/feed"
	assert.Equal(t, cfg.DatabaseURL, PostgresDSN(cfg))
}

func TestConnect_SQLiteEnforcesForeignKeys(t *testing.T) {
	db, err := Connect(sqliteConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close() })

	user := models.User{Username: "fk", Email: "fk@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	post := models.Post{AuthorID: user.ID, Content: "hello"}
	require.NoError(t, db.Omit("Author").Create(&post).Error)
	require.NoError(t, db.Create(&models.Comment{PostID: post.ID, AuthorID: user.ID, Content: "c"}).Error)

	require.NoError(t, db.Delete(&models.Post{}, post.ID).Error)

	var n int64
	require.NoError(t, db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&n).Error)
	assert.Zero(t, n, "comments cascade with their post")
}

func TestLikeUniqueIndexTranslatesToDuplicatedKey(t *testing.T) {
	db, err := Connect(sqliteConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close() })

	user := models.User{Username: "dup", Email: "dup@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	post := models.Post{AuthorID: user.ID, Content: "hello"}
	require.NoError(t, db.Omit("Author").Create(&post).Error)

	require.NoError(t, db.Omit("User").Create(&models.Like{PostID: post.ID, UserID: user.ID}).Error)
	err = db.Omit("User").Create(&models.Like{PostID: post.ID, UserID: user.ID}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestSchemaPolicy(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		runSQL  bool
		runAuto bool
		wantErr bool
	}{
		{"hybrid dev", config.Config{Env: "development", DBSchemaMode: "hybrid"}, true, true, false},
		{"hybrid prod", config.Config{Env: "production", DBSchemaMode: "hybrid"}, true, false, false},
		{"empty mode defaults to hybrid", config.Config{Env: "development"}, true, true, false},
		{"sql", config.Config{Env: "development", DBSchemaMode: "sql"}, true, false, false},
		{"auto dev", config.Config{Env: "development", DBSchemaMode: "auto"}, false, true, false},
		{"auto prod refused", config.Config{Env: "production", DBSchemaMode: "auto"}, false, false, true},
		{"sqlite always auto", config.Config{Env: "development", DBDriver: DriverSQLite, DBSchemaMode: "sql"}, false, true, false},
		{"unknown mode", config.Config{Env: "development", DBSchemaMode: "bogus"}, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			runSQL, runAuto, err := schemaPolicy(&cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.runSQL, runSQL)
			assert.Equal(t, tt.runAuto, runAuto)
		})
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	all := GetMigrations()
	require.NotEmpty(t, all)
	assert.Equal(t, 1, all[0].Version)
	assert.Equal(t, "000001_init_schema", all[0].String())
	assert.Contains(t, all[0].UpScript, "idx_likes_post_user")
	assert.NotEmpty(t, all[0].DownScript)

	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].Version, all[i].Version)
	}
	assert.NotNil(t, GetMigrationByVersion(2))
	assert.Nil(t, GetMigrationByVersion(999))
}

func TestLoadMigrations_RequiresDownScript(t *testing.T) {
	fsys := fstest.MapFS{
		"m/000001_a.up.sql":   {Data: []byte("SELECT 1;")},
		"m/000001_a.down.sql": {Data: []byte("SELECT 0;")},
		"m/000002_b.up.sql":   {Data: []byte("SELECT 2;")},
	}
	_, err := LoadMigrations(fsys, "m")
	assert.Error(t, err)

	delete(fsys, "m/000002_b.up.sql")
	fsys["m/README.md"] = &fstest.MapFile{Data: []byte("ignored")}
	loaded, err := LoadMigrations(fsys, "m")
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "a", loaded[0].Name)
}

func TestValidateAppliedVersions(t *testing.T) {
	registered := []Migration{{Version: 1}, {Version: 2}}
	assert.NoError(t, validateAppliedVersions(nil, registered))
	assert.NoError(t, validateAppliedVersions([]int{1, 2}, registered))

	err := validateAppliedVersions([]int{1, 7}, registered)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "000007")
}

func TestMigrationStore_GetAppliedMigrations(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	store := NewMigrationStore(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "version" FROM "migration_logs" ORDER BY version ASC`)).
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(1).AddRow(2))
	versions, err := store.GetAppliedMigrations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, versions)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "version" FROM "migration_logs"`)).
		WillReturnError(errors.New(`relation "migration_logs" does not exist`))
	versions, err = store.GetAppliedMigrations(context.Background())
	require.NoError(t, err)
	assert.Empty(t, versions)

	assert.NoError(t, mock.ExpectationsWereMet())
}
