package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_DRIVER", "sqlite3")
	t.Setenv("CORS_ALLOWED_ORIGINS", " http://a.test , ,http://b.test")
	t.Setenv("JWT_EXPIRY_MINUTES", "not-a-number")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, 1440*time.Minute, cfg.JWT.Expiry)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 25, cfg.DB.MaxOpenConns)
	assert.Equal(t, 5*time.Minute, cfg.DB.ConnMaxLifetime)
}

func TestLoadConfig_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	assert.EqualError(t, err, "JWT_SECRET environment variable not set")
}

func TestLoadConfig_UnsupportedDriver(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_DRIVER", "postgres")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestDBConfig_DSN(t *testing.T) {
	mysqlCfg := DBConfig{Driver: DriverMySQL, User: "u", Password: "p", Host: "h", Port: "3306", Name: "n"}
	assert.Equal(t, "u:p@tcp(h:3306)/n?parseTime=true", mysqlCfg.DSN())

	sqliteCfg := DBConfig{Driver: DriverSQLite, SQLitePath: "/tmp/tasks.db"}
	assert.Equal(t, "/tmp/tasks.db?_foreign_keys=1", sqliteCfg.DSN())
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Nil(t, splitList(" , "))
	assert.Equal(t, []string{"10.0.0.1"}, splitList("10.0.0.1"))
}
