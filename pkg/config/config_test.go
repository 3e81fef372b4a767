package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir()) // sin .env en el directorio de trabajo

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, StoragePostgres, cfg.Storage.Backend)
	assert.Equal(t, 3000, cfg.HTTP.Port)
	assert.Equal(t, int32(10), cfg.DB.MaxConns)
	assert.Equal(t, 5*time.Second, cfg.DB.StatementTimeout)
	assert.True(t, cfg.DB.AutoSchema)
}

func TestLoad_EnvTienePrioridad(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HTTP_PORT", "8088")
	t.Setenv("DB_STATEMENT_TIMEOUT", "250ms")
	t.Setenv("DB_TX_TIMEOUT", "3")
	t.Setenv("DB_AUTO_SCHEMA", "false")
	t.Setenv("STORAGE_BACKEND", "MEMORY")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8088, cfg.HTTP.Port)
	assert.Equal(t, 250*time.Millisecond, cfg.DB.StatementTimeout)
	assert.Equal(t, 3*time.Second, cfg.DB.TxTimeout, "un entero se interpreta en segundos")
	assert.False(t, cfg.DB.AutoSchema)
	assert.Equal(t, StorageMemory, cfg.Storage.Backend)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			HTTP:    HTTPConfig{Port: 3000},
			DB:      DBConfig{Host: "localhost", MaxConns: 4, MinConns: 1},
			Storage: StorageConfig{Backend: StoragePostgres},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "válida", mutate: func(c *Config) {}},
		{name: "puerto fuera de rango", mutate: func(c *Config) { c.HTTP.Port = 70000 }, wantErr: "HTTP_PORT"},
		{name: "pool vacío", mutate: func(c *Config) { c.DB.MaxConns = 0 }, wantErr: "DB_MAX_CONNS"},
		{name: "min mayor que max", mutate: func(c *Config) { c.DB.MinConns = 9 }, wantErr: "DB_MIN_CONNS"},
		{name: "sin host", mutate: func(c *Config) { c.DB.Host = "" }, wantErr: "DB_HOST"},
		{name: "backend desconocido", mutate: func(c *Config) { c.Storage.Backend = "sqlite" }, wantErr: "no soportado"},
		{name: "memory ignora la BD", mutate: func(c *Config) {
			c.Storage.Backend = StorageMemory
			c.DB = DBConfig{}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDBConfig_DSN_EscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "apskaita", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/apskaita?sslmode=disable", c.DSN())
	c.DatabaseURL = "postgres://other"
	assert.Equal(t, "postgres://other", c.ConnectionString())
}
