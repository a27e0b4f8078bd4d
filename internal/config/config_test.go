package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/common"
	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/model"
)

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	BindEnv(v)
	return v
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFrom(newViper())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 15*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, model.LocaleDE, cfg.Solver.DefaultLocale)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "sqlite3", cfg.Database.Driver)
	assert.Equal(t, "history.db", filepath.Base(cfg.Database.Path))
	assert.Equal(t, cfg.Database.Path, cfg.Database.Target())
	assert.True(t, cfg.History.Enabled)
	assert.False(t, cfg.Server.TLS)
	assert.Equal(t, "certs", filepath.Base(cfg.Server.CertDir))
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DREISATZ_SERVER_ADDR", "127.0.0.1:9000")
	t.Setenv("DREISATZ_SOLVER_DEFAULT_LOCALE", "ZH")
	t.Setenv("DREISATZ_CACHE_TTL", "30s")
	t.Setenv("DREISATZ_DATABASE_DRIVER", "pgx")
	t.Setenv("DREISATZ_DATABASE_DSN", "postgres://localhost/dreisatz")

	cfg, err := LoadFrom(newViper())
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, model.LocaleZH, cfg.Solver.DefaultLocale)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.Equal(t, "postgres://localhost/dreisatz", cfg.Database.Target())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9999"
solver:
  hints_file: $HOME/hints.yaml
history:
  enabled: false
logging:
  level: debug
  format: json
`), 0o600))

	v := newViper()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := LoadFrom(v)
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, filepath.Join(os.Getenv("HOME"), "hints.yaml"), cfg.Solver.HintsFile)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		wantErr error
		mutate  func(v *viper.Viper)
		name    string
	}{
		{
			name:    "unknown driver",
			mutate:  func(v *viper.Viper) { v.Set("database.driver", "mysql") },
			wantErr: common.ErrInvalidConfig,
		},
		{
			name:    "pgx without dsn",
			mutate:  func(v *viper.Viper) { v.Set("database.driver", "pgx") },
			wantErr: common.ErrMissingConfig,
		},
		{
			name: "pgx without dsn but history off",
			mutate: func(v *viper.Viper) {
				v.Set("database.driver", "pgx")
				v.Set("history.enabled", false)
			},
		},
		{
			name:    "zero cache ttl",
			mutate:  func(v *viper.Viper) { v.Set("cache.ttl", "0s") },
			wantErr: common.ErrInvalidConfig,
		},
		{
			name:    "bad log level",
			mutate:  func(v *viper.Viper) { v.Set("logging.level", "loud") },
			wantErr: common.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newViper()
			tt.mutate(v)
			_, err := LoadFrom(v)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("DREISATZ_TEST_DIR", "/srv/data")

	assert.Equal(t, "", ExpandPath(""))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, filepath.Join(home, "x.db"), ExpandPath("~/x.db"))
	assert.Equal(t, "/srv/data/x.db", ExpandPath("$DREISATZ_TEST_DIR/x.db"))
	assert.Equal(t, "/abs/x.db", ExpandPath("/abs/x.db"))
}

func TestDirHonorsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, "/tmp/xdg/dreisatz", Dir())
}
