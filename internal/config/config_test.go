package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalConfig = `
[database]
host = "localhost"
user = "scheduler"
password = "secret"
dbname = "scheduling"
`

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(minimalConfig)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, 10*time.Minute, cfg.Booking.HoldTTL())
	assert.Equal(t, time.Hour, cfg.Booking.SweepGrace())
	assert.Equal(t, "*/5 * * * *", cfg.Booking.HoldSweepCron)
	assert.Equal(t, "booking.confirmed", cfg.Kafka.Topic)
	assert.Equal(t, time.Second, cfg.Outbox.PollInterval())
}

func TestParse_Validation(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"missing host", `[database]
dbname = "x"`},
		{"negative ttl", minimalConfig + `
[booking]
hold_ttl_minutes = -1`},
		{"negative sweep grace", minimalConfig + `
[booking]
hold_sweep_grace_minutes = -5`},
		{"rate limit without redis", minimalConfig + `
[rate_limit]
enabled = true`},
		{"outbox without brokers", minimalConfig + `
[outbox]
enabled = true`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.toml)
			assert.Error(t, err)
		})
	}
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("SCHEDULING_DB_PASSWORD", "from-env")
	t.Setenv("SCHEDULING_KAFKA_BROKERS", "k1:9092, k2:9092")

	path := filepath.Join(t.TempDir(), "config.toml")
	content := minimalConfig + `
[kafka]
brokers = ["${SCHEDULING_KAFKA_BROKERS}"]
`
	content = strings.Replace(content, `password = "secret"`, `password = "${SCHEDULING_DB_PASSWORD}"`, 1)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.NormalizedBrokers())
}

func TestDatabaseConfig_URL(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss", DBName: "scheduling", SSLMode: "disable"}

	assert.Equal(t, "postgres://u:p%40ss@db:5432/scheduling?sslmode=disable", d.URL())
	assert.Equal(t, "host=db port=5432 user=u password=p@ss dbname=scheduling sslmode=disable", d.DSN())
}
