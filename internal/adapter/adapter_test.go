package adapter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypes(t *testing.T) {
	assert.Equal(t, []string{"duckdb", "postgres"}, Types())
}

func TestOpen_UnknownType(t *testing.T) {
	_, err := Open(context.Background(), Profile{Type: "oracle"}, nil)

	var uerr *UnknownTypeError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "oracle", uerr.Type)
	assert.Contains(t, err.Error(), "postgres")
	assert.Contains(t, err.Error(), "duckdb")
}

func TestPostgresDSN(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		want    string
	}{
		{
			name:    "defaults",
			profile: Profile{Database: "app"},
			want:    "host=localhost port=5432 dbname=app sslmode=disable",
		},
		{
			name: "full profile",
			profile: Profile{
				Host:     "db.internal",
				Port:     5433,
				Database: "app",
				User:     "svc",
				Password: "secret",
				SSLMode:  "require",
			},
			want: "host=db.internal port=5433 dbname=app sslmode=require user=svc password=secret",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			driver, dsn := postgresDSN(tt.profile)
			assert.Equal(t, "pgx", driver)
			assert.Equal(t, tt.want, dsn)
		})
	}
}

func TestDuckDBDSN(t *testing.T) {
	driver, dsn := duckdbDSN(Profile{Type: "duckdb", Path: "local.duckdb"})
	assert.Equal(t, "duckdb", driver)
	assert.Equal(t, "local.duckdb", dsn)

	// Empty path means an in-memory database.
	_, dsn = duckdbDSN(Profile{Type: "duckdb"})
	assert.Equal(t, "", dsn)
}
