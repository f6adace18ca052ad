package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations_Paired(t *testing.T) {
	files, err := fs.Glob(FS, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	ups, downs := 0, 0
	for _, f := range files {
		switch {
		case strings.HasSuffix(f, ".up.sql"):
			ups++
			assert.Contains(t, files, strings.TrimSuffix(f, ".up.sql")+".down.sql")
		case strings.HasSuffix(f, ".down.sql"):
			downs++
		}
	}
	assert.Equal(t, ups, downs)
}

func TestInitSchema_HasOverlapBackstop(t *testing.T) {
	data, err := fs.ReadFile(FS, "000001_init_schema.up.sql")
	require.NoError(t, err)

	schema := string(data)
	assert.Contains(t, schema, "EXCLUDE USING gist")
	assert.Contains(t, schema, "WHERE (status <> 'CANCELLED')")
}
