package migrations

import (
	"io/fs"
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFS_MigrationsArePaired(t *testing.T) {
	src, err := iofs.New(FS, ".")
	require.NoError(t, err)
	defer src.Close()

	version, err := src.First()
	require.NoError(t, err)

	count := 0
	for {
		count++

		up, _, err := src.ReadUp(version)
		require.NoError(t, err, "version %d has no up migration", version)
		_ = up.Close()

		down, _, err := src.ReadDown(version)
		require.NoError(t, err, "version %d has no down migration", version)
		_ = down.Close()

		next, err := src.Next(version)
		if err != nil {
			break
		}
		version = next
	}

	assert.Equal(t, 3, count)
}

func TestFS_ActiveSlotUniqueIndex(t *testing.T) {
	data, err := fs.ReadFile(FS, "000003_appointments.up.sql")
	require.NoError(t, err)

	sql := string(data)
	assert.Contains(t, sql, "CREATE UNIQUE INDEX IF NOT EXISTS appointments_active_slot_uidx")
	assert.Contains(t, sql, "WHERE status <> 'cancelled'")
}
