package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatestMigrationVersion(t *testing.T) {
	version, err := LatestMigrationVersion()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, version, uint(1))
}

func TestParseMigrationVersion(t *testing.T) {
	cases := []struct {
		name string
		want uint
		ok   bool
	}{
		{"0001_reservation_core.up.sql", 1, true},
		{"0012_add_block_reason.up.sql", 12, true},
		{"notaversion.up.sql", 0, false},
		{"", 0, false},
	}

	for _, tc := range cases {
		got, ok := parseMigrationVersion(tc.name)
		assert.Equal(t, tc.ok, ok, tc.name)
		assert.Equal(t, tc.want, got, tc.name)
	}
}
