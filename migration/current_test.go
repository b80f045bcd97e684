package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMigrations(t *testing.T) {
	t.Parallel()

	ids := make(map[string]struct{})
	for _, m := range Migrations() {
		assert.NotEmpty(t, m.ID)
		assert.NotNil(t, m.Migrate)
		assert.NotNil(t, m.Rollback)
		_, dup := ids[m.ID]
		assert.False(t, dup, "duplicated migration id %s", m.ID)
		ids[m.ID] = struct{}{}
	}
}

func TestAllTables(t *testing.T) {
	t.Parallel()

	assert.Len(t, AllTables(), 8)
}
