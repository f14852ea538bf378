package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMigrations(t *testing.T) {
	list, err := LoadMigrations()
	require.NoError(t, err)
	require.NotEmpty(t, list)
	assert.Equal(t, 1, list[0].Version)
	assert.Equal(t, "init", list[0].Name)
	assert.Contains(t, list[0].SQL, "CREATE TABLE IF NOT EXISTS pos_sequences")
	for i := 1; i < len(list); i++ {
		assert.Greater(t, list[i].Version, list[i-1].Version)
	}
}

func TestNullIfEmpty(t *testing.T) {
	assert.Nil(t, nullIfEmpty(""))
	v := nullIfEmpty("abc")
	require.NotNil(t, v)
	assert.Equal(t, "abc", *v)
}
