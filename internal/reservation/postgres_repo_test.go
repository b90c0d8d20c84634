package reservation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildListQuery(t *testing.T) {
	query, args, err := buildListQuery("user-1", 20, 40)
	require.NoError(t, err)

	assert.Contains(t, query, `FROM "reservations"`)
	assert.Contains(t, query, `"user_id" = $1`)
	assert.Contains(t, query, `ORDER BY "staging_at" DESC, "id" DESC`)
	assert.Contains(t, query, "LIMIT")
	assert.Contains(t, query, "OFFSET")
	require.NotEmpty(t, args)
	assert.Equal(t, "user-1", args[0])
}

func TestBuildListQuery_RejectsNegativeWindow(t *testing.T) {
	_, _, err := buildListQuery("user-1", -1, 0)
	assert.Error(t, err)
}

func TestBuildCountQuery(t *testing.T) {
	query, args, err := buildCountQuery("user-1")
	require.NoError(t, err)

	assert.Contains(t, query, `COUNT(*)`)
	assert.Contains(t, query, `"user_id" = $1`)
	assert.Equal(t, []any{"user-1"}, args)
}
