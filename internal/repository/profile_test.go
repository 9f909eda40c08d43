package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppendOnce_KeepsExistingOrder(t *testing.T) {
	expr := appendOnce("following")

	assert.Equal(t,
		"CASE WHEN $2 = ANY(following) THEN following ELSE array_append(following, $2) END",
		expr)
	assert.NotContains(t, expr, "array_remove")
}
