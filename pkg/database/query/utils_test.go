package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginateQuery(t *testing.T) {
	base := "SELECT * FROM table WHERE (state = $1)"
	opts := []interface{}{uint(123)}

	query, args := PaginateQuery(base, opts, EmptyCursor, 0, Ascending)
	assert.Equal(t, base+" ORDER BY id ASC", query)
	assert.Len(t, args, 1)

	query, args = PaginateQuery(base, opts, ToCursor(45), 10, Ascending)
	assert.Equal(t, base+" AND id > $2 ORDER BY id ASC LIMIT $3", query)
	assert.Len(t, args, 3)
	assert.EqualValues(t, 45, args[1])
	assert.EqualValues(t, 10, args[2])

	query, args = PaginateQuery(base, opts, ToCursor(45), 10, Descending)
	assert.Equal(t, base+" AND id < $2 ORDER BY id DESC LIMIT $3", query)
	assert.Len(t, args, 3)
}
