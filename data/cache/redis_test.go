package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type item struct {
	ID string `json:"id"`
}

func TestKey(t *testing.T) {
	assert.Equal(t, "example:abc", NewCache[item](nil, "example").Key("abc"))
	assert.Equal(t, "abc", NewCache[item](nil, "").Key("abc"))
}

func TestNilClient(t *testing.T) {
	c := NewCache[item](nil, "example")
	ctx := context.Background()

	_, err := c.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNilClient)
	assert.ErrorIs(t, c.Set(ctx, "a", &item{ID: "a"}), ErrNilClient)
	assert.ErrorIs(t, c.Delete(ctx, "a"), ErrNilClient)

	var _ ICache[item] = c
}
