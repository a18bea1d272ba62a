package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCounterpartIDs(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	t.Run("distinct ids pass through in order", func(t *testing.T) {
		ids := counterpartIDs([]Assignment{
			{CounterpartID: a, Stock: 10},
			{CounterpartID: b, Stock: 3},
			{CounterpartID: c, Stock: 1},
		})
		assert.Equal(t, []uuid.UUID{a, b, c}, ids)
	})

	t.Run("duplicates collapse to one membership entry", func(t *testing.T) {
		// The duplicate's later stock wins at upsert time; for the prune
		// step the id must appear once.
		ids := counterpartIDs([]Assignment{
			{CounterpartID: a, Stock: 10},
			{CounterpartID: b, Stock: 3},
			{CounterpartID: a, Stock: 7},
		})
		assert.Equal(t, []uuid.UUID{a, b}, ids)
	})

	t.Run("empty input yields empty set", func(t *testing.T) {
		assert.Empty(t, counterpartIDs(nil))
	})
}
