package pages

import (
	"context"
	"testing"

	"github.com/dmatrios/ahorrape-front/internal/aggregate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_Filters(t *testing.T) {
	fake := newFakeAPI()
	fake.transactions = sampleTransactions()
	deps, _ := loggedIn(t, fake, testUser)

	h := NewHistory(deps)
	require.NoError(t, h.Load(context.Background()))

	assert.Equal(t, aggregate.Criteria{Kind: aggregate.KindAll, Period: aggregate.PeriodMonth, Reference: "2025-01"}, h.Criteria())
	assert.Equal(t, 3, h.Count())

	h.SetKind(aggregate.KindExpense)
	assert.Equal(t, 2, h.Count())

	h.SetPeriod(aggregate.PeriodDay)
	assert.Equal(t, "2025-01-15", h.Criteria().Reference)
	assert.Equal(t, 0, h.Count())
	h.SetReference("2025-01-04")
	assert.Equal(t, 1, h.Count())

	h.SetPeriod(aggregate.PeriodYear)
	h.SetKind(aggregate.KindAll)
	assert.Equal(t, "2025", h.Criteria().Reference)
	assert.Equal(t, 3, h.Count())
	h.SetReference("2024")
	assert.Equal(t, 1, h.Count())
	h.SetReference("")
	assert.Equal(t, 4, h.Count())

	h.SetPeriod(aggregate.PeriodDay)
	assert.Equal(t, "2025-01-04", h.Criteria().Reference, "each period keeps its own reference")
}

func TestHistory_MalformedReferenceMatchesNothing(t *testing.T) {
	fake := newFakeAPI()
	fake.transactions = sampleTransactions()
	deps, _ := loggedIn(t, fake, testUser)

	h := NewHistory(deps)
	require.NoError(t, h.Load(context.Background()))
	h.SetReference("January")
	assert.Empty(t, h.Visible())
}
