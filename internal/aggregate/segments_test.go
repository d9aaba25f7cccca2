package aggregate

import (
	"testing"

	"github.com/dmatrios/ahorrape-front/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProportionalSegments(t *testing.T) {
	t.Run("single category spans the circle", func(t *testing.T) {
		txns := []model.Transaction{
			expense(1, "Food", "50", "2025-01-01"),
			expense(2, "Food", "30", "2025-01-01"),
			income(3, "Salary", "1000", "2025-01-01"),
		}

		got := ProportionalSegments(ExpenseByCategory(txns), DefaultPalette)
		require.Len(t, got, 1)
		assert.Equal(t, "Food", got[0].Category)
		assert.Equal(t, 0.0, got[0].StartAngle)
		assert.Equal(t, 360.0, got[0].EndAngle)
		assert.InDelta(t, 100.0, got[0].Percent, 1e-9)
	})

	t.Run("segments tile without gaps", func(t *testing.T) {
		totals := []CategoryTotal{
			{Category: "A", Total: dec("1")},
			{Category: "B", Total: dec("1")},
			{Category: "C", Total: dec("1")},
			{Category: "D", Total: dec("0.07")},
			{Category: "E", Total: dec("12.345")},
		}

		got := ProportionalSegments(totals, DefaultPalette)
		require.Len(t, got, len(totals))

		assert.Equal(t, 0.0, got[0].StartAngle)
		spans := 0.0
		for i := 1; i < len(got); i++ {
			assert.Equal(t, got[i-1].EndAngle, got[i].StartAngle)
		}
		for _, s := range got {
			assert.GreaterOrEqual(t, s.Span(), 0.0)
			spans += s.Span()
		}
		assert.Equal(t, FullCircle, got[len(got)-1].EndAngle)
		assert.InDelta(t, FullCircle, spans, 1e-6)
	})

	t.Run("spans are proportional", func(t *testing.T) {
		totals := []CategoryTotal{
			{Category: "A", Total: dec("25")},
			{Category: "B", Total: dec("75")},
		}

		got := ProportionalSegments(totals, nil)
		require.Len(t, got, 2)
		assert.InDelta(t, 90.0, got[0].EndAngle, 1e-9)
		assert.InDelta(t, 25.0, got[0].Percent, 1e-9)
		assert.Equal(t, DefaultPalette[0], got[0].Color)
	})

	t.Run("palette cycles", func(t *testing.T) {
		totals := []CategoryTotal{
			{Category: "A", Total: dec("1")},
			{Category: "B", Total: dec("1")},
			{Category: "C", Total: dec("1")},
		}

		got := ProportionalSegments(totals, []string{"red", "blue"})
		assert.Equal(t, []string{"red", "blue", "red"}, []string{got[0].Color, got[1].Color, got[2].Color})
	})

	t.Run("zero total yields nothing", func(t *testing.T) {
		assert.Empty(t, ProportionalSegments(nil, DefaultPalette))
		assert.Empty(t, ProportionalSegments([]CategoryTotal{{Category: "A", Total: dec("0")}}, DefaultPalette))
	})
}
