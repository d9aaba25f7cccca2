package pages

import (
	"testing"

	"github.com/dmatrios/ahorrape-front/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestPlans(t *testing.T) {
	free := NewPlans(&testUser)
	list := free.List()
	assert.Len(t, list, 3)
	assert.True(t, list[0].Current)
	assert.Equal(t, "Plan Free", list[0].Name)
	assert.Equal(t, "Master del Ahorro", list[2].Name)
	assert.True(t, free.ShowUpgradeNotice())

	master := testUser
	master.Plan = model.PlanMaster
	paid := NewPlans(&master)
	assert.False(t, paid.ShowUpgradeNotice())
	assert.True(t, paid.List()[2].Current)
	assert.False(t, paid.List()[0].Current)
}
