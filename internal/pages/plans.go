package pages

import "github.com/dmatrios/ahorrape-front/internal/model"

// PlanInfo describes one subscription tier.
type PlanInfo struct {
	Plan     model.Plan
	Name     string
	Summary  string
	Current  bool
	Upcoming bool
}

// MsgCheckoutPending is shown in place of a payment flow.
const MsgCheckoutPending = "Online payment is coming soon. Plan activation will be automatic once it is available."

var planCatalog = []PlanInfo{
	{Plan: model.PlanFree, Summary: "Track income, expenses and categories."},
	{Plan: model.PlanPro, Summary: "More reports and history exports.", Upcoming: true},
	{Plan: model.PlanMaster, Summary: "Advanced tools, reports and priority support.", Upcoming: true},
}

// Plans is the static plan list. It makes no requests.
type Plans struct {
	user *model.User
}

// NewPlans creates the plan list for user, which may be nil.
func NewPlans(user *model.User) *Plans {
	return &Plans{user: user}
}

// List returns the plans, marking the user's current one.
func (p *Plans) List() []PlanInfo {
	current := model.PlanFree
	if p.user != nil && p.user.Plan != "" {
		current = p.user.Plan
	}
	out := make([]PlanInfo, 0, len(planCatalog))
	for _, info := range planCatalog {
		info.Name = info.Plan.Label()
		info.Current = info.Plan == current
		out = append(out, info)
	}
	return out
}

// ShowUpgradeNotice reports whether the upgrade notice applies.
func (p *Plans) ShowUpgradeNotice() bool {
	return p.user == nil || p.user.IsFree()
}
