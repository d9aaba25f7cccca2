package model

// Plan is the subscription tier of a user.
type Plan string

const (
	PlanFree   Plan = "FREE"
	PlanPro    Plan = "PRO"
	PlanMaster Plan = "MASTER"
)

// Label returns the display name of the plan.
func (p Plan) Label() string {
	switch p {
	case PlanPro:
		return "Plan Pro"
	case PlanMaster:
		return "Master del Ahorro"
	default:
		return "Plan Free"
	}
}

// Role is the authorization role of a user.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User is the public identity record returned by the backend.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Plan  Plan   `json:"plan,omitempty"`
	Role  Role   `json:"role,omitempty"`
	ID    int64  `json:"id"`
}

// IsFree reports whether the user is on the free tier. Records without a
// plan are treated as free.
func (u User) IsFree() bool {
	return u.Plan == "" || u.Plan == PlanFree
}
