package user

import "time"

// ActionType classifies an entry of a user's recent actions.
type ActionType string

// ActionType constants.
const (
	ActionCreate     ActionType = "create"
	ActionUpdate     ActionType = "update"
	ActionSale       ActionType = "sale"
	ActionPermission ActionType = "permission"
	ActionReport     ActionType = "report"
)

// Login is one sign-in attempt.
type Login struct {
	At       time.Time
	IP       string
	Device   string
	Location string
	Success  bool
}

// Action is something the user did in the system.
type Action struct {
	At      time.Time
	Action  string
	Target  string
	Type    ActionType
	Details string
}

// Change is a modification made to the user's account, possibly by someone else.
type Change struct {
	At          time.Time
	Change      string
	Description string
	ChangedBy   string
}

// Activity is the history shown on a user's profile, newest entries first.
type Activity struct {
	Logins  []Login
	Actions []Action
	Changes []Change
}

// FailedLogins counts unsuccessful sign-in attempts.
func (a Activity) FailedLogins() int {
	n := 0
	for _, l := range a.Logins {
		if !l.Success {
			n++
		}
	}
	return n
}
