package models

// Student is an enrollee of exactly one Group.
//
// SessionsOwed is a signed counter: +1 per attended session, minus the
// group's SessionsPerMonth per payment. Negative values mean prepaid credit.
//
// IndividualPrice overrides the group's monthly price for billing when set;
// nil means "use the group's price".
//
// Collected is the running total of amounts this student has paid. It only
// ever grows; refunds are not modeled.
type Student struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Phone           string   `json:"phone,omitempty"`
	GroupID         string   `json:"groupId"`
	SessionsOwed    int      `json:"sessionsOwed"`
	IndividualPrice *float64 `json:"individualPrice"`
	Collected       float64  `json:"collected,omitempty"`
}
