// Package ledger holds the pure balance computations of the tuition manager.
// Everything here is side-effect free and derives financial state from Group
// and Student records alone.
package ledger

import (
	"fmt"
	"sort"

	"github.com/bilal-attab/tuition_manager/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Status labels shown to the user, kept in the application's language.
const (
	LabelDebt    = "عليه دفع"
	LabelCredit  = "رصيد مسبق"
	LabelNeutral = "منتظم"
)

// Status is the three-way classification of a student's balance.
type Status struct {
	Label string `json:"label"`
	// Value is a monetary amount ("2000.00") in the debt and credit states
	// and the raw session count ("2") in the neutral state.
	Value  string `json:"value"`
	IsDebt bool   `json:"isDebt"`
}

// PriceInEffect is the monthly price that applies to the student: their
// individual override when set, the group's price otherwise.
func PriceInEffect(s models.Student, g models.Group) float64 {
	if s.IndividualPrice != nil {
		return *s.IndividualPrice
	}
	return g.MonthlyPrice
}

// UnitPrice is the price of a single session. Callers must only pass groups
// with a positive SessionsPerMonth; the creation edge guarantees that.
func UnitPrice(s models.Student, g models.Group) float64 {
	return PriceInEffect(s, g) / float64(g.SessionsPerMonth)
}

// IsDebtor reports whether the student has reached the debt threshold. A
// student owing exactly one full billing cycle is already in debt, not at
// the edge. This is the single home of the threshold comparison.
func IsDebtor(s models.Student, g models.Group) bool {
	return s.SessionsOwed >= g.SessionsPerMonth
}

// StudentStatus classifies the student's balance:
//
//	sessionsOwed >= sessionsPerMonth  -> debt, owed * unit price
//	sessionsOwed < 0                  -> credit, |owed| * unit price
//	otherwise                         -> neutral, raw session count
func StudentStatus(s models.Student, g models.Group) Status {
	unit := UnitPrice(s, g)

	if IsDebtor(s, g) {
		return Status{
			Label:  LabelDebt,
			Value:  fmt.Sprintf("%.2f", float64(s.SessionsOwed)*unit),
			IsDebt: true,
		}
	}

	if s.SessionsOwed < 0 {
		return Status{
			Label: LabelCredit,
			Value: fmt.Sprintf("%.2f", float64(-s.SessionsOwed)*unit),
		}
	}

	return Status{
		Label: LabelNeutral,
		Value: fmt.Sprintf("%d", s.SessionsOwed),
	}
}

// AmountOwed is the report figure for a debtor: the full monthly price in
// effect multiplied by the raw session count. This is intentionally not
// StudentStatus's unit-price formula; the two diverge whenever sessionsOwed
// is not a multiple of sessionsPerMonth, and each screen keeps the formula
// it shipped with. AmountOwed feeds the financial report only.
func AmountOwed(s models.Student, g models.Group) float64 {
	return PriceInEffect(s, g) * float64(s.SessionsOwed)
}

// GroupStats aggregates the collected money of one group.
type GroupStats struct {
	Group        models.Group `json:"group"`
	Collected    float64      `json:"collected"`
	StudentCount int          `json:"studentCount"`
}

// GroupCollected sums the collected totals of the group's students. Records
// imported from older revisions may lack the field; they count as zero.
func GroupCollected(groupID string, students []models.Student) float64 {
	var sum float64
	for _, s := range students {
		if s.GroupID == groupID {
			sum += s.Collected
		}
	}
	return sum
}

// BuildGroupStats computes per-group collected totals and student counts.
func BuildGroupStats(groups []models.Group, students []models.Student) []GroupStats {
	stats := make([]GroupStats, 0, len(groups))
	for _, g := range groups {
		count := 0
		for _, s := range students {
			if s.GroupID == g.ID {
				count++
			}
		}
		stats = append(stats, GroupStats{
			Group:        g,
			Collected:    GroupCollected(g.ID, students),
			StudentCount: count,
		})
	}
	return stats
}

// TotalCollected sums the per-group collected totals.
func TotalCollected(stats []GroupStats) float64 {
	var sum float64
	for _, gs := range stats {
		sum += gs.Collected
	}
	return sum
}

// Outstanding totals the group's open debt and prepaid credit using the
// per-session unit price, the figures the dashboard and group summaries show.
func Outstanding(g models.Group, students []models.Student) (debt, credit float64) {
	for _, s := range students {
		if s.GroupID != g.ID {
			continue
		}
		unit := UnitPrice(s, g)
		if s.SessionsOwed > 0 {
			debt += float64(s.SessionsOwed) * unit
		}
		if s.SessionsOwed < 0 {
			credit += float64(-s.SessionsOwed) * unit
		}
	}
	return debt, credit
}

// NewCollator builds a collator for the given BCP 47 tag, falling back to
// Arabic (the app's display language) when the tag does not parse.
func NewCollator(tag string) *collate.Collator {
	t, err := language.Parse(tag)
	if err != nil {
		t = language.Arabic
	}
	return collate.New(t)
}

// SortByName orders students alphabetically for display using locale-aware
// collation, never raw byte order.
func SortByName(students []models.Student, c *collate.Collator) []models.Student {
	sorted := make([]models.Student, len(students))
	copy(sorted, students)
	sort.SliceStable(sorted, func(i, j int) bool {
		return c.CompareString(sorted[i].Name, sorted[j].Name) < 0
	})
	return sorted
}

// Debtors returns the group's students at or past the debt threshold,
// sorted by name.
func Debtors(g models.Group, students []models.Student, c *collate.Collator) []models.Student {
	var debtors []models.Student
	for _, s := range students {
		if s.GroupID == g.ID && IsDebtor(s, g) {
			debtors = append(debtors, s)
		}
	}
	return SortByName(debtors, c)
}
