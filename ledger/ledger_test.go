package ledger

import (
	"testing"

	"github.com/bilal-attab/tuition_manager/models"
	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 { return &v }

func TestUnitPrice(t *testing.T) {
	g := models.Group{ID: "g1", MonthlyPrice: 2000, SessionsPerMonth: 4}

	assert.Equal(t, 500.0, UnitPrice(models.Student{GroupID: "g1"}, g))
	assert.Equal(t, 300.0, UnitPrice(models.Student{GroupID: "g1", IndividualPrice: floatPtr(1200)}, g))
}

func TestStudentStatus(t *testing.T) {
	g := models.Group{ID: "g1", MonthlyPrice: 2000, SessionsPerMonth: 4}

	tests := []struct {
		name    string
		student models.Student
		want    Status
	}{
		{
			name:    "exactly one cycle owed is already debt",
			student: models.Student{GroupID: "g1", SessionsOwed: 4},
			want:    Status{Label: LabelDebt, Value: "2000.00", IsDebt: true},
		},
		{
			name:    "more than one cycle owed",
			student: models.Student{GroupID: "g1", SessionsOwed: 5},
			want:    Status{Label: LabelDebt, Value: "2500.00", IsDebt: true},
		},
		{
			name:    "one session short of the threshold is neutral",
			student: models.Student{GroupID: "g1", SessionsOwed: 3},
			want:    Status{Label: LabelNeutral, Value: "3"},
		},
		{
			name:    "zero owed is neutral",
			student: models.Student{GroupID: "g1", SessionsOwed: 0},
			want:    Status{Label: LabelNeutral, Value: "0"},
		},
		{
			name:    "negative owed is prepaid credit",
			student: models.Student{GroupID: "g1", SessionsOwed: -2},
			want:    Status{Label: LabelCredit, Value: "1000.00"},
		},
		{
			name:    "individual price drives the monetary value",
			student: models.Student{GroupID: "g1", SessionsOwed: 4, IndividualPrice: floatPtr(1200)},
			want:    Status{Label: LabelDebt, Value: "1200.00", IsDebt: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StudentStatus(tt.student, g))
		})
	}
}

func TestIsDebtorThreshold(t *testing.T) {
	g := models.Group{ID: "g1", MonthlyPrice: 2000, SessionsPerMonth: 4}

	assert.False(t, IsDebtor(models.Student{GroupID: "g1", SessionsOwed: 3}, g))
	assert.True(t, IsDebtor(models.Student{GroupID: "g1", SessionsOwed: 4}, g))
	assert.True(t, IsDebtor(models.Student{GroupID: "g1", SessionsOwed: 9}, g))
	assert.False(t, IsDebtor(models.Student{GroupID: "g1", SessionsOwed: -1}, g))
}

// The report figure and the status figure use different formulas on purpose;
// they diverge whenever sessionsOwed is not a multiple of sessionsPerMonth.
func TestAmountOwedDivergesFromStatusFormula(t *testing.T) {
	g := models.Group{ID: "g1", MonthlyPrice: 2000, SessionsPerMonth: 4}
	s := models.Student{GroupID: "g1", SessionsOwed: 5}

	assert.Equal(t, 10000.0, AmountOwed(s, g))
	assert.Equal(t, "2500.00", StudentStatus(s, g).Value)

	// On an exact cycle boundary the unit-price figure is the monthly price.
	s.SessionsOwed = 4
	assert.Equal(t, 8000.0, AmountOwed(s, g))
	assert.Equal(t, "2000.00", StudentStatus(s, g).Value)
}

func TestGroupCollected(t *testing.T) {
	students := []models.Student{
		{ID: "s1", GroupID: "g1", Collected: 2000},
		{ID: "s2", GroupID: "g1", Collected: 1500},
		{ID: "s3", GroupID: "g1"}, // pre-revision record, counts as zero
		{ID: "s4", GroupID: "g2", Collected: 999},
	}

	assert.Equal(t, 3500.0, GroupCollected("g1", students))
	assert.Equal(t, 999.0, GroupCollected("g2", students))
	assert.Equal(t, 0.0, GroupCollected("missing", students))
}

func TestBuildGroupStatsAndTotal(t *testing.T) {
	groups := []models.Group{
		{ID: "g1", Name: "A", MonthlyPrice: 2000, SessionsPerMonth: 4},
		{ID: "g2", Name: "B", MonthlyPrice: 3000, SessionsPerMonth: 8},
	}
	students := []models.Student{
		{ID: "s1", GroupID: "g1", Collected: 2000},
		{ID: "s2", GroupID: "g1", Collected: 1000},
		{ID: "s3", GroupID: "g2", Collected: 3000},
	}

	stats := BuildGroupStats(groups, students)
	assert.Len(t, stats, 2)
	assert.Equal(t, 3000.0, stats[0].Collected)
	assert.Equal(t, 2, stats[0].StudentCount)
	assert.Equal(t, 3000.0, stats[1].Collected)
	assert.Equal(t, 1, stats[1].StudentCount)
	assert.Equal(t, 6000.0, TotalCollected(stats))
}

func TestOutstanding(t *testing.T) {
	g := models.Group{ID: "g1", MonthlyPrice: 2000, SessionsPerMonth: 4}
	students := []models.Student{
		{ID: "s1", GroupID: "g1", SessionsOwed: 2},  // 1000 debt
		{ID: "s2", GroupID: "g1", SessionsOwed: -2}, // 1000 credit
		{ID: "s3", GroupID: "g1", SessionsOwed: 0},
		{ID: "s4", GroupID: "other", SessionsOwed: 10},
	}

	debt, credit := Outstanding(g, students)
	assert.Equal(t, 1000.0, debt)
	assert.Equal(t, 1000.0, credit)
}

func TestDebtorsSortedByLocale(t *testing.T) {
	g := models.Group{ID: "g1", MonthlyPrice: 2000, SessionsPerMonth: 4}
	students := []models.Student{
		{ID: "s1", Name: "خالد", GroupID: "g1", SessionsOwed: 4},
		{ID: "s2", Name: "أحمد", GroupID: "g1", SessionsOwed: 6},
		{ID: "s3", Name: "بشير", GroupID: "g1", SessionsOwed: 5},
		{ID: "s4", Name: "ياسين", GroupID: "g1", SessionsOwed: 3},
		{ID: "s5", Name: "أمين", GroupID: "other", SessionsOwed: 9},
	}

	debtors := Debtors(g, students, NewCollator("ar"))

	names := make([]string, len(debtors))
	for i, d := range debtors {
		names[i] = d.Name
	}
	assert.Equal(t, []string{"أحمد", "بشير", "خالد"}, names)
}

func TestNewCollatorFallsBackToArabic(t *testing.T) {
	assert.NotNil(t, NewCollator("not a tag"))
	assert.NotNil(t, NewCollator(""))
}
