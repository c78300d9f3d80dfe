package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/bilal-attab/tuition_manager/ledger"
	"github.com/bilal-attab/tuition_manager/models"
	"github.com/bilal-attab/tuition_manager/repository"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/collate"
)

// ReportService builds the financial report: per-group collected totals with
// debtor breakdowns, rendered as JSON stats, plain text, or a spreadsheet.
type ReportService struct {
	repo     *repository.Repository
	collator *collate.Collator
}

// NewReportService builds a report service sorting names for the given
// BCP 47 locale tag.
func NewReportService(repo *repository.Repository, locale string) *ReportService {
	return &ReportService{
		repo:     repo,
		collator: ledger.NewCollator(locale),
	}
}

// Report is the full financial picture at one point in time.
type Report struct {
	GeneratedAt    time.Time     `json:"generatedAt"`
	TotalCollected float64       `json:"totalCollected"`
	Groups         []GroupReport `json:"groups"`
}

// GroupReport is one group's slice of the report.
type GroupReport struct {
	Stats   ledger.GroupStats `json:"stats"`
	Debtors []DebtorLine      `json:"debtors"`
}

// DebtorLine is one student at or past the debt threshold. Amount uses the
// report's full-price formula, not the status screen's unit-price one.
type DebtorLine struct {
	Student models.Student `json:"student"`
	Amount  float64        `json:"amount"`
}

// Build assembles the report from the current collections.
func (rs *ReportService) Build() Report {
	groups := rs.repo.Groups()
	students := rs.repo.Students()
	stats := ledger.BuildGroupStats(groups, students)

	report := Report{
		GeneratedAt:    time.Now(),
		TotalCollected: ledger.TotalCollected(stats),
	}
	for i, g := range groups {
		gr := GroupReport{Stats: stats[i]}
		for _, s := range ledger.Debtors(g, students, rs.collator) {
			gr.Debtors = append(gr.Debtors, DebtorLine{
				Student: s,
				Amount:  ledger.AmountOwed(s, g),
			})
		}
		report.Groups = append(report.Groups, gr)
	}
	return report
}

// RenderText renders the report as the plain-text document offered for
// download. Collected totals keep the whole-dinar formatting of the
// original report screen; debts keep two decimals.
func (rs *ReportService) RenderText() string {
	report := rs.Build()

	var b strings.Builder
	fmt.Fprintf(&b, "التقرير المالي %s\n", report.GeneratedAt.Format("2006-01-02"))
	fmt.Fprintf(&b, "المبلغ الإجمالي المحصل: %.0f دج\n", report.TotalCollected)

	for _, gr := range report.Groups {
		g := gr.Stats.Group
		fmt.Fprintf(&b, "\n== %s ==\n", g.Name)
		fmt.Fprintf(&b, "المبلغ المحصل: %.0f دج\n", gr.Stats.Collected)
		fmt.Fprintf(&b, "%d طالب • حصص الأستاذ: %d\n", gr.Stats.StudentCount, g.TeacherSessions)
		if len(gr.Debtors) == 0 {
			b.WriteString("لا يوجد مدينون\n")
			continue
		}
		b.WriteString("المدينون:\n")
		for i, d := range gr.Debtors {
			fmt.Fprintf(&b, "  %d. %s (%d حصة): %.2f دج\n", i+1, d.Student.Name, d.Student.SessionsOwed, d.Amount)
		}
	}

	if len(report.Groups) == 0 {
		b.WriteString("\nلا توجد بيانات مالية بعد\n")
	}
	return b.String()
}

const (
	summarySheet = "الملخص"
	debtorsSheet = "المدينون"
)

// RenderXLSX renders the report as a two-sheet workbook: per-group summary
// rows and the flat debtor list.
func (rs *ReportService) RenderXLSX() ([]byte, error) {
	report := rs.Build()

	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	f.SetSheetName(f.GetSheetName(0), summarySheet)
	if _, err := f.NewSheet(debtorsSheet); err != nil {
		return nil, fmt.Errorf("failed to create debtors sheet: %w", err)
	}

	summaryHeader := []interface{}{"المجموعة", "عدد الطلاب", "حصص الأستاذ", "المبلغ المحصل"}
	if err := f.SetSheetRow(summarySheet, "A1", &summaryHeader); err != nil {
		return nil, fmt.Errorf("failed to write summary header: %w", err)
	}
	for i, gr := range report.Groups {
		cell := fmt.Sprintf("A%d", i+2)
		row := []interface{}{
			gr.Stats.Group.Name,
			gr.Stats.StudentCount,
			gr.Stats.Group.TeacherSessions,
			gr.Stats.Collected,
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write summary row: %w", err)
		}
	}
	totalCell := fmt.Sprintf("A%d", len(report.Groups)+3)
	totalRow := []interface{}{"المجموع", "", "", report.TotalCollected}
	if err := f.SetSheetRow(summarySheet, totalCell, &totalRow); err != nil {
		return nil, fmt.Errorf("failed to write summary total: %w", err)
	}

	debtorHeader := []interface{}{"المجموعة", "الطالب", "الهاتف", "الحصص المستحقة", "المبلغ"}
	if err := f.SetSheetRow(debtorsSheet, "A1", &debtorHeader); err != nil {
		return nil, fmt.Errorf("failed to write debtors header: %w", err)
	}
	rowIdx := 2
	for _, gr := range report.Groups {
		for _, d := range gr.Debtors {
			cell := fmt.Sprintf("A%d", rowIdx)
			row := []interface{}{
				gr.Stats.Group.Name,
				d.Student.Name,
				d.Student.Phone,
				d.Student.SessionsOwed,
				d.Amount,
			}
			if err := f.SetSheetRow(debtorsSheet, cell, &row); err != nil {
				return nil, fmt.Errorf("failed to write debtor row: %w", err)
			}
			rowIdx++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
