package leave

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// GenerateRequestPDF renders a leave application as a PDF document.
func (s *Service) GenerateRequestPDF(ctx context.Context, requestID string) ([]byte, error) {
	request, err := s.Store.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	policy, _ := PolicyFor(request.KindCode)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Leave Application")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", request.EmployeeName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Leave type: %s (%s)", policy.Name, request.KindCode))
	pdf.Ln(7)
	if request.IsHalfDay {
		pdf.Cell(0, 8, fmt.Sprintf("Half day: %s, %s", request.StartDate.Format("2006-01-02"), request.Session))
	} else {
		pdf.Cell(0, 8, fmt.Sprintf("Period: %s to %s", request.StartDate.Format("2006-01-02"), request.EndDate.Format("2006-01-02")))
	}
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Days: %.1f", request.NumberOfDays))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Reason: %s", request.Reason))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", request.Status))
	pdf.Ln(7)
	if request.ApprovedStartDate != nil && request.ApprovedEndDate != nil {
		pdf.Cell(0, 8, fmt.Sprintf("Approved period: %s to %s",
			request.ApprovedStartDate.Format("2006-01-02"), request.ApprovedEndDate.Format("2006-01-02")))
		pdf.Ln(7)
		if request.ModificationReason != "" {
			pdf.Cell(0, 8, fmt.Sprintf("Modification reason: %s", request.ModificationReason))
			pdf.Ln(7)
		}
	}
	if request.Remarks != "" {
		pdf.Cell(0, 8, fmt.Sprintf("Remarks: %s", request.Remarks))
		pdf.Ln(7)
	}

	if len(request.AlternateSchedule) > 0 {
		pdf.Ln(5)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.Cell(0, 8, "Alternate Schedule")
		pdf.Ln(9)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(30, 7, "Date", "1", 0, "", false, 0, "")
		pdf.CellFormat(20, 7, "Period", "1", 0, "", false, 0, "")
		pdf.CellFormat(70, 7, "Substitute", "1", 0, "", false, 0, "")
		pdf.CellFormat(60, 7, "Class", "1", 1, "", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		for _, day := range request.AlternateSchedule {
			for _, period := range day.Periods {
				pdf.CellFormat(30, 7, day.Date.Format("2006-01-02"), "1", 0, "", false, 0, "")
				pdf.CellFormat(20, 7, fmt.Sprintf("%d", period.PeriodNumber), "1", 0, "", false, 0, "")
				pdf.CellFormat(70, 7, period.SubstituteName, "1", 0, "", false, 0, "")
				pdf.CellFormat(60, 7, period.AssignedClass, "1", 1, "", false, 0, "")
			}
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
