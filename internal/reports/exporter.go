package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// Exporter renders a report type in the requested format, returning the
// file bytes, a download filename and the content type.
type Exporter interface {
	Export(reportType, format string, data ReportData) ([]byte, string, string, error)
}

type exporter struct{}

func NewExporter() Exporter {
	return &exporter{}
}

func (e *exporter) Export(reportType, format string, data ReportData) ([]byte, string, string, error) {
	timestamp := time.Now().Format("20060102_150405")

	switch reportType {
	case ReportTypeContacts:
		return e.exportContacts(format, timestamp, data.Contacts)
	case ReportTypeSubscribers:
		return e.exportSubscribers(format, timestamp, data.Subscribers)
	case ReportTypeRegistrations:
		return e.exportRegistrations(format, timestamp, data.Registrations)
	default:
		return nil, "", "", fmt.Errorf("unsupported report type: %s", reportType)
	}
}

//// ============================
/// CONTACT EXPORTS
//// ============================

func (e *exporter) exportContacts(format, timestamp string, rows []ContactReportRow) ([]byte, string, string, error) {
	switch format {
	case FormatCSV:
		data, err := e.exportContactsCSV(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("contacts_report_%s.csv", timestamp), "text/csv", nil

	case FormatExcel:
		data, err := e.exportContactsExcel(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("contacts_report_%s.xlsx", timestamp), "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil

	case FormatPDF:
		data, err := e.exportContactsPDF(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("contacts_report_%s.pdf", timestamp), "application/pdf", nil

	default:
		return nil, "", "", fmt.Errorf("unsupported format for contacts: %s", format)
	}
}

func (e *exporter) exportContactsCSV(rows []ContactReportRow) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Name", "Email", "Subject", "Status", "Priority", "Created At"}
	if err := writer.Write(headers); err != nil {
		return nil, err
	}

	for _, r := range rows {
		record := []string{
			strconv.FormatUint(uint64(r.ID), 10),
			r.Name,
			r.Email,
			r.Subject,
			r.Status,
			r.Priority,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *exporter) exportContactsExcel(rows []ContactReportRow) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Contacts"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "Name", "Email", "Subject", "Status", "Priority", "Created At"}
	for i, h := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheet, cell, h)
	}

	for i, r := range rows {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.ID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.Name)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.Email)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.Subject)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.Status)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), r.Priority)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), r.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *exporter) exportContactsPDF(rows []ContactReportRow) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Contact Submissions Report")
	pdf.Ln(20)

	pdf.SetFont("Arial", "B", 10)
	widths := []float64{15, 45, 55, 70, 25, 25, 40}
	headers := []string{"ID", "Name", "Email", "Subject", "Status", "Priority", "Created At"}

	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, r := range rows {
		subject := r.Subject
		if len(subject) > 40 {
			subject = subject[:37] + "..."
		}

		pdf.CellFormat(widths[0], 6, strconv.FormatUint(uint64(r.ID), 10), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 6, r.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, r.Email, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 6, subject, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[4], 6, r.Status, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[5], 6, r.Priority, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[6], 6, r.CreatedAt.Format("2006-01-02 15:04:05"), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

//// ============================
/// SUBSCRIBER EXPORTS
//// ============================

func (e *exporter) exportSubscribers(format, timestamp string, rows []SubscriberReportRow) ([]byte, string, string, error) {
	switch format {
	case FormatCSV:
		data, err := e.exportSubscribersCSV(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("subscribers_report_%s.csv", timestamp), "text/csv", nil

	case FormatExcel:
		data, err := e.exportSubscribersExcel(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("subscribers_report_%s.xlsx", timestamp), "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil

	case FormatPDF:
		data, err := e.exportSubscribersPDF(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("subscribers_report_%s.pdf", timestamp), "application/pdf", nil

	default:
		return nil, "", "", fmt.Errorf("unsupported format for subscribers: %s", format)
	}
}

func (e *exporter) exportSubscribersCSV(rows []SubscriberReportRow) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Email", "First Name", "Last Name", "Status", "Source", "Subscribed At"}
	if err := writer.Write(headers); err != nil {
		return nil, err
	}

	for _, r := range rows {
		record := []string{
			strconv.FormatUint(uint64(r.ID), 10),
			r.Email,
			r.FirstName,
			r.LastName,
			r.Status,
			r.Source,
			r.SubscribedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *exporter) exportSubscribersExcel(rows []SubscriberReportRow) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Subscribers"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "Email", "First Name", "Last Name", "Status", "Source", "Subscribed At"}
	for i, h := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheet, cell, h)
	}

	for i, r := range rows {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.ID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.Email)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.FirstName)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.LastName)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.Status)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), r.Source)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), r.SubscribedAt.Format("2006-01-02 15:04:05"))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *exporter) exportSubscribersPDF(rows []SubscriberReportRow) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Newsletter Subscribers Report")
	pdf.Ln(20)

	pdf.SetFont("Arial", "B", 10)
	widths := []float64{15, 70, 40, 40, 30, 35, 40}
	headers := []string{"ID", "Email", "First Name", "Last Name", "Status", "Source", "Subscribed At"}

	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, r := range rows {
		pdf.CellFormat(widths[0], 6, strconv.FormatUint(uint64(r.ID), 10), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 6, r.Email, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, r.FirstName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 6, r.LastName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[4], 6, r.Status, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[5], 6, r.Source, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[6], 6, r.SubscribedAt.Format("2006-01-02 15:04:05"), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

//// ============================
/// REGISTRATION EXPORTS
//// ============================

func (e *exporter) exportRegistrations(format, timestamp string, rows []RegistrationReportRow) ([]byte, string, string, error) {
	switch format {
	case FormatCSV:
		data, err := e.exportRegistrationsCSV(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("registrations_report_%s.csv", timestamp), "text/csv", nil

	case FormatExcel:
		data, err := e.exportRegistrationsExcel(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("registrations_report_%s.xlsx", timestamp), "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil

	case FormatPDF:
		data, err := e.exportRegistrationsPDF(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("registrations_report_%s.pdf", timestamp), "application/pdf", nil

	default:
		return nil, "", "", fmt.Errorf("unsupported format for registrations: %s", format)
	}
}

func (e *exporter) exportRegistrationsCSV(rows []RegistrationReportRow) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Event", "Full Name", "Email", "Company", "Status", "Registered At"}
	if err := writer.Write(headers); err != nil {
		return nil, err
	}

	for _, r := range rows {
		record := []string{
			strconv.FormatUint(uint64(r.ID), 10),
			r.EventTitle,
			r.FullName,
			r.Email,
			r.Company,
			r.Status,
			r.RegisteredAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *exporter) exportRegistrationsExcel(rows []RegistrationReportRow) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Registrations"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "Event", "Full Name", "Email", "Company", "Status", "Registered At"}
	for i, h := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheet, cell, h)
	}

	for i, r := range rows {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.ID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.EventTitle)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.FullName)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.Email)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.Company)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), r.Status)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), r.RegisteredAt.Format("2006-01-02 15:04:05"))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *exporter) exportRegistrationsPDF(rows []RegistrationReportRow) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Event Registrations Report")
	pdf.Ln(20)

	pdf.SetFont("Arial", "B", 10)
	widths := []float64{15, 60, 45, 55, 40, 25, 40}
	headers := []string{"ID", "Event", "Full Name", "Email", "Company", "Status", "Registered At"}

	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, r := range rows {
		title := r.EventTitle
		if len(title) > 35 {
			title = title[:32] + "..."
		}

		pdf.CellFormat(widths[0], 6, strconv.FormatUint(uint64(r.ID), 10), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 6, title, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, r.FullName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 6, r.Email, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[4], 6, r.Company, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[5], 6, r.Status, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[6], 6, r.RegisteredAt.Format("2006-01-02 15:04:05"), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
