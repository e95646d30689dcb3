package reports

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/sandeshm/portfolio-backend/internal/auditlog"
	"github.com/sandeshm/portfolio-backend/internal/contact"
	"github.com/sandeshm/portfolio-backend/internal/event"
	"github.com/sandeshm/portfolio-backend/internal/subscription"
)

type Service struct {
	DB       *gorm.DB
	Exporter Exporter
	AuditSvc auditlog.Service
}

func NewService(db *gorm.DB, auditSvc auditlog.Service) *Service {
	return &Service{DB: db, Exporter: NewExporter(), AuditSvc: auditSvc}
}

// ===========================
// 📊 Generate loads the rows for the requested report and hands them to
// the exporter. Exports are audited: they move subscriber PII off-system.
func (s *Service) Generate(reportType, format, ip string) ([]byte, string, string, error) {
	var data ReportData
	var err error

	switch reportType {
	case ReportTypeContacts:
		data.Contacts, err = s.loadContacts()
	case ReportTypeSubscribers:
		data.Subscribers, err = s.loadSubscribers()
	case ReportTypeRegistrations:
		data.Registrations, err = s.loadRegistrations()
	default:
		return nil, "", "", fmt.Errorf("unsupported report type: %s", reportType)
	}
	if err != nil {
		return nil, "", "", err
	}

	fileBytes, filename, contentType, err := s.Exporter.Export(reportType, format, data)
	if err != nil {
		return nil, "", "", err
	}

	s.AuditSvc.LogAction(context.Background(), "REPORT_EXPORTED", map[string]interface{}{
		"report_type": reportType,
		"format":      format,
	}, ip, "success")
	return fileBytes, filename, contentType, nil
}

func (s *Service) loadContacts() ([]ContactReportRow, error) {
	var contacts []contact.Contact
	if err := s.DB.Order("created_at DESC").Find(&contacts).Error; err != nil {
		return nil, err
	}

	rows := make([]ContactReportRow, 0, len(contacts))
	for _, c := range contacts {
		rows = append(rows, ContactReportRow{
			ID:        c.ID,
			Name:      c.Name,
			Email:     c.Email,
			Subject:   c.Subject,
			Status:    c.Status,
			Priority:  c.Priority,
			CreatedAt: c.CreatedAt,
		})
	}
	return rows, nil
}

func (s *Service) loadSubscribers() ([]SubscriberReportRow, error) {
	var subs []subscription.Subscription
	if err := s.DB.Order("created_at DESC").Find(&subs).Error; err != nil {
		return nil, err
	}

	rows := make([]SubscriberReportRow, 0, len(subs))
	for _, sub := range subs {
		rows = append(rows, SubscriberReportRow{
			ID:           sub.ID,
			Email:        sub.Email,
			FirstName:    sub.FirstName,
			LastName:     sub.LastName,
			Status:       sub.Status,
			Source:       sub.Source,
			SubscribedAt: sub.CreatedAt,
		})
	}
	return rows, nil
}

func (s *Service) loadRegistrations() ([]RegistrationReportRow, error) {
	var regs []event.Registration
	if err := s.DB.Order("registered_at DESC").Find(&regs).Error; err != nil {
		return nil, err
	}

	// Resolve event titles in one pass; registrations may outlive a
	// deleted event, in which case the title is left blank.
	titles := map[uint]string{}
	var events []event.Event
	if err := s.DB.Select("id", "title").Find(&events).Error; err != nil {
		return nil, err
	}
	for _, e := range events {
		titles[e.ID] = e.Title
	}

	rows := make([]RegistrationReportRow, 0, len(regs))
	for _, r := range regs {
		rows = append(rows, RegistrationReportRow{
			ID:           r.ID,
			EventTitle:   titles[r.EventID],
			FullName:     r.FullName,
			Email:        r.Email,
			Company:      r.Company,
			Status:       r.Status,
			RegisteredAt: r.RegisteredAt,
		})
	}
	return rows, nil
}
