package reports

import "time"

const (
	ReportTypeContacts      = "contacts"
	ReportTypeSubscribers   = "subscribers"
	ReportTypeRegistrations = "registrations"
)

const (
	FormatCSV   = "csv"
	FormatExcel = "excel"
	FormatPDF   = "pdf"
)

// Flattened row types decouple exports from the GORM models

type ContactReportRow struct {
	ID        uint
	Name      string
	Email     string
	Subject   string
	Status    string
	Priority  string
	CreatedAt time.Time
}

type SubscriberReportRow struct {
	ID           uint
	Email        string
	FirstName    string
	LastName     string
	Status       string
	Source       string
	SubscribedAt time.Time
}

type RegistrationReportRow struct {
	ID           uint
	EventTitle   string
	FullName     string
	Email        string
	Company      string
	Status       string
	RegisteredAt time.Time
}

// ReportData carries whichever row set the requested type needs
type ReportData struct {
	Contacts      []ContactReportRow
	Subscribers   []SubscriberReportRow
	Registrations []RegistrationReportRow
}
