package auditlog

import (
	"context"
	"encoding/json"
	"log"
)

type Service interface {
	LogAction(ctx context.Context, action string, details map[string]interface{}, ip, status string) error
	List(ctx context.Context, limit, offset int) ([]AuditLog, int64, error)
}

type service struct {
	repo *Repository
}

func NewService(repo *Repository) Service {
	return &service{repo: repo}
}

// LogAction persists one audit entry. Failures are logged, never propagated
// into the mutation that triggered them.
func (s *service) LogAction(ctx context.Context, action string, details map[string]interface{}, ip, status string) error {
	data, err := json.Marshal(details)
	if err != nil {
		data = []byte("{}")
	}

	entry := &AuditLog{
		Action:    action,
		Details:   data,
		IPAddress: ip,
		Status:    status,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		log.Printf("❌ Audit log error: %v", err)
		return err
	}
	return nil
}

func (s *service) List(ctx context.Context, limit, offset int) ([]AuditLog, int64, error) {
	return s.repo.List(ctx, limit, offset)
}
