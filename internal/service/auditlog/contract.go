//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=auditlog_test
package auditlog

import (
	"context"

	"marketplace/internal/entities"
)

type Repository interface {
	Create(ctx context.Context, action entities.AuditAction) (int64, error)
}
