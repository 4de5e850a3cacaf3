package services

import (
	"encoding/json"

	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "posfinance/internal/errors"
	"posfinance/internal/logger"
	"posfinance/internal/models"
	"posfinance/internal/uuid"
)

const (
	defaultAuditLimit = 20
	maxAuditLimit     = 200
)

type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Log appends a row to the audit trail. A failed write is logged and
// swallowed so the mutation that triggered it still succeeds.
func (s *auditService) Log(actorID, action, resourceType, resourceID, ipAddress string, changes map[string]any) {
	log := logger.With("actor_id", actorID, "action", action, "resource_type", resourceType, "resource_id", resourceID)

	if !uuid.IsValid(actorID) || !uuid.IsValid(resourceID) {
		log.Warn("skipping audit entry with malformed ids")
		return
	}

	entry := &models.AuditLog{
		UserID:       actorID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
		Changes:      encodeChanges(log, changes),
	}
	if err := s.db.Create(entry).Error; err != nil {
		log.Errorw("failed to write audit entry", "error", err)
	}
}

// Recent returns the newest audit entries for one resource, or for every
// resource of the type when resourceID is empty.
func (s *auditService) Recent(resourceType, resourceID string, limit int) ([]models.AuditLog, error) {
	if resourceType == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "resource type is required")
	}
	if resourceID != "" && !uuid.IsValid(resourceID) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "resource id must be a UUID")
	}
	switch {
	case limit <= 0:
		limit = defaultAuditLimit
	case limit > maxAuditLimit:
		limit = maxAuditLimit
	}

	q := s.db.Where("resource_type = ?", resourceType)
	if resourceID != "" {
		q = q.Where("resource_id = ?", resourceID)
	}
	var entries []models.AuditLog
	if err := q.Order("created_at DESC, id DESC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return entries, nil
}

func encodeChanges(log *zap.SugaredLogger, changes map[string]any) string {
	if len(changes) == 0 {
		return ""
	}
	data, err := json.Marshal(changes)
	if err != nil {
		log.Errorw("failed to encode audit changes", "error", err)
		return "{}"
	}
	return string(data)
}
