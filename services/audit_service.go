package services

import (
	"context"
	"lifetag/models"
	"lifetag/repositories"
	"lifetag/utils"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// auditWriteTimeout bounds the detached insert so a slow database cannot
// leak goroutines.
const auditWriteTimeout = 5 * time.Second

type AuditService struct {
	auditRepo *repositories.AuditLogRepository
}

func NewAuditService(auditRepo *repositories.AuditLogRepository) *AuditService {
	return &AuditService{
		auditRepo: auditRepo,
	}
}

// RecordAccess logs a profile access in the background. A failed audit write
// must never block or fail the access it is logging.
func (as *AuditService) RecordAccess(profileID primitive.ObjectID, accessorID, eventType, accessVia, clientIP, userAgent string) {
	entry := &models.AuditLogEntry{
		ProfileID: profileID,
		EventType: eventType,
		AccessVia: accessVia,
		IPAddress: clientIP,
		UserAgent: userAgent,
	}

	if accessorID != "" {
		if oid, err := primitive.ObjectIDFromHex(accessorID); err == nil {
			entry.AccessorID = oid
		}
	}

	go as.write(entry)
}

// RecordQREvent logs a generate or decode event against a profile
func (as *AuditService) RecordQREvent(profileID primitive.ObjectID, accessorID, eventType string, details map[string]interface{}) {
	entry := &models.AuditLogEntry{
		ProfileID: profileID,
		EventType: eventType,
		AccessVia: models.AccessViaQRScan,
		Details:   details,
	}

	if accessorID != "" {
		if oid, err := primitive.ObjectIDFromHex(accessorID); err == nil {
			entry.AccessorID = oid
		}
	}

	go as.write(entry)
}

// RecordRoleChange logs an admin role change
func (as *AuditService) RecordRoleChange(profileID primitive.ObjectID, adminID, oldRole, newRole string) {
	entry := &models.AuditLogEntry{
		ProfileID: profileID,
		EventType: models.AuditEventRoleChange,
		AccessVia: models.AccessViaAdmin,
		Details: map[string]interface{}{
			"oldRole": oldRole,
			"newRole": newRole,
		},
	}

	if oid, err := primitive.ObjectIDFromHex(adminID); err == nil {
		entry.AccessorID = oid
	}

	go as.write(entry)
}

func (as *AuditService) write(entry *models.AuditLogEntry) {
	ctx, cancel := context.WithTimeout(context.Background(), auditWriteTimeout)
	defer cancel()

	if err := as.auditRepo.Create(ctx, entry); err != nil {
		logrus.Warnf("Failed to write audit log entry: %v", err)
	}
}

// GetProfileAuditLog returns the access history for a profile. Only the
// owner or an admin may read it; the controller enforces that.
func (as *AuditService) GetProfileAuditLog(ctx context.Context, profileID string, page, pageSize int) (*models.AuditLogResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	entries, total, err := as.auditRepo.GetProfileAuditLog(ctx, profileID, page, pageSize)
	if err != nil {
		return nil, err
	}

	return &models.AuditLogResponse{
		Entries:    entries,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: utils.CalculateTotalPages(total, pageSize),
	}, nil
}

// GetRecentEvents returns recent audit entries across profiles (admin only)
func (as *AuditService) GetRecentEvents(ctx context.Context, eventType string, limit int) ([]models.AuditLogEntry, error) {
	if limit < 1 || limit > 500 {
		limit = 100
	}
	return as.auditRepo.GetRecentByEvent(ctx, eventType, limit)
}

// CleanupOldLogs removes audit entries older than the retention window
func (as *AuditService) CleanupOldLogs(ctx context.Context, retention time.Duration) (int64, error) {
	deleted, err := as.auditRepo.CleanupOldLogs(ctx, retention)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		logrus.Infof("🧹 Cleaned up %d old audit log entries", deleted)
	}
	return deleted, nil
}
