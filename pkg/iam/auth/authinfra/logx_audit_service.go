package authinfra

import (
	"context"
	"time"

	"github.com/Abraxas-365/supplierportal/pkg/kernel"
	"github.com/Abraxas-365/supplierportal/pkg/logx"
)

// LogxAuditService implements auth.AuditService using structured logx logging.
type LogxAuditService struct{}

func NewLogxAuditService() *LogxAuditService {
	return &LogxAuditService{}
}

func (s *LogxAuditService) LogPasscodeRequested(ctx context.Context, contact string, accountID kernel.AccountID, success bool, reason string, ip string) {
	entry := logx.WithContext(ctx).WithFields(logx.Fields{
		"audit_event": "passcode_requested",
		"contact":     contact,
		"account_id":  accountID,
		"success":     success,
		"ip":          ip,
		"timestamp":   time.Now(),
	})
	if reason != "" {
		entry = entry.WithField("reason", reason)
	}
	entry.Info("Audit: passcode requested")
}

func (s *LogxAuditService) LogOTPVerification(ctx context.Context, contact string, success bool, reason string, ip string) {
	entry := logx.WithContext(ctx).WithFields(logx.Fields{
		"audit_event": "otp_verification",
		"contact":     contact,
		"success":     success,
		"ip":          ip,
		"timestamp":   time.Now(),
	})
	if reason != "" {
		entry = entry.WithField("reason", reason)
	}
	entry.Info("Audit: OTP verification")
}

func (s *LogxAuditService) LogSessionRejected(ctx context.Context, reason string, ip string) {
	logx.WithContext(ctx).WithFields(logx.Fields{
		"audit_event": "session_rejected",
		"reason":      reason,
		"ip":          ip,
		"timestamp":   time.Now(),
	}).Warn("Audit: session rejected")
}
