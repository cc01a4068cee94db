package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditData is what the recipient's browser reports about the signing event.
// None of it is trusted: Timestamp and IP are kept for display only.
type AuditData struct {
	IP        string
	UserAgent string
	Timestamp *time.Time
}

// SigningAudit is the immutable proof-of-consent record stored once per envelope.
type SigningAudit struct {
	ID        uuid.UUID
	CompanyID string
	RequestID string
	// IP is resolved from the transport layer. ClientIP is the advisory value
	// the browser reported.
	IP              string
	ClientIP        string
	UserAgent       string
	ClientTimestamp *time.Time
	// ReceivedAt is the server's clock at receipt and the authoritative signing time.
	ReceivedAt     time.Time
	TemplateSHA256 string
	SealedSHA256   string
	CreatedAt      time.Time
}
