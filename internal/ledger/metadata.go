package ledger

import "github.com/google/uuid"

// MessageID represents a unique entry identifier.
type MessageID = string

// CausationID represents the ID of the entry that caused this entry.
type CausationID = string

// CorrelationID represents the ID correlating related entries.
type CorrelationID = string

// EntryMetadata carries tracking information for a ledger entry. It is
// assigned at append time and kept in memory only; the persisted document
// holds the bare transaction attributes.
type EntryMetadata struct {
	MessageID     MessageID
	CausationID   CausationID
	CorrelationID CorrelationID
}

// BuildEntryMetadata creates EntryMetadata from UUID values.
func BuildEntryMetadata(messageID uuid.UUID, causationID uuid.UUID, correlationID uuid.UUID) EntryMetadata {
	return EntryMetadata{
		MessageID:     messageID.String(),
		CausationID:   causationID.String(),
		CorrelationID: correlationID.String(),
	}
}

// NewEntryMetadata creates EntryMetadata for an entry with no causing entry:
// one fresh UUID serves as message, causation and correlation ID.
func NewEntryMetadata() EntryMetadata {
	uid := uuid.New()

	return BuildEntryMetadata(uid, uid, uid)
}
