package store

// Ref identifies the durable slot a session commits into. TenantID may be
// empty; adapters normalize it to a default namespace.
type Ref struct {
	SessionID string
	TenantID  string
}

// Record is the authenticated subject reference committed by a session.
// It is resolved by the caller's RecordResolver once validation passes and
// is opaque to the adapters beyond encoding.
type Record struct {
	ID             string
	TenantID       string
	Identifier     string
	Role           string
	AccountVersion uint32
}
