package otp

import (
	"context"

	"github.com/Abraxas-365/supplierportal/pkg/kernel"
)

// Store holds at most one outstanding Record per identity. Implementations
// shared between instances must make CompareAndDelete atomic.
type Store interface {
	// Put stores rec, replacing any record for identity.
	Put(ctx context.Context, identity kernel.Email, rec Record) error
	// Get returns the current record, or nil when none is outstanding.
	Get(ctx context.Context, identity kernel.Email) (*Record, error)
	// Delete removes the record; absent records are not an error.
	Delete(ctx context.Context, identity kernel.Email) error
	// CompareAndDelete removes the record only if it is still rec (same code
	// hash) and reports whether it did.
	CompareAndDelete(ctx context.Context, identity kernel.Email, rec Record) (bool, error)
}

// AccountDirectory resolves a login identity to its supplier account.
type AccountDirectory interface {
	ResolveAccount(ctx context.Context, identity kernel.Email) (kernel.AccountID, bool, error)
}

// CodeHasher hashes passcodes before they are stored.
type CodeHasher interface {
	Hash(code string) (string, error)
	Matches(hash, code string) bool
}

// NotificationService delivers a passcode to the identity's inbox.
type NotificationService interface {
	SendOTP(ctx context.Context, contact kernel.Email, code string) error
}
