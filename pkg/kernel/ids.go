package kernel

import "strings"

// Email is a lowercase-normalized email address used as the login identity.
type Email string

// NewEmail lowercases raw. It performs no shape validation.
func NewEmail(raw string) Email { return Email(strings.ToLower(raw)) }
func (e Email) String() string  { return string(e) }
func (e Email) IsEmpty() bool   { return string(e) == "" }

// AccountID identifies a supplier account.
type AccountID string

func NewAccountID(id string) AccountID { return AccountID(id) }
func (a AccountID) String() string     { return string(a) }
func (a AccountID) IsEmpty() bool      { return string(a) == "" }

// Role is the authorization role bound into a session.
type Role string

const RoleSupplier Role = "supplier"

func (r Role) String() string { return string(r) }
