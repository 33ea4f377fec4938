// Package domain defines typed identifiers shared across modules. Distinct ID
// types prevent cross-type assignment at compile time.
package domain

import (
	"github.com/google/uuid"

	dErrors "sichrplace/pkg/domain-errors"
)

// TenantID identifies a prospective tenant (the person being screened).
type TenantID uuid.UUID

// ApartmentID identifies the listing a screening targets.
type ApartmentID uuid.UUID

// ScreeningID identifies one screening request and its decision.
type ScreeningID uuid.UUID

func (id TenantID) String() string    { return uuid.UUID(id).String() }
func (id ApartmentID) String() string { return uuid.UUID(id).String() }
func (id ScreeningID) String() string { return uuid.UUID(id).String() }

func (id TenantID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id ApartmentID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id ScreeningID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// NewScreeningID returns a fresh random screening identifier.
func NewScreeningID() ScreeningID { return ScreeningID(uuid.New()) }

// Text marshaling keeps typed IDs as canonical UUID strings on the wire.

func (id TenantID) MarshalText() ([]byte, error)    { return []byte(id.String()), nil }
func (id ApartmentID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id ScreeningID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func (id *TenantID) UnmarshalText(text []byte) error {
	parsed, err := ParseTenantID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *ApartmentID) UnmarshalText(text []byte) error {
	parsed, err := ParseApartmentID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *ScreeningID) UnmarshalText(text []byte) error {
	parsed, err := ParseScreeningID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// parseUUID enforces the shared invariant: IDs must be valid, non-empty,
// non-nil UUIDs.
func parseUUID(raw, kind string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s is required", kind)
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s is not a valid UUID", kind)
	}
	if parsed == uuid.Nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s must not be the nil UUID", kind)
	}
	return parsed, nil
}

// ParseTenantID parses and validates a tenant ID from its string form.
func ParseTenantID(raw string) (TenantID, error) {
	parsed, err := parseUUID(raw, "tenant id")
	return TenantID(parsed), err
}

// ParseApartmentID parses and validates an apartment ID from its string form.
func ParseApartmentID(raw string) (ApartmentID, error) {
	parsed, err := parseUUID(raw, "apartment id")
	return ApartmentID(parsed), err
}

// ParseScreeningID parses and validates a screening ID from its string form.
func ParseScreeningID(raw string) (ScreeningID, error) {
	parsed, err := parseUUID(raw, "screening id")
	return ScreeningID(parsed), err
}
