package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "sichrplace/pkg/domain-errors"
)

// TestParseUUID_Invariants validates the parsing invariant:
// "IDs must be valid, non-empty, non-nil UUIDs"
func TestParseUUID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseTenantID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseTenantID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseTenantID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		validUUID := uuid.New()
		parsed, err := ParseTenantID(validUUID.String())
		require.NoError(t, err)
		assert.Equal(t, TenantID(validUUID), parsed)
	})
}

// TestParseID_SecurityInvariants validates trust boundary parsing rules.
func TestParseID_SecurityInvariants(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"SQL injection attempt", "'; DROP TABLE screening_requests;--", true},
		{"Path traversal", "../../../etc/passwd", true},
		{"Null byte injection", "550e8400\x00-e29b-41d4-a716-446655440000", true},
		{"Oversized input", strings.Repeat("a", 1000), true},
		{"Empty string", "", true},
		{"Nil UUID", uuid.Nil.String(), true},
		{"Whitespace only", "   ", true},
		{"Uppercase valid UUID", "550E8400-E29B-41D4-A716-446655440000", false},
		{"Valid UUID lowercase", "550e8400-e29b-41d4-a716-446655440000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScreeningID(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

// TestAllIDTypes_ConsistentBehavior ensures all ID types parse identically.
func TestAllIDTypes_ConsistentBehavior(t *testing.T) {
	validUUID := uuid.New().String()
	invalidInputs := []string{"", "invalid", uuid.Nil.String()}

	t.Run("all accept valid UUID", func(t *testing.T) {
		_, errTenant := ParseTenantID(validUUID)
		_, errApartment := ParseApartmentID(validUUID)
		_, errScreening := ParseScreeningID(validUUID)

		require.NoError(t, errTenant)
		require.NoError(t, errApartment)
		require.NoError(t, errScreening)
	})

	for _, input := range invalidInputs {
		t.Run("all reject: "+input, func(t *testing.T) {
			_, errTenant := ParseTenantID(input)
			_, errApartment := ParseApartmentID(input)
			_, errScreening := ParseScreeningID(input)

			require.Error(t, errTenant)
			require.Error(t, errApartment)
			require.Error(t, errScreening)
		})
	}
}

// TestJSONRoundTrip verifies typed IDs marshal as canonical UUID strings.
func TestJSONRoundTrip(t *testing.T) {
	original := ScreeningID(uuid.New())

	payload, err := json.Marshal(original)
	require.NoError(t, err)
	assert.Equal(t, `"`+original.String()+`"`, string(payload))

	var decoded ScreeningID
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, original, decoded)
}

func TestUnmarshalRejectsNilUUID(t *testing.T) {
	var decoded TenantID
	err := json.Unmarshal([]byte(`"`+uuid.Nil.String()+`"`), &decoded)
	require.Error(t, err)
}

func TestIsNil(t *testing.T) {
	var zero ApartmentID
	assert.True(t, zero.IsNil())
	assert.False(t, ApartmentID(uuid.New()).IsNil())
}
