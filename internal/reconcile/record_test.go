package reconcile_test

import (
	"testing"

	"fleetdesk/internal/reconcile"

	"github.com/stretchr/testify/assert"
)

func TestParseRecordType(t *testing.T) {
	tests := []struct {
		raw      string
		expected reconcile.RecordType
		ok       bool
	}{
		{raw: "insurance", expected: reconcile.RecordInsurance, ok: true},
		{raw: "Registration", expected: reconcile.RecordRegistration, ok: true},
		{raw: "safety_sticker", expected: reconcile.RecordSafetySticker, ok: true},
		{raw: "safety-sticker", expected: reconcile.RecordSafetySticker, ok: true},
		{raw: "SafetySticker", expected: reconcile.RecordSafetySticker, ok: true},
		{raw: " SAFETY STICKER ", expected: reconcile.RecordSafetySticker, ok: true},
		{raw: "emissions", ok: false},
		{raw: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			recordType, ok := reconcile.ParseRecordType(tt.raw)

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, recordType)
		})
	}
}
