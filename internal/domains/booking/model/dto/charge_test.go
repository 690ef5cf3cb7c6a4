package dto_test

import (
	"fleetdesk/internal/domains/booking/model/dto"
	"fleetdesk/shared/failure"
	"fleetdesk/shared/validator"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateChargeRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "waived charge", body: `{"description":"Cleaning","amount":0}`},
		{name: "priced charge", body: `{"description":"Cleaning","amount":"150.50","amount_paid":"20"}`},
		{name: "missing amount", body: `{"description":"Cleaning"}`, wantErr: "amount is required"},
		{name: "null amount", body: `{"description":"Cleaning","amount":null}`, wantErr: "amount is required"},
		{name: "negative amount", body: `{"description":"Cleaning","amount":-5}`, wantErr: "amount must be greater than or equal to 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req dto.CreateChargeRequest

			err := validator.Validate(strings.NewReader(tt.body), &req)

			if tt.wantErr == "" {
				require.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
