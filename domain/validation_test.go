package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidationResult_Flow(t *testing.T) {
	tests := []struct {
		name   string
		result ValidationResult
		want   Flow
	}{
		{name: "inside leaves", result: ValidationResult{Status: StatusInside, Action: ActionEnter}, want: FlowExit},
		{name: "other status enters", result: ValidationResult{Status: "outside", Action: ActionExit}, want: FlowEntry},
		{name: "no status, exit action", result: ValidationResult{Action: ActionExit}, want: FlowExit},
		{name: "no status, enter action", result: ValidationResult{Action: ActionEnter}, want: FlowEntry},
		{name: "nothing known", result: ValidationResult{}, want: FlowEntry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			req.Equal(tt.want, tt.result.Flow())
		})
	}
}

func TestAction_IsKnown(t *testing.T) {
	req := require.New(t)
	req.True(ActionEnter.IsKnown())
	req.True(ActionExit.IsKnown())
	req.False(Action("").IsKnown())
	req.False(Action("ENTER").IsKnown())
}

func TestValidationResult_Record(t *testing.T) {
	req := require.New(t)
	result := ValidationResult{
		DocID:        "DOC-1",
		Action:       ActionEnter,
		Status:       "outside",
		FullName:     "Ada Lovelace",
		Email:        "ada@example.com",
		Phone:        "+33600000000",
		PlateNumber:  "AB-123-CD",
		VehicleModel: "Zoe",
		Message:      "ok",
	}

	req.Equal(VehicleRecord{
		DocID:        "DOC-1",
		FullName:     "Ada Lovelace",
		Email:        "ada@example.com",
		Phone:        "+33600000000",
		PlateNumber:  "AB-123-CD",
		VehicleModel: "Zoe",
	}, result.Record())
}
