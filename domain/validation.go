package domain

import "github.com/samber/lo"

type Action string

const (
	ActionEnter Action = "enter"
	ActionExit  Action = "exit"
)

var knownActions = []Action{ActionEnter, ActionExit}

func (a Action) IsKnown() bool {
	return lo.Contains(knownActions, a)
}

// StatusInside is the recorded status of a vehicle currently parked.
const StatusInside = "inside"

type Flow string

const (
	FlowEntry Flow = "entry"
	FlowExit  Flow = "exit"
)

// ValidationResult is the normalized answer of the validation endpoint.
type ValidationResult struct {
	DocID        string
	Action       Action
	Status       string
	FullName     string
	Email        string
	Phone        string
	PlateNumber  string
	VehicleModel string
	Message      string
}

// Flow picks the actuation branch. The recorded status wins over the action:
// a vehicle already inside can only leave, any other status enters.
// Without a status the action decides, so a bare "exit" still leaves
// instead of defaulting to entry.
func (v ValidationResult) Flow() Flow {
	switch {
	case v.Status == StatusInside:
		return FlowExit
	case v.Status != "":
		return FlowEntry
	case v.Action == ActionExit:
		return FlowExit
	default:
		return FlowEntry
	}
}

// VehicleRecord is the body sent to the entry and exit endpoints.
type VehicleRecord struct {
	DocID        string `json:"docId" validate:"required"`
	FullName     string `json:"fullName"`
	Email        string `json:"email" validate:"omitempty,email"`
	Phone        string `json:"phone"`
	PlateNumber  string `json:"plateNumber"`
	VehicleModel string `json:"vehicleModel"`
}

func (v ValidationResult) Record() VehicleRecord {
	return VehicleRecord{
		DocID:        v.DocID,
		FullName:     v.FullName,
		Email:        v.Email,
		Phone:        v.Phone,
		PlateNumber:  v.PlateNumber,
		VehicleModel: v.VehicleModel,
	}
}
