package checkout

import "strings"

// FormData holds the fields entered during one checkout session.
// It has no persistent identity: it is discarded when the flow is
// closed, cancelled, or completed.
type FormData struct {
	Email    string
	FullName string
	Phone    string // optional

	Address string
	City    string
	State   string
	ZipCode string

	OrderNotes string // optional
}

// present reports whether a required field carries a non-empty value.
// Guards are exact-presence checks only; format validation (email
// shape, zip patterns) is delegated to the UI layer.
func present(v string) bool {
	return strings.TrimSpace(v) != ""
}

// ContactComplete reports whether the contact step's required fields are filled
func (f FormData) ContactComplete() bool {
	return present(f.Email) && present(f.FullName)
}

// ShippingComplete reports whether the shipping step's required fields are filled
func (f FormData) ShippingComplete() bool {
	return present(f.Address) && present(f.City) && present(f.State) && present(f.ZipCode)
}

// StepComplete reports whether the required fields for the given step
// are satisfied. Review and success have no field requirements.
func (f FormData) StepComplete(step Step) bool {
	switch step {
	case StepContact:
		return f.ContactComplete()
	case StepShipping:
		return f.ShippingComplete()
	}
	return true
}
