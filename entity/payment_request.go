package entity

// PaymentRequest holds the form fields posted to the gateway and the endpoint to post them to.
type PaymentRequest struct {
	ActionUrl        string `json:"action_url"`
	Data             string `json:"Data"`
	InterfaceVersion string `json:"InterfaceVersion"`
	Seal             string `json:"Seal"`
}

// FormFields returns the fields in the order of the hosted form.
func (r *PaymentRequest) FormFields() Fields {
	return Fields{
		{Key: "Data", Value: r.Data},
		{Key: "InterfaceVersion", Value: r.InterfaceVersion},
		{Key: "Seal", Value: r.Seal},
	}
}
