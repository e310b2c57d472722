package models

// BillingDetails is the customer-entered shipping/contact record collected at
// checkout. Fields are mutated freely as the customer types; validation runs
// against the full record at submission time only (services.ValidateBilling).
type BillingDetails struct {
	FirstName      string `json:"first_name" validate:"required"`
	LastName       string `json:"last_name" validate:"required"`
	CompanyName    string `json:"company_name,omitempty"`
	Country        string `json:"country"`
	StreetAddress  string `json:"street_address" validate:"required"`
	TownCity       string `json:"town_city" validate:"required"`
	Province       string `json:"province"`
	ZipCode        string `json:"zip_code" validate:"required"`
	Phone          string `json:"phone" validate:"required,phonechars"`
	Email          string `json:"email" validate:"required,simpleemail"`
	AdditionalInfo string `json:"additional_info,omitempty"`
}
