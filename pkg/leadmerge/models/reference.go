package models

// Account is one row of the CRM account export.
type Account struct {
	// BillingPostalCode is the account's billing ZIP code.
	BillingPostalCode string `json:"billing_postal_code"`
	// OwnerID is the identifier of the owning user.
	OwnerID string `json:"owner_id"`
}

// User is one row of the CRM user export.
type User struct {
	// ID is the user identifier referenced by Account.OwnerID.
	ID string `json:"id"`
	// Name is the user's display name.
	Name string `json:"name"`
}
