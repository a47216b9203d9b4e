package models

// AddressSnapshot is an address as embedded in a transaction. It carries no id;
// see SalesOrder.BillingAddressId for the best-effort back reference.
type AddressSnapshot struct {
	Attention   string `json:"attention,omitempty"`
	Address     string `json:"address,omitempty"`
	Street2     string `json:"street2,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	StateCode   string `json:"state_code,omitempty"`
	Zip         string `json:"zip,omitempty"`
	Country     string `json:"country,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Fax         string `json:"fax,omitempty"`
}

// Address is an address stored on a contact.
type Address struct {
	AddressId string `json:"address_id,omitempty"`
	AddressSnapshot
}

func (a AddressSnapshot) IsZero() bool {
	return a == AddressSnapshot{}
}
