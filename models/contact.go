package models

import "github.com/shopspring/decimal"

// Contact is a customer or vendor of the organization.
type Contact struct {
	ContactId                     string          `json:"contact_id"`
	ContactName                   string          `json:"contact_name"`
	CompanyName                   string          `json:"company_name"`
	FirstName                     string          `json:"first_name"`
	LastName                      string          `json:"last_name"`
	Email                         string          `json:"email"`
	Phone                         string          `json:"phone"`
	Mobile                        string          `json:"mobile"`
	Website                       string          `json:"website"`
	ContactNumber                 string          `json:"contact_number"`
	ContactType                   ContactType     `json:"contact_type"`
	CustomerSubType               string          `json:"customer_sub_type"`
	Status                        string          `json:"status"`
	LanguageCode                  string          `json:"language_code"`
	CurrencyId                    string          `json:"currency_id"`
	CurrencyCode                  string          `json:"currency_code"`
	PaymentTerms                  int             `json:"payment_terms"`
	PaymentTermsLabel             string          `json:"payment_terms_label"`
	CreditLimit                   decimal.Decimal `json:"credit_limit"`
	OutstandingReceivableAmount   decimal.Decimal `json:"outstanding_receivable_amount"`
	OutstandingPayableAmount      decimal.Decimal `json:"outstanding_payable_amount"`
	UnusedCreditsReceivableAmount decimal.Decimal `json:"unused_credits_receivable_amount"`
	IsPortalEnabled               bool            `json:"is_portal_enabled"`
	IsTaxable                     bool            `json:"is_taxable"`
	TaxId                         string          `json:"tax_id,omitempty"`
	VatRegNo                      string          `json:"vat_reg_no,omitempty"`
	GstNo                         string          `json:"gst_no,omitempty"`
	GstTreatment                  GstTreatment    `json:"gst_treatment,omitempty"`
	PlaceOfContact                string          `json:"place_of_contact,omitempty"`
	Notes                         string          `json:"notes"`
	BillingAddress                Address         `json:"billing_address"`
	ShippingAddress               Address         `json:"shipping_address"`
	ContactPersons                []ContactPerson `json:"contact_persons"`
	CustomFields                  []CustomField   `json:"custom_fields"`
	CreatedTime                   string          `json:"created_time"`
	LastModifiedTime              string          `json:"last_modified_time"`

	// keys without a typed field, including inline cf_* values
	Extensions Extensions `json:"-"`
}

type ContactPerson struct {
	ContactPersonId  string `json:"contact_person_id,omitempty"`
	Salutation       string `json:"salutation,omitempty"`
	FirstName        string `json:"first_name,omitempty"`
	LastName         string `json:"last_name,omitempty"`
	Email            string `json:"email,omitempty"`
	Phone            string `json:"phone,omitempty"`
	Mobile           string `json:"mobile,omitempty"`
	Designation      string `json:"designation,omitempty"`
	Department       string `json:"department,omitempty"`
	IsPrimaryContact bool   `json:"is_primary_contact,omitempty"`
	EnablePortal     bool   `json:"enable_portal,omitempty"`
}

func (c *Contact) UnmarshalJSON(data []byte) error {
	type plain Contact
	p := plain(*c)
	ext, err := decodeWithExtensions(data, &p)
	if err != nil {
		return err
	}
	*c = Contact(p)
	c.Extensions = ext
	return nil
}

func (c Contact) MarshalJSON() ([]byte, error) {
	type plain Contact
	return encodeWithExtensions(plain(c), c.Extensions)
}

// CreateContact is the create view of a contact. Only ContactName is required.
type CreateContact struct {
	ContactName       string           `json:"contact_name" binding:"required"`
	CompanyName       string           `json:"company_name,omitempty"`
	FirstName         string           `json:"first_name,omitempty"`
	LastName          string           `json:"last_name,omitempty"`
	Email             string           `json:"email,omitempty" binding:"omitempty,email"`
	Phone             string           `json:"phone,omitempty"`
	Mobile            string           `json:"mobile,omitempty"`
	Website           string           `json:"website,omitempty"`
	ContactNumber     string           `json:"contact_number,omitempty"`
	ContactType       ContactType      `json:"contact_type,omitempty" binding:"omitempty,oneof=customer vendor"`
	CustomerSubType   string           `json:"customer_sub_type,omitempty"`
	LanguageCode      string           `json:"language_code,omitempty"`
	CurrencyId        string           `json:"currency_id,omitempty"`
	PaymentTerms      *int             `json:"payment_terms,omitempty"`
	PaymentTermsLabel string           `json:"payment_terms_label,omitempty"`
	CreditLimit       *decimal.Decimal `json:"credit_limit,omitempty"`
	IsPortalEnabled   *bool            `json:"is_portal_enabled,omitempty"`
	IsTaxable         *bool            `json:"is_taxable,omitempty"`
	TaxId             string           `json:"tax_id,omitempty"`
	VatRegNo          string           `json:"vat_reg_no,omitempty"`
	GstNo             string           `json:"gst_no,omitempty"`
	GstTreatment      GstTreatment     `json:"gst_treatment,omitempty"`
	PlaceOfContact    string           `json:"place_of_contact,omitempty"`
	Notes             string           `json:"notes,omitempty"`
	BillingAddress    *AddressSnapshot `json:"billing_address,omitempty"`
	ShippingAddress   *AddressSnapshot `json:"shipping_address,omitempty"`
	ContactPersons    []ContactPerson  `json:"contact_persons,omitempty"`
	CustomFields      []CustomField    `json:"custom_fields,omitempty"`
}

func (input CreateContact) Validate() error {
	return validateStruct(input)
}

// UpdateContact is the update view: the create view plus the mandatory ContactId.
type UpdateContact struct {
	ContactId string `json:"contact_id" binding:"required"`
	CreateContact
}

func (input UpdateContact) Validate() error {
	return validateStruct(input)
}

// ListContact is a row of the contact list endpoint.
type ListContact struct {
	ContactId                     string          `json:"contact_id"`
	ContactName                   string          `json:"contact_name"`
	CompanyName                   string          `json:"company_name"`
	FirstName                     string          `json:"first_name"`
	LastName                      string          `json:"last_name"`
	Email                         string          `json:"email"`
	Phone                         string          `json:"phone"`
	Mobile                        string          `json:"mobile"`
	ContactType                   ContactType     `json:"contact_type"`
	Status                        string          `json:"status"`
	CurrencyCode                  string          `json:"currency_code"`
	OutstandingReceivableAmount   decimal.Decimal `json:"outstanding_receivable_amount"`
	UnusedCreditsReceivableAmount decimal.Decimal `json:"unused_credits_receivable_amount"`
	CreatedTime                   string          `json:"created_time"`
	LastModifiedTime              string          `json:"last_modified_time"`

	Extensions Extensions `json:"-"`
}

func (c *ListContact) UnmarshalJSON(data []byte) error {
	type plain ListContact
	p := plain(*c)
	ext, err := decodeWithExtensions(data, &p)
	if err != nil {
		return err
	}
	*c = ListContact(p)
	c.Extensions = ext
	return nil
}

func (c ListContact) MarshalJSON() ([]byte, error) {
	type plain ListContact
	return encodeWithExtensions(plain(c), c.Extensions)
}
