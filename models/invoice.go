package models

import "github.com/shopspring/decimal"

// Invoice is a bill sent to a customer, created directly or from a sales order.
type Invoice struct {
	InvoiceId           string          `json:"invoice_id"`
	InvoiceNumber       string          `json:"invoice_number"`
	SalesOrderId        string          `json:"salesorder_id,omitempty"`
	SalesOrderNumber    string          `json:"salesorder_number,omitempty"`
	ReferenceNumber     string          `json:"reference_number"`
	Status              string          `json:"status"`
	Date                string          `json:"date"`
	DueDate             string          `json:"due_date"`
	PaymentTerms        int             `json:"payment_terms"`
	PaymentTermsLabel   string          `json:"payment_terms_label"`
	CustomerId          string          `json:"customer_id"`
	CustomerName        string          `json:"customer_name"`
	ContactPersons      []string        `json:"contact_persons"`
	CurrencyId          string          `json:"currency_id"`
	CurrencyCode        string          `json:"currency_code"`
	ExchangeRate        decimal.Decimal `json:"exchange_rate"`
	Discount            Discount        `json:"discount"`
	DiscountType        DiscountType    `json:"discount_type"`
	IsDiscountBeforeTax bool            `json:"is_discount_before_tax"`
	IsInclusiveTax      bool            `json:"is_inclusive_tax"`

	LineItems             []LineItem      `json:"line_items"`
	ShippingCharge        decimal.Decimal `json:"shipping_charge"`
	Adjustment            decimal.Decimal `json:"adjustment"`
	AdjustmentDescription string          `json:"adjustment_description"`
	SubTotal              decimal.Decimal `json:"sub_total"`
	TaxTotal              decimal.Decimal `json:"tax_total"`
	Total                 decimal.Decimal `json:"total"`
	Balance               decimal.Decimal `json:"balance"`
	PaymentMade           decimal.Decimal `json:"payment_made"`
	CreditsApplied        decimal.Decimal `json:"credits_applied"`
	Taxes                 []Tax           `json:"taxes"`

	BillingAddress    AddressSnapshot `json:"billing_address"`
	ShippingAddress   AddressSnapshot `json:"shipping_address"`
	BillingAddressId  *string         `json:"billing_address_id,omitempty"`
	ShippingAddressId *string         `json:"shipping_address_id,omitempty"`

	// India edition only
	GstNo         string       `json:"gst_no,omitempty"`
	GstTreatment  GstTreatment `json:"gst_treatment,omitempty"`
	PlaceOfSupply string       `json:"place_of_supply,omitempty"`

	Notes            string        `json:"notes"`
	Terms            string        `json:"terms"`
	TemplateId       string        `json:"template_id"`
	SalespersonName  string        `json:"salesperson_name"`
	InvoiceUrl       string        `json:"invoice_url"`
	CreatedTime      string        `json:"created_time"`
	LastModifiedTime string        `json:"last_modified_time"`
	Documents        []Document    `json:"documents"`
	CustomFields     []CustomField `json:"custom_fields"`

	Extensions Extensions `json:"-"`
}

// InvoiceShort is the projection of an invoice listed on its sales order.
type InvoiceShort struct {
	InvoiceId       string          `json:"invoice_id"`
	InvoiceNumber   string          `json:"invoice_number"`
	ReferenceNumber string          `json:"reference_number"`
	Status          string          `json:"status"`
	Date            string          `json:"date"`
	DueDate         string          `json:"due_date"`
	Total           decimal.Decimal `json:"total"`
	Balance         decimal.Decimal `json:"balance"`
}

func (i *Invoice) UnmarshalJSON(data []byte) error {
	type plain Invoice
	p := plain(*i)
	ext, err := decodeWithExtensions(data, &p)
	if err != nil {
		return err
	}
	*i = Invoice(p)
	i.Extensions = ext
	return nil
}

func (i Invoice) MarshalJSON() ([]byte, error) {
	type plain Invoice
	return encodeWithExtensions(plain(i), i.Extensions)
}

// Short returns the projection used on sales orders.
func (i Invoice) Short() InvoiceShort {
	return InvoiceShort{
		InvoiceId:       i.InvoiceId,
		InvoiceNumber:   i.InvoiceNumber,
		ReferenceNumber: i.ReferenceNumber,
		Status:          i.Status,
		Date:            i.Date,
		DueDate:         i.DueDate,
		Total:           i.Total,
		Balance:         i.Balance,
	}
}

// CreateInvoice is the create view of an invoice; CustomerId and LineItems are required.
type CreateInvoice struct {
	CustomerId string           `json:"customer_id" binding:"required"`
	LineItems  []CreateLineItem `json:"line_items" binding:"required,min=1,dive"`

	InvoiceNumber         string           `json:"invoice_number,omitempty"`
	ReferenceNumber       string           `json:"reference_number,omitempty"`
	ContactPersons        []string         `json:"contact_persons,omitempty"`
	Date                  string           `json:"date,omitempty"`
	DueDate               string           `json:"due_date,omitempty"`
	PaymentTerms          *int             `json:"payment_terms,omitempty"`
	PaymentTermsLabel     string           `json:"payment_terms_label,omitempty"`
	CurrencyId            string           `json:"currency_id,omitempty"`
	ExchangeRate          *decimal.Decimal `json:"exchange_rate,omitempty"`
	DiscountType          DiscountType     `json:"discount_type,omitempty" binding:"omitempty,oneof=entity_level item_level"`
	Discount              *Discount        `json:"discount,omitempty"`
	IsDiscountBeforeTax   *bool            `json:"is_discount_before_tax,omitempty"`
	IsInclusiveTax        *bool            `json:"is_inclusive_tax,omitempty"`
	ShippingCharge        *decimal.Decimal `json:"shipping_charge,omitempty"`
	Adjustment            *decimal.Decimal `json:"adjustment,omitempty"`
	AdjustmentDescription string           `json:"adjustment_description,omitempty"`
	SalespersonName       string           `json:"salesperson_name,omitempty"`
	Notes                 string           `json:"notes,omitempty"`
	Terms                 string           `json:"terms,omitempty"`
	TemplateId            string           `json:"template_id,omitempty"`
	GstNo                 string           `json:"gst_no,omitempty"`
	GstTreatment          GstTreatment     `json:"gst_treatment,omitempty"`
	PlaceOfSupply         string           `json:"place_of_supply,omitempty"`
	CustomFields          []CustomField    `json:"custom_fields,omitempty"`
	BillingAddressId      string           `json:"billing_address_id,omitempty"`
	ShippingAddressId     string           `json:"shipping_address_id,omitempty"`
}

func (input CreateInvoice) Validate() error {
	return validateStruct(input)
}

// ListInvoice is a row of the invoice list endpoint.
type ListInvoice struct {
	InvoiceId        string          `json:"invoice_id"`
	InvoiceNumber    string          `json:"invoice_number"`
	CustomerId       string          `json:"customer_id"`
	CustomerName     string          `json:"customer_name"`
	ReferenceNumber  string          `json:"reference_number"`
	Status           string          `json:"status"`
	Date             string          `json:"date"`
	DueDate          string          `json:"due_date"`
	CurrencyCode     string          `json:"currency_code"`
	Total            decimal.Decimal `json:"total"`
	Balance          decimal.Decimal `json:"balance"`
	CreatedTime      string          `json:"created_time"`
	LastModifiedTime string          `json:"last_modified_time"`

	Extensions Extensions `json:"-"`
}

func (i *ListInvoice) UnmarshalJSON(data []byte) error {
	type plain ListInvoice
	p := plain(*i)
	ext, err := decodeWithExtensions(data, &p)
	if err != nil {
		return err
	}
	*i = ListInvoice(p)
	i.Extensions = ext
	return nil
}

func (i ListInvoice) MarshalJSON() ([]byte, error) {
	type plain ListInvoice
	return encodeWithExtensions(plain(i), i.Extensions)
}
