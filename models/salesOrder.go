package models

import "github.com/shopspring/decimal"

// SalesOrder is a financial document that confirms an impending sale: the exact
// quantity, price and delivery details of the products or services sold.
//
// A SalesOrder value is a snapshot of the remote record. Updates are full round
// trips that return a fresh snapshot.
type SalesOrder struct {
	SalesOrderId               string   `json:"salesorder_id"`
	SalesOrderNumber           string   `json:"salesorder_number"`
	IgnoreAutoNumberGeneration bool     `json:"ignore_auto_number_generation,omitempty"`
	Date                       string   `json:"date"`
	Status                     string   `json:"status"`
	ShipmentDate               string   `json:"shipment_date"`
	ReferenceNumber            string   `json:"reference_number"`
	CustomerId                 string   `json:"customer_id"`
	CustomerName               string   `json:"customer_name"`
	CompanyName                string   `json:"company_name"`
	ContactPersons             []string `json:"contact_persons"`
	EstimateId                 string   `json:"estimate_id,omitempty"`
	DeliveryMethod             string   `json:"delivery_method,omitempty"`
	DeliveryMethodId           string   `json:"delivery_method_id,omitempty"`

	CurrencyId     string          `json:"currency_id"`
	CurrencyCode   string          `json:"currency_code"`
	CurrencySymbol string          `json:"currency_symbol"`
	ExchangeRate   decimal.Decimal `json:"exchange_rate"`
	PricePrecision int             `json:"price_precision"`
	PricebookId    FlexString      `json:"pricebook_id,omitempty"`

	DiscountAmount      decimal.Decimal `json:"discount_amount"`
	Discount            Discount        `json:"discount"`
	IsDiscountBeforeTax bool            `json:"is_discount_before_tax"`
	DiscountType        DiscountType    `json:"discount_type"`
	IsInclusiveTax      bool            `json:"is_inclusive_tax"`

	LineItems                   []LineItem       `json:"line_items"`
	ShippingCharge              decimal.Decimal  `json:"shipping_charge"`
	ShippingCharges             *ShippingCharges `json:"shipping_charges,omitempty"`
	ShippingChargeTaxId         string           `json:"shipping_charge_tax_id"`
	ShippingChargeTaxPercentage BlankableDecimal `json:"shipping_charge_tax_percentage"`
	Adjustment                  decimal.Decimal  `json:"adjustment"`
	AdjustmentDescription       string           `json:"adjustment_description"`
	SubTotal                    decimal.Decimal  `json:"sub_total"`
	TaxTotal                    decimal.Decimal  `json:"tax_total"`
	Total                       decimal.Decimal  `json:"total"`
	Taxes                       []Tax            `json:"taxes"`

	Packages []SalesOrderPackage `json:"packages"`
	Invoices []InvoiceShort      `json:"invoices"`
	Payments []PaymentOverview   `json:"payments"`

	BillingAddress  AddressSnapshot `json:"billing_address"`
	ShippingAddress AddressSnapshot `json:"shipping_address"`
	// Best effort: the API sometimes omits these even when the snapshot is present,
	// and they are not guaranteed to match it.
	BillingAddressId  *string `json:"billing_address_id,omitempty"`
	ShippingAddressId *string `json:"shipping_address_id,omitempty"`

	Notes            string     `json:"notes"`
	Terms            string     `json:"terms"`
	TemplateId       string     `json:"template_id"`
	TemplateName     string     `json:"template_name"`
	TemplateType     string     `json:"template_type"`
	CreatedTime      string     `json:"created_time"`
	LastModifiedTime string     `json:"last_modified_time"`
	AttachmentName   string     `json:"attachment_name"`
	IsEmailed        bool       `json:"is_emailed"`
	CanSendInMail    bool       `json:"can_send_in_mail"`
	SalespersonId    string     `json:"salesperson_id"`
	SalespersonName  string     `json:"salesperson_name"`
	Documents        []Document `json:"documents"`

	// India edition only
	IsPreGst      *bool        `json:"is_pre_gst,omitempty"`
	GstNo         string       `json:"gst_no,omitempty"`
	GstTreatment  GstTreatment `json:"gst_treatment,omitempty"`
	PlaceOfSupply string       `json:"place_of_supply,omitempty"`

	CustomFields []CustomField `json:"custom_fields"`
	// keys without a typed field, including inline cf_* values
	Extensions Extensions `json:"-"`
}

// ShippingCharges groups the shipping charge with its tax.
type ShippingCharges struct {
	Description   string          `json:"description"`
	BcyRate       decimal.Decimal `json:"bcy_rate"`
	Rate          decimal.Decimal `json:"rate"` // gross
	TaxId         string          `json:"tax_id"`
	TaxName       string          `json:"tax_name"`
	TaxType       string          `json:"tax_type"`
	TaxPercentage decimal.Decimal `json:"tax_percentage"`
	TaxTotalFcy   decimal.Decimal `json:"tax_total_fcy"`
	ItemTotal     decimal.Decimal `json:"item_total"` // net
}

// SalesOrderPackage is a package created for the order, annotated with the
// number of items of this order it contains.
type SalesOrderPackage = PackageShortList

func (s *SalesOrder) UnmarshalJSON(data []byte) error {
	type plain SalesOrder
	p := plain(*s)
	ext, err := decodeWithExtensions(data, &p)
	if err != nil {
		return err
	}
	*s = SalesOrder(p)
	s.Extensions = ext
	return nil
}

func (s SalesOrder) MarshalJSON() ([]byte, error) {
	type plain SalesOrder
	return encodeWithExtensions(plain(s), s.Extensions)
}

// AppliedDiscounts reports which discount governs the order. With an entity
// level discount only order is set; with item level discounts only lines is set,
// holding one entry per line item in order. Never both.
func (s *SalesOrder) AppliedDiscounts() (order *Discount, lines []*Discount) {
	if s.DiscountType.AppliesToLineItems() {
		lines = make([]*Discount, len(s.LineItems))
		for i := range s.LineItems {
			lines[i] = &s.LineItems[i].Discount
		}
		return nil, lines
	}
	return &s.Discount, nil
}

// CreateSalesOrder is the create view. SalesOrderNumber, CustomerId and
// LineItems are required, everything else is optional.
type CreateSalesOrder struct {
	SalesOrderNumber string           `json:"salesorder_number" binding:"required"`
	CustomerId       string           `json:"customer_id" binding:"required"`
	LineItems        []CreateLineItem `json:"line_items" binding:"required,min=1,dive"`

	SalesOrderId          string           `json:"salesorder_id,omitempty"`
	AdjustmentDescription string           `json:"adjustment_description,omitempty"`
	Adjustment            *decimal.Decimal `json:"adjustment,omitempty"`
	ContactPersons        []string         `json:"contact_persons,omitempty"`
	Date                  string           `json:"date,omitempty"`
	DeliveryMethod        string           `json:"delivery_method,omitempty"`
	DiscountType          DiscountType     `json:"discount_type,omitempty" binding:"omitempty,oneof=entity_level item_level"`
	Discount              *Discount        `json:"discount,omitempty"`
	Documents             []Document       `json:"documents,omitempty"`
	ExchangeRate          *decimal.Decimal `json:"exchange_rate,omitempty"`
	GstNo                 string           `json:"gst_no,omitempty"`
	GstTreatment          GstTreatment     `json:"gst_treatment,omitempty"`
	IsDiscountBeforeTax   *bool            `json:"is_discount_before_tax,omitempty"`
	IsInclusiveTax        *bool            `json:"is_inclusive_tax,omitempty"`
	Notes                 string           `json:"notes,omitempty"`
	PlaceOfSupply         string           `json:"place_of_supply,omitempty"`
	PricebookId           FlexString       `json:"pricebook_id,omitempty"`
	ReferenceNumber       string           `json:"reference_number,omitempty"`
	SalespersonName       string           `json:"salesperson_name,omitempty"`
	ShipmentDate          string           `json:"shipment_date,omitempty"`
	ShippingChargeTaxId   string           `json:"shipping_charge_tax_id,omitempty"`
	ShippingCharge        *decimal.Decimal `json:"shipping_charge,omitempty"`
	TemplateId            string           `json:"template_id,omitempty"`
	Terms                 string           `json:"terms,omitempty"`
	CustomFields          []CustomField    `json:"custom_fields,omitempty"`
	// Address ids from the contact; the contact's default address is used when empty.
	BillingAddressId  string `json:"billing_address_id,omitempty"`
	ShippingAddressId string `json:"shipping_address_id,omitempty"`
}

func (input CreateSalesOrder) Validate() error {
	return validateStruct(input)
}

// UpdateSalesOrder is the create view without Documents and TemplateId, plus
// the mandatory SalesOrderId.
type UpdateSalesOrder struct {
	SalesOrderId     string           `json:"salesorder_id" binding:"required"`
	SalesOrderNumber string           `json:"salesorder_number" binding:"required"`
	CustomerId       string           `json:"customer_id" binding:"required"`
	LineItems        []CreateLineItem `json:"line_items" binding:"required,min=1,dive"`

	AdjustmentDescription string           `json:"adjustment_description,omitempty"`
	Adjustment            *decimal.Decimal `json:"adjustment,omitempty"`
	ContactPersons        []string         `json:"contact_persons,omitempty"`
	Date                  string           `json:"date,omitempty"`
	DeliveryMethod        string           `json:"delivery_method,omitempty"`
	DiscountType          DiscountType     `json:"discount_type,omitempty" binding:"omitempty,oneof=entity_level item_level"`
	Discount              *Discount        `json:"discount,omitempty"`
	ExchangeRate          *decimal.Decimal `json:"exchange_rate,omitempty"`
	GstNo                 string           `json:"gst_no,omitempty"`
	GstTreatment          GstTreatment     `json:"gst_treatment,omitempty"`
	IsDiscountBeforeTax   *bool            `json:"is_discount_before_tax,omitempty"`
	IsInclusiveTax        *bool            `json:"is_inclusive_tax,omitempty"`
	Notes                 string           `json:"notes,omitempty"`
	PlaceOfSupply         string           `json:"place_of_supply,omitempty"`
	PricebookId           FlexString       `json:"pricebook_id,omitempty"`
	ReferenceNumber       string           `json:"reference_number,omitempty"`
	SalespersonName       string           `json:"salesperson_name,omitempty"`
	ShipmentDate          string           `json:"shipment_date,omitempty"`
	ShippingChargeTaxId   string           `json:"shipping_charge_tax_id,omitempty"`
	ShippingCharge        *decimal.Decimal `json:"shipping_charge,omitempty"`
	Terms                 string           `json:"terms,omitempty"`
	CustomFields          []CustomField    `json:"custom_fields,omitempty"`
	BillingAddressId      string           `json:"billing_address_id,omitempty"`
	ShippingAddressId     string           `json:"shipping_address_id,omitempty"`
}

func (input UpdateSalesOrder) Validate() error {
	return validateStruct(input)
}

// UpdateFrom builds an update view from a fetched snapshot, keeping its line items.
func (input *UpdateSalesOrder) UpdateFrom(so SalesOrder) {
	input.SalesOrderId = so.SalesOrderId
	input.SalesOrderNumber = so.SalesOrderNumber
	input.CustomerId = so.CustomerId
	input.LineItems = make([]CreateLineItem, 0, len(so.LineItems))
	for _, li := range so.LineItems {
		item := CreateLineItem{
			LineItemId:  li.LineItemId,
			ItemId:      li.ItemId,
			Quantity:    li.Quantity,
			Name:        li.Name,
			Description: li.Description,
			ItemOrder:   li.ItemOrder,
			Unit:        li.Unit,
			TaxId:       li.TaxId,
			WarehouseId: li.WarehouseId,
			LocationId:  li.LocationId,
			ProjectId:   li.ProjectId,
		}
		rate := li.Rate
		item.Rate = &rate
		if so.DiscountType.AppliesToLineItems() {
			d := li.Discount
			item.Discount = &d
		}
		input.LineItems = append(input.LineItems, item)
	}
	input.Date = so.Date
	input.ShipmentDate = so.ShipmentDate
	input.ReferenceNumber = so.ReferenceNumber
	input.DiscountType = so.DiscountType
	if so.DiscountType.AppliesToOrder() && !so.Discount.IsZero() {
		d := so.Discount
		input.Discount = &d
	}
	input.Notes = so.Notes
	input.Terms = so.Terms
	input.CustomFields = so.CustomFields
}

// ListSalesOrder is a row of the sales order list endpoint. Custom fields come
// back inline as cf_* keys and are kept in Extensions.
type ListSalesOrder struct {
	SalesOrderId        string          `json:"salesorder_id"`
	SalesOrderNumber    string          `json:"salesorder_number"`
	CustomerId          string          `json:"customer_id"`
	CustomerName        string          `json:"customer_name"`
	CompanyName         string          `json:"company_name"`
	Email               string          `json:"email"`
	ReferenceNumber     string          `json:"reference_number"`
	Date                string          `json:"date"`
	ShipmentDate        string          `json:"shipment_date"`
	DeliveryDate        string          `json:"delivery_date"`
	DueByDays           FlexString      `json:"due_by_days"`
	DueInDays           FlexString      `json:"due_in_days"`
	CurrencyCode        string          `json:"currency_code"`
	Total               decimal.Decimal `json:"total"`
	TotalInvoicedAmount decimal.Decimal `json:"total_invoiced_amount"`
	Quantity            decimal.Decimal `json:"quantity"`
	CreatedTime         string          `json:"created_time"`
	LastModifiedTime    string          `json:"last_modified_time"`
	IsEmailed           bool            `json:"is_emailed"`
	Status              string          `json:"status"`
	OrderStatus         string          `json:"order_status"`
	InvoicedStatus      string          `json:"invoiced_status"`
	PaidStatus          string          `json:"paid_status"`
	ShippedStatus       string          `json:"shipped_status"`
	IsDropShipment      bool            `json:"is_drop_shipment"`
	SalespersonName     string          `json:"salesperson_name"`
	HasAttachment       bool            `json:"has_attachment"`

	Extensions Extensions `json:"-"`
}

func (s *ListSalesOrder) UnmarshalJSON(data []byte) error {
	type plain ListSalesOrder
	p := plain(*s)
	ext, err := decodeWithExtensions(data, &p)
	if err != nil {
		return err
	}
	*s = ListSalesOrder(p)
	s.Extensions = ext
	return nil
}

func (s ListSalesOrder) MarshalJSON() ([]byte, error) {
	type plain ListSalesOrder
	return encodeWithExtensions(plain(s), s.Extensions)
}
