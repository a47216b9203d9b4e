package models

// DiscountType decides where the discount of a document lives.
// For entity_level the discount node sits on the document itself, for
// item_level it sits inside each line item.
type DiscountType string

const (
	DiscountTypeEntityLevel DiscountType = "entity_level"
	DiscountTypeItemLevel   DiscountType = "item_level"
)

// AppliesToOrder is true for entity_level and for an unset type, which the API treats the same way.
func (t DiscountType) AppliesToOrder() bool {
	return t != DiscountTypeItemLevel
}

func (t DiscountType) AppliesToLineItems() bool {
	return t == DiscountTypeItemLevel
}

// India edition only.
type GstTreatment string

const (
	GstTreatmentBusinessGst  GstTreatment = "business_gst"
	GstTreatmentBusinessNone GstTreatment = "business_none"
	GstTreatmentOverseas     GstTreatment = "overseas"
	GstTreatmentConsumer     GstTreatment = "consumer"
)

type ContactType string

const (
	ContactTypeCustomer ContactType = "customer"
	ContactTypeVendor   ContactType = "vendor"
)

type SalesOrderStatus string

const (
	SalesOrderStatusDraft             SalesOrderStatus = "draft"
	SalesOrderStatusOpen              SalesOrderStatus = "open"
	SalesOrderStatusInvoiced          SalesOrderStatus = "invoiced"
	SalesOrderStatusPartiallyInvoiced SalesOrderStatus = "partially_invoiced"
	SalesOrderStatusVoid              SalesOrderStatus = "void"
	SalesOrderStatusOverdue           SalesOrderStatus = "overdue"
)

type InvoiceStatus string

const (
	InvoiceStatusDraft         InvoiceStatus = "draft"
	InvoiceStatusSent          InvoiceStatus = "sent"
	InvoiceStatusPaid          InvoiceStatus = "paid"
	InvoiceStatusPartiallyPaid InvoiceStatus = "partially_paid"
	InvoiceStatusOverdue       InvoiceStatus = "overdue"
	InvoiceStatusVoid          InvoiceStatus = "void"
)
