package models

import "github.com/shopspring/decimal"

// LineItem is one row of a sales order or invoice as returned by the API.
// Discount is only meaningful when the document's discount_type is item_level.
type LineItem struct {
	LineItemId       string          `json:"line_item_id"`
	ItemId           string          `json:"item_id"`
	Name             string          `json:"name"`
	Description      string          `json:"description,omitempty"`
	Sku              string          `json:"sku,omitempty"`
	ItemOrder        int             `json:"item_order,omitempty"`
	BcyRate          decimal.Decimal `json:"bcy_rate"`
	Rate             decimal.Decimal `json:"rate"`
	Quantity         decimal.Decimal `json:"quantity"`
	Unit             string          `json:"unit,omitempty"`
	DiscountAmount   decimal.Decimal `json:"discount_amount"`
	Discount         Discount        `json:"discount"`
	TaxId            string          `json:"tax_id,omitempty"`
	TaxName          string          `json:"tax_name,omitempty"`
	TaxType          string          `json:"tax_type,omitempty"`
	TaxPercentage    decimal.Decimal `json:"tax_percentage"`
	ItemTotal        decimal.Decimal `json:"item_total"`
	ProductType      string          `json:"product_type,omitempty"`
	HsnOrSac         string          `json:"hsn_or_sac,omitempty"`
	WarehouseId      string          `json:"warehouse_id,omitempty"`
	WarehouseName    string          `json:"warehouse_name,omitempty"`
	LocationId       string          `json:"location_id,omitempty"`
	ProjectId        string          `json:"project_id,omitempty"`
	SalesOrderItemId string          `json:"salesorder_item_id,omitempty"`
	IsInvoiced       bool            `json:"is_invoiced,omitempty"`
	QuantityInvoiced decimal.Decimal `json:"quantity_invoiced"`
	QuantityPacked   decimal.Decimal `json:"quantity_packed"`
	QuantityShipped  decimal.Decimal `json:"quantity_shipped"`
	ItemCustomFields []CustomField   `json:"item_custom_fields,omitempty"`
}

// CreateLineItem is a line item on create and update requests. ItemId and
// Quantity are required; LineItemId identifies an existing row on update.
type CreateLineItem struct {
	LineItemId       string           `json:"line_item_id,omitempty"`
	ItemId           string           `json:"item_id" binding:"required"`
	Quantity         decimal.Decimal  `json:"quantity" binding:"required"`
	Name             string           `json:"name,omitempty"`
	Description      string           `json:"description,omitempty"`
	ItemOrder        int              `json:"item_order,omitempty"`
	Rate             *decimal.Decimal `json:"rate,omitempty"`
	Unit             string           `json:"unit,omitempty"`
	Discount         *Discount        `json:"discount,omitempty"`
	TaxId            string           `json:"tax_id,omitempty"`
	TaxExemptionId   string           `json:"tax_exemption_id,omitempty"`
	HsnOrSac         string           `json:"hsn_or_sac,omitempty"`
	WarehouseId      string           `json:"warehouse_id,omitempty"`
	LocationId       string           `json:"location_id,omitempty"`
	ProjectId        string           `json:"project_id,omitempty"`
	SalesOrderItemId string           `json:"salesorder_item_id,omitempty"`
	ItemCustomFields []CustomField    `json:"item_custom_fields,omitempty"`
}
