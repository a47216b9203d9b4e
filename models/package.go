package models

import "github.com/shopspring/decimal"

// PackageShortList is a package as listed on its sales order. Quantity is the
// total number of items packed into it.
type PackageShortList struct {
	PackageId         string          `json:"package_id"`
	PackageNumber     string          `json:"package_number"`
	Date              string          `json:"date,omitempty"`
	Status            string          `json:"status,omitempty"`
	DetailedStatus    string          `json:"detailed_status,omitempty"`
	StatusMessage     string          `json:"status_message,omitempty"`
	ShipmentId        string          `json:"shipment_id,omitempty"`
	ShipmentNumber    string          `json:"shipment_number,omitempty"`
	ShipmentStatus    string          `json:"shipment_status,omitempty"`
	Carrier           string          `json:"carrier,omitempty"`
	Service           string          `json:"service,omitempty"`
	TrackingNumber    string          `json:"tracking_number,omitempty"`
	ShipmentDate      string          `json:"shipment_date,omitempty"`
	DeliveryDays      string          `json:"delivery_days,omitempty"`
	DeliveryGuarantee bool            `json:"delivery_guarantee,omitempty"`
	Quantity          decimal.Decimal `json:"quantity"`
}
