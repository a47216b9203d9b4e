package models

import "github.com/shopspring/decimal"

// PaymentOverview is a customer payment recorded against a sales order.
type PaymentOverview struct {
	PaymentId                  string          `json:"payment_id"`
	PaymentMode                string          `json:"payment_mode"`
	PaymentModeId              string          `json:"payment_mode_id"`
	Amount                     decimal.Decimal `json:"amount"`
	Date                       string          `json:"date"`
	OfflineCreatedDateWithTime string          `json:"offline_created_date_with_time"`
	Description                string          `json:"description"`
	ReferenceNumber            string          `json:"reference_number"`
	AccountId                  string          `json:"account_id"`
	AccountName                string          `json:"account_name"`
	PaymentType                string          `json:"payment_type"`
}

type Tax struct {
	TaxName   string          `json:"tax_name"`
	TaxAmount decimal.Decimal `json:"tax_amount"`
}
