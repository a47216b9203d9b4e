package reports

import (
	"bitbucket.org/mmdatafocus/zohobooks/models"
	"github.com/shopspring/decimal"
)

var salesOrderHeadings = []string{
	"SalesOrderNumber", "Date", "ShipmentDate", "CustomerName", "ReferenceNumber",
	"Status", "InvoicedStatus", "PaidStatus", "ShippedStatus", "CurrencyCode",
	"Quantity", "Total", "TotalInvoiced",
}

type salesOrderRow struct {
	so           models.ListSalesOrder
	customFields []string
}

func (r salesOrderRow) GetCellValues() []interface{} {
	values := []interface{}{
		r.so.SalesOrderNumber,
		r.so.Date,
		r.so.ShipmentDate,
		r.so.CustomerName,
		r.so.ReferenceNumber,
		r.so.Status,
		r.so.InvoicedStatus,
		r.so.PaidStatus,
		r.so.ShippedStatus,
		r.so.CurrencyCode,
		number(r.so.Quantity),
		number(r.so.Total),
		number(r.so.TotalInvoicedAmount),
	}
	return appendCustomFields(values, r.so.Extensions, r.customFields)
}

// SalesOrderSheet lays out a sales order listing, one column per requested
// custom field key after the fixed columns.
func SalesOrderSheet(orders []models.ListSalesOrder, customFields ...string) Sheet {
	rows := make([]ExcelExporter, 0, len(orders))
	for _, so := range orders {
		rows = append(rows, salesOrderRow{so: so, customFields: customFields})
	}
	return Sheet{
		Name:     "SalesOrders",
		Headings: append(append([]string{}, salesOrderHeadings...), customFields...),
		Rows:     rows,
	}
}

var contactHeadings = []string{
	"ContactName", "CompanyName", "FirstName", "LastName", "Email", "Phone",
	"ContactType", "Status", "CurrencyCode", "Receivables", "UnusedCredits",
}

type contactRow struct {
	c            models.ListContact
	customFields []string
}

func (r contactRow) GetCellValues() []interface{} {
	values := []interface{}{
		r.c.ContactName,
		r.c.CompanyName,
		r.c.FirstName,
		r.c.LastName,
		r.c.Email,
		r.c.Phone,
		string(r.c.ContactType),
		r.c.Status,
		r.c.CurrencyCode,
		number(r.c.OutstandingReceivableAmount),
		number(r.c.UnusedCreditsReceivableAmount),
	}
	return appendCustomFields(values, r.c.Extensions, r.customFields)
}

func ContactSheet(contacts []models.ListContact, customFields ...string) Sheet {
	rows := make([]ExcelExporter, 0, len(contacts))
	for _, c := range contacts {
		rows = append(rows, contactRow{c: c, customFields: customFields})
	}
	return Sheet{
		Name:     "Contacts",
		Headings: append(append([]string{}, contactHeadings...), customFields...),
		Rows:     rows,
	}
}

func appendCustomFields(values []interface{}, ext models.Extensions, keys []string) []interface{} {
	for _, k := range keys {
		v, _ := ext.String(k)
		values = append(values, v)
	}
	return values
}

// xlsx stores numbers as doubles
func number(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}
