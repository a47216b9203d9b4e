package reports

import (
	"bytes"
	"encoding/json"
	"testing"

	"bitbucket.org/mmdatafocus/zohobooks/models"
	"github.com/xuri/excelize/v2"
)

func readSheet(t *testing.T, s Sheet) [][]string {
	t.Helper()
	var buf bytes.Buffer
	if err := s.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(s.Name)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	return rows
}

func TestSalesOrderSheet(t *testing.T) {
	var orders []models.ListSalesOrder
	data := `[
		{"salesorder_number":"SO-00001","customer_name":"Bowman and Co","status":"open","total":120.5,"quantity":2,"cf_delivery_slot":"morning"},
		{"salesorder_number":"SO-00002","customer_name":"Zylker","status":"draft","total":10,"quantity":1}
	]`
	if err := json.Unmarshal([]byte(data), &orders); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	rows := readSheet(t, SalesOrderSheet(orders, "cf_delivery_slot"))
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	header := rows[0]
	if header[0] != "SalesOrderNumber" || header[len(header)-1] != "cf_delivery_slot" {
		t.Fatalf("header = %v", header)
	}
	first := rows[1]
	if first[0] != "SO-00001" || first[3] != "Bowman and Co" || first[11] != "120.5" {
		t.Fatalf("first row = %v", first)
	}
	if first[len(header)-1] != "morning" {
		t.Fatalf("custom field cell = %q", first[len(header)-1])
	}
	if second := rows[2]; len(second) == len(header) && second[len(header)-1] != "" {
		t.Fatalf("second row has a custom field value: %v", second)
	}
}

func TestContactSheet(t *testing.T) {
	contacts := []models.ListContact{
		{ContactName: "Test User Lastname", FirstName: "Test User", LastName: "Lastname", ContactType: models.ContactTypeCustomer},
	}
	rows := readSheet(t, ContactSheet(contacts))
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[1][0] != "Test User Lastname" || rows[1][6] != "customer" {
		t.Fatalf("row = %v", rows[1])
	}
}
