package models_test

import (
	"encoding/json"
	"errors"
	"testing"

	"bitbucket.org/mmdatafocus/zohobooks/models"
	"github.com/shopspring/decimal"
)

func TestDiscountUnmarshal(t *testing.T) {
	tests := []struct {
		in          string
		wantValue   string
		wantPercent bool
	}{
		{in: `15`, wantValue: "15"},
		{in: `2.5`, wantValue: "2.5"},
		{in: `"15%"`, wantValue: "15", wantPercent: true},
		{in: `"7.25 %"`, wantValue: "7.25", wantPercent: true},
		{in: `"30"`, wantValue: "30"},
		{in: `""`, wantValue: "0"},
		{in: `null`, wantValue: "0"},
	}

	for _, tt := range tests {
		var d models.Discount
		if err := json.Unmarshal([]byte(tt.in), &d); err != nil {
			t.Fatalf("%s: %v", tt.in, err)
		}
		if d.Value.String() != tt.wantValue || d.IsPercent != tt.wantPercent {
			t.Fatalf("%s: got %s percent=%v, want %s percent=%v", tt.in, d.Value, d.IsPercent, tt.wantValue, tt.wantPercent)
		}
	}

	var d models.Discount
	if err := json.Unmarshal([]byte(`"ten"`), &d); err == nil {
		t.Fatalf("expected error for non numeric discount")
	}
}

func TestDiscountMarshal(t *testing.T) {
	tests := []struct {
		d    models.Discount
		want string
	}{
		{d: models.DiscountAmount(decimal.RequireFromString("12.5")), want: `12.5`},
		{d: models.DiscountPercent(decimal.NewFromInt(15)), want: `"15%"`},
		{d: models.Discount{}, want: `0`},
	}
	for _, tt := range tests {
		b, err := json.Marshal(tt.d)
		if err != nil {
			t.Fatalf("marshal %v: %v", tt.d, err)
		}
		if string(b) != tt.want {
			t.Fatalf("marshal = %s, want %s", b, tt.want)
		}
	}
}

func TestBlankableDecimal(t *testing.T) {
	var d models.BlankableDecimal
	if err := json.Unmarshal([]byte(`18`), &d); err != nil || !d.Valid || !d.Decimal.Equal(decimal.NewFromInt(18)) {
		t.Fatalf("number: %+v, %v", d, err)
	}
	if err := json.Unmarshal([]byte(`""`), &d); err != nil || d.Valid {
		t.Fatalf("blank: %+v, %v", d, err)
	}
	b, _ := json.Marshal(d)
	if string(b) != `""` {
		t.Fatalf("marshal blank = %s", b)
	}
}

func TestFlexString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: `"460000000038090"`, want: "460000000038090"},
		{in: `460000000038090`, want: "460000000038090"},
		{in: `null`, want: ""},
	}
	for _, tt := range tests {
		var f models.FlexString
		if err := json.Unmarshal([]byte(tt.in), &f); err != nil {
			t.Fatalf("%s: %v", tt.in, err)
		}
		if f.String() != tt.want {
			t.Fatalf("%s: got %q", tt.in, f)
		}
	}

	var f models.FlexString
	if err := json.Unmarshal([]byte(`{}`), &f); err == nil {
		t.Fatalf("expected error for object")
	}
}

func TestCreateContactValidate(t *testing.T) {
	input := models.CreateContact{ContactName: "Test User Lastname"}
	if err := input.Validate(); err != nil {
		t.Fatalf("required fields only: %v", err)
	}

	input = models.CreateContact{Email: "not-an-email"}
	err := input.Validate()
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if verr.Fields["contact_name"] != "required" || verr.Fields["email"] != "email" {
		t.Fatalf("fields = %v", verr.Fields)
	}
	if verr.Error() != "validation failed: contact_name: required, email: email" {
		t.Fatalf("error = %q", verr.Error())
	}

	update := models.UpdateContact{CreateContact: models.CreateContact{ContactName: "Test User"}}
	err = update.Validate()
	if !errors.As(err, &verr) || verr.Fields["contact_id"] != "required" {
		t.Fatalf("expected contact_id required, got %v", err)
	}

	update = models.UpdateContact{ContactId: "460000000026049"}
	err = update.Validate()
	if !errors.As(err, &verr) || verr.Fields["contact_name"] != "required" {
		t.Fatalf("expected embedded contact_name required, got %v", err)
	}
}

func TestCreateInvoiceValidate(t *testing.T) {
	input := models.CreateInvoice{
		CustomerId: "460000000017138",
		LineItems:  []models.CreateLineItem{{ItemId: "460000000017088", Quantity: decimal.NewFromInt(3)}},
	}
	if err := input.Validate(); err != nil {
		t.Fatalf("required fields only: %v", err)
	}

	var verr *models.ValidationError
	if err := (models.CreateInvoice{}).Validate(); !errors.As(err, &verr) || len(verr.Fields) != 2 {
		t.Fatalf("expected customer_id and line_items errors, got %v", err)
	}
}
