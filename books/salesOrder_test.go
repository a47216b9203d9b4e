package books_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"bitbucket.org/mmdatafocus/zohobooks/books"
	"bitbucket.org/mmdatafocus/zohobooks/models"
	"bitbucket.org/mmdatafocus/zohobooks/zohoclient"
	"github.com/shopspring/decimal"
)

func createCustomer(t *testing.T, zoho *books.Zoho) *models.Contact {
	t.Helper()
	customer, err := zoho.Contact.Create(context.Background(), models.CreateContact{
		ContactName: "Bowman and Co",
		BillingAddress: &models.AddressSnapshot{
			Address: "4900 Hopyard Rd",
			City:    "Pleasanton",
			Country: "U.S.A",
		},
	})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}
	return customer
}

func TestSalesOrderCreateRequiredFieldsOnly(t *testing.T) {
	zoho, _ := newZoho(t)
	customer := createCustomer(t, zoho)

	so, err := zoho.SalesOrder.Create(context.Background(), models.CreateSalesOrder{
		SalesOrderNumber: "SO-00001",
		CustomerId:       customer.ContactId,
		LineItems: []models.CreateLineItem{
			{ItemId: "460000000017088", Quantity: decimal.NewFromInt(2)},
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if so.SalesOrderId == "" || so.Status != string(models.SalesOrderStatusDraft) {
		t.Fatalf("sales order = %+v", so)
	}
	if so.CustomerName != "Bowman and Co" || so.BillingAddress.City != "Pleasanton" {
		t.Fatalf("customer data not filled: %+v", so)
	}
	if len(so.LineItems) != 1 || so.LineItems[0].LineItemId == "" {
		t.Fatalf("line items = %+v", so.LineItems)
	}
	// best effort: the id is not returned even though the snapshot is
	if so.BillingAddressId != nil {
		t.Fatalf("billing_address_id = %v", *so.BillingAddressId)
	}
}

func TestSalesOrderDiscountModes(t *testing.T) {
	zoho, _ := newZoho(t)
	customer := createCustomer(t, zoho)
	ctx := context.Background()
	rate := decimal.NewFromInt(100)
	lineDiscount := models.DiscountAmount(decimal.NewFromInt(5))
	orderDiscount := models.DiscountPercent(decimal.NewFromInt(10))

	tests := []struct {
		name         string
		discountType models.DiscountType
		wantTotal    string
	}{
		{name: "entity level", discountType: models.DiscountTypeEntityLevel, wantTotal: "180"},
		{name: "item level", discountType: models.DiscountTypeItemLevel, wantTotal: "195"},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			so, err := zoho.SalesOrder.Create(ctx, models.CreateSalesOrder{
				SalesOrderNumber: "SO-1000" + string(rune('0'+i)),
				CustomerId:       customer.ContactId,
				DiscountType:     tt.discountType,
				Discount:         &orderDiscount,
				LineItems: []models.CreateLineItem{
					{ItemId: "460000000017088", Quantity: decimal.NewFromInt(2), Rate: &rate, Discount: &lineDiscount},
				},
			})
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			if !so.Total.Equal(decimal.RequireFromString(tt.wantTotal)) {
				t.Fatalf("total = %s, want %s", so.Total, tt.wantTotal)
			}

			order, lines := so.AppliedDiscounts()
			if (order == nil) == (lines == nil) {
				t.Fatalf("order=%v lines=%v: exactly one mode must apply", order, lines)
			}
		})
	}
}

func TestSalesOrderLifecycle(t *testing.T) {
	zoho, srv := newZoho(t)
	customer := createCustomer(t, zoho)
	ctx := context.Background()

	so, err := zoho.SalesOrder.Create(ctx, models.CreateSalesOrder{
		SalesOrderNumber: "SO-00002",
		CustomerId:       customer.ContactId,
		ReferenceNumber:  "PO-77",
		LineItems: []models.CreateLineItem{
			{ItemId: "460000000017088", Quantity: decimal.NewFromInt(1)},
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	var update models.UpdateSalesOrder
	update.UpdateFrom(*so)
	update.ReferenceNumber = "PO-78"
	update.LineItems[0].Quantity = decimal.NewFromInt(3)
	updated, err := zoho.SalesOrder.Update(ctx, update)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.ReferenceNumber != "PO-78" || !updated.LineItems[0].Quantity.Equal(decimal.NewFromInt(3)) {
		t.Fatalf("updated = %+v", updated)
	}
	if updated.LineItems[0].LineItemId != so.LineItems[0].LineItemId {
		t.Fatalf("line item id changed on update")
	}
	if so.ReferenceNumber != "PO-77" {
		t.Fatalf("earlier snapshot mutated")
	}

	var body map[string]any
	if err := json.Unmarshal(srv.LastRequest().Body, &body); err != nil {
		t.Fatalf("request body: %v", err)
	}
	if _, ok := body["documents"]; ok {
		t.Fatalf("update sent documents")
	}

	if err := zoho.SalesOrder.MarkConfirmed(ctx, so.SalesOrderId); err != nil {
		t.Fatalf("MarkConfirmed: %v", err)
	}
	rows, err := zoho.SalesOrder.List(ctx, &books.SalesOrderFilter{Status: models.SalesOrderStatusOpen})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != 1 || rows[0].SalesOrderNumber != "SO-00002" || !rows[0].Quantity.Equal(decimal.NewFromInt(3)) {
		t.Fatalf("open rows = %+v", rows)
	}

	if err := zoho.SalesOrder.MarkConfirmed(ctx, so.SalesOrderId); err == nil {
		t.Fatalf("confirming an open order should fail")
	}
	if err := zoho.SalesOrder.MarkVoid(ctx, so.SalesOrderId); err != nil {
		t.Fatalf("MarkVoid: %v", err)
	}
	voided, err := zoho.SalesOrder.Get(ctx, so.SalesOrderId)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if voided.Status != string(models.SalesOrderStatusVoid) {
		t.Fatalf("status = %s", voided.Status)
	}

	if err := zoho.SalesOrder.Delete(ctx, so.SalesOrderId); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := zoho.SalesOrder.Get(ctx, so.SalesOrderId); !zohoclient.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSalesOrderCustomFieldsInList(t *testing.T) {
	zoho, srv := newZoho(t)
	seeded := models.SalesOrder{SalesOrderNumber: "SO-CF", Status: "open"}
	if err := seeded.Extensions.Set("cf_delivery_slot", "morning"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	srv.PutSalesOrder(seeded)

	rows, err := zoho.SalesOrder.List(context.Background(), nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d", len(rows))
	}
	var custom struct {
		DeliverySlot string `json:"cf_delivery_slot"`
	}
	if err := rows[0].Extensions.Decode(&custom); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if custom.DeliverySlot != "morning" {
		t.Fatalf("cf_delivery_slot = %q", custom.DeliverySlot)
	}
}

func TestSalesOrderErrors(t *testing.T) {
	zoho, srv := newZoho(t)
	customer := createCustomer(t, zoho)
	ctx := context.Background()
	valid := models.CreateSalesOrder{
		SalesOrderNumber: "SO-00003",
		CustomerId:       customer.ContactId,
		LineItems:        []models.CreateLineItem{{ItemId: "460000000017088", Quantity: decimal.NewFromInt(1)}},
	}

	missing := valid
	missing.LineItems = nil
	so, err := zoho.SalesOrder.Create(ctx, missing)
	var verr *models.ValidationError
	if so != nil || !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v, %v", so, err)
	}

	srv.FailNext(http.StatusInternalServerError, 1, "Internal Error")
	so, err = zoho.SalesOrder.Create(ctx, valid)
	var apiErr *zohoclient.APIError
	if so != nil || !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected api error, got %v, %v", so, err)
	}

	rows, err := zoho.SalesOrder.List(ctx, nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("failed calls created %d orders", len(rows))
	}
}
