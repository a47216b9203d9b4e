package books_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"bitbucket.org/mmdatafocus/zohobooks/books"
	"bitbucket.org/mmdatafocus/zohobooks/bookstest"
	"bitbucket.org/mmdatafocus/zohobooks/models"
	"bitbucket.org/mmdatafocus/zohobooks/zohoclient"
	"github.com/prometheus/client_golang/prometheus"
)

func newZoho(t *testing.T) (*books.Zoho, *bookstest.Server) {
	t.Helper()
	srv := bookstest.NewServer()
	t.Cleanup(srv.Close)

	client, err := zohoclient.FromOAuth(context.Background(), srv.Config(), zohoclient.WithRegisterer(prometheus.NewRegistry()))
	if err != nil {
		t.Fatalf("FromOAuth: %v", err)
	}
	return books.New(client), srv
}

func TestContactCreateRoundTrip(t *testing.T) {
	zoho, _ := newZoho(t)
	ctx := context.Background()

	created, err := zoho.Contact.Create(ctx, models.CreateContact{
		FirstName:   "Test User",
		LastName:    "Lastname",
		ContactName: "Test User Lastname",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ContactId == "" {
		t.Fatalf("contact id not assigned")
	}
	if created.FirstName != "Test User" || created.LastName != "Lastname" || created.ContactName != "Test User Lastname" {
		t.Fatalf("created contact = %+v", created)
	}

	fetched, err := zoho.Contact.Get(ctx, created.ContactId)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if fetched.FirstName != "Test User" || fetched.ContactName != "Test User Lastname" {
		t.Fatalf("fetched contact = %+v", fetched)
	}
}

func TestContactCreateRequiredFieldsOnly(t *testing.T) {
	zoho, _ := newZoho(t)

	created, err := zoho.Contact.Create(context.Background(), models.CreateContact{ContactName: "Bowman and Co"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ContactType != models.ContactTypeCustomer || created.Status != "active" {
		t.Fatalf("server defaults missing: %+v", created)
	}
}

func TestContactCreateValidatesBeforeRequest(t *testing.T) {
	zoho, srv := newZoho(t)
	before := srv.APIRequests()

	created, err := zoho.Contact.Create(context.Background(), models.CreateContact{FirstName: "Nameless"})
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if created != nil {
		t.Fatalf("expected nil contact on validation failure")
	}
	if srv.APIRequests() != before {
		t.Fatalf("request sent despite validation failure")
	}
}

func TestContactCreateAPIError(t *testing.T) {
	zoho, srv := newZoho(t)
	srv.FailNext(http.StatusBadRequest, 3062, "The contact name already exists.")

	created, err := zoho.Contact.Create(context.Background(), models.CreateContact{ContactName: "Duplicate"})
	if created != nil {
		t.Fatalf("expected nil contact, got %+v", created)
	}
	var apiErr *zohoclient.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest || apiErr.Code != 3062 || apiErr.Message != "The contact name already exists." {
		t.Fatalf("api error = %+v", apiErr)
	}

	contacts, err := zoho.Contact.List(context.Background(), nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(contacts) != 0 {
		t.Fatalf("failed create left %d contacts", len(contacts))
	}
}

func TestContactCustomFieldsSurviveDecode(t *testing.T) {
	zoho, srv := newZoho(t)
	seeded := models.Contact{ContactName: "Custom Co", ContactType: models.ContactTypeCustomer}
	if err := seeded.Extensions.Set("cf_loyalty_tier", "gold"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := seeded.Extensions.Set("cf_visits", 12); err != nil {
		t.Fatalf("Set: %v", err)
	}
	seeded = srv.PutContact(seeded)

	contact, err := zoho.Contact.Get(context.Background(), seeded.ContactId)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v, _ := contact.Extensions.String("cf_loyalty_tier"); v != "gold" {
		t.Fatalf("cf_loyalty_tier = %q", v)
	}

	rows, err := zoho.Contact.List(context.Background(), &books.ContactFilter{SearchText: "custom"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if v, _ := rows[0].Extensions.String("cf_visits"); v != "12" {
		t.Fatalf("cf_visits = %q", v)
	}
}

func TestContactListFilter(t *testing.T) {
	zoho, srv := newZoho(t)
	ctx := context.Background()
	for _, name := range []string{"Alpha Traders", "Beta Supplies", "Alpha Logistics"} {
		if _, err := zoho.Contact.Create(ctx, models.CreateContact{ContactName: name}); err != nil {
			t.Fatalf("Create %s: %v", name, err)
		}
	}

	rows, err := zoho.Contact.List(ctx, &books.ContactFilter{SearchText: "alpha", Page: 1, PerPage: 50})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	q := srv.LastRequest().Query
	if q["search_text"][0] != "alpha" || q["per_page"][0] != "50" {
		t.Fatalf("query = %v", q)
	}
	if _, ok := q["email"]; ok {
		t.Fatalf("empty filter field sent: %v", q)
	}
}

func TestContactUpdateAndDelete(t *testing.T) {
	zoho, _ := newZoho(t)
	ctx := context.Background()

	created, err := zoho.Contact.Create(ctx, models.CreateContact{ContactName: "Old Name", Email: "old@example.com"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := zoho.Contact.Update(ctx, models.UpdateContact{
		ContactId:     created.ContactId,
		CreateContact: models.CreateContact{ContactName: "New Name"},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.ContactName != "New Name" || updated.Email != "old@example.com" {
		t.Fatalf("updated contact = %+v", updated)
	}

	if err := zoho.Contact.Delete(ctx, created.ContactId); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	_, err = zoho.Contact.Get(ctx, created.ContactId)
	if !zohoclient.IsNotFound(err) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}
