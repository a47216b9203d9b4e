package books

import (
	"context"
	"fmt"
	"net/http"

	"bitbucket.org/mmdatafocus/zohobooks/models"
	"bitbucket.org/mmdatafocus/zohobooks/zohoclient"
)

const invoicesPath = "invoices"

type InvoiceService struct {
	client Requester
}

type InvoiceFilter struct {
	InvoiceNumber   string               `json:"invoice_number"`
	ReferenceNumber string               `json:"reference_number"`
	CustomerId      string               `json:"customer_id"`
	Status          models.InvoiceStatus `json:"status"`
	SearchText      string               `json:"search_text"`
	FilterBy        string               `json:"filter_by"`
	SortColumn      string               `json:"sort_column"`
	Page            int                  `json:"page"`
	PerPage         int                  `json:"per_page"`
}

type invoiceResponse struct {
	Invoice *models.Invoice `json:"invoice"`
}

type invoiceListResponse struct {
	Invoices    []models.ListInvoice `json:"invoices"`
	PageContext PageContext          `json:"page_context"`
}

func (s *InvoiceService) Create(ctx context.Context, input models.CreateInvoice) (*models.Invoice, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	var resp invoiceResponse
	err := s.client.Do(ctx, zohoclient.Request{Method: http.MethodPost, Path: invoicesPath, Body: input}, &resp)
	if err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}
	return resp.Invoice, nil
}

func (s *InvoiceService) Get(ctx context.Context, invoiceId string) (*models.Invoice, error) {
	var resp invoiceResponse
	err := s.client.Do(ctx, zohoclient.Request{Method: http.MethodGet, Path: invoicesPath + "/" + invoiceId}, &resp)
	if err != nil {
		return nil, fmt.Errorf("get invoice %s: %w", invoiceId, err)
	}
	return resp.Invoice, nil
}

// List returns one page of invoices; filter may be nil.
func (s *InvoiceService) List(ctx context.Context, filter *InvoiceFilter) ([]models.ListInvoice, error) {
	query, err := encodeQuery(filter)
	if err != nil {
		return nil, err
	}
	var resp invoiceListResponse
	err = s.client.Do(ctx, zohoclient.Request{Method: http.MethodGet, Path: invoicesPath, Query: query}, &resp)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return resp.Invoices, nil
}
