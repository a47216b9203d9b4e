package books

import (
	"context"
	"fmt"
	"net/http"

	"bitbucket.org/mmdatafocus/zohobooks/models"
	"bitbucket.org/mmdatafocus/zohobooks/zohoclient"
)

const salesOrdersPath = "salesorders"

type SalesOrderService struct {
	client Requester
}

type SalesOrderFilter struct {
	SalesOrderNumber string                  `json:"salesorder_number"`
	ReferenceNumber  string                  `json:"reference_number"`
	CustomerId       string                  `json:"customer_id"`
	Status           models.SalesOrderStatus `json:"status"`
	Date             string                  `json:"date"`
	SearchText       string                  `json:"search_text"`
	FilterBy         string                  `json:"filter_by"`
	SortColumn       string                  `json:"sort_column"`
	Page             int                     `json:"page"`
	PerPage          int                     `json:"per_page"`
}

type salesOrderResponse struct {
	SalesOrder *models.SalesOrder `json:"salesorder"`
}

type salesOrderListResponse struct {
	SalesOrders []models.ListSalesOrder `json:"salesorders"`
	PageContext PageContext             `json:"page_context"`
}

func (s *SalesOrderService) Create(ctx context.Context, input models.CreateSalesOrder) (*models.SalesOrder, error) {
	return s.save(ctx, http.MethodPost, salesOrdersPath, input)
}

func (s *SalesOrderService) Get(ctx context.Context, salesOrderId string) (*models.SalesOrder, error) {
	var resp salesOrderResponse
	err := s.client.Do(ctx, zohoclient.Request{Method: http.MethodGet, Path: salesOrdersPath + "/" + salesOrderId}, &resp)
	if err != nil {
		return nil, fmt.Errorf("get sales order %s: %w", salesOrderId, err)
	}
	return resp.SalesOrder, nil
}

// List returns one page of sales orders; filter may be nil.
func (s *SalesOrderService) List(ctx context.Context, filter *SalesOrderFilter) ([]models.ListSalesOrder, error) {
	query, err := encodeQuery(filter)
	if err != nil {
		return nil, err
	}
	var resp salesOrderListResponse
	err = s.client.Do(ctx, zohoclient.Request{Method: http.MethodGet, Path: salesOrdersPath, Query: query}, &resp)
	if err != nil {
		return nil, fmt.Errorf("list sales orders: %w", err)
	}
	return resp.SalesOrders, nil
}

func (s *SalesOrderService) Update(ctx context.Context, input models.UpdateSalesOrder) (*models.SalesOrder, error) {
	return s.save(ctx, http.MethodPut, salesOrdersPath+"/"+input.SalesOrderId, input)
}

func (s *SalesOrderService) Delete(ctx context.Context, salesOrderId string) error {
	err := s.client.Do(ctx, zohoclient.Request{Method: http.MethodDelete, Path: salesOrdersPath + "/" + salesOrderId}, nil)
	if err != nil {
		return fmt.Errorf("delete sales order %s: %w", salesOrderId, err)
	}
	return nil
}

// MarkConfirmed moves a draft sales order to open.
func (s *SalesOrderService) MarkConfirmed(ctx context.Context, salesOrderId string) error {
	return s.setStatus(ctx, salesOrderId, "confirmed")
}

func (s *SalesOrderService) MarkVoid(ctx context.Context, salesOrderId string) error {
	return s.setStatus(ctx, salesOrderId, "void")
}

func (s *SalesOrderService) setStatus(ctx context.Context, salesOrderId, status string) error {
	path := fmt.Sprintf("%s/%s/status/%s", salesOrdersPath, salesOrderId, status)
	if err := s.client.Do(ctx, zohoclient.Request{Method: http.MethodPost, Path: path}, nil); err != nil {
		return fmt.Errorf("mark sales order %s %s: %w", salesOrderId, status, err)
	}
	return nil
}

func (s *SalesOrderService) save(ctx context.Context, method, path string, input validator) (*models.SalesOrder, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	var resp salesOrderResponse
	if err := s.client.Do(ctx, zohoclient.Request{Method: method, Path: path, Body: input}, &resp); err != nil {
		return nil, fmt.Errorf("save sales order: %w", err)
	}
	return resp.SalesOrder, nil
}
