package books

import (
	"context"
	"fmt"
	"net/http"

	"bitbucket.org/mmdatafocus/zohobooks/models"
	"bitbucket.org/mmdatafocus/zohobooks/zohoclient"
)

const contactsPath = "contacts"

type ContactService struct {
	client Requester
}

// ContactFilter narrows Contact.List. Page and PerPage are passed through as is.
type ContactFilter struct {
	ContactName string             `json:"contact_name"`
	CompanyName string             `json:"company_name"`
	Email       string             `json:"email"`
	Phone       string             `json:"phone"`
	SearchText  string             `json:"search_text"`
	ContactType models.ContactType `json:"contact_type"`
	FilterBy    string             `json:"filter_by"`
	SortColumn  string             `json:"sort_column"`
	Page        int                `json:"page"`
	PerPage     int                `json:"per_page"`
}

type contactResponse struct {
	Contact *models.Contact `json:"contact"`
}

type contactListResponse struct {
	Contacts    []models.ListContact `json:"contacts"`
	PageContext PageContext          `json:"page_context"`
}

func (s *ContactService) Create(ctx context.Context, input models.CreateContact) (*models.Contact, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	var resp contactResponse
	err := s.client.Do(ctx, zohoclient.Request{Method: http.MethodPost, Path: contactsPath, Body: input}, &resp)
	if err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}
	return resp.Contact, nil
}

func (s *ContactService) Get(ctx context.Context, contactId string) (*models.Contact, error) {
	var resp contactResponse
	err := s.client.Do(ctx, zohoclient.Request{Method: http.MethodGet, Path: contactsPath + "/" + contactId}, &resp)
	if err != nil {
		return nil, fmt.Errorf("get contact %s: %w", contactId, err)
	}
	return resp.Contact, nil
}

// List returns one page of contacts; filter may be nil.
func (s *ContactService) List(ctx context.Context, filter *ContactFilter) ([]models.ListContact, error) {
	query, err := encodeQuery(filter)
	if err != nil {
		return nil, err
	}
	var resp contactListResponse
	err = s.client.Do(ctx, zohoclient.Request{Method: http.MethodGet, Path: contactsPath, Query: query}, &resp)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return resp.Contacts, nil
}

func (s *ContactService) Update(ctx context.Context, input models.UpdateContact) (*models.Contact, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	var resp contactResponse
	err := s.client.Do(ctx, zohoclient.Request{Method: http.MethodPut, Path: contactsPath + "/" + input.ContactId, Body: input}, &resp)
	if err != nil {
		return nil, fmt.Errorf("update contact %s: %w", input.ContactId, err)
	}
	return resp.Contact, nil
}

func (s *ContactService) Delete(ctx context.Context, contactId string) error {
	err := s.client.Do(ctx, zohoclient.Request{Method: http.MethodDelete, Path: contactsPath + "/" + contactId}, nil)
	if err != nil {
		return fmt.Errorf("delete contact %s: %w", contactId, err)
	}
	return nil
}
