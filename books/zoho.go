// Package books exposes the Zoho Books resources as service objects.
//
// Each method performs exactly one request through the Requester and returns
// the fresh snapshot the API sent back. Nothing is cached and nothing is
// retried; on failure the returned entity is nil.
package books

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"bitbucket.org/mmdatafocus/zohobooks/zohoclient"
	"github.com/mitchellh/mapstructure"
)

// Requester sends one API call and decodes the response into out.
// *zohoclient.Client implements it.
type Requester interface {
	Do(ctx context.Context, req zohoclient.Request, out any) error
}

type Zoho struct {
	Contact    *ContactService
	SalesOrder *SalesOrderService
	Invoice    *InvoiceService
}

func New(client Requester) *Zoho {
	return &Zoho{
		Contact:    &ContactService{client: client},
		SalesOrder: &SalesOrderService{client: client},
		Invoice:    &InvoiceService{client: client},
	}
}

// validator is implemented by the create and update views of the models package.
type validator interface {
	Validate() error
}

// PageContext is the paging block of list responses. Only one page is read per call.
type PageContext struct {
	Page        int  `json:"page"`
	PerPage     int  `json:"per_page"`
	HasMorePage bool `json:"has_more_page"`
}

// encodeQuery turns a filter struct into query values. Fields are named by
// their json tag and zero values are left out.
func encodeQuery(filter any) (url.Values, error) {
	values := url.Values{}
	if filter == nil {
		return values, nil
	}
	var fields map[string]any
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  &fields,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(filter); err != nil {
		return nil, fmt.Errorf("encode filter: %w", err)
	}
	for k, v := range fields {
		switch v := v.(type) {
		case string:
			if v != "" {
				values.Set(k, v)
			}
		case int:
			if v != 0 {
				values.Set(k, strconv.Itoa(v))
			}
		case bool:
			if v {
				values.Set(k, "true")
			}
		default:
			if s := fmt.Sprint(v); s != "" {
				values.Set(k, s)
			}
		}
	}
	return values, nil
}
