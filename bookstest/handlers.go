package bookstest

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/zohobooks/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

func bindError(c *gin.Context, err error) {
	abortWithError(c, http.StatusBadRequest, codeInvalidInput, "Invalid value passed for JSONString: "+err.Error())
}

func internalError(c *gin.Context, err error) {
	abortWithError(c, http.StatusInternalServerError, 1, err.Error())
}

func today() string {
	return time.Now().UTC().Format("2006-01-02")
}

// computeTotals fills the item totals and returns the document totals the way
// Books reports them for untaxed documents.
func computeTotals(lines []models.LineItem, discountType models.DiscountType, discount models.Discount, shipping, adjustment decimal.Decimal) (subTotal, discountAmount, total decimal.Decimal) {
	for i := range lines {
		li := &lines[i]
		gross := li.Rate.Mul(li.Quantity)
		lineDiscount := decimal.Zero
		if discountType.AppliesToLineItems() {
			lineDiscount = discountValue(li.Discount, gross)
		}
		li.DiscountAmount = lineDiscount
		li.ItemTotal = gross.Sub(lineDiscount)
		li.BcyRate = li.Rate
		subTotal = subTotal.Add(li.ItemTotal)
	}
	if discountType.AppliesToOrder() {
		discountAmount = discountValue(discount, subTotal)
	}
	total = subTotal.Sub(discountAmount).Add(shipping).Add(adjustment)
	return subTotal, discountAmount, total
}

func discountValue(d models.Discount, base decimal.Decimal) decimal.Decimal {
	if d.IsPercent {
		return base.Mul(d.Value).Div(hundred).Round(2)
	}
	return d.Value
}

func matches(value, query string) bool {
	return query == "" || strings.Contains(strings.ToLower(value), strings.ToLower(query))
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ---- contacts

func (s *Server) CreateContactHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.CreateContact
		if err := c.ShouldBindJSON(&input); err != nil {
			bindError(c, err)
			return
		}
		var contact models.Contact
		if err := convert(input, &contact); err != nil {
			internalError(c, err)
			return
		}
		contact.Extensions = nil
		if contact.ContactType == "" {
			contact.ContactType = models.ContactTypeCustomer
		}
		contact.Status = "active"
		contact.CreatedTime = now()
		contact.LastModifiedTime = contact.CreatedTime

		s.mu.Lock()
		contact.ContactId = s.nextId()
		s.contacts[contact.ContactId] = contact
		s.mu.Unlock()

		respond(c, http.StatusCreated, "The contact has been added.", "contact", contact)
	}
}

func (s *Server) ListContactsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()

		rows := []models.ListContact{}
		for _, id := range sortedKeys(s.contacts) {
			contact := s.contacts[id]
			if !matches(contact.ContactName, c.Query("search_text")) ||
				!matches(contact.ContactName, c.Query("contact_name")) ||
				!matches(contact.Email, c.Query("email")) {
				continue
			}
			if t := c.Query("contact_type"); t != "" && string(contact.ContactType) != t {
				continue
			}
			rows = append(rows, listContact(contact))
		}
		c.JSON(http.StatusOK, gin.H{
			"code":         0,
			"message":      "success",
			"contacts":     rows,
			"page_context": pageContext(c, len(rows)),
		})
	}
}

func listContact(contact models.Contact) models.ListContact {
	return models.ListContact{
		ContactId:                     contact.ContactId,
		ContactName:                   contact.ContactName,
		CompanyName:                   contact.CompanyName,
		FirstName:                     contact.FirstName,
		LastName:                      contact.LastName,
		Email:                         contact.Email,
		Phone:                         contact.Phone,
		Mobile:                        contact.Mobile,
		ContactType:                   contact.ContactType,
		Status:                        contact.Status,
		CurrencyCode:                  contact.CurrencyCode,
		OutstandingReceivableAmount:   contact.OutstandingReceivableAmount,
		UnusedCreditsReceivableAmount: contact.UnusedCreditsReceivableAmount,
		CreatedTime:                   contact.CreatedTime,
		LastModifiedTime:              contact.LastModifiedTime,
		Extensions:                    contact.Extensions.CustomFields(),
	}
}

func (s *Server) GetContactHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		contact, ok := s.contacts[c.Param("id")]
		s.mu.Unlock()
		if !ok {
			abortWithError(c, http.StatusNotFound, codeNotFound, "Contact does not exist.")
			return
		}
		respond(c, http.StatusOK, "success", "contact", contact)
	}
}

func (s *Server) UpdateContactHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.UpdateContact
		if err := c.ShouldBindJSON(&input); err != nil {
			bindError(c, err)
			return
		}
		if input.ContactId != c.Param("id") {
			abortWithError(c, http.StatusBadRequest, codeInvalidInput, "Invalid value passed for contact_id")
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		contact, ok := s.contacts[input.ContactId]
		if !ok {
			abortWithError(c, http.StatusNotFound, codeNotFound, "Contact does not exist.")
			return
		}
		ext := contact.Extensions
		if err := convert(input.CreateContact, &contact); err != nil {
			internalError(c, err)
			return
		}
		contact.Extensions = ext
		contact.LastModifiedTime = now()
		s.contacts[contact.ContactId] = contact

		respond(c, http.StatusOK, "Contact information has been saved.", "contact", contact)
	}
}

func (s *Server) DeleteContactHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()
		id := c.Param("id")
		if _, ok := s.contacts[id]; !ok {
			abortWithError(c, http.StatusNotFound, codeNotFound, "Contact does not exist.")
			return
		}
		delete(s.contacts, id)
		respond(c, http.StatusOK, "The contact has been deleted.", "", nil)
	}
}

// ---- sales orders

func (s *Server) CreateSalesOrderHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.CreateSalesOrder
		if err := c.ShouldBindJSON(&input); err != nil {
			bindError(c, err)
			return
		}
		var so models.SalesOrder
		if err := convert(input, &so); err != nil {
			internalError(c, err)
			return
		}
		so.Extensions = nil

		s.mu.Lock()
		defer s.mu.Unlock()
		customer, ok := s.contacts[so.CustomerId]
		if !ok {
			abortWithError(c, http.StatusBadRequest, codeNotFound, "Customer does not exist.")
			return
		}
		so.SalesOrderId = s.nextId()
		so.Status = string(models.SalesOrderStatusDraft)
		s.fillSalesOrder(&so, customer)
		so.CreatedTime = now()
		so.LastModifiedTime = so.CreatedTime
		s.salesOrders[so.SalesOrderId] = so

		respond(c, http.StatusCreated, "Sales Order has been created.", "salesorder", so)
	}
}

// fillSalesOrder derives what Books computes on save. Must be called with s.mu held.
func (s *Server) fillSalesOrder(so *models.SalesOrder, customer models.Contact) {
	so.CustomerName = customer.ContactName
	so.CompanyName = customer.CompanyName
	so.CurrencyCode = customer.CurrencyCode
	if so.Date == "" {
		so.Date = today()
	}
	if so.DiscountType == "" {
		so.DiscountType = models.DiscountTypeEntityLevel
	}
	if so.BillingAddress.IsZero() {
		so.BillingAddress = customer.BillingAddress.AddressSnapshot
	}
	if so.ShippingAddress.IsZero() {
		so.ShippingAddress = customer.ShippingAddress.AddressSnapshot
	}
	for i := range so.LineItems {
		if so.LineItems[i].LineItemId == "" {
			so.LineItems[i].LineItemId = s.nextId()
		}
	}
	so.SubTotal, so.DiscountAmount, so.Total = computeTotals(so.LineItems, so.DiscountType, so.Discount, so.ShippingCharge, so.Adjustment)
}

func (s *Server) ListSalesOrdersHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()

		rows := []models.ListSalesOrder{}
		for _, id := range sortedKeys(s.salesOrders) {
			so := s.salesOrders[id]
			if st := c.Query("status"); st != "" && so.Status != st {
				continue
			}
			if cid := c.Query("customer_id"); cid != "" && so.CustomerId != cid {
				continue
			}
			if !matches(so.SalesOrderNumber, c.Query("salesorder_number")) ||
				!matches(so.SalesOrderNumber+" "+so.ReferenceNumber+" "+so.CustomerName, c.Query("search_text")) {
				continue
			}
			rows = append(rows, s.listSalesOrder(so))
		}
		c.JSON(http.StatusOK, gin.H{
			"code":         0,
			"message":      "success",
			"salesorders":  rows,
			"page_context": pageContext(c, len(rows)),
		})
	}
}

func (s *Server) listSalesOrder(so models.SalesOrder) models.ListSalesOrder {
	quantity := decimal.Zero
	for _, li := range so.LineItems {
		quantity = quantity.Add(li.Quantity)
	}
	return models.ListSalesOrder{
		SalesOrderId:     so.SalesOrderId,
		SalesOrderNumber: so.SalesOrderNumber,
		CustomerId:       so.CustomerId,
		CustomerName:     so.CustomerName,
		CompanyName:      so.CompanyName,
		Email:            s.contacts[so.CustomerId].Email,
		ReferenceNumber:  so.ReferenceNumber,
		Date:             so.Date,
		ShipmentDate:     so.ShipmentDate,
		CurrencyCode:     so.CurrencyCode,
		Total:            so.Total,
		Quantity:         quantity,
		CreatedTime:      so.CreatedTime,
		LastModifiedTime: so.LastModifiedTime,
		IsEmailed:        so.IsEmailed,
		Status:           so.Status,
		OrderStatus:      so.Status,
		SalespersonName:  so.SalespersonName,
		HasAttachment:    len(so.Documents) > 0,
		Extensions:       so.Extensions.CustomFields(),
	}
}

func (s *Server) GetSalesOrderHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		so, ok := s.salesOrders[c.Param("id")]
		s.mu.Unlock()
		if !ok {
			abortWithError(c, http.StatusNotFound, codeNotFound, "Sales Order does not exist.")
			return
		}
		respond(c, http.StatusOK, "success", "salesorder", so)
	}
}

func (s *Server) UpdateSalesOrderHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.UpdateSalesOrder
		if err := c.ShouldBindJSON(&input); err != nil {
			bindError(c, err)
			return
		}
		if input.SalesOrderId != c.Param("id") {
			abortWithError(c, http.StatusBadRequest, codeInvalidInput, "Invalid value passed for salesorder_id")
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		so, ok := s.salesOrders[input.SalesOrderId]
		if !ok {
			abortWithError(c, http.StatusNotFound, codeNotFound, "Sales Order does not exist.")
			return
		}
		customer, ok := s.contacts[input.CustomerId]
		if !ok {
			abortWithError(c, http.StatusBadRequest, codeNotFound, "Customer does not exist.")
			return
		}
		ext := so.Extensions
		so.LineItems = nil
		if err := convert(input, &so); err != nil {
			internalError(c, err)
			return
		}
		so.Extensions = ext
		s.fillSalesOrder(&so, customer)
		so.LastModifiedTime = now()
		s.salesOrders[so.SalesOrderId] = so

		respond(c, http.StatusOK, "Sales Order has been updated.", "salesorder", so)
	}
}

func (s *Server) DeleteSalesOrderHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()
		id := c.Param("id")
		if _, ok := s.salesOrders[id]; !ok {
			abortWithError(c, http.StatusNotFound, codeNotFound, "Sales Order does not exist.")
			return
		}
		delete(s.salesOrders, id)
		respond(c, http.StatusOK, "The sales order has been deleted.", "", nil)
	}
}

// SalesOrderStatusHandler serves /salesorders/:id/status/{confirmed,void}.
func (s *Server) SalesOrderStatusHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()
		so, ok := s.salesOrders[c.Param("id")]
		if !ok {
			abortWithError(c, http.StatusNotFound, codeNotFound, "Sales Order does not exist.")
			return
		}

		switch c.Param("status") {
		case "confirmed":
			if so.Status != string(models.SalesOrderStatusDraft) {
				abortWithError(c, http.StatusBadRequest, codeInvalidInput, "Only draft sales orders can be confirmed.")
				return
			}
			so.Status = string(models.SalesOrderStatusOpen)
		case "void":
			if so.Status == string(models.SalesOrderStatusVoid) {
				abortWithError(c, http.StatusBadRequest, codeInvalidInput, "Sales order is already void.")
				return
			}
			so.Status = string(models.SalesOrderStatusVoid)
		default:
			abortWithError(c, http.StatusNotFound, codeNotFound, "Invalid URL Passed")
			return
		}
		so.LastModifiedTime = now()
		s.salesOrders[so.SalesOrderId] = so
		respond(c, http.StatusOK, "Sales Order status has been changed to "+so.Status+".", "", nil)
	}
}

// ---- invoices

func (s *Server) CreateInvoiceHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.CreateInvoice
		if err := c.ShouldBindJSON(&input); err != nil {
			bindError(c, err)
			return
		}
		var inv models.Invoice
		if err := convert(input, &inv); err != nil {
			internalError(c, err)
			return
		}
		inv.Extensions = nil

		s.mu.Lock()
		defer s.mu.Unlock()
		customer, ok := s.contacts[inv.CustomerId]
		if !ok {
			abortWithError(c, http.StatusBadRequest, codeNotFound, "Customer does not exist.")
			return
		}
		inv.InvoiceId = s.nextId()
		if inv.InvoiceNumber == "" {
			inv.InvoiceNumber = "INV-" + inv.InvoiceId[len(inv.InvoiceId)-6:]
		}
		for i := range inv.LineItems {
			inv.LineItems[i].LineItemId = s.nextId()
		}
		inv.Status = string(models.InvoiceStatusDraft)
		inv.CustomerName = customer.ContactName
		inv.CurrencyCode = customer.CurrencyCode
		if inv.Date == "" {
			inv.Date = today()
		}
		if inv.DueDate == "" {
			inv.DueDate = inv.Date
		}
		if inv.DiscountType == "" {
			inv.DiscountType = models.DiscountTypeEntityLevel
		}
		if inv.BillingAddress.IsZero() {
			inv.BillingAddress = customer.BillingAddress.AddressSnapshot
		}
		inv.SubTotal, _, inv.Total = computeTotals(inv.LineItems, inv.DiscountType, inv.Discount, inv.ShippingCharge, inv.Adjustment)
		inv.Balance = inv.Total
		inv.CreatedTime = now()
		inv.LastModifiedTime = inv.CreatedTime
		s.invoices[inv.InvoiceId] = inv

		respond(c, http.StatusCreated, "The invoice has been created.", "invoice", inv)
	}
}

func (s *Server) ListInvoicesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()

		rows := []models.ListInvoice{}
		for _, id := range sortedKeys(s.invoices) {
			inv := s.invoices[id]
			if st := c.Query("status"); st != "" && inv.Status != st {
				continue
			}
			if cid := c.Query("customer_id"); cid != "" && inv.CustomerId != cid {
				continue
			}
			if !matches(inv.InvoiceNumber, c.Query("invoice_number")) ||
				!matches(inv.InvoiceNumber+" "+inv.ReferenceNumber+" "+inv.CustomerName, c.Query("search_text")) {
				continue
			}
			rows = append(rows, models.ListInvoice{
				InvoiceId:        inv.InvoiceId,
				InvoiceNumber:    inv.InvoiceNumber,
				CustomerId:       inv.CustomerId,
				CustomerName:     inv.CustomerName,
				ReferenceNumber:  inv.ReferenceNumber,
				Status:           inv.Status,
				Date:             inv.Date,
				DueDate:          inv.DueDate,
				CurrencyCode:     inv.CurrencyCode,
				Total:            inv.Total,
				Balance:          inv.Balance,
				CreatedTime:      inv.CreatedTime,
				LastModifiedTime: inv.LastModifiedTime,
				Extensions:       inv.Extensions.CustomFields(),
			})
		}
		c.JSON(http.StatusOK, gin.H{
			"code":         0,
			"message":      "success",
			"invoices":     rows,
			"page_context": pageContext(c, len(rows)),
		})
	}
}

func (s *Server) GetInvoiceHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		inv, ok := s.invoices[c.Param("id")]
		s.mu.Unlock()
		if !ok {
			abortWithError(c, http.StatusNotFound, codeNotFound, "Invoice does not exist.")
			return
		}
		respond(c, http.StatusOK, "success", "invoice", inv)
	}
}
