package main

import (
	"errors"
	"fmt"
	"strings"

	"bitbucket.org/mmdatafocus/zohobooks/books"
	"bitbucket.org/mmdatafocus/zohobooks/models"
	"bitbucket.org/mmdatafocus/zohobooks/reports"
	"bitbucket.org/mmdatafocus/zohobooks/utils"
	"github.com/urfave/cli/v2"
)

var errMissingId = errors.New("missing id argument")

func contactCommand(s *session) *cli.Command {
	return &cli.Command{
		Name:  "contact",
		Usage: "create and list contacts",
		Subcommands: []*cli.Command{
			{
				Name:  "create",
				Usage: "create a customer contact",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "first-name", Required: true},
					&cli.StringFlag{Name: "last-name", Required: true},
					&cli.StringFlag{Name: "name", Usage: "display name, defaults to first and last name"},
					&cli.StringFlag{Name: "company"},
					&cli.StringFlag{Name: "email"},
					&cli.StringFlag{Name: "phone", Usage: "normalized to E.164 using ZOHO_PHONE_REGION"},
					&cli.StringFlag{Name: "credit-limit"},
					&cli.IntFlag{Name: "payment-terms", Usage: "days until payment is due"},
					&cli.BoolFlag{Name: "portal", Usage: "enable the customer portal"},
				},
				Action: func(c *cli.Context) error {
					input := models.CreateContact{
						FirstName:    c.String("first-name"),
						LastName:     c.String("last-name"),
						ContactName:  c.String("name"),
						CompanyName:  c.String("company"),
						Email:        c.String("email"),
						ContactType:  models.ContactTypeCustomer,
						PaymentTerms: utils.NilIfEmpty(c.Int("payment-terms")),
					}
					if c.Bool("portal") {
						input.IsPortalEnabled = utils.NewTrue()
					}
					if limit := c.String("credit-limit"); limit != "" {
						d, err := utils.ParseDecimal(limit)
						if err != nil {
							return fmt.Errorf("credit limit %q: %w", limit, err)
						}
						input.CreditLimit = &d
					}
					if input.ContactName == "" {
						input.ContactName = strings.TrimSpace(input.FirstName + " " + input.LastName)
					}
					if phone := c.String("phone"); phone != "" {
						normalized, err := utils.NormalizePhoneNumber(phone, s.cfg.PhoneRegion)
						if err != nil {
							return fmt.Errorf("phone %q: %w", phone, err)
						}
						input.Phone = normalized
					}
					contact, err := s.zoho.Contact.Create(c.Context, input)
					if err != nil {
						return err
					}
					return utils.MarshalToPrint(s.out, contact)
				},
			},
			{
				Name:  "list",
				Usage: "list contacts",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "search"},
					&cli.StringFlag{Name: "xlsx", Usage: "write the listing to this xlsx file instead of printing it"},
				},
				Action: func(c *cli.Context) error {
					contacts, err := s.zoho.Contact.List(c.Context, &books.ContactFilter{SearchText: c.String("search")})
					if err != nil {
						return err
					}
					if file := c.String("xlsx"); file != "" {
						return reports.ContactSheet(contacts).SaveAs(file)
					}
					return utils.MarshalToPrint(s.out, contacts)
				},
			},
		},
	}
}

func salesOrderCommand(s *session) *cli.Command {
	return &cli.Command{
		Name:    "salesorder",
		Aliases: []string{"so"},
		Usage:   "inspect and change sales orders",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list sales orders",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "status", Usage: "draft, open, invoiced, partially_invoiced, void or overdue"},
					&cli.StringFlag{Name: "customer-id"},
					&cli.StringFlag{Name: "search"},
					&cli.StringFlag{Name: "xlsx", Usage: "write the listing to this xlsx file instead of printing it"},
					&cli.StringSliceFlag{Name: "custom-field", Usage: "cf_ key to add as a column to the xlsx file"},
				},
				Action: func(c *cli.Context) error {
					orders, err := s.zoho.SalesOrder.List(c.Context, &books.SalesOrderFilter{
						Status:     models.SalesOrderStatus(c.String("status")),
						CustomerId: c.String("customer-id"),
						SearchText: c.String("search"),
					})
					if err != nil {
						return err
					}
					if file := c.String("xlsx"); file != "" {
						return reports.SalesOrderSheet(orders, c.StringSlice("custom-field")...).SaveAs(file)
					}
					return utils.MarshalToPrint(s.out, orders)
				},
			},
			{
				Name:      "get",
				Usage:     "print one sales order",
				ArgsUsage: "ID",
				Action: func(c *cli.Context) error {
					id := c.Args().First()
					if id == "" {
						return errMissingId
					}
					so, err := s.zoho.SalesOrder.Get(c.Context, id)
					if err != nil {
						return err
					}
					return utils.MarshalToPrint(s.out, so)
				},
			},
			{
				Name:      "confirm",
				Usage:     "mark a draft sales order as open",
				ArgsUsage: "ID",
				Action: func(c *cli.Context) error {
					id := c.Args().First()
					if id == "" {
						return errMissingId
					}
					return s.zoho.SalesOrder.MarkConfirmed(c.Context, id)
				},
			},
			{
				Name:      "void",
				Usage:     "void a sales order",
				ArgsUsage: "ID",
				Action: func(c *cli.Context) error {
					id := c.Args().First()
					if id == "" {
						return errMissingId
					}
					return s.zoho.SalesOrder.MarkVoid(c.Context, id)
				},
			},
		},
	}
}

func invoiceCommand(s *session) *cli.Command {
	return &cli.Command{
		Name:  "invoice",
		Usage: "inspect invoices",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list invoices",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "status"},
					&cli.StringFlag{Name: "customer-id"},
				},
				Action: func(c *cli.Context) error {
					invoices, err := s.zoho.Invoice.List(c.Context, &books.InvoiceFilter{
						Status:     models.InvoiceStatus(c.String("status")),
						CustomerId: c.String("customer-id"),
					})
					if err != nil {
						return err
					}
					return utils.MarshalToPrint(s.out, invoices)
				},
			},
			{
				Name:      "get",
				Usage:     "print one invoice",
				ArgsUsage: "ID",
				Action: func(c *cli.Context) error {
					id := c.Args().First()
					if id == "" {
						return errMissingId
					}
					inv, err := s.zoho.Invoice.Get(c.Context, id)
					if err != nil {
						return err
					}
					return utils.MarshalToPrint(s.out, inv)
				},
			},
		},
	}
}
