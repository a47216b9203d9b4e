package main

import (
	"fmt"
	"io"
	"os"

	"bitbucket.org/mmdatafocus/zohobooks/books"
	"bitbucket.org/mmdatafocus/zohobooks/config"
	"bitbucket.org/mmdatafocus/zohobooks/zohoclient"
	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "zohobooks: %v\n", err)
		os.Exit(1)
	}
}

// session is what every command needs: the services and where to print.
type session struct {
	cfg  config.ZohoConfig
	zoho *books.Zoho
	rdb  *redis.Client
	out  io.Writer
}

func newApp(out io.Writer) *cli.App {
	s := &session{out: out}
	return &cli.App{
		Name:      "zohobooks",
		Usage:     "work with Zoho Books contacts, sales orders and invoices",
		Writer:    out,
		ErrWriter: os.Stderr,
		Before:    s.connect,
		After:     s.close,
		Commands: []*cli.Command{
			contactCommand(s),
			salesOrderCommand(s),
			invoiceCommand(s),
		},
	}
}

// connect reads ZOHO_* from the environment (and .env) and fetches the first token.
func (s *session) connect(c *cli.Context) error {
	cfg, err := config.LoadZohoConfig()
	if err != nil {
		return err
	}
	rdb, locker, err := config.ConnectRedis(c.Context, cfg.RedisAddress)
	if err != nil {
		return err
	}
	var opts []zohoclient.Option
	if rdb != nil {
		opts = append(opts, zohoclient.WithRedis(rdb, locker))
	}
	client, err := zohoclient.FromOAuth(c.Context, cfg, opts...)
	if err != nil {
		if rdb != nil {
			rdb.Close()
		}
		return err
	}
	s.cfg = cfg
	s.rdb = rdb
	s.zoho = books.New(client)
	return nil
}

func (s *session) close(c *cli.Context) error {
	if s.rdb != nil {
		return s.rdb.Close()
	}
	return nil
}
