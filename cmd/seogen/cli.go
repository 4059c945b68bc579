package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/seogen"
	seohttp "github.com/fwojciec/seogen/http"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Config   seogen.Config
	Logger   *slog.Logger
	Tables   seogen.TableService
	Ingester seogen.Ingester
	Pages    seogen.PageResolver
	Index    seogen.IndexPublisher
	NewStore func(dir string) seogen.PageStore
	Server   *seohttp.Server
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB      string `name:"db" env:"SEOGEN_DB" help:"SQLite database path"`
	Config  string `name:"config" env:"SEOGEN_CONFIG" help:"YAML configuration file"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	Import ImportCmd `cmd:"" help:"Import a CSV content table"`
	Tables TablesCmd `cmd:"" help:"List imported tables"`
	Delete DeleteCmd `cmd:"" help:"Delete an imported table"`
	List   ListCmd   `cmd:"" help:"List page URLs of the latest table"`
	Show   ShowCmd   `cmd:"" help:"Print the generated bundle for a page"`
	Export ExportCmd `cmd:"" help:"Write every page and a sitemap to a directory"`
	Serve  ServeCmd  `cmd:"" help:"Serve generated pages over HTTP"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	File string `arg:"" type:"existingfile" help:"CSV file with title, description and content columns"`
	Name string `short:"n" help:"Table name (defaults to the file name)"`
}

// TablesCmd is the "tables" subcommand.
type TablesCmd struct{}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Table ID (see 'seogen tables')"`
	Force bool   `help:"Confirm deletion"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	Slug string `arg:"" help:"Page slug"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Dir         string `arg:"" help:"Output directory"`
	Concurrency int    `short:"c" default:"10" help:"Concurrent page generation limit"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr        string        `default:":3000" env:"SEOGEN_ADDR" help:"Listen address"`
	RedisURL    string        `name:"redis-url" env:"SEOGEN_REDIS_URL" help:"Redis URL for a shared page cache"`
	UploadEvery time.Duration `name:"upload-every" default:"10s" help:"Minimum interval between uploads per client (0 disables)"`
}
