package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"

	"github.com/fwojciec/formulary"
)

// Storage backends.
const (
	StoreSQLite = "sqlite"
	StoreFS     = "fs"
	StoreBadger = "badger"
)

// ErrReported is returned by commands that have already told the user what
// went wrong. The program exits non-zero without printing it.
var ErrReported = errors.New("error already reported")

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Catalog   formulary.Catalog
	Bookmarks formulary.BookmarkService
	Explainer formulary.Explainer
	Tokens    formulary.TokenCounter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Dir      string `env:"FORMULARY_DIR" type:"path" help:"Data directory (default ~/.formulary)"`
	Store    string `env:"FORMULARY_STORE" enum:"sqlite,fs,badger" default:"sqlite" help:"Bookmark storage backend (sqlite, fs, badger)"`
	LogLevel string `env:"FORMULARY_LOG_LEVEL" default:"warn" help:"Log level (debug, info, warn, error)"`
	APIKey   string `name:"api-key" env:"GEMINI_API_KEY" help:"Gemini API key for formula explanations"`

	Search     SearchCmd     `cmd:"" help:"Search functions by name, description or tag"`
	Show       ShowCmd       `cmd:"" help:"Show a function in detail"`
	Categories CategoriesCmd `cmd:"" help:"List function categories"`
	Guides     GuidesCmd     `cmd:"" help:"List learning guides"`
	Guide      GuideCmd      `cmd:"" help:"Read a learning guide"`
	Bookmark   BookmarkCmd   `cmd:"" help:"Toggle a function bookmark"`
	Bookmarks  BookmarksCmd  `cmd:"" help:"List bookmarked functions"`
	Explain    ExplainCmd    `cmd:"" help:"Explain a formula with AI"`
	Open       OpenCmd       `cmd:"" help:"Open a location such as function/SUM or guide/dynamic-arrays"`
	Serve      ServeCmd      `cmd:"" help:"Serve the JSON API"`
	Browse     BrowseCmd     `cmd:"" help:"Browse the catalog interactively"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query      string `arg:"" optional:"" help:"Search text"`
	Category   string `short:"c" help:"Only functions in this category"`
	Bookmarked bool   `short:"b" help:"Only bookmarked functions"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	Name string `arg:"" help:"Function name"`
}

// CategoriesCmd is the "categories" subcommand.
type CategoriesCmd struct{}

// GuidesCmd is the "guides" subcommand.
type GuidesCmd struct{}

// GuideCmd is the "guide" subcommand.
type GuideCmd struct {
	ID string `arg:"" help:"Guide id"`
}

// BookmarkCmd is the "bookmark" subcommand.
type BookmarkCmd struct {
	Name string `arg:"" help:"Function name"`
}

// BookmarksCmd is the "bookmarks" subcommand.
type BookmarksCmd struct{}

// ExplainCmd is the "explain" subcommand.
type ExplainCmd struct {
	Formula string `arg:"" help:"Formula to explain, e.g. =SUM(A1:A3)"`
	DryRun  bool   `name:"dry-run" help:"Print the prompt and its token count without calling the API"`
}

// OpenCmd is the "open" subcommand.
type OpenCmd struct {
	Fragment string `arg:"" optional:"" help:"Location fragment"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `env:"FORMULARY_ADDR" default:"127.0.0.1:8080" help:"Listen address"`

	// Listener overrides Addr when set.
	Listener net.Listener `kong:"-"`
}

// BrowseCmd is the "browse" subcommand.
type BrowseCmd struct {
	Fragment string `arg:"" optional:"" help:"Initial location fragment"`
}
