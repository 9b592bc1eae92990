package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"plume/internal/cache"
	"plume/internal/comments"
	"plume/internal/config"
	"plume/internal/markdown"
	"plume/internal/render"
	"plume/internal/session"
	"plume/internal/source"
	"plume/internal/ssh"
	"plume/internal/theme"
	"plume/internal/ui"
)

func main() {
	cfg := config.Default()
	if _, err := config.LoadFile(&cfg); err != nil {
		fmt.Fprintln(os.Stderr, "error loading config:", err)
		os.Exit(1)
	}

	site := flag.String("site", cfg.Site, "blog base URL or local directory")
	serve := flag.Bool("serve", cfg.Serve, "run in SSH server mode")
	listen := flag.String("listen", cfg.Listen, "listen address for --serve (e.g. :2222)")
	debounceMS := flag.Int("debounce", cfg.DebounceMS, "search debounce window in ms")
	noCache := flag.Bool("no-cache", cfg.NoCache, "disable the offline cache")
	flag.Parse()

	cfg.Site = *site
	cfg.Serve = *serve
	cfg.Listen = *listen
	cfg.DebounceMS = *debounceMS
	cfg.NoCache = *noCache

	// Positional forms: `plume <url-or-directory>` opens the reader,
	// `plume read <file>` renders one post to stdout (site from config/flag).
	var readFile string
	switch {
	case flag.NArg() > 0 && flag.Arg(0) == "read":
		if flag.NArg() < 2 {
			fmt.Fprintln(os.Stderr, "usage: plume read <file>")
			os.Exit(2)
		}
		readFile = flag.Arg(1)
	case flag.NArg() > 0:
		cfg.Site = flag.Arg(0)
	}
	if cfg.Site == "" {
		fmt.Fprintln(os.Stderr, "usage: plume [flags] <url-or-directory>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	// Normalize directory sites so the watcher and the cache key stay stable
	// across invocations from different working directories.
	if !strings.HasPrefix(cfg.Site, "http://") && !strings.HasPrefix(cfg.Site, "https://") {
		cfg.Site = config.ExpandHome(cfg.Site)
		if abs, err := filepath.Abs(cfg.Site); err == nil {
			cfg.Site = abs
		}
	}

	src, err := source.Detect(cfg.Site)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	var db *cache.DB
	if !cfg.NoCache {
		dataDir := config.DataDir()
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			fmt.Fprintln(os.Stderr, "error creating data dir:", err)
			os.Exit(1)
		}
		db, err = cache.Open(filepath.Join(dataDir, "cache.db"))
		if err != nil {
			// The cache is an optimization; run without it rather than die.
			fmt.Fprintln(os.Stderr, "warning: offline cache disabled:", err)
			db = nil
		}
	}
	defer func() {
		if db != nil {
			if err := db.Close(); err != nil {
				fmt.Fprintln(os.Stderr, "close cache:", err)
			}
		}
	}()

	switch {
	case readFile != "":
		runRead(src, db, readFile)
	case cfg.Serve:
		runServe(cfg, src, db)
	default:
		runLocal(cfg, src, db)
	}
}

// runRead prints one rendered post to stdout, serving the cached copy when
// the source is unreachable.
func runRead(src source.Source, db *cache.DB, file string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var body string
	raw, err := src.Document(ctx, file)
	if err != nil {
		ok := false
		if db != nil {
			body, ok, _ = db.GetDocument(src.Location(), file)
		}
		if !ok {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
	} else {
		body = string(raw)
		if db != nil {
			_ = db.PutDocument(src.Location(), file, body)
		}
	}

	mode := theme.Light
	if m, ok := session.NewStore(config.DataDir()).ThemePreference(); ok {
		mode = m
	} else if theme.SystemDark() {
		mode = theme.Dark
	}

	doc := markdown.ParseFrontMatter(body)
	fmt.Println(render.Markdown(doc.Body, mode, 80))
}

func runLocal(cfg config.Config, src source.Source, db *cache.DB) {
	store := session.NewStore(config.DataDir())
	widget := comments.New(comments.Config{
		Endpoint: cfg.CommentsAPI,
		Repo:     cfg.CommentsRepo,
		Mapping:  cfg.CommentsMapping,
		Lang:     cfg.CommentsLang,
	})

	a := ui.New(cfg, src, db, store, widget, theme.SystemDark)
	p := tea.NewProgram(a, tea.WithAltScreen())
	a.SetProgram(p)
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func runServe(cfg config.Config, src source.Source, db *cache.DB) {
	s, err := ssh.New(cfg, src, db)
	if err != nil {
		log.Fatal("create server", "err", err)
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		log.Info("shutting down")
		if err := s.Close(); err != nil {
			log.Error("close server", "err", err)
		}
	}()

	log.Info("serving blog over ssh", "site", src.Location(), "addr", cfg.Listen)
	if err := s.ListenAndServe(); err != nil {
		log.Fatal("serve", "err", err)
	}
}
