// Command validate-content loads every configured language catalog and
// reports all content defects. It is the gate of the authoring pipeline.
//
// Usage:
//
//	validate-content [-dir ./content] [-langs es,ja]
//
// Flags override CONTENT_DIR and CONTENT_LANGS.
// Exit codes: 0 = all catalogs valid, 1 = defects found or load error.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/rsimmons/yukawa/internal/app"
	"github.com/rsimmons/yukawa/internal/catalog"
	"github.com/rsimmons/yukawa/internal/config"
	"github.com/rsimmons/yukawa/internal/domain"
)

func main() {
	dir := flag.String("dir", "", "content directory (default from CONTENT_DIR)")
	langs := flag.String("langs", "", "comma-separated languages (default from CONTENT_LANGS)")
	flag.Parse()

	var cfg config.ContentConfig
	if err := config.LoadSection(&cfg); err != nil {
		log.Fatalf("read content config: %v", err)
	}
	if *dir != "" {
		cfg.Dir = *dir
	}
	if *langs != "" {
		cfg.LangsRaw = *langs
	}

	logger := app.NewLogger(config.LogConfig{Level: "info", Format: "text"})

	failed := 0
	for _, lang := range config.ParseList(cfg.LangsRaw) {
		c, err := catalog.LoadLang(cfg.Dir, lang)
		if err != nil {
			failed++
			report(lang, err)
			continue
		}
		st := c.Stats()
		logger.Info("catalog ok",
			slog.String("lang", lang),
			slog.Int("atoms", st.Atoms),
			slog.Int("templates", st.Templates),
			slog.Int("pools", st.Pools),
			slog.Int("pool_items", st.PoolItems),
			slog.Int("intro_steps", st.IntroSteps),
		)
	}

	if failed > 0 {
		logger.Error("content validation failed", slog.Int("languages", failed))
		os.Exit(1)
	}
}

func report(lang string, err error) {
	var defect *domain.ContentDefectError
	if !errors.As(err, &defect) {
		fmt.Fprintf(os.Stderr, "[%s] %v\n", lang, err)
		return
	}
	for _, p := range defect.Problems {
		fmt.Fprintf(os.Stderr, "[%s] %s: %s\n", p.Lang, p.Where, p.Reason)
	}
}
