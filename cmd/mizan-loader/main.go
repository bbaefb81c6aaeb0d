// mizan-loader ingests a legislation corpus into the redis full-text
// index from a JSONL file, one document per line.
//
// Usage:
//
//	mizan-loader -file corpus.jsonl -batch-size 100
//
// Env vars:
//
//	REDIS_ADDR     corpus store address (default: localhost:6379)
//	REDIS_PASSWORD corpus store password
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	dbRedis "github.com/mizan-legal/mizan/internal/db/redis"
	"github.com/mizan-legal/mizan/internal/repository/corpus"
)

type config struct {
	file      string
	keyPrefix string
	batchSize int
}

// corpusLine is the JSONL wire shape of one legislation document.
type corpusLine struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Content      string   `json:"content"`
	SourceName   string   `json:"source_name,omitempty"`
	Jurisdiction string   `json:"jurisdiction,omitempty"`
	PublishedAt  string   `json:"published_at,omitempty"` // ISO date
	References   []string `json:"references,omitempty"`
}

func main() {
	cfg := parseFlags()

	ctx, cancel := signal.NotifyContext(
		context.Background(), syscall.SIGTERM, syscall.SIGINT,
	)
	defer cancel()

	if err := run(ctx, cfg); err != nil {
		cancel()
		log.Fatal(err)
	}
}

func parseFlags() config {
	cfg := config{}
	flag.StringVar(&cfg.file, "file", "corpus.jsonl", "JSONL corpus file to ingest")
	flag.StringVar(&cfg.keyPrefix, "key-prefix", "mizan:", "redis key prefix")
	flag.IntVar(&cfg.batchSize, "batch-size", 100, "documents per pipelined write")
	flag.Parse()
	return cfg
}

func run(ctx context.Context, cfg config) error {
	start := time.Now()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    []string{addr},
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer store.Close()

	if err := store.WaitForReady(ctx, 30*time.Second); err != nil {
		return fmt.Errorf("store not ready: %w", err)
	}

	repo := corpus.New(store, cfg.keyPrefix)
	if err := repo.EnsureIndex(ctx); err != nil {
		return fmt.Errorf("ensure index: %w", err)
	}

	f, err := os.Open(cfg.file)
	if err != nil {
		return fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()

	total, skipped, err := ingest(ctx, repo, f, cfg.batchSize)
	if err != nil {
		return err
	}

	log.Printf("ingested %d documents (%d skipped) in %s", total, skipped, time.Since(start).Round(time.Millisecond))
	return nil
}

func ingest(ctx context.Context, repo *corpus.Repo, f *os.File, batchSize int) (total, skipped int, err error) {
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)

	batch := make([]corpus.Entry, 0, batchSize)
	lineNo := 0

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := repo.Store(ctx, batch); err != nil {
			return fmt.Errorf("store batch ending at line %d: %w", lineNo, err)
		}
		total += len(batch)
		batch = batch[:0]
		return nil
	}

	for scanner.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return total, skipped, err
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var doc corpusLine
		if err := json.Unmarshal(line, &doc); err != nil {
			log.Printf("line %d: skipping malformed JSON: %v", lineNo, err)
			skipped++
			continue
		}
		if doc.ID == "" || doc.Title == "" {
			log.Printf("line %d: skipping document without id or title", lineNo)
			skipped++
			continue
		}

		batch = append(batch, toEntry(doc))
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return total, skipped, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return total, skipped, fmt.Errorf("read corpus: %w", err)
	}

	return total, skipped, flush()
}

func toEntry(doc corpusLine) corpus.Entry {
	var published time.Time
	if doc.PublishedAt != "" {
		if t, err := time.Parse("2006-01-02", doc.PublishedAt); err == nil {
			published = t
		}
	}

	jurisdiction := doc.Jurisdiction
	if jurisdiction == "" {
		jurisdiction = "local"
	}

	return corpus.Entry{
		ID:           doc.ID,
		Title:        doc.Title,
		Content:      doc.Content,
		SourceName:   doc.SourceName,
		Jurisdiction: jurisdiction,
		PublishedAt:  published,
		References:   doc.References,
	}
}
