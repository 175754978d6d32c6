// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/conceptmap"
	"github.com/poiesic/conceptmap/ai"
	"github.com/poiesic/conceptmap/core"
	"github.com/poiesic/conceptmap/graph"
	"github.com/poiesic/conceptmap/query"
	"github.com/poiesic/conceptmap/reembed"
	"github.com/poiesic/conceptmap/server"
)

func main() {
	app := &cli.App{
		Name:  "conceptmap",
		Usage: "Bipartite knowledge graph over concepts and blog posts",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Serve the graph and search HTTP API",
				Action: serveCommand,
				Flags: append(commonFlags(),
					&cli.StringFlag{
						Name:  "addr",
						Usage: "HTTP listen address",
						Value: ":8080",
					},
					&cli.StringFlag{
						Name:  "root-variant",
						Usage: "Root graph shape (concepts or full)",
						Value: "concepts",
					},
				),
			},
			{
				Name:   "reembed",
				Usage:  "Regenerate embeddings for stored blog posts",
				Action: reembedCommand,
				Flags: append(commonFlags(),
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Reembed posts that already have a vector",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of posts to embed per API call",
						Value: 32,
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Number of concurrent batches",
						Value: 2,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				),
			},
			{
				Name:      "search",
				Usage:     "Search blog posts by meaning",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags:     commonFlags(),
			},
			{
				Name:      "graph",
				Usage:     "Print a graph view as JSON",
				ArgsUsage: "[concept id or name]",
				Action:    graphCommand,
				Flags: append(commonFlags(),
					&cli.StringFlag{
						Name:  "root-variant",
						Usage: "Root graph shape (concepts or full)",
						Value: "concepts",
					},
				),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB database directory",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "embeddinggemma",
		},
	}
}

func openDatabase(c *cli.Context) (*conceptmap.Database, error) {
	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	db, err := conceptmap.NewDatabase(c.String("db"), conceptmap.WithAIConfig(aiConfig))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func serveCommand(c *cli.Context) error {
	variant, err := graph.ParseRootVariant(c.String("root-variant"))
	if err != nil {
		return err
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	service, err := db.NewQueryService(query.WithRootVariant(variant))
	if err != nil {
		return fmt.Errorf("failed to create query service: %w", err)
	}

	srv, err := server.NewServer(service, server.WithAddr(c.String("addr")))
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-stop:
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-errCh
	}
}

func reembedCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	reembedder, err := db.NewReembedder(
		reembed.WithForce(c.Bool("force")),
		reembed.WithBatchSize(c.Int("batch-size")),
		reembed.WithPoolSize(c.Int("pool-size")),
		reembed.WithRetry(c.Int("max-retries"), c.Duration("retry-delay")),
		reembed.WithProgressWriter(os.Stderr),
	)
	if err != nil {
		return fmt.Errorf("failed to create reembedder: %w", err)
	}
	defer reembedder.Release()

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", c.String("embedding-host"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", c.String("embedding-model"))
	fmt.Fprintln(os.Stderr)

	if err := reembedder.Run(c.Context); err != nil {
		return fmt.Errorf("reembedding failed: %w", err)
	}
	return nil
}

func searchCommand(c *cli.Context) error {
	queryText := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if queryText == "" {
		return fmt.Errorf("query is required")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	searcher, err := db.NewSearcher()
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}

	resp, err := searcher.Search(c.Context, queryText)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(resp.Results) == 0 {
		fmt.Println("No results.")
		return nil
	}

	for i, hit := range resp.Results {
		fmt.Printf("%2d. [%.3f] %s (%d)\n    %s\n", i+1, hit.Score, hit.Title, hit.Id, hit.Snippet)
	}
	return nil
}

func graphCommand(c *cli.Context) error {
	variant, err := graph.ParseRootVariant(c.String("root-variant"))
	if err != nil {
		return err
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	service, err := db.NewQueryService(query.WithRootVariant(variant))
	if err != nil {
		return fmt.Errorf("failed to create query service: %w", err)
	}

	var view *core.Graph
	if arg := c.Args().First(); arg != "" {
		id, err := resolveConcept(c.Context, db, arg)
		if err != nil {
			return err
		}
		view, err = service.ConceptGraph(c.Context, id)
		if err != nil {
			return fmt.Errorf("failed to assemble graph: %w", err)
		}
	} else {
		view, err = service.RootGraph(c.Context)
		if err != nil {
			return fmt.Errorf("failed to assemble graph: %w", err)
		}
	}

	out, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// resolveConcept accepts either a numeric concept id or a concept name.
func resolveConcept(ctx context.Context, db *conceptmap.Database, arg string) (core.ID, error) {
	if id, err := strconv.ParseUint(arg, 10, 64); err == nil {
		return core.ID(id), nil
	}

	concept, err := db.ConceptRepository().FindConceptByName(ctx, arg)
	if err != nil {
		return 0, fmt.Errorf("no concept named %q: %w", arg, err)
	}
	return concept.Id, nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
