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


package conceptmap

import (
	"log/slog"

	"github.com/poiesic/conceptmap/ai"
	"github.com/poiesic/conceptmap/ai/openai"
	"github.com/poiesic/conceptmap/query"
	"github.com/poiesic/conceptmap/reembed"
	"github.com/poiesic/conceptmap/search"
	"github.com/poiesic/conceptmap/storage"
	"github.com/poiesic/conceptmap/storage/badger"
)

// Database bundles the storage backend, the repositories, and the
// embedding provider behind a single open/close lifecycle.
type Database struct {
	backend     *badger.Backend
	conceptRepo storage.ConceptRepository
	blogRepo    storage.BlogRepository
	embedder    ai.Embedder
	logger      *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig *ai.Config
	inMemory bool
}

// WithAIConfig overrides the embedding provider configuration.
func WithAIConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithInMemory opens the backend without on-disk persistence.
func WithInMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	conceptRepo, err := badger.NewConceptRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	blogRepo, err := badger.NewBlogRepository(backend)
	if err != nil {
		conceptRepo.Close()
		backend.Close()
		return nil, err
	}

	embedder, err := openai.NewEmbedder(options.aiConfig)
	if err != nil {
		blogRepo.Close()
		conceptRepo.Close()
		backend.Close()
		return nil, err
	}

	return &Database{
		backend:     backend,
		conceptRepo: conceptRepo,
		blogRepo:    blogRepo,
		embedder:    embedder,
		logger:      slog.Default(),
	}, nil
}

func (db *Database) Close() error {
	if err := db.blogRepo.Close(); err != nil {
		db.logger.Error("error closing blog repository", "err", err)
		return err
	}
	if err := db.conceptRepo.Close(); err != nil {
		db.logger.Error("error closing concept repository", "err", err)
		return err
	}

	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) ConceptRepository() storage.ConceptRepository {
	return db.conceptRepo
}

func (db *Database) BlogRepository() storage.BlogRepository {
	return db.blogRepo
}

func (db *Database) Embedder() ai.Embedder {
	return db.embedder
}

func (db *Database) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(db.blogRepo, db.embedder, opts...)
}

func (db *Database) NewQueryService(opts ...query.Option) (*query.Service, error) {
	searcher, err := db.NewSearcher()
	if err != nil {
		return nil, err
	}
	return query.NewService(db.conceptRepo, db.blogRepo, searcher, opts...)
}

func (db *Database) NewReembedder(opts ...reembed.Option) (*reembed.Reembedder, error) {
	return reembed.NewReembedder(db.blogRepo, db.embedder, opts...)
}
