// Package sample serves the built-in sample contracts that can be uploaded
// without a local file.
package sample

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"

	"gopkg.in/yaml.v3"

	"github.com/MrJamesThe3rd/revrec/internal/api"
	"github.com/MrJamesThe3rd/revrec/internal/encoding"
	"github.com/MrJamesThe3rd/revrec/internal/upload"
)

const (
	catalogFile = "catalog.yaml"
	contentType = "text/markdown"
)

var ErrNotFound = errors.New("sample contract not found")

//go:embed catalog.yaml contracts/*.md
var embedded embed.FS

type Contract struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Summary  string `yaml:"description"`
	Value    string `yaml:"value"`
	Duration string `yaml:"duration"`
	Type     string `yaml:"type"`
	File     string `yaml:"file"`
}

func (c Contract) Title() string       { return c.Name }
func (c Contract) FilterValue() string { return c.ID + " " + c.Name }

func (c Contract) Description() string {
	return fmt.Sprintf("%s | %s | %s | %s", c.Summary, c.Value, c.Duration, c.Type)
}

type catalogDoc struct {
	Contracts []Contract `yaml:"contracts"`
}

// Catalog is a set of sample contracts backed by a filesystem holding the
// catalog file and the contract bodies it references.
type Catalog struct {
	fsys      fs.FS
	contracts []Contract
}

// Open loads the catalog from dir, or the embedded one when dir is empty.
func Open(dir string) (*Catalog, error) {
	if dir == "" {
		return Load(embedded)
	}

	return Load(os.DirFS(dir))
}

func Load(fsys fs.FS) (*Catalog, error) {
	data, err := fs.ReadFile(fsys, catalogFile)
	if err != nil {
		return nil, fmt.Errorf("reading sample catalog: %w", err)
	}

	var doc catalogDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing sample catalog: %w", err)
	}

	seen := make(map[string]bool, len(doc.Contracts))

	for i, c := range doc.Contracts {
		if c.ID == "" || c.File == "" {
			return nil, fmt.Errorf("sample catalog entry %d: id and file are required", i)
		}

		if seen[c.ID] {
			return nil, fmt.Errorf("sample catalog: duplicate id %q", c.ID)
		}

		seen[c.ID] = true
	}

	return &Catalog{fsys: fsys, contracts: doc.Contracts}, nil
}

func (c *Catalog) Contracts() []Contract {
	return c.contracts
}

func (c *Catalog) Get(id string) (Contract, error) {
	for _, s := range c.contracts {
		if s.ID == id {
			return s, nil
		}
	}

	return Contract{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// File reads the body of the sample with the given id, converted to UTF-8 and
// wrapped as a markdown upload.
func (c *Catalog) File(id string) (api.File, error) {
	s, err := c.Get(id)
	if err != nil {
		return api.File{}, err
	}

	raw, err := fs.ReadFile(c.fsys, s.File)
	if err != nil {
		return api.File{}, fmt.Errorf("reading sample %s: %w", id, err)
	}

	text, _, err := encoding.ToUTF8(raw)
	if err != nil {
		return api.File{}, fmt.Errorf("decoding sample %s: %w", id, err)
	}

	return upload.FromBytes(path.Base(s.File), contentType, text), nil
}
