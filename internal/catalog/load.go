package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed data/*.toml
var embedded embed.FS

const fileVersion = 1

type catalogFile struct {
	Version int     `toml:"version"`
	Schema  string  `toml:"schema"`
	Topic   []Topic `toml:"topic"`
}

// Load decodes the embedded catalog for schema.
func Load(schema Schema) (*Catalog, error) {
	if _, ok := ParseSchema(string(schema)); !ok {
		return nil, fmt.Errorf("unknown catalog schema %q", schema)
	}
	f, err := embedded.Open("data/" + string(schema) + ".toml")
	if err != nil {
		return nil, fmt.Errorf("open embedded catalog: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// MustLoad is Load for the embedded catalogs, which are validated by tests.
func MustLoad(schema Schema) *Catalog {
	c, err := Load(schema)
	if err != nil {
		panic(err)
	}
	return c
}

// LoadFile decodes an external catalog file.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a TOML catalog and validates it.
func Decode(r io.Reader) (*Catalog, error) {
	var file catalogFile
	md, err := toml.NewDecoder(r).Decode(&file)
	if err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("decode catalog: unknown keys %s", strings.Join(keys, ", "))
	}
	if file.Version != fileVersion {
		return nil, fmt.Errorf("decode catalog: unsupported version %d", file.Version)
	}
	schema := SchemaRich
	if file.Schema != "" {
		schema = Schema(file.Schema)
	}
	c := &Catalog{schema: schema, topics: file.Topic}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	c.index = make(map[string]int, len(c.topics))
	for i, t := range c.topics {
		c.index[t.ID] = i
	}
	return c, nil
}

// Validate checks topic identity and that every action type belongs to the
// catalog's schema. All problems are reported together.
func (c *Catalog) Validate() error {
	if _, ok := ParseSchema(string(c.schema)); !ok {
		return fmt.Errorf("validate catalog: unknown schema %q", c.schema)
	}
	var errs []error
	seen := make(map[string]bool, len(c.topics))
	for i, t := range c.topics {
		id := strings.TrimSpace(t.ID)
		switch {
		case id == "":
			errs = append(errs, fmt.Errorf("topic %d: empty id", i))
		case id != t.ID:
			errs = append(errs, fmt.Errorf("topic %q: id has surrounding whitespace", t.ID))
		case seen[id]:
			errs = append(errs, fmt.Errorf("topic %q: duplicate id", id))
		}
		seen[id] = true
		if strings.TrimSpace(t.Title) == "" {
			errs = append(errs, fmt.Errorf("topic %q: empty title", t.ID))
		}
		for j, a := range t.Actions {
			if !c.schema.Allows(a.Type) {
				errs = append(errs, fmt.Errorf("topic %q action %d: type %q not allowed in %s schema", t.ID, j, a.Type, c.schema))
			}
			if strings.TrimSpace(a.Label) == "" {
				errs = append(errs, fmt.Errorf("topic %q action %d: empty label", t.ID, j))
			}
			for k, it := range a.Items {
				if strings.TrimSpace(it.Title) == "" {
					errs = append(errs, fmt.Errorf("topic %q action %d item %d: empty title", t.ID, j, k))
				}
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("validate catalog: %w", errors.Join(errs...))
	}
	return nil
}
