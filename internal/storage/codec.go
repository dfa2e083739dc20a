// internal/storage/codec.go
package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

// codec translates a whole catalog to and from file bytes.
type codec interface {
	decode(data []byte) (*Catalog, error)
	encode(c *Catalog) ([]byte, error)
}

// codecFor picks a codec from the file extension. JSON is the default.
func codecFor(path string) codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yamlCodec{}
	default:
		return jsonCodec{}
	}
}

// jsonCodec reads a single JSON object keyed by id. Decoding walks the token
// stream so that key order in the file becomes catalog order.
type jsonCodec struct{}

func (jsonCodec) decode(data []byte) (*Catalog, error) {
	c := NewCatalog()
	if len(bytes.TrimSpace(data)) == 0 {
		return c, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("catalog must be a JSON object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read book id: %w", err)
		}
		id, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		var rec Record
		if err := dec.Decode(&rec); err != nil {
			return nil, fmt.Errorf("decode book %s: %w", id, err)
		}
		c.Set(id, rec)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("read catalog end: %w", err)
	}
	return c, nil
}

func (jsonCodec) encode(c *Catalog) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	var err error
	c.Each(func(id string, rec Record) bool {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		var key, value []byte
		if key, err = json.Marshal(id); err != nil {
			return false
		}
		if value, err = json.Marshal(rec); err != nil {
			return false
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("encode catalog: %w", err)
	}
	buf.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("indent catalog: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// yamlCodec stores the catalog as an ordered YAML mapping.
type yamlCodec struct{}

func (yamlCodec) decode(data []byte) (*Catalog, error) {
	c := NewCatalog()
	if len(bytes.TrimSpace(data)) == 0 {
		return c, nil
	}

	var items yaml.MapSlice
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	for _, item := range items {
		id := fmt.Sprint(item.Key)
		raw, err := yaml.Marshal(item.Value)
		if err != nil {
			return nil, fmt.Errorf("decode book %s: %w", id, err)
		}
		var rec Record
		if err := yaml.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("decode book %s: %w", id, err)
		}
		c.Set(id, rec)
	}
	return c, nil
}

func (yamlCodec) encode(c *Catalog) ([]byte, error) {
	items := make(yaml.MapSlice, 0, c.Len())
	c.Each(func(id string, rec Record) bool {
		items = append(items, yaml.MapItem{Key: id, Value: rec})
		return true
	})
	data, err := yaml.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode catalog: %w", err)
	}
	return data, nil
}
