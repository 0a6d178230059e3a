package siteconfig

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"
)

// Format names a serialization of SiteConfig.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatJS   Format = "js" // ES module: export default { ... };
)

// Formats lists every supported format.
var Formats = []Format{FormatJSON, FormatYAML, FormatJS}

// ParseFormat resolves a format name ("json", "yaml", "yml", "js").
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "js", "mjs", "javascript":
		return FormatJS, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnsupportedFormat, path)
	}
	return ParseFormat(ext)
}

// ContentType returns the MIME type used when serving the format.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json; charset=utf-8"
	case FormatYAML:
		return "application/yaml; charset=utf-8"
	case FormatJS:
		return "text/javascript; charset=utf-8"
	}
	return "application/octet-stream"
}

// Decode reads a single record in the given format. Unknown keys and
// trailing documents are rejected. The result is not validated.
func Decode(r io.Reader, f Format) (SiteConfig, error) {
	switch f {
	case FormatJSON:
		return decodeJSON(r)
	case FormatYAML:
		return decodeYAML(r)
	case FormatJS:
		src, err := io.ReadAll(r)
		if err != nil {
			return SiteConfig{}, err
		}
		obj, err := jsModuleObject(src)
		if err != nil {
			return SiteConfig{}, fmt.Errorf("parse js module: %w", err)
		}
		return decodeYAML(bytes.NewReader(obj))
	}
	return SiteConfig{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
}

// decodeJSON checks keys before decoding: encoding/json matches field names
// case-insensitively, and config keys must match exactly.
func decodeJSON(r io.Reader) (SiteConfig, error) {
	var raw json.RawMessage
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return SiteConfig{}, fmt.Errorf("decode json: %w", err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return SiteConfig{}, errors.New("decode json: trailing content after config object")
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return SiteConfig{}, fmt.Errorf("decode json: %w", err)
	}
	if err := checkKeys(mapKeys(top), siteKeys, ""); err != nil {
		return SiteConfig{}, err
	}
	if nav, ok := top["navigation"]; ok {
		var items []map[string]json.RawMessage
		if err := json.Unmarshal(nav, &items); err != nil {
			return SiteConfig{}, fmt.Errorf("decode json: navigation: %w", err)
		}
		for i, item := range items {
			if err := checkKeys(mapKeys(item), navKeys, fmt.Sprintf("navigation[%d].", i)); err != nil {
				return SiteConfig{}, err
			}
		}
	}

	var cfg SiteConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("decode json: %w", err)
	}
	return cfg, nil
}

func mapKeys(m map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// decodeYAML checks the mapping keys of the parsed node tree, then decodes it.
func decodeYAML(r io.Reader) (SiteConfig, error) {
	var doc yaml.Node
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return SiteConfig{}, nil
		}
		return SiteConfig{}, fmt.Errorf("decode yaml: %w", err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return SiteConfig{}, errors.New("decode yaml: multiple documents or trailing content")
	}

	if len(doc.Content) == 1 && doc.Content[0].Kind == yaml.MappingNode {
		root := doc.Content[0]
		if err := checkKeys(nodeKeys(root), siteKeys, ""); err != nil {
			return SiteConfig{}, err
		}
		for i := 0; i+1 < len(root.Content); i += 2 {
			if root.Content[i].Value != "navigation" || root.Content[i+1].Kind != yaml.SequenceNode {
				continue
			}
			for j, item := range root.Content[i+1].Content {
				if item.Kind != yaml.MappingNode {
					continue
				}
				if err := checkKeys(nodeKeys(item), navKeys, fmt.Sprintf("navigation[%d].", j)); err != nil {
					return SiteConfig{}, err
				}
			}
		}
	}

	var cfg SiteConfig
	if err := doc.Decode(&cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("decode yaml: %w", err)
	}
	return cfg, nil
}

func nodeKeys(m *yaml.Node) []string {
	var keys []string
	for i := 0; i+1 < len(m.Content); i += 2 {
		keys = append(keys, m.Content[i].Value)
	}
	return keys
}

var (
	siteKeys = fieldKeys(reflect.TypeOf(SiteConfig{}))
	navKeys  = fieldKeys(reflect.TypeOf(NavItem{}))
)

// fieldKeys collects the json tag names of a struct. The yaml tags carry the
// same names.
func fieldKeys(t reflect.Type) map[string]struct{} {
	keys := make(map[string]struct{}, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		keys[name] = struct{}{}
	}
	return keys
}

func checkKeys(keys []string, known map[string]struct{}, prefix string) error {
	for _, k := range keys {
		if _, ok := known[k]; !ok {
			return fmt.Errorf("%w: %s%s", ErrUnknownField, prefix, k)
		}
	}
	return nil
}

// Encode writes the record in the given format.
func Encode(w io.Writer, cfg SiteConfig, f Format) error {
	switch f {
	case FormatJSON:
		return encodeJSON(w, cfg)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJS:
		var buf bytes.Buffer
		if err := encodeJSON(&buf, cfg); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "export default %s;\n", bytes.TrimSpace(buf.Bytes()))
		return err
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
}

func encodeJSON(w io.Writer, cfg SiteConfig) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// Marshal encodes the record into a byte slice.
func Marshal(cfg SiteConfig, f Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, cfg, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile atomically replaces path with the encoded record.
func WriteFile(path string, cfg SiteConfig, f Format) error {
	pendingFile, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("create pending file: %w", err)
	}
	defer pendingFile.Cleanup()

	if err := Encode(pendingFile, cfg, f); err != nil {
		return err
	}
	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
