package static

import (
	_ "embed"
	"fmt"
	"mime"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed mimetypes.yaml
var mimeTypesYAML []byte

var (
	registerOnce sync.Once
	registerErr  error
)

// parseTypes decodes an extension to content type table.
func parseTypes(doc []byte) (map[string]string, error) {
	types := make(map[string]string)
	if err := yaml.Unmarshal(doc, &types); err != nil {
		return nil, fmt.Errorf("decode mime table: %w", err)
	}
	for ext, typ := range types {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return nil, fmt.Errorf("mime table: extension %q must start with a dot", ext)
		}
		if _, _, err := mime.ParseMediaType(typ); err != nil {
			return nil, fmt.Errorf("mime table: %s: %w", ext, err)
		}
	}
	return types, nil
}

// registerTypes adds the embedded table to the mime package once per process.
func registerTypes() error {
	registerOnce.Do(func() {
		types, err := parseTypes(mimeTypesYAML)
		if err != nil {
			registerErr = err
			return
		}
		for ext, typ := range types {
			if err := mime.AddExtensionType(ext, typ); err != nil {
				registerErr = fmt.Errorf("register %s: %w", ext, err)
				return
			}
		}
	})
	return registerErr
}
