package catalogsource

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"vet-clinic-records/internal/domain/catalog"
	"vet-clinic-records/internal/platform/httpclient"
)

// FromFile carga el catálogo desde un archivo "key,name,price" por línea.
func FromFile(path string) (*catalog.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	return catalog.Parse(f)
}

// FromURL descarga el mismo formato desde un endpoint HTTP.
func FromURL(ctx context.Context, c *httpclient.Client, url string) (*catalog.Catalog, error) {
	raw, err := c.Get(ctx, url, map[string]string{"Accept": "text/plain"})
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	return catalog.Parse(bytes.NewReader(raw))
}
