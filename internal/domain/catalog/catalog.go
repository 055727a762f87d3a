package catalog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var (
	ErrMalformedCatalog = errors.New("malformed catalog")
)

// Entry es un servicio ofrecido por la clínica (consulta, vacuna, etc.).
type Entry struct {
	Key   string
	Name  string
	Price int64 // unidades enteras de moneda
}

// Catalog es inmutable una vez construido; se comparte entre requests sin locks.
type Catalog struct {
	byKey map[string]Entry
	order []string
}

// New construye un catálogo validando keys únicas y precios no negativos.
func New(entries []Entry) (*Catalog, error) {
	c := &Catalog{
		byKey: make(map[string]Entry, len(entries)),
		order: make([]string, 0, len(entries)),
	}
	for i, e := range entries {
		e.Key = strings.TrimSpace(e.Key)
		e.Name = strings.TrimSpace(e.Name)
		if err := c.add(e); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrMalformedCatalog, i+1, err)
		}
	}
	return c, nil
}

// Parse lee líneas "key,name,price" (sin header, sin escapes).
// Cualquier línea inválida invalida la carga completa. Líneas en blanco se ignoran.
func Parse(r io.Reader) (*Catalog, error) {
	c := &Catalog{byKey: map[string]Entry{}}

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		raw := strings.TrimSpace(sc.Text())
		if raw == "" {
			continue
		}

		e, err := parseLine(raw)
		if err == nil {
			err = c.add(e)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedCatalog, line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return c, nil
}

func parseLine(raw string) (Entry, error) {
	fields := strings.Split(raw, ",")
	if len(fields) != 3 {
		return Entry{}, fmt.Errorf("expected 3 fields, got %d", len(fields))
	}

	price, err := strconv.ParseInt(strings.TrimSpace(fields[2]), 10, 64)
	if err != nil {
		return Entry{}, fmt.Errorf("invalid price %q", strings.TrimSpace(fields[2]))
	}

	return Entry{
		Key:   strings.TrimSpace(fields[0]),
		Name:  strings.TrimSpace(fields[1]),
		Price: price,
	}, nil
}

func (c *Catalog) add(e Entry) error {
	if e.Key == "" {
		return errors.New("empty key")
	}
	if e.Name == "" {
		return errors.New("empty name")
	}
	if e.Price < 0 {
		return fmt.Errorf("negative price %d", e.Price)
	}
	// los nombres terminan en reportes tabulados; un tab o salto de línea rompe las columnas
	if strings.ContainsAny(e.Key, "\t\r\n") || strings.ContainsAny(e.Name, "\t\r\n") {
		return fmt.Errorf("control character in %q", e.Key)
	}
	if _, dup := c.byKey[e.Key]; dup {
		return fmt.Errorf("duplicate key %q", e.Key)
	}
	c.byKey[e.Key] = e
	c.order = append(c.order, e.Key)
	return nil
}

// Lookup devuelve el servicio para key, o false si no existe.
func (c *Catalog) Lookup(key string) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	e, ok := c.byKey[strings.TrimSpace(key)]
	return e, ok
}

// Entries devuelve los servicios en el orden de carga.
func (c *Catalog) Entries() []Entry {
	if c == nil {
		return nil
	}
	out := make([]Entry, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, c.byKey[k])
	}
	return out
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}
