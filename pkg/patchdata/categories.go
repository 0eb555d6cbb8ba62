package patchdata

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Categories maps category names to interval sequences and remembers the
// order in which categories were added. That order is preserved through
// JSON encoding and decoding.
type Categories struct {
	names     []string
	intervals map[string][]Interval
}

// Set stores the intervals for a category. A new name is appended to the
// order; an existing one keeps its position.
func (c *Categories) Set(name string, intervals []Interval) {
	if c.intervals == nil {
		c.intervals = make(map[string][]Interval)
	}
	if _, ok := c.intervals[name]; !ok {
		c.names = append(c.names, name)
	}
	c.intervals[name] = intervals
}

// Get returns the intervals for a category, or nil if it is unknown.
func (c *Categories) Get(name string) []Interval {
	return c.intervals[name]
}

// Has reports whether the category is present.
func (c *Categories) Has(name string) bool {
	_, ok := c.intervals[name]
	return ok
}

// Names returns category names in insertion order.
func (c *Categories) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Len returns the number of categories.
func (c *Categories) Len() int {
	return len(c.names)
}

// MarshalJSON writes the categories as an object with keys in insertion order.
func (c Categories) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range c.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		intervals := c.intervals[name]
		if intervals == nil {
			intervals = []Interval{}
		}
		val, err := json.Marshal(intervals)
		if err != nil {
			return nil, fmt.Errorf("category %s: %w", name, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a categories object, keeping keys in document order.
func (c *Categories) UnmarshalJSON(data []byte) error {
	*c = Categories{}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("categories: expected object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("categories: expected key, got %v", tok)
		}
		var intervals []Interval
		if err := dec.Decode(&intervals); err != nil {
			return fmt.Errorf("category %s: %w", name, err)
		}
		c.Set(name, intervals)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
