package transform

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/saturnines/lakehouse-sdk/pkg/pagination"
)

// Field selects one value by dotted path and optionally transforms it.
type Field struct {
	Path      string
	Transform Transformer
}

// Projection keeps a subset of fields of each record.
type Projection struct {
	Fields []Field
}

// ParseProjection reads a comma separated field list. Each entry is a
// dotted path followed by zero or more ":transform" steps, e.g.
// "job_id,status:upper,start_timestamp:date=DateTime". An empty expression
// yields a nil projection, which keeps records unchanged.
func ParseProjection(expr string, registry *Registry) (*Projection, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, nil
	}
	if registry == nil {
		registry = DefaultRegistry
	}

	p := &Projection{}
	for _, entry := range strings.Split(expr, ",") {
		parts := strings.Split(strings.TrimSpace(entry), ":")
		path := strings.TrimSpace(parts[0])
		if path == "" {
			return nil, fmt.Errorf("empty field in %q", expr)
		}

		f := Field{Path: path}
		if steps := parts[1:]; len(steps) > 0 {
			chain := make([]Transformer, 0, len(steps))
			for _, step := range steps {
				t, err := registry.Parse(step)
				if err != nil {
					return nil, fmt.Errorf("field %s: %w", path, err)
				}
				chain = append(chain, t)
			}
			if len(chain) == 1 {
				f.Transform = chain[0]
			} else {
				f.Transform = NewChainTransform(chain...)
			}
		}
		p.Fields = append(p.Fields, f)
	}
	return p, nil
}

// Apply projects record. Missing fields come out as nil.
func (p *Projection) Apply(record map[string]interface{}) (map[string]interface{}, error) {
	if p == nil {
		return record, nil
	}
	out := make(map[string]interface{}, len(p.Fields))
	for _, f := range p.Fields {
		v, _ := pagination.Lookup(record, f.Path)
		if f.Transform != nil {
			tv, err := f.Transform.Transform(v)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", f.Path, err)
			}
			v = tv
		}
		out[f.Path] = v
	}
	return out, nil
}

// ToMap converts a typed resource into its JSON object form.
func ToMap(v interface{}) (map[string]interface{}, error) {
	if m, ok := v.(map[string]interface{}); ok {
		return m, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%T is not a JSON object: %w", v, err)
	}
	return m, nil
}
