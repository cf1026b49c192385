// Package transform projects and reshapes decoded resources for display.
package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Transformer defines the interface for field transformations
type Transformer interface {
	Transform(value interface{}) (interface{}, error)
}

// TransformCreator creates a transformer from config
type TransformCreator func(config map[string]interface{}) (Transformer, error)

// Registry holds all available transformers
type Registry struct {
	transformers map[string]TransformCreator
	// primary names the config key a short "name=arg" form fills in.
	primary map[string]string
}

// NewRegistry creates a new transformer registry with defaults
func NewRegistry() *Registry {
	r := &Registry{
		transformers: make(map[string]TransformCreator),
		primary:      make(map[string]string),
	}

	r.Register("string", stringTransformCreator)
	r.Register("int", intTransformCreator)
	r.Register("bool", boolTransformCreator)
	r.Register("upper", upperTransformCreator)
	r.Register("lower", lowerTransformCreator)
	r.Register("trim", trimTransformCreator)
	r.RegisterWithArg("date", "output_format", dateTransformCreator)
	r.RegisterWithArg("join", "delimiter", joinTransformCreator)
	r.RegisterWithArg("split", "delimiter", splitTransformCreator)

	return r
}

// Register adds a new transformer type
func (r *Registry) Register(name string, creator TransformCreator) {
	r.transformers[name] = creator
}

// RegisterWithArg adds a transformer whose short form "name=arg" sets key.
func (r *Registry) RegisterWithArg(name, key string, creator TransformCreator) {
	r.transformers[name] = creator
	r.primary[name] = key
}

// Create builds a transformer from config
func (r *Registry) Create(transformType string, config map[string]interface{}) (Transformer, error) {
	creator, ok := r.transformers[transformType]
	if !ok {
		return nil, fmt.Errorf("unknown transform type: %s", transformType)
	}
	return creator(config)
}

// Parse builds a transformer from its short form: "upper" or "date=Date".
func (r *Registry) Parse(short string) (Transformer, error) {
	name, arg, hasArg := strings.Cut(strings.TrimSpace(short), "=")
	var config map[string]interface{}
	if hasArg {
		key, ok := r.primary[name]
		if !ok {
			return nil, fmt.Errorf("transform %s takes no argument", name)
		}
		config = map[string]interface{}{key: arg}
	}
	return r.Create(name, config)
}

// Names lists the registered transformer types.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.transformers))
	for n := range r.transformers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// StringTransform converts values to strings
type StringTransform struct{}

func stringTransformCreator(map[string]interface{}) (Transformer, error) {
	return &StringTransform{}, nil
}

func (t *StringTransform) Transform(value interface{}) (interface{}, error) {
	if value == nil {
		return "", nil
	}
	if f, ok := value.(float64); ok {
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	}
	return fmt.Sprintf("%v", value), nil
}

// IntTransform converts values to integers
type IntTransform struct{}

func intTransformCreator(map[string]interface{}) (Transformer, error) {
	return &IntTransform{}, nil
}

func (t *IntTransform) Transform(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case nil:
		return int64(0), nil
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		return int64(v), nil
	case string:
		return strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	default:
		return nil, fmt.Errorf("cannot convert %T to int", value)
	}
}

// BoolTransform converts values to booleans
type BoolTransform struct{}

func boolTransformCreator(map[string]interface{}) (Transformer, error) {
	return &BoolTransform{}, nil
}

func (t *BoolTransform) Transform(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	case string:
		return strconv.ParseBool(v)
	case float64:
		return v != 0, nil
	default:
		return nil, fmt.Errorf("cannot convert %T to bool", value)
	}
}

// DateTransform reformats timestamps. Numbers are read as Unix seconds;
// the service reports engine creation times that way.
type DateTransform struct {
	InputFormat  string
	OutputFormat string
}

func dateTransformCreator(config map[string]interface{}) (Transformer, error) {
	t := &DateTransform{
		InputFormat:  "RFC3339",
		OutputFormat: "RFC3339",
	}
	if v, ok := config["input_format"].(string); ok && v != "" {
		t.InputFormat = v
	}
	if v, ok := config["output_format"].(string); ok && v != "" {
		t.OutputFormat = v
	}
	return t, nil
}

var namedLayouts = map[string]string{
	"RFC3339":     time.RFC3339,
	"RFC3339Nano": time.RFC3339Nano,
	"DateTime":    time.DateTime,
	"Date":        time.DateOnly,
}

func layout(format string) string {
	if l, ok := namedLayouts[format]; ok {
		return l
	}
	return format
}

func (t *DateTransform) Transform(value interface{}) (interface{}, error) {
	var tm time.Time
	switch v := value.(type) {
	case nil:
		return nil, nil
	case string:
		parsed, err := time.ParseInLocation(layout(t.InputFormat), v, time.UTC)
		if err != nil {
			return nil, err
		}
		tm = parsed
	case float64:
		tm = time.Unix(int64(v), 0).UTC()
	case int64:
		tm = time.Unix(v, 0).UTC()
	default:
		return nil, fmt.Errorf("cannot parse date from %T", value)
	}

	switch t.OutputFormat {
	case "Unix":
		return strconv.FormatInt(tm.Unix(), 10), nil
	case "UnixMilli":
		return strconv.FormatInt(tm.UnixMilli(), 10), nil
	}
	return tm.Format(layout(t.OutputFormat)), nil
}

// SplitTransform splits a string into an array
type SplitTransform struct {
	Delimiter string
}

func splitTransformCreator(config map[string]interface{}) (Transformer, error) {
	t := &SplitTransform{Delimiter: ","}
	if d, ok := config["delimiter"].(string); ok && d != "" {
		t.Delimiter = d
	}
	return t, nil
}

func (t *SplitTransform) Transform(value interface{}) (interface{}, error) {
	str, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("split transform requires string input, got %T", value)
	}
	return strings.Split(str, t.Delimiter), nil
}

// JoinTransform joins an array into a string
type JoinTransform struct {
	Delimiter string
}

func joinTransformCreator(config map[string]interface{}) (Transformer, error) {
	t := &JoinTransform{Delimiter: ","}
	if d, ok := config["delimiter"].(string); ok && d != "" {
		t.Delimiter = d
	}
	return t, nil
}

func (t *JoinTransform) Transform(value interface{}) (interface{}, error) {
	arr, ok := value.([]interface{})
	if !ok {
		return nil, fmt.Errorf("join transform requires array input, got %T", value)
	}
	strs := make([]string, len(arr))
	for i, v := range arr {
		strs[i] = fmt.Sprintf("%v", v)
	}
	return strings.Join(strs, t.Delimiter), nil
}

type stringFunc struct {
	name string
	fn   func(string) string
}

func (t *stringFunc) Transform(value interface{}) (interface{}, error) {
	str, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("%s transform requires string input, got %T", t.name, value)
	}
	return t.fn(str), nil
}

func upperTransformCreator(map[string]interface{}) (Transformer, error) {
	return &stringFunc{name: "upper", fn: strings.ToUpper}, nil
}

func lowerTransformCreator(map[string]interface{}) (Transformer, error) {
	return &stringFunc{name: "lower", fn: strings.ToLower}, nil
}

func trimTransformCreator(map[string]interface{}) (Transformer, error) {
	return &stringFunc{name: "trim", fn: strings.TrimSpace}, nil
}

// ChainTransform applies multiple transforms in sequence
type ChainTransform struct {
	transforms []Transformer
}

// NewChainTransform creates a transform that applies multiple transforms in order
func NewChainTransform(transforms ...Transformer) *ChainTransform {
	return &ChainTransform{transforms: transforms}
}

func (t *ChainTransform) Transform(value interface{}) (interface{}, error) {
	result := value
	for _, transform := range t.transforms {
		var err error
		result, err = transform.Transform(result)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// DefaultRegistry is the global transformer registry
var DefaultRegistry = NewRegistry()
