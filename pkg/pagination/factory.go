package pagination

import (
	"fmt"
	"sort"
	"sync"

	"github.com/saturnines/lakehouse-sdk/pkg/errors"
)

// Factory holds a registry of CursorExtractor creators.
type Factory struct {
	mu       sync.RWMutex
	registry map[string]Creator
}

// NewFactory returns an empty Factory.
func NewFactory() *Factory {
	return &Factory{
		registry: make(map[string]Creator),
	}
}

// RegisterExtractor adds a new creator.
// It errors if something is already registered under kind.
func (f *Factory) RegisterExtractor(kind string, creator Creator) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.registry[kind]; exists {
		return errors.WrapError(
			fmt.Errorf("extractor %q already registered", kind),
			errors.ErrConfiguration,
			"register extractor",
		)
	}
	f.registry[kind] = creator
	return nil
}

// CreateExtractor looks up and invokes a creator.
// It returns a wrapped error on an unknown kind (href, token, offset) or bad options.
func (f *Factory) CreateExtractor(kind string, opts map[string]interface{}) (CursorExtractor, error) {
	f.mu.RLock()
	creator, ok := f.registry[kind]
	f.mu.RUnlock()
	if !ok {
		return nil, errors.WrapError(
			fmt.Errorf("unsupported pagination kind: %s", kind),
			errors.ErrConfiguration,
			"create extractor",
		)
	}
	ex, err := creator(opts)
	if err != nil {
		return nil, errors.WrapError(
			err,
			errors.ErrConfiguration,
			fmt.Sprintf("creating %q extractor", kind),
		)
	}
	return ex, nil
}

// AvailableExtractors returns a sorted list of registered kinds.
func (f *Factory) AvailableExtractors() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	kinds := make([]string, 0, len(f.registry))
	for kind := range f.registry {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// ValidateOptions checks that opts can build an extractor of the given kind.
func (f *Factory) ValidateOptions(kind string, opts map[string]interface{}) error {
	_, err := f.CreateExtractor(kind, opts)
	return err
}

// DefaultFactory knows the href, token and offset kinds.
var DefaultFactory = NewFactory()

func init() {
	for kind, creator := range DefaultRegistry {
		_ = DefaultFactory.RegisterExtractor(kind, creator)
	}
}
