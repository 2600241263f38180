package job

import (
	"fmt"
	"sort"
	"sync"

	"github.com/hashicorp/go-multierror"

	hyp3 "github.com/ZachKeskinen/hyp3-sdk"
)

// Rule lists the parameters a job type accepts. Required parameters must
// be present; anything outside Required and Optional is rejected.
type Rule struct {
	Required []string
	Optional []string
}

// Schema maps job types to their parameter rules. It is safe for
// concurrent use. Job types without a registered rule pass validation
// untouched: the schema is advisory for types the SDK does not know.
type Schema struct {
	mu    sync.RWMutex
	rules map[string]Rule
}

// NewSchema creates an empty schema.
func NewSchema() *Schema {
	return &Schema{rules: make(map[string]Rule)}
}

// Register adds or replaces the rule for a job type.
func (s *Schema) Register(jobType string, r Rule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules[jobType] = r
}

// Rule returns the rule for a job type, if one is registered.
func (s *Schema) Rule(jobType string) (Rule, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rules[jobType]
	return r, ok
}

// Validate checks a spec against the schema before any network I/O.
// All problems are reported at once; the returned error wraps
// ErrValidationFailed.
func (s *Schema) Validate(spec Spec) error {
	var errs *multierror.Error

	if spec.JobType == "" {
		errs = multierror.Append(errs, fmt.Errorf("job_type is required"))
	}

	if rule, ok := s.Rule(spec.JobType); ok {
		for _, req := range rule.Required {
			if _, present := spec.Parameters[req]; !present {
				errs = multierror.Append(errs, fmt.Errorf("missing required parameter %q", req))
			}
		}
		allowed := make(map[string]bool, len(rule.Required)+len(rule.Optional))
		for _, name := range rule.Required {
			allowed[name] = true
		}
		for _, name := range rule.Optional {
			allowed[name] = true
		}
		// Sorted for a deterministic error message.
		names := make([]string, 0, len(spec.Parameters))
		for name := range spec.Parameters {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if !allowed[name] {
				errs = multierror.Append(errs, fmt.Errorf("unrecognized parameter %q", name))
			}
		}
	}

	if err := errs.ErrorOrNil(); err != nil {
		return fmt.Errorf("%w: job_type %q: %v", hyp3.ErrValidationFailed, spec.JobType, err)
	}
	return nil
}

// DefaultSchema returns the schema for the job types this SDK knows about.
func DefaultSchema() *Schema {
	s := NewSchema()
	s.Register(TypeAutoRIFT, Rule{
		Required: []string{"granules"},
	})
	s.Register(TypeRTC, Rule{
		Required: []string{"granules"},
		Optional: []string{
			"dem_matching",
			"include_dem",
			"include_inc_map",
			"include_rgb",
			"include_scattering_area",
			"radiometry",
			"resolution",
			"scale",
			"speckle_filter",
		},
	})
	s.Register(TypeInSAR, Rule{
		Required: []string{"granules"},
		Optional: []string{
			"include_look_vectors",
			"include_los_displacement",
			"looks",
		},
	})
	return s
}
