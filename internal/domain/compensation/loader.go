package compensation

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/pathwise/internal/domain/model"
)

//go:embed data/roles.yaml
var embeddedDataset []byte

// dataset mirrors the YAML layout of data/roles.yaml.
type dataset struct {
	FresherRole    string         `koanf:"fresher_role"`
	ITRoles        []string       `koanf:"it_roles"`
	NonITRoles     []string       `koanf:"non_it_roles"`
	Roles          []roleRecord   `koanf:"roles"`
	Courses        []courseRecord `koanf:"courses"`
	GenericCourses []Course       `koanf:"generic_courses"`
}

type roleRecord struct {
	Name        string   `koanf:"name"`
	Entry       *float64 `koanf:"entry"`
	Average     *float64 `koanf:"average"`
	Experienced *float64 `koanf:"experienced"`
	Range       string   `koanf:"range"`
	Source      string   `koanf:"source"`
	Tips        string   `koanf:"tips"`
}

type courseRecord struct {
	Role  string   `koanf:"role"`
	Items []Course `koanf:"items"`
}

// bytesProvider feeds an in-memory document to koanf.
type bytesProvider []byte

func (b bytesProvider) ReadBytes() ([]byte, error) { return b, nil }

func (b bytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("bytes provider does not support Read")
}

type loadOptions struct {
	path string
	raw  []byte
}

// Option configures Load.
type Option func(*loadOptions)

// WithDatasetPath loads the dataset from a YAML file instead of the embedded copy.
func WithDatasetPath(path string) Option {
	return func(o *loadOptions) {
		o.path = strings.TrimSpace(path)
	}
}

// WithDatasetBytes loads the dataset from an in-memory YAML document.
func WithDatasetBytes(b []byte) Option {
	return func(o *loadOptions) {
		o.raw = b
	}
}

// EmbeddedDataset returns a copy of the YAML dataset compiled into the binary.
func EmbeddedDataset() []byte {
	return append([]byte(nil), embeddedDataset...)
}

// Load parses and validates a compensation dataset. Without options the
// embedded dataset is used.
func Load(_ context.Context, opts ...Option) (*Table, error) {
	o := loadOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	k := koanf.New(".")
	var provider koanf.Provider
	switch {
	case o.raw != nil:
		provider = bytesProvider(o.raw)
	case o.path != "":
		provider = file.Provider(o.path)
	default:
		provider = bytesProvider(embeddedDataset)
	}
	if err := k.Load(provider, yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}

	var ds dataset
	if err := k.UnmarshalWithConf("", &ds, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	return build(ds)
}

// build validates ds and turns it into a Table.
func build(ds dataset) (*Table, error) {
	t := &Table{
		profiles: make(map[string]Profile, len(ds.Roles)),
		it:       make(map[string]struct{}, len(ds.ITRoles)),
		nonIT:    make(map[string]struct{}, len(ds.NonITRoles)),
		fresher:  normalize(ds.FresherRole),
		courses:  make(map[string][]Course, len(ds.Courses)),
		generic:  ds.GenericCourses,
	}

	for _, r := range ds.Roles {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: role with empty name", model.ErrInvalidDataset)
		}
		key := normalize(name)
		if _, dup := t.profiles[key]; dup {
			return nil, fmt.Errorf("%w: duplicate role %q", model.ErrInvalidDataset, name)
		}
		p := Profile{
			Role:        name,
			Entry:       r.Entry,
			Average:     r.Average,
			Experienced: r.Experienced,
			Range:       orDefault(r.Range, PlaceholderRange),
			Source:      orDefault(r.Source, PlaceholderSource),
			Tips:        orDefault(r.Tips, PlaceholderTips),
		}
		if err := validateProfile(p); err != nil {
			return nil, err
		}
		t.profiles[key] = p
	}

	for _, role := range ds.ITRoles {
		t.it[normalize(role)] = struct{}{}
	}
	for _, role := range ds.NonITRoles {
		key := normalize(role)
		if _, clash := t.it[key]; clash {
			return nil, fmt.Errorf("%w: role %q is listed as both IT and non-IT", model.ErrInvalidDataset, role)
		}
		t.nonIT[key] = struct{}{}
	}

	// Every selectable role must have a profile.
	selectable := append(append([]string(nil), ds.ITRoles...), ds.NonITRoles...)
	if ds.FresherRole != "" {
		selectable = append(selectable, ds.FresherRole)
	}
	for _, role := range selectable {
		if _, ok := t.profiles[normalize(role)]; !ok {
			return nil, fmt.Errorf("%w: role %q has no compensation profile", model.ErrInvalidDataset, role)
		}
	}

	for _, c := range ds.Courses {
		t.courses[normalize(c.Role)] = c.Items
	}
	return t, nil
}

func validateProfile(p Profile) error {
	figures := []struct {
		name string
		v    *float64
	}{
		{"entry", p.Entry},
		{"average", p.Average},
		{"experienced", p.Experienced},
	}
	for _, f := range figures {
		if f.v != nil && *f.v < 0 {
			return fmt.Errorf("%w: role %q has negative %s", model.ErrInvalidDataset, p.Role, f.name)
		}
	}
	// entry <= average <= experienced for every present pair.
	for i := 0; i < len(figures); i++ {
		for j := i + 1; j < len(figures); j++ {
			lo, hi := figures[i], figures[j]
			if lo.v != nil && hi.v != nil && *lo.v > *hi.v {
				return fmt.Errorf("%w: role %q has %s above %s", model.ErrInvalidDataset, p.Role, lo.name, hi.name)
			}
		}
	}
	return nil
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return def
}
