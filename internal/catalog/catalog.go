// Package catalog provides the programs and exercises a workout plan is
// built from.
package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lowaak/flowlift/internal/workout"
)

//go:embed programs.yaml
var builtinPrograms []byte

// Program is a named, ordered list of exercises.
type Program struct {
	ID          string                       `yaml:"id" json:"id"`
	Name        string                       `yaml:"name" json:"name"`
	Description string                       `yaml:"description" json:"description"`
	Exercises   []workout.ExerciseDescriptor `yaml:"exercises" json:"exercises"`
}

// Ref converts the program into the shape stored in snapshots.
func (p Program) Ref() *workout.ProgramRef {
	return &workout.ProgramRef{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Exercises:   append([]workout.ExerciseDescriptor(nil), p.Exercises...),
	}
}

// Catalog is an immutable, ordered set of programs.
type Catalog struct {
	programs []Program
	byID     map[string]int
}

type catalogFile struct {
	Programs []Program `yaml:"programs"`
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := Parse(builtinPrograms)
	if err != nil {
		panic(fmt.Sprintf("catalog: built-in programs are invalid: %v", err))
	}
	return c
}

// LoadFile reads a catalog from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if len(f.Programs) == 0 {
		return nil, fmt.Errorf("catalog has no programs")
	}

	c := &Catalog{byID: make(map[string]int, len(f.Programs))}
	for i, p := range f.Programs {
		if p.ID == "" {
			return nil, fmt.Errorf("program %d has no id", i)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate program id %q", p.ID)
		}
		for _, ex := range p.Exercises {
			if err := ex.Validate(); err != nil {
				return nil, fmt.Errorf("program %q: %w", p.ID, err)
			}
		}
		c.byID[p.ID] = i
		c.programs = append(c.programs, p)
	}
	return c, nil
}

// All returns the programs in catalog order.
func (c *Catalog) All() []Program {
	return append([]Program(nil), c.programs...)
}

func (c *Catalog) Find(id string) (Program, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Program{}, false
	}
	return c.programs[i], true
}

// Select returns the programs with the given ids in catalog order. Unknown
// ids are skipped.
func (c *Catalog) Select(ids []string) []Program {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []Program
	for _, p := range c.programs {
		if want[p.ID] {
			out = append(out, p)
		}
	}
	return out
}
