// Package seed reads unit kind associations from YAML files.
//
// A seed file lists associations whose periods are written as
// "<start>|<end>" in either string form:
//
//	associations:
//	  - id: fy2021-q1
//	    first: FY2021Q1|FY2021Q1
//	    second: 2021-02|2021-04
//	  - first: FY2021|FY2021
//	    second: 2021-02|2022-01
//
// Associations without an id get one derived from their two periods, so the
// same file always loads with the same ids.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/warp/accounting-time/accounting"
)

var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:accounting-time:seed"))

type File struct {
	Associations []Association `yaml:"associations"`
}

type Association struct {
	ID     string `yaml:"id"`
	First  string `yaml:"first"`
	Second string `yaml:"second"`
}

// Load decodes and validates every association in r. An empty document
// yields no associations.
func Load(r io.Reader) ([]accounting.UnitKindAssociation, error) {
	var f File
	if err := yaml.NewDecoder(r).Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode seed file: %w", err)
	}

	associations := make([]accounting.UnitKindAssociation, 0, len(f.Associations))
	for i, a := range f.Associations {
		assoc, err := a.toAssociation()
		if err != nil {
			return nil, fmt.Errorf("association %d (%s): %w", i, a.ID, err)
		}
		associations = append(associations, assoc)
	}
	return associations, nil
}

// LoadFile is Load on the file at path.
func LoadFile(path string) ([]accounting.UnitKindAssociation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func (a Association) toAssociation() (accounting.UnitKindAssociation, error) {
	first, err := accounting.ParseReportingPeriod(a.First)
	if err != nil {
		return accounting.UnitKindAssociation{}, fmt.Errorf("first: %w", err)
	}
	second, err := accounting.ParseReportingPeriod(a.Second)
	if err != nil {
		return accounting.UnitKindAssociation{}, fmt.Errorf("second: %w", err)
	}
	id := a.ID
	if id == "" {
		id = derivedID(first, second)
	}
	return accounting.NewUnitKindAssociation(first, second, id)
}

func derivedID(first, second accounting.ReportingPeriod[accounting.UnitOfTime]) string {
	name := first.SortableString() + "#" + second.SortableString()
	return uuid.NewSHA1(idNamespace, []byte(name)).String()
}

// Apply adds the associations the catalog does not already hold. An
// association is already held when its id is stored; repeats of an id inside
// associations are added once. Unnamed associations are always added.
// Returns the associations added.
func Apply(ctx context.Context, catalog *accounting.Catalog, associations []accounting.UnitKindAssociation) ([]accounting.UnitKindAssociation, error) {
	pending := make([]accounting.UnitKindAssociation, 0, len(associations))
	seen := make(map[string]bool, len(associations))
	for _, a := range associations {
		if a.ID() != "" {
			if seen[a.ID()] {
				continue
			}
			seen[a.ID()] = true

			_, err := catalog.Get(ctx, a.ID())
			if err == nil {
				continue
			}
			if !accounting.IsNotFound(err) {
				return nil, fmt.Errorf("failed to look up association %s: %w", a.ID(), err)
			}
		}
		pending = append(pending, a)
	}
	if len(pending) == 0 {
		return nil, nil
	}
	return catalog.Add(ctx, pending...)
}
