package data

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/sjwhitworth/golearn/base"
)

// Schema describes which csv columns hold the label, the target and the features.
type Schema struct {
	Label    string   `json:"label"`
	Target   string   `json:"target"`
	Features []string `json:"features"`
}

// LoadCSV loads a labeled data set from a csv file with a header row.
// If no feature columns are given, all columns except label and target are used.
func LoadCSV(path string, schema Schema) (*Dataset, error) {
	instances, err := base.ParseCSVToInstances(path, true)
	if err != nil {
		return nil, fmt.Errorf("could not parse csv '%s': %w", path, err)
	}

	attributes := instances.AllAttributes()
	specs := make(map[string]base.AttributeSpec, len(attributes))
	byName := make(map[string]base.Attribute, len(attributes))
	names := make([]string, 0, len(attributes))
	for _, attr := range attributes {
		spec, err := instances.GetAttribute(attr)
		if err != nil {
			return nil, fmt.Errorf("could not resolve attribute '%s': %w", attr.GetName(), err)
		}
		specs[attr.GetName()] = spec
		byName[attr.GetName()] = attr
		names = append(names, attr.GetName())
	}

	for _, c := range []string{schema.Label, schema.Target} {
		if _, ok := specs[c]; !ok {
			return nil, fmt.Errorf("'%s' in '%s': %w", c, path, ErrColumn)
		}
	}

	columns := schema.Features
	if len(columns) == 0 {
		for _, n := range names {
			if n != schema.Label && n != schema.Target {
				columns = append(columns, n)
			}
		}
	}
	for _, c := range columns {
		attr, ok := byName[c]
		if !ok {
			return nil, fmt.Errorf("'%s' in '%s': %w", c, path, ErrColumn)
		}
		if _, ok := attr.(*base.FloatAttribute); !ok {
			return nil, fmt.Errorf("feature '%s' is not numeric", c)
		}
	}

	_, rows := instances.Size()
	ds := &Dataset{
		Columns:  columns,
		Features: make([][]float64, rows),
		Labels:   make([]string, rows),
		Targets:  make([]int, rows),
	}

	for i := 0; i < rows; i++ {
		row := make([]float64, len(columns))
		for j, c := range columns {
			row[j] = base.UnpackBytesToFloat(instances.Get(specs[c], i))
		}
		ds.Features[i] = row
		ds.Labels[i] = value(byName[schema.Label], instances.Get(specs[schema.Label], i))
		t, err := target(byName[schema.Target], instances.Get(specs[schema.Target], i))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		ds.Targets[i] = t
	}

	log.Info().
		Str("path", path).
		Int("samples", rows).
		Int("features", len(columns)).
		Msg("loaded data set")

	return ds, ds.Validate()
}

// value returns the string representation of an attribute value,
// avoiding the fixed precision golearn uses for float attributes.
func value(attr base.Attribute, b []byte) string {
	if _, ok := attr.(*base.FloatAttribute); ok {
		return strconv.FormatFloat(base.UnpackBytesToFloat(b), 'f', -1, 64)
	}
	return attr.GetStringFromSysVal(b)
}

func target(attr base.Attribute, b []byte) (int, error) {
	var f float64
	if _, ok := attr.(*base.FloatAttribute); ok {
		f = base.UnpackBytesToFloat(b)
	} else {
		s := attr.GetStringFromSysVal(b)
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("target '%s': %w", s, ErrTarget)
		}
		f = v
	}
	if f != 0 && f != 1 {
		return 0, fmt.Errorf("target '%v': %w", f, ErrTarget)
	}
	return int(f), nil
}
