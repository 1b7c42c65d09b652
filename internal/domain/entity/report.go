package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ReportSection holds the idle resources found for one kind.
type ReportSection struct {
	Kind        ResourceKind
	Label       string
	ResourceIDs []string
}

// Report maps every resource kind label to the ordered identifiers deemed idle.
// Sections always appear in ResourceKinds order.
type Report struct {
	Sections []ReportSection
}

// NewReport returns a report with an empty section for every kind.
func NewReport() Report {
	sections := make([]ReportSection, 0, len(ResourceKinds))
	for _, kind := range ResourceKinds {
		sections = append(sections, ReportSection{Kind: kind, Label: kind.Label(), ResourceIDs: []string{}})
	}
	return Report{Sections: sections}
}

// Set replaces the identifiers of the given kind.
func (r *Report) Set(kind ResourceKind, ids []string) {
	if ids == nil {
		ids = []string{}
	}
	for i := range r.Sections {
		if r.Sections[i].Kind == kind {
			r.Sections[i].ResourceIDs = ids
			return
		}
	}
}

// Get returns the identifiers recorded for the given kind.
func (r Report) Get(kind ResourceKind) []string {
	for _, s := range r.Sections {
		if s.Kind == kind {
			return s.ResourceIDs
		}
	}
	return nil
}

// Lookup returns the identifiers recorded under a label.
func (r Report) Lookup(label string) ([]string, bool) {
	for _, s := range r.Sections {
		if s.Label == label {
			return s.ResourceIDs, true
		}
	}
	return nil, false
}

// Labels returns the section labels in report order.
func (r Report) Labels() []string {
	labels := make([]string, 0, len(r.Sections))
	for _, s := range r.Sections {
		labels = append(labels, s.Label)
	}
	return labels
}

// Total is the number of idle resources across all kinds.
func (r Report) Total() int {
	total := 0
	for _, s := range r.Sections {
		total += len(s.ResourceIDs)
	}
	return total
}

// IsEmpty reports whether no kind has any idle resource.
func (r Report) IsEmpty() bool {
	return r.Total() == 0
}

// MarshalJSON encodes the report as an object keyed by label, preserving section order.
func (r Report) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range r.Sections {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(s.Label)
		if err != nil {
			return nil, err
		}
		ids := s.ResourceIDs
		if ids == nil {
			ids = []string{}
		}
		value, err := json.Marshal(ids)
		if err != nil {
			return nil, fmt.Errorf("error encoding %s: %w", s.Label, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
