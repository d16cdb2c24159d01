package driver

import (
	"idlbind/internal/observ"
	"idlbind/internal/types"
)

// Report is the outcome of one resolution run.
type Report struct {
	Library    string            `json:"library"`
	Interfaces []InterfaceReport `json:"interfaces"`
	Types      []TypeReport      `json:"types"`
	// Cached is set when the report was served from the disk cache.
	Cached  bool          `json:"cached,omitempty"`
	Timings observ.Report `json:"timings"`
}

// InterfaceReport is the resolved surface of one interface.
type InterfaceReport struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Target         string `json:"target"`
	Implementation string `json:"implementation,omitempty"`
	MergedInto     string `json:"merged_into,omitempty"`
	Callback       bool   `json:"callback,omitempty"`
	// Suppressed interfaces have no generated interface; members are not
	// resolved for them.
	Suppressed  bool     `json:"suppressed,omitempty"`
	Annotations []string `json:"annotations,omitempty"`

	Constructor *Signature        `json:"constructor,omitempty"`
	Handler     *Signature        `json:"handler,omitempty"`
	Operations  []Signature       `json:"operations,omitempty"`
	Attributes  []AttributeReport `json:"attributes,omitempty"`
}

// Signature is one merged calling convention.
type Signature struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Returns   string `json:"returns"`
	Static    bool   `json:"static,omitempty"`
	Params    string `json:"params"`
	Arguments string `json:"arguments"`
	Overloads int    `json:"overloads"`
	// NativeArgs holds the native conversion call per typed parameter.
	NativeArgs  []string   `json:"native_args,omitempty"`
	Annotations []string   `json:"annotations,omitempty"`
	Future      *Signature `json:"future,omitempty"`
}

// AttributeReport describes accessors of one attribute.
type AttributeReport struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	ReadOnly    bool     `json:"readonly,omitempty"`
	Getter      string   `json:"getter,omitempty"`
	Setter      string   `json:"setter,omitempty"`
	Annotations []string `json:"annotations,omitempty"`
}

// TypeReport describes one resolved descriptor.
type TypeReport struct {
	Name           string   `json:"name"`
	Kind           string   `json:"kind"`
	Target         string   `json:"target"`
	Native         string   `json:"native,omitempty"`
	Implementation string   `json:"implementation,omitempty"`
	Item           string   `json:"item,omitempty"`
	Getter         string   `json:"getter,omitempty"`
	Setter         string   `json:"setter,omitempty"`
	Includes       []string `json:"includes,omitempty"`
}

// DescribeType renders d for reports.
func DescribeType(name string, d types.Descriptor) TypeReport {
	out := TypeReport{
		Name:     name,
		Kind:     d.Kind().String(),
		Target:   d.TargetType(),
		Native:   d.NativeType(),
		Includes: d.Includes(),
	}
	types.Match(d, types.Cases[struct{}]{
		Primitive: func(p *types.Primitive) struct{} {
			out.Getter, out.Setter = p.GetterName(), p.SetterName()
			return struct{}{}
		},
		Interface: func(i *types.Interface) struct{} {
			out.Implementation = i.ImplementationName()
			return struct{}{}
		},
		Sequence: func(s *types.Sequence) struct{} {
			out.Item = s.Item().IDLType()
			return struct{}{}
		},
		StringList: func(s *types.StringList) struct{} {
			out.Item = s.ListItemType()
			out.Implementation = s.ImplementationName()
			return struct{}{}
		},
		Callback: func(*types.Callback) struct{} { return struct{}{} },
		TearOff: func(t *types.TearOff) struct{} {
			out.Implementation = t.ImplementationName()
			out.Item = t.ListItemType()
			return struct{}{}
		},
	})
	return out
}

// Interface returns the report for id.
func (r *Report) Interface(id string) (*InterfaceReport, bool) {
	for i := range r.Interfaces {
		if r.Interfaces[i].ID == id {
			return &r.Interfaces[i], true
		}
	}
	return nil, false
}

// Operation returns the signature for id.
func (ir *InterfaceReport) Operation(id string) (*Signature, bool) {
	for i := range ir.Operations {
		if ir.Operations[i].ID == id {
			return &ir.Operations[i], true
		}
	}
	return nil, false
}
