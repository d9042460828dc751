package analyzer

import "go/types"

// Capability is an interface whose implementors a handle could erase.
type Capability struct {
	Name       string
	PkgPath    string
	PkgName    string
	Methods    []MethodSig
	SingleOp   bool // exactly one method, so a one-entry table can describe it
	TypeObj    *types.Interface
	SourceFile string
}

// Implementor is a named concrete type that satisfies some capability.
type Implementor struct {
	Name       string
	PkgPath    string
	PkgName    string
	IsStruct   bool
	Size       int64 // bytes on the host architecture
	TypeObj    *types.Named
	SourceFile string
}

// MethodSig captures a method name and its signature string.
type MethodSig struct {
	Name      string
	Signature string
}

// Conformance records that an implementor satisfies a capability.
type Conformance struct {
	Implementor *Implementor
	Capability  *Capability
	ViaPointer  bool // true if only *T (not T) satisfies the capability
}

// Result holds the complete analysis output.
type Result struct {
	Capabilities []Capability
	Implementors []Implementor
	Conformances []Conformance
}

// AnalyzeOptions controls analysis behavior.
type AnalyzeOptions struct {
	Capability        string // interface name to look for; empty means DefaultCapability
	Filter            string // package path prefix filter
	IncludeUnexported bool
}

// DefaultCapability is the interface name searched for when none is given.
const DefaultCapability = "Speaker"

func (o AnalyzeOptions) capability() string {
	if o.Capability == "" {
		return DefaultCapability
	}
	return o.Capability
}
