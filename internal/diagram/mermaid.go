package diagram

import (
	"fmt"
	"sort"
	"strings"

	"github.com/olehluchkiv/anyspeak/internal/analyzer"
)

// DiagramOptions controls Mermaid diagram generation.
type DiagramOptions struct {
	MaxMethodsPerBox int  // default 5, 0 means unlimited
	ShowSizes        bool // annotate implementors with their size in bytes
}

// DefaultDiagramOptions returns sensible defaults for diagram generation.
func DefaultDiagramOptions() DiagramOptions {
	return DiagramOptions{MaxMethodsPerBox: 5, ShowSizes: true}
}

// GenerateMermaid produces a Mermaid classDiagram of capabilities and the
// types that implement them. Types that only conform through a pointer are
// drawn with a dashed realization edge.
func GenerateMermaid(result *analyzer.Result, opts DiagramOptions) string {
	var b strings.Builder

	caps := make([]analyzer.Capability, len(result.Capabilities))
	copy(caps, result.Capabilities)
	sort.Slice(caps, func(i, j int) bool {
		if caps[i].PkgName != caps[j].PkgName {
			return caps[i].PkgName < caps[j].PkgName
		}
		return caps[i].Name < caps[j].Name
	})

	typs := make([]analyzer.Implementor, len(result.Implementors))
	copy(typs, result.Implementors)
	sort.Slice(typs, func(i, j int) bool {
		if typs[i].PkgName != typs[j].PkgName {
			return typs[i].PkgName < typs[j].PkgName
		}
		return typs[i].Name < typs[j].Name
	})

	confs := make([]analyzer.Conformance, len(result.Conformances))
	copy(confs, result.Conformances)
	sort.Slice(confs, func(i, j int) bool {
		ti := NodeID(confs[i].Implementor.PkgName, confs[i].Implementor.Name)
		tj := NodeID(confs[j].Implementor.PkgName, confs[j].Implementor.Name)
		if ti != tj {
			return ti < tj
		}
		return NodeID(confs[i].Capability.PkgName, confs[i].Capability.Name) <
			NodeID(confs[j].Capability.PkgName, confs[j].Capability.Name)
	})

	b.WriteString("classDiagram")
	if len(caps) == 0 && len(typs) == 0 {
		return b.String()
	}
	b.WriteString("\n    direction LR")

	for _, c := range caps {
		b.WriteString("\n")
		writeCapabilityBlock(&b, c, opts)
	}
	for _, typ := range typs {
		b.WriteString("\n")
		writeImplementorBlock(&b, typ, opts)
	}
	for _, conf := range confs {
		b.WriteString("\n")
		writeConformance(&b, conf)
	}
	return b.String()
}

// SanitizeSignature removes characters in method signatures that break Mermaid syntax.
func SanitizeSignature(sig string) string {
	sig = strings.ReplaceAll(sig, "<-chan", "chan")
	sig = strings.ReplaceAll(sig, "interface{}", "any")
	sig = strings.ReplaceAll(sig, "{}", "")
	return sig
}

func sanitizeID(s string) string {
	r := strings.NewReplacer("/", "_", ".", "_", "-", "_")
	return r.Replace(s)
}

// NodeID builds a sanitized node ID from pkgName and type/interface name.
func NodeID(pkgName, name string) string {
	return sanitizeID(pkgName + "_" + name)
}

func writeCapabilityBlock(b *strings.Builder, c analyzer.Capability, opts DiagramOptions) {
	fmt.Fprintf(b, "    class %s {\n", NodeID(c.PkgName, c.Name))
	b.WriteString("        <<interface>>\n")
	if !c.SingleOp {
		b.WriteString("        %% more than one method: not erasable with a one-entry table\n")
	}
	if c.SourceFile != "" {
		b.WriteString("        %% file: " + c.SourceFile + "\n")
	}
	limit := len(c.Methods)
	truncated := false
	if opts.MaxMethodsPerBox > 0 && limit > opts.MaxMethodsPerBox {
		limit = opts.MaxMethodsPerBox
		truncated = true
	}
	for i := 0; i < limit; i++ {
		fmt.Fprintf(b, "        +%s\n", SanitizeSignature(c.Methods[i].Signature))
	}
	if truncated {
		b.WriteString("        ...\n")
	}
	b.WriteString("    }")
}

func writeImplementorBlock(b *strings.Builder, typ analyzer.Implementor, opts DiagramOptions) {
	fmt.Fprintf(b, "    class %s {\n", NodeID(typ.PkgName, typ.Name))
	if typ.SourceFile != "" {
		b.WriteString("        %% file: " + typ.SourceFile + "\n")
	}
	if opts.ShowSizes {
		fmt.Fprintf(b, "        +size %d\n", typ.Size)
	}
	b.WriteString("    }")
}

func writeConformance(b *strings.Builder, conf analyzer.Conformance) {
	typeID := NodeID(conf.Implementor.PkgName, conf.Implementor.Name)
	capID := NodeID(conf.Capability.PkgName, conf.Capability.Name)
	arrow := "--|>"
	if conf.ViaPointer {
		arrow = "..|>"
	}
	fmt.Fprintf(b, "    %s %s %s", typeID, arrow, capID)
}
