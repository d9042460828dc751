package analyzer

import (
	"strings"
	"unicode"
)

// Filter applies filtering options to the analysis result and drops
// capabilities and types that take part in no conformance.
func Filter(result *Result, opts AnalyzeOptions) *Result {
	filtered := &Result{}

	capSet := make(map[string]bool)
	typeSet := make(map[string]bool)

	for _, conf := range result.Conformances {
		c := conf.Capability
		typ := conf.Implementor

		if !opts.IncludeUnexported && isUnexported(typ.Name) {
			continue
		}

		if opts.Filter != "" {
			capMatch := strings.HasPrefix(c.PkgPath, opts.Filter)
			typeMatch := strings.HasPrefix(typ.PkgPath, opts.Filter)
			if !capMatch && !typeMatch {
				continue
			}
		}

		filtered.Conformances = append(filtered.Conformances, conf)
		capSet[capKey(c)] = true
		typeSet[typeKey(typ)] = true
	}

	for i := range result.Capabilities {
		c := &result.Capabilities[i]
		if capSet[capKey(c)] {
			filtered.Capabilities = append(filtered.Capabilities, *c)
		}
	}

	for i := range result.Implementors {
		typ := &result.Implementors[i]
		if typeSet[typeKey(typ)] {
			filtered.Implementors = append(filtered.Implementors, *typ)
		}
	}

	return filtered
}

func isUnexported(name string) bool {
	if name == "" {
		return true
	}
	return unicode.IsLower(rune(name[0]))
}

func capKey(c *Capability) string {
	return c.PkgPath + "." + c.Name
}

func typeKey(typ *Implementor) string {
	return typ.PkgPath + "." + typ.Name
}
