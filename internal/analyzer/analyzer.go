package analyzer

import (
	"context"
	"fmt"
	"go/token"
	"go/types"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/tools/go/packages"
	"golang.org/x/tools/go/types/typeutil"
)

// Analyze loads Go packages from dir and finds every named type that
// satisfies the capability interface named by opts.
func Analyze(ctx context.Context, dir string, opts AnalyzeOptions, logger *slog.Logger) (*Result, error) {
	logger = logger.With("component", "analyzer")
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedTypes | packages.NeedSyntax |
			packages.NeedTypesInfo | packages.NeedImports | packages.NeedTypesSizes,
		Dir:     dir,
		Context: ctx,
	}

	pkgs, err := packages.Load(cfg, "./...")
	if err != nil {
		return nil, fmt.Errorf("loading packages: %w", err)
	}

	logger.Info("packages loaded", "packages_count", len(pkgs))

	// Log packages with errors but continue
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			logger.Warn("package load error", "package", pkg.PkgPath, "error", e.Msg)
		}
	}

	sizes := types.SizesFor("gc", runtime.GOARCH)
	want := opts.capability()

	var caps []Capability
	var impls []Implementor
	seenCaps := make(map[string]bool) // pkgPath.Name dedup

	collectCapability := func(scope *types.Scope, pkgPath, pkgName string, fset *token.FileSet) {
		obj := scope.Lookup(want)
		tn, ok := obj.(*types.TypeName)
		if !ok {
			return
		}
		iface, ok := tn.Type().Underlying().(*types.Interface)
		if !ok {
			return
		}
		key := pkgPath + "." + tn.Name()
		if seenCaps[key] {
			return
		}
		seenCaps[key] = true
		caps = append(caps, Capability{
			Name:       tn.Name(),
			PkgPath:    pkgPath,
			PkgName:    pkgName,
			Methods:    extractIfaceMethods(iface),
			SingleOp:   iface.NumMethods() == 1,
			TypeObj:    iface,
			SourceFile: resolveSourceFile(fset, tn.Pos(), dir),
		})
		logger.Debug("found capability", "name", tn.Name(), "package", pkgPath, "methods", iface.NumMethods())
	}

	for _, pkg := range pkgs {
		if pkg.Types == nil {
			continue
		}

		scope := pkg.Types.Scope()
		collectCapability(scope, pkg.PkgPath, pkg.Name, pkg.Fset)

		for _, name := range scope.Names() {
			tn, ok := scope.Lookup(name).(*types.TypeName)
			if !ok || tn.IsAlias() {
				continue
			}
			named, ok := tn.Type().(*types.Named)
			if !ok {
				continue
			}
			if _, isIface := named.Underlying().(*types.Interface); isIface {
				continue
			}
			// A handle needs a concrete type; uninstantiated generics have none.
			if named.TypeParams().Len() > 0 {
				continue
			}
			var size int64
			if sizes != nil {
				size = sizes.Sizeof(named)
			}
			impls = append(impls, Implementor{
				Name:       tn.Name(),
				PkgPath:    pkg.PkgPath,
				PkgName:    pkg.Name,
				IsStruct:   isStruct(named),
				Size:       size,
				TypeObj:    named,
				SourceFile: resolveSourceFile(pkg.Fset, tn.Pos(), dir),
			})
		}

		// Capabilities may also live in imported packages.
		for _, imp := range pkg.Imports {
			if imp.Types == nil {
				continue
			}
			collectCapability(imp.Types.Scope(), imp.PkgPath, imp.Name, imp.Fset)
		}
	}

	logger.Info("types collected", "capabilities", len(caps), "types", len(impls))

	var methodSetCache typeutil.MethodSetCache
	var conformances []Conformance

	for i := range impls {
		t := &impls[i]
		for j := range caps {
			c := &caps[j]
			if c.TypeObj.NumMethods() == 0 {
				continue
			}

			valType := t.TypeObj
			ptrType := types.NewPointer(valType)

			switch {
			case types.Implements(valType, c.TypeObj):
				conformances = append(conformances, Conformance{Implementor: t, Capability: c})
				logger.Debug("match found", "type", t.Name, "capability", c.Name, "via_pointer", false)
			case types.Implements(ptrType, c.TypeObj) && matchesMethodSet(methodSetCache.MethodSet(ptrType), c.TypeObj):
				conformances = append(conformances, Conformance{Implementor: t, Capability: c, ViaPointer: true})
				logger.Debug("match found", "type", t.Name, "capability", c.Name, "via_pointer", true)
			}
		}
	}

	logger.Info("analysis complete", "conformances", len(conformances))

	return &Result{
		Capabilities: caps,
		Implementors: impls,
		Conformances: conformances,
	}, nil
}

func extractIfaceMethods(iface *types.Interface) []MethodSig {
	methods := make([]MethodSig, iface.NumMethods())
	for i := 0; i < iface.NumMethods(); i++ {
		m := iface.Method(i)
		methods[i] = MethodSig{
			Name:      m.Name(),
			Signature: formatSignature(m),
		}
	}
	return methods
}

func formatSignature(fn *types.Func) string {
	sig := fn.Type().(*types.Signature)
	var b strings.Builder
	b.WriteString(fn.Name())
	b.WriteString("(")
	params := sig.Params()
	for i := 0; i < params.Len(); i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(shortType(params.At(i).Type()))
	}
	b.WriteString(")")
	results := sig.Results()
	switch results.Len() {
	case 0:
	case 1:
		b.WriteString(" ")
		b.WriteString(shortType(results.At(0).Type()))
	default:
		b.WriteString(" (")
		for i := 0; i < results.Len(); i++ {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(shortType(results.At(i).Type()))
		}
		b.WriteString(")")
	}
	return b.String()
}

func shortType(t types.Type) string {
	return types.TypeString(t, func(pkg *types.Package) string {
		return pkg.Name()
	})
}

func isStruct(named *types.Named) bool {
	_, ok := named.Underlying().(*types.Struct)
	return ok
}

func matchesMethodSet(mset *types.MethodSet, iface *types.Interface) bool {
	for i := 0; i < iface.NumMethods(); i++ {
		m := iface.Method(i)
		if mset.Lookup(m.Pkg(), m.Name()) == nil {
			return false
		}
	}
	return true
}

// resolveSourceFile resolves a token position to a file path relative to moduleRoot.
func resolveSourceFile(fset *token.FileSet, pos token.Pos, moduleRoot string) string {
	if fset == nil || !pos.IsValid() {
		return ""
	}
	position := fset.Position(pos)
	if !position.IsValid() || position.Filename == "" {
		return ""
	}
	rel, err := filepath.Rel(moduleRoot, position.Filename)
	if err != nil {
		return position.Filename
	}
	return rel
}
