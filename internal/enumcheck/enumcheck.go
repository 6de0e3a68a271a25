// Package enumcheck verifies that enum types follow the runtime contract.
//
// An enum type is a package-level string type with an IsKnown method. For
// each one the checker requires:
//   - IsKnown is declared on the value receiver as func() bool
//   - a package func <Type>Values() []<Type> exists
//   - every constant of the type appears in an enum.NewSet call, and the
//     set only lists constants of the type
//   - constant values are distinct wire tokens
package enumcheck

import (
	"fmt"
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
	"regexp"
	"slices"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"
)

// DefaultEnumPackage is the import path of the enum runtime.
const DefaultEnumPackage = "github.com/broady/stripe/enum"

var wireToken = regexp.MustCompile(`^[a-z0-9][a-z0-9_.\-]*$`)

// Config controls a check.
type Config struct {
	// Dir is the working directory for package patterns.
	Dir string
	// EnumPackage is the import path providing NewSet. Defaults to
	// DefaultEnumPackage.
	EnumPackage string
}

// Enum is one enum type found.
type Enum struct {
	Name   string
	Pos    token.Position
	Tokens []string
}

// Problem is a contract violation.
type Problem struct {
	Type string
	Pos  token.Position
	Msg  string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %s: %s", p.Pos, p.Type, p.Msg)
}

// Result is the outcome for one package.
type Result struct {
	PackagePath string
	Enums       []Enum
	Problems    []Problem
}

// Check loads the packages matching patterns and checks their enums.
//
// Patterns follow go command semantics, e.g. "./..." or an import path.
func Check(cfg Config, patterns ...string) ([]*Result, error) {
	if cfg.EnumPackage == "" {
		cfg.EnumPackage = DefaultEnumPackage
	}
	pcfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedSyntax |
			packages.NeedTypes | packages.NeedTypesInfo,
		Dir: cfg.Dir,
	}
	pkgs, err := packages.Load(pcfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("load packages: %w", err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found matching %q", patterns)
	}

	var results []*Result
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return nil, fmt.Errorf("package %s: %v", pkg.PkgPath, pkg.Errors[0])
		}
		results = append(results, checkPackage(pkg, cfg.EnumPackage))
	}
	sort.Slice(results, func(i, j int) bool { return results[i].PackagePath < results[j].PackagePath })
	return results, nil
}

type enumInfo struct {
	named  *types.Named
	consts []*types.Const
	inSet  map[*types.Const]bool
	hasSet bool
}

func checkPackage(pkg *packages.Package, enumPkg string) *Result {
	result := &Result{PackagePath: pkg.PkgPath}
	scope := pkg.Types.Scope()
	pos := func(p token.Pos) token.Position { return pkg.Fset.Position(p) }

	enums := map[*types.TypeName]*enumInfo{}
	for _, name := range scope.Names() {
		tn, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || tn.IsAlias() {
			continue
		}
		named, ok := tn.Type().(*types.Named)
		if !ok || !isString(named) || !hasMethod(named, "IsKnown") {
			continue
		}
		enums[tn] = &enumInfo{named: named, inSet: map[*types.Const]bool{}}
	}

	for _, name := range scope.Names() {
		c, ok := scope.Lookup(name).(*types.Const)
		if !ok {
			continue
		}
		if info := enumFor(enums, c.Type()); info != nil {
			info.consts = append(info.consts, c)
		}
	}

	for _, file := range pkg.Syntax {
		ast.Inspect(file, func(n ast.Node) bool {
			call, ok := n.(*ast.CallExpr)
			if !ok || !isNewSet(pkg.TypesInfo, call.Fun, enumPkg) {
				return true
			}
			var info *enumInfo
			if tv, ok := pkg.TypesInfo.Types[call]; ok {
				if named, ok := tv.Type.(*types.Named); ok && named.TypeArgs().Len() == 1 {
					info = enumFor(enums, named.TypeArgs().At(0))
				}
			}
			if info == nil {
				return true
			}
			info.hasSet = true
			for _, arg := range call.Args {
				c := constOf(pkg.TypesInfo, arg)
				if c == nil || !types.Identical(c.Type(), info.named) {
					result.Problems = append(result.Problems, Problem{
						Type: info.named.Obj().Name(),
						Pos:  pos(arg.Pos()),
						Msg:  "set member is not a constant of the type",
					})
					continue
				}
				info.inSet[c] = true
			}
			return true
		})
	}

	var names []*types.TypeName
	for tn := range enums {
		names = append(names, tn)
	}
	slices.SortFunc(names, func(a, b *types.TypeName) int { return strings.Compare(a.Name(), b.Name()) })

	for _, tn := range names {
		info := enums[tn]
		problem := func(p token.Pos, format string, args ...any) {
			result.Problems = append(result.Problems, Problem{Type: tn.Name(), Pos: pos(p), Msg: fmt.Sprintf(format, args...)})
		}

		e := Enum{Name: tn.Name(), Pos: pos(tn.Pos())}
		seen := map[string]*types.Const{}
		for _, c := range info.consts {
			tok := constant.StringVal(c.Val())
			e.Tokens = append(e.Tokens, tok)
			if prev, dup := seen[tok]; dup {
				problem(c.Pos(), "token %q is declared by both %s and %s", tok, prev.Name(), c.Name())
			}
			seen[tok] = c
			if !wireToken.MatchString(tok) {
				problem(c.Pos(), "token %q of %s is not a lowercase wire token", tok, c.Name())
			}
			if info.hasSet && !info.inSet[c] {
				problem(c.Pos(), "constant %s is missing from the known set", c.Name())
			}
		}
		result.Enums = append(result.Enums, e)

		if !info.hasSet {
			problem(tn.Pos(), "no %s.NewSet call builds the known set", pathBase(enumPkg))
		}
		if !isKnownMethod(info.named) {
			problem(tn.Pos(), "IsKnown must be declared on the value receiver as func() bool")
		}
		valuesFunc := tn.Name() + "Values"
		if !isValuesFunc(scope.Lookup(valuesFunc), info.named) {
			problem(tn.Pos(), "missing func %s() []%s", valuesFunc, tn.Name())
		}
	}
	return result
}

func isString(named *types.Named) bool {
	b, ok := named.Underlying().(*types.Basic)
	return ok && b.Kind() == types.String
}

func hasMethod(named *types.Named, name string) bool {
	for i := range named.NumMethods() {
		if named.Method(i).Name() == name {
			return true
		}
	}
	return false
}

func enumFor(enums map[*types.TypeName]*enumInfo, t types.Type) *enumInfo {
	named, ok := t.(*types.Named)
	if !ok {
		return nil
	}
	return enums[named.Obj()]
}

func isNewSet(info *types.Info, fun ast.Expr, enumPkg string) bool {
	if idx, ok := fun.(*ast.IndexExpr); ok {
		fun = idx.X
	}
	var id *ast.Ident
	switch f := fun.(type) {
	case *ast.SelectorExpr:
		id = f.Sel
	case *ast.Ident:
		id = f
	default:
		return false
	}
	fn, ok := info.Uses[id].(*types.Func)
	return ok && fn.Name() == "NewSet" && fn.Pkg() != nil && fn.Pkg().Path() == enumPkg
}

func constOf(info *types.Info, e ast.Expr) *types.Const {
	switch x := e.(type) {
	case *ast.Ident:
		c, _ := info.Uses[x].(*types.Const)
		return c
	case *ast.SelectorExpr:
		c, _ := info.Uses[x.Sel].(*types.Const)
		return c
	}
	return nil
}

func isKnownMethod(named *types.Named) bool {
	for i := range named.NumMethods() {
		m := named.Method(i)
		if m.Name() != "IsKnown" {
			continue
		}
		sig := m.Type().(*types.Signature)
		if _, ptr := sig.Recv().Type().(*types.Pointer); ptr {
			return false
		}
		if sig.Params().Len() != 0 || sig.Results().Len() != 1 {
			return false
		}
		b, ok := sig.Results().At(0).Type().(*types.Basic)
		return ok && b.Kind() == types.Bool
	}
	return false
}

func isValuesFunc(obj types.Object, elem *types.Named) bool {
	fn, ok := obj.(*types.Func)
	if !ok {
		return false
	}
	sig := fn.Type().(*types.Signature)
	if sig.Params().Len() != 0 || sig.Results().Len() != 1 {
		return false
	}
	s, ok := sig.Results().At(0).Type().(*types.Slice)
	return ok && types.Identical(s.Elem(), elem)
}

func pathBase(p string) string {
	return p[strings.LastIndex(p, "/")+1:]
}

// Problems flattens the problems of results.
func Problems(results []*Result) []Problem {
	var out []Problem
	for _, r := range results {
		out = append(out, r.Problems...)
	}
	return out
}
