package golang

import (
	"fmt"
	"go/token"
	"path"
	"strings"

	"github.com/dave/jennifer/jen"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/syssam/crudgen/compiler/gen"
)

// Directive prefixes of the comments attached to filter methods.
const (
	QueryDirective = "//crudgen:query "
	ParamDirective = "//crudgen:param "
)

// Local names used by generated method bodies.
const (
	recvName  = "s"
	ctxName   = "ctx"
	valueName = "v"
	errName   = "err"
)

var reservedNames = map[string]bool{
	recvName:  true,
	ctxName:   true,
	valueName: true,
	errName:   true,
}

// methodNames maps artifact method names to Go names where the title-cased
// form is not idiomatic.
var methodNames = map[string]string{
	gen.MethodFindByID:   "FindByID",
	gen.MethodDeleteByID: "DeleteByID",
}

var title = cases.Title(language.Und, cases.NoLower)

// Renderer renders artifacts into jennifer files.
type Renderer struct {
	runtime string
	header  string
	pkgName string
}

// NewRenderer creates a Renderer for the given config. pkgName names the
// package of artifacts that carry no import path.
func NewRenderer(cfg *gen.Config, pkgName string) *Renderer {
	return &Renderer{
		runtime: cfg.RuntimePackage,
		header:  cfg.Header,
		pkgName: pkgName,
	}
}

// Render renders an artifact according to its kind.
func (r *Renderer) Render(a *gen.Artifact) (*jen.File, error) {
	if a.Kind == gen.KindClass {
		return r.Service(a)
	}
	return r.Repository(a)
}

// Repository renders a repository interface.
func (r *Renderer) Repository(a *gen.Artifact) (*jen.File, error) {
	f := r.newFile(a)
	var members []jen.Code
	for _, sup := range a.Supertypes {
		members = append(members, r.typ(sup))
	}
	for _, m := range a.Methods {
		params, err := r.params(a, &m)
		if err != nil {
			return nil, err
		}
		members = append(members, jen.Line())
		if q, ok := m.Annotation(gen.AnnotationQuery); ok {
			members = append(members, jen.Comment(QueryDirective+q))
		}
		for _, p := range m.Params {
			if v, ok := p.Annotation(gen.AnnotationParam); ok {
				members = append(members, jen.Comment(ParamDirective+goName(p.Name)+"="+v))
			}
		}
		members = append(members,
			jen.Id(methodName(m.Name, len(m.Params))).Params(params...).Params(r.typ(m.Returns), jen.Error()),
		)
	}
	f.Commentf("%s persists %s entities.", a.Name, entityName(a))
	f.Type().Id(a.Name).Interface(members...)
	return f, nil
}

// Service renders a service struct, its constructor and its operations.
func (r *Renderer) Service(a *gen.Artifact) (*jen.File, error) {
	f := r.newFile(a)
	fields := make([]jen.Code, 0, len(a.Fields))
	values := jen.Dict{}
	ctorParams := make([]jen.Code, 0, len(a.Fields))
	for _, fd := range a.Fields {
		fields = append(fields, jen.Id(fd.Name).Add(r.typ(fd.Type)))
		ctorParams = append(ctorParams, jen.Id(fd.Name).Add(r.typ(fd.Type)))
		values[jen.Id(fd.Name)] = jen.Id(fd.Name)
	}
	f.Commentf("%s exposes the CRUD operations of %s entities.", a.Name, entityName(a))
	f.Type().Id(a.Name).Struct(fields...)

	f.Commentf("New%s returns a %s backed by the given repository.", a.Name, a.Name)
	f.Func().Id("New"+a.Name).Params(ctorParams...).Op("*").Id(a.Name).Block(
		jen.Return(jen.Op("&").Id(a.Name).Values(values)),
	)

	for _, m := range a.Methods {
		params, err := r.params(a, &m)
		if err != nil {
			return nil, err
		}
		body, err := r.body(a, &m)
		if err != nil {
			return nil, err
		}
		f.Line()
		f.Func().Params(jen.Id(recvName).Op("*").Id(a.Name)).
			Id(methodName(m.Name, len(m.Params))).Params(params...).
			Add(r.typ(m.Returns)).
			Block(body...)
	}
	return f, nil
}

func (r *Renderer) newFile(a *gen.Artifact) *jen.File {
	var f *jen.File
	if a.Package != "" {
		f = jen.NewFilePath(a.Package)
	} else {
		f = jen.NewFile(r.pkgName)
	}
	if r.header != "" {
		f.HeaderComment(r.header)
	}
	return f
}

// importNames returns the local names of the packages a file rendered
// from a may import.
func (r *Renderer) importNames(a *gen.Artifact) map[string]bool {
	names := map[string]bool{
		localName("context"): true,
		localName(r.runtime): true,
	}
	var add func(t gen.TypeRef)
	add = func(t gen.TypeRef) {
		if !t.Runtime && t.Package != "" && t.Package != a.Package {
			names[localName(t.Package)] = true
		}
		for _, arg := range t.Args {
			add(arg)
		}
	}
	for _, f := range a.Fields {
		add(f.Type)
	}
	for _, m := range a.Methods {
		add(m.Returns)
		for _, p := range m.Params {
			add(p.Type)
		}
	}
	return names
}

// localName returns the name a rendered file refers to an imported
// package by. It follows the alias jennifer derives from the import path:
// the lower-cased last element with everything but letters and digits
// removed, without leading digits.
func localName(pkgPath string) string {
	name := strings.ToLower(path.Base(strings.TrimSuffix(pkgPath, "/")))
	name = strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, name)
	name = strings.TrimLeft(name, "0123456789")
	if name == "" {
		return "pkg"
	}
	return name
}

// params renders the context parameter followed by the method parameters.
func (r *Renderer) params(a *gen.Artifact, m *gen.Method) ([]jen.Code, error) {
	params := []jen.Code{jen.Id(ctxName).Qual("context", "Context")}
	filter := m.Name == gen.MethodAllByFilter || m.Name == gen.MethodServiceAll
	imported := r.importNames(a)
	for _, p := range m.Params {
		if reservedNames[p.Name] {
			return nil, gen.NewGenerationError(a.QualifiedName(), "", fmt.Sprintf("parameter %q of %s shadows a generated name", p.Name, m.Name), nil)
		}
		if imported[p.Name] {
			return nil, gen.NewGenerationError(a.QualifiedName(), "", fmt.Sprintf("parameter %q of %s shadows an imported package", p.Name, m.Name), nil)
		}
		t := p.Type
		if filter && !t.Runtime && nillable(t) {
			t.Nullable = true
		}
		params = append(params, jen.Id(goName(p.Name)).Add(r.typ(t)))
	}
	return params, nil
}

// body renders the statements of a service method.
func (r *Renderer) body(a *gen.Artifact, m *gen.Method) ([]jen.Code, error) {
	if len(m.Returns.Args) != 1 {
		return nil, gen.NewGenerationError(a.QualifiedName(), "", "method "+m.Name+" does not return a response", nil)
	}
	resp := r.typ(m.Returns.Args[0])
	fail := func() jen.Code {
		return jen.Return(jen.Qual(r.runtime, "Fail").Types(resp).Call(jen.Id(errName)))
	}
	var stmts []jen.Code
	for _, s := range m.Body {
		switch s := s.(type) {
		case *gen.PageableStmt:
			stmts = append(stmts,
				jen.Var().Id(goName(s.Var)).Qual(r.runtime, "Pageable"),
				jen.If(jen.Id(goName(s.Page)).Op("==").Nil().Op("||").Id(goName(s.PageSize)).Op("==").Nil()).Block(
					jen.Id(goName(s.Var)).Op("=").Qual(r.runtime, "PageRequestOf").Call(jen.Lit(0), jen.Qual(r.runtime, "MaxPageSize")),
				).Else().Block(
					jen.Id(goName(s.Var)).Op("=").Qual(r.runtime, "PageRequestOf").Call(jen.Op("*").Id(goName(s.Page)), jen.Op("*").Id(goName(s.PageSize))),
				),
			)
		case *gen.CallStmt:
			stmts = append(stmts,
				jen.If(jen.Id(errName).Op(":=").Add(r.call(&s.Call)), jen.Id(errName).Op("!=").Nil()).Block(fail()),
			)
		case *gen.ReturnStmt:
			switch {
			case s.Call != nil:
				stmts = append(stmts,
					jen.List(jen.Id(valueName), jen.Id(errName)).Op(":=").Add(r.call(s.Call)),
					jen.If(jen.Id(errName).Op("!=").Nil()).Block(fail()),
					jen.Return(jen.Qual(r.runtime, "OK").Call(jen.Id(valueName))),
				)
			case s.Status == gen.StatusNoContent:
				stmts = append(stmts, jen.Return(jen.Qual(r.runtime, "NoContent").Call()))
			default:
				stmts = append(stmts, jen.Return(jen.Qual(r.runtime, "OK").Call(jen.Add(resp).Values())))
			}
		default:
			return nil, gen.NewGenerationError(a.QualifiedName(), "", fmt.Sprintf("unknown statement %T in %s", s, m.Name), nil)
		}
	}
	return stmts, nil
}

func (r *Renderer) call(c *gen.Call) jen.Code {
	args := []jen.Code{jen.Id(ctxName)}
	for _, arg := range c.Args {
		args = append(args, jen.Id(goName(arg)))
	}
	return jen.Id(recvName).Dot(c.Recv).Dot(methodName(c.Method, len(c.Args))).Call(args...)
}

// typ renders a type reference.
func (r *Renderer) typ(t gen.TypeRef) *jen.Statement {
	s := jen.Null()
	if t.Nullable {
		s = jen.Op("*")
	}
	args := make([]jen.Code, 0, len(t.Args))
	for _, a := range t.Args {
		args = append(args, r.typ(a))
	}
	switch {
	case t.Runtime && t.Name == gen.TypeList:
		return s.Index().Add(args...)
	case t.Runtime && len(args) > 0:
		return s.Qual(r.runtime, t.Name).Types(args...)
	case t.Runtime:
		return s.Qual(r.runtime, t.Name)
	case t.Package != "":
		return s.Qual(t.Package, t.Name)
	default:
		return s.Id(t.Name)
	}
}

// methodName returns the Go name of an artifact method. The generic
// listing method with a pagination argument maps to FindPage.
func methodName(name string, nargs int) string {
	if name == gen.MethodFindAll && nargs > 0 {
		return "FindPage"
	}
	if n, ok := methodNames[name]; ok {
		return n
	}
	return title.String(name)
}

// goName returns a valid Go identifier for a parameter name.
func goName(name string) string {
	if token.IsKeyword(name) {
		return name + "_"
	}
	return name
}

// nillable reports whether a nil value of t needs a pointer.
func nillable(t gen.TypeRef) bool {
	return !t.Nullable && !strings.HasPrefix(t.Name, "[]") && !strings.HasPrefix(t.Name, "map[")
}

func entityName(a *gen.Artifact) string {
	if len(a.Supertypes) > 0 && len(a.Supertypes[0].Args) > 0 {
		return a.Supertypes[0].Args[0].Name
	}
	for _, m := range a.Methods {
		if m.Name == gen.MethodServiceSave && len(m.Params) > 0 {
			return m.Params[0].Type.Name
		}
	}
	return a.Name
}
