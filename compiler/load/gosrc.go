package load

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path"
	"path/filepath"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/mod/modfile"

	"github.com/syssam/crudgen/schema/field"
)

// Directive marks a struct as a generation target. It is followed by
// space separated options:
//
//	//crudgen:crud fields=name,email like=both pagination
const Directive = "//crudgen:crud"

// ParseDir loads the entities declared in the Go package at dir. Only
// exported structs documented with Directive are loaded. pkgPath is the
// import path of the package; if empty it is derived from the enclosing
// go.mod.
//
// Struct fields map to entity fields as follows: the json tag names the
// field (falling back to the Go name), unexported fields and fields tagged
// `crud:"-"` are transient, and the field tagged `crud:"id"` (or named ID)
// is the identifier.
func ParseDir(dir, pkgPath string) ([]*Schema, error) {
	fset := token.NewFileSet()
	pkgs, err := parser.ParseDir(fset, dir, func(fi os.FileInfo) bool {
		return !strings.HasSuffix(fi.Name(), "_test.go")
	}, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parsing package at %s: %w", dir, err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no Go packages found in %s", dir)
	}
	if pkgPath == "" {
		if pkgPath, err = importPath(dir); err != nil {
			return nil, err
		}
	}
	var schemas []*Schema
	for _, pkg := range pkgs {
		// Map iteration order is random; keep the output reproducible.
		names := make([]string, 0, len(pkg.Files))
		for name := range pkg.Files {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			s, err := parseFile(fset, pkg.Files[name], pkgPath)
			if err != nil {
				return nil, err
			}
			schemas = append(schemas, s...)
		}
	}
	if len(schemas) == 0 {
		return nil, ErrNoEntities
	}
	return schemas, nil
}

func parseFile(fset *token.FileSet, file *ast.File, pkgPath string) ([]*Schema, error) {
	imports := fileImports(file)
	var schemas []*Schema
	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}
		for _, spec := range genDecl.Specs {
			typeSpec, ok := spec.(*ast.TypeSpec)
			if !ok || !typeSpec.Name.IsExported() {
				continue
			}
			st, ok := typeSpec.Type.(*ast.StructType)
			if !ok {
				continue
			}
			doc := typeSpec.Doc
			if doc == nil && len(genDecl.Specs) == 1 {
				doc = genDecl.Doc
			}
			opts, found := directive(doc)
			if !found {
				continue
			}
			pos := fset.Position(typeSpec.Pos()).String()
			crud, err := ParseDirective(opts)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", pos, err)
			}
			s := &Schema{
				Name:    typeSpec.Name.Name,
				Package: pkgPath,
				Crud:    crud,
				Pos:     pos,
			}
			parseStruct(s, st, imports, pkgPath)
			schemas = append(schemas, s)
		}
	}
	return schemas, nil
}

// directive returns the options following Directive in the comment group.
func directive(doc *ast.CommentGroup) (string, bool) {
	if doc == nil {
		return "", false
	}
	for _, c := range doc.List {
		if c.Text == Directive {
			return "", true
		}
		if opts, ok := strings.CutPrefix(c.Text, Directive+" "); ok {
			return opts, true
		}
	}
	return "", false
}

// ParseDirective parses the options of a Directive line.
func ParseDirective(opts string) (*Crud, error) {
	crud := &Crud{}
	for _, opt := range strings.Fields(opts) {
		key, value, hasValue := strings.Cut(opt, "=")
		switch key {
		case "fields":
			if value != "" {
				crud.Fields = strings.Split(value, ",")
			}
		case "like":
			crud.Like = value
		case "pagination":
			if !hasValue {
				crud.Pagination = true
				continue
			}
			b, err := strconv.ParseBool(value)
			if err != nil {
				return nil, fmt.Errorf("directive option %q: %w", opt, err)
			}
			crud.Pagination = b
		default:
			return nil, fmt.Errorf("unknown directive option %q", key)
		}
	}
	return crud, nil
}

func parseStruct(s *Schema, st *ast.StructType, imports map[string]string, pkgPath string) {
	for _, f := range st.Fields.List {
		if len(f.Names) == 0 {
			continue // embedded
		}
		var tag reflect.StructTag
		if f.Tag != nil {
			if v, err := strconv.Unquote(f.Tag.Value); err == nil {
				tag = reflect.StructTag(v)
			}
		}
		crudTag := tag.Get("crud")
		for _, ident := range f.Names {
			name := ident.Name
			if jsonName, _, _ := strings.Cut(tag.Get("json"), ","); jsonName != "" && jsonName != "-" {
				name = jsonName
			}
			fd := &Field{
				Name:      name,
				Info:      typeInfo(f.Type, imports, pkgPath),
				Transient: !ident.IsExported() || crudTag == "-" || crudTag == "transient",
			}
			fd.Type = fd.Info.String()
			if crudTag == "id" || (s.ID == "" && ident.Name == "ID") {
				s.ID = name
			}
			s.Fields = append(s.Fields, fd)
		}
	}
	if s.ID == "" {
		s.ID = DefaultID
	}
}

// typeInfo resolves the declared type of a struct field.
func typeInfo(expr ast.Expr, imports map[string]string, pkgPath string) *field.TypeInfo {
	if star, ok := expr.(*ast.StarExpr); ok {
		info := typeInfo(star.X, imports, pkgPath)
		info.Nillable = true
		return info
	}
	spelling := types.ExprString(expr)
	switch e := expr.(type) {
	case *ast.Ident:
		if t, ok := field.LookupGo(spelling); ok {
			return &field.TypeInfo{Type: t}
		}
		if token.IsExported(e.Name) {
			return &field.TypeInfo{Ident: e.Name, PkgPath: pkgPath}
		}
	case *ast.SelectorExpr:
		if x, ok := e.X.(*ast.Ident); ok {
			pkg := imports[x.Name]
			if t, ok := field.LookupGo(spelling); ok && (field.TypeInfo{Type: t}).Package() == pkg {
				return &field.TypeInfo{Type: t}
			}
			return &field.TypeInfo{Ident: spelling, PkgPath: pkg}
		}
	case *ast.ArrayType:
		if t, ok := field.LookupGo(spelling); ok {
			return &field.TypeInfo{Type: t}
		}
	}
	return &field.TypeInfo{Ident: spelling}
}

// fileImports maps the local names of the file imports to their paths.
func fileImports(file *ast.File) map[string]string {
	imports := make(map[string]string, len(file.Imports))
	for _, spec := range file.Imports {
		p, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		name := path.Base(p)
		if strings.HasPrefix(name, "v") && len(name) > 1 && strings.Trim(name[1:], "0123456789") == "" {
			name = path.Base(path.Dir(p))
		}
		if spec.Name != nil {
			name = spec.Name.Name
		}
		imports[name] = p
	}
	return imports
}

// importPath derives the import path of dir from the enclosing go.mod.
func importPath(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for root := abs; ; {
		data, err := os.ReadFile(filepath.Join(root, "go.mod"))
		if err == nil {
			mod := modfile.ModulePath(data)
			if mod == "" {
				return "", fmt.Errorf("no module directive in %s", filepath.Join(root, "go.mod"))
			}
			rel, err := filepath.Rel(root, abs)
			if err != nil {
				return "", err
			}
			if rel == "." {
				return mod, nil
			}
			return path.Join(mod, filepath.ToSlash(rel)), nil
		}
		parent := filepath.Dir(root)
		if parent == root {
			return "", fmt.Errorf("no go.mod found for %s", dir)
		}
		root = parent
	}
}
