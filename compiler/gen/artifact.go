package gen

// Kind is the kind of a generated type.
type Kind uint8

// Artifact kinds.
const (
	KindInterface Kind = iota
	KindClass
)

// String returns the kind name.
func (k Kind) String() string {
	if k == KindClass {
		return "class"
	}
	return "interface"
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Modifier is a method modifier.
type Modifier string

// Method modifiers.
const (
	ModPublic   Modifier = "public"
	ModAbstract Modifier = "abstract"
)

// Names of the types supplied by the runtime support library.
const (
	TypeRepository = "Repository"
	TypeList       = "List"
	TypePage       = "Page"
	TypePageable   = "Pageable"
	TypeOptional   = "Optional"
	TypeResponse   = "Response"
	TypeVoid       = "Void"
	TypeInt        = "int"
)

// Annotation names.
const (
	AnnotationQuery     = "Query"
	AnnotationParam     = "Param"
	AnnotationComponent = "Component"
	AnnotationInject    = "Inject"
)

// Names shared between the repository and service artifacts.
const (
	MethodAllByFilter = "allByFilter"
	MethodSave        = "save"
	MethodFindByID    = "findById"
	MethodFindAll     = "findAll"
	MethodDeleteByID  = "deleteById"

	MethodServiceSave   = "save"
	MethodServiceOne    = "one"
	MethodServiceAll    = "all"
	MethodServiceDelete = "delete"

	ParamEntity   = "entity"
	ParamID       = "id"
	ParamPage     = "page"
	ParamPageSize = "pageSize"
	ParamPageable = "pageable"

	FieldRepository = "repository"
)

type (
	// Artifact is the definition of one generated type. It is plain data.
	Artifact struct {
		Kind        Kind         `yaml:"kind" json:"kind"`
		Name        string       `yaml:"name" json:"name"`
		Package     string       `yaml:"package,omitempty" json:"package,omitempty"`
		Supertypes  []TypeRef    `yaml:"supertypes,omitempty" json:"supertypes,omitempty"`
		Annotations []Annotation `yaml:"annotations,omitempty" json:"annotations,omitempty"`
		Fields      []FieldDecl  `yaml:"fields,omitempty" json:"fields,omitempty"`
		Methods     []Method     `yaml:"methods,omitempty" json:"methods,omitempty"`
	}

	// TypeRef references a type, with its generic arguments.
	TypeRef struct {
		Name string `yaml:"name" json:"name"`
		// Package is the import path declaring Name. Empty for predeclared
		// and runtime types.
		Package string `yaml:"package,omitempty" json:"package,omitempty"`
		// Runtime marks the types of the runtime support library.
		Runtime  bool      `yaml:"runtime,omitempty" json:"runtime,omitempty"`
		Nullable bool      `yaml:"nullable,omitempty" json:"nullable,omitempty"`
		Args     []TypeRef `yaml:"args,omitempty" json:"args,omitempty"`
	}

	// Annotation is a named marker with an optional value.
	Annotation struct {
		Name  string `yaml:"name" json:"name"`
		Value string `yaml:"value,omitempty" json:"value,omitempty"`
	}

	// Param is a method parameter.
	Param struct {
		Name        string       `yaml:"name" json:"name"`
		Type        TypeRef      `yaml:"type" json:"type"`
		Annotations []Annotation `yaml:"annotations,omitempty" json:"annotations,omitempty"`
	}

	// FieldDecl is a field of a generated class.
	FieldDecl struct {
		Name        string       `yaml:"name" json:"name"`
		Type        TypeRef      `yaml:"type" json:"type"`
		Annotations []Annotation `yaml:"annotations,omitempty" json:"annotations,omitempty"`
	}

	// Method is a method of a generated type. Abstract methods have no body.
	Method struct {
		Name        string       `yaml:"name" json:"name"`
		Modifiers   []Modifier   `yaml:"modifiers,omitempty" json:"modifiers,omitempty"`
		Params      []Param      `yaml:"params,omitempty" json:"params,omitempty"`
		Returns     TypeRef      `yaml:"returns" json:"returns"`
		Annotations []Annotation `yaml:"annotations,omitempty" json:"annotations,omitempty"`
		Body        []Stmt       `yaml:"body,omitempty" json:"body,omitempty"`
	}
)

// QualifiedName returns the package-qualified name of the type.
func (r TypeRef) QualifiedName() string {
	return qualify(r.Package, r.Name)
}

// Method returns the named method, or nil.
func (a *Artifact) Method(name string) *Method {
	for i := range a.Methods {
		if a.Methods[i].Name == name {
			return &a.Methods[i]
		}
	}
	return nil
}

// QualifiedName returns the package-qualified artifact name.
func (a *Artifact) QualifiedName() string {
	return qualify(a.Package, a.Name)
}

// Annotation returns the value of the named annotation and whether it is set.
func (m *Method) Annotation(name string) (string, bool) {
	return lookupAnnotation(m.Annotations, name)
}

// Annotation returns the value of the named annotation and whether it is set.
func (p Param) Annotation(name string) (string, bool) {
	return lookupAnnotation(p.Annotations, name)
}

// ParamNames returns the parameter names in order.
func (m *Method) ParamNames() []string {
	names := make([]string, len(m.Params))
	for i, p := range m.Params {
		names[i] = p.Name
	}
	return names
}

func lookupAnnotation(as []Annotation, name string) (string, bool) {
	for _, a := range as {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Stmt is a statement of a generated method body. It is one of
// *PageableStmt, *CallStmt or *ReturnStmt.
type Stmt interface {
	stmt()
}

// Status is the status of a service response.
type Status uint8

// Response statuses.
const (
	StatusOK Status = iota
	StatusNoContent
)

// String returns the status name.
func (s Status) String() string {
	if s == StatusNoContent {
		return "no_content"
	}
	return "ok"
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type (
	// Call invokes a method on a field of the enclosing class.
	Call struct {
		Recv   string   `yaml:"recv" json:"recv"`
		Method string   `yaml:"method" json:"method"`
		Args   []string `yaml:"args,omitempty" json:"args,omitempty"`
	}

	// PageableStmt declares Var as the pagination descriptor normalized
	// from the nullable Page and PageSize parameters: if either is null
	// the descriptor covers the entire result set (offset 0, maximum
	// page size), otherwise it is (Page, PageSize).
	PageableStmt struct {
		Var      string `yaml:"var" json:"var"`
		Page     string `yaml:"page" json:"page"`
		PageSize string `yaml:"page_size" json:"page_size"`
	}

	// CallStmt evaluates a call for its side effects.
	CallStmt struct {
		Call Call `yaml:"call" json:"call"`
	}

	// ReturnStmt returns a response with the given status. The body is
	// the result of Call, or empty if Call is nil.
	ReturnStmt struct {
		Status Status `yaml:"status" json:"status"`
		Call   *Call  `yaml:"call,omitempty" json:"call,omitempty"`
	}
)

func (*PageableStmt) stmt() {}
func (*CallStmt) stmt()     {}
func (*ReturnStmt) stmt()   {}

// MarshalYAML tags the statement with its kind.
func (s *PageableStmt) MarshalYAML() (any, error) {
	type raw PageableStmt
	return map[string]*raw{"pageable": (*raw)(s)}, nil
}

// MarshalYAML tags the statement with its kind.
func (s *CallStmt) MarshalYAML() (any, error) {
	return map[string]Call{"call": s.Call}, nil
}

// MarshalYAML tags the statement with its kind.
func (s *ReturnStmt) MarshalYAML() (any, error) {
	type raw ReturnStmt
	return map[string]*raw{"return": (*raw)(s)}, nil
}

// Well-known type references.

func runtimeRef(name string, args ...TypeRef) TypeRef {
	return TypeRef{Name: name, Runtime: true, Args: args}
}

// RepositoryRef returns Repository<entity, id>.
func RepositoryRef(entity, id TypeRef) TypeRef { return runtimeRef(TypeRepository, entity, id) }

// ListRef returns List<elem>.
func ListRef(elem TypeRef) TypeRef { return runtimeRef(TypeList, elem) }

// PageRef returns Page<elem>.
func PageRef(elem TypeRef) TypeRef { return runtimeRef(TypePage, elem) }

// PageableRef returns the pagination descriptor type.
func PageableRef() TypeRef { return runtimeRef(TypePageable) }

// OptionalRef returns Optional<elem>.
func OptionalRef(elem TypeRef) TypeRef { return runtimeRef(TypeOptional, elem) }

// ResponseRef returns Response<body>.
func ResponseRef(body TypeRef) TypeRef { return runtimeRef(TypeResponse, body) }

// VoidRef returns the empty body type.
func VoidRef() TypeRef { return runtimeRef(TypeVoid) }

// NullableIntRef returns the nullable integer type of pagination parameters.
func NullableIntRef() TypeRef { return TypeRef{Name: TypeInt, Nullable: true} }
