package gen

// BuildRepository builds the repository artifact of e: an interface
// extending Repository<Entity, ID> with an abstract allByFilter method
// when the filter of c selects any field.
func BuildRepository(naming NamingPolicy, c Crud, e Entity) (*Artifact, error) {
	if err := checkEntity(naming, e); err != nil {
		return nil, err
	}
	fields, err := filterFields(e, c)
	if err != nil {
		return nil, err
	}
	entity := EntityRef(e)
	a := &Artifact{
		Kind:       KindInterface,
		Name:       naming.RepositoryName(e.Name()),
		Package:    e.PackageName(),
		Supertypes: []TypeRef{RepositoryRef(entity, FieldRef(e.IDType()))},
	}
	if len(fields) == 0 {
		return a, nil
	}
	m, err := filterMethod(e, fields, c)
	if err != nil {
		return nil, err
	}
	a.Methods = []Method{m}
	return a, nil
}

func filterMethod(e Entity, fields []string, c Crud) (Method, error) {
	params, err := BuildParams(fields, e.FieldType, BindParam)
	if err != nil {
		return Method{}, err
	}
	qfields, err := QueryFields(e, fields)
	if err != nil {
		return Method{}, err
	}
	entity := EntityRef(e)
	m := Method{
		Name:      MethodAllByFilter,
		Modifiers: []Modifier{ModPublic, ModAbstract},
		Params:    params,
		Returns:   ListRef(entity),
		Annotations: []Annotation{{
			Name:  AnnotationQuery,
			Value: FilterQuery(e.Name(), qfields, c.Filter.Like),
		}},
	}
	if c.Pagination {
		m.Returns = PageRef(entity)
		m.Params = append(m.Params, Param{Name: ParamPageable, Type: PageableRef()})
	}
	return m, nil
}

// checkEntity rejects degenerate inputs shared by both builders.
func checkEntity(naming NamingPolicy, e Entity) error {
	if e == nil || e.Name() == "" {
		return &SchemaError{Cause: ErrEmptyEntityName}
	}
	if err := naming.Validate(); err != nil {
		return err
	}
	if e.IDType() == nil {
		return NewUnresolvedFieldError(e.Name(), ParamID, "identifier field has no declared type", nil)
	}
	return nil
}
