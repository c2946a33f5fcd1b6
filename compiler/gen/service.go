package gen

// BuildService builds the service artifact of e: a class holding the
// injected repository and the operations save, one, all and delete, in
// that order. The calls it generates use the method names and parameter
// order of the artifact built by BuildRepository for the same input.
func BuildService(naming NamingPolicy, c Crud, e Entity) (*Artifact, error) {
	if err := checkEntity(naming, e); err != nil {
		return nil, err
	}
	fields, err := filterFields(e, c)
	if err != nil {
		return nil, err
	}
	entity := EntityRef(e)
	id := FieldRef(e.IDType())
	all, err := allMethod(e, fields, c)
	if err != nil {
		return nil, err
	}
	methods := []Method{
		{
			Name:      MethodServiceSave,
			Modifiers: []Modifier{ModPublic},
			Params:    []Param{{Name: ParamEntity, Type: entity}},
			Returns:   ResponseRef(entity),
			Body: []Stmt{
				&ReturnStmt{Status: StatusOK, Call: repositoryCall(MethodSave, ParamEntity)},
			},
		},
		{
			Name:      MethodServiceOne,
			Modifiers: []Modifier{ModPublic},
			Params:    []Param{{Name: ParamID, Type: id}},
			Returns:   ResponseRef(OptionalRef(entity)),
			Body: []Stmt{
				&ReturnStmt{Status: StatusOK, Call: repositoryCall(MethodFindByID, ParamID)},
			},
		},
		all,
		{
			Name:      MethodServiceDelete,
			Modifiers: []Modifier{ModPublic},
			Params:    []Param{{Name: ParamID, Type: id}},
			Returns:   ResponseRef(VoidRef()),
			Body: []Stmt{
				&CallStmt{Call: *repositoryCall(MethodDeleteByID, ParamID)},
				&ReturnStmt{Status: StatusNoContent},
			},
		},
	}
	return &Artifact{
		Kind:        KindClass,
		Name:        naming.ServiceName(e.Name()),
		Package:     e.PackageName(),
		Annotations: []Annotation{{Name: AnnotationComponent}},
		Fields: []FieldDecl{{
			Name: FieldRepository,
			Type: TypeRef{
				Name:    naming.RepositoryName(e.Name()),
				Package: e.PackageName(),
			},
			Annotations: []Annotation{{Name: AnnotationInject}},
		}},
		Methods: methods,
	}, nil
}

// allMethod builds the list operation. Without filter fields it lists
// through the generic repository, otherwise through allByFilter with the
// filter arguments in declaration order.
func allMethod(e Entity, fields []string, c Crud) (Method, error) {
	entity := EntityRef(e)
	m := Method{
		Name:      MethodServiceAll,
		Modifiers: []Modifier{ModPublic},
		Returns:   ResponseRef(ListRef(entity)),
	}
	call := repositoryCall(MethodFindAll)
	if len(fields) > 0 {
		params, err := BuildParams(fields, e.FieldType, nil)
		if err != nil {
			return Method{}, err
		}
		m.Params = params
		call = repositoryCall(MethodAllByFilter, m.ParamNames()...)
	}
	if c.Pagination {
		m.Returns = ResponseRef(PageRef(entity))
		m.Params = append(m.Params,
			Param{Name: ParamPage, Type: NullableIntRef()},
			Param{Name: ParamPageSize, Type: NullableIntRef()},
		)
		m.Body = append(m.Body, &PageableStmt{Var: ParamPageable, Page: ParamPage, PageSize: ParamPageSize})
		call.Args = append(call.Args, ParamPageable)
	}
	m.Body = append(m.Body, &ReturnStmt{Status: StatusOK, Call: call})
	return m, nil
}

func repositoryCall(method string, args ...string) *Call {
	return &Call{Recv: FieldRepository, Method: method, Args: args}
}
