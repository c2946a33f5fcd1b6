// Package golang renders repository and service artifacts as Go source.
//
// A repository artifact becomes an interface embedding crud.Repository,
// with the filter query and parameter bindings of its filter method kept
// as directive comments:
//
//	type UserRepository interface {
//		crud.Repository[User, int]
//
//		//crudgen:query select o from User o where (:name is null or o.name = :name)
//		//crudgen:param name=name
//		AllByFilter(ctx context.Context, name *string) ([]User, error)
//	}
//
// A service artifact becomes a struct holding the repository, with a
// constructor and one method per operation. Every method takes a context
// and returns a crud.Response.
//
// Filter parameters are rendered as pointers, so a nil argument disables
// its clause of the query.
package golang
