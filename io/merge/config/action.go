package config

//Kind represents branch action kind
type Kind int

const (
	//None omits branch
	None Kind = iota
	Insert
	Update
	Delete
)

func (k Kind) String() string {
	switch k {
	case Insert:
		return "insert"
	case Update:
		return "update"
	case Delete:
		return "delete"
	}
	return "none"
}

//Action represents a single WHEN branch action
type Action struct {
	Kind Kind
	//Condition is raw predicate text referencing Target and Source aliases.
	//It is embedded verbatim, never pass untrusted input.
	Condition string
	//Columns restricts insert/update column set
	Columns []string
}

//ActionFn configures branch action, branch without ActionFn is omitted
type ActionFn func(action *Action)

//Insert sets insert action with optional column subset
func (a *Action) Insert(columns ...string) *Action {
	a.Kind = Insert
	a.Columns = columns
	return a
}

//Update sets update action with optional column subset
func (a *Action) Update(columns ...string) *Action {
	a.Kind = Update
	a.Columns = columns
	return a
}

//Delete sets delete action
func (a *Action) Delete() *Action {
	a.Kind = Delete
	a.Columns = nil
	return a
}

//None omits branch
func (a *Action) None() *Action {
	a.Kind = None
	a.Columns = nil
	return a
}

//When sets guard condition appended as AND (<condition>), condition text is trusted and not escaped
func (a *Action) When(condition string) *Action {
	a.Condition = condition
	return a
}
