package errx

import (
	"errors"
	"fmt"
	"testing"

	mssql "github.com/denisenkom/go-mssqldb"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateKey(t *testing.T) {
	if !IsDuplicateKey(errors.New("mssql: Violation of PRIMARY KEY constraint 'PK_Customer'. Cannot insert duplicate key in object 'dbo.Customer'.")) {
		t.Fatalf("expected duplicate key match")
	}
}

func TestIsConstraint(t *testing.T) {
	if !IsConstraint(errors.New("mssql: Cannot insert the value NULL into column 'Name', table 'tempdb.dbo.Customer'")) {
		t.Fatalf("expected constraint match")
	}
}

func TestIsDeadlock(t *testing.T) {
	victim := mssql.Error{Number: 1205, Message: "Transaction (Process ID 52) was deadlocked on lock resources"}
	assert.True(t, IsDeadlock(Execution("merge", "[Customer]", victim)))
	assert.False(t, IsDeadlock(Execution("merge", "[Customer]", mssql.Error{Number: 2627})))
	assert.False(t, IsDeadlock(nil))
}

func TestWrappedErrors_Is(t *testing.T) {
	dup := DuplicateKey("insert", "foo", errors.New("duplicate key value violates unique constraint"))
	if !errors.Is(dup, ErrDuplicateKey) {
		t.Fatalf("expected errors.Is(ErrDuplicateKey)")
	}
	missing := MissingIdentity("merge", "foo")
	assert.True(t, errors.Is(missing, ErrMissingIdentity))
	assert.True(t, IsConfiguration(missing))
	assert.False(t, IsExecution(missing))
}

func TestError_Error(t *testing.T) {
	var testCases = []struct {
		description string
		err         error
		expect      string
		kind        error
	}{
		{
			description: "configuration with columns",
			err:         Configuration("merge", "[Foo]", []string{"Bar"}, "unknown column %v", "Bar"),
			expect:      "sqlmerge merge: configuration error: unknown column Bar table=[Foo] columns=[Bar]",
			kind:        ErrConfiguration,
		},
		{
			description: "input",
			err:         Input("upsert", "records were nil"),
			expect:      "sqlmerge upsert: input error: records were nil",
			kind:        ErrInput,
		},
		{
			description: "transfer with cause",
			err:         Transfer("stage", "#merge_1", fmt.Errorf("broken pipe")),
			expect:      "sqlmerge stage: transfer fault table=#merge_1: broken pipe",
			kind:        ErrTransfer,
		},
	}

	for _, testCase := range testCases {
		assert.EqualValues(t, testCase.expect, testCase.err.Error(), testCase.description)
		assert.True(t, errors.Is(testCase.err, testCase.kind), testCase.description)
	}
}

func TestExecution_PreservesCause(t *testing.T) {
	cause := mssql.Error{Number: 2627, Message: "Violation of UNIQUE KEY constraint"}
	err := Execution("merge", "[Foo]", cause)
	var actual mssql.Error
	assert.True(t, errors.As(err, &actual))
	assert.EqualValues(t, 2627, actual.Number)
	assert.True(t, IsDuplicateKey(err))
}

func TestFault(t *testing.T) {
	var testCases = []struct {
		description  string
		cause        error
		duplicateKey bool
		constraint   bool
	}{
		{description: "primary key number", cause: mssql.Error{Number: 2627, Message: "Violation of PRIMARY KEY constraint 'PK_Foo'"}, duplicateKey: true},
		{description: "unique index number", cause: mssql.Error{Number: 2601, Message: "Cannot insert duplicate key row"}, duplicateKey: true},
		{description: "foreign key number", cause: mssql.Error{Number: 547, Message: "The MERGE statement conflicted with the FOREIGN KEY constraint"}, constraint: true},
		{description: "not null text", cause: errors.New("Cannot insert the value NULL into column 'Name'"), constraint: true},
		{description: "other fault", cause: mssql.Error{Number: 208, Message: "Invalid object name 'Foo'"}},
	}

	for _, testCase := range testCases {
		err := Fault("merge", "[Foo]", testCase.cause)
		assert.True(t, IsExecution(err), testCase.description)
		assert.True(t, errors.Is(err, testCase.cause), testCase.description)
		assert.EqualValues(t, testCase.duplicateKey, errors.Is(err, ErrDuplicateKey), testCase.description)
		assert.EqualValues(t, testCase.constraint, errors.Is(err, ErrConstraint), testCase.description)
	}
}
