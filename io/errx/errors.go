package errx

import (
	"errors"
	"fmt"
	"strings"

	mssql "github.com/denisenkom/go-mssqldb"
)

var (
	// ErrConfiguration indicates an invalid merge setup: no identity columns, unknown columns,
	// or an action that is not allowed for a branch. It is raised before any I/O.
	ErrConfiguration = errors.New("configuration error")

	// ErrInput indicates the caller supplied no input (nil record or nil pointer).
	ErrInput = errors.New("input error")

	// ErrTransfer indicates the bulk row transfer into the staging relation failed.
	// The staging relation is in an undefined state and the merge statement was not executed.
	ErrTransfer = errors.New("transfer fault")

	// ErrExecution indicates the database rejected or failed the assembled statement.
	ErrExecution = errors.New("execution fault")

	// ErrMissingIdentity indicates the identity (ON) column set resolved to nothing.
	ErrMissingIdentity = errors.New("missing identity")

	// ErrDuplicateKey indicates an insert/update violated a unique constraint.
	// Note: many drivers return opaque error types; use IsDuplicateKey to detect.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrConstraint indicates a generic constraint violation (FK/CK/NOT NULL/etc).
	ErrConstraint = errors.New("constraint violation")
)

const deadlockErrorNumber = 1205

//SQL Server error numbers for unique index, primary/unique key, constraint conflict and NOT NULL violations
var (
	duplicateKeyNumbers = []int32{2601, 2627}
	constraintNumbers   = []int32{547, 515}
)

// Error carries structured context while remaining compatible with errors.Is().
type Error struct {
	Kind    error
	Op      string
	Table   string
	Columns []string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	sb := &strings.Builder{}
	sb.WriteString("sqlmerge")
	if e.Op != "" {
		sb.WriteString(" ")
		sb.WriteString(e.Op)
	}
	sb.WriteString(": ")
	if e.Kind != nil {
		sb.WriteString(e.Kind.Error())
	} else {
		sb.WriteString("error")
	}
	if e.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	}
	if e.Table != "" {
		sb.WriteString(" table=")
		sb.WriteString(e.Table)
	}
	if len(e.Columns) > 0 {
		sb.WriteString(" columns=[")
		sb.WriteString(strings.Join(e.Columns, ","))
		sb.WriteString("]")
	}
	if e.Cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Cause.Error())
	}
	return sb.String()
}

func (e *Error) Unwrap() error { return e.Cause }

func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}
	if e.Kind != nil && target == e.Kind {
		return true
	}
	if e.Cause != nil {
		return errors.Is(e.Cause, target)
	}
	return false
}

// Configuration returns a configuration error
func Configuration(op, table string, columns []string, format string, args ...interface{}) error {
	return &Error{
		Kind:    ErrConfiguration,
		Op:      op,
		Table:   table,
		Columns: columns,
		Message: fmt.Sprintf(format, args...),
	}
}

// MissingIdentity returns a configuration error for an empty identity column set
func MissingIdentity(op, table string) error {
	return &Error{
		Kind:    ErrConfiguration,
		Op:      op,
		Table:   table,
		Message: "at least one key, explicit key or key override column is required",
		Cause:   ErrMissingIdentity,
	}
}

// Input returns an input error
func Input(op string, format string, args ...interface{}) error {
	return &Error{
		Kind:    ErrInput,
		Op:      op,
		Message: fmt.Sprintf(format, args...),
	}
}

// Transfer wraps a bulk transfer failure
func Transfer(op, table string, cause error) error {
	return &Error{
		Kind:  ErrTransfer,
		Op:    op,
		Table: table,
		Cause: cause,
	}
}

// Execution wraps a statement execution failure, cause stays reachable with errors.As
func Execution(op, table string, cause error) error {
	return &Error{
		Kind:  ErrExecution,
		Op:    op,
		Table: table,
		Cause: cause,
	}
}

// DuplicateKey wraps a unique constraint violation
func DuplicateKey(op, table string, cause error) error {
	return &Error{
		Kind:  ErrDuplicateKey,
		Op:    op,
		Table: table,
		Cause: cause,
	}
}

// Constraint wraps a constraint violation other than a duplicate key
func Constraint(op, table string, cause error) error {
	return &Error{
		Kind:  ErrConstraint,
		Op:    op,
		Table: table,
		Cause: cause,
	}
}

func IsConfiguration(err error) bool { return errors.Is(err, ErrConfiguration) }

func IsInput(err error) bool { return errors.Is(err, ErrInput) }

func IsTransfer(err error) bool { return errors.Is(err, ErrTransfer) }

func IsExecution(err error) bool { return errors.Is(err, ErrExecution) }

func IsMissingIdentity(err error) bool { return errors.Is(err, ErrMissingIdentity) }

// IsDeadlock returns true if err was caused by SQL Server choosing the statement as a deadlock victim.
// The library never retries, callers wanting retry-on-deadlock use this to decide.
func IsDeadlock(err error) bool {
	var sqlErr mssql.Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Number == deadlockErrorNumber
	}
	return strings.Contains(strings.ToLower(errString(err)), "deadlock victim")
}

func IsDuplicateKey(err error) bool {
	if errors.Is(err, ErrDuplicateKey) || hasNumber(err, duplicateKeyNumbers) {
		return true
	}
	msg := strings.ToLower(errString(err))
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "violation of primary key constraint") ||
		strings.Contains(msg, "violation of unique key constraint")
}

func IsConstraint(err error) bool {
	if errors.Is(err, ErrConstraint) || hasNumber(err, constraintNumbers) {
		return true
	}
	msg := strings.ToLower(errString(err))
	return strings.Contains(msg, "conflicted with the") ||
		strings.Contains(msg, "cannot insert the value null") ||
		strings.Contains(msg, "foreign key constraint") ||
		strings.Contains(msg, "check constraint")
}

// Fault wraps a statement execution failure, recognized constraint violations keep their kind
func Fault(op, table string, cause error) error {
	switch {
	case IsDuplicateKey(cause):
		cause = DuplicateKey(op, table, cause)
	case IsConstraint(cause):
		cause = Constraint(op, table, cause)
	}
	return Execution(op, table, cause)
}

func hasNumber(err error, numbers []int32) bool {
	var sqlErr mssql.Error
	if !errors.As(err, &sqlErr) {
		return false
	}
	for _, number := range numbers {
		if sqlErr.Number == number {
			return true
		}
	}
	return false
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
