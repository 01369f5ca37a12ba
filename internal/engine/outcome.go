package engine

import "fmt"

// Stage identifies where in the clone pipeline a table failed.
type Stage string

const (
	StageConnect     Stage = "connect"
	StageSchemaRead  Stage = "schema read"
	StageSchemaWrite Stage = "schema write"
	StageRowRead     Stage = "row read"
	StageRowWrite    Stage = "row write"
)

// StageError wraps the underlying database error with the table and stage it
// occurred at. It is reported as data, never used to abort sibling workers.
type StageError struct {
	Stage Stage
	Table string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("table %s: %s: %v", e.Table, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Outcome is the terminal result of cloning one table.
type Outcome struct {
	Table string
	Err   error
}

func (o Outcome) Failed() bool {
	return o.Err != nil
}
