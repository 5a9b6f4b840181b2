package io

import (
	"context"
	"database/sql"
)

//Querier represents statement runner shared by *sql.Tx and *sql.Conn
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

//Session binds staging and statement execution to a single connection or transaction
type Session struct {
	Querier
	Tx   *sql.Tx
	Conn *sql.Conn
	//Global is true when connection or transaction was supplied by the caller
	Global bool
}

//SessionFor returns a session, caller transaction takes precedence over caller connection,
//otherwise a dedicated connection is acquired from the pool
func SessionFor(ctx context.Context, db *sql.DB, tx *sql.Tx, conn *sql.Conn) (*Session, error) {
	if tx != nil {
		return &Session{Querier: tx, Tx: tx, Global: true}, nil
	}
	if conn != nil {
		return &Session{Querier: conn, Conn: conn, Global: true}, nil
	}
	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, err
	}
	return &Session{Querier: conn, Conn: conn}, nil
}

//Close releases connection opened by SessionFor, caller resources are left untouched
func (s *Session) Close() error {
	if s.Global || s.Conn == nil {
		return nil
	}
	err := s.Conn.Close()
	s.Conn = nil
	return err
}
