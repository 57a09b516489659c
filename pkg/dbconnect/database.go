package dbconnect

import "database/sql"

type Database interface {
	Connect() (*sql.DB, error)
	Ping() error
}

type DbConnector interface {
	Connect() (*sql.DB, error)
}
