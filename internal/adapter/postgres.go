package adapter

import (
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx database/sql driver
)

// postgresDSN builds a key=value connection string for pgx.
func postgresDSN(p Profile) (string, string) {
	host := p.Host
	if host == "" {
		host = "localhost"
	}
	port := p.Port
	if port == 0 {
		port = 5432
	}
	sslmode := p.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}

	dsn := fmt.Sprintf("host=%s port=%d dbname=%s sslmode=%s",
		host, port, p.Database, sslmode)
	if p.User != "" {
		dsn += fmt.Sprintf(" user=%s", p.User)
	}
	if p.Password != "" {
		dsn += fmt.Sprintf(" password=%s", p.Password)
	}
	return "pgx", dsn
}
