// Command schema prepares a PostgreSQL database to track schema changes.
package main

import "github.com/aqasim81/schema/internal/cli"

func main() {
	cli.Execute()
}
