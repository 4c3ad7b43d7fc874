package main

import (
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/tankerops/dbsetup/cmd"
)

func main() {
	cmd.Execute()
}
