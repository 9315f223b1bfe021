package main

import "eventify/migration"

func main() {
	migration.RunMigration()
}
