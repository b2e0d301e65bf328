package main

import "github.com/infraiq/wraith-go/internal/cli"

func main() {
	cli.Execute()
}
