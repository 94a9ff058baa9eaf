package main

import (
	"fmt"
	"os"

	"fjacquet/expense-etl/cmd/report"
	"fjacquet/expense-etl/cmd/root"
	"fjacquet/expense-etl/cmd/upload"
)

func init() {
	root.Cmd.AddCommand(upload.Cmd)
	root.Cmd.AddCommand(report.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
