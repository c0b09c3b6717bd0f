package main

import (
	"os"

	billragcmder "github.com/rashtram/billrag/cmd/billrag"
)

func main() {
	cmd := billragcmder.NewBillragCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
