// Copyright 2025-2026, Coprocessor Labs, Inc.
// For license information, see https://github.com/coprocessor-labs/stateproof/blob/main/LICENSE

package colors

import "fmt"

var (
	Red    = "\033[31;1m"
	Blue   = "\033[34;1m"
	Yellow = "\033[33;1m"
	Grey   = "\033[90m"
	Clear  = "\033[0;0m"
)

func PrintRed(args ...interface{}) {
	print(Red)
	fmt.Print(args...)
	println(Clear)
}

func PrintGrey(args ...interface{}) {
	print(Grey)
	fmt.Print(args...)
	println(Clear)
}
