package vym_test

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sz10101/vym"
	"github.com/sz10101/vym/pkg/script"
)

func ExampleSession_RunLua() {
	s, err := vym.New()
	if err != nil {
		panic(err)
	}
	defer s.Close()
	s.NewMap()

	err = s.RunLua(context.Background(), "example.lua", `
		map:select("mc:0")
		map:addBranch()
		map:select("mc:0")
		print(map:centerCount(), map:branchCount())
	`, os.Stdout)
	if err != nil {
		panic(err)
	}
	// Output: 1	1
}

func ExampleSession_RunShell() {
	s, err := vym.New()
	if err != nil {
		panic(err)
	}
	defer s.Close()
	s.NewMap()

	err = s.RunShell(context.Background(), "example.sh", `
map select mc:0 >/dev/null
map addBranch
map addBranch
map select mc:0 >/dev/null
echo "branches: $(map branchCount)"
`, strings.NewReader(""), os.Stdout, os.Stdout)
	if err != nil {
		panic(err)
	}
	// Output: branches: 2
}

func ExampleSession_App() {
	s, err := vym.New()
	if err != nil {
		panic(err)
	}
	defer s.Close()

	var errs script.Errors
	s.App().Bind(&errs).SelectMap(3)
	fmt.Println(errs.Err())
	// Output: RangeError: Map '3' not available.
}
