/*
Package vym is a scripting host for vym mind maps.

It keeps open maps in memory and exposes them through two script façades: vym,
for the application, and map, for the focused document. Scripts reach the
façades from Lua, from POSIX shell, over HTTP or as MCP tools. All surfaces share
one dispatch table, so an operation behaves the same everywhere.

Errors raised by an operation go to the script context of the running engine:
a Lua error, a non-zero shell exit status, an HTTP 422 body, an MCP tool error.
The operation itself still returns its neutral value ("", false or -1).

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/sz10101/vym"
	)

	func main() {
		s, err := vym.New()
		if err != nil {
			log.Fatal(err)
		}
		defer s.Close()

		if _, err := s.Open("plan.vym"); err != nil {
			log.Fatal(err)
		}

		err = s.RunLua(context.Background(), "inline", `
			map:select("mc:0")
			map:addBranch()
			map:setHeadingPlainText("next step")
			map:exportMap("ASCII", {"filename=plan.txt"})
		`)
		if err != nil {
			log.Fatal(err)
		}
	}

Quirks of the legacy scripting interface are kept by default. Fixes and
xmlobj.Fixes switch them off one by one.
*/
package vym
