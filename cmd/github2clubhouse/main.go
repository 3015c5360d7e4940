// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-02
// Last Modified: 2026-10-19

// Package main is the entry point for the github2clubhouse CLI.
package main

import "github.com/similigh/github2clubhouse/cmd/github2clubhouse/commands"

func main() {
	commands.Execute()
}
