// Package main provides the clash command-line tool for resolving rounds and
// inspecting the ability catalog offline.
package main

import "github.com/cory-johannsen/clash/cmd/clash/cmd"

func main() {
	cmd.Execute()
}
