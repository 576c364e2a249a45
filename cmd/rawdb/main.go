/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/pprehq/rawdb/cmd/rawdb/cmd"

func main() {
	cmd.Execute()
}
