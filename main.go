package main

import "github.com/fastsecret/fastsecret/cmd/fastsecret"

func main() { fastsecret.Execute() }
