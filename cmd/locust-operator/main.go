package main

import "github.com/NVIDIA/locust-operator/pkg/cli"

func main() {
	cli.Execute()
}
