package main

import (
	"github.com/architeacher/inventory/internal/runtime"
)

func main() {
	runtime.New().Run()
}
