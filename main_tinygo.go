//go:build tinygo

package main

import (
	"context"

	"github.com/Poorna2411/embedded-systems-projects/firmware"
	"github.com/Poorna2411/embedded-systems-projects/hal"
)

func main() {
	b := firmware.NewBoard(hal.New())
	_ = b.Run(context.Background())
}
