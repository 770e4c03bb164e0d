//go:build !tinygo

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/Poorna2411/embedded-systems-projects/firmware"
	"github.com/Poorna2411/embedded-systems-projects/hal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	b := firmware.NewBoard(hal.New())
	if err := b.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
