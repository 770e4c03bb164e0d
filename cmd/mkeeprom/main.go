//go:build !tinygo

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Poorna2411/embedded-systems-projects/firmware/store"
)

const (
	defaultPath = "cmdlogger.eeprom"
	defaultSize = 4096
)

func main() {
	var (
		path     = flag.String("path", defaultPath, "EEPROM image file.")
		size     = flag.Uint("size", defaultSize, "Image size in bytes (with -init).")
		initImg  = flag.Bool("init", false, "Create a zero-filled image.")
		listRecs = flag.Int("list", 0, "Decode and print the first N task records.")
	)
	flag.Parse()

	if err := run(*path, uint32(*size), *initImg, *listRecs); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(path string, size uint32, initImg bool, listRecs int) error {
	if initImg {
		return initImage(path, size)
	}
	if listRecs > 0 {
		return listRecords(path, listRecs)
	}
	flag.Usage()
	return nil
}

func initImage(path string, size uint32) error {
	if size == 0 {
		return fmt.Errorf("mkeeprom: invalid size %d", size)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open image %q: %w", path, err)
	}
	defer f.Close()
	if err := f.Truncate(int64(size)); err != nil {
		return fmt.Errorf("truncate image %q to %d: %w", path, size, err)
	}
	fmt.Printf("initialized %s (%d bytes, room for %d records)\n", path, size, size/store.RecordSize)
	return nil
}

func listRecords(path string, n int) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open image %q: %w", path, err)
	}
	defer f.Close()

	rec := make([]byte, store.RecordSize)
	for i := 0; i < n; i++ {
		if _, err := f.ReadAt(rec, int64(i)*store.RecordSize); err != nil {
			return fmt.Errorf("read record %d: %w", i, err)
		}
		payload, priority, delay, err := store.DecodeRecord(rec)
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		fmt.Printf("%d: [%d] %s (delay %d ticks)\n", i+1, priority, payload, delay)
	}
	return nil
}
