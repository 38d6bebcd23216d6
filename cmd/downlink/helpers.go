package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

func humanBytes(value int64) string {
	if value < 0 {
		return "unknown"
	}
	return humanize.IBytes(uint64(value))
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

func percent(value int64) string {
	return fmt.Sprintf("%d%%", value)
}
