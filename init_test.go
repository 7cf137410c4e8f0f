package nalloc

import "github.com/bnclabs/golog"

import "github.com/nzengi/nalloc/malloc"

func init() {
	setts := map[string]interface{}{
		"log.level":      "ignore",
		"log.colorfatal": "red",
		"log.colorerror": "hired",
		"log.colorwarn":  "yellow",
	}
	log.SetLogger(nil, setts)
	malloc.LogComponents("all")

	// keep the reservations small for the test process.
	Setcapacities(16*1024*1024, 64*1024*1024, 32*1024*1024)
}
