package main

import (
	_ "expvar" // /debug/vars
	"flag"
	"log"
	_ "net/http/pprof" // /debug/pprof
)

func main() {
	di := flag.String("di", "manual", "dependency injection: manual | dig")
	flag.Parse()

	switch *di {
	case "manual":
		startManual()
	case "dig":
		startWithDig()
	default:
		log.Fatalf("unknown dependency injection %q", *di)
	}
}
