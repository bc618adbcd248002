// progkit-idl emits the interface description of a progkit program as JSON.
//
// It registers the escrow reference program and prints its IDL; programs
// built on progkit copy this wiring with their own registry.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fortiblox/x1-progkit/pkg/escrow"
	"github.com/fortiblox/x1-progkit/pkg/idl"
)

var (
	outPath = flag.String("out", "", "Write the IDL to this file (default stdout)")
	version = flag.String("version", "0.1.0", "Version string embedded in the IDL")
)

func main() {
	flag.Parse()

	doc := idl.Generate("escrow", *version, escrow.NewRegistry(), escrow.StateLayout)
	data, err := doc.JSON()
	if err != nil {
		log.Fatalf("rendering IDL: %v", err)
	}

	if *outPath == "" {
		fmt.Println(string(data))
		return
	}
	if err := os.WriteFile(*outPath, append(data, '\n'), 0o644); err != nil {
		log.Fatalf("writing %s: %v", *outPath, err)
	}
}
