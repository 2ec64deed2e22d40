// replay runs an archived provider reply through extraction and
// reconciliation, printing the normalized record. Handy for inspecting
// replies pulled from the R2 archive.
//
// Usage: replay <reply.json>
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/bechobazaar/geminiai/internal/advice"
	"github.com/bechobazaar/geminiai/internal/config"
	"github.com/bechobazaar/geminiai/internal/llm"
)

func main() {
	if len(os.Args) != 2 {
		log.Fatalf("usage: %s <reply.json>", os.Args[0])
	}

	raw, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}

	text, err := llm.ExtractText(raw)
	if err != nil {
		log.Fatal("extract failed:", err)
	}

	cfg := config.Load()
	reconciler := advice.NewReconciler(cfg.MaxSources, cfg.SuggestWeight)

	result, err := reconciler.Reconcile(text, nil)
	if err != nil {
		log.Fatal("reconcile failed:", err)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(out))
}
