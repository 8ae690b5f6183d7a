// Command schema writes the JSON schema of luna configuration, embedded by pkg/config
// to verify loaded config files.
package main

import (
	"encoding/json"
	"os"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/luna/pkg/config"
)

func main() {
	out := "schema.json"
	if len(os.Args) > 1 {
		out = os.Args[1]
	}

	schema, err := config.GenerateSchema()
	if err != nil {
		lgr.Fatalf("[ERROR] can't generate schema: %v", err)
	}
	schema.Title = "luna configuration"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		lgr.Fatalf("[ERROR] can't marshal schema: %v", err)
	}
	if err := os.WriteFile(out, append(data, '\n'), 0o600); err != nil { //nolint:gosec // schema is not sensitive
		lgr.Fatalf("[ERROR] can't write %s: %v", out, err)
	}
	lgr.Printf("[INFO] schema written to %s", out)
}
