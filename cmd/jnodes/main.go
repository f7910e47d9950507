package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/opensvc/jnodes/core/jnodes"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			filename := filepath.Join(os.TempDir(), "jnodes.stack")
			if f, err := os.Create(filename); err == nil {
				defer f.Close()
				fmt.Fprintf(f, "panic: %s\n\n", r)
				fmt.Fprint(f, string(debug.Stack()))
			}
			panic(r)
		}
	}()
	jnodes.Execute()
}
