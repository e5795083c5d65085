// Command inbetween generates inbetween frames between two cel animation
// keyframes.
//
// Usage:
//
//	inbetween inbetween --a key_a.png --b key_b.png --n 3 --out frames/
//	inbetween inbetween --a a.png --b b.png --n 7 --out out --prefix walk_ --start-index 101
//	inbetween --config shot.yaml inbetween --parallel
//
// Parameters may also come from a YAML file (--config) and INBETWEEN_*
// environment variables. Explicit flags take precedence over both.
package main

import (
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
