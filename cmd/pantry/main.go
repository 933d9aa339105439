// Command pantry tracks pantry items, quantities, and expiry dates.
package main

import "github.com/mesh-intelligence/pantry/internal/cli"

func main() {
	cli.Execute()
}
