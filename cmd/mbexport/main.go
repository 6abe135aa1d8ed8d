// Command mbexport lists, settles and exports calculations straight from
// the MoneyBalance database.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
