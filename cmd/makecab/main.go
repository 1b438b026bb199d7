// Command makecab compresses one file into an MSZIP cabinet.
package main

import "github.com/arloliu/mscab/internal/cli"

func main() {
	cli.Main()
}
