package cmd

import (
	"fmt"
)

const banner = `
   _____           _
  / ____|         | |
 | |     ___ _ __ | |_ __ ___   _____
 | |    / _ \ '_ \| __/ _` + "`" + ` \ \ / / _ \
 | |___|  __/ | | | || (_| |\ V / (_) |
  \_____\___|_| |_|\__\__,_| \_/ \___/

`

func printBanner() {
	fmt.Printf("\x1b[33m%s\x1b[0m", banner)
	fmt.Printf("\x1b[32m  Personal Finance Tracker - Version %s\x1b[0m\n\n", Version)
}
