package cmd

import (
	"fmt"
	"runtime"

	"github.com/tucanbot/flowgate/pkg/version"
)

func printVersion(verbose bool) {
	fmt.Println("Flowgate version: ", version.FlowgateVersion, runtime.GOOS+"/"+runtime.GOARCH)
	if verbose {
		fmt.Println("  Commit: ", version.Commit)
		fmt.Println("  Built:  ", version.BuildDate)
		fmt.Println("  Go:     ", runtime.Version())
	}
}
