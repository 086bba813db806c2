package constants_test

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/agentstation/toolmap/pkg/constants"
)

// Example_timeouts demonstrates bounding a refresh with the load timeout
func Example_timeouts() {
	ctx, cancel := context.WithTimeout(context.Background(), constants.LoadTimeout)
	defer cancel()

	_, hasDeadline := ctx.Deadline()
	fmt.Println("refresh bounded:", hasDeadline)
	fmt.Println("auto refresh every", constants.DefaultAutoUpdateInterval)
	// Output:
	// refresh bounded: true
	// auto refresh every 1m0s
}

// Example_paths shows where the user overrides file lives by default
func Example_paths() {
	fmt.Println(filepath.Join("home", constants.ConfigDirName, constants.OverridesFileName))
	fmt.Printf("%o\n", constants.FilePermissions)
	// Output:
	// home/.toolmap/servers.yaml
	// 644
}
