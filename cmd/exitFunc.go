package cmd

import "os"

// exitFunc allows tests to stub process exit behavior without terminating the
// test binary.
var exitFunc = os.Exit
