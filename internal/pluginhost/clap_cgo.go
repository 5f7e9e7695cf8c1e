//go:build clap

package pluginhost

import "fmt"

// This file is the seam where a real CLAP host binding would live. No
// pure-Go or cgo CLAP binding exists in this project's dependency set, so
// the clap build tag is not wired into any build target: enabling it gets
// you a Loader that fails closed rather than a fake plugin host.
//
// A real implementation would mirror clack-host's plugin-bundle /
// factory / instance lifecycle: open the bundle, read the first
// descriptor, construct a PluginInstance with the host identity
// declared in host.go, activate it at the negotiated sample rate and
// frame count, and start processing.

type clapLoader struct{}

// NewCLAPLoader returns a Loader for the clap build tag. It always fails;
// see the file comment above for why.
func NewCLAPLoader() Loader { return clapLoader{} }

func (clapLoader) Load(path string, sampleRate float64, maxFrames int) (*Handle, error) {
	return nil, fmt.Errorf("pluginhost: CLAP hosting requires a native clap-host binding not available in this build")
}
