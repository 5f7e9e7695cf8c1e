// Command termdaw-render renders a project file to a WAV file offline,
// driving the same engine pipeline the real-time device callback uses.
package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/termdaw/engine/internal/engine"
	"github.com/termdaw/engine/internal/render"
	"github.com/termdaw/engine/internal/sampleio"
)

func main() {
	projectPath := pflag.StringP("project", "p", "", "Project file (JSON) to render")
	samplesDir := pflag.StringP("samples-dir", "s", ".", "Directory sample_path entries are resolved against")
	sampleRate := pflag.IntP("sample-rate", "r", 44100, "Render sample rate in Hz")
	stepsPerBar := pflag.Int("steps-per-bar", 16, "Step grid resolution per bar")
	out := pflag.StringP("out", "o", "output.wav", "Output WAV file path")
	help := pflag.BoolP("help", "h", false, "Display help text")
	pflag.Parse()

	if *help || *projectPath == "" {
		pflag.Usage()
		if *projectPath == "" {
			os.Exit(2)
		}
		os.Exit(0)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})

	project, err := render.LoadProject(*projectPath)
	if err != nil {
		logger.Error("failed to load project", "path", *projectPath, "err", err)
		os.Exit(1)
	}

	loader := prefixedLoader(*samplesDir)
	state := engine.New(float64(*sampleRate), project.BPM, loader)
	handle := engine.NewHandle(state)

	handle.UpdateMixer(project.Mixer())
	project.ApplyRouting(handle)

	cfg := render.Config{
		SampleRate:  float64(*sampleRate),
		BPM:         project.BPM,
		StepsPerBar: *stepsPerBar,
	}

	start := time.Now()
	samples := render.Render(
		state,
		project.ChannelsForRender(),
		project.PatternsForRender(),
		project.ArrangementForRender(),
		cfg,
	)
	logger.Info("rendered project", "frames", len(samples)/2, "elapsed", time.Since(start))

	if err := render.WriteWAV(*out, samples, *sampleRate); err != nil {
		logger.Error("failed to write wav", "path", *out, "err", err)
		os.Exit(1)
	}
	logger.Info("wrote output", "path", *out)
}

func prefixedLoader(dir string) engine.SampleLoader {
	return func(path string) (*engine.Sample, error) {
		return sampleio.Load(filepath.Join(dir, path))
	}
}
