// Command testfront is a headless libretro frontend: it loads a core and a
// game, drives emulation at the core's native frame rate, plays audio, and
// persists SRAM on exit. Video frames are counted, not rendered.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/team-phoenix/TestFront/api"
	"github.com/team-phoenix/TestFront/core"
	"github.com/team-phoenix/TestFront/storage"
)

// dataDirName is the per-user data directory this binary stores config,
// saves, and states under.
const dataDirName = "TestFront"

var (
	corePath  string
	gamePath  string
	frames    int
	mute      bool
	stateSlot int
	loadState bool
)

func init() {
	flag.StringVar(&corePath, "core", "", "path to the libretro core (shared library)")
	flag.StringVar(&gamePath, "game", "", "path to the game content")
	flag.IntVar(&frames, "frames", 600, "number of frames to run (0 = run until the core shuts down)")
	flag.BoolVar(&mute, "mute", false, "disable audio output")
	flag.IntVar(&stateSlot, "state-slot", 0, "save state slot for -load-state and the exit snapshot")
	flag.BoolVar(&loadState, "load-state", false, "restore the save state slot before running")
}

// sink counts video frames and forwards audio to the player.
type sink struct {
	audio      *audioPlayer
	frameCount int
}

func (s *sink) VideoFrame(frame api.VideoFrame) {
	s.frameCount++
}

func (s *sink) AudioChunk(chunk api.AudioChunk) {
	if s.audio != nil {
		s.audio.queue(chunk.Samples)
	}
}

func main() {
	flag.Parse()
	if corePath == "" || gamePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	logger := log.New(os.Stderr, "", log.Ltime)
	if err := run(logger); err != nil {
		logger.Fatal(err)
	}
}

func run(logger *log.Logger) error {
	storage.Init(dataDirName)

	config, err := storage.LoadConfig()
	if err != nil {
		return err
	}
	if err := storage.EnsureDirectories(); err != nil {
		return err
	}
	systemDir, err := config.ResolveSystemDir()
	if err != nil {
		return err
	}
	saveDir, err := config.ResolveSaveDir()
	if err != nil {
		return err
	}

	coreName := baseName(corePath)
	gameName := baseName(gamePath)

	out := &sink{}
	ctrl := core.NewController(core.Options{
		Listener: api.StateListenerFunc(func(change api.StateChange) {
			if av, ok := change.AV(); ok {
				logger.Printf("ready: %dx%d (max %dx%d) @ %.2f fps, %.0f Hz, %s",
					av.BaseWidth, av.BaseHeight, av.MaxWidth, av.MaxHeight,
					av.FPS, av.SampleRate, av.PixelFormat)
				return
			}
			if code, ok := change.Err(); ok {
				logger.Printf("state: %s (%s)", change.State(), code)
				return
			}
			logger.Printf("state: %s", change.State())
		}),
		Sink: out,
		Log: api.LogSinkFunc(func(level api.LogLevel, msg string) {
			logger.Printf("[%s] %s", level, msg)
		}),
		SystemDir:        systemDir,
		SaveDir:          saveDir,
		VariableDefaults: config.CoreVariables[coreName],
	})
	defer ctrl.Close()

	if err := ctrl.LoadCore(corePath); err != nil {
		return err
	}
	if err := ctrl.LoadGame(gamePath); err != nil {
		return err
	}

	av := ctrl.AV()
	if !mute && !config.Audio.Mute && av.SampleRate > 0 {
		player, err := newAudioPlayer(int(av.SampleRate), config.Audio.Volume)
		if err != nil {
			logger.Printf("continuing without audio: %v", err)
		} else {
			out.audio = player
			defer player.close()
		}
	}

	if sram, err := storage.ReadSRAM(gameName); err != nil {
		logger.Printf("SRAM not restored: %v", err)
	} else if sram != nil {
		if err := ctrl.LoadSRAM(sram); err != nil {
			logger.Printf("SRAM not restored: %v", err)
		}
	}

	if loadState {
		state, err := storage.ReadState(gameName, stateSlot)
		if err != nil {
			logger.Printf("state not restored: %v", err)
		} else if state != nil {
			if err := ctrl.LoadState(state); err != nil {
				logger.Printf("state not restored: %v", err)
			}
		}
	}

	fps := av.FPS
	if fps <= 0 {
		fps = 60
	}
	ticker := time.NewTicker(time.Duration(float64(time.Second) / fps))
	defer ticker.Stop()

	for i := 0; frames == 0 || i < frames; i++ {
		if ctrl.State() != api.StateReady {
			break
		}
		ctrl.DoFrame()
		<-ticker.C
	}
	logger.Printf("ran %d video frames", out.frameCount)

	if state, err := ctrl.SaveState(); err == nil {
		if err := storage.WriteState(gameName, stateSlot, state); err != nil {
			logger.Printf("state not saved: %v", err)
		}
	}
	if sram, err := ctrl.SaveSRAM(); err == nil && len(sram) > 0 {
		if err := storage.WriteSRAM(gameName, sram); err != nil {
			return fmt.Errorf("SRAM not saved: %w", err)
		}
	}

	return nil
}

// baseName strips the directory and extension from a path.
func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
