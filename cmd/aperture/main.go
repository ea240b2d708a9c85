// Command aperture runs the depth-camera capture pipeline against the
// simulated driver and logs delivery statistics. It exists to exercise the
// capture core end to end without hardware attached.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tofworks/aperture/internal/capture"
	"github.com/tofworks/aperture/internal/config"
	"github.com/tofworks/aperture/internal/frames"
	"github.com/tofworks/aperture/internal/projection"
	"github.com/tofworks/aperture/internal/version"
)

var (
	configPath  = flag.String("config", "", "path to a JSON capture config (flags override it)")
	duration    = flag.Duration("duration", 10*time.Second, "capture duration (0 = run until interrupted)")
	stageList   = flag.String("stages", "depth,point_cloud", "comma-separated stages to subscribe (raw_unprocessed, raw_processed, depth, point_cloud)")
	debug       = flag.Bool("debug", false, "enable verbose frame diagnostics")
	showVersion = flag.Bool("version", false, "print version and exit")
)

var stageNames = map[string]frames.Stage{
	"raw_unprocessed": frames.StageRawUnprocessed,
	"raw_processed":   frames.StageRawProcessed,
	"depth":           frames.StageDepth,
	"point_cloud":     frames.StagePointCloud,
}

func parseStages(list string) ([]frames.Stage, error) {
	var out []frames.Stage
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		stage, ok := stageNames[name]
		if !ok {
			return nil, fmt.Errorf("unknown stage %q", name)
		}
		out = append(out, stage)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no stages requested")
	}
	return out, nil
}

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	stages, err := parseStages(*stageList)
	if err != nil {
		log.Fatalf("invalid -stages: %v", err)
	}

	var cfg *config.CaptureConfig
	if *configPath != "" {
		cfg, err = config.LoadCaptureConfig(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
	}

	if *debug {
		frames.SetDebugLogger(os.Stderr)
	}

	width, height := cfg.GetWidth(), cfg.GetHeight()
	frameInterval := cfg.GetFrameInterval()

	driver := capture.NewSimDriver(width, height)
	driver.SetFieldOfView(cfg.GetFOVDegrees() * math.Pi / 180)
	driver.SetDepthValue(float32(cfg.GetSceneDepth()))
	driver.SetFrameDelay(frameInterval)

	session := capture.NewSession(capture.SessionConfig{
		SensorID:   cfg.GetSensorID(),
		Driver:     driver,
		Programmer: &capture.SimProgrammer{},
		Streamer:   &capture.SimStreamer{},
	})

	var firstCloud sync.Once
	for _, stage := range stages {
		cb := func(s *capture.Session, f frames.Frame, st frames.Stage) {}
		if stage == frames.StagePointCloud {
			cb = func(s *capture.Session, f frames.Frame, st frames.Stage) {
				firstCloud.Do(func() {
					cloud := f.(*frames.PointCloudFrame)
					sum := projection.Summarize(cloud)
					log.Printf("first point cloud %s: %d points, mean range %.3fm (σ %.4f), mean intensity %.1f",
						cloud.ID, sum.Points, sum.MeanRange, sum.StdDevRange, sum.MeanIntensity)
				})
			}
		}
		if err := session.RegisterCallback(stage, cb); err != nil {
			log.Fatalf("register %s callback: %v", stage, err)
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if *duration > 0 {
		var timeoutCancel context.CancelFunc
		ctx, timeoutCancel = context.WithTimeout(ctx, *duration)
		defer timeoutCancel()
	}

	if err := session.Start(); err != nil {
		log.Fatalf("start capture: %v", err)
	}
	log.Printf("capturing %dx%d at %v per frame, stages: %s", width, height, frameInterval, *stageList)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		ticker := time.NewTicker(cfg.GetStatsInterval())
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				session.Stats().LogStats(session.SensorID())
			}
		}
	})

	g.Go(func() error {
		<-ctx.Done()
		session.Stop()
		session.Wait()
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Printf("run: %v", err)
	}

	session.Stats().LogStats(session.SensorID())
	if err := session.Close(); err != nil {
		log.Printf("close: %v", err)
	}
}
