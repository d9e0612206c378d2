package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/labstack/gommon/log"

	"rwsl-simulator/internal/config"
	"rwsl-simulator/internal/game/airport"
	"rwsl-simulator/internal/game/simulation"
	"rwsl-simulator/internal/logging"
)

// maxTicks bounds a single run.
const maxTicks = 100_000_000

type options struct {
	scenario string
	duration float64
	seed     uint64
}

type result struct {
	Report simulation.Report `json:"report"`
	Status simulation.Status `json:"status"`
}

// run plays a scenario for opts.duration simulated seconds by stepping
// ticks directly, without waiting on the wall clock.
func run(cfg *config.Config, opts options) (result, error) {
	if opts.duration < 0 || math.IsNaN(opts.duration) || math.IsInf(opts.duration, 0) {
		return result{}, fmt.Errorf("%w: duration %g must be finite and not negative", config.ErrInvalid, opts.duration)
	}
	if err := cfg.Validate(); err != nil {
		return result{}, err
	}
	ticks := math.Ceil(opts.duration / cfg.Simulation.TickSeconds())
	if ticks > maxTicks {
		return result{}, fmt.Errorf("%w: duration %g needs more than %d ticks", config.ErrInvalid, opts.duration, maxTicks)
	}

	if opts.seed != 0 {
		cfg.Simulation.Seed = opts.seed
	}

	ap, err := airport.New(airport.GimpoRKSS())
	if err != nil {
		return result{}, err
	}

	sch := simulation.NewManualScheduler()
	sim, err := simulation.New(ap, cfg, simulation.WithScheduler(sch))
	if err != nil {
		return result{}, err
	}
	if _, err := sim.StartByName(opts.scenario); err != nil {
		return result{}, err
	}

	sch.Fire(int(ticks))
	sim.Stop()

	return result{Report: sim.Report(), Status: sim.Status()}, nil
}

func listScenarios(w io.Writer) {
	for _, sc := range simulation.Scenarios {
		fmt.Fprintf(w, "%-20s %-18s %2d aircraft  p=%.1f  %s\n",
			sc.Key, sc.Name, sc.AircraftCount, sc.ConflictProbability, sc.Description)
	}
}

func main() {
	configPath := flag.String("config", "rwsl.json", "path to the JSON config file")
	scenario := flag.String("scenario", "normal_operations", "scenario key (see -list)")
	duration := flag.Float64("duration", 60, "simulated seconds to run")
	seed := flag.Uint64("seed", 0, "random seed; 0 uses the config or the wall clock")
	asJSON := flag.Bool("json", false, "print the report as JSON")
	list := flag.Bool("list", false, "list scenarios and exit")
	flag.Parse()

	if *list {
		listScenarios(os.Stdout)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	closer, err := logging.Setup(cfg.Log)
	if err != nil {
		log.Fatal(err)
	}
	defer closer.Close()

	res, err := run(cfg, options{scenario: *scenario, duration: *duration, seed: *seed})
	if err != nil {
		log.Fatal(err)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			log.Fatal(err)
		}
		return
	}
	fmt.Println(renderReport(res.Report, res.Status))
}
