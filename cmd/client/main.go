package main

import (
	"flag"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/labstack/gommon/log"

	"rwsl-simulator/internal/config"
	"rwsl-simulator/internal/game/airport"
	"rwsl-simulator/internal/game/rwsl"
	"rwsl-simulator/internal/game/simulation"
	"rwsl-simulator/internal/logging"
	"rwsl-simulator/internal/ui"
	"rwsl-simulator/pkg/types"
)

const (
	screenWidth  = 1280
	screenHeight = 720

	// Flashing fixtures toggle every flashFrames frames.
	flashFrames = 15
)

var (
	runwayColor   = color.RGBA{90, 90, 90, 255}
	taxiwayColor  = color.RGBA{120, 110, 40, 255}
	aircraftColor = color.RGBA{0, 200, 255, 255}
	predictColor  = color.RGBA{100, 100, 255, 255}
	conflictColor = color.RGBA{255, 0, 0, 100}
	offColor      = color.RGBA{40, 40, 40, 255}

	riskColor = map[airport.RiskTier]color.RGBA{
		airport.MEDIUM:   {255, 200, 0, 255},
		airport.HIGH:     {255, 120, 0, 255},
		airport.CRITICAL: {255, 0, 0, 255},
	}
	fixtureColor = map[airport.FixtureType]color.RGBA{
		airport.ENTRANCE:     {255, 40, 40, 255},
		airport.TAKEOFF_HOLD: {255, 40, 40, 255},
		airport.STOP_BAR:     {255, 0, 0, 255},
	}
)

type Camera struct {
	X, Y                 float64
	PanStartX, PanStartY int
	Scale                float64
}

type Game struct {
	width, height int
	camera        *Camera
	sim           *simulation.Simulation
	ap            *airport.Airport
	horizon       float64
	radius        float64
	frames        int

	selectedAircraftID types.AircraftID
	commandInput       *ui.TextInput
	console            *ui.Console

	// Refreshed once per frame in Update.
	status simulation.Status
	lights *rwsl.Panel
}

func NewGame(sim *simulation.Simulation, cfg *config.Config) *Game {
	ap := sim.Airport()
	b := ap.Bounds()

	// Fit the airport envelope to the window, y up.
	scale := math.Min(screenWidth/(b.MaxX-b.MinX), (screenHeight-80)/(b.MaxY-b.MinY))
	game := &Game{
		sim:     sim,
		ap:      ap,
		horizon: cfg.Detection.HorizonSeconds,
		radius:  cfg.Detection.RadiusMeters,
		camera:  &Camera{X: b.MinX, Y: -b.MaxY - 20/scale, Scale: scale},
		width:   screenWidth,
		height:  screenHeight,
		console: &ui.Console{MaxLines: 6},
	}

	game.commandInput = ui.NewTextInput(10, screenHeight-40, screenWidth/2, 30, func(cmd string) {
		game.parseAndExecuteCommand(cmd)
	})
	game.refresh()
	return game
}

func (g *Game) Update() error {
	g.frames++
	g.refresh()

	g.handleInput()
	g.commandInput.Update()
	return nil
}

func (g *Game) refresh() {
	g.status = g.sim.Status()
	g.lights = g.sim.Lights()
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0, 0, 0, 255})

	g.drawAirport(screen)
	g.drawFixtures(screen)

	conflicted := make(map[types.AircraftID]bool)
	for _, c := range g.status.Conflicts {
		conflicted[c.Aircraft] = true
	}
	for _, ac := range g.status.Aircraft {
		g.drawAircraft(screen, ac, conflicted[ac.ID])
	}

	g.drawUI(screen)
	ebitenutil.DebugPrint(screen, "FPS: "+strconv.FormatFloat(ebiten.ActualFPS(), 'f', 2, 64))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

func (g *Game) handleInput() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()

		if g.commandInput.IsClicked(x, y) {
			g.commandInput.IsActive = true
			return
		}
		g.commandInput.IsActive = false

		g.selectedAircraftID = 0
		for _, ac := range g.status.Aircraft {
			sx, sy := g.worldToScreen(ac.Position.X, ac.Position.Y)
			if math.Hypot(sx-float64(x), sy-float64(y)) <= 10 {
				g.selectedAircraftID = ac.ID
				log.Debugf("SELECT: %s", ac.ID)
				break
			}
		}
	}

	_, wy := ebiten.Wheel()
	if wy != 0 {
		cursorX, cursorY := ebiten.CursorPosition()
		worldX, worldY := g.screenToWorld(float64(cursorX), float64(cursorY))

		scale := g.camera.Scale
		if wy > 0 {
			scale *= 1.1
		} else {
			scale /= 1.1
		}
		g.camera.Scale = math.Max(0.05, math.Min(5.0, scale))

		newWorldX, newWorldY := g.screenToWorld(float64(cursorX), float64(cursorY))
		g.camera.X -= newWorldX - worldX
		g.camera.Y += newWorldY - worldY
	}

	// Right mouse button pans.
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		dx, dy := ebiten.CursorPosition()
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
			g.camera.PanStartX, g.camera.PanStartY = dx, dy
		} else {
			g.camera.X -= float64(dx-g.camera.PanStartX) / g.camera.Scale
			g.camera.Y -= float64(dy-g.camera.PanStartY) / g.camera.Scale
			g.camera.PanStartX, g.camera.PanStartY = dx, dy
		}
	}
}

// The local frame has y up; the screen has y down.
func (g *Game) screenToWorld(sx, sy float64) (wx, wy float64) {
	wx = sx/g.camera.Scale + g.camera.X
	wy = -(sy/g.camera.Scale + g.camera.Y)
	return
}

func (g *Game) worldToScreen(wx, wy float64) (sx, sy float64) {
	sx = (wx - g.camera.X) * g.camera.Scale
	sy = (-wy - g.camera.Y) * g.camera.Scale
	return
}

func (g *Game) line(screen *ebiten.Image, a, b types.Vec2, width float64, clr color.Color) {
	ax, ay := g.worldToScreen(a.X, a.Y)
	bx, by := g.worldToScreen(b.X, b.Y)
	vector.StrokeLine(screen, float32(ax), float32(ay), float32(bx), float32(by), float32(math.Max(1, width)), clr, false)
}

func (g *Game) drawAirport(screen *ebiten.Image) {
	for _, twy := range g.ap.Taxiways() {
		for i := 1; i < len(twy.Waypoints); i++ {
			g.line(screen, twy.Waypoints[i-1], twy.Waypoints[i], twy.Width*g.camera.Scale*0.5, taxiwayColor)
		}
		if len(twy.Waypoints) > 0 {
			sx, sy := g.worldToScreen(twy.Waypoints[0].X, twy.Waypoints[0].Y)
			ebitenutil.DebugPrintAt(screen, twy.Designation, int(sx)+4, int(sy)+4)
		}
	}

	for _, rwy := range g.ap.Runways() {
		g.line(screen, rwy.Low.Position, rwy.High.Position, rwy.Width*g.camera.Scale, runwayColor)
		for _, th := range []airport.Threshold{rwy.Low, rwy.High} {
			sx, sy := g.worldToScreen(th.Position.X, th.Position.Y)
			ebitenutil.DebugPrintAt(screen, th.ID, int(sx)-8, int(sy)-24)
		}
	}

	for _, hs := range g.ap.HotSpots() {
		sx, sy := g.worldToScreen(hs.Location.X, hs.Location.Y)
		r := float32(g.radius * g.camera.Scale)
		vector.StrokeCircle(screen, float32(sx), float32(sy), r, 1, riskColor[hs.Risk], false)
		ebitenutil.DebugPrintAt(screen, hs.ID, int(sx)+int(r)+2, int(sy)-8)
	}
}

func (g *Game) drawFixtures(screen *ebiten.Image) {
	flashOn := (g.frames/flashFrames)%2 == 0
	states := g.lights.States()

	for i, f := range g.lights.Fixtures() {
		clr := offColor
		switch states[i] {
		case rwsl.ON:
			clr = fixtureColor[f.Type]
		case rwsl.FLASH:
			if flashOn {
				clr = fixtureColor[f.Type]
			}
		}
		sx, sy := g.worldToScreen(f.Position.X, f.Position.Y)
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), 1.5, clr, false)
	}
}

func (g *Game) drawAircraft(screen *ebiten.Image, ac simulation.AircraftSnapshot, conflicting bool) {
	screenX, screenY := g.worldToScreen(ac.Position.X, ac.Position.Y)

	// Constant-velocity projection over the detection horizon.
	v := types.HeadingVector(ac.Heading).Scale(ac.Speed * g.horizon)
	g.line(screen, ac.Position, ac.Position.Add(v), 1, predictColor)

	if conflicting {
		vector.DrawFilledCircle(screen, float32(screenX), float32(screenY), 12, conflictColor, false)
	}
	vector.DrawFilledCircle(screen, float32(screenX), float32(screenY), 4, aircraftColor, false)

	if g.selectedAircraftID == ac.ID {
		vector.StrokeRect(screen, float32(screenX-10), float32(screenY-10), 20, 20, 1, color.White, false)
		tagText := fmt.Sprintf("%s %s\n%s\nSPD:%.1f HDG:%.0f\nSTS:%s RTE:%s",
			ac.Callsign, ac.ID, ac.Type, ac.Speed, ac.Heading, ac.State, strings.Join(ac.Route, " "))
		ebitenutil.DebugPrintAt(screen, tagText, int(screenX)+10, int(screenY)-20)
		return
	}
	ebitenutil.DebugPrintAt(screen, ac.Callsign, int(screenX)+6, int(screenY)-6)
}

func (g *Game) drawUI(screen *ebiten.Image) {
	g.commandInput.Draw(screen)
	g.console.Draw(screen, 10, g.commandInput.Y-4)

	st := g.status
	state := "STOPPED"
	if st.IsRunning {
		state = "RUNNING"
	}
	hud := fmt.Sprintf("%s  %s  t=%.1fs\naircraft: %d  conflicts: %d  lights: %d/%d",
		state, st.Scenario, st.SimulatedTime,
		st.AircraftCount, st.ActiveConflictCount, st.FixtureSummary.Active, st.FixtureSummary.Total)
	ebitenutil.DebugPrintAt(screen, hud, 10, 20)

	for i, e := range st.RecentEvents {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("[%6.1fs] %s %s", e.SimTime, e.Type, e.Description),
			g.width/2+20, 20+16*i)
	}
}

func (g *Game) parseAndExecuteCommand(cmd string) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return
	}

	switch strings.ToLower(parts[0]) {
	case "start":
		key := "normal_operations"
		if len(parts) > 1 {
			key = parts[1]
		}
		res, err := g.sim.StartByName(key)
		if err != nil {
			g.console.Add(err.Error())
			return
		}
		g.console.Add(fmt.Sprintf("started %s (%d aircraft)", res.Scenario.Name, res.Scenario.AircraftCount))
	case "stop":
		g.sim.Stop()
		g.console.Add("stopped")
	case "report":
		r := g.sim.Report()
		g.console.Add(fmt.Sprintf("%s: %.1fs, %d events, %d conflicts (%.1f%%), %d spawned",
			r.Scenario, r.TotalSimulatedTime, r.TotalEvents, r.ConflictCount, r.ConflictRatePercent, r.SpawnCount))
		g.console.Add(fmt.Sprintf("rwsl activations %d, aircraft avg %.1f peak %d",
			r.RWSLActivations, r.AverageAircraftCount, r.PeakAircraftCount))
	case "scale":
		if len(parts) < 2 {
			g.console.Add("usage: scale <n>")
			return
		}
		v, err := strconv.ParseFloat(parts[1], 64)
		if err == nil {
			err = g.sim.SetTimeScale(v)
		}
		if err != nil {
			g.console.Add(fmt.Sprintf("invalid scale %q", parts[1]))
			return
		}
		g.console.Add(fmt.Sprintf("time scale %gx", v))
	case "select":
		if len(parts) < 2 {
			g.console.Add("usage: select <id|callsign>")
			return
		}
		ac, ok := g.findAircraft(parts[1])
		if !ok {
			g.console.Add("no aircraft " + parts[1])
			return
		}
		g.selectedAircraftID = ac.ID
		g.console.Add(fmt.Sprintf("%s %s %s route: %s", ac.ID, ac.Callsign, ac.State, strings.Join(ac.Route, " ")))
	case "list":
		keys := make([]string, 0, len(simulation.Scenarios))
		for _, sc := range simulation.Scenarios {
			keys = append(keys, sc.Key)
		}
		g.console.Add(strings.Join(keys, ", "))
	default:
		g.console.Add("unknown command: " + parts[0])
	}
}

// findAircraft accepts a numeric ID, an AC-prefixed ID or a callsign.
func (g *Game) findAircraft(ref string) (simulation.AircraftSnapshot, bool) {
	ref = strings.ToUpper(ref)
	if n, err := strconv.ParseUint(strings.TrimPrefix(ref, "AC"), 10, 32); err == nil {
		return g.sim.Aircraft(types.AircraftID(n))
	}
	for _, ac := range g.status.Aircraft {
		if ac.Callsign == ref {
			return ac, true
		}
	}
	return simulation.AircraftSnapshot{}, false
}

func main() {
	configPath := flag.String("config", "rwsl.json", "path to the JSON config file")
	scenario := flag.String("scenario", "normal_operations", "scenario to start with")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	closer, err := logging.Setup(cfg.Log)
	if err != nil {
		log.Fatal(err)
	}
	defer closer.Close()

	ap, err := airport.New(airport.GimpoRKSS())
	if err != nil {
		log.Fatal(err)
	}
	sim, err := simulation.New(ap, cfg)
	if err != nil {
		log.Fatal(err)
	}
	if _, err := sim.StartByName(*scenario); err != nil {
		log.Fatal(err)
	}
	defer sim.Stop()

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle(fmt.Sprintf("RWSL Simulator - %s %s", ap.ICAO, ap.Name))
	ebiten.SetVsyncEnabled(true)

	if err := ebiten.RunGame(NewGame(sim, cfg)); err != nil {
		log.Fatal(err)
	}
}
