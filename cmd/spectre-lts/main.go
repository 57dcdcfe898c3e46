package main

import (
	"flag"
	"fmt"
	"log"
	"math"

	"github.com/spf13/viper"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/estherroselopez/spectre/core"
	"github.com/estherroselopez/spectre/evolve"
)

const defaultScenario = "~~unset~~"

var scenario string

func init() {
	flag.StringVar(&scenario, "scenario", defaultScenario,
		"scenario TOML driving the convergence study (built-in defaults if unset)")
}

// study is one convergence run: a pair of boundary-coupled elements with
// unequal step counts, repeated across orders and refinement levels.
type study struct {
	slabStart, slabEnd            float64
	orders                        []int
	localSubsteps, remoteSubsteps int64
	refinements                   int
	plotFile                      string
	verbose                       bool
}

func defaultStudy() study {
	return study{
		slabStart:      0,
		slabEnd:        1,
		orders:         []int{2, 3, 4},
		localSubsteps:  4,
		remoteSubsteps: 6,
		refinements:    5,
		plotFile:       "convergence.png",
		verbose:        false,
	}
}

func loadStudy() study {
	s := defaultStudy()
	if scenario == defaultScenario {
		return s
	}
	viper.AddConfigPath(".")
	viper.SetConfigName(scenario)
	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("./%s.toml not found", scenario)
	}
	if viper.IsSet("Slab.start") {
		s.slabStart = viper.GetFloat64("Slab.start")
	}
	if viper.IsSet("Slab.end") {
		s.slabEnd = viper.GetFloat64("Slab.end")
	}
	if viper.IsSet("Study.orders") {
		s.orders = viper.GetIntSlice("Study.orders")
	}
	if viper.IsSet("Study.localsubsteps") {
		s.localSubsteps = viper.GetInt64("Study.localsubsteps")
	}
	if viper.IsSet("Study.remotesubsteps") {
		s.remoteSubsteps = viper.GetInt64("Study.remotesubsteps")
	}
	if viper.IsSet("Study.refinements") {
		s.refinements = viper.GetInt("Study.refinements")
	}
	if viper.IsSet("General.plotfile") {
		s.plotFile = viper.GetString("General.plotfile")
	}
	s.verbose = viper.GetBool("General.verbose")

	return s
}

// The coupled integrand is cos(t)·(1 + sin(t)/2), whose antiderivative
// sin(t) + sin²(t)/4 is known in closed form, so the end-of-slab error
// is measured against the exact value.
func exactAnswer(t float64) float64 {
	st := math.Sin(t)

	return st + st*st/4
}

func sideLocal(t float64, _ []float64) []float64 { return []float64{math.Cos(t)} }

func sideRemote(t float64, _ []float64) []float64 { return []float64{1 + math.Sin(t)/2} }

func product(local, remote []float64) []float64 {
	return []float64{local[0] * remote[0]}
}

func zeroDeriv(_ float64, u []float64) []float64 { return make([]float64, len(u)) }

// runOnce evolves the coupled pair across the slab and returns the
// absolute error of the local element at the far edge.
func runOnce(order int, localN, remoteN int64, slab core.Slab) float64 {
	spec := func(n int64) evolve.ElementSpec {
		return evolve.ElementSpec{
			Order:      order,
			Substeps:   n,
			Initial:    []float64{exactAnswer(slab.StartValue())},
			Derivative: zeroDeriv,
			Seed: func(t float64) ([]float64, []float64) {
				return []float64{exactAnswer(t)}, []float64{0}
			},
		}
	}
	sim := evolve.NewSimulation(slab)
	if err := sim.AddElement("local", spec(localN)); err != nil {
		log.Fatal(err)
	}
	if err := sim.AddElement("remote", spec(remoteN)); err != nil {
		log.Fatal(err)
	}
	if err := sim.Couple("local", "remote",
		evolve.CouplingSpec{Flux: sideLocal, Couple: product},
		evolve.CouplingSpec{Flux: sideRemote, Couple: product},
	); err != nil {
		log.Fatal(err)
	}
	if err := sim.Run(); err != nil {
		log.Fatal(err)
	}
	u, err := sim.State("local")
	if err != nil {
		log.Fatal(err)
	}

	return math.Abs(u[0] - exactAnswer(slab.EndValue()))
}

func main() {
	flag.Parse()
	s := loadStudy()
	slab := core.NewSlab(s.slabStart, s.slabEnd)

	p := plot.New()
	p.Title.Text = "Local time stepping: boundary-coupled convergence"
	p.X.Label.Text = "local step size"
	p.Y.Label.Text = "error at slab end"
	p.X.Scale = plot.LogScale{}
	p.Y.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Legend.Top = true

	for _, order := range s.orders {
		pts := make(plotter.XYs, 0, s.refinements)
		prev := math.NaN()
		for k := 0; k < s.refinements; k++ {
			scale := int64(1) << k
			localN := s.localSubsteps * scale
			h := (s.slabEnd - s.slabStart) / float64(localN)
			errAtEnd := runOnce(order, localN, s.remoteSubsteps*scale, slab)
			if errAtEnd < 1e-16 {
				errAtEnd = 1e-16
			}
			pts = append(pts, plotter.XY{X: h, Y: errAtEnd})
			if s.verbose {
				log.Printf("order %d: h=%-10.4g error=%.4g", order, h, errAtEnd)
			}
			if !math.IsNaN(prev) && errAtEnd > 0 {
				log.Printf("order %d: h=%.4g observed convergence order %.2f",
					order, h, math.Log2(prev/errAtEnd))
			}
			prev = errAtEnd
		}
		if err := plotutil.AddLinePoints(p, fmt.Sprintf("order %d", order), pts); err != nil {
			log.Fatal(err)
		}
	}

	if err := p.Save(6*vg.Inch, 4*vg.Inch, s.plotFile); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %s", s.plotFile)
}
