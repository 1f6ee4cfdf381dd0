package panel

import (
	"errors"
	"fmt"
	"math"
	"runtime"

	"github.com/alexiusacademia/golam/internal/laminate"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// Laminate is the skin laminate as seen by the panel evaluation
type Laminate interface {
	Moduli() laminate.Moduli
	ABD() *mat.Dense
}

// Options select between the alternative readings of the hand-calculation
type Options struct {
	Stiffness  Stiffness
	BayWidth   BayWidth
	DoubleLegs bool

	// Maximum number of sections evaluated concurrently; 0 means GOMAXPROCS
	Workers int
}

// SectionResult holds the analysis results of one panel section
type SectionResult struct {
	Index   int
	Section Section

	Geometry *Geometry

	EffectiveThickness float64
	Ratio              float64
	Inertia            float64
	CriticalStress     float64
	SafeCoeff          float64

	Local     *LocalBuckling
	LambdaMin float64

	// Err is set when this section could not be evaluated; the numeric
	// fields are then zero.
	Err error
}

// OK reports whether the section was evaluated
func (r SectionResult) OK() bool {
	return r.Err == nil
}

// Run is the outcome of one panel analysis. Results are in input order.
type Run struct {
	Pitches Pitches
	Options Options
	Moduli  laminate.Moduli
	Plate   PlateStiffness
	Results []SectionResult
}

// Analyze evaluates every section against the shared laminate. Only run-wide
// problems (missing laminate, invalid pitches or options) are returned as an
// error; a failing section records its error in its result and the others
// are still evaluated.
func Analyze(lam Laminate, sections []Section, pitches Pitches, opts Options) (*Run, error) {
	if lam == nil {
		return nil, errors.New("panel analysis requires a laminate")
	}
	if err := pitches.Validate(); err != nil {
		return nil, err
	}
	switch opts.BayWidth {
	case "", BayWidthCover, BayWidthClearSpan:
	default:
		return nil, fmt.Errorf("unknown bay width %q", opts.BayWidth)
	}

	plate, err := ReadPlateStiffness(lam.ABD(), opts.Stiffness)
	if err != nil {
		return nil, err
	}

	run := &Run{
		Pitches: pitches,
		Options: opts,
		Moduli:  lam.Moduli(),
		Plate:   plate,
		Results: make([]SectionResult, len(sections)),
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i, s := range sections {
		i, s := i, s
		g.Go(func() error {
			run.Results[i] = run.evaluate(i, s)
			return nil
		})
	}
	_ = g.Wait()

	return run, nil
}

// evaluate computes one section. It only reads run fields set before the
// fan-out and writes nothing shared.
func (run *Run) evaluate(i int, s Section) SectionResult {
	res := SectionResult{Index: i, Section: s}
	fail := func(err error) SectionResult {
		return SectionResult{Index: i, Section: s, Err: fmt.Errorf("section %s: %w", sectionLabel(i, s), err)}
	}

	geo, err := s.CalculateGeometry(run.Pitches.Stringer, run.Options.DoubleLegs)
	if err != nil {
		return fail(err)
	}
	res.Geometry = geo
	res.EffectiveThickness = geo.EffectiveThickness
	res.Ratio = geo.Ratio
	res.Inertia = geo.Inertia

	if res.CriticalStress, err = CriticalStress(s.HalfWaves, run.Moduli.Ex, geo.Inertia, run.Pitches.Rib); err != nil {
		return fail(err)
	}
	if res.SafeCoeff, err = SafetyCoefficient(res.CriticalStress, s.S11); err != nil {
		return fail(err)
	}

	ly := s.CoverThickness
	if run.Options.BayWidth == BayWidthClearSpan {
		ly = run.Pitches.Stringer - 2*s.BoomWidth
		if ly <= 0 {
			return fail(&ValidationError{
				msg: fmt.Sprintf("clear span %g is not positive (pitch %g, boom width %g)", ly, run.Pitches.Stringer, s.BoomWidth),
				err: ErrInvalidGeometry,
			})
		}
	}

	nx := s.S11 * s.CoverThickness
	ny := s.S22 * s.CoverThickness
	if res.Local, err = SearchLocalBuckling(run.Plate, run.Pitches.Rib, ly, nx, ny); err != nil {
		return fail(err)
	}
	res.LambdaMin = res.Local.Lambda

	return res
}

func sectionLabel(i int, s Section) string {
	if s.ID != "" {
		return s.ID
	}
	return fmt.Sprintf("#%d", i+1)
}

// Err joins the errors of all failed sections, or returns nil
func (run *Run) Err() error {
	var errs []error
	for _, r := range run.Results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return errors.Join(errs...)
}

// Failed counts the sections that could not be evaluated
func (run *Run) Failed() int {
	n := 0
	for _, r := range run.Results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// MinSafeCoeff returns the lowest global safety coefficient among evaluated
// sections and its index. ok is false when no section was evaluated.
func (run *Run) MinSafeCoeff() (value float64, index int, ok bool) {
	value, index = math.Inf(1), -1
	for _, r := range run.Results {
		if r.OK() && r.SafeCoeff < value {
			value, index = r.SafeCoeff, r.Index
		}
	}
	return value, index, index >= 0
}

// MinLambda returns the lowest local buckling factor among evaluated sections
func (run *Run) MinLambda() (value float64, index int, ok bool) {
	value, index = math.Inf(1), -1
	for _, r := range run.Results {
		if r.OK() && r.LambdaMin < value {
			value, index = r.LambdaMin, r.Index
		}
	}
	return value, index, index >= 0
}
