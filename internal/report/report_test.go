package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alexiusacademia/golam/internal/laminate"
	"github.com/alexiusacademia/golam/internal/panel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	plies := []laminate.Ply{{Number: 1, E1: 70000, E2: 70000, G: 26900, Nu21: 0.3, Thickness: 3}}
	lam, err := laminate.NewLaminate(plies)
	require.NoError(t, err)

	ok := panel.Section{ID: "A", WebHeight: 30, WebThickness: 2, BoomWidth: 20, BoomThickness: 2,
		FilletRadius: 2, HalfWaves: 1, CoverThickness: 3, S11: 10, S22: 2}
	bad := ok
	bad.ID = "B"
	bad.WebHeight = 4

	run, err := panel.Analyze(lam, []panel.Section{ok, bad}, panel.Pitches{Stringer: 100, Rib: 500}, panel.Options{})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "reports", "run.pdf")
	require.NoError(t, Write(path, Input{
		LoadCase: "limit",
		Plies:    plies,
		Moduli:   lam.Moduli(),
		ABD:      lam.ABD(),
		Run:      run,
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}
