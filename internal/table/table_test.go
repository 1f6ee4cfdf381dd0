package table

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexiusacademia/golam/internal/laminate"
	"github.com/alexiusacademia/golam/internal/panel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const laminateCSV = `number,orientation,E1,E2,G,thickness,nu21
1,0,181000,10300,7170,0.125,0.28
2,90,181000,10300,7170,0.125,0.28
`

const panelCSV = `width_rib,web_string,thick_web,boom_string,thick_boom,round_string,m,thick_cover,S11,S22,sections,step_string,step_rib
10,30,2,20,2,2,1,3,10,2,A,100,500
10,32,2,20,2,2,2,3.5,12,2,B,100,500
`

func TestReadLaminate(t *testing.T) {
	tbl, err := ReadLaminate(strings.NewReader(laminateCSV))
	require.NoError(t, err)
	require.Len(t, tbl.Plies, 2)

	assert.Equal(t, laminate.Ply{Number: 2, Orientation: 90, E1: 181000, E2: 10300, G: 7170, Nu21: 0.28, Thickness: 0.125}, tbl.Plies[1])
	assert.Equal(t, []string{"1", "0", "181000", "10300", "7170", "0.125", "0.28"}, tbl.Echo[0])
}

func TestReadLaminate_ColumnOrderAndSpaces(t *testing.T) {
	in := "\ufeffnu21, thickness, G, E2, E1, orientation, number, note\n0.3, 1, 26900, 70000, 70000, 45, 1, top\n\n"
	tbl, err := ReadLaminate(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, tbl.Plies, 1)
	assert.Equal(t, 45.0, tbl.Plies[0].Orientation)
	assert.Equal(t, 0.3, tbl.Plies[0].Nu21)
}

func TestReadLaminate_MaterialPreset(t *testing.T) {
	in := "number,orientation,E1,E2,G,thickness,nu21,material\n1,45,,,,,,t300-5208\n2,0,,,,0.25,,t300-5208\n"
	tbl, err := ReadLaminate(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, 181000.0, tbl.Plies[0].E1)
	assert.Equal(t, 0.125, tbl.Plies[0].Thickness)
	assert.Equal(t, 0.25, tbl.Plies[1].Thickness)
	assert.Equal(t, "181000", tbl.Echo[0][2])
}

func TestReadLaminate_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		substr string
	}{
		{"empty", "", "table is empty"},
		{"missing column", "number,orientation,E1,E2,G,thickness\n1,0,1,1,1,1\n", "nu21"},
		{"non-numeric", "number,orientation,E1,E2,G,thickness,nu21\n1,zero,1,1,1,1,0.3\n", `"orientation"`},
		{"short row", "number,orientation,E1,E2,G,thickness,nu21\n1,0,1,1\n", "missing cell"},
		{"fractional number", "number,orientation,E1,E2,G,thickness,nu21\n1.5,0,1,1,1,1,0.3\n", "not an integer"},
		{"header only", "number,orientation,E1,E2,G,thickness,nu21\n", "no plies"},
		{"unknown material", "number,orientation,E1,E2,G,thickness,nu21,material\n1,0,,,,,,balsa\n", "balsa"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadLaminate(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedInput)
			assert.Contains(t, err.Error(), tt.substr)
		})
	}
}

func TestReadLaminate_NonFinite(t *testing.T) {
	tests := []struct {
		name   string
		row    string
		column string
	}{
		{"NaN modulus", "1,0,NaN,70000,26900,1,0.3", "E1"},
		{"lowercase nan", "1,0,70000,nan,26900,1,0.3", "E2"},
		{"infinite shear", "1,0,70000,70000,Inf,1,0.3", "G"},
		{"infinity thickness", "1,0,70000,70000,26900,infinity,0.3", "thickness"},
		{"NaN orientation", "1,NaN,70000,70000,26900,1,0.3", "orientation"},
		{"infinite number", "+Inf,0,70000,70000,26900,1,0.3", "number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := "number,orientation,E1,E2,G,thickness,nu21\n" + tt.row + "\n"
			_, err := ReadLaminate(strings.NewReader(in))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedInput)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, 1, perr.Row)
			assert.Equal(t, tt.column, perr.Column)
			assert.Contains(t, err.Error(), "not a finite number")
		})
	}
}

func TestReadPanel_NonFinite(t *testing.T) {
	tests := []struct {
		name    string
		replace string
		with    string
		column  string
	}{
		{"nan web height", "10,30,2,20", "10,nan,2,20", "web_string"},
		{"inf boom width", "10,30,2,20", "10,30,2,inf", "boom_string"},
		{"NaN load", ",3,10,2,A", ",3,NaN,2,A", "S11"},
		{"infinite half-waves", ",2,1,3,10,2,A", ",2,Inf,3,10,2,A", "m"},
		{"infinite pitch", "A,100,500", "A,Infinity,500", "step_string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := strings.Replace(panelCSV, tt.replace, tt.with, 1)
			require.NotEqual(t, panelCSV, in)

			_, err := ReadPanel(strings.NewReader(in))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedInput)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, 1, perr.Row)
			assert.Equal(t, tt.column, perr.Column)
		})
	}
}

func TestReadPanel(t *testing.T) {
	tbl, err := ReadPanel(strings.NewReader(panelCSV))
	require.NoError(t, err)
	require.Len(t, tbl.Sections, 2)

	assert.Equal(t, panel.Pitches{Stringer: 100, Rib: 500}, tbl.Pitches)
	assert.Empty(t, tbl.PitchMismatches)

	b := tbl.Sections[1]
	assert.Equal(t, "B", b.ID)
	assert.Equal(t, 2, b.HalfWaves)
	assert.Equal(t, 32.0, b.WebHeight)
	assert.Equal(t, 3.5, b.CoverThickness)
	assert.Equal(t, 12.0, b.S11)
}

func TestReadPanel_PitchMismatch(t *testing.T) {
	in := panelCSV + "10,30,2,20,2,2,1,3,10,2,C,120,500\n"
	tbl, err := ReadPanel(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, 100.0, tbl.Pitches.Stringer)
	assert.Equal(t, []int{3}, tbl.PitchMismatches)
}

func TestReadPanel_Malformed(t *testing.T) {
	in := strings.Replace(panelCSV, ",1,3,10,2,A", ",one,3,10,2,A", 1)
	_, err := ReadPanel(strings.NewReader(in))
	require.Error(t, err)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 1, perr.Row)
	assert.Equal(t, "m", perr.Column)
}

func TestLaminateRecords(t *testing.T) {
	tbl, err := ReadLaminate(strings.NewReader(laminateCSV))
	require.NoError(t, err)

	records := LaminateRecords(tbl, laminate.Moduli{Ex: 95651.234, Ey: 95651.234, Gxy: 7170, NuXY: 0.0302})
	require.Len(t, records, 3)

	assert.Equal(t, "number", records[0][0])
	assert.Equal(t, "orientation", records[0][1])
	assert.Equal(t, "", records[0][7])
	assert.Len(t, records[0], 12)
	assert.Equal(t, []string{"", "95651.2", "95651.2", "7170.0", "0.030"}, records[1][7:])
	assert.Len(t, records[2], 7)
}

func TestPanelRecords(t *testing.T) {
	results := []panel.SectionResult{
		{EffectiveThickness: 5.43398, Ratio: 0.447921, SafeCoeff: 12.346, LambdaMin: 0.9876},
		{Err: panel.ErrInvalidGeometry},
	}

	records := PanelRecords(results, DefaultPrecision)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"5.43", "44.8", "12.35", "0.99"}, records[1])
	assert.Equal(t, []string{"", "", "", ""}, records[2])
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, [][]string{PanelHeader, {"1.00", "50.0", "2.00", "3.00"}}))
	assert.Equal(t, "EffectiveThickness,ratio,SafeCoeff,lambd_min\n1.00,50.0,2.00,3.00\n", buf.String())
}

func TestXLSXRoundTrip(t *testing.T) {
	dir := t.TempDir()

	lamIn, err := ReadLaminate(strings.NewReader(laminateCSV))
	require.NoError(t, err)
	records, err := readCSV("panel", strings.NewReader(panelCSV))
	require.NoError(t, err)

	lamPath := filepath.Join(dir, "laminate.xlsx")
	require.NoError(t, WriteXLSX(lamPath, []Sheet{{Name: "plies", Records: append([][]string{LaminateColumns}, lamIn.Echo...)}}))
	panelPath := filepath.Join(dir, "panel.xlsx")
	require.NoError(t, WriteXLSX(panelPath, []Sheet{{Name: "sections", Records: records}, {Name: "notes", Records: [][]string{{"ok"}}}}))

	lamOut, err := ReadLaminateFile(lamPath)
	require.NoError(t, err)
	assert.Equal(t, lamIn.Plies, lamOut.Plies)

	panelOut, err := ReadPanelFile(panelPath)
	require.NoError(t, err)
	require.Len(t, panelOut.Sections, 2)
	assert.Equal(t, "B", panelOut.Sections[1].ID)
	assert.Equal(t, panel.Pitches{Stringer: 100, Rib: 500}, panelOut.Pitches)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "1.23", FormatFixed(1.2345, 2))
	assert.Equal(t, "12.3", FormatPercent(0.1234, 1))
}
