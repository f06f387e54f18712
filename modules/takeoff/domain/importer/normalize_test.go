package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLabel(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  north rack ", "NORTH RACK"},
		{"NORTH\t\tRACK", "NORTH RACK"},
		{"north rack", "NORTH RACK"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeLabel(tc.in), "input %q", tc.in)
	}
}

func TestNormalizeDrawing(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"P-91010", "P-91010"},
		{"p_91010", "P-91010"},
		{"P--91010", "P-91010"},
		{"P-091010", "P-91010"},
		{"p/91010", "P-91010"},
		{"P-91010 1 OF 2", "P-91010 1 OF 2"},
		{"P-91010 2 OF 2", "P-91010 2 OF 2"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeDrawing(tc.in), "input %q", tc.in)
	}
}

func TestNormalizeDrawing_SheetSuffixesStayDistinct(t *testing.T) {
	a := NormalizeDrawing("P-91010 1 OF 2")
	b := NormalizeDrawing("P-91010 2 OF 2")
	assert.NotEqual(t, a, b)
}

func TestNormalizeSize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`1/2"`, "0.5"},
		{"0.5", "0.5"},
		{".50", "0.5"},
		{`2"`, "2"},
		{"2 in", "2"},
		{"2 INCH", "2"},
		{"1 1/2", "1.5"},
		{"1-1/2", "1.5"},
		{"1.5", "1.5"},
		{"DN50", "DN50"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeSize(tc.in), "input %q", tc.in)
	}
}

func TestNormalizeSize_UnitSuffixOnlyStripsNumbers(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"MAIN", "MAIN"},
		{"main", "MAIN"},
		{"RESIN", "RESIN"},
		{"2 INCH", "2"},
		{"FRENCH", "FRENCH"},
		{"IN", "IN"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeSize(tc.in), "input %q", tc.in)
	}
}

func TestNormalization_Idempotent(t *testing.T) {
	inputs := []string{"  p_091010 ", `1/2"`, "1-1/2", "north  rack", "DN50", "2 in"}
	for _, in := range inputs {
		assert.Equal(t, NormalizeLabel(NormalizeLabel(in)), NormalizeLabel(in))
		assert.Equal(t, NormalizeDrawing(NormalizeDrawing(in)), NormalizeDrawing(in))
		assert.Equal(t, NormalizeSize(NormalizeSize(in)), NormalizeSize(in))
	}
}
