package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/hosteleria/internal/domain"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"", 0, true},
		{"10,00", 10, true},
		{"10.5", 10.5, true},
		{"1.234,56", 1234.56, true},
		{"1,234.56", 1234.56, true},
		{"1.234.567", 1234567, true},
		{"12,50 €", 12.5, true},
		{"21%", 21, true},
		{"-3,5", -3.5, true},
		{"abc", 0, false},
		{"NaN", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseNumber(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.InDelta(t, tt.want, got, 1e-9, tt.in)
	}
}

func TestParseBool(t *testing.T) {
	for _, v := range []string{"1", "si", "Sí", "TRUE", "x"} {
		assert.True(t, ParseBool(v), v)
	}
	for _, v := range []string{"", "0", "no", "false"} {
		assert.False(t, ParseBool(v), v)
	}
}

func TestParseCategories(t *testing.T) {
	paths, flat := ParseCategories(" Hostelería > Vajilla >  | Hostelería>Platos ||")
	assert.Equal(t, [][]string{{"Hostelería", "Vajilla"}, {"Hostelería", "Platos"}}, paths)
	assert.Equal(t, []string{"Hostelería", "Vajilla", "Platos"}, flat)

	paths, flat = ParseCategories("")
	assert.Empty(t, paths)
	assert.Empty(t, flat)
}

func TestSplitLists(t *testing.T) {
	assert.Equal(t, []string{"a.jpg", "b.jpg", "c.jpg"}, SplitImages("a.jpg, b.jpg|c.jpg,,"))
	assert.Empty(t, SplitImages(""))
	assert.Equal(t, []string{"vino, tinto", "copa"}, SplitTags("vino, tinto|copa"))
	assert.Equal(t, []string{"vino", "copa"}, SplitTags("vino,copa, "))
}

func TestParsePersonalizations(t *testing.T) {
	got := ParsePersonalizations("[Nombre][Escribe tu nombre][0][1][1] | [Logo][][0][0][6] | [][][][][] | sin corchetes")
	require.Len(t, got, 3)
	assert.Equal(t, domain.Personalization{Label: "Nombre", Help: "Escribe tu nombre", Required: true, Kind: domain.PersonalizationText}, got[0])
	assert.Equal(t, domain.Personalization{Label: "Logo", Kind: domain.PersonalizationFile}, got[1])
	assert.Equal(t, domain.Personalization{Label: "Personalización", Kind: domain.PersonalizationTextarea}, got[2])

	assert.Empty(t, ParsePersonalizations(""))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "copa-aurora-champan-nacar", Slugify("Copa Aurora Champán Nácar"))
	assert.Equal(t, "vaso-33cl-mas", Slugify("Vaso 33cl. & más"))
	assert.Equal(t, "", Slugify("¡¿!"))
	assert.Equal(t, "producto-9", ProductSlug("¡¿!", "9"))
	assert.Equal(t, "copa-1", ProductSlug("Copa", "1"))
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, "Copa grabada a láser", PlainText("<p>Copa <b>grabada</b> a l&aacute;ser</p><script>track()</script>"))
	assert.Equal(t, "sin marcado", PlainText("  sin   marcado "))
	assert.Equal(t, "", PlainText(""))
}
