package csvparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		headers []string
		rows    [][]string
		lines   []int
	}{
		{
			name:    "simple lf",
			input:   "ID;Nombre\n1;Copa\n",
			headers: []string{"ID", "Nombre"},
			rows:    [][]string{{"1", "Copa"}},
			lines:   []int{2},
		},
		{
			name:    "crlf and no final terminator",
			input:   "ID;Nombre\r\n1;Copa\r\n2;Vaso",
			headers: []string{"ID", "Nombre"},
			rows:    [][]string{{"1", "Copa"}, {"2", "Vaso"}},
			lines:   []int{2, 3},
		},
		{
			name:    "separator inside quotes",
			input:   "ID;Desc\n1;\"a;b\"\n",
			headers: []string{"ID", "Desc"},
			rows:    [][]string{{"1", "a;b"}},
			lines:   []int{2},
		},
		{
			name:    "embedded newline",
			input:   "ID;Desc\n1;\"linea uno\nlinea dos\"\n2;x\n",
			headers: []string{"ID", "Desc"},
			rows:    [][]string{{"1", "linea uno\nlinea dos"}, {"2", "x"}},
			lines:   []int{2, 4},
		},
		{
			name:    "doubled quote",
			input:   "ID;Desc\n1;\"di \"\"hola\"\"\"\n",
			headers: []string{"ID", "Desc"},
			rows:    [][]string{{"1", `di "hola"`}},
			lines:   []int{2},
		},
		{
			name:    "empty fields kept",
			input:   "ID;Nombre;Nombre opción;Precio\n;;33cl;\n",
			headers: []string{"ID", "Nombre", "Nombre opción", "Precio"},
			rows:    [][]string{{"", "", "33cl", ""}},
			lines:   []int{2},
		},
		{
			name:    "blank line yields blank row",
			input:   "ID\n\n1\n",
			headers: []string{"ID"},
			rows:    [][]string{{""}, {"1"}},
			lines:   []int{2, 3},
		},
		{
			name:    "headers cleaned",
			input:   "  ID ; Nombre opción \n",
			headers: []string{"ID", "Nombre opción"},
			rows:    [][]string{},
			lines:   []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := Parse(tt.input, DefaultOptions())
			assert.Equal(t, tt.headers, table.Headers)
			require.Len(t, table.Rows, len(tt.rows))
			for i, row := range table.Rows {
				assert.Equal(t, tt.rows[i], row.Fields)
				assert.Equal(t, tt.lines[i], row.Line)
			}
		})
	}
}

func TestParse_ByteOrderMark(t *testing.T) {
	table := Parse("\ufeffID;Nombre;Nombre opción;Precio\n1;Copa;;10\n", DefaultOptions())
	assert.Equal(t, []string{"ID", "Nombre", "Nombre opción", "Precio"}, table.Headers)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, []string{"1", "Copa", "", "10"}, table.Rows[0].Fields)

	quoted := Parse("\ufeff\"ID\";Nombre\n1;Copa\n", DefaultOptions())
	assert.Equal(t, []string{"ID", "Nombre"}, quoted.Headers)
}

func TestParse_Empty(t *testing.T) {
	table := Parse("", DefaultOptions())
	assert.Empty(t, table.Headers)
	assert.Empty(t, table.Rows)
}

func TestRow_ShortRowDoesNotPanic(t *testing.T) {
	table := Parse("ID;Nombre;Precio\n1\n", DefaultOptions())
	require.Len(t, table.Rows, 1)
	row := table.Rows[0]
	assert.Equal(t, "1", row.Field(0))
	assert.Equal(t, "", row.Field(2))
	assert.Equal(t, "", row.Field(-1))
}

func TestRow_Blank(t *testing.T) {
	assert.True(t, Row{Fields: []string{"", "  ", ""}}.Blank())
	assert.False(t, Row{Fields: []string{"", "x"}}.Blank())
}

func TestParse_CustomSeparator(t *testing.T) {
	table := Parse("a,b\n'x,y',z\n", Options{Separator: ',', Quote: '\''})
	require.Len(t, table.Rows, 1)
	assert.Equal(t, []string{"x,y", "z"}, table.Rows[0].Fields)
}
