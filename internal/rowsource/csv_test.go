package rowsource_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liguoqinjim/china-bean-importers/internal/rowsource"
)

func TestFromCSV(t *testing.T) {
	input := strings.Join([]string{
		`2023-01-05,人民币,-100.00,900.00,超市消费,家乐福`,
		`2023-01-06,人民币,-20.00,880.00,外卖,美团,点外卖`,
		`2023-01-07,人民币,-3.00,877.00,其他`,
	}, "\n")

	rows, err := rowsource.FromCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"2023-01-05", "人民币", "-100.00", "900.00", "超市消费", "家乐福"}, rows[0].Fields)
	assert.Len(t, rows[1].Fields, 7)
	assert.Len(t, rows[2].Fields, 5)

	// Line numbers track the source file.
	assert.Equal(t, 1, rows[0].Line)
	assert.Equal(t, 2, rows[1].Line)
	assert.Equal(t, 3, rows[2].Line)
}

func TestFromCSVEmpty(t *testing.T) {
	rows, err := rowsource.FromCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestFromCSVMalformed(t *testing.T) {
	_, err := rowsource.FromCSV(strings.NewReader("a,\"b\nc"))
	assert.Error(t, err)
}

func TestFromFileMissing(t *testing.T) {
	_, err := rowsource.FromFile("/nonexistent/rows.csv")
	assert.Error(t, err)
}
