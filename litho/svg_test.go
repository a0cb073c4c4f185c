package litho

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groundlog/borelog-viewer/db"
)

func testColumn() Column {
	loc := db.Location{ID: "BH01", GroundLevel: 50.0}
	intervals := []db.LithologyInterval{
		{TopDepth: 0, BaseDepth: 1, GeologyCode: "HWH_CLAY", GeologyDescription: "Harwich Formation silty clay"},
		{TopDepth: 1, BaseDepth: 3, GeologyCode: "HWH_SILTSTONE", GeologyDescription: "Harwich siltstone"},
		{TopDepth: 3, BaseDepth: 5, GeologyCode: "LONDON_CLAY", GeologyDescription: "London Clay very stiff"},
	}
	return BuildColumn(loc, intervals, map[string]string{
		"HWH_CLAY":      "#e377c2",
		"HWH_SILTSTONE": "#17becf",
		"LONDON_CLAY":   "#bcbd22",
	})
}

func TestRenderSVG(t *testing.T) {
	out := string(RenderSVG(testColumn()))

	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, "</svg>")
	// One background rect plus one per segment.
	assert.Equal(t, 4, strings.Count(out, "<rect"))
	assert.Contains(t, out, `fill="#e377c2"`)
	assert.Contains(t, out, `fill="#17becf"`)
	assert.Contains(t, out, `fill="#bcbd22"`)
	assert.Contains(t, out, ">HWH_SILTSTONE</text>")
	assert.Contains(t, out, "Elevation (m OD)")
}

func TestRenderSVGGroundAtTop(t *testing.T) {
	col := testColumn()
	out := string(RenderSVG(col))

	// The shallowest segment is drawn above the deepest one: its rect
	// appears first and with a smaller y.
	first := strings.Index(out, `fill="#e377c2"`)
	last := strings.Index(out, `fill="#bcbd22"`)
	assert.Less(t, first, last)
}

func TestRenderSVGEscapesCodes(t *testing.T) {
	col := Column{
		LocationID:   "BH01",
		GroundLevel:  10,
		MinElevation: 8,
		MaxElevation: 10.5,
		Segments: []Segment{
			{TopElevation: 10, BaseElevation: 8.5, GeologyCode: "SAND<&>GRAVEL", Color: DefaultColor},
		},
	}

	out := string(RenderSVG(col))
	assert.Contains(t, out, "SAND&lt;&amp;&gt;GRAVEL")
	assert.NotContains(t, out, "SAND<&>GRAVEL")
}

func TestRendererCachesSVG(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	col := testColumn()
	first := r.ColumnSVG(col)
	second := r.ColumnSVG(col)
	assert.Equal(t, first, second)
}

func TestRendererKeysCacheByContent(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	col := testColumn()
	first := r.ColumnSVG(col)
	r.cache.Wait()

	// Same borehole, changed formation color: the cached bytes must not
	// be served.
	col.Segments[0].Color = "#000000"
	second := r.ColumnSVG(col)

	assert.NotEqual(t, first, second)
	assert.Contains(t, string(second), `fill="#000000"`)
}

func TestRendererPNG(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	out, err := r.ColumnPNG(testColumn())
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 440, img.Bounds().Dx())
	assert.Equal(t, 1240, img.Bounds().Dy())
}
