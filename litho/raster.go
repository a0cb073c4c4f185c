package litho

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"image"
	"image/png"
	"strconv"

	"github.com/dgraph-io/ristretto"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"go.uber.org/zap"
)

// Renderer renders columns to SVG and PNG with a cache over the encoded
// bytes. Entries are keyed by the column content, so providers reading a
// shared database pick up changed rows on the next render instead of
// serving stale images.
type Renderer struct {
	cache *ristretto.Cache
}

// NewRenderer builds a renderer with a ristretto-backed byte cache.
func NewRenderer() (*Renderer, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e5,     // number of keys to track frequency of
		MaxCost:     1 << 26, // 64MB of rendered bytes
		BufferItems: 64,      // number of keys per Get buffer
	})
	if err != nil {
		return nil, err
	}
	return &Renderer{cache: cache}, nil
}

// cacheKey digests everything that feeds a render, so any change in the
// underlying rows produces a fresh entry.
func cacheKey(col Column, format string) string {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%g|%g|%g", col.LocationID, col.GroundLevel, col.MinElevation, col.MaxElevation)
	for _, seg := range col.Segments {
		fmt.Fprintf(h, "|%g|%g|%s|%s", seg.TopDepth, seg.BaseDepth, seg.GeologyCode, seg.Color)
	}
	return format + ":" + strconv.FormatUint(h.Sum64(), 16)
}

// ColumnSVG returns the column rendered as SVG.
func (r *Renderer) ColumnSVG(col Column) []byte {
	key := cacheKey(col, "svg")
	if cached, ok := r.cache.Get(key); ok {
		return cached.([]byte)
	}
	out := RenderSVG(col)
	r.cache.Set(key, out, int64(len(out)))
	return out
}

// ColumnPNG returns the column rasterized to PNG.
func (r *Renderer) ColumnPNG(col Column) ([]byte, error) {
	key := cacheKey(col, "png")
	if cached, ok := r.cache.Get(key); ok {
		return cached.([]byte), nil
	}

	out, err := rasterize(r.ColumnSVG(col))
	if err != nil {
		zap.L().Error("column rasterization failed",
			zap.String("location_id", col.LocationID), zap.Error(err))
		return nil, err
	}
	r.cache.Set(key, out, int64(len(out)))
	return out, nil
}

// rasterize parses the SVG and draws it into an RGBA image at 2x scale.
// Text elements are outside the rasterizer's vocabulary and are skipped, so
// the PNG carries the geometry and colors without labels.
func rasterize(svg []byte) ([]byte, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, err
	}

	w := int(icon.ViewBox.W) * 2
	h := int(icon.ViewBox.H) * 2
	icon.SetTarget(0, 0, float64(w), float64(h))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	dasher := rasterx.NewDasher(w, h, scanner)
	icon.Draw(dasher, 1)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
