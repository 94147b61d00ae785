package svg

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"math"

	xdraw "golang.org/x/image/draw"
)

// encodeRaster returns img as base64-encoded PNG data, downsampled first when
// it holds more than maxPixels pixels.
func encodeRaster(img *image.NRGBA, interpolate bool, maxPixels int) (string, error) {
	var src image.Image = img
	if w, h := img.Bounds().Dx(), img.Bounds().Dy(); maxPixels > 0 && w*h > maxPixels {
		src = downsample(img, w, h, maxPixels, interpolate)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// downsample scales img so that it holds at most maxPixels pixels, keeping
// the aspect ratio. Interpolated rasters are filtered; the others keep hard
// pixel edges.
func downsample(img *image.NRGBA, w, h, maxPixels int, interpolate bool) *image.NRGBA {
	f := math.Sqrt(float64(maxPixels) / float64(w*h))
	nw := max(1, int(float64(w)*f))
	nh := max(1, int(float64(h)*f))

	dst := image.NewNRGBA(image.Rect(0, 0, nw, nh))
	var scaler xdraw.Scaler = xdraw.NearestNeighbor
	if interpolate {
		scaler = xdraw.ApproxBiLinear
	}
	scaler.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst
}
