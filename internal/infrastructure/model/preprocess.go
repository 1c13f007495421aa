package model

import (
	"bytes"
	"image"

	// Codecs the upload form accepts.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"

	"github.com/ecoscan/ewaste-api/internal/core/domain"
)

// inputSize is the square resolution the model was trained at.
const inputSize = 224

// preprocess reproduces the fixed pipeline the model expects: decode to an
// RGB pixel grid, bilinear-resize to inputSize², scale each channel to
// [0, 1]. The result is a flat HWC tensor of length 224*224*3.
func preprocess(data []byte) ([]float32, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, domain.ErrInvalidImage
	}

	rgba := image.NewRGBA(image.Rect(0, 0, inputSize, inputSize))
	xdraw.BiLinear.Scale(rgba, rgba.Bounds(), img, img.Bounds(), xdraw.Src, nil)

	out := make([]float32, 0, inputSize*inputSize*3)
	for y := 0; y < inputSize; y++ {
		for x := 0; x < inputSize; x++ {
			off := rgba.PixOffset(x, y)
			out = append(out,
				float32(rgba.Pix[off])/255,
				float32(rgba.Pix[off+1])/255,
				float32(rgba.Pix[off+2])/255,
			)
		}
	}
	return out, nil
}
