package model

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/ecoscan/ewaste-api/internal/core/domain"
)

func TestPreprocess_TensorShape(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 640, 480))
	for y := 0; y < 480; y++ {
		for x := 0; x < 640; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode: %v", err)
	}

	tensor, err := preprocess(buf.Bytes())
	if err != nil {
		t.Fatalf("preprocess failed: %v", err)
	}
	if len(tensor) != inputSize*inputSize*3 {
		t.Fatalf("expected %d values, got %d", inputSize*inputSize*3, len(tensor))
	}
	for i, v := range tensor {
		if v < 0 || v > 1 {
			t.Fatalf("value %d out of [0,1]: %v", i, v)
		}
	}
}

func TestPreprocess_Garbage(t *testing.T) {
	_, err := preprocess([]byte{0xde, 0xad, 0xbe, 0xef})
	if !errors.Is(err, domain.ErrInvalidImage) {
		t.Fatalf("expected ErrInvalidImage, got %v", err)
	}
}

func TestPreprocess_EmptyInput(t *testing.T) {
	_, err := preprocess(nil)
	if !errors.Is(err, domain.ErrInvalidImage) {
		t.Fatalf("expected ErrInvalidImage, got %v", err)
	}
}
