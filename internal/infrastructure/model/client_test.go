package model

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ecoscan/ewaste-api/internal/core/domain"
)

// testImage encodes a small solid-color PNG so tests exercise the real
// decode and resize path.
func testImage(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 32, 48))
	for y := 0; y < 48; y++ {
		for x := 0; x < 32; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	return buf.Bytes()
}

func modelServer(t *testing.T, probs []float64) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/metadata", func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(metadata{
			Classes:   domain.Categories,
			ImageSize: inputSize,
		})
	})
	mux.HandleFunc("/predict", func(w http.ResponseWriter, r *http.Request) {
		var req predictRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		if len(req.Image) != inputSize*inputSize*3 {
			http.Error(w, "wrong tensor length", http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(predictResponse{Probabilities: probs})
	})
	return httptest.NewServer(mux)
}

func TestClient_Classify(t *testing.T) {
	// index 5 is laptop in the category order
	probs := []float64{0.01, 0.02, 0.01, 0.01, 0.01, 0.9237, 0.01, 0.005, 0.005, 0.005}
	srv := modelServer(t, probs)
	defer srv.Close()

	c := New(context.Background(), Config{URL: srv.URL}, domain.Categories, zerolog.Nop())
	if !c.Available() {
		t.Fatal("expected client available after successful probe")
	}

	pred, err := c.Classify(context.Background(), testImage(t))
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}
	if pred.Category != "laptop" {
		t.Fatalf("expected laptop, got %q", pred.Category)
	}
	if pred.Confidence < 92.36 || pred.Confidence > 92.38 {
		t.Fatalf("unexpected confidence: %v", pred.Confidence)
	}
}

func TestClient_Classify_Deterministic(t *testing.T) {
	probs := []float64{0.5, 0.1, 0.1, 0.05, 0.05, 0.05, 0.05, 0.04, 0.03, 0.03}
	srv := modelServer(t, probs)
	defer srv.Close()

	c := New(context.Background(), Config{URL: srv.URL}, domain.Categories, zerolog.Nop())
	img := testImage(t)

	first, err := c.Classify(context.Background(), img)
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		again, err := c.Classify(context.Background(), img)
		if err != nil {
			t.Fatalf("classify failed on repeat: %v", err)
		}
		if again != first {
			t.Fatalf("same image produced different predictions: %+v vs %+v", again, first)
		}
	}
}

func TestClient_DegradedOnProbeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "not ready", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New(context.Background(), Config{URL: srv.URL}, domain.Categories, zerolog.Nop())
	if c.Available() {
		t.Fatal("expected client degraded after failed probe")
	}

	_, err := c.Classify(context.Background(), testImage(t))
	if !errors.Is(err, domain.ErrModelUnavailable) {
		t.Fatalf("expected ErrModelUnavailable, got %v", err)
	}
}

func TestClient_DegradedOnClassCountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(metadata{Classes: []string{"battery", "cable"}})
	}))
	defer srv.Close()

	c := New(context.Background(), Config{URL: srv.URL}, domain.Categories, zerolog.Nop())
	if c.Available() {
		t.Fatal("expected client degraded when class counts disagree")
	}
}

func TestClient_Classify_InvalidImage(t *testing.T) {
	srv := modelServer(t, make([]float64, len(domain.Categories)))
	defer srv.Close()

	c := New(context.Background(), Config{URL: srv.URL}, domain.Categories, zerolog.Nop())

	_, err := c.Classify(context.Background(), []byte("definitely not an image"))
	if !errors.Is(err, domain.ErrInvalidImage) {
		t.Fatalf("expected ErrInvalidImage, got %v", err)
	}
}

func TestClient_Classify_WrongProbabilityLength(t *testing.T) {
	srv := modelServer(t, []float64{0.5, 0.5})
	defer srv.Close()

	c := New(context.Background(), Config{URL: srv.URL}, domain.Categories, zerolog.Nop())

	_, err := c.Classify(context.Background(), testImage(t))
	if err == nil {
		t.Fatal("expected error for truncated probability vector")
	}
}
