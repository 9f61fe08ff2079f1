package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"time"

	"github.com/go-vgo/robotgo"
)

// ocrThreshold is the gray level separating text from background when
// binarizing screenshots before OCR.
const ocrThreshold = 150

// captureScreen grabs the full display and returns it as PNG bytes,
// cleaning up the temporary file robotgo writes.
func captureScreen() ([]byte, error) {
	img := robotgo.CaptureImg()
	if img == nil {
		return nil, fmt.Errorf("Error capturing screen: no image returned")
	}

	tempFile, err := os.CreateTemp("", fmt.Sprintf("quizsnap-%d-*.png", time.Now().Unix()))
	if err != nil {
		return nil, fmt.Errorf("Error creating temporary file: %v", err)
	}
	tempFile.Close()
	defer os.Remove(tempFile.Name())

	if err := robotgo.Save(img, tempFile.Name()); err != nil {
		return nil, fmt.Errorf("Error saving screenshot: %v", err)
	}

	data, err := os.ReadFile(tempFile.Name())
	if err != nil {
		return nil, fmt.Errorf("Error reading screenshot: %v", err)
	}
	return data, nil
}

// preprocessForOCR converts a screenshot to a black-on-white binary
// image, which tesseract handles much better than anti-aliased color.
func preprocessForOCR(src image.Image) *image.Gray {
	bounds := src.Bounds()
	out := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			g := color.GrayModel.Convert(src.At(x, y)).(color.Gray)
			if g.Y > ocrThreshold {
				out.SetGray(x, y, color.Gray{Y: 255})
			} else {
				out.SetGray(x, y, color.Gray{Y: 0})
			}
		}
	}
	return out
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("Error encoding image: %v", err)
	}
	return buf.Bytes(), nil
}
