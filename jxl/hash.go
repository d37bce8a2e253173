package jxl

import (
	"fmt"
	"image/jpeg"
	"os"

	"github.com/corona10/goimagehash"
	"github.com/nfnt/resize"
)

// PerceptualHash decodes a JPEG and calculates its perception hash.
// The image is downscaled first so hashing a directory of full-size
// photos stays fast; the hash is resolution-independent anyway.
func PerceptualHash(path string) (*goimagehash.ImageHash, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer func() { _ = f.Close() }()

	img, err := jpeg.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	small := resize.Resize(256, 0, img, resize.Bilinear)

	hash, err := goimagehash.PerceptionHash(small)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate perceptual hash: %w", err)
	}

	return hash, nil
}
