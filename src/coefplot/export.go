package coefplot

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	"golang.org/x/image/draw"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// inkBounds returns the smallest rectangle holding every pixel that differs
// from bg. ok is false for a blank image.
func inkBounds(img image.Image, bg drawing.Color) (r image.Rectangle, ok bool) {
	b := img.Bounds()
	br, bgc, bb, ba := bg.RGBA()
	minX, minY, maxX, maxY := b.Max.X, b.Max.Y, b.Min.X-1, b.Min.Y-1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			pr, pg, pb, pa := img.At(x, y).RGBA()
			if pr == br && pg == bgc && pb == bb && pa == ba {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	if maxX < minX {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}

// cropToInk returns the inked part of img plus margin pixels on every side.
// The margin may extend past the source; that area is filled with bg.
func cropToInk(img image.Image, bg drawing.Color, margin int) image.Image {
	ink, ok := inkBounds(img, bg)
	if !ok {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, ink.Dx()+2*margin, ink.Dy()+2*margin))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.Color(bg)), image.Point{}, draw.Src)
	draw.Copy(dst, image.Pt(margin, margin), img, ink, draw.Src, nil)
	return dst
}

// encodePNG encodes img and records dpi in a pHYs chunk.
func encodePNG(img image.Image, dpi float64) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.DefaultCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return withPHYs(buf.Bytes(), dpi)
}

const (
	pngSignatureLen = 8
	// IHDR: length, type, 13 bytes of data, crc.
	pngIHDRLen = 4 + 4 + 13 + 4
)

// withPHYs inserts a pHYs chunk right after IHDR. The image encoder in the
// standard library never writes one.
func withPHYs(data []byte, dpi float64) ([]byte, error) {
	at := pngSignatureLen + pngIHDRLen
	if len(data) < at || string(data[pngSignatureLen+4:pngSignatureLen+8]) != "IHDR" {
		return nil, fmt.Errorf("encode png: unexpected header")
	}
	ppm := uint32(dpi/0.0254 + 0.5)

	chunk := make([]byte, 4+4+9+4)
	binary.BigEndian.PutUint32(chunk[0:], 9)
	copy(chunk[4:], "pHYs")
	binary.BigEndian.PutUint32(chunk[8:], ppm)
	binary.BigEndian.PutUint32(chunk[12:], ppm)
	chunk[16] = 1 // unit: metre
	binary.BigEndian.PutUint32(chunk[17:], crc32.ChecksumIEEE(chunk[4:17]))

	out := make([]byte, 0, len(data)+len(chunk))
	out = append(out, data[:at]...)
	out = append(out, chunk...)
	return append(out, data[at:]...), nil
}

// writeFileAtomic writes data to a temporary file next to path and renames it
// into place, so readers never see a partial file.
func writeFileAtomic(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			err = multierr.Append(err, os.Remove(tmp.Name()))
		}
	}()
	if _, err = tmp.Write(data); err != nil {
		err = multierr.Append(fmt.Errorf("write %s: %w", path, err), tmp.Close())
		return err
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
