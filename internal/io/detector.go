package io

var (
	pngSignature    = [...]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	riffSignature   = [...]byte{0x52, 0x49, 0x46, 0x46}
	webpSignature   = [...]byte{0x57, 0x45, 0x42, 0x50}
	tiffLESignature = [...]byte{0x49, 0x49, 0x2A, 0x00}
	tiffBESignature = [...]byte{0x4D, 0x4D, 0x00, 0x2A}
	gif87aSignature = [...]byte{0x47, 0x49, 0x46, 0x38, 0x37, 0x61}
	gif89aSignature = [...]byte{0x47, 0x49, 0x46, 0x38, 0x39, 0x61}
)

// headerSniffLength is enough for every signature checked below
const headerSniffLength = 16

// detectFormat identifies the image format from its magic bytes, or
// returns "" when nothing matches.
func detectFormat(magicBytes []byte) string {
	if len(magicBytes) < 2 {
		return ""
	}

	// JPEG: FF D8 FF
	if len(magicBytes) >= 3 && magicBytes[0] == 0xFF && magicBytes[1] == 0xD8 && magicBytes[2] == 0xFF {
		return "JPEG"
	}

	if hasPrefix(magicBytes, pngSignature[:]) {
		return "PNG"
	}

	if hasPrefix(magicBytes, gif87aSignature[:]) || hasPrefix(magicBytes, gif89aSignature[:]) {
		return "GIF"
	}

	// WebP: RIFF....WEBP
	if len(magicBytes) >= 12 && hasPrefix(magicBytes, riffSignature[:]) && hasPrefix(magicBytes[8:], webpSignature[:]) {
		return "WEBP"
	}

	if hasPrefix(magicBytes, tiffLESignature[:]) || hasPrefix(magicBytes, tiffBESignature[:]) {
		return "TIFF"
	}

	// BMP: BM
	if magicBytes[0] == 0x42 && magicBytes[1] == 0x4D {
		return "BMP"
	}

	return ""
}

func hasPrefix(buf, prefix []byte) bool {
	if len(buf) < len(prefix) {
		return false
	}
	for i, b := range prefix {
		if buf[i] != b {
			return false
		}
	}
	return true
}
