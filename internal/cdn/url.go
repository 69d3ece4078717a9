// Package cdn integrates with the Cloudinary image CDN: uploading with
// AI background removal and building transform-tagged delivery URLs.
//
// Delivery transforms are plain string surgery on the URL. Cloudinary
// applies whatever transform chain sits between the "/upload/" segment and
// the version segment, so injecting or stripping transforms never touches
// the stored asset.
package cdn

import (
	"regexp"
	"strings"
)

const uploadSegment = "/upload/"

// MotoPadTransform trims the subject, removes the background and pads the
// result onto a transparent 1200x800 canvas so every catalog card lines up.
const MotoPadTransform = "e_bgremoval,e_trim,c_pad,b_transparent,w_1200,h_800"

var (
	transformRe = regexp.MustCompile(`(/upload/)(?:[^/]+/)*?(v\d+/)`)
	versionRe   = regexp.MustCompile(`^v\d+`)
)

func isCloudinaryURL(url string) bool {
	return strings.Contains(url, "cloudinary") && strings.Contains(url, uploadSegment)
}

// ApplyTransform injects transform into a Cloudinary delivery URL, directly
// after the upload segment. Non-Cloudinary URLs pass through untouched, and
// a URL already carrying the transform is returned as-is. An existing
// different transform chain is replaced.
func ApplyTransform(url, transform string) string {
	if !isCloudinaryURL(url) {
		return url
	}

	prefix, rest, ok := strings.Cut(url, uploadSegment)
	if !ok {
		return url
	}

	if strings.HasPrefix(rest, transform+"/") {
		return url
	}

	first, remaining, _ := strings.Cut(rest, "/")
	remainder := remaining
	if versionRe.MatchString(first) {
		remainder = rest
	}

	if remainder == "" {
		return url
	}

	return prefix + uploadSegment + transform + "/" + remainder
}

// StripTransform removes any transform chain between the upload segment and
// the version segment, yielding the original delivery URL.
func StripTransform(url string) string {
	if !isCloudinaryURL(url) {
		return url
	}
	return transformRe.ReplaceAllString(url, "$1$2")
}

// MotoImageURL returns the catalog delivery URL for a moto image.
func MotoImageURL(url string) string {
	return ApplyTransform(url, MotoPadTransform)
}

// LogoImageURL returns the untransformed delivery URL for the site logo.
func LogoImageURL(url string) string {
	return StripTransform(url)
}
