package cdn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const baseURL = "https://res.cloudinary.com/demo/image/upload/v1700000000/multimark-motos/wave.png"

func TestApplyTransform(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			"plain delivery url",
			baseURL,
			"https://res.cloudinary.com/demo/image/upload/" + MotoPadTransform + "/v1700000000/multimark-motos/wave.png",
		},
		{
			"already transformed",
			"https://res.cloudinary.com/demo/image/upload/" + MotoPadTransform + "/v1700000000/multimark-motos/wave.png",
			"https://res.cloudinary.com/demo/image/upload/" + MotoPadTransform + "/v1700000000/multimark-motos/wave.png",
		},
		{
			"replaces existing transform",
			"https://res.cloudinary.com/demo/image/upload/w_500,h_300/v1700000000/multimark-motos/wave.png",
			"https://res.cloudinary.com/demo/image/upload/" + MotoPadTransform + "/v1700000000/multimark-motos/wave.png",
		},
		{
			"non-cloudinary url untouched",
			"https://example.com/images/wave.png",
			"https://example.com/images/wave.png",
		},
		{
			"local storage url untouched",
			"http://localhost:8080/files/motos/abc.png",
			"http://localhost:8080/files/motos/abc.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ApplyTransform(tt.url, MotoPadTransform))
		})
	}
}

func TestStripTransform(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			"removes transform chain",
			"https://res.cloudinary.com/demo/image/upload/" + MotoPadTransform + "/v1700000000/multimark-motos/wave.png",
			baseURL,
		},
		{
			"removes stacked transforms",
			"https://res.cloudinary.com/demo/image/upload/e_trim/w_500/v1700000000/multimark-motos/wave.png",
			baseURL,
		},
		{
			"plain url unchanged",
			baseURL,
			baseURL,
		},
		{
			"non-cloudinary url untouched",
			"https://example.com/images/wave.png",
			"https://example.com/images/wave.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripTransform(tt.url))
		})
	}
}

func TestMotoImageURL_Idempotent(t *testing.T) {
	once := MotoImageURL(baseURL)
	twice := MotoImageURL(once)

	assert.Equal(t, once, twice)
}

func TestLogoImageURL(t *testing.T) {
	transformed := MotoImageURL(baseURL)

	assert.Equal(t, baseURL, LogoImageURL(transformed))
}
