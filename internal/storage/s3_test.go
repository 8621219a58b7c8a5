package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/restaurant-reservations/internal/config"
)

func TestPublicBaseURL(t *testing.T) {
	cases := []struct {
		name string
		cfg  config.S3Config
		want string
	}{
		{
			name: "explicit public url",
			cfg:  config.S3Config{Bucket: "menu", PublicURL: "https://cdn.example.com/"},
			want: "https://cdn.example.com",
		},
		{
			name: "custom endpoint",
			cfg:  config.S3Config{Bucket: "menu", Endpoint: "http://localhost:9000"},
			want: "http://localhost:9000/menu",
		},
		{
			name: "aws",
			cfg:  config.S3Config{Bucket: "menu", Region: "sa-east-1"},
			want: "https://menu.s3.sa-east-1.amazonaws.com",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PublicBaseURL(tc.cfg))
		})
	}
}
