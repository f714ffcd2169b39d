package utils

import "testing"

func TestPublicIDFromURL(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{
			"https://res.cloudinary.com/demo/image/upload/v1699999999/background-images/wall.png",
			"background-images/wall",
		},
		{
			"https://res.cloudinary.com/demo/image/upload/customization-options/flowers.svg",
			"customization-options/flowers",
		},
		{
			"https://res.cloudinary.com/demo/image/upload/v1/a/b/c.jpg",
			"a/b/c",
		},
		// Foreign URLs are not ours to delete.
		{"https://images.unsplash.com/photo-123.png", ""},
		{"https://source.unsplash.com/featured/?brick,wall", ""},
		{"https://res.cloudinary.com/demo/image/fetch/v1/x.png", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := PublicIDFromURL(tc.url); got != tc.want {
			t.Errorf("PublicIDFromURL(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}
