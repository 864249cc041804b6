package cloudinary

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptimizeURLInjectsTransformation(t *testing.T) {
	raw := "https://res.cloudinary.com/demo/image/upload/v123/portfolio/photo.jpg"

	got := OptimizeURL(raw, KindImage, TransformOptions{})
	require.Equal(t, "https://res.cloudinary.com/demo/image/upload/q_auto,f_auto,c_limit,w_1200/v123/portfolio/photo.jpg", got)
}

func TestOptimizeURLThumbnailPreset(t *testing.T) {
	raw := "https://res.cloudinary.com/demo/image/upload/v123/photo.jpg"

	got := OptimizeURL(raw, KindImage, TransformOptions{Thumbnail: true})
	require.Equal(t, "https://res.cloudinary.com/demo/image/upload/c_thumb,w_400,h_300,g_auto/v123/photo.jpg", got)
}

func TestOptimizeURLVideoUsesQualityOnly(t *testing.T) {
	raw := "https://res.cloudinary.com/demo/video/upload/v9/clip.mp4"

	got := OptimizeURL(raw, KindVideo, TransformOptions{})
	require.Equal(t, "https://res.cloudinary.com/demo/video/upload/q_auto/v9/clip.mp4", got)
}

func TestOptimizeURLIsIdempotent(t *testing.T) {
	raw := "https://res.cloudinary.com/demo/image/upload/v123/photo.jpg"

	once := OptimizeURL(raw, KindImage, TransformOptions{})
	twice := OptimizeURL(once, KindImage, TransformOptions{})
	require.Equal(t, once, twice)
}

func TestOptimizeURLReplacesExistingTransformation(t *testing.T) {
	raw := "https://res.cloudinary.com/demo/image/upload/c_thumb,w_400,h_300,g_auto/v123/photo.jpg"

	got := OptimizeURL(raw, KindImage, TransformOptions{})
	require.Equal(t, "https://res.cloudinary.com/demo/image/upload/q_auto,f_auto,c_limit,w_1200/v123/photo.jpg", got)
}

func TestOptimizeURLLeavesForeignHostsAlone(t *testing.T) {
	raw := "https://example.com/media/photo.jpg"
	require.Equal(t, raw, OptimizeURL(raw, KindImage, TransformOptions{}))
	require.Equal(t, "", OptimizeURL("", KindImage, TransformOptions{}))
}

func TestVideoThumbnailURLCloudinary(t *testing.T) {
	raw := "https://res.cloudinary.com/demo/video/upload/v9/clip.mp4"

	got := VideoThumbnailURL(raw)
	require.Equal(t, "https://res.cloudinary.com/demo/video/upload/so_0,f_jpg/v9/clip.jpg", got)
}

func TestVideoThumbnailURLFallbackSwapsExtension(t *testing.T) {
	require.Equal(t, "https://example.com/clip.jpg", VideoThumbnailURL("https://example.com/clip.mov"))
	require.Equal(t, "", VideoThumbnailURL(""))
}

func TestIsVideoURL(t *testing.T) {
	require.True(t, IsVideoURL("https://cdn.example.com/a.mp4"))
	require.True(t, IsVideoURL("https://cdn.example.com/a.MOV?sig=abc"))
	require.True(t, IsVideoURL("https://cdn.example.com/a.webm"))
	require.True(t, IsVideoURL("https://cdn.example.com/a.ogg"))
	require.False(t, IsVideoURL("https://cdn.example.com/a.jpg"))
	require.False(t, IsVideoURL("https://cdn.example.com/video"))
}

func TestIsVideoMIME(t *testing.T) {
	require.True(t, IsVideoMIME("video/mp4"))
	require.True(t, IsVideoMIME(" VIDEO/webm "))
	require.False(t, IsVideoMIME("image/png"))
	require.False(t, IsVideoMIME(""))
}
