package cloudinary

import (
	"strings"
)

// Media kinds understood by the URL transform helpers.
const (
	KindImage = "image"
	KindVideo = "video"
)

const uploadMarker = "/upload/"

// TransformOptions selects a delivery preset for OptimizeURL.
type TransformOptions struct {
	Responsive bool
	Thumbnail  bool
}

// OptimizeURL derives a delivery-optimised variant of a hosted media URL
// by injecting a transformation segment after the upload marker. URLs
// that do not point at Cloudinary are returned unchanged. Applying the
// helper to an already-transformed URL replaces the existing
// transformation segment, so the operation is idempotent.
func OptimizeURL(raw, kind string, opts TransformOptions) string {
	if raw == "" || !strings.Contains(raw, "cloudinary.com") {
		return raw
	}

	idx := strings.Index(raw, uploadMarker)
	if idx < 0 {
		return raw
	}

	base := raw[:idx+len(uploadMarker)]
	rest := stripTransformation(raw[idx+len(uploadMarker):])

	var transform string
	switch kind {
	case KindVideo:
		transform = "q_auto"
	default:
		transform = "q_auto,f_auto,c_limit,w_1200"
		if opts.Responsive {
			transform = "q_auto,f_auto,w_auto,c_scale,dpr_auto"
		}
		if opts.Thumbnail {
			transform = "c_thumb,w_400,h_300,g_auto"
		}
	}

	return base + transform + "/" + rest
}

// VideoThumbnailURL derives a poster-frame URL for a hosted video.
// Cloudinary URLs use an explicit frame transformation (first frame,
// jpg format); anything else falls back to swapping the file extension,
// which assumes the host generates a matching poster at that path.
func VideoThumbnailURL(raw string) string {
	if raw == "" {
		return ""
	}

	idx := strings.Index(raw, uploadMarker)
	if strings.Contains(raw, "cloudinary.com") && idx >= 0 {
		base := raw[:idx+len(uploadMarker)]
		rest := stripTransformation(raw[idx+len(uploadMarker):])
		return base + "so_0,f_jpg/" + swapExtension(rest, "jpg")
	}

	return swapExtension(raw, "jpg")
}

// IsVideoMIME classifies an asset by its MIME type.
func IsVideoMIME(mime string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(mime)), "video/")
}

// IsVideoURL classifies a hosted asset by its file extension.
func IsVideoURL(raw string) bool {
	path := raw
	if q := strings.IndexByte(path, '?'); q >= 0 {
		path = path[:q]
	}
	dot := strings.LastIndexByte(path, '.')
	if dot < 0 {
		return false
	}
	switch strings.ToLower(path[dot+1:]) {
	case "mp4", "webm", "ogg", "mov":
		return true
	default:
		return false
	}
}

// stripTransformation removes a leading transformation segment so
// transforms never nest. Version segments (v123...) and public id paths
// are left alone.
func stripTransformation(rest string) string {
	slash := strings.IndexByte(rest, '/')
	if slash <= 0 {
		return rest
	}
	if isTransformationSegment(rest[:slash]) {
		return rest[slash+1:]
	}
	return rest
}

func isTransformationSegment(segment string) bool {
	parts := strings.Split(segment, ",")
	for _, part := range parts {
		underscore := strings.IndexByte(part, '_')
		if underscore < 1 || underscore == len(part)-1 {
			return false
		}
		for _, r := range part[:underscore] {
			if r < 'a' || r > 'z' {
				return false
			}
		}
	}
	return true
}

func swapExtension(raw, ext string) string {
	path := raw
	query := ""
	if q := strings.IndexByte(raw, '?'); q >= 0 {
		path = raw[:q]
		query = raw[q:]
	}
	dot := strings.LastIndexByte(path, '.')
	slash := strings.LastIndexByte(path, '/')
	if dot <= slash {
		return path + "." + ext + query
	}
	return path[:dot+1] + ext + query
}
