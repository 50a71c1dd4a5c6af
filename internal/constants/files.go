package constants

// Upload limits
const (
	UploadMaxSizeBytes = 10 * 1024 * 1024 // 10MB per image
)

// Upload categories map to subdirectories of the public uploads dir.
// They mirror the report sections that carry images.
var UploadCategories = []string{
	"general",
	"signatures",
	"sleep",
	"digestive",
	"allergies",
	"addiction",
	"sports",
	"lifestyle",
}

// Allowed image extensions (without dot) for uploads
var UploadAllowedExtensions = map[string]string{
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"svg":  "image/svg+xml",
	"webp": "image/webp",
}

// Filename sanitization
const (
	MaxFilenameLength = 255
)
