package types

// RasterBackend identifies the PDF rasterization engine.
type RasterBackend string

const (
	// BackendAuto prefers Poppler and falls back to MuPDF.
	BackendAuto    RasterBackend = "auto"
	BackendPoppler RasterBackend = "poppler"
	BackendMuPDF   RasterBackend = "mupdf"
)

// RasterConfig holds settings for PDF-to-images conversion.
type RasterConfig struct {
	// Backend selects the rasterizer: auto, poppler, or mupdf.
	Backend RasterBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// PopplerPath is the directory holding the Poppler binaries (pdftoppm).
	// Empty means look the binary up on PATH.
	PopplerPath string `json:"poppler_path" yaml:"poppler_path" mapstructure:"poppler_path"`

	// DPI is the rendering resolution (default 200).
	DPI int `json:"dpi" yaml:"dpi" mapstructure:"dpi"`
}

// PageEncoding selects how page images are stored inside the output PDF.
type PageEncoding string

const (
	EncodingPNG  PageEncoding = "png"
	EncodingJPEG PageEncoding = "jpeg"
)

// CombineConfig holds settings for images-to-PDF conversion.
type CombineConfig struct {
	// Resolution is the DPI tag that maps pixels to page size (default 100).
	Resolution float64 `json:"resolution" yaml:"resolution" mapstructure:"resolution"`

	// Extensions lists the suffixes accepted in directory mode.
	Extensions []string `json:"extensions" yaml:"extensions" mapstructure:"extensions"`

	// Encoding selects lossless PNG or JPEG page images.
	Encoding PageEncoding `json:"encoding" yaml:"encoding" mapstructure:"encoding"`

	// JPEGQuality applies when Encoding is jpeg (1-100, default 95).
	JPEGQuality int `json:"jpeg_quality" yaml:"jpeg_quality" mapstructure:"jpeg_quality"`

	// AutoOrient rotates images according to their EXIF orientation tag.
	AutoOrient bool `json:"auto_orient" yaml:"auto_orient" mapstructure:"auto_orient"`

	// Verify re-reads the written PDF and checks its page count.
	Verify bool `json:"verify" yaml:"verify" mapstructure:"verify"`
}

// OutputConfig holds post-conversion behaviour.
type OutputConfig struct {
	// Open reveals the output location in the platform file browser.
	Open bool `json:"open" yaml:"open" mapstructure:"open"`
}

// HistoryConfig holds settings for the run history database.
type HistoryConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// Path is the SQLite database file.
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is a logrus level name (debug, info, warn, error).
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is text or json.
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// Config groups all pagepress settings.
type Config struct {
	Raster  RasterConfig  `json:"raster" yaml:"raster" mapstructure:"raster"`
	Combine CombineConfig `json:"combine" yaml:"combine" mapstructure:"combine"`
	Output  OutputConfig  `json:"output" yaml:"output" mapstructure:"output"`
	History HistoryConfig `json:"history" yaml:"history" mapstructure:"history"`
	Log     LogConfig     `json:"log" yaml:"log" mapstructure:"log"`
}

// DirectoryExtensions is the fixed suffix list used when scanning a folder.
var DirectoryExtensions = []string{".png", ".jpg", ".jpeg"}

// SelectionExtensions is the presentation filter for hand-picked files. The
// combiner itself accepts anything the decoder understands.
var SelectionExtensions = []string{".png", ".jpg", ".jpeg", ".bmp", ".gif", ".tiff"}
