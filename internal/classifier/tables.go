package classifier

import "DocPipeline/internal/domain"

type allowEntry struct {
	mime     string
	exts     []string
	category domain.Category
}

type blockEntry struct {
	mime   string
	exts   []string
	reason string
}

var allowTable = []allowEntry{
	// documents
	{"application/pdf", []string{"pdf"}, domain.CategoryPdf},
	{"application/vnd.openxmlformats-officedocument.wordprocessingml.document", []string{"docx"}, domain.CategoryOfficeDocument},
	{"application/msword", []string{"doc"}, domain.CategoryOfficeDocument},
	{"application/vnd.oasis.opendocument.text", []string{"odt"}, domain.CategoryOfficeDocument},
	{"application/vnd.openxmlformats-officedocument.presentationml.presentation", []string{"pptx"}, domain.CategoryOfficeDocument},
	{"application/vnd.ms-powerpoint", []string{"ppt"}, domain.CategoryOfficeDocument},
	{"application/vnd.oasis.opendocument.presentation", []string{"odp"}, domain.CategoryOfficeDocument},

	// spreadsheets
	{"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", []string{"xlsx"}, domain.CategorySpreadsheet},
	{"application/vnd.ms-excel", []string{"xls"}, domain.CategorySpreadsheet},
	{"application/vnd.oasis.opendocument.spreadsheet", []string{"ods"}, domain.CategorySpreadsheet},
	{"text/csv", []string{"csv"}, domain.CategoryCsv},
	{"application/csv", []string{"csv"}, domain.CategoryCsv},
	{"application/x-csv", []string{"csv"}, domain.CategoryCsv},

	// images
	{"image/jpeg", []string{"jpg", "jpeg"}, domain.CategoryImage},
	{"image/jpg", []string{"jpg", "jpeg"}, domain.CategoryImage},
	{"image/png", []string{"png"}, domain.CategoryImage},
	{"image/gif", []string{"gif"}, domain.CategoryImage},
	{"image/webp", []string{"webp"}, domain.CategoryImage},
	{"image/tiff", []string{"tif", "tiff"}, domain.CategoryImage},
	{"image/tif", []string{"tif", "tiff"}, domain.CategoryImage},
	{"image/bmp", []string{"bmp"}, domain.CategoryImage},

	// text, markup and source code
	{"text/plain", []string{"txt", "log", "srt"}, domain.CategoryPlainText},
	{"text/markdown", []string{"md", "markdown"}, domain.CategoryPlainText},
	{"application/json", []string{"json"}, domain.CategoryPlainText},
	{"application/xml", []string{"xml"}, domain.CategoryPlainText},
	{"text/xml", []string{"xml"}, domain.CategoryPlainText},
	{"image/svg+xml", []string{"svg"}, domain.CategoryPlainText},
	{"text/html", []string{"html", "htm"}, domain.CategoryPlainText},
	{"text/css", []string{"css"}, domain.CategoryPlainText},
	{"application/x-yaml", []string{"yaml", "yml"}, domain.CategoryPlainText},
	{"application/yaml", []string{"yaml", "yml"}, domain.CategoryPlainText},
	{"text/yaml", []string{"yaml", "yml"}, domain.CategoryPlainText},
	{"text/x-yaml", []string{"yaml", "yml"}, domain.CategoryPlainText},
	{"application/x-tex", []string{"tex"}, domain.CategoryPlainText},
	{"text/x-tex", []string{"tex"}, domain.CategoryPlainText},
	{"application/x-latex", []string{"tex"}, domain.CategoryPlainText},
	{"text/x-python", []string{"py"}, domain.CategoryPlainText},
	{"application/x-python-code", []string{"py"}, domain.CategoryPlainText},
	{"text/x-r-source", []string{"r"}, domain.CategoryPlainText},
	{"text/x-matlab", []string{"m"}, domain.CategoryPlainText},
	{"application/x-matlab-data", []string{"mat"}, domain.CategoryPlainText},
	{"application/javascript", []string{"js"}, domain.CategoryPlainText},
	{"text/javascript", []string{"js"}, domain.CategoryPlainText},
	{"text/x-c", []string{"c", "h"}, domain.CategoryPlainText},
	{"text/x-c++", []string{"cpp", "hpp"}, domain.CategoryPlainText},
	{"text/x-java", []string{"java"}, domain.CategoryPlainText},
	{"application/x-subrip", []string{"srt"}, domain.CategoryPlainText},

	// bibliography
	{"application/x-bibtex", []string{"bib"}, domain.CategoryBibliography},
	{"text/x-bibtex", []string{"bib"}, domain.CategoryBibliography},
	{"application/x-research-info-systems", []string{"ris"}, domain.CategoryBibliography},
	{"text/x-research-info-systems", []string{"ris"}, domain.CategoryBibliography},

	// notebooks and archives
	{"application/x-ipynb+json", []string{"ipynb"}, domain.CategoryNotebook},
	{"application/zip", []string{"zip"}, domain.CategoryArchive},
	{"application/x-zip-compressed", []string{"zip"}, domain.CategoryArchive},
}

var blockTable = []blockEntry{
	// audio
	{"audio/mpeg", []string{"mp3"}, "audio (MP3)"},
	{"audio/wav", []string{"wav"}, "audio (WAV)"},
	{"audio/x-flac", []string{"flac"}, "audio (FLAC)"},
	{"audio/aac", []string{"aac"}, "audio (AAC)"},
	{"audio/x-m4a", []string{"m4a"}, "audio (M4A)"},
	{"audio/ogg", []string{"ogg"}, "audio (OGG)"},

	// video
	{"video/mp4", []string{"mp4"}, "video (MP4)"},
	{"video/x-msvideo", []string{"avi"}, "video (AVI)"},
	{"video/x-matroska", []string{"mkv"}, "video (MKV)"},
	{"video/quicktime", []string{"mov"}, "video (MOV)"},
	{"video/x-ms-wmv", []string{"wmv"}, "video (WMV)"},
	{"video/x-flv", []string{"flv"}, "video (FLV)"},
	{"video/webm", []string{"webm"}, "video (WebM)"},

	// installers and executables
	{"application/x-msdownload", []string{"exe"}, "executable (Windows)"},
	{"application/x-msi", []string{"msi"}, "installer (Windows)"},
	{"application/x-apple-diskimage", []string{"dmg"}, "disk image (Mac)"},
	{"application/x-debian-package", []string{"deb"}, "package (Debian)"},
	{"application/x-redhat-package-manager", []string{"rpm"}, "package (Red Hat)"},
	{"application/x-executable", []string{"elf", "bin", "run"}, "executable (Linux)"},
	{"application/x-mach-binary", []string{"app"}, "application (Mac)"},

	// proprietary design formats
	{"image/vnd.adobe.photoshop", []string{"psd"}, "image (Photoshop)"},
	{"application/postscript", []string{"ai"}, "vector (Illustrator)"},
	{genericMIME, []string{"sketch"}, "design (Sketch)"},
	{genericMIME, []string{"fig"}, "design (Figma)"},
}

var icons = map[string]string{
	"pdf":  "📄",
	"docx": "📘", "doc": "📘", "odt": "📘",
	"pptx": "📊", "ppt": "📊", "odp": "📊",
	"xlsx": "📊", "xls": "📊", "ods": "📊",
	"csv":   "📈",
	"py":    "🐍",
	"ipynb": "📓",
	"r":     "📊", "m": "🔢", "mat": "🔢",
	"json": "🔧", "xml": "🔧", "yaml": "🔧", "yml": "🔧",
	"txt": "📝", "md": "📝", "tex": "📝",
	"bib": "📚", "ris": "📚",
	"jpg": "🖼️", "jpeg": "🖼️", "png": "🖼️", "gif": "🖼️", "webp": "🖼️", "tif": "🖼️", "tiff": "🖼️",
	"zip": "📦",
}
