package content

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Common binary file extensions, checked before touching file content.
var binaryExtensions = map[string]bool{
	".exe": true, ".dll": true, ".so": true, ".dylib": true, ".a": true,
	".o": true, ".obj": true, ".bin": true, ".dat": true,
	".db": true, ".sqlite": true, ".sqlite3": true,
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".bmp": true,
	".ico": true, ".tiff": true, ".webp": true,
	".mp3": true, ".mp4": true, ".avi": true, ".mov": true, ".webm": true,
	".zip": true, ".tar": true, ".gz": true, ".bz2": true, ".xz": true,
	".7z": true, ".rar": true,
	".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
	".pyc": true, ".class": true, ".jar": true,
	".woff": true, ".woff2": true, ".ttf": true, ".otf": true,
	".wasm": true,
}

var commonTextFiles = map[string]bool{
	"Makefile": true, "makefile": true, "Dockerfile": true,
	"README": true, "LICENSE": true, "CHANGELOG": true, "NOTICE": true,
	"Jenkinsfile": true, "Rakefile": true, "Gemfile": true,
}

// isBinaryFile detects likely-binary files: known extensions first, then
// a content sniff of the first 512 bytes for files without an extension.
func isBinaryFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if binaryExtensions[ext] {
		return true
	}
	if ext != "" {
		return false
	}
	if commonTextFiles[filepath.Base(path)] {
		return false
	}

	file, err := os.Open(path)
	if err != nil {
		return false
	}
	defer file.Close()

	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return false
	}

	if n >= 4 {
		// ELF, Mach-O and PE headers.
		if buffer[0] == 0x7f && buffer[1] == 'E' && buffer[2] == 'L' && buffer[3] == 'F' {
			return true
		}
		if (buffer[0] == 0xfe && buffer[1] == 0xed && buffer[2] == 0xfa) ||
			(buffer[0] == 0xcf && buffer[1] == 0xfa && buffer[2] == 0xed) {
			return true
		}
		if buffer[0] == 'M' && buffer[1] == 'Z' {
			return true
		}
	}

	for i := 0; i < n; i++ {
		if buffer[i] == 0 {
			return true
		}
	}
	return false
}
