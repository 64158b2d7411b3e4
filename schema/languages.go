package schema

import (
	"path"
	"strings"
)

// languageByExtension maps a lower-cased file extension to its language.
var languageByExtension = map[string]string{
	".cs":     "C#",
	".xaml":   "XAML",
	".java":   "Java",
	".js":     "JavaScript",
	".jsx":    "JavaScript",
	".ts":     "TypeScript",
	".tsx":    "TypeScript",
	".py":     "Python",
	".html":   "HTML",
	".css":    "CSS",
	".scss":   "SCSS",
	".less":   "LESS",
	".json":   "JSON",
	".xml":    "XML",
	".sql":    "SQL",
	".sh":     "Shell",
	".ps1":    "PowerShell",
	".yml":    "YAML",
	".yaml":   "YAML",
	".md":     "Markdown",
	".vue":    "Vue",
	".svelte": "Svelte",
	".go":     "Go",
	".rs":     "Rust",
	".kt":     "Kotlin",
	".swift":  "Swift",
	".php":    "PHP",
	".rb":     "Ruby",
	".cpp":    "C++",
	".c":      "C",
	".h":      "C/C++ Header",
}

// FileExtension returns the lower-cased substring from the last '.' of the
// base name, or "" when the file has none.
func FileExtension(filePath string) string {
	base := path.Base(strings.ReplaceAll(filePath, "\\", "/"))
	idx := strings.LastIndex(base, ".")
	if idx < 0 || idx == len(base)-1 {
		return ""
	}
	return strings.ToLower(base[idx:])
}

// LanguageForPath returns the language for a file path when its extension is known.
func LanguageForPath(filePath string) (string, bool) {
	ext := FileExtension(filePath)
	if ext == "" {
		return "", false
	}
	lang, ok := languageByExtension[ext]
	return lang, ok
}
