package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLanguageForPath(t *testing.T) {
	tests := []struct {
		path     string
		expected string
		ok       bool
	}{
		{"src/app.py", "Python", true},
		{"src/App.TSX", "TypeScript", true},
		{"Views/Main.xaml", "XAML", true},
		{"lib/util.min.js", "JavaScript", true},
		{"include/vec.h", "C/C++ Header", true},
		{`C:\work\Program.cs`, "C#", true},
		{"Makefile", "", false},
		{".gitignore", "", false},
		{"dir.v2/README", "", false},
		{"notes.txt", "", false},
		{"trailing.", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			lang, ok := LanguageForPath(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, lang)
		})
	}
}

func TestFileExtension(t *testing.T) {
	assert.Equal(t, ".go", FileExtension("cmd/main.GO"))
	assert.Equal(t, ".gitignore", FileExtension(".gitignore"))
	assert.Equal(t, "", FileExtension("LICENSE"))
	assert.Equal(t, "", FileExtension("a.b/c"))
}

func TestLanguageTableSize(t *testing.T) {
	assert.Len(t, languageByExtension, 31)
}
