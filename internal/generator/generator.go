package generator

import (
	"fmt"
	"go/parser"
	"go/token"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
)

// StubFileName is the file WriteStubFile creates.
const StubFileName = "stepindex_stubs.go"

// WriteStubs writes a Go file declaring one annotated step function for every
// distinct undefined step text. The package clause follows the Go files
// already present in dir.
func WriteStubs(dir string, texts []string, writer io.Writer) (int, error) {
	pkgName, err := detectPackageName(dir, StubFileName)
	if err != nil {
		return 0, err
	}

	return writeStubs(pkgName, texts, writer)
}

// WriteStubFile is WriteStubs into dir/StubFileName. Nothing is created when
// there are no stubs to write or the package cannot be determined.
func WriteStubFile(dir string, texts []string) (string, int, error) {
	if len(NewStubs(texts)) == 0 {
		return "", 0, nil
	}

	pkgName, err := detectPackageName(dir, StubFileName)
	if err != nil {
		return "", 0, err
	}

	stubPath := filepath.Join(dir, StubFileName)
	create, err := os.Create(stubPath)
	if err != nil {
		return "", 0, err
	}
	defer create.Close()

	written, err := writeStubs(pkgName, texts, create)
	if err != nil {
		return "", 0, err
	}

	return stubPath, written, nil
}

func writeStubs(pkgName string, texts []string, writer io.Writer) (int, error) {
	output := &Output{
		PackageName: pkgName,
		Stubs:       NewStubs(texts),
	}
	if len(output.Stubs) == 0 {
		return 0, nil
	}

	return len(output.Stubs), output.Generate(writer)
}

// detectPackageName returns the package the stubs join in dir. Step
// definitions often live only in _test.go files, so their package is used
// when dir holds no other Go files. skip names the stub file itself, which
// may be stale or half written.
func detectPackageName(dir, skip string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("cannot read directory %s: %w", dir, err)
	}

	fset := token.NewFileSet()
	testPackage := ""
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || name == skip || !strings.HasSuffix(name, ".go") {
			continue
		}

		f, parseErr := parser.ParseFile(fset, filepath.Join(dir, name), nil, parser.PackageClauseOnly)
		if parseErr != nil || f.Name == nil || f.Name.Name == "" {
			continue
		}
		if !strings.HasSuffix(name, "_test.go") {
			return f.Name.Name, nil
		}
		if testPackage == "" {
			testPackage = f.Name.Name
		}
	}
	if testPackage != "" {
		return testPackage, nil
	}

	return packageNameFromDir(dir)
}

// packageNameFromDir names a package for a directory without Go files: the
// last module path segment at a module root, the directory name elsewhere.
func packageNameFromDir(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	candidates := []string{}
	goModPath := filepath.Join(absDir, "go.mod")
	if data, readErr := os.ReadFile(goModPath); readErr == nil {
		if modPath := modfile.ModulePath(data); modPath != "" {
			base := path.Base(modPath)
			if isMajorVersion(base) {
				base = path.Base(path.Dir(modPath))
			}
			candidates = append(candidates, base)
		}
	}
	candidates = append(candidates, filepath.Base(absDir))

	for _, candidate := range candidates {
		if name := sanitizePackageName(candidate); name != "" {
			return name, nil
		}
	}

	return "", fmt.Errorf("cannot derive package name from directory %s", dir)
}

// sanitizePackageName turns a raw name into a valid Go package name.
// Hyphens and dots become underscores, a leading digit is prefixed with an
// underscore and keywords get a trailing one. Major version suffixes such as
// v2 are not package names and yield "".
func sanitizePackageName(raw string) string {
	if raw == "" || raw == "." || raw == "/" || isMajorVersion(raw) {
		return ""
	}

	var b strings.Builder
	for i, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r - 'A' + 'a')
		case r == '-' || r == '.':
			if i == 0 {
				continue
			}
			b.WriteRune('_')
		}
	}

	name := b.String()
	switch {
	case name == "":
		return ""
	case name[0] >= '0' && name[0] <= '9':
		return "_" + name
	case token.IsKeyword(name):
		return name + "_"
	}
	return name
}

func isMajorVersion(segment string) bool {
	if len(segment) < 2 || segment[0] != 'v' {
		return false
	}
	for _, r := range segment[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
