// cmd/puregen/main.go
package main

import (
	"bytes"
	"fmt"
	"go/format"
	"go/parser"
	"go/token"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// This binary is a code-generation tool.
//
// It reads a YAML (or JSON) specification listing a package's modules with
// their dependency and payload types, and generates the per-module factory and
// configurator declarations that call sites and composition roots use.
//
// Key behaviors:
// - Reads spec: package, optional pure import path, modules
// - Locates the "owner" Go file (the file containing the go:generate for cmd/puregen) in the same directory
// - Reuses the owner file's imports that the spec's type expressions reference
// - Always imports the pure package
// - gofmt's the result and writes it atomically (temp file + rename)

const defaultPureImport = "github.com/sghaida/pure/pure"

// Module describes one module of the package.
//
// A module with Constructor gets a factory; a module with Configure gets a
// configurator. Both may be set.
type Module struct {
	// Name prefixes the generated identifiers (<Name>Factory, New<Name>Factory, ...).
	Name string `yaml:"name"`

	// Type is the Go type expression of the module, e.g. "*UserListHandler".
	Type string `yaml:"type"`

	// Dependency is the static dependency type. Empty means pure.Unit.
	Dependency string `yaml:"dependency"`

	// Payload is the per-call payload type. Empty means pure.Unit.
	Payload string `yaml:"payload"`

	// Constructor is a function func(Dependency, Payload) Type.
	Constructor string `yaml:"constructor"`

	// Configure is a method of Type with signature (Dependency, Payload).
	Configure string `yaml:"configure"`
}

// Spec is the full input schema consumed by the generator.
type Spec struct {
	Package string `yaml:"package"`

	// PureImport overrides the import path of the pure package.
	PureImport string `yaml:"pureImport"`

	Modules []Module `yaml:"modules"`
}

// ImportSpec models one Go import: optional alias and full import path.
type ImportSpec struct {
	Alias string
	Path  string
}

// moduleData is a Module with its defaults applied, as seen by the template.
type moduleData struct {
	Module
	DependencyType string
	PayloadType    string
	Static         bool
}

// templateData is the input passed to the Go template.
type templateData struct {
	Package     string
	ImportsList []ImportSpec
	Modules     []moduleData
}

// usageError marks errors that should exit with status 2.
type usageError struct{ error }

// run executes the generator and returns an exit code.
// It exists separately from main to allow unit testing without os.Exit.
func run(args []string, stderr io.Writer) int {
	cmd := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetOutput(stderr)

	if err := cmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(stderr, "puregen:", err)
		var uerr usageError
		if errors.As(err, &uerr) {
			_, _ = fmt.Fprintln(stderr, "usage: puregen --spec <modules.yaml> --out <file.gen.go>")
			return 2
		}
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// generateOptions holds the command-line flags.
type generateOptions struct {
	specPath string
	outPath  string
}

func bindFlags(flags *pflag.FlagSet, opts *generateOptions) {
	flags.StringVarP(&opts.specPath, "spec", "s", "", "path to the modules spec (YAML or JSON)")
	flags.StringVarP(&opts.outPath, "out", "o", "", "output .gen.go file path")
}

func newRootCommand() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:           "puregen",
		Short:         "Generate factory and configurator declarations for modules",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(opts.specPath) == "" || strings.TrimSpace(opts.outPath) == "" {
				return usageError{errors.New("both --spec and --out are required")}
			}
			return generate(opts.specPath, opts.outPath)
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})
	bindFlags(cmd.Flags(), opts)
	return cmd
}

// generate reads the spec at specPath and writes the generated file to outPath.
func generate(specPath, outPath string) error {
	specBytes, err := os.ReadFile(specPath)
	if err != nil {
		return errors.Wrap(err, "read spec")
	}

	spec, err := parseSpec(specBytes)
	if err != nil {
		return err
	}

	generatedFilePath := filepath.Clean(outPath)
	packageDir := filepath.Dir(generatedFilePath)

	// If we can't find the owner file, we can still generate with the pure import only.
	ownerGoFilePath, _ := findOwnerGoGenerateFile(packageDir)

	src, err := render(spec, resolveImports(ownerGoFilePath, spec))
	if err != nil {
		return err
	}

	return errors.Wrap(writeFileAtomic(generatedFilePath, src, 0o644), "write output")
}

// parseSpec decodes and validates a spec. YAML is a superset of JSON, so both
// formats are accepted.
func parseSpec(specBytes []byte) (*Spec, error) {
	var spec Spec
	if err := yaml.Unmarshal(specBytes, &spec); err != nil {
		return nil, errors.Wrap(err, "decode spec")
	}
	if err := validateSpec(&spec); err != nil {
		return nil, err
	}
	if strings.TrimSpace(spec.PureImport) == "" {
		spec.PureImport = defaultPureImport
	}
	return &spec, nil
}

// validateSpec validates semantic correctness of the input specification.
func validateSpec(spec *Spec) error {
	var missingFields []string

	if strings.TrimSpace(spec.Package) == "" {
		missingFields = append(missingFields, "package")
	}
	if len(spec.Modules) == 0 {
		missingFields = append(missingFields, "modules (must have at least 1)")
	}
	if len(missingFields) > 0 {
		return errors.Newf("spec missing required fields: %v", missingFields)
	}

	seenNames := make(map[string]struct{}, len(spec.Modules))
	for i, m := range spec.Modules {
		if !token.IsIdentifier(m.Name) {
			return errors.Newf("module %d: name %q is not a Go identifier", i, m.Name)
		}
		if _, ok := seenNames[m.Name]; ok {
			return errors.Newf("duplicate module name: %s", m.Name)
		}
		seenNames[m.Name] = struct{}{}

		if strings.TrimSpace(m.Type) == "" {
			return errors.Newf("module %s: type is required", m.Name)
		}
		if m.Constructor == "" && m.Configure == "" {
			return errors.Newf("module %s: needs a constructor, a configure method, or both", m.Name)
		}
		if m.Configure != "" && !token.IsIdentifier(m.Configure) {
			return errors.Newf("module %s: configure %q is not a method name", m.Name, m.Configure)
		}
	}
	return nil
}

// render executes the template and gofmt's the result.
func render(spec *Spec, imports []ImportSpec) ([]byte, error) {
	data := templateData{
		Package:     spec.Package,
		ImportsList: imports,
		Modules:     make([]moduleData, 0, len(spec.Modules)),
	}
	for _, m := range spec.Modules {
		md := moduleData{Module: m, DependencyType: m.Dependency, PayloadType: m.Payload}
		if strings.TrimSpace(md.DependencyType) == "" {
			md.DependencyType = "pure.Unit"
			md.Static = true
		}
		if strings.TrimSpace(md.PayloadType) == "" {
			md.PayloadType = "pure.Unit"
		}
		data.Modules = append(data.Modules, md)
	}

	var out bytes.Buffer
	if err := genTemplate.Execute(&out, data); err != nil {
		return nil, errors.Wrap(err, "execute template")
	}

	formatted, err := format.Source(out.Bytes())
	if err != nil {
		return nil, errors.Wrap(err, "format generated source")
	}
	return formatted, nil
}

// findOwnerGoGenerateFile finds the Go source file in packageDir that contains a go:generate
// directive invoking cmd/puregen.
//
// This is used to discover the owner file's imports so generated code can refer to the
// same packages the owner does.
func findOwnerGoGenerateFile(packageDir string) (string, error) {
	dirEntries, err := os.ReadDir(packageDir)
	if err != nil {
		return "", err
	}

	for _, entry := range dirEntries {
		if entry.IsDir() {
			continue
		}

		fileName := entry.Name()
		if !strings.HasSuffix(fileName, ".go") ||
			strings.HasSuffix(fileName, "_test.go") ||
			strings.HasSuffix(fileName, ".gen.go") {
			continue
		}

		filePath := filepath.Join(packageDir, fileName)
		fileBytes, err := os.ReadFile(filePath)
		if err != nil {
			// Best-effort: unreadable file shouldn't break generation.
			continue
		}

		if bytes.Contains(fileBytes, []byte("go:generate")) && bytes.Contains(fileBytes, []byte("cmd/puregen")) {
			return filePath, nil
		}
	}

	return "", errors.Newf("could not find owner file with go:generate invoking cmd/puregen in %s", packageDir)
}

// readImportsFromFile parses imports from a Go file.
func readImportsFromFile(goFilePath string) ([]ImportSpec, error) {
	fileSet := token.NewFileSet()
	parsedFile, err := parser.ParseFile(fileSet, goFilePath, nil, parser.ImportsOnly)
	if err != nil {
		return nil, err
	}

	var imports []ImportSpec
	for _, importDecl := range parsedFile.Imports {
		importPath := strings.Trim(importDecl.Path.Value, `"`)
		importAlias := ""
		if importDecl.Name != nil {
			importAlias = importDecl.Name.Name
		}
		imports = append(imports, ImportSpec{Alias: importAlias, Path: importPath})
	}

	return imports, nil
}

func ensureImport(imports *[]ImportSpec, required ImportSpec) {
	for _, existing := range *imports {
		if existing.Path == required.Path {
			// Don't duplicate the path; keep existing alias as-is.
			return
		}
	}
	*imports = append(*imports, required)
}

// importIdent returns the identifier an import is referred to by.
func importIdent(imp ImportSpec) string {
	if imp.Alias != "" {
		return imp.Alias
	}
	// Import paths always use forward slashes, even on Windows.
	return path.Base(strings.TrimSpace(imp.Path))
}

// typeExpressions returns every expression the generated code spells out that
// may carry a package qualifier: the module types and the constructor.
func typeExpressions(spec *Spec) []string {
	exprs := make([]string, 0, len(spec.Modules)*4)
	for _, m := range spec.Modules {
		exprs = append(exprs, m.Type, m.Dependency, m.Payload, m.Constructor)
	}
	return exprs
}

// referencesIdent reports whether any expression contains ident as a package qualifier.
func referencesIdent(exprs []string, ident string) bool {
	needle := ident + "."
	for _, expr := range exprs {
		for start := 0; ; {
			i := strings.Index(expr[start:], needle)
			if i < 0 {
				break
			}
			i += start
			if i == 0 || !isIdentByte(expr[i-1]) {
				return true
			}
			start = i + 1
		}
	}
	return false
}

func isIdentByte(b byte) bool {
	return b == '_' || ('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

// resolveImports builds the final imports list for the generated file.
//
// Rules:
// - Keep owner imports that the spec's type or constructor expressions reference (unused imports would not compile)
// - Always import the pure package, as "pure" unless the owner already does
// - Blank and dot imports from the owner are never copied
func resolveImports(ownerFilePath string, spec *Spec) []ImportSpec {
	var importsFromOwner []ImportSpec
	if strings.TrimSpace(ownerFilePath) != "" {
		parsedOwnerImports, err := readImportsFromFile(ownerFilePath)
		if err == nil {
			importsFromOwner = parsedOwnerImports
		}
		// If parsing fails, fall back to the pure import alone.
	}

	exprs := typeExpressions(spec)
	finalImports := make([]ImportSpec, 0, len(importsFromOwner)+1)
	for _, imp := range importsFromOwner {
		if imp.Alias == "_" || imp.Alias == "." || imp.Path == spec.PureImport {
			continue
		}
		if referencesIdent(exprs, importIdent(imp)) {
			finalImports = append(finalImports, imp)
		}
	}

	pureImport := ImportSpec{Path: spec.PureImport}
	if importIdent(pureImport) != "pure" {
		pureImport.Alias = "pure"
	}
	ensureImport(&finalImports, pureImport)
	return finalImports
}

// genTemplate is the Go source template used to generate module declarations.
var genTemplate = template.Must(
	template.New("puregen").Parse(`// Code generated by puregen; DO NOT EDIT.

package {{.Package}}

import (
{{- range .ImportsList}}
	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{- end}}
)
{{range .Modules}}
{{- if .Constructor}}
// {{.Name}}Factory is the call-site contract for building {{.Type}}.
type {{.Name}}Factory = pure.Factory[{{.PayloadType}}, {{.Type}}]
{{if .Static}}
// New{{.Name}}Factory binds {{.Constructor}}; {{.Type}} needs no dependency.
func New{{.Name}}Factory() *pure.ModuleFactory[pure.Unit, {{.PayloadType}}, {{.Type}}] {
	return pure.NewStaticFactory({{.Constructor}})
}
{{else}}
// New{{.Name}}Factory binds {{.Constructor}} to a lazily resolved {{.DependencyType}}.
func New{{.Name}}Factory(dependency func() {{.DependencyType}}, opts ...pure.Option) *pure.ModuleFactory[{{.DependencyType}}, {{.PayloadType}}, {{.Type}}] {
	return pure.NewFactory({{.Constructor}}, dependency, opts...)
}
{{end}}
// Stub{{.Name}}Factory returns a test double for {{.Name}}Factory.
func Stub{{.Name}}Factory(fn func({{.PayloadType}}) {{.Type}}) *pure.StubFactory[{{.PayloadType}}, {{.Type}}] {
	return pure.StubFactoryFunc(fn)
}
{{end}}
{{- if .Configure}}
// {{.Name}}Configurator is the call-site contract for configuring {{.Type}}.
type {{.Name}}Configurator = pure.Configurator[{{.Type}}, {{.PayloadType}}]
{{if .Static}}
// New{{.Name}}Configurator binds ({{.Type}}).{{.Configure}}; {{.Type}} needs no dependency.
func New{{.Name}}Configurator() *pure.ModuleConfigurator[{{.Type}}, pure.Unit, {{.PayloadType}}] {
	return pure.NewStaticConfigurator(({{.Type}}).{{.Configure}})
}
{{else}}
// New{{.Name}}Configurator binds ({{.Type}}).{{.Configure}} to a lazily resolved {{.DependencyType}}.
func New{{.Name}}Configurator(dependency func() {{.DependencyType}}, opts ...pure.Option) *pure.ModuleConfigurator[{{.Type}}, {{.DependencyType}}, {{.PayloadType}}] {
	return pure.NewConfigurator(({{.Type}}).{{.Configure}}, dependency, opts...)
}
{{end}}
// Stub{{.Name}}Configurator returns a test double for {{.Name}}Configurator.
func Stub{{.Name}}Configurator(fn func({{.Type}}, {{.PayloadType}})) *pure.StubConfigurator[{{.Type}}, {{.PayloadType}}] {
	return pure.NewStubConfigurator(fn)
}
{{end}}
{{- end}}`),
)

// tempFile abstracts an os.File for testability.
type tempFile interface {
	Name() string
	Write([]byte) (int, error)
	Close() error
}

// File operation hooks, overridden in tests.
var (
	createTempFile = func(dir, pattern string) (tempFile, error) { return os.CreateTemp(dir, pattern) }
	chmodFile      = os.Chmod
	renameFile     = os.Rename
	removeFile     = os.Remove
)

// writeFileAtomic writes a file atomically.
//
// It writes to a temporary file in the same directory and then renames it
// over the target path, ensuring readers never observe partial writes.
func writeFileAtomic(targetPath string, data []byte, perm os.FileMode) (err error) {
	targetDir := filepath.Dir(targetPath)

	tmpFile, err := createTempFile(targetDir, filepath.Base(targetPath)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if err != nil {
			_ = removeFile(tmpPath)
		}
	}()

	if _, err = tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err = tmpFile.Close(); err != nil {
		return err
	}
	if err = chmodFile(tmpPath, perm); err != nil {
		return err
	}
	if err = renameFile(tmpPath, targetPath); err != nil {
		return err
	}
	return nil
}
