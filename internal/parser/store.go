package parser

import (
	"go/ast"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/toyz/autoswagger/internal/annotations"
	"github.com/toyz/autoswagger/internal/errors"
	"github.com/toyz/autoswagger/internal/utils"
	"github.com/toyz/autoswagger/internal/utils/fileops"
)

// Store loads handler annotations from Go sources. Every source is read and
// parsed once per Store; concurrent requests for the same source share one
// parse. A Store is meant to live for a single generation run.
type Store struct {
	processor   *utils.FileProcessor
	fileOps     *fileops.FileOps
	annotations *annotations.Parser
	diagnostics *utils.DiagnosticSystem
	collector   *errors.Collector

	sources *utils.Cache[string, map[string]annotations.OperationAnnotation]
	group   singleflight.Group
}

// NewStore creates an empty annotation store. diagnostics and collector may be nil.
func NewStore(diagnostics *utils.DiagnosticSystem, collector *errors.Collector) *Store {
	if diagnostics == nil {
		diagnostics = utils.NewSilentDiagnostics()
	}
	if collector == nil {
		collector = errors.NewCollector(0)
	}
	return &Store{
		processor:   utils.NewFileProcessor(),
		fileOps:     fileops.NewFileOps(),
		annotations: annotations.NewParser(),
		diagnostics: diagnostics,
		collector:   collector,
		sources:     utils.NewCache[string, map[string]annotations.OperationAnnotation](),
	}
}

// Annotations returns every documented function in source keyed by
// "Receiver.Method" for methods and by name for plain functions.
func (s *Store) Annotations(source string) (map[string]annotations.OperationAnnotation, error) {
	target, _, err := s.resolve(source)
	if err != nil {
		return nil, err
	}
	return s.load(target)
}

// Lookup returns the annotation documenting action in source. A missing
// annotation is not an error; an unreadable source is.
func (s *Store) Lookup(source, action string) (annotations.OperationAnnotation, bool, error) {
	target, receiver, err := s.resolve(source)
	if err != nil {
		return annotations.OperationAnnotation{}, false, err
	}

	docs, err := s.load(target)
	if err != nil {
		return annotations.OperationAnnotation{}, false, err
	}

	key, ok := matchAction(docs, receiver, action)
	if !ok {
		return annotations.OperationAnnotation{}, false, nil
	}
	return docs[key], true, nil
}

// Stats reports how many sources and Go files the store has parsed
func (s *Store) Stats() (sources, files int) {
	files, _ = s.processor.GetFileReader().CacheStats()
	return s.sources.Size(), files
}

// resolve maps a source reference onto a file or package directory. A path
// that names neither, but whose parent is a package directory, is read as
// "<package>/<Receiver>" and the base name becomes the receiver hint.
func (s *Store) resolve(source string) (target, receiver string, err error) {
	clean := filepath.Clean(source)

	switch {
	case strings.HasSuffix(clean, ".go"):
		if s.fileOps.IsFile(clean) {
			return absPath(clean), "", nil
		}
	case s.fileOps.IsFile(clean + ".go"):
		return absPath(clean + ".go"), "", nil
	case s.fileOps.IsDir(clean):
		return absPath(clean), "", nil
	case s.fileOps.IsDir(filepath.Dir(clean)):
		return absPath(filepath.Dir(clean)), filepath.Base(clean), nil
	}

	return "", "", errors.WrapFileSystemError("read", source, fs.ErrNotExist).
		WithSuggestion("Check that the handler's package exists under the application root")
}

// load parses target once, coalescing concurrent callers
func (s *Store) load(target string) (map[string]annotations.OperationAnnotation, error) {
	if docs, ok := s.sources.Get(target); ok {
		return docs, nil
	}

	v, err, _ := s.group.Do(target, func() (interface{}, error) {
		if docs, ok := s.sources.Get(target); ok {
			return docs, nil
		}

		docs, err := s.parseTarget(target)
		if err != nil {
			return nil, err
		}
		s.sources.Set(target, docs)
		return docs, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(map[string]annotations.OperationAnnotation), nil
}

func (s *Store) parseTarget(target string) (map[string]annotations.OperationAnnotation, error) {
	files := []string{target}
	if s.fileOps.IsDir(target) {
		var err error
		files, err = s.processor.GoFilesInDir(target)
		if err != nil {
			return nil, errors.WrapFileSystemError("read directory", target, err)
		}
	}

	docs := make(map[string]annotations.OperationAnnotation)
	for _, file := range files {
		if err := s.parseFile(file, docs); err != nil {
			return nil, err
		}
	}

	s.diagnostics.Debug("Loaded %d annotation(s) from %s", len(docs), target)
	return docs, nil
}

func (s *Store) parseFile(path string, docs map[string]annotations.OperationAnnotation) error {
	reader := s.processor.GetFileReader()

	file, err := reader.ParseGoFile(path)
	if file == nil {
		return errors.WrapFileSystemError("read", path, err)
	}
	if err != nil {
		// Partial ASTs still carry every declaration before the syntax error.
		s.diagnostics.Warn("Syntax error in %s, using partial declarations: %v", path, err)
		s.collector.AddSyntax("source has syntax errors", errors.SourceLocation{File: path}, err)
	}

	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Doc == nil {
			continue
		}

		pos := reader.Position(fn.Doc.Pos())
		loc := annotations.SourceLocation{File: pos.Filename, Line: pos.Line, Column: pos.Column}

		annotation, err := s.annotations.Parse(rawComment(fn.Doc), loc)
		if err != nil {
			s.diagnostics.Debug("Ignoring malformed annotation on %s: %v", funcKey(fn), err)
			s.collector.AddSyntax("malformed annotation on "+funcKey(fn),
				errors.SourceLocation{File: loc.File, Line: loc.Line, Column: loc.Column}, err)
		}
		if annotation.IsEmpty() && !annotation.Malformed {
			continue
		}

		docs[funcKey(fn)] = annotation
	}

	return nil
}

// rawComment joins a comment group keeping its markers so line numbers line up
func rawComment(group *ast.CommentGroup) string {
	lines := make([]string, 0, len(group.List))
	for _, c := range group.List {
		lines = append(lines, c.Text)
	}
	return strings.Join(lines, "\n")
}

// funcKey names a function declaration: "Receiver.Method" or "Func"
func funcKey(fn *ast.FuncDecl) string {
	if fn.Recv == nil || len(fn.Recv.List) == 0 {
		return fn.Name.Name
	}
	if recv := receiverName(fn.Recv.List[0].Type); recv != "" {
		return recv + "." + fn.Name.Name
	}
	return fn.Name.Name
}

func receiverName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return receiverName(t.X)
	case *ast.Ident:
		return t.Name
	case *ast.IndexExpr:
		return receiverName(t.X)
	case *ast.IndexListExpr:
		return receiverName(t.X)
	default:
		return ""
	}
}

// matchAction finds the key documenting action. With a receiver hint only
// that receiver's methods and plain functions are candidates. Exact matches
// win over case-insensitive ones.
func matchAction(docs map[string]annotations.OperationAnnotation, receiver, action string) (string, bool) {
	if action == "" {
		return "", false
	}

	keys := make([]string, 0, len(docs))
	for key := range docs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	candidates := func(fold bool) []string {
		eq := func(a, b string) bool {
			if fold {
				return strings.EqualFold(a, b)
			}
			return a == b
		}

		var out []string
		for _, key := range keys {
			recv, name, isMethod := strings.Cut(key, ".")
			if !isMethod {
				name, recv = recv, ""
			}
			if !eq(name, action) {
				continue
			}
			if receiver != "" && isMethod && !eq(recv, receiver) {
				continue
			}
			out = append(out, key)
		}
		return out
	}

	for _, fold := range []bool{false, true} {
		matches := candidates(fold)
		if len(matches) == 0 {
			continue
		}
		// Prefer a method on the hinted receiver over a plain function.
		for _, key := range matches {
			if strings.Contains(key, ".") {
				return key, true
			}
		}
		return matches[0], true
	}

	return "", false
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
