// Package ignore implements gitignore-style path exclusion for the combine walk.
package ignore

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// FileName is the per-directory ignore file consulted at the scan root.
const FileName = ".combineignore"

// IgnorePattern encapsulates a compiled regular expression pattern,
// a negation flag, and metadata about the pattern's origin.
type IgnorePattern struct {
	Pattern *regexp.Regexp // Compiled regular expression for the pattern.
	Negate  bool           // Indicates if the pattern is a negation (starts with '!').
	Line    string         // Original pattern line.
	LineNo  int            // Line number in the source (1-based).
	Source  string         // File the pattern came from, empty for inline patterns.
}

// Matcher represents an ordered collection of ignore patterns. Later patterns
// take precedence over earlier ones, so a negation can re-include a path.
type Matcher struct {
	Patterns []*IgnorePattern
	logger   *zap.Logger
}

// New initializes an empty Matcher. A nil logger is replaced by a no-op logger.
func New(logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{
		Patterns: []*IgnorePattern{},
		logger:   logger,
	}
}

// Load builds a Matcher from an optional global ignore file followed by the
// root's own .combineignore. Missing files are not an error.
func Load(root, globalPath string, logger *zap.Logger) (*Matcher, error) {
	m := New(logger)

	if globalPath != "" {
		if err := m.CompileIgnoreFile(globalPath); err != nil {
			return nil, err
		}
	}

	if err := m.CompileIgnoreFile(filepath.Join(root, FileName)); err != nil {
		return nil, err
	}

	m.logger.Debug("Loaded ignore patterns", zap.Int("totalPatterns", len(m.Patterns)))
	return m, nil
}

// CompileIgnoreLines compiles a set of ignore pattern lines and adds them to the Matcher.
func (m *Matcher) CompileIgnoreLines(lines ...string) {
	m.compile("", lines)
}

// CompileIgnoreFile reads an ignore file and adds its patterns to the Matcher.
// A file that does not exist is skipped silently.
func (m *Matcher) CompileIgnoreFile(fpath string) error {
	content, err := os.ReadFile(fpath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			m.logger.Debug("Ignore file does not exist and will be skipped", zap.String("filePath", fpath))
			return nil
		}
		m.logger.Error("Failed to read ignore file", zap.String("filePath", fpath), zap.Error(err))
		return err
	}

	lines := strings.Split(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n")
	before := len(m.Patterns)
	m.compile(fpath, lines)
	m.logger.Info("Compiled ignore patterns",
		zap.String("filePath", fpath),
		zap.Int("patternCount", len(m.Patterns)-before))
	return nil
}

func (m *Matcher) compile(source string, lines []string) {
	for i, line := range lines {
		pattern, negate := parsePatternLine(line)
		if pattern == nil {
			continue
		}
		m.Patterns = append(m.Patterns, &IgnorePattern{
			Pattern: pattern,
			Negate:  negate,
			Line:    line,
			LineNo:  i + 1,
			Source:  source,
		})
	}
}

// Len returns the number of compiled patterns.
func (m *Matcher) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Patterns)
}

// MatchesPath reports whether a root-relative path is ignored. Directory
// paths are expected to carry a trailing slash so directory-only patterns
// ("out/") can tell them apart from files.
func (m *Matcher) MatchesPath(path string) bool {
	matches, _ := m.MatchesPathWithPattern(path)
	return matches
}

// MatchesPathWithPattern is MatchesPath that also returns the last pattern
// that decided the outcome.
func (m *Matcher) MatchesPathWithPattern(path string) (bool, *IgnorePattern) {
	if m == nil {
		return false, nil
	}
	normalizedPath := filepath.ToSlash(path)

	var matchedPattern *IgnorePattern
	matches := false

	for _, pattern := range m.Patterns {
		if pattern.Pattern.MatchString(normalizedPath) {
			matchedPattern = pattern
			matches = !pattern.Negate
		}
	}

	return matches, matchedPattern
}

// parsePatternLine turns one ignore line into a compiled regex and a negation flag.
// Blank lines and comments yield a nil regex.
func parsePatternLine(line string) (*regexp.Regexp, bool) {
	trimmedLine := strings.TrimSpace(line)

	if trimmedLine == "" || strings.HasPrefix(trimmedLine, "#") {
		return nil, false
	}

	negate := false
	if strings.HasPrefix(trimmedLine, "!") {
		negate = true
		trimmedLine = trimmedLine[1:]
	}

	// "\#" and "\!" escape a literal leading character.
	if strings.HasPrefix(trimmedLine, `\#`) || strings.HasPrefix(trimmedLine, `\!`) {
		trimmedLine = trimmedLine[1:]
	}

	dirOnly := strings.HasSuffix(trimmedLine, "/")
	trimmedLine = strings.TrimSuffix(trimmedLine, "/")

	rooted := strings.HasPrefix(trimmedLine, "/")
	trimmedLine = strings.TrimPrefix(trimmedLine, "/")

	if trimmedLine == "" {
		return nil, false
	}

	var expr strings.Builder
	if rooted {
		expr.WriteString("^")
	} else {
		expr.WriteString("^(?:.*/)?")
	}
	expr.WriteString(globToRegex(trimmedLine))
	if dirOnly {
		expr.WriteString("/.*$")
	} else {
		expr.WriteString("(?:/.*)?$")
	}

	compiledRegex, err := regexp.Compile(expr.String())
	if err != nil {
		return nil, false
	}
	return compiledRegex, negate
}

// globToRegex converts '*', '?' and '**' wildcards; everything else is literal.
func globToRegex(glob string) string {
	var b strings.Builder
	for i := 0; i < len(glob); i++ {
		c := glob[i]
		switch {
		case c == '*' && i+1 < len(glob) && glob[i+1] == '*':
			i++
			if i+1 < len(glob) && glob[i+1] == '/' {
				i++
				b.WriteString("(?:.*/)?")
			} else {
				b.WriteString(".*")
			}
		case c == '*':
			b.WriteString("[^/]*")
		case c == '?':
			b.WriteString("[^/]")
		default:
			b.WriteString(regexp.QuoteMeta(glob[i : i+1]))
		}
	}
	return b.String()
}
