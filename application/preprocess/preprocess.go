// Package preprocess cleans up source text before it is lexed. Offsets
// reported for preprocessed text refer to the cleaned text, so the boundary
// never applies it implicitly.
package preprocess

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultTabWidth is the number of spaces a tab expands to.
const DefaultTabWidth = 2

type config struct {
	tabWidth       int
	trimTrailing   bool
	stripInvisible bool
	normalize      bool
}

// Option configures a Preprocessor.
type Option func(*config)

// WithTabWidth expands each tab to n spaces. Zero keeps tabs.
func WithTabWidth(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.tabWidth = n
		}
	}
}

// WithTrimTrailing removes spaces and tabs before each line break.
func WithTrimTrailing(enabled bool) Option {
	return func(c *config) {
		c.trimTrailing = enabled
	}
}

// WithStripInvisible removes Unicode format characters (category Cf),
// such as zero-width spaces and byte order marks. A zero width joiner next
// to an emoji or a variation selector is kept, so emoji sequences survive.
func WithStripInvisible(enabled bool) Option {
	return func(c *config) {
		c.stripInvisible = enabled
	}
}

// WithNormalize converts the text to Unicode normalization form C. It is
// off by default.
func WithNormalize(enabled bool) Option {
	return func(c *config) {
		c.normalize = enabled
	}
}

// Preprocessor applies a fixed set of clean-up passes.
type Preprocessor struct {
	cfg config
}

// New returns a Preprocessor. By default every pass except normalization is on.
func New(opts ...Option) *Preprocessor {
	cfg := config{
		tabWidth:       DefaultTabWidth,
		trimTrailing:   true,
		stripInvisible: true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Preprocessor{cfg: cfg}
}

// Apply returns the cleaned text.
func (p *Preprocessor) Apply(src string) (string, error) {
	var chain []transform.Transformer
	if p.cfg.stripInvisible {
		chain = append(chain, runes.Remove(runes.Predicate(func(r rune) bool {
			return r != zeroWidthJoiner && unicode.Is(unicode.Cf, r)
		})))
	}
	if p.cfg.normalize {
		chain = append(chain, norm.NFC)
	}
	if len(chain) > 0 {
		out, _, err := transform.String(transform.Chain(chain...), src)
		if err != nil {
			return "", fmt.Errorf("failed to transform source: %w", err)
		}
		src = out
	}

	if p.cfg.stripInvisible {
		src = stripJoiners(src)
	}
	if p.cfg.tabWidth > 0 {
		src = strings.ReplaceAll(src, "\t", strings.Repeat(" ", p.cfg.tabWidth))
	}
	if p.cfg.trimTrailing {
		src = trimTrailing(src)
	}
	return src, nil
}

const zeroWidthJoiner = '\u200d'

// stripJoiners drops zero width joiners unless a neighbouring rune is part
// of an emoji: a supplementary-plane rune or a variation selector.
func stripJoiners(src string) string {
	if !strings.ContainsRune(src, zeroWidthJoiner) {
		return src
	}
	rs := []rune(src)
	var b strings.Builder
	b.Grow(len(src))
	for i, r := range rs {
		if r == zeroWidthJoiner && !(i > 0 && emojiPart(rs[i-1])) && !(i+1 < len(rs) && emojiPart(rs[i+1])) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func emojiPart(r rune) bool {
	return r > 0xFFFF || (r >= 0xFE00 && r <= 0xFE0F)
}

func trimTrailing(src string) string {
	var b strings.Builder
	b.Grow(len(src))
	for {
		i := strings.IndexByte(src, '\n')
		if i < 0 {
			b.WriteString(src)
			return b.String()
		}
		line := src[:i]
		cr := strings.HasSuffix(line, "\r")
		if cr {
			line = line[:len(line)-1]
		}
		b.WriteString(strings.TrimRight(line, " \t"))
		if cr {
			b.WriteByte('\r')
		}
		b.WriteByte('\n')
		src = src[i+1:]
	}
}
