package cfgkv

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"
	"strconv"
)

// Grammar:
//
//	document    = { blank | comment | config_line } ;
//	config_line = IDENT "=" ( array | value ) ";" ;
//	array       = "[" [ value { "," value } ] "]" ;
//	value       = quoted_string | number | decimal ;
//	quoted      = "'" { byte - "'" } "'" ;
//	number      = digit { digit } | "0x" hexdigit { hexdigit } | "0" octdigit { octdigit } ;
//	decimal     = digit { digit } "." digit { digit } ;
//	comment     = "#" { byte - "\n" } ( "\n" | EOF ) ;
//	IDENT       = letter { letter | digit | "$" | "." | "_" } ;

// ParseFile reads and parses the file at path. Errors opening or reading the
// file are reported with code FileNoAccess.
func ParseFile(path string, opts ...Option) (Document, error) {
	opts = append([]Option{WithFilename(path)}, opts...)
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Code: FileNoAccess, Filename: cfg.filename, Err: err}
	}
	defer f.Close()
	return parseReader(f, cfg)
}

// ParseReader reads r to the end and parses it.
func ParseReader(r io.Reader, opts ...Option) (Document, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	return parseReader(r, cfg)
}

// Parse parses a complete document held in memory. On failure the returned
// Document is nil and the error is a *ParseError.
func Parse(data []byte, opts ...Option) (Document, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	return parse(data, cfg)
}

func parseReader(r io.Reader, cfg *config) (Document, error) {
	// One byte past the limit is enough to tell an oversized input apart.
	if cfg.maxSize > 0 && cfg.maxSize < math.MaxInt64 {
		r = io.LimitReader(r, cfg.maxSize+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ParseError{Code: FileNoAccess, Filename: cfg.filename, Err: err}
	}
	return parse(data, cfg)
}

func parse(data []byte, cfg *config) (Document, error) {
	if cfg.maxSize > 0 && int64(len(data)) > cfg.maxSize {
		return nil, &ParseError{
			Code:     OutOfMemory,
			Filename: cfg.filename,
			Err:      errors.New("input exceeds size limit of " + strconv.FormatInt(cfg.maxSize, 10) + " bytes"),
		}
	}
	p := &parser{cur: newCursor(data), cfg: cfg, log: cfg.logger}
	if cfg.filename != "" {
		p.log = p.log.With(slog.String("file", cfg.filename))
	}
	doc, err := p.parseDocument()
	if err != nil {
		p.log.Debug("parse failed", slog.Any("error", err))
		return nil, err
	}
	p.log.Debug("parse complete", slog.Int("entries", len(doc)))
	return doc, nil
}

type parser struct {
	cur *cursor
	cfg *config
	log *slog.Logger
	key string // key of the entry being parsed
}

// fail builds the error for code at the cursor's current position.
func (p *parser) fail(code ErrorCode) error {
	return p.failAt(code, p.cur.pos)
}

func (p *parser) failAt(code ErrorCode, off int) error {
	line, col := p.cur.position(off)
	return &ParseError{
		Code:     code,
		Filename: p.cfg.filename,
		Line:     line,
		Column:   col,
		Offset:   off,
		Key:      p.key,
	}
}

func (p *parser) parseDocument() (Document, error) {
	doc := Document{}
	for {
		p.cur.skipWhitespace()
		if p.cur.eof() {
			return doc, nil
		}
		e, ok, err := p.parseLine()
		if err != nil {
			return nil, err
		}
		if ok {
			doc = append(doc, e)
		}
	}
}

// parseLine parses one comment or assignment. Leading whitespace has been
// skipped already. ok reports whether an entry was produced.
func (p *parser) parseLine() (e Entry, ok bool, err error) {
	b, more := p.cur.peek()
	switch {
	case !more:
		return Entry{}, false, p.fail(UnexpectedEOF)
	case b == '#':
		p.cur.next()
		p.skipComment()
		return Entry{}, false, nil
	case isLetter(b):
		e, err := p.parseEntry()
		if err != nil {
			return Entry{}, false, err
		}
		return e, true, nil
	case isIdentByte(b):
		return Entry{}, false, p.fail(InvalidKey)
	default:
		return Entry{}, false, p.fail(UnexpectedToken)
	}
}

// skipComment discards the rest of a comment. The leading '#' has been
// consumed already.
func (p *parser) skipComment() {
	start := p.cur.pos
	for {
		b, ok := p.cur.next()
		if !ok || b == '\n' {
			break
		}
	}
	p.log.Debug("comment skipped", slog.Int("offset", start-1))
}

func (p *parser) parseEntry() (Entry, error) {
	start := p.cur.pos
	key, code := p.cur.readIdentifier()
	if code != 0 {
		return Entry{}, p.fail(code)
	}
	p.key = key
	defer func() { p.key = "" }()

	p.cur.skipWhitespace()
	if code := p.cur.expect('='); code != 0 {
		return Entry{}, p.fail(code)
	}
	p.cur.skipWhitespace()

	b, ok := p.cur.next()
	if !ok {
		return Entry{}, p.fail(UnexpectedEOF)
	}
	var (
		value Value
		err   error
	)
	if b == '[' {
		value, err = p.parseArray()
	} else {
		p.cur.unread(1)
		value, err = p.parseValue()
	}
	if err != nil {
		return Entry{}, err
	}

	p.cur.skipWhitespace()
	if code := p.cur.expect(';'); code != 0 {
		return Entry{}, p.fail(code)
	}

	if p.log.Enabled(context.Background(), slog.LevelDebug) {
		line, _ := p.cur.position(start)
		p.log.Debug("entry parsed",
			slog.String("key", key),
			slog.String("kind", value.Kind().String()),
			slog.Int("line", line))
	}
	return Entry{Key: key, Value: value}, nil
}

// parseValue parses a single quoted string or number.
func (p *parser) parseValue() (Primitive, error) {
	b, ok := p.cur.next()
	if !ok {
		return Primitive{}, p.fail(UnexpectedEOF)
	}
	switch {
	case b == '\'':
		return p.parseQuoted()
	case isDigit(b):
		p.cur.unread(1)
		return p.parseNumber()
	default:
		p.cur.unread(1)
		return Primitive{}, p.fail(UnexpectedToken)
	}
}

// parseQuoted reads the content of a quoted string. The opening quote has
// been consumed already. There are no escapes, so the content cannot hold a
// quote.
func (p *parser) parseQuoted() (Primitive, error) {
	n := p.cur.readRun(func(b byte) bool { return b != '\'' })
	if p.cur.eof() {
		return Primitive{}, p.fail(UnexpectedEOF)
	}
	text := p.cur.slice(n)
	p.cur.next() // closing quote
	return Text(text), nil
}

// parseNumber reads one run of digits, hex letters, 'x' and at most one '.',
// then converts it as a decimal when it holds a dot and as an integer
// otherwise.
func (p *parser) parseNumber() (Primitive, error) {
	start := p.cur.pos
	dot := false
	n := p.cur.readRun(func(b byte) bool {
		switch {
		case isDigit(b), isHexLetter(b), b == 'x', b == 'X':
			return true
		case b == '.' && !dot:
			dot = true
			return true
		}
		return false
	})
	if n == 0 {
		return Primitive{}, p.fail(UnexpectedToken)
	}
	lit := p.cur.slice(n)
	if dot {
		v, err := parseDecimal(lit)
		if err != nil {
			return Primitive{}, p.failAt(InvalidDecimalLiteral, start)
		}
		return Decimal(v), nil
	}
	v, ok := parseInteger(lit)
	if !ok {
		return Primitive{}, p.failAt(InvalidIntegerLiteral, start)
	}
	return Integer(v), nil
}

// parseDecimal converts a literal holding a dot. A 0x prefixed literal is a
// hexadecimal fraction such as 0x1.8 (1.5); strconv wants a binary exponent
// for those, so a zero one is supplied.
func parseDecimal(lit string) (float64, error) {
	if strings.HasPrefix(lit, "0x") || strings.HasPrefix(lit, "0X") {
		lit += "p0"
	}
	return strconv.ParseFloat(lit, 64)
}

// parseInteger converts lit honouring the 0x (hex) and 0 (octal) prefixes.
func parseInteger(lit string) (int64, bool) {
	base, digits := 10, lit
	switch {
	case len(lit) > 1 && lit[0] == '0' && (lit[1] == 'x' || lit[1] == 'X'):
		base, digits = 16, lit[2:]
	case len(lit) > 1 && lit[0] == '0':
		base, digits = 8, lit[1:]
	}
	if digits == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(digits, base, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseArray parses the elements of an array. The opening '[' has been
// consumed already.
func (p *parser) parseArray() (Array, error) {
	arr := Array{}
	wantElem := true // at the start or right after a comma
	for {
		p.cur.skipWhitespace()
		b, ok := p.cur.next()
		if !ok {
			return nil, p.fail(UnexpectedEOF)
		}
		switch b {
		case ']':
			if !p.cfg.lenientArrays && wantElem && len(arr) > 0 {
				p.cur.unread(1)
				return nil, p.fail(UnexpectedToken)
			}
			return arr, nil
		case ',':
			if !p.cfg.lenientArrays && wantElem {
				p.cur.unread(1)
				return nil, p.fail(UnexpectedToken)
			}
			wantElem = true
			continue
		}
		p.cur.unread(1)
		if !wantElem {
			return nil, p.fail(UnexpectedToken)
		}
		elem, err := p.parseValue()
		if err != nil {
			var perr *ParseError
			if errors.As(err, &perr) {
				perr.Err = perr.Code
				perr.Code = InvalidArrayElement
				return nil, perr
			}
			return nil, err
		}
		arr = append(arr, elem)
		wantElem = false
	}
}
