package cfgkv

import "bytes"

// cursor reads a fully buffered input one byte at a time and can rewind over
// bytes it already consumed.
type cursor struct {
	data []byte
	pos  int
}

func newCursor(data []byte) *cursor {
	return &cursor{data: data}
}

// next consumes one byte. ok is false at end of input.
func (c *cursor) next() (b byte, ok bool) {
	if c.pos >= len(c.data) {
		return 0, false
	}
	b = c.data[c.pos]
	c.pos++
	return b, true
}

func (c *cursor) peek() (b byte, ok bool) {
	if c.pos >= len(c.data) {
		return 0, false
	}
	return c.data[c.pos], true
}

// unread rewinds over the last n consumed bytes.
func (c *cursor) unread(n int) {
	c.pos -= n
	if c.pos < 0 {
		c.pos = 0
	}
}

func (c *cursor) eof() bool { return c.pos >= len(c.data) }

func (c *cursor) skipWhitespace() {
	for c.pos < len(c.data) && isSpace(c.data[c.pos]) {
		c.pos++
	}
}

// expect consumes want. Any other byte, or the end of input, is an
// UnexpectedToken; a mismatched byte is left unread so the error position
// points at it.
func (c *cursor) expect(want byte) ErrorCode {
	b, ok := c.next()
	if !ok {
		return UnexpectedToken
	}
	if b != want {
		c.unread(1)
		return UnexpectedToken
	}
	return 0
}

// readRun consumes the longest run of bytes accepted by match and returns
// its length. The bytes stay readable through slice.
func (c *cursor) readRun(match func(byte) bool) int {
	start := c.pos
	for c.pos < len(c.data) && match(c.data[c.pos]) {
		c.pos++
	}
	return c.pos - start
}

// slice copies the n bytes ending at the cursor into a new string.
func (c *cursor) slice(n int) string {
	return string(c.data[c.pos-n : c.pos])
}

// readIdentifier reads letter (letter | digit | '$' | '.' | '_')*.
func (c *cursor) readIdentifier() (string, ErrorCode) {
	b, ok := c.peek()
	if !ok {
		return "", UnexpectedEOF
	}
	if !isLetter(b) {
		return "", InvalidKey
	}
	n := c.readRun(isIdentByte)
	return c.slice(n), 0
}

// position converts a byte offset into a 1-based line and column.
func (c *cursor) position(off int) (line, col int) {
	if off > len(c.data) {
		off = len(c.data)
	}
	head := c.data[:off]
	line = bytes.Count(head, []byte{'\n'}) + 1
	col = off - bytes.LastIndexByte(head, '\n')
	return line, col
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isLetter(b byte) bool { return 'a' <= b|0x20 && b|0x20 <= 'z' }

func isDigit(b byte) bool { return '0' <= b && b <= '9' }

func isHexLetter(b byte) bool { return 'a' <= b|0x20 && b|0x20 <= 'f' }

func isIdentByte(b byte) bool {
	return isLetter(b) || isDigit(b) || b == '$' || b == '.' || b == '_'
}
