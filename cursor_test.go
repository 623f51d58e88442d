package cfgkv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursor(t *testing.T) {
	t.Run("next and unread walk the buffer", func(t *testing.T) {
		c := newCursor([]byte("ab"))
		b, ok := c.next()
		require.True(t, ok)
		assert.Equal(t, byte('a'), b)
		c.unread(1)
		b, _ = c.next()
		assert.Equal(t, byte('a'), b)
		b, _ = c.next()
		assert.Equal(t, byte('b'), b)
		_, ok = c.next()
		assert.False(t, ok)
		assert.True(t, c.eof())
	})

	t.Run("unread never goes before the start", func(t *testing.T) {
		c := newCursor([]byte("x"))
		c.unread(5)
		assert.Equal(t, 0, c.pos)
	})

	t.Run("skipWhitespace stops at first non-space", func(t *testing.T) {
		c := newCursor([]byte(" \t\r\n\v\fz"))
		c.skipWhitespace()
		b, ok := c.peek()
		require.True(t, ok)
		assert.Equal(t, byte('z'), b)
	})

	t.Run("skipWhitespace at end of input", func(t *testing.T) {
		c := newCursor([]byte("   "))
		c.skipWhitespace()
		assert.True(t, c.eof())
	})

	t.Run("expect consumes on match only", func(t *testing.T) {
		c := newCursor([]byte("=;"))
		assert.Equal(t, ErrorCode(0), c.expect('='))
		assert.Equal(t, UnexpectedToken, c.expect('='))
		assert.Equal(t, 1, c.pos, "mismatched byte must stay unread")
		assert.Equal(t, ErrorCode(0), c.expect(';'))
		assert.Equal(t, UnexpectedToken, c.expect(';'))
		assert.True(t, c.eof())
	})

	t.Run("readIdentifier accepts special symbols", func(t *testing.T) {
		c := newCursor([]byte("db.host$2_x = 1"))
		id, code := c.readIdentifier()
		require.Zero(t, code)
		assert.Equal(t, "db.host$2_x", id)
		b, _ := c.peek()
		assert.Equal(t, byte(' '), b)
	})

	t.Run("readIdentifier rejects non letter start", func(t *testing.T) {
		for _, src := range []string{"1abc", "_x", "$x", ".x"} {
			c := newCursor([]byte(src))
			_, code := c.readIdentifier()
			assert.Equal(t, InvalidKey, code, src)
			assert.Equal(t, 0, c.pos, src)
		}
	})

	t.Run("readIdentifier at end of input", func(t *testing.T) {
		_, code := newCursor(nil).readIdentifier()
		assert.Equal(t, UnexpectedEOF, code)
	})

	t.Run("readRun and slice", func(t *testing.T) {
		c := newCursor([]byte("123abc"))
		n := c.readRun(isDigit)
		assert.Equal(t, 3, n)
		assert.Equal(t, "123", c.slice(n))
	})

	t.Run("position is one based", func(t *testing.T) {
		c := newCursor([]byte("ab\ncd\n\nef"))
		line, col := c.position(0)
		assert.Equal(t, [2]int{1, 1}, [2]int{line, col})
		line, col = c.position(4)
		assert.Equal(t, [2]int{2, 2}, [2]int{line, col})
		line, col = c.position(7)
		assert.Equal(t, [2]int{4, 1}, [2]int{line, col})
		line, col = c.position(100)
		assert.Equal(t, [2]int{4, 3}, [2]int{line, col})
	})
}

func TestCharacterClasses(t *testing.T) {
	assert.True(t, isLetter('a'))
	assert.True(t, isLetter('Z'))
	assert.False(t, isLetter('@'))
	assert.False(t, isLetter('['))
	assert.False(t, isLetter('`'))
	assert.False(t, isLetter('{'))
	assert.True(t, isHexLetter('F'))
	assert.False(t, isHexLetter('g'))
	assert.True(t, isIdentByte('$'))
	assert.False(t, isIdentByte('-'))
}
