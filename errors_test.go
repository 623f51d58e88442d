package cfgkv

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	t.Run("every code has a message and a name", func(t *testing.T) {
		codes := []ErrorCode{
			FileNoAccess, OutOfMemory, UnexpectedEOF, UnexpectedToken,
			InvalidKey, InvalidArrayElement, InvalidIntegerLiteral, InvalidDecimalLiteral,
		}
		seen := map[string]bool{}
		for _, c := range codes {
			msg := Message(c)
			assert.NotEqual(t, "unknown error", msg, c.String())
			assert.False(t, seen[msg], "duplicate message %q", msg)
			seen[msg] = true
			assert.Equal(t, msg, c.Error())
			assert.NotContains(t, c.String(), "ErrorCode(")
		}
	})

	t.Run("unknown code", func(t *testing.T) {
		assert.Equal(t, "unknown error", ErrorCode(42).Message())
		assert.Equal(t, "ErrorCode(42)", ErrorCode(42).String())
	})

	t.Run("messages", func(t *testing.T) {
		assert.Equal(t, "config file inaccessible", FileNoAccess.Message())
		assert.Equal(t, "unexpected end of file while parsing", UnexpectedEOF.Message())
		assert.Equal(t, "invalid integer literal", InvalidIntegerLiteral.Message())
	})
}

func TestParseError(t *testing.T) {
	t.Run("formats position key and cause", func(t *testing.T) {
		err := &ParseError{Code: InvalidArrayElement, Filename: "a.cfg", Line: 2, Column: 7, Key: "hosts", Err: UnexpectedToken}
		assert.Equal(t, `a.cfg:2:7: array elements must follow this syntax: [ele1, ele2, ...] (key "hosts"): unexpected token while parsing`, err.Error())
	})

	t.Run("without filename", func(t *testing.T) {
		err := &ParseError{Code: InvalidKey, Line: 1, Column: 1}
		assert.Equal(t, "1:1: configuration key must start with a letter", err.Error())
	})

	t.Run("without position", func(t *testing.T) {
		err := &ParseError{Code: OutOfMemory, Filename: "big.cfg"}
		assert.Equal(t, "big.cfg: out of memory", err.Error())
	})

	t.Run("matches code and cause", func(t *testing.T) {
		err := fmt.Errorf("load: %w", &ParseError{Code: FileNoAccess, Err: assert.AnError})
		assert.ErrorIs(t, err, FileNoAccess)
		assert.ErrorIs(t, err, assert.AnError)
		assert.NotErrorIs(t, err, UnexpectedEOF)
		assert.Equal(t, FileNoAccess, CodeOf(err))
	})

	t.Run("CodeOf without code", func(t *testing.T) {
		assert.Equal(t, ErrorCode(0), CodeOf(nil))
		assert.Equal(t, ErrorCode(0), CodeOf(errors.New("plain")))
	})
}
