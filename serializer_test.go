package cdom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arenadoc/cdom"
)

func TestStringifyCompactEmptyContainers(t *testing.T) {
	doc, err := cdom.ParseString(`{"a":[],"b":{}}`, cdom.ParseConfig{})
	require.NoError(t, err)

	s, err := cdom.Stringify(doc.Root(), cdom.Compact)
	require.NoError(t, err)
	assert.Equal(t, `{"a":[],"b":{}}`, s)
}

func TestStringifyPrettyIndentation(t *testing.T) {
	doc, err := cdom.ParseString(`{"a":1,"b":[2,3]}`, cdom.ParseConfig{})
	require.NoError(t, err)

	s, err := cdom.Stringify(doc.Root(), cdom.StringifyConfig{Options: cdom.Pretty, Indent: 2, Newline: "\n"})
	require.NoError(t, err)

	expected := "{\n  \"a\": 1,\n  \"b\": [\n    2,\n    3\n  ]\n}"
	assert.Equal(t, expected, s)
}

func TestStringifyPrettyWithZeroIndentStaysCompact(t *testing.T) {
	doc, err := cdom.ParseString(`[1,2]`, cdom.ParseConfig{})
	require.NoError(t, err)

	s, err := cdom.Stringify(doc.Root(), cdom.StringifyConfig{Options: cdom.Pretty, Indent: 0})
	require.NoError(t, err)
	assert.Equal(t, "[1,2]", s)
}

func TestStringifyIntoFitsBuffer(t *testing.T) {
	doc, err := cdom.ParseString(`[1,2,3]`, cdom.ParseConfig{})
	require.NoError(t, err)

	buf := make([]byte, 16)
	n, err := cdom.StringifyInto(buf, doc.Root(), cdom.Compact)
	require.NoError(t, err)
	assert.Equal(t, "[1,2,3]", string(buf[:n]))
}

func TestStringifyIntoReportsRequiredLengthWhenTooSmall(t *testing.T) {
	doc, err := cdom.ParseString(`[1,2,3]`, cdom.ParseConfig{})
	require.NoError(t, err)

	buf := make([]byte, 2)
	n, err := cdom.StringifyInto(buf, doc.Root(), cdom.Compact)
	require.NoError(t, err)
	assert.Equal(t, len("[1,2,3]"), n)

	grown := make([]byte, n)
	n2, err := cdom.StringifyInto(grown, doc.Root(), cdom.Compact)
	require.NoError(t, err)
	assert.Equal(t, "[1,2,3]", string(grown[:n2]))
}

func TestStringifyEscapeSlash(t *testing.T) {
	doc, err := cdom.ParseString(`"a/b"`, cdom.ParseConfig{})
	require.NoError(t, err)

	withSlash, err := cdom.Stringify(doc.Root(), cdom.StringifyConfig{Options: cdom.EscapeSlash})
	require.NoError(t, err)
	assert.Equal(t, `"a\/b"`, withSlash)

	plain, err := cdom.Stringify(doc.Root(), cdom.Compact)
	require.NoError(t, err)
	assert.Equal(t, `"a/b"`, plain)
}

func TestStringifyEscapeUnicode(t *testing.T) {
	doc, err := cdom.ParseString(`"é"`, cdom.ParseConfig{})
	require.NoError(t, err)

	escaped, err := cdom.Stringify(doc.Root(), cdom.StringifyConfig{Options: cdom.EscapeUnicode})
	require.NoError(t, err)
	assert.Equal(t, "\"\\u00e9\"", escaped)

	plain, err := cdom.Stringify(doc.Root(), cdom.Compact)
	require.NoError(t, err)
	assert.Equal(t, `"é"`, plain)
}

func TestStringifyEscapeUnicodeSurrogatePair(t *testing.T) {
	doc, err := cdom.ParseString(`"😀"`, cdom.ParseConfig{})
	require.NoError(t, err)

	escaped, err := cdom.Stringify(doc.Root(), cdom.StringifyConfig{Options: cdom.EscapeUnicode})
	require.NoError(t, err)
	assert.Equal(t, "\"\\ud83d\\ude00\"", escaped)
}

func TestStringifyNaNAndInfAreNull(t *testing.T) {
	doc, err := cdom.ParseString(`[Infinity,-Infinity,NaN]`, cdom.ParseConfig{Options: cdom.AllowInfNan})
	require.NoError(t, err)

	s, err := cdom.Stringify(doc.Root(), cdom.Compact)
	require.NoError(t, err)
	assert.Equal(t, "[null,null,null]", s)
}

func TestStringifyControlCharacterEscape(t *testing.T) {
	doc, err := cdom.ParseString("\"a\\u0001b\"", cdom.ParseConfig{})
	require.NoError(t, err)

	s, err := cdom.Stringify(doc.Root(), cdom.Compact)
	require.NoError(t, err)
	assert.Equal(t, "\"a\\u0001b\"", s)
}
