package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashKey(t *testing.T) {
	assert.Len(t, HashKey("acme"), 64)
	assert.Equal(t, HashKey("acme"), HashKey("acme"))
	assert.NotEqual(t, HashKey("acme"), HashKey("Acme"))
}

func TestExt(t *testing.T) {
	assert.Equal(t, "pdf", Ext("Report.PDF"))
	assert.Equal(t, "htm", Ext("/tmp/a.b/x.htm"))
	assert.Equal(t, "", Ext("README"))
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "q2.pdf", BaseName(`C:\Users\me\q2.pdf`))
	assert.Equal(t, "q2.pdf", BaseName("../../etc/q2.pdf"))
	assert.Equal(t, "q2.pdf", BaseName(" q2.pdf "))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "héll", Truncate("héllo", 4))
	assert.Equal(t, "hi", Truncate("hi", 10))
}
