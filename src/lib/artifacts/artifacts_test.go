package artifacts

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeCode(t *testing.T) {
	t.Setenv("TICKET_DIR", t.TempDir())

	fpath := MakeCode("3f2c9a70-52c4-4df3-8f07-6c0a4ad2c9b1")
	assert.NotNil(t, fpath)
	assert.True(t, strings.HasSuffix(*fpath, ".jpeg"))
	_, err := os.Stat(*fpath)
	assert.Nil(t, err)
}

func TestMakeDocumentWithoutCode(t *testing.T) {
	t.Setenv("TICKET_DIR", t.TempDir())

	info := DocumentInfo{
		EventTitle: "Tech Talk",
		VenueName:  "Main Auditorium",
		Schedule:   "2026-04-02 10:00 - 2026-04-02 12:00",
		Attendee:   "Test Student",
	}
	fpath := MakeDocument("3f2c9a70-52c4-4df3-8f07-6c0a4ad2c9b1", info, nil)
	assert.NotNil(t, fpath)
	assert.True(t, strings.HasSuffix(*fpath, ".pdf"))
	_, err := os.Stat(*fpath)
	assert.Nil(t, err)
}

func TestMakeDocumentEmbedsCode(t *testing.T) {
	t.Setenv("TICKET_DIR", t.TempDir())

	token := "8b51c5c2-0dd5-4f13-9c5b-32b1f7f2f1aa"
	code := MakeCode(token)
	assert.NotNil(t, code)

	fpath := MakeDocument(token, DocumentInfo{EventTitle: "Tech Talk"}, code)
	assert.NotNil(t, fpath)
	_, err := os.Stat(*fpath)
	assert.Nil(t, err)
}
