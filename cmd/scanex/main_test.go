package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDump(t *testing.T) {
	var out strings.Builder
	dump(&out, "> - a\n> - [x] b\n\nplain", false)
	assert.Equal(t, []string{
		"# tree",
		"Document[0:22]",
		"  Blockquote[0:15]",
		"    QuoteMark[0:1]",
		"    BulletList[2:15]",
		"      ListItem[2:5]",
		"        ListMark[2:3]",
		"        Paragraph[4:5]",
		"      ListItem[8:15]",
		"        ListMark[8:9]",
		"        Paragraph[10:15]",
		"    QuoteMark[6:7]",
		"  Paragraph[17:22]",
		"",
		"# contexts",
		`1. "> - a"`,
		`   Blockquote[0:2] "" ">" " "`,
		`   BulletList[2:4] "" "-" " "`,
		`2. "> - [x] b"`,
		`   Blockquote[0:2] "" ">" " "`,
		`   BulletList[2:8] "" "- [ ]" " "`,
		`3. ""`,
		`4. "plain"`,
		"",
	}, strings.Split(out.String(), "\n"))
}
