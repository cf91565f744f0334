package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCell(t *testing.T) {
	assert.Equal(t, "3", cell(3, 3))
	assert.Equal(t, "4/2", cell(4, 2))
}

func TestPrintDrift(t *testing.T) {
	var buf bytes.Buffer
	printDrift(&buf, []driftRow{
		{PostID: 7, LikesCount: 2, LiveLikes: 1, CommentsCount: 0, LiveComments: 0, SharesCount: 5, LiveShares: 5},
	})

	out := buf.String()
	assert.Contains(t, out, "POST")
	assert.Contains(t, out, "7")
	assert.Contains(t, out, "2/1")
	assert.NotContains(t, out, "5/5")
}
