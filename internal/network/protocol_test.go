package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type textMsg struct {
	Text string `json:"text"`
}

func (textMsg) MessageType() string { return "TEXT" }

type emptyMsg struct{}

func (emptyMsg) MessageType() string { return "EMPTY" }

type listMsg []int

func (listMsg) MessageType() string { return "LIST" }

func TestEncode(t *testing.T) {
	data, err := Encode(textMsg{Text: "hi"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"TEXT","text":"hi"}`, string(data))

	data, err = Encode(emptyMsg{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"EMPTY"}`, string(data))

	_, err = Encode(listMsg{1, 2})
	assert.Error(t, err)
}
