package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_Owns(t *testing.T) {
	u := &User{QuizSetIDs: []string{"q1", "q2"}, RecordingIDs: []string{"r1"}}

	assert.True(t, u.OwnsQuizSet("q2"))
	assert.False(t, u.OwnsQuizSet("r1"))
	assert.True(t, u.OwnsRecording("r1"))
	assert.False(t, u.OwnsRecording("q1"))
	assert.False(t, (&User{}).OwnsQuizSet(""))
}
