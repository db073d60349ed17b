package tasks

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lysyi3m/rss-lens/app/feed"
)

func TestSession_ReadersGetCopies(t *testing.T) {
	session := NewSession()
	session.Begin(1)
	session.complete(&feed.Problem{Source: "a", Err: "down"})
	session.publish([]feed.Entry{{Title: "one"}})

	entries := session.Entries()
	entries[0].Title = "changed"
	problems := session.Problems()
	problems[0].Err = "changed"

	assert.Equal(t, "one", session.Entries()[0].Title)
	assert.Equal(t, "down", session.Problems()[0].Err)
}

func TestSession_BeginResets(t *testing.T) {
	session := NewSession()
	session.Begin(2)
	session.complete(nil)
	session.complete(&feed.Problem{Source: "b", Err: "down"})
	session.publish([]feed.Entry{{Title: "one"}})

	session.Begin(5)

	assert.Equal(t, Progress{Total: 5}, session.Progress())
	assert.Empty(t, session.Entries())
	assert.Empty(t, session.Problems())
}

func TestSession_ZeroValueIsLoading(t *testing.T) {
	session := NewSession()

	assert.False(t, session.Progress().Done)
	assert.NotNil(t, session.Entries())
	assert.Empty(t, session.Entries())
}
