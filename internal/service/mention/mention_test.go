package mention

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"leadhub/internal/domain"
)

func directory() []domain.User {
	return []domain.User{
		{ID: uuid.New(), Name: "John Doe", Email: "john@example.com"},
		{ID: uuid.New(), Name: "Jane Smith", Email: "jane@example.com"},
		{ID: uuid.New(), Name: "Bob Lee", Email: "bob@example.com"},
	}
}

func TestInputOpensOnTokenAfterWhitespace(t *testing.T) {
	a := New(directory())
	text := "Hello @Jo"
	a.Input(text, len(text))

	assert.True(t, a.Suggesting())
	assert.Equal(t, "Jo", a.Query())
	assert.Len(t, a.Candidates(), 1)
	assert.Equal(t, "John Doe", a.Candidates()[0].Name)
	assert.Equal(t, 0, a.ActiveIndex())
}

func TestInputOpensAtStartOfText(t *testing.T) {
	a := New(directory())
	a.Input("@ja", 3)

	assert.True(t, a.Suggesting())
	assert.Equal(t, "Jane Smith", a.Candidates()[0].Name)
}

func TestInputMatchesEmailPrefix(t *testing.T) {
	a := New(directory())
	a.Input("@bob@", 4)

	assert.True(t, a.Suggesting())
	assert.Equal(t, "Bob Lee", a.Candidates()[0].Name)
}

func TestInputIgnoresMidWordAt(t *testing.T) {
	a := New(directory())
	text := "mail me at john@ex"
	a.Input(text, len(text))

	assert.False(t, a.Suggesting())
}

func TestInputEmptyQueryStaysIdle(t *testing.T) {
	a := New(directory())
	a.Input("Hello @", 7)

	assert.False(t, a.Suggesting())
}

func TestInputNoCandidatesStaysIdle(t *testing.T) {
	a := New(directory())
	a.Input("@zzz", 4)

	assert.False(t, a.Suggesting())
}

func TestInputCapsAtTen(t *testing.T) {
	var users []domain.User
	for i := 0; i < 15; i++ {
		users = append(users, domain.User{ID: uuid.New(), Name: "Sam", Email: "sam@example.com"})
	}
	a := New(users)
	a.Input("@sa", 3)

	assert.Len(t, a.Candidates(), 10)
}

func TestArrowNavigationWrapsCircularly(t *testing.T) {
	a := New(directory())
	a.Input("@j", 2) // John, Jane

	assert.Equal(t, 0, a.ActiveIndex())
	a.ArrowDown()
	assert.Equal(t, 1, a.ActiveIndex())
	a.ArrowDown()
	assert.Equal(t, 0, a.ActiveIndex())
	a.ArrowUp()
	assert.Equal(t, 1, a.ActiveIndex())
	assert.Equal(t, "j", a.Query())
}

func TestCommitSplicesHandleAndMovesCaret(t *testing.T) {
	a := New(directory())
	text := "Hello @Jo there"
	a.Input(text, 9) // caret right after "@Jo"

	newText, newCaret, ok := a.Commit(text, 9)

	assert.True(t, ok)
	assert.Equal(t, "Hello @JohnDoe  there", newText)
	assert.Equal(t, len("Hello @JohnDoe "), newCaret)
	assert.False(t, a.Suggesting())
	assert.Equal(t, 1, a.Pending())
}

func TestCommitIndexPointerSelection(t *testing.T) {
	a := New(directory())
	a.Input("@j", 2)

	newText, newCaret, ok := a.CommitIndex("@j", 2, 1)

	assert.True(t, ok)
	assert.Equal(t, "@JaneSmith ", newText)
	assert.Equal(t, len("@JaneSmith "), newCaret)
}

func TestCommitWhileIdleIsNoop(t *testing.T) {
	a := New(directory())

	text, caret, ok := a.Commit("plain text", 5)

	assert.False(t, ok)
	assert.Equal(t, "plain text", text)
	assert.Equal(t, 5, caret)
}

func TestEscapeClosesWithoutTextChange(t *testing.T) {
	a := New(directory())
	a.Input("@jo", 3)
	assert.True(t, a.Suggesting())

	a.Escape()

	assert.False(t, a.Suggesting())
	assert.Equal(t, 0, a.Pending())
}

func TestPendingDeduplicatesAndDrains(t *testing.T) {
	users := directory()
	a := New(users)

	a.Input("@jo", 3)
	_, _, ok := a.Commit("@jo", 3)
	assert.True(t, ok)

	text := "@JohnDoe  @jo"
	a.Input(text, len(text))
	_, _, ok = a.Commit(text, len(text))
	assert.True(t, ok)

	assert.Equal(t, 1, a.Pending())

	ids := a.Drain()
	assert.Equal(t, []uuid.UUID{users[0].ID}, ids)
	assert.Equal(t, 0, a.Pending())
	assert.Empty(t, a.Drain())
}
