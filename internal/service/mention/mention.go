// Package mention implements the @-mention autocomplete over a user
// directory: token detection around the caret, candidate matching,
// keyboard navigation and commit splicing, plus the pending-mention set
// drained into notifications when the comment is submitted.
package mention

import (
	"strings"
	"unicode"

	"github.com/google/uuid"

	"leadhub/internal/domain"
)

const maxCandidates = 10

// Autocomplete is the per-composer state machine. It is either idle or
// suggesting; suggesting carries the current query, the matched
// candidates and the highlighted index. Not safe for concurrent use; one
// instance belongs to one comment composer.
type Autocomplete struct {
	users []domain.User

	suggesting  bool
	query       string
	tokenStart  int // rune index of the '@'
	candidates  []domain.User
	activeIndex int

	pending map[uuid.UUID]struct{}
}

func New(users []domain.User) *Autocomplete {
	return &Autocomplete{
		users:   users,
		pending: make(map[uuid.UUID]struct{}),
	}
}

// SetDirectory replaces the user directory. Candidate order follows
// directory order.
func (a *Autocomplete) SetDirectory(users []domain.User) {
	a.users = users
}

// Input re-evaluates the state after the text or caret changed. caret is
// a rune offset into text. The panel shows when the caret sits inside an
// @-token: an '@' at the start of the text or right after whitespace,
// followed by a non-empty query with no whitespace, with at least one
// matching user.
func (a *Autocomplete) Input(text string, caret int) {
	runes := []rune(text)
	if caret < 0 || caret > len(runes) {
		a.reset()
		return
	}

	at := -1
	for i := caret - 1; i >= 0; i-- {
		if runes[i] == '@' {
			at = i
			break
		}
		if unicode.IsSpace(runes[i]) {
			break
		}
	}
	if at == -1 {
		a.reset()
		return
	}
	// Mid-word '@' (e.g. an email address) never opens the panel.
	if at > 0 && !unicode.IsSpace(runes[at-1]) {
		a.reset()
		return
	}

	query := string(runes[at+1 : caret])
	if query == "" {
		a.reset()
		return
	}

	candidates := a.match(query)
	if len(candidates) == 0 {
		a.reset()
		return
	}

	a.suggesting = true
	a.query = query
	a.tokenStart = at
	a.candidates = candidates
	a.activeIndex = 0
}

func (a *Autocomplete) match(query string) []domain.User {
	q := strings.ToLower(query)
	var out []domain.User
	for _, u := range a.users {
		if strings.HasPrefix(strings.ToLower(u.Name), q) ||
			strings.HasPrefix(strings.ToLower(u.Email), q) {
			out = append(out, u)
			if len(out) == maxCandidates {
				break
			}
		}
	}
	return out
}

func (a *Autocomplete) Suggesting() bool { return a.suggesting }

func (a *Autocomplete) Query() string { return a.query }

func (a *Autocomplete) Candidates() []domain.User { return a.candidates }

func (a *Autocomplete) ActiveIndex() int { return a.activeIndex }

// ArrowDown moves the highlight down, wrapping to the top.
func (a *Autocomplete) ArrowDown() {
	if !a.suggesting {
		return
	}
	a.activeIndex = (a.activeIndex + 1) % len(a.candidates)
}

// ArrowUp moves the highlight up, wrapping to the bottom.
func (a *Autocomplete) ArrowUp() {
	if !a.suggesting {
		return
	}
	a.activeIndex = (a.activeIndex - 1 + len(a.candidates)) % len(a.candidates)
}

// Commit accepts the highlighted candidate: the @-token is replaced with
// "@NameWithoutSpaces " and the caret lands after the trailing space. The
// candidate's id joins the pending-mention set and the panel closes.
// Returns the text unchanged when idle.
func (a *Autocomplete) Commit(text string, caret int) (string, int, bool) {
	return a.CommitIndex(text, caret, a.activeIndex)
}

// CommitIndex is Commit for a pointer selection of a specific candidate.
func (a *Autocomplete) CommitIndex(text string, caret, index int) (string, int, bool) {
	if !a.suggesting || index < 0 || index >= len(a.candidates) {
		return text, caret, false
	}

	user := a.candidates[index]
	handle := "@" + strings.ReplaceAll(user.DisplayName(), " ", "") + " "

	runes := []rune(text)
	if caret < a.tokenStart || caret > len(runes) {
		return text, caret, false
	}

	spliced := string(runes[:a.tokenStart]) + handle + string(runes[caret:])
	newCaret := a.tokenStart + len([]rune(handle))

	a.pending[user.ID] = struct{}{}
	a.reset()

	return spliced, newCaret, true
}

// Escape closes the panel without touching the text.
func (a *Autocomplete) Escape() {
	a.reset()
}

// Pending reports how many distinct users are queued for mention
// notifications.
func (a *Autocomplete) Pending() int {
	return len(a.pending)
}

// Drain returns the queued mention recipients and clears the set. Called
// on comment submit; each id gets one mention notification regardless of
// how many times the user was mentioned in the draft.
func (a *Autocomplete) Drain() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(a.pending))
	for id := range a.pending {
		ids = append(ids, id)
	}
	a.pending = make(map[uuid.UUID]struct{})
	return ids
}

func (a *Autocomplete) reset() {
	a.suggesting = false
	a.query = ""
	a.tokenStart = 0
	a.candidates = nil
	a.activeIndex = 0
}
