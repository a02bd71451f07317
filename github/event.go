// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package github

import (
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
)

// EventPullRequest is the name of the event triggered by pull request
// activity.
const EventPullRequest = "pull_request"

// Event holds the parts of a workflow event payload the checker needs.
type Event struct {
	// Number is the pull request number, or zero if the payload has none.
	Number int
	// Action is the activity type, such as "opened" or "synchronize".
	Action string
	// Repo is the full name of the repository, if present.
	Repo string
}

// ParseEvent extracts an [Event] from a JSON webhook payload.
func ParseEvent(payload []byte) (Event, error) {
	if !gjson.ValidBytes(payload) {
		return Event{}, errors.New("event payload is not valid JSON")
	}
	res := gjson.GetManyBytes(payload, "pull_request.number", "number", "action", "repository.full_name")
	ev := Event{
		Action: res[2].String(),
		Repo:   res[3].String(),
	}
	switch {
	case res[0].Exists():
		ev.Number = int(res[0].Int())
	case res[1].Exists():
		ev.Number = int(res[1].Int())
	}
	return ev, nil
}

// LoadEvent reads the event payload written by the runner to path (the value
// of GITHUB_EVENT_PATH).
func LoadEvent(path string) (Event, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Event{}, err
	}
	ev, err := ParseEvent(b)
	if err != nil {
		return Event{}, fmt.Errorf("%s: %w", path, err)
	}
	return ev, nil
}
