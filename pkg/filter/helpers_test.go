package filter

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/models"
)

// testLogger satisfies Logger and discards everything.
type testLogger struct{}

func (testLogger) Debug(message, prefix string) {}
func (testLogger) Info(message, prefix string)  {}
func (testLogger) Warn(message, prefix string)  {}
func (testLogger) Error(message, prefix string) {}

// fakeStore serves a fixed config row and counts reads.
type fakeStore struct {
	mu    sync.Mutex
	cfg   *models.FilterConfig
	err   error
	reads int
}

func (s *fakeStore) GetFilterConfig(guildID string) (*models.FilterConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	if s.err != nil {
		return nil, s.err
	}
	return s.cfg, nil
}

func (s *fakeStore) readCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}

// recordingActions counts every sub-action and can be told to fail some.
type recordingActions struct {
	mu       sync.Mutex
	deletes  int
	dms      int
	timeouts int
	kicks    int
	bans     int
	modLogs  []ModLogEntry
	failDM   bool
	failDel  bool
}

func (a *recordingActions) DeleteMessage(channelID, messageID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.deletes++
	if a.failDel {
		return errors.New("missing permissions")
	}
	return nil
}

func (a *recordingActions) SendDirectMessage(userID, content string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.dms++
	if a.failDM {
		return errors.New("cannot send messages to this user")
	}
	return nil
}

func (a *recordingActions) TimeoutMember(guildID, userID string, duration time.Duration, reason string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.timeouts++
	return nil
}

func (a *recordingActions) KickMember(guildID, userID, reason string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.kicks++
	return nil
}

func (a *recordingActions) BanMember(guildID, userID, reason string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.bans++
	return nil
}

func (a *recordingActions) SendModLog(channelID string, entry ModLogEntry) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.modLogs = append(a.modLogs, entry)
	return nil
}

func (a *recordingActions) total() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.deletes + a.dms + a.timeouts + a.kicks + a.bans + len(a.modLogs)
}

// memorySink collects appended violations.
type memorySink struct {
	mu      sync.Mutex
	records []*models.Violation
}

func (s *memorySink) Append(v *models.Violation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, v)
}

func (s *memorySink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func testIDs() func() string {
	n := 0
	var mu sync.Mutex
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("violation-%d", n)
	}
}
