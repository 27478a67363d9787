package bot_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hws-labs/wetterbot/internal/bot"
	"github.com/hws-labs/wetterbot/internal/weather"
)

const (
	authorizedUser   = int64(42)
	unauthorizedUser = int64(666)
	testChat         = int64(1001)
)

type fakeStore struct {
	mu       sync.Mutex
	records  map[int64]bot.SavedLocation
	getErr   error
	setErr   error
	delErr   error
	getCalls int
	setCalls int
	delCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: map[int64]bot.SavedLocation{}}
}

func (s *fakeStore) Get(_ context.Context, userID int64) (bot.SavedLocation, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getCalls++
	if s.getErr != nil {
		return bot.SavedLocation{}, false, s.getErr
	}
	loc, ok := s.records[userID]
	return loc, ok, nil
}

func (s *fakeStore) Set(_ context.Context, userID int64, loc bot.SavedLocation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setCalls++
	if s.setErr != nil {
		return s.setErr
	}
	s.records[userID] = loc
	return nil
}

func (s *fakeStore) Delete(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delCalls++
	if s.delErr != nil {
		return s.delErr
	}
	delete(s.records, userID)
	return nil
}

type fakeResolver struct {
	loc       bot.SavedLocation
	err       error
	calls     int
	lastQuery string
}

func (r *fakeResolver) Resolve(_ context.Context, query string) (bot.SavedLocation, error) {
	r.calls++
	r.lastQuery = query
	if r.err != nil {
		return bot.SavedLocation{}, r.err
	}
	return r.loc, nil
}

type fakeFetcher struct {
	snap    weather.Snapshot
	err     error
	calls   int
	lastLat float64
	lastLon float64
}

func (f *fakeFetcher) Fetch(_ context.Context, lat, lon float64) (weather.Snapshot, error) {
	f.calls++
	f.lastLat = lat
	f.lastLon = lon
	if f.err != nil {
		return weather.Snapshot{}, f.err
	}
	return f.snap, nil
}

type fakeSender struct {
	mu      sync.Mutex
	replies []bot.Reply
}

func (s *fakeSender) Send(reply bot.Reply) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies = append(s.replies, reply)
	return nil
}

func (s *fakeSender) last(t *testing.T) bot.Reply {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	require.NotEmpty(t, s.replies, "expected at least one reply")
	return s.replies[len(s.replies)-1]
}

type testEnv struct {
	router   *bot.Router
	store    *fakeStore
	resolver *fakeResolver
	fetcher  *fakeFetcher
	sender   *fakeSender
}

func newTestEnv() *testEnv {
	env := &testEnv{
		store:    newFakeStore(),
		resolver: &fakeResolver{},
		fetcher:  &fakeFetcher{},
		sender:   &fakeSender{},
	}
	env.router = bot.NewRouter(
		bot.Options{
			AuthorizedUsers: []int64{authorizedUser},
			BotUsername:     "@wetter_bot",
		},
		bot.Deps{
			Store:    env.store,
			Resolver: env.resolver,
			Fetcher:  env.fetcher,
			Sender:   env.sender,
			Log:      zap.NewNop().Sugar(),
		},
	)
	return env
}

func (e *testEnv) handle(text string) {
	e.router.Handle(context.Background(), bot.Inbound{
		ChatID:    testChat,
		UserID:    authorizedUser,
		MessageID: 7,
		Text:      text,
	})
}

// TestClassify pins the dispatch table precedence: more specific
// command words must win over shorter prefixes, and the optional bot
// username suffix must never change the selected command.
func TestClassify(t *testing.T) {
	env := newTestEnv()

	tests := []struct {
		name    string
		text    string
		wantCmd bot.Command
		wantArg string
	}{
		{"ping", "/ping", bot.CmdPing, ""},
		{"ping with username", "/ping@wetter_bot", bot.CmdPing, ""},
		{"start", "/start", bot.CmdStart, ""},
		{"help", "/help", bot.CmdHelp, ""},
		{"weather default", "/w", bot.CmdWeather, ""},
		{"weather default with username", "/w@wetter_bot", bot.CmdWeather, ""},
		{"weather default trailing space", "/w  ", bot.CmdWeather, ""},
		{"weather other beats default", "/wo Berlin", bot.CmdWeatherOther, "Berlin"},
		{"weather other with username", "/wo@wetter_bot Berlin", bot.CmdWeatherOther, "Berlin"},
		{"weather other empty argument", "/wo", bot.CmdWeatherOther, ""},
		{"set location", "/setlocation Berlin", bot.CmdSetLocation, "Berlin"},
		{"set location with username", "/setlocation@wetter_bot  Berlin ", bot.CmdSetLocation, "Berlin"},
		{"delete location", "/deletelocation", bot.CmdDeleteLocation, ""},
		{"delete beats set prefix ordering", "/deletelocation@wetter_bot", bot.CmdDeleteLocation, ""},
		{"weather default takes no argument", "/w Berlin", bot.CmdNone, ""},
		{"wo prefix of longer word", "/woken up", bot.CmdNone, ""},
		{"plain chatter", "hello there", bot.CmdNone, ""},
		{"command not at start", "try /w now", bot.CmdNone, ""},
		{"unknown command", "/weather", bot.CmdNone, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, arg := env.router.Classify(tt.text)
			assert.Equal(t, tt.wantCmd, cmd)
			assert.Equal(t, tt.wantArg, arg)
		})
	}
}

// TestUnauthorizedUser verifies the authorization gate: a fixed
// rejection reply and zero store or collaborator calls, for every
// command.
func TestUnauthorizedUser(t *testing.T) {
	commands := []string{
		"/ping", "/start", "/help", "/w", "/wo Berlin",
		"/setlocation Berlin", "/deletelocation",
	}

	for _, text := range commands {
		t.Run(text, func(t *testing.T) {
			env := newTestEnv()
			env.router.Handle(context.Background(), bot.Inbound{
				ChatID: testChat,
				UserID: unauthorizedUser,
				Text:   text,
			})

			reply := env.sender.last(t)
			assert.Equal(t, "Unauthorized user.", reply.Text)
			assert.Len(t, env.sender.replies, 1)
			assert.Zero(t, env.store.getCalls+env.store.setCalls+env.store.delCalls)
			assert.Zero(t, env.resolver.calls)
			assert.Zero(t, env.fetcher.calls)
		})
	}
}

// A message without a sender identity is dropped silently, even before
// the authorization check.
func TestMissingSenderIdentity(t *testing.T) {
	env := newTestEnv()
	env.router.Handle(context.Background(), bot.Inbound{
		ChatID: testChat,
		UserID: 0,
		Text:   "/w",
	})

	assert.Empty(t, env.sender.replies)
	assert.Zero(t, env.store.getCalls)
}

// Non-command chatter produces no action at all, not even an
// authorization rejection.
func TestChatterIgnored(t *testing.T) {
	env := newTestEnv()
	env.router.Handle(context.Background(), bot.Inbound{
		ChatID: testChat,
		UserID: unauthorizedUser,
		Text:   "what a lovely day",
	})

	assert.Empty(t, env.sender.replies)
}
