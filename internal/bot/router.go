package bot

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Command identifies one of the recognized bot commands.
type Command int

const (
	CmdNone Command = iota
	CmdPing
	CmdStart
	CmdHelp
	CmdWeather
	CmdWeatherOther
	CmdSetLocation
	CmdDeleteLocation
)

func (c Command) String() string {
	switch c {
	case CmdPing:
		return "ping"
	case CmdStart:
		return "start"
	case CmdHelp:
		return "help"
	case CmdWeather:
		return "weather"
	case CmdWeatherOther:
		return "weather_other"
	case CmdSetLocation:
		return "set_location"
	case CmdDeleteLocation:
		return "delete_location"
	default:
		return "none"
	}
}

// route pairs a compiled pattern with the command it selects. The first
// matching entry wins, so longer command words are listed before
// shorter ones that share a prefix (/setlocation before /wo before /w).
type route struct {
	pattern *regexp.Regexp
	cmd     Command
}

const defaultCallTimeout = 15 * time.Second

// Options configures routing and authorization.
type Options struct {
	// AuthorizedUsers is the fixed allow-list of sender IDs. It is
	// copied at construction and never mutated afterwards.
	AuthorizedUsers []int64

	// BotUsername is the optional "@name" token Telegram appends to
	// commands in group chats. It is stripped before argument parsing.
	BotUsername string

	// WeatherCommand is the short default-weather trigger word ("w"
	// unless configured otherwise).
	WeatherCommand string

	// CallTimeout bounds every store access and collaborator call made
	// while handling a single command.
	CallTimeout time.Duration
}

// Deps are the collaborators handlers orchestrate.
type Deps struct {
	Store    LocationStore
	Resolver LocationResolver
	Fetcher  WeatherFetcher
	Sender   ReplySender
	Log      *zap.SugaredLogger
}

// Router classifies inbound text against an ordered command table,
// enforces the authorization gate and dispatches to a handler. It holds
// no per-user state between messages; everything durable lives in the
// LocationStore.
type Router struct {
	routes      []route
	authorized  map[int64]struct{}
	botUsername string
	callTimeout time.Duration

	store    LocationStore
	resolver LocationResolver
	fetcher  WeatherFetcher
	sender   ReplySender
	log      *zap.SugaredLogger
}

// NewRouter builds the router and compiles its dispatch table.
func NewRouter(opts Options, deps Deps) *Router {
	authorized := make(map[int64]struct{}, len(opts.AuthorizedUsers))
	for _, id := range opts.AuthorizedUsers {
		authorized[id] = struct{}{}
	}

	weatherWord := opts.WeatherCommand
	if weatherWord == "" {
		weatherWord = "w"
	}

	timeout := opts.CallTimeout
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}

	return &Router{
		routes:      newRoutes(weatherWord, opts.BotUsername),
		authorized:  authorized,
		botUsername: opts.BotUsername,
		callTimeout: timeout,
		store:       deps.Store,
		resolver:    deps.Resolver,
		fetcher:     deps.Fetcher,
		sender:      deps.Sender,
		log:         deps.Log,
	}
}

// newRoutes compiles the dispatch table, most specific command word
// first. Every pattern tolerates the optional @botusername suffix and
// requires a word boundary after the command, so "/w" never matches
// "/wo ..." and "/wo" never matches "/woken".
func newRoutes(weatherWord, botUsername string) []route {
	suffix := ""
	if botUsername != "" {
		suffix = "(" + regexp.QuoteMeta(botUsername) + ")?"
	}

	command := func(word string) *regexp.Regexp {
		return regexp.MustCompile(`^/` + regexp.QuoteMeta(word) + suffix + `(\s|$)`)
	}

	// The bare weather trigger takes no argument; anchor it to the end
	// of the message like the other commands accept a remainder.
	weatherOnly := regexp.MustCompile(`^/` + regexp.QuoteMeta(weatherWord) + suffix + `\s*$`)

	return []route{
		{command("deletelocation"), CmdDeleteLocation},
		{command("setlocation"), CmdSetLocation},
		{command(weatherWord + "o"), CmdWeatherOther},
		{command("ping"), CmdPing},
		{command("start"), CmdStart},
		{command("help"), CmdHelp},
		{weatherOnly, CmdWeather},
	}
}

// Classify matches text against the command table and returns the
// selected command plus the trimmed free-text argument. Unmatched text
// returns CmdNone; the transport may carry non-command chatter.
func (r *Router) Classify(text string) (Command, string) {
	for _, rt := range r.routes {
		m := rt.pattern.FindStringIndex(text)
		if m == nil {
			continue
		}
		arg := strings.TrimSpace(text[m[1]:])
		return rt.cmd, arg
	}
	return CmdNone, ""
}

// Handle processes a single inbound message end to end. It is safe to
// call concurrently; each message is an independent unit of work with
// no ordering guarantee, including messages from the same user.
func (r *Router) Handle(ctx context.Context, msg Inbound) {
	cmd, arg := r.Classify(msg.Text)
	if cmd == CmdNone {
		return
	}

	log := r.log.With(
		"correlation_id", uuid.NewString(),
		"command", cmd.String(),
		"chat_id", msg.ChatID,
	)

	if msg.UserID == 0 {
		log.Infow("dropping message without sender identity")
		return
	}
	log = log.With("user_id", msg.UserID)

	if _, ok := r.authorized[msg.UserID]; !ok {
		log.Warnw("rejecting unauthorized user")
		r.send(log, Reply{ChatID: msg.ChatID, Text: replyUnauthorized})
		return
	}

	switch cmd {
	case CmdPing:
		r.handlePing(log, msg)
	case CmdStart:
		r.handleStart(log, msg)
	case CmdHelp:
		r.handleHelp(log, msg)
	case CmdWeather:
		r.handleWeather(ctx, log, msg)
	case CmdWeatherOther:
		r.handleWeatherOther(ctx, log, msg, arg)
	case CmdSetLocation:
		r.handleSetLocation(ctx, log, msg, arg)
	case CmdDeleteLocation:
		r.handleDeleteLocation(ctx, log, msg)
	}
}

func (r *Router) send(log *zap.SugaredLogger, reply Reply) {
	if err := r.sender.Send(reply); err != nil {
		log.Errorw("failed to send reply", "error", err)
	}
}

// callCtx bounds a single store access or collaborator call.
func (r *Router) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.callTimeout)
}
