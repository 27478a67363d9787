package bot

import (
	"context"

	"go.uber.org/zap"
)

// Per-command orchestration. Each handler is a short linear pipeline:
// consult the store and/or collaborators, then produce exactly one
// reply. Every failure is converted to a fixed user-facing message at
// this boundary; upstream detail is only logged.

func (r *Router) handlePing(log *zap.SugaredLogger, msg Inbound) {
	log.Infow("processing ping")
	r.send(log, Reply{ChatID: msg.ChatID, Text: replyPing})
}

func (r *Router) handleStart(log *zap.SugaredLogger, msg Inbound) {
	r.send(log, Reply{ChatID: msg.ChatID, Text: startReply(r.botUsername)})
}

func (r *Router) handleHelp(log *zap.SugaredLogger, msg Inbound) {
	r.send(log, Reply{ChatID: msg.ChatID, Text: helpReply(r.botUsername), HTML: true})
}

// handleWeather serves the default-location path: saved record, then
// fetch. Store and fetch failures collapse to one generic reply.
func (r *Router) handleWeather(ctx context.Context, log *zap.SugaredLogger, msg Inbound) {
	getCtx, cancel := r.callCtx(ctx)
	saved, found, err := r.store.Get(getCtx, msg.UserID)
	cancel()
	if err != nil {
		log.Errorw("location store lookup failed", "error", err)
		r.send(log, Reply{ChatID: msg.ChatID, Text: replyWeatherFailed})
		return
	}
	if !found {
		r.send(log, Reply{ChatID: msg.ChatID, Text: setLocationPrompt(r.botUsername)})
		return
	}

	fetchCtx, cancel := r.callCtx(ctx)
	snap, err := r.fetcher.Fetch(fetchCtx, saved.Latitude, saved.Longitude)
	cancel()
	if err != nil {
		log.Errorw("weather fetch failed", "location", saved.FormattedName, "error", err)
		r.send(log, Reply{ChatID: msg.ChatID, Text: replyWeatherFailed})
		return
	}

	r.send(log, Reply{
		ChatID: msg.ChatID,
		Text:   FormatWeather(saved.FormattedName, snap),
		HTML:   true,
	})
}

// handleWeatherOther serves an explicitly named location. Resolver and
// fetcher failures are deliberately not distinguished in the reply.
func (r *Router) handleWeatherOther(ctx context.Context, log *zap.SugaredLogger, msg Inbound, input string) {
	if input == "" {
		r.send(log, Reply{ChatID: msg.ChatID, Text: replyMissingLocation})
		return
	}

	resolveCtx, cancel := r.callCtx(ctx)
	loc, err := r.resolver.Resolve(resolveCtx, input)
	cancel()
	if err != nil {
		log.Infow("location resolution failed", "input", input, "error", err)
		r.send(log, Reply{ChatID: msg.ChatID, Text: addressNotFoundReply(input)})
		return
	}

	fetchCtx, cancel := r.callCtx(ctx)
	snap, err := r.fetcher.Fetch(fetchCtx, loc.Latitude, loc.Longitude)
	cancel()
	if err != nil {
		log.Errorw("weather fetch failed", "location", loc.FormattedName, "error", err)
		r.send(log, Reply{ChatID: msg.ChatID, Text: addressNotFoundReply(input)})
		return
	}

	r.send(log, Reply{
		ChatID: msg.ChatID,
		Text:   FormatWeather(loc.FormattedName, snap),
		HTML:   true,
	})
}

// handleSetLocation resolves the argument and overwrites the user's
// saved record in a single set. Overwriting is idempotent.
func (r *Router) handleSetLocation(ctx context.Context, log *zap.SugaredLogger, msg Inbound, input string) {
	if input == "" {
		r.send(log, Reply{ChatID: msg.ChatID, Text: replyMissingLocation})
		return
	}

	resolveCtx, cancel := r.callCtx(ctx)
	loc, err := r.resolver.Resolve(resolveCtx, input)
	cancel()
	if err != nil {
		log.Infow("location resolution failed", "input", input, "error", err)
		r.send(log, Reply{ChatID: msg.ChatID, Text: addressNotFoundReply(input)})
		return
	}

	setCtx, cancel := r.callCtx(ctx)
	err = r.store.Set(setCtx, msg.UserID, loc)
	cancel()
	if err != nil {
		log.Errorw("saving location failed", "location", loc.FormattedName, "error", err)
		r.send(log, Reply{ChatID: msg.ChatID, Text: addressNotFoundReply(input)})
		return
	}

	log.Infow("default location set", "location", loc.FormattedName)
	r.send(log, Reply{
		ChatID:  msg.ChatID,
		Text:    locationSetReply(loc.FormattedName),
		ReplyTo: msg.MessageID,
	})
}

// handleDeleteLocation reads the record first: absence yields a
// distinct reply, and the deleted record's name is reported back.
func (r *Router) handleDeleteLocation(ctx context.Context, log *zap.SugaredLogger, msg Inbound) {
	getCtx, cancel := r.callCtx(ctx)
	saved, found, err := r.store.Get(getCtx, msg.UserID)
	cancel()
	if err != nil {
		log.Errorw("location store lookup failed", "error", err)
		r.send(log, Reply{ChatID: msg.ChatID, Text: replyStoreFailed})
		return
	}
	if !found {
		r.send(log, Reply{ChatID: msg.ChatID, Text: replyNoDefaultLocation, ReplyTo: msg.MessageID})
		return
	}

	delCtx, cancel := r.callCtx(ctx)
	err = r.store.Delete(delCtx, msg.UserID)
	cancel()
	if err != nil {
		log.Errorw("deleting location failed", "location", saved.FormattedName, "error", err)
		r.send(log, Reply{ChatID: msg.ChatID, Text: replyStoreFailed})
		return
	}

	log.Infow("default location deleted", "location", saved.FormattedName)
	r.send(log, Reply{
		ChatID:  msg.ChatID,
		Text:    locationDeletedReply(saved.FormattedName),
		ReplyTo: msg.MessageID,
	})
}
