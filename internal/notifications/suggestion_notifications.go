package notifications

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/9ssi7/exponent"

	"conexaoiris/internal/domain/events"
	"conexaoiris/internal/store"
)

// SendModerationDecision tells the suggester their event was approved or
// rejected. Anonymous suggestions have no user to notify, so callers should
// skip them before reaching here.
func SendModerationDecision(ctx context.Context, push PushSender, storage *store.Storage, userID int64, ev *events.EventSuggestion) error {
	tokensMap, err := storage.PushTokens.GetTokensByUserIDs(ctx, []int64{userID})
	if err != nil {
		return err
	}
	tokens := dedupe(tokensMap[userID])
	if len(tokens) == 0 {
		return errors.New("no push tokens")
	}

	var title, body string
	switch ev.Status {
	case events.StatusApproved:
		title = "Sugestão aprovada"
		body = fmt.Sprintf("Seu evento \"%s\" foi aprovado e já aparece na agenda! 🏳️‍🌈", ev.Title)
	case events.StatusRejected:
		title = "Sugestão não aprovada"
		body = fmt.Sprintf("Seu evento \"%s\" não foi aprovado desta vez.", ev.Title)
	default:
		title = "Sugestão atualizada"
		body = fmt.Sprintf("Seu evento \"%s\" teve uma atualização.", ev.Title)
	}

	eventID := strconv.FormatInt(ev.ID, 10)
	msgs := make([]*exponent.Message, 0, len(tokens))
	for _, t := range tokens {
		token := exponent.Token(t)
		msg := &exponent.Message{
			To:    []*exponent.Token{&token},
			Title: title,
			Body:  body,
			Data: map[string]string{
				"type":     "suggestion_decision",
				"status":   string(ev.Status),
				"event_id": eventID,
				"screen":   "suggest",
			},
		}
		msgs = append(msgs, msg)
	}

	responses, err := push.Publish(ctx, msgs)
	if err != nil {
		return err
	}

	// Expo flags tokens for uninstalled apps; drop them so future decisions
	// stop paying for dead sends.
	var stale []string
	for _, resp := range responses {
		if resp == nil || resp.IsOk() {
			continue
		}
		if resp.Details["error"] != string(exponent.ErrorMsgDeviceNotRegistered) {
			continue
		}
		if resp.MessageItem == nil {
			continue
		}
		for _, to := range resp.MessageItem.To {
			if to != nil {
				stale = append(stale, string(*to))
			}
		}
	}
	if len(stale) > 0 {
		if err := storage.PushTokens.RemoveByTokenList(ctx, stale); err != nil {
			return fmt.Errorf("remove unregistered tokens: %w", err)
		}
	}
	return nil
}
